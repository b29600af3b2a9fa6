// Package projection derives display data from fetched records. Every
// function is pure and recomputed on each refresh.
package projection

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/dmitrijs2005/cvboard/internal/timex"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PostedAtLayout renders posting times as a local calendar time.
const PostedAtLayout = "1/2/2006, 3:04:05 PM"

type DisplayRow struct {
	Record models.Record
	Text   string
}

// FormatRow renders r as a single list line, with its posting time in loc.
func FormatRow(r models.Record, loc *time.Location) string {
	posted := timex.NanosToTime(r.PostedAt).In(loc).Format(PostedAtLayout)
	return fmt.Sprintf("%s - Degrees: %s - Skills: %s (Posted at: %s)",
		r.Name, models.JoinList(r.Qualifications), models.JoinList(r.Skills), posted)
}

// ProjectAll returns one row per record, in input order.
func ProjectAll(records []models.Record, loc *time.Location) []DisplayRow {
	rows := make([]DisplayRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, DisplayRow{Record: r, Text: FormatRow(r, loc)})
	}
	return rows
}

// SkillSet is the deduplicated union of skills across records.
type SkillSet map[string]struct{}

func (s SkillSet) Contains(skill string) bool {
	_, ok := s[skill]
	return ok
}

// Sorted returns the skills ordered for display with the collation of tag.
func (s SkillSet) Sorted(tag language.Tag) []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	slices.Sort(out)
	collate.New(tag).SortStrings(out)
	return out
}

func ProjectSkillIndex(records []models.Record) SkillSet {
	set := make(SkillSet)
	for _, r := range records {
		for _, skill := range r.Skills {
			set[skill] = struct{}{}
		}
	}
	return set
}

// FilterBySkill keeps the records listing skill exactly (case-sensitive),
// preserving their relative order.
func FilterBySkill(records []models.Record, skill string) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.HasSkill(skill) {
			out = append(out, r)
		}
	}
	return out
}
