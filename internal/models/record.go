// Package models holds the record type shared by the client and the
// development replica.
package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cvboard/internal/common"
)

// Record is a submitted CV. PostedAt is nanoseconds since the Unix epoch,
// assigned by the store.
type Record struct {
	Owner          string
	Name           string
	Qualifications []string
	Skills         []string
	PostedAt       int64
}

// HasSkill reports whether skill appears in r.Skills (exact match).
func (r Record) HasSkill(skill string) bool {
	for _, s := range r.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Submission is the client-supplied part of a Record.
type Submission struct {
	Name           string
	Qualifications []string
	Skills         []string
}

// Validate checks that the name is not blank and that both lists are
// non-empty with no blank items. The returned error wraps
// common.ErrValidation.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := validateList("qualification", s.Qualifications); err != nil {
		return err
	}
	return validateList("skill", s.Skills)
}

func validateList(field string, items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: at least one %s is required", common.ErrValidation, field)
	}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("%w: blank %s", common.ErrValidation, field)
		}
	}
	return nil
}

// SplitList splits comma-separated free text into trimmed, non-empty items.
func SplitList(text string) []string {
	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// JoinList is the inverse of SplitList for display.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
