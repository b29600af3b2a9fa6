package ui

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/cvboard/internal/models"
)

// Form holds the submission fields as typed: Description and Skills are
// comma-separated lists.
type Form struct {
	Title       string
	Description string
	Skills      string
}

// AppendSkill adds skill to the Skills field unless it is already listed.
// The field is left untouched when nothing is added.
func (f *Form) AppendSkill(skill string) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return
	}
	current := models.SplitList(f.Skills)
	if slices.Contains(current, skill) {
		return
	}
	f.Skills = models.JoinList(append(current, skill))
}

// Submission parses the fields into a submission.
func (f *Form) Submission() models.Submission {
	return models.Submission{
		Name:           strings.TrimSpace(f.Title),
		Qualifications: models.SplitList(f.Description),
		Skills:         models.SplitList(f.Skills),
	}
}
