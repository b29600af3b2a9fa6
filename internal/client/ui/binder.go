// Package ui binds page events to the record client and renders the
// resulting read model through a View. It holds no transport or DOM code;
// each surface implements View and forwards its events to a Binder.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/client/projection"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/models"
	"golang.org/x/text/language"
)

type RecordService interface {
	AddRecord(ctx context.Context, name string, qualifications, skills []string) (models.Record, error)
	ListRecords(ctx context.Context) ([]models.Record, error)
	DeleteAllRecords(ctx context.Context) error
}

// View is what a surface renders into.
type View interface {
	// RenderList replaces the contents of list listID with rows.
	RenderList(listID string, rows []projection.DisplayRow)
	// RenderSkillOptions replaces the options of the skill search picker.
	RenderSkillOptions(skills []string)
	Alert(msg string)
}

// Binder handles one event at a time; callers serialize events.
type Binder struct {
	records  RecordService
	view     View
	form     Form
	logger   logging.Logger
	location *time.Location
	language language.Tag
}

type Option func(*Binder)

func WithLogger(l logging.Logger) Option {
	return func(b *Binder) { b.logger = l }
}

// WithLocation sets the time zone posting times are shown in.
func WithLocation(loc *time.Location) Option {
	return func(b *Binder) { b.location = loc }
}

// WithLanguage sets the collation of the skill picker.
func WithLanguage(tag language.Tag) Option {
	return func(b *Binder) { b.language = tag }
}

func NewBinder(records RecordService, view View, opts ...Option) *Binder {
	b := &Binder{
		records:  records,
		view:     view,
		logger:   logging.Nop(),
		location: time.Local,
		language: language.English,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("module", "ui")
	return b
}

// Form returns the form state the surface edits.
func (b *Binder) Form() *Form {
	return &b.form
}

// Load fills the full list and the skill picker.
func (b *Binder) Load(ctx context.Context) {
	b.refresh(ctx)
}

func (b *Binder) SelectSkill(skill string) {
	b.form.AppendSkill(skill)
}

// Add submits the form.
func (b *Binder) Add(ctx context.Context) {
	sub := b.form.Submission()
	if err := sub.Validate(); err != nil {
		b.logger.Info(ctx, ValidationMessage)
		return
	}

	b.logger.Info(ctx, "Adding CV", "name", sub.Name)
	_, err := b.records.AddRecord(ctx, sub.Name, sub.Qualifications, sub.Skills)
	switch {
	case errors.Is(err, common.ErrDuplicate):
		b.logger.Info(ctx, "CV already exists for this student.")
		b.view.Alert(DuplicateAlert)
		return
	case err != nil:
		b.logger.Error(ctx, "Failed to add CV", "error", err)
		return
	}

	b.logger.Info(ctx, "CV added successfully")
	b.refresh(ctx)
}

// ViewStudents renders every record into the full list.
func (b *Binder) ViewStudents(ctx context.Context) {
	records, err := b.records.ListRecords(ctx)
	if err != nil {
		b.logger.Error(ctx, "Failed to fetch CVs", "error", err)
		return
	}
	b.view.RenderList(AllListID, projection.ProjectAll(records, b.location))
}

// SearchBySkill renders the records listing skill into the filtered list.
func (b *Binder) SearchBySkill(ctx context.Context, skill string) {
	records, err := b.records.ListRecords(ctx)
	if err != nil {
		b.logger.Error(ctx, "Failed to fetch students by skill", "skill", skill, "error", err)
		return
	}
	filtered := projection.FilterBySkill(records, skill)
	b.view.RenderList(FilteredListID, projection.ProjectAll(filtered, b.location))
}

// DeleteAll wipes the store and refreshes.
func (b *Binder) DeleteAll(ctx context.Context) {
	if err := b.records.DeleteAllRecords(ctx); err != nil {
		b.logger.Error(ctx, "Failed to delete records", "error", err)
		return
	}
	b.logger.Info(ctx, "All records deleted successfully")
	b.refresh(ctx)
}

// refresh re-renders the full list and the skill picker from one fetch.
func (b *Binder) refresh(ctx context.Context) {
	records, err := b.records.ListRecords(ctx)
	if err != nil {
		b.logger.Error(ctx, "Failed to fetch CVs", "error", err)
		return
	}
	b.view.RenderList(AllListID, projection.ProjectAll(records, b.location))
	b.view.RenderSkillOptions(projection.ProjectSkillIndex(records).Sorted(b.language))
}
