package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/cvboard/internal/client/ui"
)

// Add prompts for the form fields and submits them. An empty skills answer
// keeps the skills already picked with the skill command.
func (a *App) Add(ctx context.Context) error {
	form := a.binder.Form()

	title, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Degrees (comma-separated)", a.out)
	if err != nil {
		return err
	}

	prompt := "Skills (comma-separated)"
	if form.Skills != "" {
		prompt += fmt.Sprintf(" [%s]", form.Skills)
	}
	skills, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}

	form.Title = title
	form.Description = description
	if skills != "" {
		form.Skills = skills
	}

	a.binder.Add(ctx)
	return nil
}

// SelectSkill adds a preset skill by number, or any skill by name.
func (a *App) SelectSkill(ctx context.Context, arg string) error {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(ui.PresetSkills) {
			printlnFn("No such preset:", n)
			return nil
		}
		arg = ui.PresetSkills[n-1]
	}
	a.binder.SelectSkill(arg)
	printlnFn("Skills:", a.binder.Form().Skills)
	return nil
}

func (a *App) Presets(ctx context.Context) error {
	for i, s := range ui.PresetSkills {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, s)
	}
	return nil
}

func (a *App) View(ctx context.Context) error {
	a.binder.ViewStudents(ctx)
	return nil
}

func (a *App) Search(ctx context.Context, skill string) error {
	a.binder.SearchBySkill(ctx, skill)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	a.binder.Load(ctx)
	return nil
}

// Delete removes every CV of every user after confirmation.
func (a *App) Delete(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Delete ALL CVs of every user?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}
	a.binder.DeleteAll(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if a.client == nil {
		return nil
	}
	if err := a.client.Logout(ctx); err != nil {
		a.logger.Error(ctx, "logout failed", "error", err)
		return err
	}
	printlnFn("Logged out")
	return nil
}
