package web

import (
	"html/template"

	"github.com/dmitrijs2005/cvboard/internal/client/projection"
	"github.com/dmitrijs2005/cvboard/internal/client/ui"
)

const pageTemplateName = "page"

// pageView is the ui.View of the web surface: it keeps what the binder last
// rendered until the next page is written.
type pageView struct {
	lists  map[string][]projection.DisplayRow
	skills []string
	alerts []string
}

func newPageView() *pageView {
	return &pageView{lists: map[string][]projection.DisplayRow{}}
}

func (v *pageView) RenderList(listID string, rows []projection.DisplayRow) {
	v.lists[listID] = rows
}

func (v *pageView) RenderSkillOptions(skills []string) {
	v.skills = skills
}

func (v *pageView) Alert(msg string) {
	v.alerts = append(v.alerts, msg)
}

// takeAlerts returns pending alerts; each is shown once.
func (v *pageView) takeAlerts() []string {
	a := v.alerts
	v.alerts = nil
	return a
}

type elementIDs struct {
	Form, PresetSkills, Skills, Title, Description   string
	AddButton, ViewButton, SearchButton, SearchSkill string
	DeleteButton, AllList, FilteredList              string
}

var ids = elementIDs{
	Form:         ui.FormID,
	PresetSkills: ui.PresetSkillsID,
	Skills:       ui.SkillsFieldID,
	Title:        ui.TitleFieldID,
	Description:  ui.DescriptionFieldID,
	AddButton:    ui.AddButtonID,
	ViewButton:   ui.ViewStudentsButtonID,
	SearchButton: ui.SearchSkillButtonID,
	SearchSkill:  ui.SearchSkillID,
	DeleteButton: ui.DeleteButtonID,
	AllList:      ui.AllListID,
	FilteredList: ui.FilteredListID,
}

type pageData struct {
	IDs          elementIDs
	Form         ui.Form
	Presets      []string
	SkillOptions []string
	Jobs         []projection.DisplayRow
	Students     []projection.DisplayRow
	Alerts       []string
}

// The form posts to "/" on a plain submit, which only keeps the typed
// values; every action goes through its button's formaction. The hidden
// button is the form's default button, so Enter in a field is a plain submit.
var pageTemplate = template.Must(template.New(pageTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>cvboard</title>
</head>
<body>
{{range .Alerts}}<div role="alert">{{.}}</div>
{{end}}
<form id="{{.IDs.Form}}" method="post" action="/">
  <button type="submit" formaction="/" hidden tabindex="-1" aria-hidden="true"></button>
  <label for="{{.IDs.Title}}">Name</label>
  <input id="{{.IDs.Title}}" name="title" value="{{.Form.Title}}">
  <label for="{{.IDs.Description}}">Degrees</label>
  <input id="{{.IDs.Description}}" name="description" value="{{.Form.Description}}">
  <label for="{{.IDs.Skills}}">Skills</label>
  <input id="{{.IDs.Skills}}" name="skills" value="{{.Form.Skills}}">
  <select id="{{.IDs.PresetSkills}}" name="preset">
    {{range .Presets}}<option value="{{.}}">{{.}}</option>
    {{end}}
  </select>
  <button type="submit" formaction="/select-skill">Add skill</button>
  <button type="submit" id="{{.IDs.AddButton}}" formaction="/add">Add CV</button>
  <button type="submit" id="{{.IDs.ViewButton}}" formaction="/view">View students</button>
  <select id="{{.IDs.SearchSkill}}" name="search">
    {{range .SkillOptions}}<option value="{{.}}">{{.}}</option>
    {{end}}
  </select>
  <button type="submit" id="{{.IDs.SearchButton}}" formaction="/search">Search by skill</button>
  <button type="submit" id="{{.IDs.DeleteButton}}" formaction="/delete">Delete all records</button>
</form>
<ul id="{{.IDs.AllList}}">
  {{range .Jobs}}<li>{{.Text}}</li>
  {{end}}
</ul>
<ul id="{{.IDs.FilteredList}}">
  {{range .Students}}<li>{{.Text}}</li>
  {{end}}
</ul>
</body>
</html>
`))
