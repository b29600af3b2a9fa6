package ui

// Element IDs of the page. The web surface renders exactly these; the REPL
// uses the two list IDs as headings.
const (
	FormID               = "job-form"
	PresetSkillsID       = "skillsDropdown"
	SkillsFieldID        = "skills"
	TitleFieldID         = "title"
	DescriptionFieldID   = "description"
	AddButtonID          = "addJobButton"
	ViewStudentsButtonID = "viewStudentsButton"
	SearchSkillButtonID  = "searchSkillButton"
	SearchSkillID        = "skillDropdown"
	DeleteButtonID       = "deleteRecordsButton"
	AllListID            = "jobs"
	FilteredListID       = "students"
)

// PresetSkills fills the skill picker of the submission form.
var PresetSkills = []string{
	"HTML", "CSS", "JavaScript", "React", "Node.js",
	"Python", "Java", "C++", "SQL", "NoSQL",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"Linux", "Networking", "Security", "DevOps", "Machine Learning",
}

const (
	DuplicateAlert    = "You have already added a CV."
	ValidationMessage = "Please fill in all fields"
)
