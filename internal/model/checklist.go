package model

// ChecklistStatus is the progress state of a checklist item
type ChecklistStatus string

const (
	StatusNotStarted ChecklistStatus = "Not Started"
	StatusDone       ChecklistStatus = "Done"
)

// Valid reports whether s is a known status
func (s ChecklistStatus) Valid() bool {
	return s == StatusNotStarted || s == StatusDone
}

// Checklist task labels
const (
	TaskFindIkigai    = "Find your Ikigai"
	TaskReviewSummary = "Review summary"
	TaskExploreRoles  = "Explore roles"
)

// LinkNotNavigable marks an item that has no route yet
const LinkNotNavigable = "#"

// ChecklistSize is the fixed number of checklist items
const ChecklistSize = 3

// ChecklistItem is one row of the progress tracker
type ChecklistItem struct {
	Task   string          `json:"task"`
	Status ChecklistStatus `json:"status"`
	Link   string          `json:"link"`
}

// DefaultChecklist returns the seeded three-item checklist
func DefaultChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Task: TaskFindIkigai, Status: StatusNotStarted, Link: "/ikigai"},
		{Task: TaskReviewSummary, Status: StatusNotStarted, Link: "/ikigai/results"},
		{Task: TaskExploreRoles, Status: StatusNotStarted, Link: LinkNotNavigable},
	}
}
