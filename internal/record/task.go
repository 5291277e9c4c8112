package record

// Priority is the urgency of a task. Values outside the enumerated set are
// carried through unchanged and rank as PriorityLow when ordering.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item.
//
// The JSON field names are the persisted snapshot format and must not change.
type Task struct {
	ID        string   `json:"id" yaml:"id"`
	Text      string   `json:"text" yaml:"text"`
	Completed bool     `json:"completed" yaml:"completed"`
	CreatedAt int64    `json:"createdAt" yaml:"createdAt"` // unix milliseconds
	Priority  Priority `json:"priority" yaml:"priority"`
	DueDate   *string  `json:"dueDate" yaml:"dueDate"`
	Tags      []string `json:"tags" yaml:"tags"`
}

// Clone returns a deep copy of t.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	out.Tags = append([]string{}, t.Tags...)
	return out
}

// Normalize fills in fields that may be absent in older snapshots.
func (t *Task) Normalize() {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Priority == "" {
		t.Priority = PriorityLow
	}
}

// Options are the optional fields accepted when building a record.
// The zero value yields priority low, no due date and no tags.
type Options struct {
	Priority Priority
	DueDate  string // empty means none
	Tags     []string
}

// Patch is a partial update. A nil field means "leave unchanged".
//
// DueDate set to an empty string clears the due date. Tags set to a nil
// slice clears the tags.
type Patch struct {
	ID        *string
	Text      *string
	Completed *bool
	CreatedAt *int64
	Priority  *Priority
	DueDate   *string
	Tags      *[]string
}

// Apply merges p onto a copy of t and returns the result.
//
// Patched text goes through ValidateText and is stored trimmed. A patched
// ID must equal the current one; identities are immutable.
func (p Patch) Apply(t Task) (Task, error) {
	out := t.Clone()

	if p.ID != nil && *p.ID != t.ID {
		return t, newValidationError(ErrCodeImmutableID, "Todo id cannot be changed")
	}
	if p.Text != nil {
		text, err := ValidateText(*p.Text)
		if err != nil {
			return t, err
		}
		out.Text = text
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	if p.CreatedAt != nil {
		out.CreatedAt = *p.CreatedAt
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.DueDate != nil {
		if *p.DueDate == "" {
			out.DueDate = nil
		} else {
			due := *p.DueDate
			out.DueDate = &due
		}
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, (*p.Tags)...)
	}

	return out, nil
}

// Stats aggregates a list of tasks.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	CompletionRate int `json:"completionRate"` // percent, 0-100
}

// Filter selects tasks by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the recognized filter modes.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// SortMode selects the ordering of a view.
type SortMode string

const (
	SortDate         SortMode = "date"
	SortAlphabetical SortMode = "alphabetical"
	SortPriority     SortMode = "priority"
)

// SortModes lists the recognized sort modes.
var SortModes = []SortMode{SortDate, SortAlphabetical, SortPriority}
