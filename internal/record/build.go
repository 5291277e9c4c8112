package record

import "time"

// Factory constructs new records. The zero value is not usable; use
// NewFactory or set both fields.
type Factory struct {
	Now func() time.Time
	IDs IDGenerator
}

// NewFactory returns a factory backed by the wall clock and
// TimestampIDGenerator.
func NewFactory() *Factory {
	return &Factory{
		Now: time.Now,
		IDs: TimestampIDGenerator{},
	}
}

// Build validates text and returns a new, not yet completed record.
// Validation errors from ValidateText are returned unchanged.
func (f *Factory) Build(text any, opts Options) (Task, error) {
	validated, err := ValidateText(text)
	if err != nil {
		return Task{}, err
	}

	priority := opts.Priority
	if priority == "" {
		priority = PriorityLow
	}

	var due *string
	if opts.DueDate != "" {
		d := opts.DueDate
		due = &d
	}

	return Task{
		ID:        f.IDs.Generate(),
		Text:      validated,
		Completed: false,
		CreatedAt: f.Now().UnixMilli(),
		Priority:  priority,
		DueDate:   due,
		Tags:      append([]string{}, opts.Tags...),
	}, nil
}

// Build constructs a record using the wall clock and random identities.
func Build(text any, opts Options) (Task, error) {
	return NewFactory().Build(text, opts)
}
