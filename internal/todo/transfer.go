package todo

import (
	"context"

	"github.com/roach88/tasklist/internal/record"
)

// Export returns every task in list order.
func (c *Controller) Export() []record.Task {
	return c.All()
}

// Import adds tasks to the list and returns how many were added.
//
// Every record is checked before any is added: text must pass
// record.ValidateText (and is stored trimmed), and ids must be present and
// unique. With replace the imported tasks become the whole list, and an
// empty import behaves like ClearAll. Otherwise they are appended after the
// existing tasks and may not reuse an existing id.
func (c *Controller) Import(ctx context.Context, tasks []record.Task, replace bool) (int, error) {
	seen := make(map[string]bool, len(tasks)+len(c.tasks))
	if !replace {
		for _, t := range c.tasks {
			seen[t.ID] = true
		}
	}

	incoming := make([]record.Task, 0, len(tasks))
	for i, t := range tasks {
		t = t.Clone()
		if t.ID == "" {
			return 0, &ImportError{Index: i, Err: ErrMissingID}
		}
		if seen[t.ID] {
			return 0, &ImportError{Index: i, ID: t.ID, Err: ErrDuplicateID}
		}
		text, err := record.ValidateText(t.Text)
		if err != nil {
			return 0, &ImportError{Index: i, ID: t.ID, Err: err}
		}
		t.Text = text
		t.Normalize()

		seen[t.ID] = true
		incoming = append(incoming, t)
	}

	if replace {
		if len(incoming) == 0 {
			return 0, c.ClearAll(ctx)
		}
		c.tasks = incoming
	} else {
		c.tasks = append(c.tasks, incoming...)
	}

	c.logger.Info("imported tasks", "key", c.key, "count", len(incoming), "replace", replace)
	return len(incoming), c.persist(ctx)
}
