package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/roach88/tasklist/internal/kv"
	"github.com/roach88/tasklist/internal/record"
)

// Controller owns the task list and its view parameters.
type Controller struct {
	store   kv.Store
	key     string
	logger  *slog.Logger
	factory *record.Factory
	orderer record.Orderer

	tasks  []record.Task
	filter record.Filter
	sort   record.SortMode
}

// New creates a controller over store. The list starts empty; call Load to
// restore a persisted snapshot.
func New(store kv.Store, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		key:     DefaultKey,
		logger:  slog.Default(),
		factory: record.NewFactory(),
		orderer: record.NewOrderer(language.English),
		tasks:   []record.Task{},
		filter:  record.FilterAll,
		sort:    record.SortDate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the store key the list is persisted under.
func (c *Controller) Key() string {
	return c.key
}

// Load replaces the in-memory list with the persisted snapshot.
//
// Failures are recovered here: an unreadable store or a corrupt snapshot is
// logged and the list starts empty.
func (c *Controller) Load(ctx context.Context) {
	c.tasks = []record.Task{}

	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.Error("failed to read stored tasks", "key", c.key, "error", err)
		return
	}
	if !ok {
		c.logger.Debug("no stored tasks", "key", c.key)
		return
	}

	tasks, err := decodeSnapshot(data)
	if err != nil {
		perr := &ParseError{Key: c.key, Err: err}
		c.logger.Error("failed to parse stored tasks", "key", c.key, "error", perr)
		return
	}

	c.tasks = tasks
	c.logger.Debug("loaded tasks", "key", c.key, "count", len(tasks))
}

// persist writes the full list under the key. An empty list is not written.
func (c *Controller) persist(ctx context.Context) error {
	if len(c.tasks) == 0 {
		c.logger.Debug("skipping persist of empty list", "key", c.key)
		return nil
	}

	data, err := encodeSnapshot(c.tasks)
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		c.logger.Error("failed to persist tasks", "key", c.key, "error", err)
		return fmt.Errorf("persist: %w", err)
	}
	c.logger.Debug("persisted tasks", "key", c.key, "count", len(c.tasks))
	return nil
}

// Add builds a record from text and opts and puts it at the front of the
// list. Validation errors are returned unchanged and leave the list as is.
func (c *Controller) Add(ctx context.Context, text string, opts record.Options) (record.Task, error) {
	task, err := c.factory.Build(text, opts)
	if err != nil {
		return record.Task{}, err
	}

	c.tasks = append([]record.Task{task}, c.tasks...)
	return task.Clone(), c.persist(ctx)
}

// Toggle flips the completion state of the task with the given id and
// reports whether it was found.
func (c *Controller) Toggle(ctx context.Context, id string) (bool, error) {
	i := c.index(id)
	if i >= 0 {
		c.tasks[i].Completed = !c.tasks[i].Completed
	}
	return i >= 0, c.persist(ctx)
}

// Delete removes the task with the given id and reports whether it was found.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	i := c.index(id)
	if i >= 0 {
		c.tasks = append(c.tasks[:i:i], c.tasks[i+1:]...)
	}
	return i >= 0, c.persist(ctx)
}

// Update merges patch onto the task with the given id and reports whether it
// was found. Patched text is validated; a patch that would change the id is
// rejected. On error the task is left unchanged.
func (c *Controller) Update(ctx context.Context, id string, patch record.Patch) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, c.persist(ctx)
	}

	updated, err := patch.Apply(c.tasks[i])
	if err != nil {
		return true, err
	}
	c.tasks[i] = updated
	return true, c.persist(ctx)
}

// ClearCompleted removes every completed task and returns how many were removed.
func (c *Controller) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]record.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(c.tasks) - len(kept)
	c.tasks = kept
	return removed, c.persist(ctx)
}

// ClearAll empties the list and removes the persisted snapshot.
func (c *Controller) ClearAll(ctx context.Context) error {
	c.tasks = []record.Task{}
	if err := c.store.Delete(ctx, c.key); err != nil {
		c.logger.Error("failed to remove stored tasks", "key", c.key, "error", err)
		return fmt.Errorf("clear all: %w", err)
	}
	return nil
}

// SetFilter sets the view's filter mode. Unrecognized modes show all tasks.
func (c *Controller) SetFilter(f record.Filter) {
	c.filter = f
}

// SetSort sets the view's sort mode. Unrecognized modes keep list order.
func (c *Controller) SetSort(m record.SortMode) {
	c.sort = m
}

// Filter returns the current filter mode.
func (c *Controller) Filter() record.Filter {
	return c.filter
}

// Sort returns the current sort mode.
func (c *Controller) Sort() record.SortMode {
	return c.sort
}

// View returns the filtered, then sorted, tasks. It is computed on every call.
func (c *Controller) View() []record.Task {
	return cloneAll(c.orderer.Order(record.SelectByStatus(c.tasks, c.filter), c.sort))
}

// All returns every task in list order, newest additions first.
func (c *Controller) All() []record.Task {
	return cloneAll(c.tasks)
}

// Len returns the number of tasks in the list.
func (c *Controller) Len() int {
	return len(c.tasks)
}

// Get returns the task with the given id.
func (c *Controller) Get(id string) (record.Task, bool) {
	i := c.index(id)
	if i < 0 {
		return record.Task{}, false
	}
	return c.tasks[i].Clone(), true
}

// Stats aggregates the whole list, regardless of the current filter.
func (c *Controller) Stats() record.Stats {
	return record.ComputeStats(c.tasks)
}

func (c *Controller) index(id string) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []record.Task) []record.Task {
	out := make([]record.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// encodeSnapshot serializes tasks as a JSON array.
// HTML escaping is disabled so stored text stays byte-for-byte readable.
func encodeSnapshot(tasks []record.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeSnapshot parses a stored JSON array of tasks. A JSON null decodes
// to an empty list.
func decodeSnapshot(data []byte) ([]record.Task, error) {
	var tasks []record.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []record.Task{}
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks, nil
}
