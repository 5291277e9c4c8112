package todo

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/roach88/tasklist/internal/record"
)

// DefaultKey is the store key the collection is persisted under.
const DefaultKey = "todos-app-data"

// Option configures a Controller.
type Option func(*Controller)

// WithKey sets the store key.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the logger used for recovered failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithFactory sets the record factory, for deterministic clocks and ids.
func WithFactory(f *record.Factory) Option {
	return func(c *Controller) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithLocale sets the collation locale used by alphabetical sorting.
func WithLocale(tag language.Tag) Option {
	return func(c *Controller) {
		c.orderer = record.NewOrderer(tag)
	}
}

// WithFilter sets the initial filter mode.
func WithFilter(f record.Filter) Option {
	return func(c *Controller) { c.filter = f }
}

// WithSort sets the initial sort mode.
func WithSort(m record.SortMode) Option {
	return func(c *Controller) { c.sort = m }
}
