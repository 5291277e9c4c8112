package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/tasklist/internal/kv"
	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/todo"
)

// session is an open store and the controller loaded from it.
type session struct {
	store      kv.Store
	controller *todo.Controller
	ownsStore  bool
}

// Close releases the store if the session opened it.
func (s *session) Close() error {
	if !s.ownsStore {
		return nil
	}
	return s.store.Close()
}

// openSession opens the configured store and loads the task list.
// setup must have run first.
func (o *RootOptions) openSession(ctx context.Context) (*session, error) {
	cfg := o.config

	store := o.Store
	owns := false
	if store == nil {
		if cfg.DBPath != kv.MemoryPath {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		o.logger.Debug("opening database", "path", cfg.DBPath)
		st, err := kv.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		store = st
		owns = true
	}

	// Validated by config.Load; these cannot fail here.
	locale, _ := cfg.LocaleTag()
	filter, _ := record.ParseFilter(cfg.DefaultFilter)
	sortMode, _ := record.ParseSortMode(cfg.DefaultSort)

	c := todo.New(store,
		todo.WithKey(cfg.StorageKey),
		todo.WithLogger(o.logger),
		todo.WithFactory(o.Factory),
		todo.WithLocale(locale),
		todo.WithFilter(filter),
		todo.WithSort(sortMode),
	)
	c.Load(ctx)

	return &session{store: store, controller: c, ownsStore: owns}, nil
}

// withSession opens a session, runs fn and closes the session. Failing to
// open the store is reported as a storage error.
func (o *RootOptions) withSession(ctx context.Context, formatter *OutputFormatter, fn func(*todo.Controller) error) error {
	s, err := o.openSession(ctx)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeStorage, fmt.Sprintf("open store: %v", err), nil)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			o.logger.Warn("failed to close store", "error", cerr)
		}
	}()
	return fn(s.controller)
}

// dropIfEmpty removes the stored snapshot once the list is empty. The
// controller skips writing an empty list, which would otherwise leave the
// previous snapshot for the next command to load.
func dropIfEmpty(ctx context.Context, c *todo.Controller) error {
	if c.Len() > 0 {
		return nil
	}
	return c.ClearAll(ctx)
}
