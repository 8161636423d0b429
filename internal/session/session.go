// Package session holds the operator's current world selection and the
// statistics loaded for it.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"rerview/internal/stats"
	"rerview/internal/world"
)

// ErrWorldNotFound is returned by SelectWorld for ids missing from the table.
var ErrWorldNotFound = errors.New("world not found")

// Loader reads one statistics file.
type Loader interface {
	Load(path string) (*stats.Stats, error)
}

// Active is the selected world together with its statistics. It is never
// modified after construction; a selection swaps in a new value.
type Active struct {
	ID    world.ID
	Path  string
	Stats *stats.Stats
}

// Session is the mutable state shared by the REPL commands.
type Session struct {
	worlds *world.Table
	loader Loader
	logger *slog.Logger
	active *Active
}

// New creates a Session over the discovered worlds. Call Initialize before
// use.
func New(worlds *world.Table, loader Loader, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if worlds == nil {
		worlds = world.NewTable()
	}
	return &Session{worlds: worlds, loader: loader, logger: logger}
}

// Initialize activates the first world of the table.
func (s *Session) Initialize() error {
	id, _, ok := s.worlds.First()
	if !ok {
		return world.ErrNoWorlds
	}
	return s.SelectWorld(id)
}

// SelectWorld loads id and makes it active. On any error the previously
// active world stays in place.
func (s *Session) SelectWorld(id world.ID) error {
	path, ok := s.worlds.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWorldNotFound, id)
	}
	st, err := s.loader.Load(path)
	if err != nil {
		s.logger.Warn("world load failed", "world", id, "error", err)
		return fmt.Errorf("load %s: %w", id, err)
	}
	s.active = &Active{ID: id, Path: path, Stats: st}
	s.logger.Info("world selected", "world", id, "blocks", len(st.IDs))
	return nil
}

// Active returns the selected world, or nil before Initialize succeeds.
func (s *Session) Active() *Active { return s.active }

// Worlds returns the world table.
func (s *Session) Worlds() *world.Table { return s.worlds }
