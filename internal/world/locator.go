package world

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"rerview/internal/config"
)

// ErrNoWorlds is returned when a save holds no statistics file at all.
var ErrNoWorlds = errors.New("no world with statistics found")

// Locator finds statistics files inside a save directory.
type Locator struct {
	saveDir       string
	statsFile     string
	dataDir       string
	dimensionsDir string
	basic         []config.BasicWorld
	logger        *slog.Logger
}

// NewLocator creates a Locator for the layout described by cfg.
func NewLocator(cfg config.Config, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		saveDir:       cfg.SaveDir,
		statsFile:     cfg.StatsFile,
		dataDir:       cfg.DataDir,
		dimensionsDir: cfg.DimensionsDir,
		basic:         cfg.BasicWorlds,
		logger:        logger,
	}
}

// Discover builds the world table. Vanilla dimensions come first; worlds
// found under the dimensions directory are merged over them, so a datapack
// dimension reusing a vanilla id wins.
func (l *Locator) Discover() (*Table, error) {
	worlds := l.basicWorlds()
	worlds.Merge(l.extendedWorlds())
	if worlds.Len() == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoWorlds, l.saveDir)
	}
	l.logger.Debug("worlds discovered", "count", worlds.Len(), "save", l.saveDir)
	return worlds, nil
}

func (l *Locator) basicWorlds() *Table {
	t := NewTable()
	for _, bw := range l.basic {
		p := filepath.Join(l.saveDir, filepath.FromSlash(bw.Dir), l.dataDir, l.statsFile)
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		t.Set(bw.ID, p)
	}
	return t
}

func (l *Locator) extendedWorlds() *Table {
	t := NewTable()
	root := filepath.Join(l.saveDir, l.dimensionsDir)
	for p, err := range Find(root, l.statsFile) {
		if err != nil {
			l.logger.Warn("skipping unreadable directory", "error", err)
			continue
		}
		id, ok := l.idFromPath(root, p)
		if !ok {
			l.logger.Debug("statistics file outside a dimension folder", "path", p)
			continue
		}
		t.Set(id, p)
	}
	return t
}

// idFromPath turns root/<ns>/<name...>/<data>/<file> into "ns:name...".
func (l *Locator) idFromPath(root, p string) (ID, bool) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	n := len(parts)
	if n < 4 || parts[n-1] != l.statsFile || parts[n-2] != l.dataDir {
		return "", false
	}
	return parts[0] + ":" + strings.Join(parts[1:n-2], "/"), true
}

// Find yields every file called name under root, depth first in lexical
// order. root may itself be the file. A missing root yields nothing.
// Directory read errors are yielded and the walk goes on.
func Find(root, name string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				yield("", err)
			}
			return
		}
		if !info.IsDir() {
			if filepath.Base(root) == name {
				yield(root, nil)
			}
			return
		}

		stack := []string{root}
		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err := os.ReadDir(dir)
			if err != nil {
				if !yield("", err) {
					return
				}
				continue
			}
			var subdirs []string
			for _, e := range entries {
				full := filepath.Join(dir, e.Name())
				if e.IsDir() {
					subdirs = append(subdirs, full)
					continue
				}
				if e.Name() == name {
					if !yield(full, nil) {
						return
					}
				}
			}
			// Reverse push keeps the lexical order when popping.
			for i := len(subdirs) - 1; i >= 0; i-- {
				stack = append(stack, subdirs[i])
			}
		}
	}
}
