package layout

import (
	"context"
	"fmt"
	"sync"

	"entity-display/internal/common"
	"entity-display/internal/ctxlog"
	"entity-display/internal/fsutil"
	"entity-display/internal/match"
)

// Registry is an in-memory Provider. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	layouts map[string]*Definition
}

// NewRegistry returns a registry holding the built-in default layout.
func NewRegistry() *Registry {
	r := &Registry{layouts: make(map[string]*Definition)}
	r.layouts[DefaultID] = Default()

	return r
}

// Register adds def after checking that its regions form a valid catalog.
// Redefining the built-in default layout is allowed once, from a file.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.ID == "" {
		return fmt.Errorf("layout id must not be empty")
	}

	if _, err := def.Catalog(); err != nil {
		return fmt.Errorf("invalid layout %q: %w", def.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.layouts[def.ID]; ok && (def.ID != DefaultID || existing.Source != "") {
		return fmt.Errorf("layout %q is already registered from %s", def.ID, sourceName(existing))
	}

	r.layouts[def.ID] = def

	return nil
}

// Resolve implements Provider.
func (r *Registry) Resolve(id string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if def, ok := r.layouts[id]; ok {
		return def, nil
	}

	return nil, &UnknownLayoutError{
		ID:          id,
		Suggestions: match.Suggest(id, common.SortedKeys(r.layouts), match.DefaultLimit),
	}
}

// IDs returns the registered layout ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return common.SortedKeys(r.layouts)
}

// LoadDir parses every .hcl file under path and registers its layouts.
// path may also name a single file.
func (r *Registry) LoadDir(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return fmt.Errorf("failed to find layout files: %w", err)
	}

	logger.Debug("Discovered layout files.", "path", path, "count", len(files))

	for _, file := range files {
		defs, err := ParseFile(file)
		if err != nil {
			return err
		}

		for _, def := range defs {
			if err := r.Register(def); err != nil {
				return err
			}

			logger.Debug("Registered layout.", "id", def.ID, "regions", len(def.Regions), "file", file)
		}
	}

	logger.Info("Layouts loaded.", "count", len(r.IDs()))

	return nil
}

func sourceName(def *Definition) string {
	if def.Source == "" {
		return "builtin"
	}

	return def.Source
}
