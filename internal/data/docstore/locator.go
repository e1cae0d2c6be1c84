// Package docstore maps contract types to their documentation trees. Primary
// trees are cached for the whole run and saved once at the end; companion
// ("+Notifications") trees are reloaded on every request.
package docstore

import (
	"path/filepath"
	"sort"

	"docfixer/internal/core/errors"
	"docfixer/internal/data/contract"
	"docfixer/internal/data/doctree"
)

type Locator struct {
	root            string
	companionSuffix string
	storage         doctree.Storage

	primary map[string]cached
}

type cached struct {
	typ  *contract.Type
	tree *doctree.Tree
}

// NewLocator resolves documents below root (the locale directory, e.g.
// <docs>/en).
func NewLocator(root, companionSuffix string, storage doctree.Storage) *Locator {
	return &Locator{
		root:            root,
		companionSuffix: companionSuffix,
		storage:         storage,
		primary:         make(map[string]cached),
	}
}

// PathFor derives {root}/{namespace}/{typeName}[companionSuffix].xml.
func (l *Locator) PathFor(t *contract.Type, companion bool) string {
	name := t.Name
	if companion {
		name += l.companionSuffix
	}
	return filepath.Join(l.root, t.Namespace, name+".xml")
}

// Primary returns the cached tree for t, loading it on first use. Failed
// loads are not cached, but the error is returned every time.
func (l *Locator) Primary(t *contract.Type) (*doctree.Tree, error) {
	key := t.FullName()
	if c, ok := l.primary[key]; ok {
		return c.tree, nil
	}
	tree, err := l.storage.Load(l.PathFor(t, false))
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxType, key)
	}
	l.primary[key] = cached{typ: t, tree: tree}
	return tree, nil
}

// Companion always reloads the companion tree from storage.
func (l *Locator) Companion(t *contract.Type) (*doctree.Tree, error) {
	tree, err := l.storage.Load(l.PathFor(t, true))
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeCompanionLoadFailure, "companion document unavailable"), errors.CtxType, t.FullName())
	}
	return tree, nil
}

// SaveCompanion persists a companion tree immediately.
func (l *Locator) SaveCompanion(t *contract.Type, tree *doctree.Tree) error {
	return l.storage.Save(l.PathFor(t, true), tree)
}

// Loaded returns the full names of the cached primary trees, sorted.
func (l *Locator) Loaded() []string {
	names := make([]string, 0, len(l.primary))
	for name := range l.primary {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SaveAll writes every cached primary tree back to where it was loaded from.
// It keeps going after a failed save and returns the paths it did write plus
// the first error.
func (l *Locator) SaveAll() ([]string, error) {
	var (
		written  []string
		firstErr error
	)
	for _, name := range l.Loaded() {
		c := l.primary[name]
		path := l.PathFor(c.typ, false)
		if err := l.storage.Save(path, c.tree); err != nil {
			if firstErr == nil {
				firstErr = errors.AddContext(err, errors.CtxPath, path)
			}
			continue
		}
		written = append(written, path)
	}
	return written, firstErr
}
