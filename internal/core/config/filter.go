package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// TypeMatcher decides which contract types take part in a run. Exact names
// win over globs; an empty matcher accepts everything.
type TypeMatcher struct {
	exact   map[string]bool
	include []glob.Glob
	exclude []glob.Glob
}

// NewTypeMatcher compiles the filter section. Globs use '.' as the separator,
// so "MonoTouch.UIKit.*" matches types of that namespace only.
func NewTypeMatcher(f Filter) (*TypeMatcher, error) {
	m := &TypeMatcher{exact: make(map[string]bool, len(f.Types))}
	for _, name := range f.Types {
		m.exact[name] = true
	}
	for _, p := range f.Include {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		m.include = append(m.include, g)
	}
	for _, p := range f.Exclude {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

func (m *TypeMatcher) Match(fullName string) bool {
	if m == nil {
		return true
	}
	if len(m.exact) > 0 && !m.exact[fullName] {
		return false
	}
	for _, g := range m.exclude {
		if g.Match(fullName) {
			return false
		}
	}
	if len(m.include) == 0 {
		return true
	}
	for _, g := range m.include {
		if g.Match(fullName) {
			return true
		}
	}
	return false
}
