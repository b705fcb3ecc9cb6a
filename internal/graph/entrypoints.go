// # internal/graph/entrypoints.go
package graph

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"orphan/internal/errors"
)

// EntryMatcher matches base filenames against the entry-point whitelist.
// Matching is case-insensitive, like the conventions it encodes.
type EntryMatcher struct {
	globs []glob.Glob
}

func NewEntryMatcher(patterns []string) (*EntryMatcher, error) {
	m := &EntryMatcher{}
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeValidation, "invalid entry point pattern"),
				errors.CtxPattern, p)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m *EntryMatcher) Match(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	for _, g := range m.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}
