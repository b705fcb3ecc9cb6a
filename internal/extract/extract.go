// # internal/extract/extract.go
package extract

import (
	"path/filepath"
	"strings"
)

// Extractor pulls raw import specifiers out of source text. Matching is
// purely lexical: no evaluation, no AST. Dynamic/computed specifiers are a
// known false-negative source.
type Extractor interface {
	Language() string
	Extract(content []byte) []string
}

var languageByExt = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "javascript",
	".tsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".py":  "python",
	".go":  "go",
}

// LanguageForPath maps a file extension to the extractor language family.
func LanguageForPath(path string) (string, bool) {
	lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// IsSupportedPath reports whether any extractor handles the file.
func IsSupportedPath(path string) bool {
	_, ok := LanguageForPath(path)
	return ok
}

// IsTestFile matches the common test-file naming conventions of the
// supported language families.
func IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(base, "_test.go") || strings.HasSuffix(base, "_test.py") {
		return true
	}
	if strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py") {
		return true
	}
	for _, marker := range []string{".test.", ".spec."} {
		if strings.Contains(base, marker) {
			return true
		}
	}
	return false
}

type Registry struct {
	byLanguage map[string]Extractor
}

// NewRegistry returns a registry with every built-in extractor registered.
func NewRegistry() *Registry {
	r := &Registry{byLanguage: make(map[string]Extractor)}
	r.Register(&JavaScriptExtractor{})
	r.Register(&PythonExtractor{})
	r.Register(&GoExtractor{})
	return r
}

func (r *Registry) Register(e Extractor) {
	r.byLanguage[e.Language()] = e
}

func (r *Registry) ForLanguage(language string) (Extractor, bool) {
	e, ok := r.byLanguage[language]
	return e, ok
}

func (r *Registry) ForPath(path string) (Extractor, bool) {
	lang, ok := LanguageForPath(path)
	if !ok {
		return nil, false
	}
	return r.ForLanguage(lang)
}

func dedupe(specifiers []string) []string {
	seen := make(map[string]bool, len(specifiers))
	out := specifiers[:0]
	for _, s := range specifiers {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
