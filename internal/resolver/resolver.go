// # internal/resolver/resolver.go
package resolver

import (
	"path/filepath"
	"sort"
	"strings"

	"orphan/internal/extract"
)

// probeExtensions is the suffix probing order for extensionless specifiers.
// The order is fixed so resolution stays deterministic.
var probeExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".py", ".go"}

// Resolver maps raw import specifiers to indexed files. It never touches the
// filesystem: only paths present in the index can resolve. Bare package
// specifiers and path aliases are treated as external and produce no target.
type Resolver struct {
	index  map[string]bool
	sorted []string
}

func New(files []string) *Resolver {
	r := &Resolver{
		index:  make(map[string]bool, len(files)),
		sorted: make([]string, 0, len(files)),
	}
	for _, f := range files {
		clean := filepath.Clean(f)
		if !r.index[clean] {
			r.index[clean] = true
			r.sorted = append(r.sorted, clean)
		}
	}
	sort.Strings(r.sorted)
	return r
}

// Resolve maps a specifier found in importer to zero-or-one indexed file.
// Resolution is pure: same importer and specifier always yield the same
// result.
func (r *Resolver) Resolve(importer, specifier string) (string, bool) {
	if specifier == "" {
		return "", false
	}

	language, _ := extract.LanguageForPath(importer)

	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return r.resolveRelative(importer, specifier)
	}

	if language == "python" {
		if strings.HasPrefix(specifier, ".") {
			return r.resolvePythonRelative(importer, specifier)
		}
		return r.resolvePythonAbsolute(specifier)
	}

	// Bare specifier in the JS family or a Go package path: external.
	return "", false
}

func (r *Resolver) resolveRelative(importer, specifier string) (string, bool) {
	base := filepath.Dir(importer)
	target := filepath.Clean(filepath.Join(base, filepath.FromSlash(specifier)))

	if r.index[target] {
		return target, true
	}

	for _, ext := range probeExtensions {
		if candidate := target + ext; r.index[candidate] {
			return candidate, true
		}
	}

	// Directory import: ./lib -> ./lib/index.*  (or a Python package).
	for _, ext := range probeExtensions {
		if candidate := filepath.Join(target, "index"+ext); r.index[candidate] {
			return candidate, true
		}
	}
	if candidate := filepath.Join(target, "__init__.py"); r.index[candidate] {
		return candidate, true
	}

	return "", false
}

// resolvePythonRelative handles dotted relative imports: one leading dot is
// the importer's package, each extra dot climbs one package up.
func (r *Resolver) resolvePythonRelative(importer, specifier string) (string, bool) {
	dots := 0
	for dots < len(specifier) && specifier[dots] == '.' {
		dots++
	}
	rest := specifier[dots:]

	dir := filepath.Dir(importer)
	for i := 1; i < dots; i++ {
		dir = filepath.Dir(dir)
	}

	if rest == "" {
		// "from . import x" points at the package itself.
		if candidate := filepath.Join(dir, "__init__.py"); r.index[candidate] {
			return candidate, true
		}
		return "", false
	}

	target := filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(rest, ".", "/")))
	if candidate := target + ".py"; r.index[candidate] {
		return candidate, true
	}
	if candidate := filepath.Join(target, "__init__.py"); r.index[candidate] {
		return candidate, true
	}
	return "", false
}

// resolvePythonAbsolute probes a dotted module path against the index by
// path suffix, mirroring how a source root on sys.path would anchor it. The
// sorted scan keeps ambiguous matches deterministic.
func (r *Resolver) resolvePythonAbsolute(specifier string) (string, bool) {
	relPath := filepath.FromSlash(strings.ReplaceAll(specifier, ".", "/"))
	suffixes := []string{
		string(filepath.Separator) + relPath + ".py",
		string(filepath.Separator) + filepath.Join(relPath, "__init__.py"),
	}

	for _, suffix := range suffixes {
		for _, candidate := range r.sorted {
			if strings.HasSuffix(candidate, suffix) {
				return candidate, true
			}
		}
	}
	return "", false
}
