// # internal/extract/python.go
package extract

import (
	"regexp"
)

// Line-anchored matching of the two static import statements. Relative dots
// are preserved in the specifier so the resolver can anchor them to the
// importing file's package.
var (
	pyImportRe = regexp.MustCompile(`(?m)^\s*import\s+([\w\.]+(?:\s*,\s*[\w\.]+)*)`)
	pyFromRe   = regexp.MustCompile(`(?m)^\s*from\s+([\.\w]+)\s+import\b`)
	pySplitRe  = regexp.MustCompile(`\s*,\s*`)
)

type PythonExtractor struct{}

func (e *PythonExtractor) Language() string { return "python" }

func (e *PythonExtractor) Extract(content []byte) []string {
	text := string(content)

	var specifiers []string
	for _, m := range pyImportRe.FindAllStringSubmatch(text, -1) {
		specifiers = append(specifiers, pySplitRe.Split(m[1], -1)...)
	}
	for _, m := range pyFromRe.FindAllStringSubmatch(text, -1) {
		specifiers = append(specifiers, m[1])
	}
	return dedupe(specifiers)
}
