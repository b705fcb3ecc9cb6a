// # internal/extract/golang.go
package extract

import (
	"regexp"
	"strings"
)

// Go import paths are package paths, never file-relative, so edges only
// materialize when a downstream resolver knows the module layout. The
// extractor still reports them: indexed Go files participate in the node set
// and external paths fall out at resolution.
var (
	goSingleRe = regexp.MustCompile(`(?m)^\s*import\s+(?:\w+\s+|\.\s+|_\s+)?"([^"]+)"`)
	goBlockRe  = regexp.MustCompile(`(?ms)^\s*import\s*\((.*?)\)`)
	goPathRe   = regexp.MustCompile(`"([^"]+)"`)
)

type GoExtractor struct{}

func (e *GoExtractor) Language() string { return "go" }

func (e *GoExtractor) Extract(content []byte) []string {
	text := string(content)

	var specifiers []string
	for _, m := range goSingleRe.FindAllStringSubmatch(text, -1) {
		specifiers = append(specifiers, m[1])
	}
	for _, block := range goBlockRe.FindAllStringSubmatch(text, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			if m := goPathRe.FindStringSubmatch(line); m != nil {
				specifiers = append(specifiers, m[1])
			}
		}
	}
	return dedupe(specifiers)
}
