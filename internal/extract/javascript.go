// # internal/extract/javascript.go
package extract

import (
	"regexp"
)

// Covers the static forms of the ES module and CommonJS families:
//
//	import x from "spec"      import { a, b } from "spec"
//	import "spec"             import("spec")
//	export { a } from "spec"  export * from "spec"
//	require("spec")
//
// Template literals and computed arguments never match.
var (
	jsFromRe    = regexp.MustCompile(`(?m)(?:^|[;{}])\s*(?:import|export)\s+[^"'` + "`" + `;]*?from\s+["']([^"']+)["']`)
	jsBareRe    = regexp.MustCompile(`(?m)(?:^|[;{}])\s*import\s+["']([^"']+)["']`)
	jsCallRe    = regexp.MustCompile(`(?:require|import)\s*\(\s*["']([^"']+)["']\s*\)`)
	jsCommentRe = regexp.MustCompile(`(?m)^\s*//.*$`)
)

type JavaScriptExtractor struct{}

func (e *JavaScriptExtractor) Language() string { return "javascript" }

func (e *JavaScriptExtractor) Extract(content []byte) []string {
	text := jsCommentRe.ReplaceAllString(string(content), "")

	var specifiers []string
	for _, re := range []*regexp.Regexp{jsFromRe, jsBareRe, jsCallRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			specifiers = append(specifiers, m[1])
		}
	}
	return dedupe(specifiers)
}
