// # internal/indexer/indexer.go
package indexer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/time/rate"

	"orphan/internal/errors"
	"orphan/internal/extract"
)

type Options struct {
	ExcludeDirs  []string
	ExcludeFiles []string
	IncludeTests bool

	// ReadsPerSecond throttles ReadFile so a large tree does not starve
	// co-tenant IO. Zero disables the limiter.
	ReadsPerSecond float64
	ReadBurst      int
}

type Warning struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type Result struct {
	Files    []string
	Warnings []Warning
}

type Indexer struct {
	dirGlobs     []glob.Glob
	fileGlobs    []glob.Glob
	includeTests bool
	limiter      *rate.Limiter
}

func New(opts Options) (*Indexer, error) {
	idx := &Indexer{includeTests: opts.IncludeTests}

	for _, p := range opts.ExcludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeValidation, "invalid exclude dir pattern"),
				errors.CtxPattern, p)
		}
		idx.dirGlobs = append(idx.dirGlobs, g)
	}

	for _, p := range opts.ExcludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeValidation, "invalid exclude file pattern"),
				errors.CtxPattern, p)
		}
		idx.fileGlobs = append(idx.fileGlobs, g)
	}

	if opts.ReadsPerSecond > 0 {
		burst := opts.ReadBurst
		if burst <= 0 {
			burst = 64
		}
		idx.limiter = rate.NewLimiter(rate.Limit(opts.ReadsPerSecond), burst)
	}

	return idx, nil
}

// Scan enumerates supported source files under the roots. Paths come back
// absolute, cleaned, deduplicated and lexically sorted. A missing root is
// fatal; an unreadable subtree degrades to a warning.
func (idx *Indexer) Scan(roots []string) (Result, error) {
	var res Result
	seen := make(map[string]bool)

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return Result{}, errors.AddContext(
				errors.Wrap(err, errors.CodeInput, "resolve scan root"),
				errors.CtxRoot, root)
		}

		info, err := os.Stat(absRoot)
		if err != nil {
			return Result{}, errors.AddContext(
				errors.Wrap(err, errors.CodeInput, "scan root does not exist"),
				errors.CtxRoot, root)
		}
		if !info.IsDir() {
			return Result{}, errors.AddContext(
				errors.New(errors.CodeInput, "scan root is not a directory"),
				errors.CtxRoot, root)
		}

		walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				res.Warnings = append(res.Warnings, Warning{
					Path:   path,
					Reason: fmt.Sprintf("unreadable: %v", err),
				})
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path != absRoot && idx.shouldExcludeDir(base) {
					return filepath.SkipDir
				}
				return nil
			}

			if !extract.IsSupportedPath(path) {
				return nil
			}
			if !idx.includeTests && extract.IsTestFile(path) {
				return nil
			}
			for _, g := range idx.fileGlobs {
				if g.Match(base) {
					return nil
				}
			}

			clean := filepath.Clean(path)
			if !seen[clean] {
				seen[clean] = true
				res.Files = append(res.Files, clean)
			}
			return nil
		})
		if walkErr != nil {
			return Result{}, errors.Wrap(walkErr, errors.CodeInternal, "walk scan root")
		}
	}

	sort.Strings(res.Files)
	return res, nil
}

// ReadFile reads one indexed file, honoring the rate limiter when one is
// configured.
func (idx *Indexer) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if idx.limiter != nil {
		if err := idx.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(
			errors.Wrap(err, errors.CodeFileRead, "read source file"),
			errors.CtxPath, path)
	}
	return data, nil
}

func (idx *Indexer) shouldExcludeDir(base string) bool {
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, g := range idx.dirGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}
