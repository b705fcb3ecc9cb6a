// # internal/report/report.go
package report

import (
	"encoding/json"
	"path/filepath"
	"time"

	"orphan/internal/graph"
	"orphan/internal/indexer"
)

// Report is the complete result of one scan. It is plain data: the graph
// itself is discarded once the report exists.
type Report struct {
	RunID            string            `json:"run_id"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Roots            []string          `json:"roots"`
	ScannedFileCount int               `json:"scanned_file_count"`
	SkippedFileCount int               `json:"skipped_files"`
	EdgesTotal       int               `json:"edges_total"`
	Orphans          []string          `json:"orphans"`
	EntryPoints      []string          `json:"entry_points_excluded"`
	OrphanClusters   [][]string        `json:"orphan_clusters"`
	Warnings         []indexer.Warning `json:"warnings"`
	Duration         time.Duration     `json:"duration_ns"`
}

// Build assembles a report from the aggregated graph. Slices are always
// non-nil so the JSON form renders [] instead of null.
func Build(g *graph.Graph, part graph.Partition, warnings []indexer.Warning, roots []string, runID string, duration time.Duration) *Report {
	r := &Report{
		RunID:            runID,
		GeneratedAt:      time.Now().UTC(),
		Roots:            append([]string{}, roots...),
		ScannedFileCount: g.NodeCount(),
		SkippedFileCount: len(warnings),
		EdgesTotal:       g.EdgeCount(),
		Orphans:          append([]string{}, part.Orphans...),
		EntryPoints:      append([]string{}, part.EntryPoints...),
		OrphanClusters:   [][]string{},
		Warnings:         append([]indexer.Warning{}, warnings...),
		Duration:         duration,
	}
	for _, cluster := range g.OrphanClusters() {
		r.OrphanClusters = append(r.OrphanClusters, append([]string{}, cluster...))
	}
	return r
}

// NothingScanned distinguishes an empty tree from a clean one.
func (r *Report) NothingScanned() bool {
	return r.ScannedFileCount == 0
}

// Relativize rewrites every path relative to base when possible. Paths
// outside base stay absolute.
func (r *Report) Relativize(base string) {
	rel := func(p string) string {
		if out, err := filepath.Rel(base, p); err == nil {
			return filepath.ToSlash(out)
		}
		return p
	}
	for i, p := range r.Orphans {
		r.Orphans[i] = rel(p)
	}
	for i, p := range r.EntryPoints {
		r.EntryPoints[i] = rel(p)
	}
	for _, cluster := range r.OrphanClusters {
		for i, p := range cluster {
			cluster[i] = rel(p)
		}
	}
	for i := range r.Warnings {
		r.Warnings[i].Path = rel(r.Warnings[i].Path)
	}
}

// RenderJSON is the machine-readable output mode.
func (r *Report) RenderJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
