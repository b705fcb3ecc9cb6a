// # internal/graph/graph.go
package graph

import (
	"sort"
)

// Graph is the file-level import graph for one scan. Nodes come only from
// the index; edges only from resolved specifiers. It is plain adjacency
// data built by the single-threaded aggregation pass and read-only after.
type Graph struct {
	nodes      map[string]string          // path -> language
	imports    map[string]map[string]bool // importer -> targets
	importedBy map[string]map[string]bool // target -> importers
	edgeCount  int
}

func New() *Graph {
	return &Graph{
		nodes:      make(map[string]string),
		imports:    make(map[string]map[string]bool),
		importedBy: make(map[string]map[string]bool),
	}
}

func (g *Graph) AddNode(path, language string) {
	g.nodes[path] = language
}

func (g *Graph) HasNode(path string) bool {
	_, ok := g.nodes[path]
	return ok
}

// AddEdge records importer -> imported. Both endpoints must be indexed
// nodes, self-imports are dropped, and duplicate edges from the same
// importer count once.
func (g *Graph) AddEdge(importer, imported string) {
	if importer == imported {
		return
	}
	if !g.HasNode(importer) || !g.HasNode(imported) {
		return
	}
	if g.imports[importer] == nil {
		g.imports[importer] = make(map[string]bool)
	}
	if g.imports[importer][imported] {
		return
	}
	g.imports[importer][imported] = true

	if g.importedBy[imported] == nil {
		g.importedBy[imported] = make(map[string]bool)
	}
	g.importedBy[imported][importer] = true
	g.edgeCount++
}

// InDegree is the number of distinct files importing path.
func (g *Graph) InDegree(path string) int {
	return len(g.importedBy[path])
}

func (g *Graph) NodeCount() int { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Nodes returns every node path in lexical order.
func (g *Graph) Nodes() []string {
	paths := make([]string, 0, len(g.nodes))
	for p := range g.nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Partition splits zero in-degree nodes by the entry-point whitelist.
// All slices are lexically sorted.
type Partition struct {
	EntryPoints []string
	Orphans     []string
	Normal      []string
}

func (g *Graph) Classify(isEntryPoint func(path string) bool) Partition {
	var part Partition
	for _, path := range g.Nodes() {
		switch {
		case g.InDegree(path) > 0:
			part.Normal = append(part.Normal, path)
		case isEntryPoint(path):
			part.EntryPoints = append(part.EntryPoints, path)
		default:
			part.Orphans = append(part.Orphans, path)
		}
	}
	return part
}
