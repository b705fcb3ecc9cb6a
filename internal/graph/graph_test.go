// # internal/graph/graph_test.go
package graph

import (
	"reflect"
	"testing"
)

func TestGraph_AddEdge(t *testing.T) {
	g := New()
	g.AddNode("a.js", "javascript")
	g.AddNode("b.js", "javascript")

	g.AddEdge("a.js", "b.js")
	if g.InDegree("b.js") != 1 {
		t.Errorf("Expected in-degree 1, got %d", g.InDegree("b.js"))
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
}

func TestGraph_DuplicateEdgeCountsOnce(t *testing.T) {
	g := New()
	g.AddNode("a.js", "javascript")
	g.AddNode("b.js", "javascript")

	g.AddEdge("a.js", "b.js")
	g.AddEdge("a.js", "b.js")

	if g.InDegree("b.js") != 1 {
		t.Errorf("Expected in-degree 1 after duplicate edge, got %d", g.InDegree("b.js"))
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge after duplicate, got %d", g.EdgeCount())
	}
}

func TestGraph_SelfImportIgnored(t *testing.T) {
	g := New()
	g.AddNode("a.js", "javascript")

	g.AddEdge("a.js", "a.js")
	if g.InDegree("a.js") != 0 {
		t.Errorf("Self-import must not count, got in-degree %d", g.InDegree("a.js"))
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
}

func TestGraph_EdgeRequiresIndexedNodes(t *testing.T) {
	g := New()
	g.AddNode("a.js", "javascript")

	g.AddEdge("a.js", "ghost.js")
	g.AddEdge("ghost.js", "a.js")

	if g.NodeCount() != 1 {
		t.Errorf("Unresolved targets must not create nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
}

func TestGraph_Classify(t *testing.T) {
	g := New()
	for _, p := range []string{"src/index.js", "src/a.js", "src/b.js", "src/orphan.js"} {
		g.AddNode(p, "javascript")
	}
	g.AddEdge("src/index.js", "src/a.js")
	g.AddEdge("src/a.js", "src/b.js")

	matcher, err := NewEntryMatcher([]string{"index.*"})
	if err != nil {
		t.Fatal(err)
	}

	part := g.Classify(matcher.Match)

	if !reflect.DeepEqual(part.EntryPoints, []string{"src/index.js"}) {
		t.Errorf("Unexpected entry points: %v", part.EntryPoints)
	}
	if !reflect.DeepEqual(part.Orphans, []string{"src/orphan.js"}) {
		t.Errorf("Unexpected orphans: %v", part.Orphans)
	}
	if !reflect.DeepEqual(part.Normal, []string{"src/a.js", "src/b.js"}) {
		t.Errorf("Unexpected normal nodes: %v", part.Normal)
	}
}

func TestGraph_ClassifyDeterministicOrder(t *testing.T) {
	g := New()
	for _, p := range []string{"z.js", "m.js", "a.js"} {
		g.AddNode(p, "javascript")
	}
	matcher, err := NewEntryMatcher(nil)
	if err != nil {
		t.Fatal(err)
	}
	part := g.Classify(matcher.Match)
	if !reflect.DeepEqual(part.Orphans, []string{"a.js", "m.js", "z.js"}) {
		t.Errorf("Orphans not sorted: %v", part.Orphans)
	}
}

func TestGraph_OrphanClusters(t *testing.T) {
	g := New()
	// a <-> b: mutual cycle, nothing external imports the pair.
	// c -> d: d is referenced from outside any cycle.
	// index -> c keeps c alive.
	for _, p := range []string{"a.js", "b.js", "c.js", "d.js", "index.js"} {
		g.AddNode(p, "javascript")
	}
	g.AddEdge("a.js", "b.js")
	g.AddEdge("b.js", "a.js")
	g.AddEdge("c.js", "d.js")
	g.AddEdge("index.js", "c.js")

	clusters := g.OrphanClusters()
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 orphan cluster, got %d: %v", len(clusters), clusters)
	}
	if !reflect.DeepEqual(clusters[0], []string{"a.js", "b.js"}) {
		t.Errorf("Unexpected cluster: %v", clusters[0])
	}

	// Members of a mutual cycle never appear as zero in-degree orphans.
	matcher, err := NewEntryMatcher([]string{"index.*"})
	if err != nil {
		t.Fatal(err)
	}
	part := g.Classify(matcher.Match)
	for _, orphan := range part.Orphans {
		if orphan == "a.js" || orphan == "b.js" {
			t.Errorf("Cycle member %s misclassified as orphan", orphan)
		}
	}
}

func TestGraph_OrphanClusters_ExternallyReferencedCycleExcluded(t *testing.T) {
	g := New()
	for _, p := range []string{"a.js", "b.js", "main.js"} {
		g.AddNode(p, "javascript")
	}
	g.AddEdge("a.js", "b.js")
	g.AddEdge("b.js", "a.js")
	g.AddEdge("main.js", "a.js")

	if clusters := g.OrphanClusters(); len(clusters) != 0 {
		t.Errorf("Externally imported cycle must not be a cluster, got %v", clusters)
	}
}

func TestGraph_OrphanClusters_ThreeNodeCycle(t *testing.T) {
	g := New()
	for _, p := range []string{"x.js", "y.js", "z.js"} {
		g.AddNode(p, "javascript")
	}
	g.AddEdge("x.js", "y.js")
	g.AddEdge("y.js", "z.js")
	g.AddEdge("z.js", "x.js")

	clusters := g.OrphanClusters()
	if len(clusters) != 1 || len(clusters[0]) != 3 {
		t.Fatalf("Expected one 3-node cluster, got %v", clusters)
	}
}

func TestEntryMatcher(t *testing.T) {
	matcher, err := NewEntryMatcher([]string{"index.*", "main.*", "manage.py", "vite.config.*"})
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string]bool{
		"src/index.js":        true,
		"src/Index.TS":        true,
		"cmd/main.go":         true,
		"backend/manage.py":   true,
		"vite.config.mjs":     true,
		"src/helper.js":       false,
		"src/indexing.js":     false,
		"src/maintenance.py":  false,
		"lib/index.helper.js": true, // index.* matches any suffix chain
	}
	for path, want := range cases {
		if got := matcher.Match(path); got != want {
			t.Errorf("Match(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestEntryMatcher_InvalidPattern(t *testing.T) {
	if _, err := NewEntryMatcher([]string{"[bad"}); err == nil {
		t.Fatal("Expected error for invalid pattern")
	}
}
