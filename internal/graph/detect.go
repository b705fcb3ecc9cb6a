// # internal/graph/detect.go
package graph

import (
	"sort"
)

// OrphanClusters finds groups of files that only keep each other alive: a
// strongly connected component of two or more files with no importer
// outside the component. Every member has in-degree >= 1, so none of them
// shows up in the zero in-degree partition, yet nothing external references
// the group. Clusters and their members come back lexically sorted.
func (g *Graph) OrphanClusters() [][]string {
	nodes := g.Nodes()

	adjacency := make(map[string][]string, len(nodes))
	for _, from := range nodes {
		targets := make([]string, 0, len(g.imports[from]))
		for to := range g.imports[from] {
			targets = append(targets, to)
		}
		sort.Strings(targets)
		adjacency[from] = targets
	}

	componentOf, components := stronglyConnectedComponents(nodes, adjacency)

	var clusters [][]string
	for id, component := range components {
		if len(component) < 2 {
			continue
		}
		external := false
		for _, member := range component {
			for importer := range g.importedBy[member] {
				if componentOf[importer] != id {
					external = true
					break
				}
			}
			if external {
				break
			}
		}
		if !external {
			clusters = append(clusters, component)
		}
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i][0] < clusters[j][0]
	})
	return clusters
}

// Tarjan's algorithm; components come back with sorted members.
func stronglyConnectedComponents(nodes []string, adjacency map[string][]string) (map[string]int, [][]string) {
	index := 0
	stack := make([]string, 0, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	indexByNode := make(map[string]int, len(nodes))
	lowLink := make(map[string]int, len(nodes))
	componentOf := make(map[string]int, len(nodes))
	components := make([][]string, 0)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indexByNode[v] = index
		lowLink[v] = index
		index++

		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adjacency[v] {
			if _, seen := indexByNode[w]; !seen {
				strongConnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] && indexByNode[w] < lowLink[v] {
				lowLink[v] = indexByNode[w]
			}
		}

		if lowLink[v] != indexByNode[v] {
			return
		}

		component := make([]string, 0)
		for {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[last] = false
			component = append(component, last)
			if last == v {
				break
			}
		}
		sort.Strings(component)
		compID := len(components)
		components = append(components, component)
		for _, n := range component {
			componentOf[n] = compID
		}
	}

	for _, node := range nodes {
		if _, seen := indexByNode[node]; !seen {
			strongConnect(node)
		}
	}

	return componentOf, components
}
