package schema

import (
	"sort"
	"time"
)

// ArtifactNode is one artifact inside a window's traceability graph.
type ArtifactNode struct {
	ID   string
	Type ArtifactType

	// Authors maps developer id to the number of authoring events that
	// connected the developer to this artifact inside the window.
	Authors map[string]int

	// Refs maps referenced artifact id to an aggregated link count.
	// Only references to artifacts active in the same window are kept.
	Refs map[string]int

	// LastSeen is the latest event timestamp for this artifact in the
	// window, used for recency decay during projection.
	LastSeen time.Time
}

// ArtifactGraph is the traceability graph for a single window: nodes are
// artifacts and developers, edges encode authorship and cross-artifact
// references. It is owned exclusively by the window's processing step and
// discarded after projection.
type ArtifactGraph struct {
	Window Window

	// Artifacts maps artifact id to its node.
	Artifacts map[string]*ArtifactNode

	// Developers maps developer id to the set of artifact ids the
	// developer authored inside the window. Every entry has at least one
	// artifact; isolated developers are never added.
	Developers map[string]map[string]bool

	// DanglingRefs counts references to ids absent from the whole corpus.
	// They are skipped, never fatal.
	DanglingRefs int

	// SkippedEvents counts events dropped by the oversized-links guard.
	SkippedEvents int
}

// DeveloperIDs returns the developer node ids in ascending order.
func (g *ArtifactGraph) DeveloperIDs() []string {
	ids := make([]string, 0, len(g.Developers))
	for id := range g.Developers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeveloperEdge is a symmetric weighted edge between two developers.
// A sorts before B so each pair appears exactly once.
type DeveloperEdge struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

// DeveloperGraph is the weighted developer-collaboration graph projected
// from one window's artifact graph. Nodes are the developers active in the
// window; every node authored at least one artifact there.
type DeveloperGraph struct {
	Window Window          `json:"window"`
	Nodes  []string        `json:"nodes"`
	Edges  []DeveloperEdge `json:"edges"`
}

// Adjacency expands the edge list into a nested weight lookup. The result
// is symmetric: adj[a][b] == adj[b][a].
func (g *DeveloperGraph) Adjacency() map[string]map[string]float64 {
	adj := make(map[string]map[string]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		adj[n] = make(map[string]float64)
	}
	for _, e := range g.Edges {
		adj[e.A][e.B] = e.Weight
		adj[e.B][e.A] = e.Weight
	}
	return adj
}

// WeightedDegrees returns the total incident edge weight per developer.
// Developers without edges are present with weight zero.
func (g *DeveloperGraph) WeightedDegrees() map[string]float64 {
	degrees := make(map[string]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		degrees[n] = 0
	}
	for _, e := range g.Edges {
		degrees[e.A] += e.Weight
		degrees[e.B] += e.Weight
	}
	return degrees
}

// HasNode reports whether the developer is present in the graph.
func (g *DeveloperGraph) HasNode(dev string) bool {
	for _, n := range g.Nodes {
		if n == dev {
			return true
		}
	}
	return false
}
