package core

import (
	"sort"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// devPair is an unordered developer pair with A < B.
type devPair struct {
	A, B string
}

func orderedPair(a, b string) devPair {
	if a < b {
		return devPair{A: a, B: b}
	}
	return devPair{A: b, B: a}
}

// recencyDecay returns the weight multiplier for an artifact based on its
// age within the window: 1.0 at the window end, falling linearly to the
// configured floor at the window start. A floor of 1.0 disables decay.
func recencyDecay(node *schema.ArtifactNode, w schema.Window, floor float64) float64 {
	if floor >= 1 {
		return 1
	}
	width := w.Width()
	if width <= 0 {
		return 1
	}
	age := w.End.Sub(node.LastSeen)
	frac := float64(age) / float64(width)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return floor + (1-floor)*(1-frac)
}

// ProjectDeveloperGraph folds one window's artifact graph into a weighted
// undirected developer-collaboration graph. Two developers connect when a
// path of length at most two through artifacts joins them: a shared artifact
// (dev → artifact → dev) or a cross-referenced artifact pair
// (dev → artifact → artifact → dev). Direct co-authorship is rare at scale;
// the transitive hop through referenced artifacts captures collaboration
// that pure co-commit graphs miss.
//
// Edge weight is the number of connecting paths, each scaled by recency
// decay of the connecting artifacts. A cross-reference path uses the decay
// of its older endpoint and repeats once per aggregated link count, so an
// artifact that links the same target twice contributes two paths. Weights
// derive solely from the window's own artifact set.
func ProjectDeveloperGraph(g *schema.ArtifactGraph, cfg *contract.Config) *schema.DeveloperGraph {
	weights := make(map[devPair]float64)

	// Deterministic iteration keeps float accumulation order stable
	// across runs on identical input.
	artifactIDs := make([]string, 0, len(g.Artifacts))
	for id := range g.Artifacts {
		artifactIDs = append(artifactIDs, id)
	}
	sort.Strings(artifactIDs)

	for _, id := range artifactIDs {
		node := g.Artifacts[id]
		authors := sortedAuthors(node)
		decay := recencyDecay(node, g.Window, cfg.DecayFloor)

		// dev -> artifact -> dev
		for i := 0; i < len(authors); i++ {
			for j := i + 1; j < len(authors); j++ {
				weights[orderedPair(authors[i], authors[j])] += decay
			}
		}

		// dev -> artifact -> artifact -> dev
		targets := make([]string, 0, len(node.Refs))
		for t := range node.Refs {
			targets = append(targets, t)
		}
		sort.Strings(targets)

		for _, t := range targets {
			targetNode := g.Artifacts[t]
			pathDecay := min(decay, recencyDecay(targetNode, g.Window, cfg.DecayFloor))
			paths := float64(node.Refs[t])
			for _, a := range authors {
				for _, b := range sortedAuthors(targetNode) {
					if a == b {
						continue
					}
					weights[orderedPair(a, b)] += paths * pathDecay
				}
			}
		}
	}

	dg := &schema.DeveloperGraph{
		Window: g.Window,
		Nodes:  g.DeveloperIDs(),
	}

	pairs := make([]devPair, 0, len(weights))
	for p := range weights {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	for _, p := range pairs {
		if w := weights[p]; w > 0 {
			dg.Edges = append(dg.Edges, schema.DeveloperEdge{A: p.A, B: p.B, Weight: w})
		}
	}

	return dg
}

func sortedAuthors(node *schema.ArtifactNode) []string {
	authors := make([]string, 0, len(node.Authors))
	for a := range node.Authors {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors
}
