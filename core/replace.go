package core

import (
	"sort"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// Similarity blend for replacement scoring. Direct collaboration weight
// dominates; second-order neighborhood overlap breaks near-ties between
// candidates with similar direct exposure.
const (
	wDirect  = 0.6
	wOverlap = 0.4
)

// RecommendReplacement ranks the remaining developers as substitutes for a
// departing developer. The similarity score combines the candidate's direct
// edge weight to the departing developer with the Jaccard overlap of their
// neighbor sets, preferring candidates who already share context with the
// departing developer's artifacts.
//
// Returns UnknownDeveloperError when the departing id is absent from the
// graph. When the departing developer is isolated (no edges), the
// recommendation falls back to the window's key-developer ranking, flagged
// low-confidence. The departing developer never appears in the candidates.
func RecommendReplacement(dg *schema.DeveloperGraph, departing string, cfg *contract.Config) (schema.ReplacementResult, error) {
	result := schema.ReplacementResult{
		WindowID:    dg.Window.Index,
		DepartingID: departing,
	}

	if !dg.HasNode(departing) {
		return result, &contract.UnknownDeveloperError{DeveloperID: departing, WindowID: dg.Window.Index}
	}

	adj := dg.Adjacency()
	direct := adj[departing]

	if len(direct) == 0 {
		// No collaboration signal to rank by; fall back to the global
		// key-developer ranking for the window.
		ranking := RankKeyDevelopers(dg, cfg)
		for _, ds := range ranking.Ranking {
			if ds.DeveloperID == departing {
				continue
			}
			result.Candidates = append(result.Candidates, ds)
		}
		result.LowConfidence = true
		return result, nil
	}

	var maxDirect float64
	for _, w := range direct {
		if w > maxDirect {
			maxDirect = w
		}
	}

	candidates := make([]schema.DeveloperScore, 0, len(dg.Nodes)-1)
	for _, dev := range dg.Nodes {
		if dev == departing {
			continue
		}
		score := wDirect*(direct[dev]/maxDirect) + wOverlap*neighborOverlap(adj, departing, dev)
		candidates = append(candidates, schema.DeveloperScore{DeveloperID: dev, Score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].DeveloperID < candidates[j].DeveloperID
	})

	result.Candidates = candidates
	return result, nil
}

// neighborOverlap is the Jaccard index of the two developers' neighbor
// sets, with the pair itself excluded from both sides so mutual adjacency
// does not distort the overlap.
func neighborOverlap(adj map[string]map[string]float64, a, b string) float64 {
	var intersection, union int

	for n := range adj[a] {
		if n == b {
			continue
		}
		union++
		if _, ok := adj[b][n]; ok {
			intersection++
		}
	}
	for n := range adj[b] {
		if n == a {
			continue
		}
		if _, ok := adj[a][n]; !ok {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
