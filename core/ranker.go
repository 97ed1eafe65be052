package core

import (
	"math"
	"sort"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// Number of power-iteration rounds for eigenvector centrality. Fixed so
// identical inputs always produce identical scores.
const eigenvectorIterations = 20

// RankKeyDevelopers computes a centrality score per developer and selects
// the key developers for the window. Ranking is total: scores sort
// descending and ties break by developer id ascending, deterministically
// across repeated runs on identical input. A window with zero developers
// yields an empty ranking, not an error.
func RankKeyDevelopers(dg *schema.DeveloperGraph, cfg *contract.Config) schema.KeyDeveloperResult {
	result := schema.KeyDeveloperResult{WindowID: dg.Window.Index}
	if len(dg.Nodes) == 0 {
		return result
	}

	var scores map[string]float64
	switch cfg.Ranking {
	case schema.DegreeRanking:
		scores = dg.WeightedDegrees()
	default:
		scores = eigenvectorScores(dg)
	}

	ranking := make([]schema.DeveloperScore, 0, len(scores))
	for dev, score := range scores {
		ranking = append(ranking, schema.DeveloperScore{DeveloperID: dev, Score: score})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].DeveloperID < ranking[j].DeveloperID
	})

	result.Ranking = selectKeyDevelopers(ranking, cfg)
	return result
}

// eigenvectorScores runs a fixed-round power iteration over the weighted
// adjacency, so a developer's score grows with connections to other
// well-connected developers rather than raw edge count alone. Isolated
// developers keep a zero score. The start vector is the weighted degree,
// which makes the result a degree refinement and keeps disconnected
// components comparable.
func eigenvectorScores(dg *schema.DeveloperGraph) map[string]float64 {
	adj := dg.Adjacency()
	scores := dg.WeightedDegrees()

	for range eigenvectorIterations {
		next := make(map[string]float64, len(scores))
		var norm float64
		for _, dev := range dg.Nodes {
			var sum float64
			for neighbor, w := range adj[dev] {
				sum += w * scores[neighbor]
			}
			next[dev] = sum
			if sum > norm {
				norm = sum
			}
		}
		if norm == 0 {
			break // no edges at all; degrees (all zero) stand
		}
		for dev := range next {
			next[dev] /= norm
		}
		scores = next
	}

	return scores
}

// selectKeyDevelopers applies the configured selection policy to the full
// ranking: fixed top-k (k of zero keeps everyone) or a threshold at
// tau * max score.
func selectKeyDevelopers(ranking []schema.DeveloperScore, cfg *contract.Config) []schema.DeveloperScore {
	if len(ranking) == 0 {
		return ranking
	}

	switch cfg.Selection {
	case schema.ThresholdSelection:
		cutoff := cfg.Threshold * ranking[0].Score
		selected := make([]schema.DeveloperScore, 0, len(ranking))
		for _, ds := range ranking {
			if ds.Score >= cutoff && !math.IsNaN(ds.Score) {
				selected = append(selected, ds)
			}
		}
		return selected
	default: // top-k
		if cfg.TopK > 0 && len(ranking) > cfg.TopK {
			return ranking[:cfg.TopK]
		}
		return ranking
	}
}
