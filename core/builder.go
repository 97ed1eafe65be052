package core

import (
	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// CorpusIDs collects every artifact id that appears as an event subject in
// the event log. Link targets are intentionally not collected: an id that is
// only ever linked has no event of its own, so any reference to it is
// dangling. The builder uses the corpus to tell dangling references from
// references that merely fall outside the current window.
func CorpusIDs(events []schema.ArtifactEvent) map[string]bool {
	ids := make(map[string]bool, len(events))
	for _, ev := range events {
		ids[ev.ArtifactID] = true
	}
	return ids
}

// eventIncluded applies the oversized-links guard. Events linking more
// artifacts than MaxLinks distort the graph with bulk operations (mass
// reformats, tracker imports) and are skipped wholesale.
func eventIncluded(ev schema.ArtifactEvent, cfg *contract.Config) bool {
	return len(ev.Links) <= cfg.MaxLinks
}

// BuildArtifactGraph constructs the traceability graph for one window.
//
// Authorship edges connect each authored artifact to its author; developers
// authoring nothing in-window never become nodes. Reference edges connect an
// artifact to each artifact it links, only when the target is also active in
// the window; references into the past outside the window are dropped, not
// followed. Multi-edges collapse to a single edge with an aggregated count.
// References to ids absent from the whole corpus are skipped and counted,
// never fatal. Cyclic links (A references B references A) collapse into the
// two directed counts; nothing is traversed recursively, so cycles cannot
// expand.
func BuildArtifactGraph(we WindowEvents, cfg *contract.Config, corpus map[string]bool) *schema.ArtifactGraph {
	g := &schema.ArtifactGraph{
		Window:     we.Window,
		Artifacts:  make(map[string]*schema.ArtifactNode),
		Developers: make(map[string]map[string]bool),
	}

	// First pass: establish active artifact nodes and authorship edges.
	for _, ev := range we.Events {
		if !eventIncluded(ev, cfg) {
			g.SkippedEvents++
			continue
		}

		node := g.Artifacts[ev.ArtifactID]
		if node == nil {
			node = &schema.ArtifactNode{
				ID:      ev.ArtifactID,
				Type:    ev.Type,
				Authors: make(map[string]int),
				Refs:    make(map[string]int),
			}
			g.Artifacts[ev.ArtifactID] = node
		}
		if ev.Timestamp.After(node.LastSeen) {
			node.LastSeen = ev.Timestamp
		}

		if ev.Type.Authored() && ev.AuthorID != "" {
			node.Authors[ev.AuthorID]++
			authored := g.Developers[ev.AuthorID]
			if authored == nil {
				authored = make(map[string]bool)
				g.Developers[ev.AuthorID] = authored
			}
			authored[ev.ArtifactID] = true
		}
	}

	// Second pass: reference edges between active artifacts.
	for _, ev := range we.Events {
		if !eventIncluded(ev, cfg) {
			continue
		}
		src := g.Artifacts[ev.ArtifactID]
		for _, target := range ev.Links {
			if target == ev.ArtifactID {
				continue // self references carry no trace information
			}
			if !corpus[target] {
				g.DanglingRefs++
				continue
			}
			if _, active := g.Artifacts[target]; !active {
				continue // known artifact, but not active in this window
			}
			src.Refs[target]++
		}
	}

	return g
}
