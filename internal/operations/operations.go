// Package operations provides the business operations shared by every
// surface (CLI, HTTP API, MCP server). Each operation resolves names,
// runs the graph query, and returns plain structured data; rendering is
// the caller's concern.
package operations

import (
	"theograph/internal/graph"
)

// Operations is the unified entry point for all query operations.
type Operations struct {
	Genealogy *GenealogyOps
	Passage   *PassageOps
	Person    *PersonOps
	Place     *PlaceOps

	holder *graph.Holder
}

// New creates an Operations instance over the published graph index.
func New(holder *graph.Holder) *Operations {
	return &Operations{
		Genealogy: &GenealogyOps{holder: holder},
		Passage:   &PassageOps{holder: holder},
		Person:    &PersonOps{holder: holder},
		Place:     &PlaceOps{holder: holder},
		holder:    holder,
	}
}

// Store exposes the entity store behind the served index, for surfaces
// that enumerate entities directly (autocompletion, listings).
func (o *Operations) Store() *graph.Store {
	return o.holder.Index().Store()
}

// Stats reports entity and edge totals for the served index.
func (o *Operations) Stats() StatsResult {
	ix := o.holder.Index()
	store := ix.Store()

	var stats StatsResult
	stats.People, stats.Places, stats.Events, stats.Mentions = store.Counts()
	for _, p := range store.People() {
		stats.ParentEdges += len(p.Parents)
		stats.SpouseEdges += len(p.Spouses)
	}
	// Spouse edges are symmetric; count each pair once.
	stats.SpouseEdges /= 2
	for _, ev := range store.Events() {
		stats.ParticipantEdges += len(ev.Participants)
	}
	return stats
}

// StatsResult holds graph totals for status output.
type StatsResult struct {
	People           int `json:"people"`
	Places           int `json:"places"`
	Events           int `json:"events"`
	Mentions         int `json:"mentions"`
	ParentEdges      int `json:"parent_edges"`
	SpouseEdges      int `json:"spouse_edges"`
	ParticipantEdges int `json:"participant_edges"`
}
