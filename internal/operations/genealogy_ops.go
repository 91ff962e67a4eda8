package operations

import (
	"fmt"

	"theograph/internal/graph"
)

// GenealogyOps answers family-tree and relationship-path queries.
type GenealogyOps struct {
	holder *graph.Holder
}

// DefaultGenerations is the generation bound used when the caller does not
// supply one.
const DefaultGenerations = 5

// GenealogyResult is a generation-labeled family tree around a focal
// person, with immediate family attached.
type GenealogyResult struct {
	Focal     *graph.Person
	Direction graph.Direction
	Traversal *graph.Traversal
}

// ConnectionResult is an ordered relationship path between two persons.
type ConnectionResult struct {
	From *graph.Person
	To   *graph.Person
	Hops []graph.Hop
}

// ParseDirection maps a tool argument to a traversal direction; empty
// means both.
func ParseDirection(s string) (graph.Direction, error) {
	switch s {
	case "", string(graph.Both):
		return graph.Both, nil
	case string(graph.Ancestors):
		return graph.Ancestors, nil
	case string(graph.Descendants):
		return graph.Descendants, nil
	}
	return "", fmt.Errorf("invalid direction %q (want ancestors, descendants, or both)", s)
}

// Explore resolves a person name and expands their family tree. Fails with
// ErrPersonNotFound or AmbiguousNameError from name resolution; an empty
// tree is a successful result.
func (g *GenealogyOps) Explore(name string, dir graph.Direction, generations int) (*GenealogyResult, error) {
	if generations <= 0 {
		generations = DefaultGenerations
	}

	ix := g.holder.Index()
	person, err := ix.Resolver().ResolveOne(name)
	if err != nil {
		return nil, err
	}

	traversal, err := ix.Traverse(person.ID, dir, generations)
	if err != nil {
		return nil, err
	}

	return &GenealogyResult{Focal: person, Direction: dir, Traversal: traversal}, nil
}

// FindConnection resolves two person names and finds the shortest
// relationship path between them. Disconnection surfaces as
// graph.ErrNoPathFound; the caller decides how to present it.
func (g *GenealogyOps) FindConnection(nameA, nameB string) (*ConnectionResult, error) {
	ix := g.holder.Index()
	resolver := ix.Resolver()

	from, err := resolver.ResolveOne(nameA)
	if err != nil {
		return nil, err
	}
	to, err := resolver.ResolveOne(nameB)
	if err != nil {
		return nil, err
	}

	hops, err := ix.FindPath(from.ID, to.ID)
	if err != nil {
		return nil, err
	}

	return &ConnectionResult{From: from, To: to, Hops: hops}, nil
}
