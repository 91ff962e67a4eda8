package graph

import "log"

// maxPathExpansions caps the BFS frontier for shortest-path search. With
// graph sizes in the low thousands the cap is never reached on sane data;
// it bounds work when the data is not sane.
const maxPathExpansions = 100000

// Hop is one step of a relationship path: a person and the relation used
// to reach them from the previous hop. The first hop has an empty relation.
type Hop struct {
	Person   *Person
	Relation RelationKind
}

// link records how a person was first reached during path search.
type link struct {
	prev     string
	relation RelationKind
}

// FindPath finds a shortest relationship path between two persons with an
// unweighted breadth-first search over the composite edge set. At every
// node edges are explored in the fixed order parent, child, spouse,
// sibling, which makes the chosen path deterministic when several shortest
// paths exist. Disconnection yields ErrNoPathFound; it is an expected
// outcome, not a fault.
func (ix *Index) FindPath(fromID, toID string) ([]Hop, error) {
	from, err := ix.store.Person(fromID)
	if err != nil {
		return nil, err
	}
	if _, err := ix.store.Person(toID); err != nil {
		return nil, err
	}

	if fromID == toID {
		return []Hop{{Person: from}}, nil
	}

	visited := map[string]link{fromID: {}}
	queue := []string{fromID}
	expansions := 0

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		// Standard unweighted-shortest-path early exit: the first time the
		// target is dequeued its distance is final.
		if currentID == toID {
			return ix.assemblePath(fromID, toID, visited)
		}

		expansions++
		if expansions > maxPathExpansions {
			log.Printf("Warning: path search %s -> %s hit expansion cap, treating as disconnected", fromID, toID)
			return nil, ErrNoPathFound
		}

		for _, rel := range pathEdgeOrder {
			for _, nextID := range ix.neighbors(currentID, rel) {
				if _, seen := visited[nextID]; seen {
					continue
				}
				visited[nextID] = link{prev: currentID, relation: rel}
				queue = append(queue, nextID)
			}
		}
	}

	return nil, ErrNoPathFound
}

func (ix *Index) assemblePath(fromID, toID string, visited map[string]link) ([]Hop, error) {
	var hops []Hop
	for id := toID; ; {
		person, err := ix.store.Person(id)
		if err != nil {
			return nil, err
		}
		l := visited[id]
		hops = append(hops, Hop{Person: person, Relation: l.relation})
		if id == fromID {
			break
		}
		id = l.prev
	}

	// Built target-first; reverse into from -> to order.
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}
	hops[0].Relation = ""
	return hops, nil
}

// ReversePath returns the same path walked from the far end, with each
// hop's relation label inverted direction-appropriately (a parent edge
// walked backwards is a child edge).
func ReversePath(hops []Hop) []Hop {
	if len(hops) == 0 {
		return nil
	}
	n := len(hops)
	out := make([]Hop, n)
	out[0] = Hop{Person: hops[n-1].Person}
	for i := 1; i < n; i++ {
		out[i] = Hop{
			Person:   hops[n-1-i].Person,
			Relation: hops[n-i].Relation.Inverse(),
		}
	}
	return out
}
