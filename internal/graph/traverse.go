package graph

import "log"

// Direction selects which way a genealogy traversal expands.
type Direction string

const (
	Ancestors   Direction = "ancestors"
	Descendants Direction = "descendants"
	Both        Direction = "both"
)

// MaxGenerations is the hard clamp on traversal depth, bounding work
// against malformed input or cyclic data.
const MaxGenerations = 50

// TraversalEntry is one person reached by a traversal, labeled with the
// BFS generation at which it was first reached and the edge kind used.
type TraversalEntry struct {
	Person     *Person
	Generation int
	Relation   RelationKind
}

// Traversal is the result of a genealogy expansion. Ancestors and
// Descendants hold generations >= 1; the focal person is generation 0.
// Spouses and Siblings are the focal person's immediate family, attached
// as a flat side list that does not count toward generation depth.
// CycleDetected flags that cyclic source data was encountered and a branch
// truncated; it is a data-quality signal, not an error.
type Traversal struct {
	Focal         *Person
	Ancestors     []TraversalEntry
	Descendants   []TraversalEntry
	Spouses       []*Person
	Siblings      []*Person
	CycleDetected bool
}

// Entries returns the full (person, generation, relation) set including
// the focal person at generation 0.
func (t *Traversal) Entries() []TraversalEntry {
	out := make([]TraversalEntry, 0, 1+len(t.Ancestors)+len(t.Descendants))
	out = append(out, TraversalEntry{Person: t.Focal, Generation: 0})
	out = append(out, t.Ancestors...)
	out = append(out, t.Descendants...)
	return out
}

// Traverse expands the family graph around a person. For Ancestors it
// follows parent edges, for Descendants child edges; Both runs the two
// expansions independently and merges them. maxGenerations is clamped to
// [0, MaxGenerations]. A person reachable by multiple paths is recorded at
// the first generation reached (BFS order). The traversal terminates on
// cyclic data: each direction keeps its own visited set and an
// already-visited person stops that branch.
func (ix *Index) Traverse(personID string, dir Direction, maxGenerations int) (*Traversal, error) {
	focal, err := ix.store.Person(personID)
	if err != nil {
		return nil, err
	}

	if maxGenerations < 0 {
		maxGenerations = 0
	}
	if maxGenerations > MaxGenerations {
		maxGenerations = MaxGenerations
	}

	t := &Traversal{Focal: focal}

	if dir == Ancestors || dir == Both {
		entries, cycled := ix.expand(personID, RelParent, maxGenerations)
		t.Ancestors = entries
		t.CycleDetected = t.CycleDetected || cycled
	}
	if dir == Descendants || dir == Both {
		entries, cycled := ix.expand(personID, RelChild, maxGenerations)
		t.Descendants = entries
		t.CycleDetected = t.CycleDetected || cycled
	}

	for _, id := range ix.spouses[personID] {
		if p, err := ix.store.Person(id); err == nil {
			t.Spouses = append(t.Spouses, p)
		}
	}
	for _, id := range ix.siblings[personID] {
		if p, err := ix.store.Person(id); err == nil {
			t.Siblings = append(t.Siblings, p)
		}
	}

	return t, nil
}

// expand is a bounded breadth-first expansion along a single edge kind.
// It reports whether a cycle was encountered and truncated.
func (ix *Index) expand(startID string, rel RelationKind, maxGenerations int) ([]TraversalEntry, bool) {
	type frame struct {
		id         string
		generation int
	}

	visited := map[string]bool{startID: true}
	prev := make(map[string]string)
	queue := []frame{{id: startID, generation: 0}}
	var entries []TraversalEntry
	cycled := false

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.generation >= maxGenerations {
			continue
		}

		for _, nextID := range ix.neighbors(current.id, rel) {
			if visited[nextID] {
				// Already-reached person: either convergent lines (fine) or
				// a genuine cycle, which shows up as an edge back into the
				// current branch. Either way the branch stops here.
				if onBranch(prev, current.id, nextID) {
					log.Printf("Warning: cycle in %s graph at %s -> %s, truncating branch", rel, current.id, nextID)
					cycled = true
				}
				continue
			}
			visited[nextID] = true

			person, err := ix.store.Person(nextID)
			if err != nil {
				continue
			}
			prev[nextID] = current.id
			entries = append(entries, TraversalEntry{
				Person:     person,
				Generation: current.generation + 1,
				Relation:   rel,
			})
			queue = append(queue, frame{id: nextID, generation: current.generation + 1})
		}
	}

	return entries, cycled
}

// onBranch reports whether target lies on the BFS tree path leading to id.
func onBranch(prev map[string]string, id, target string) bool {
	for {
		if id == target {
			return true
		}
		next, ok := prev[id]
		if !ok {
			return false
		}
		id = next
	}
}
