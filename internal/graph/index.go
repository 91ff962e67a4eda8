package graph

import (
	"sort"
	"sync/atomic"
)

// Index is the pre-built adjacency structure every traversal and search
// consults. It is built once from the store and immutable afterwards, so
// concurrent requests read it without locks. A data refresh builds a new
// Index and publishes it through a Holder; the live structure is never
// patched.
type Index struct {
	store    *Store
	resolver *Resolver

	parents  map[string][]string
	children map[string][]string
	spouses  map[string][]string
	siblings map[string][]string

	personEvents      map[string][]string
	placeEvents       map[string][]string
	eventParticipants map[string][]string
	eventPlaces       map[string][]string

	mentions *mentionIndex
}

// BuildIndex precomputes adjacency lists for every person, the event and
// place indexes, and the mention table. Siblings are derived here from
// shared-parent groups and never stored, so they are always consistent
// with the parent graph.
func BuildIndex(store *Store) *Index {
	ix := &Index{
		store:             store,
		resolver:          NewResolver(store),
		parents:           make(map[string][]string),
		children:          make(map[string][]string),
		spouses:           make(map[string][]string),
		siblings:          make(map[string][]string),
		personEvents:      make(map[string][]string),
		placeEvents:       make(map[string][]string),
		eventParticipants: make(map[string][]string),
		eventPlaces:       make(map[string][]string),
		mentions:          buildMentionIndex(store.Mentions()),
	}

	for _, p := range store.People() {
		ix.parents[p.ID] = p.Parents
		ix.children[p.ID] = p.Children
		ix.spouses[p.ID] = p.Spouses
	}

	// Siblings: two persons sharing at least one parent.
	for _, p := range store.People() {
		set := make(map[string]bool)
		for _, parentID := range p.Parents {
			for _, childID := range ix.children[parentID] {
				if childID != p.ID {
					set[childID] = true
				}
			}
		}
		if len(set) == 0 {
			continue
		}
		sibs := make([]string, 0, len(set))
		for id := range set {
			sibs = append(sibs, id)
		}
		sort.Strings(sibs)
		ix.siblings[p.ID] = sibs
	}

	for _, ev := range store.Events() {
		for _, personID := range ev.Participants {
			if _, err := store.Person(personID); err != nil {
				continue
			}
			ix.personEvents[personID] = append(ix.personEvents[personID], ev.ID)
			ix.eventParticipants[ev.ID] = append(ix.eventParticipants[ev.ID], personID)
		}
		for _, placeID := range ev.Places {
			if _, err := store.Place(placeID); err != nil {
				continue
			}
			ix.placeEvents[placeID] = append(ix.placeEvents[placeID], ev.ID)
			ix.eventPlaces[ev.ID] = append(ix.eventPlaces[ev.ID], placeID)
		}
	}

	return ix
}

// Store exposes the underlying entity store for record lookups.
func (ix *Index) Store() *Store { return ix.store }

// Resolver exposes the name resolver built for this index.
func (ix *Index) Resolver() *Resolver { return ix.resolver }

// Parents returns the parent ids of a person, in recorded order.
func (ix *Index) Parents(id string) []string { return ix.parents[id] }

// Children returns the child ids of a person.
func (ix *Index) Children(id string) []string { return ix.children[id] }

// Spouses returns the spouse ids of a person.
func (ix *Index) Spouses(id string) []string { return ix.spouses[id] }

// Siblings returns the derived sibling ids of a person.
func (ix *Index) Siblings(id string) []string { return ix.siblings[id] }

// PersonEvents returns the event ids a person participates in.
func (ix *Index) PersonEvents(id string) []string { return ix.personEvents[id] }

// PlaceEvents returns the event ids recorded at a place.
func (ix *Index) PlaceEvents(id string) []string { return ix.placeEvents[id] }

// EventParticipants returns the person ids participating in an event.
func (ix *Index) EventParticipants(id string) []string { return ix.eventParticipants[id] }

// EventPlaces returns the place ids where an event occurred.
func (ix *Index) EventPlaces(id string) []string { return ix.eventPlaces[id] }

// neighbors returns a person's adjacency for one relation kind, in the
// fixed exploration order contract: parent, child, spouse, sibling.
func (ix *Index) neighbors(id string, rel RelationKind) []string {
	switch rel {
	case RelParent:
		return ix.parents[id]
	case RelChild:
		return ix.children[id]
	case RelSpouse:
		return ix.spouses[id]
	case RelSibling:
		return ix.siblings[id]
	}
	return nil
}

// pathEdgeOrder is the fixed edge-exploration order for shortest-path
// search; it is the tie-break that makes equal-length paths deterministic.
var pathEdgeOrder = []RelationKind{RelParent, RelChild, RelSpouse, RelSibling}

// Holder publishes the current index to request handlers. Rebuilds swap the
// pointer atomically; in-flight queries keep reading the index they
// started with.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder creates a holder serving the given index.
func NewHolder(ix *Index) *Holder {
	h := &Holder{}
	h.current.Store(ix)
	return h
}

// Index returns the index currently being served.
func (h *Holder) Index() *Index { return h.current.Load() }

// Swap atomically publishes a new index for subsequent requests.
func (h *Holder) Swap(ix *Index) { h.current.Store(ix) }
