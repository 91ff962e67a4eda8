package graph

import (
	"log"
	"slices"
)

// Store holds the canonical entity records. It is populated once from a
// snapshot and read-only afterwards, which is what lets every query read it
// concurrently without locks. The store never searches by name; that is the
// Resolver's job.
type Store struct {
	people   map[string]*Person
	places   map[string]*Place
	events   map[string]*Event
	mentions []*Mention

	// Insertion order, kept for deterministic iteration during index
	// construction.
	personIDs []string
	placeIDs  []string
	eventIDs  []string
}

// NewStore builds a store from a snapshot, reconciling relationship edges.
// Repairs are additive and logged; a record is never dropped for having a
// malformed edge.
func NewStore(snap *Snapshot) *Store {
	s := &Store{
		people:   make(map[string]*Person, len(snap.People)),
		places:   make(map[string]*Place, len(snap.Places)),
		events:   make(map[string]*Event, len(snap.Events)),
		mentions: snap.Mentions,
	}

	for _, p := range snap.People {
		if p.ID == "" {
			continue
		}
		if _, dup := s.people[p.ID]; dup {
			log.Printf("Warning: duplicate person id %q, keeping first", p.ID)
			continue
		}
		s.people[p.ID] = p
		s.personIDs = append(s.personIDs, p.ID)
	}
	for _, pl := range snap.Places {
		if pl.ID == "" {
			continue
		}
		if _, dup := s.places[pl.ID]; dup {
			log.Printf("Warning: duplicate place id %q, keeping first", pl.ID)
			continue
		}
		s.places[pl.ID] = pl
		s.placeIDs = append(s.placeIDs, pl.ID)
	}
	for _, ev := range snap.Events {
		if ev.ID == "" {
			continue
		}
		if _, dup := s.events[ev.ID]; dup {
			log.Printf("Warning: duplicate event id %q, keeping first", ev.ID)
			continue
		}
		s.events[ev.ID] = ev
		s.eventIDs = append(s.eventIDs, ev.ID)
	}

	s.reconcile()
	return s
}

// reconcile enforces the store invariants: no self-referential edges, and
// parent/child symmetry (if A lists B as parent, B's children must contain
// A). Mismatches are repaired additively, never silently dropped.
func (s *Store) reconcile() {
	for _, id := range s.personIDs {
		p := s.people[id]

		p.Parents = s.dropSelfAndUnknown(p, p.Parents, "parent")
		p.Spouses = s.dropSelfAndUnknown(p, p.Spouses, "spouse")
		p.Children = s.dropSelfAndUnknown(p, p.Children, "child")

		if len(p.Parents) > 2 {
			log.Printf("Note: %s has %d recorded parents", p.ID, len(p.Parents))
		}
	}

	for _, id := range s.personIDs {
		p := s.people[id]

		// Parent link implies a child link on the other end.
		for _, parentID := range p.Parents {
			parent := s.people[parentID]
			if !slices.Contains(parent.Children, p.ID) {
				log.Printf("Repair: adding %s to children of %s", p.ID, parentID)
				parent.Children = append(parent.Children, p.ID)
			}
		}
		// And the inverse: a child link implies a parent link.
		for _, childID := range p.Children {
			child := s.people[childID]
			if !slices.Contains(child.Parents, p.ID) {
				log.Printf("Repair: adding %s to parents of %s", childID, p.ID)
				child.Parents = append(child.Parents, p.ID)
			}
		}
		// Spouse is symmetric.
		for _, spouseID := range p.Spouses {
			spouse := s.people[spouseID]
			if !slices.Contains(spouse.Spouses, p.ID) {
				log.Printf("Repair: adding %s to spouses of %s", p.ID, spouseID)
				spouse.Spouses = append(spouse.Spouses, p.ID)
			}
		}
	}
}

// dropSelfAndUnknown filters a person's edge list down to real, non-self
// targets, logging whatever it removes.
func (s *Store) dropSelfAndUnknown(p *Person, ids []string, label string) []string {
	kept := ids[:0]
	for _, id := range ids {
		if id == p.ID {
			log.Printf("Warning: dropping self-referential %s edge on %s", label, p.ID)
			continue
		}
		if _, ok := s.people[id]; !ok {
			log.Printf("Warning: dropping %s edge %s -> %s (unknown person)", label, p.ID, id)
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

// Person returns the person record for id.
func (s *Store) Person(id string) (*Person, error) {
	p, ok := s.people[id]
	if !ok {
		return nil, &notFoundError{kind: KindPerson, key: id}
	}
	return p, nil
}

// Place returns the place record for id.
func (s *Store) Place(id string) (*Place, error) {
	pl, ok := s.places[id]
	if !ok {
		return nil, &notFoundError{kind: KindPlace, key: id}
	}
	return pl, nil
}

// Event returns the event record for id.
func (s *Store) Event(id string) (*Event, error) {
	ev, ok := s.events[id]
	if !ok {
		return nil, &notFoundError{kind: KindEvent, key: id}
	}
	return ev, nil
}

// People iterates all persons in snapshot order.
func (s *Store) People() []*Person {
	out := make([]*Person, 0, len(s.personIDs))
	for _, id := range s.personIDs {
		out = append(out, s.people[id])
	}
	return out
}

// Places iterates all places in snapshot order.
func (s *Store) Places() []*Place {
	out := make([]*Place, 0, len(s.placeIDs))
	for _, id := range s.placeIDs {
		out = append(out, s.places[id])
	}
	return out
}

// Events iterates all events in snapshot order.
func (s *Store) Events() []*Event {
	out := make([]*Event, 0, len(s.eventIDs))
	for _, id := range s.eventIDs {
		out = append(out, s.events[id])
	}
	return out
}

// Mentions returns all mention records.
func (s *Store) Mentions() []*Mention {
	return s.mentions
}

// Counts reports entity totals for status output.
func (s *Store) Counts() (people, places, events, mentions int) {
	return len(s.people), len(s.places), len(s.events), len(s.mentions)
}
