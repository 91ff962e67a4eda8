package operations

import (
	"sort"

	"theograph/internal/graph"
)

// PersonOps answers person lookup and timeline queries.
type PersonOps struct {
	holder *graph.Holder
}

// LookupResult is a resolved person with their immediate family and
// recorded mention ranges.
type LookupResult struct {
	Person     *graph.Person
	Candidates []graph.Candidate
	Parents    []*graph.Person
	Spouses    []*graph.Person
	Children   []*graph.Person
	Siblings   []*graph.Person
	Mentions   []*graph.Mention
}

// TimelineEvent is an event a person participates in, with its places.
type TimelineEvent struct {
	Event  *graph.Event
	Places []*graph.Place
}

// TimelineResult is the ordered list of events in a person's life.
type TimelineResult struct {
	Person *graph.Person
	Events []TimelineEvent
}

// Lookup resolves a name to a single person and gathers their record,
// immediate family, and mention ranges. The full candidate ranking is
// included so callers can show alternates.
func (p *PersonOps) Lookup(name string) (*LookupResult, error) {
	ix := p.holder.Index()
	resolver := ix.Resolver()

	person, err := resolver.ResolveOne(name)
	if err != nil {
		return nil, err
	}

	result := &LookupResult{
		Person:     person,
		Candidates: resolver.Resolve(name),
		Mentions:   ix.MentionsFor(graph.KindPerson, person.ID),
	}
	result.Parents = p.lookupAll(ix, ix.Parents(person.ID))
	result.Spouses = p.lookupAll(ix, ix.Spouses(person.ID))
	result.Children = p.lookupAll(ix, ix.Children(person.ID))
	result.Siblings = p.lookupAll(ix, ix.Siblings(person.ID))
	return result, nil
}

// Timeline resolves a name and returns the person's events ordered by the
// source timeline position (unknown positions last).
func (p *PersonOps) Timeline(name string) (*TimelineResult, error) {
	ix := p.holder.Index()

	person, err := ix.Resolver().ResolveOne(name)
	if err != nil {
		return nil, err
	}

	result := &TimelineResult{Person: person}
	for _, eventID := range ix.PersonEvents(person.ID) {
		ev, err := ix.Store().Event(eventID)
		if err != nil {
			continue
		}
		te := TimelineEvent{Event: ev}
		for _, placeID := range ix.EventPlaces(eventID) {
			if pl, err := ix.Store().Place(placeID); err == nil {
				te.Places = append(te.Places, pl)
			}
		}
		result.Events = append(result.Events, te)
	}

	sort.SliceStable(result.Events, func(i, j int) bool {
		a, b := result.Events[i].Event.SortKey, result.Events[j].Event.SortKey
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	return result, nil
}

func (p *PersonOps) lookupAll(ix *graph.Index, ids []string) []*graph.Person {
	out := make([]*graph.Person, 0, len(ids))
	for _, id := range ids {
		if person, err := ix.Store().Person(id); err == nil {
			out = append(out, person)
		}
	}
	return out
}
