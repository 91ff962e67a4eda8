package operations

import (
	"sort"
	"strings"

	"theograph/internal/graph"
)

// PlaceOps answers place-history queries.
type PlaceOps struct {
	holder *graph.Holder
}

// PlaceHistoryResult is the biblical history of a location: the events
// recorded there and the people who took part in them.
type PlaceHistoryResult struct {
	Place  *graph.Place
	Events []*graph.Event
	People []*graph.Person
}

// History resolves a place name (exact case-insensitive on canonical
// names; places carry no variant sets) and gathers its events and their
// participants.
func (p *PlaceOps) History(name string) (*PlaceHistoryResult, error) {
	ix := p.holder.Index()

	place, err := p.findPlace(ix, name)
	if err != nil {
		return nil, err
	}

	result := &PlaceHistoryResult{Place: place}
	seenPeople := make(map[string]bool)

	for _, eventID := range ix.PlaceEvents(place.ID) {
		ev, err := ix.Store().Event(eventID)
		if err != nil {
			continue
		}
		result.Events = append(result.Events, ev)
		for _, personID := range ix.EventParticipants(eventID) {
			if seenPeople[personID] {
				continue
			}
			seenPeople[personID] = true
			if person, err := ix.Store().Person(personID); err == nil {
				result.People = append(result.People, person)
			}
		}
	}

	sort.SliceStable(result.Events, func(i, j int) bool {
		a, b := result.Events[i].SortKey, result.Events[j].SortKey
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	sort.Slice(result.People, func(i, j int) bool {
		return result.People[i].Name < result.People[j].Name
	})

	return result, nil
}

func (p *PlaceOps) findPlace(ix *graph.Index, name string) (*graph.Place, error) {
	var match *graph.Place
	for _, pl := range ix.Store().Places() {
		if strings.EqualFold(pl.Name, name) {
			match = pl
			break
		}
	}
	if match == nil {
		// Fall back to a direct identifier lookup.
		if pl, err := ix.Store().Place(name); err == nil {
			return pl, nil
		}
		return nil, graph.PlaceNotFound(name)
	}
	return match, nil
}
