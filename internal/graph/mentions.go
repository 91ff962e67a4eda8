package graph

import (
	"fmt"
	"sort"
)

// PassageRef is the normalized (book, chapter, verse-range) triple the
// passage index consumes. It is produced by the reference-normalization
// collaborator; the index itself never parses free text. VerseStart 0
// means a chapter-level query; VerseEnd 0 means a single verse.
type PassageRef struct {
	Book       string
	Chapter    int
	VerseStart int
	VerseEnd   int
}

func (r PassageRef) String() string {
	switch {
	case r.VerseStart == 0:
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	case r.VerseEnd == 0 || r.VerseEnd == r.VerseStart:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.VerseStart)
	default:
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.VerseStart, r.VerseEnd)
	}
}

// PassageEntities is the set of entities whose mention ranges cover a
// reference, grouped by kind.
type PassageEntities struct {
	People []*Person
	Places []*Place
	Events []*Event
}

// Empty reports whether no entity matched.
func (p *PassageEntities) Empty() bool {
	return len(p.People) == 0 && len(p.Places) == 0 && len(p.Events) == 0
}

// mentionIndex is a reverse index from book code to mention ranges,
// supporting static range-membership lookup.
type mentionIndex struct {
	byBook   map[string][]*Mention
	byEntity map[string][]*Mention
}

func buildMentionIndex(mentions []*Mention) *mentionIndex {
	mi := &mentionIndex{
		byBook:   make(map[string][]*Mention),
		byEntity: make(map[string][]*Mention),
	}
	for _, m := range mentions {
		if m.Book == "" || m.EntityID == "" {
			continue
		}
		mi.byBook[m.Book] = append(mi.byBook[m.Book], m)
		key := string(m.EntityKind) + "/" + m.EntityID
		mi.byEntity[key] = append(mi.byEntity[key], m)
	}
	return mi
}

// MentionsFor returns the recorded mention ranges for one entity.
func (ix *Index) MentionsFor(kind EntityKind, id string) []*Mention {
	return ix.mentions.byEntity[string(kind)+"/"+id]
}

// covers reports whether a mention range includes the reference. Chapter
// bounds are inclusive; a zero bound is open-ended within the book. Verse
// bounds only discriminate when the query carries a verse and the mention
// is confined to the queried chapter.
func (m *Mention) covers(ref PassageRef) bool {
	if m.ChapterStart != 0 && ref.Chapter < m.ChapterStart {
		return false
	}
	if m.ChapterEnd != 0 && ref.Chapter > m.ChapterEnd {
		return false
	}
	if ref.VerseStart == 0 {
		return true
	}
	if m.VerseStart == 0 && m.VerseEnd == 0 {
		return true
	}
	// Verse bounds apply only when the mention spans a single chapter.
	if m.ChapterStart != m.ChapterEnd {
		return true
	}
	queryEnd := ref.VerseEnd
	if queryEnd == 0 {
		queryEnd = ref.VerseStart
	}
	if m.VerseStart != 0 && queryEnd < m.VerseStart {
		return false
	}
	if m.VerseEnd != 0 && ref.VerseStart > m.VerseEnd {
		return false
	}
	return true
}

// EntitiesIn returns every person, place, and event whose recorded mention
// range covers the reference. An unrecognized reference (empty book or
// non-positive chapter) fails with ErrReferenceNotRecognized; a recognized
// reference with no mentions is an empty, successful result.
func (ix *Index) EntitiesIn(ref PassageRef) (*PassageEntities, error) {
	if ref.Book == "" || ref.Chapter < 1 {
		return nil, fmt.Errorf("%q: %w", ref.String(), ErrReferenceNotRecognized)
	}

	seen := make(map[string]bool)
	result := &PassageEntities{}

	for _, m := range ix.mentions.byBook[ref.Book] {
		if !m.covers(ref) {
			continue
		}
		key := string(m.EntityKind) + "/" + m.EntityID
		if seen[key] {
			continue
		}
		seen[key] = true

		switch m.EntityKind {
		case KindPerson:
			if p, err := ix.store.Person(m.EntityID); err == nil {
				result.People = append(result.People, p)
			}
		case KindPlace:
			if pl, err := ix.store.Place(m.EntityID); err == nil {
				result.Places = append(result.Places, pl)
			}
		case KindEvent:
			if ev, err := ix.store.Event(m.EntityID); err == nil {
				result.Events = append(result.Events, ev)
			}
		}
	}

	sort.Slice(result.People, func(i, j int) bool { return result.People[i].Name < result.People[j].Name })
	sort.Slice(result.Places, func(i, j int) bool { return result.Places[i].Name < result.Places[j].Name })
	sort.Slice(result.Events, func(i, j int) bool { return result.Events[i].Title < result.Events[j].Title })

	return result, nil
}
