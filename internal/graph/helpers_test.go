package graph

// Shared fixture: the line of David plus a few side branches, small enough
// to reason about by hand.
//
//	boaz ═ ruth        elimelech
//	     │
//	    obed
//	     │
//	    jesse
//	   ┌──┴────┐
//	 david   eliab
//	   ║
//	bathsheba
//	   │
//	solomon, nathan
func testSnapshot() *Snapshot {
	year := func(y int) *int { return &y }
	sortKey := func(k float64) *float64 { return &k }

	return &Snapshot{
		People: []*Person{
			{ID: "boaz", Name: "Boaz", Spouses: []string{"ruth"}},
			{ID: "ruth", Name: "Ruth", Spouses: []string{"boaz"}},
			{ID: "obed", Name: "Obed", Parents: []string{"boaz", "ruth"}},
			{ID: "jesse", Name: "Jesse", Parents: []string{"obed"}},
			{ID: "david", Name: "David", Parents: []string{"jesse"}, Spouses: []string{"bathsheba"}, BirthYear: year(-1040), DeathYear: year(-970)},
			{ID: "eliab", Name: "Eliab", Parents: []string{"jesse"}},
			{ID: "bathsheba", Name: "Bathsheba", AlsoCalled: []string{"Bathshua"}, Spouses: []string{"david"}},
			{ID: "solomon", Name: "Solomon", AlsoCalled: []string{"Jedidiah"}, Parents: []string{"david", "bathsheba"}},
			{ID: "nathan", Name: "Nathan (son of David)", Parents: []string{"david", "bathsheba"}},
			{ID: "abram", Name: "Abraham", AlsoCalled: []string{"Abram"}},
			{ID: "elimelech", Name: "Elimelech"},
			// Two prophets sharing a canonical name, for ambiguity tests.
			{ID: "zechariah-prophet", Name: "Zechariah"},
			{ID: "zechariah-priest", Name: "Zechariah"},
		},
		Places: []*Place{
			{ID: "bethlehem", Name: "Bethlehem", FeatureType: "city"},
			{ID: "jerusalem", Name: "Jerusalem", FeatureType: "city"},
		},
		Events: []*Event{
			{ID: "covenant", Title: "Covenant with Abram", StartYear: year(-2091), SortKey: sortKey(10), Participants: []string{"abram"}},
			{ID: "david-anointed", Title: "David anointed king", SortKey: sortKey(20), Participants: []string{"david"}, Places: []string{"bethlehem"}},
			{ID: "david-reigns", Title: "David reigns in Jerusalem", SortKey: sortKey(30), Participants: []string{"david", "bathsheba"}, Places: []string{"jerusalem"}},
		},
		Mentions: []*Mention{
			{EntityKind: KindPerson, EntityID: "abram", Book: "Gen", ChapterStart: 12, ChapterEnd: 25},
			{EntityKind: KindPerson, EntityID: "ruth", Book: "Rut", ChapterStart: 1, ChapterEnd: 4},
			{EntityKind: KindPerson, EntityID: "boaz", Book: "Rut", ChapterStart: 2, ChapterEnd: 4},
			{EntityKind: KindPerson, EntityID: "david", Book: "1Sa", ChapterStart: 16, ChapterEnd: 31},
			{EntityKind: KindPlace, EntityID: "bethlehem", Book: "Rut", ChapterStart: 1, ChapterEnd: 1},
			{EntityKind: KindEvent, EntityID: "covenant", Book: "Gen", ChapterStart: 15, ChapterEnd: 15},
			// Single-chapter mention with verse bounds.
			{EntityKind: KindPerson, EntityID: "solomon", Book: "2Sa", ChapterStart: 12, ChapterEnd: 12, VerseStart: 24, VerseEnd: 25},
		},
	}
}

func testIndex() *Index {
	return BuildIndex(NewStore(testSnapshot()))
}
