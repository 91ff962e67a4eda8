package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"theograph/internal/graph"
)

func floatp(v float64) *float64 { return &v }

// testOps builds an operations layer over a small fixed graph: the line of
// David with a couple of events and mentions.
func testOps() *Operations {
	snap := &graph.Snapshot{
		People: []*graph.Person{
			{ID: "boaz", Name: "Boaz", Spouses: []string{"ruth"}},
			{ID: "ruth", Name: "Ruth", Spouses: []string{"boaz"}},
			{ID: "obed", Name: "Obed", Parents: []string{"boaz", "ruth"}},
			{ID: "jesse", Name: "Jesse", Parents: []string{"obed"}},
			{ID: "david", Name: "David", Parents: []string{"jesse"}, Spouses: []string{"bathsheba"}},
			{ID: "bathsheba", Name: "Bathsheba", Spouses: []string{"david"}},
			{ID: "solomon", Name: "Solomon", Parents: []string{"david", "bathsheba"}},
			{ID: "abram", Name: "Abraham", AlsoCalled: []string{"Abram"}},
			{ID: "melchizedek", Name: "Melchizedek"},
		},
		Places: []*graph.Place{
			{ID: "bethlehem", Name: "Bethlehem", FeatureType: "city"},
		},
		Events: []*graph.Event{
			{ID: "anointing", Title: "David anointed king", SortKey: floatp(20), Participants: []string{"david"}, Places: []string{"bethlehem"}},
			{ID: "census", Title: "David numbers the people", SortKey: floatp(30), Participants: []string{"david"}},
			{ID: "undated", Title: "Undated event", Participants: []string{"david"}},
		},
		Mentions: []*graph.Mention{
			{EntityKind: graph.KindPerson, EntityID: "abram", Book: "Gen", ChapterStart: 12, ChapterEnd: 25},
			{EntityKind: graph.KindPerson, EntityID: "david", Book: "1Sa", ChapterStart: 16, ChapterEnd: 31},
			{EntityKind: graph.KindPlace, EntityID: "bethlehem", Book: "Rut", ChapterStart: 1, ChapterEnd: 1},
		},
	}
	store := graph.NewStore(snap)
	return New(graph.NewHolder(graph.BuildIndex(store)))
}

func TestExploreGenealogy(t *testing.T) {
	ops := testOps()

	t.Run("Default generations", func(t *testing.T) {
		result, err := ops.Genealogy.Explore("David", graph.Both, 0)
		require.NoError(t, err)
		assert.Equal(t, "david", result.Focal.ID)
		assert.Len(t, result.Traversal.Ancestors, 4)
		assert.Len(t, result.Traversal.Descendants, 1)
	})

	t.Run("Ancestors only", func(t *testing.T) {
		result, err := ops.Genealogy.Explore("David", graph.Ancestors, 1)
		require.NoError(t, err)
		require.Len(t, result.Traversal.Ancestors, 1)
		assert.Equal(t, "jesse", result.Traversal.Ancestors[0].Person.ID)
		assert.Empty(t, result.Traversal.Descendants)
	})

	t.Run("Unknown name", func(t *testing.T) {
		_, err := ops.Genealogy.Explore("Nobody", graph.Both, 0)
		assert.ErrorIs(t, err, graph.ErrPersonNotFound)
	})

	t.Run("Variant name resolves", func(t *testing.T) {
		result, err := ops.Genealogy.Explore("Abram", graph.Both, 0)
		require.NoError(t, err)
		assert.Equal(t, "abram", result.Focal.ID)
	})
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]graph.Direction{
		"":            graph.Both,
		"both":        graph.Both,
		"ancestors":   graph.Ancestors,
		"descendants": graph.Descendants,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, "ParseDirection(%q)", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestFindConnection(t *testing.T) {
	ops := testOps()

	t.Run("Lineage path", func(t *testing.T) {
		result, err := ops.Genealogy.FindConnection("Ruth", "David")
		require.NoError(t, err)
		require.Len(t, result.Hops, 4)
		assert.Equal(t, "ruth", result.Hops[0].Person.ID)
		assert.Equal(t, "david", result.Hops[3].Person.ID)
	})

	t.Run("Disconnected pair", func(t *testing.T) {
		_, err := ops.Genealogy.FindConnection("David", "Melchizedek")
		assert.ErrorIs(t, err, graph.ErrNoPathFound)
	})

	t.Run("Unknown endpoint", func(t *testing.T) {
		_, err := ops.Genealogy.FindConnection("David", "Nobody")
		assert.ErrorIs(t, err, graph.ErrPersonNotFound)
	})
}

func TestEntitiesInPassage(t *testing.T) {
	ops := testOps()

	t.Run("Chapter reference", func(t *testing.T) {
		result, err := ops.Passage.EntitiesIn("Genesis 15")
		require.NoError(t, err)
		require.Len(t, result.Entities.People, 1)
		assert.Equal(t, "abram", result.Entities.People[0].ID)
	})

	t.Run("Verse reference", func(t *testing.T) {
		result, err := ops.Passage.EntitiesIn("1 Samuel 17:4")
		require.NoError(t, err)
		require.Len(t, result.Entities.People, 1)
		assert.Equal(t, "david", result.Entities.People[0].ID)
	})

	t.Run("Recognized but unpopulated passage", func(t *testing.T) {
		result, err := ops.Passage.EntitiesIn("Revelation 22")
		require.NoError(t, err)
		assert.True(t, result.Entities.Empty())
	})

	t.Run("Unparseable reference", func(t *testing.T) {
		_, err := ops.Passage.EntitiesIn("Hezekiah 3:16")
		assert.ErrorIs(t, err, graph.ErrReferenceNotRecognized)
	})
}

func TestLookupPerson(t *testing.T) {
	ops := testOps()

	result, err := ops.Person.Lookup("David")
	require.NoError(t, err)

	assert.Equal(t, "david", result.Person.ID)
	require.Len(t, result.Parents, 1)
	assert.Equal(t, "jesse", result.Parents[0].ID)
	require.Len(t, result.Spouses, 1)
	assert.Equal(t, "bathsheba", result.Spouses[0].ID)
	require.Len(t, result.Children, 1)
	assert.Equal(t, "solomon", result.Children[0].ID)
	assert.Empty(t, result.Siblings)
	require.Len(t, result.Mentions, 1)
	assert.Equal(t, "1Sa", result.Mentions[0].Book)
	assert.NotEmpty(t, result.Candidates)
}

func TestPersonTimeline(t *testing.T) {
	ops := testOps()

	result, err := ops.Person.Timeline("David")
	require.NoError(t, err)

	require.Len(t, result.Events, 3)
	// Ordered by sort key; undated events last.
	assert.Equal(t, "anointing", result.Events[0].Event.ID)
	assert.Equal(t, "census", result.Events[1].Event.ID)
	assert.Equal(t, "undated", result.Events[2].Event.ID)

	require.Len(t, result.Events[0].Places, 1)
	assert.Equal(t, "bethlehem", result.Events[0].Places[0].ID)
}

func TestPlaceHistory(t *testing.T) {
	ops := testOps()

	t.Run("Known place", func(t *testing.T) {
		result, err := ops.Place.History("Bethlehem")
		require.NoError(t, err)
		require.Len(t, result.Events, 1)
		assert.Equal(t, "anointing", result.Events[0].ID)
		require.Len(t, result.People, 1)
		assert.Equal(t, "david", result.People[0].ID)
	})

	t.Run("Case insensitive", func(t *testing.T) {
		result, err := ops.Place.History("bethlehem")
		require.NoError(t, err)
		assert.Equal(t, "Bethlehem", result.Place.Name)
	})

	t.Run("Unknown place", func(t *testing.T) {
		_, err := ops.Place.History("Atlantis")
		assert.ErrorIs(t, err, graph.ErrPlaceNotFound)
	})
}

func TestStats(t *testing.T) {
	ops := testOps()

	s := ops.Stats()
	assert.Equal(t, 9, s.People)
	assert.Equal(t, 1, s.Places)
	assert.Equal(t, 3, s.Events)
	assert.Equal(t, 3, s.Mentions)
	assert.Equal(t, 2, s.SpouseEdges) // boaz-ruth, david-bathsheba
	assert.Equal(t, 3, s.ParticipantEdges)
}
