package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityIDs[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = id(item)
	}
	return out
}

func TestEntitiesInChapter(t *testing.T) {
	ix := testIndex()

	t.Run("Genesis 15 includes Abraham and the covenant", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "Gen", Chapter: 15})
		require.NoError(t, err)

		assert.Equal(t, []string{"abram"}, entityIDs(result.People, func(p *Person) string { return p.ID }))
		assert.Equal(t, []string{"covenant"}, entityIDs(result.Events, func(e *Event) string { return e.ID }))
		assert.Empty(t, result.Places)
	})

	t.Run("Ruth 1 includes Ruth and Bethlehem but not Boaz", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "Rut", Chapter: 1})
		require.NoError(t, err)

		assert.Equal(t, []string{"ruth"}, entityIDs(result.People, func(p *Person) string { return p.ID }))
		assert.Equal(t, []string{"bethlehem"}, entityIDs(result.Places, func(p *Place) string { return p.ID }))
	})

	t.Run("Ruth 3 includes both Ruth and Boaz", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "Rut", Chapter: 3})
		require.NoError(t, err)

		ids := entityIDs(result.People, func(p *Person) string { return p.ID })
		assert.Equal(t, []string{"boaz", "ruth"}, ids) // sorted by name
	})

	t.Run("Chapter outside every range is empty", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "Gen", Chapter: 1})
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("Unknown book is empty, not an error", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "Xyz", Chapter: 3})
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})
}

func TestEntitiesInVerseBounds(t *testing.T) {
	ix := testIndex()

	t.Run("Verse inside a single-chapter mention", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "2Sa", Chapter: 12, VerseStart: 24})
		require.NoError(t, err)
		assert.Equal(t, []string{"solomon"}, entityIDs(result.People, func(p *Person) string { return p.ID }))
	})

	t.Run("Verse outside the mention's verse range", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "2Sa", Chapter: 12, VerseStart: 1})
		require.NoError(t, err)
		assert.True(t, result.Empty())
	})

	t.Run("Verse range overlapping the mention", func(t *testing.T) {
		result, err := ix.EntitiesIn(PassageRef{Book: "2Sa", Chapter: 12, VerseStart: 20, VerseEnd: 24})
		require.NoError(t, err)
		assert.Equal(t, []string{"solomon"}, entityIDs(result.People, func(p *Person) string { return p.ID }))
	})

	t.Run("Verse query against a multi-chapter mention matches", func(t *testing.T) {
		// Multi-chapter mentions carry no per-verse precision; any verse in
		// a covered chapter matches.
		result, err := ix.EntitiesIn(PassageRef{Book: "Gen", Chapter: 15, VerseStart: 6})
		require.NoError(t, err)
		assert.Equal(t, []string{"abram"}, entityIDs(result.People, func(p *Person) string { return p.ID }))
	})
}

func TestEntitiesInRejectsMalformedRefs(t *testing.T) {
	ix := testIndex()

	_, err := ix.EntitiesIn(PassageRef{Book: "", Chapter: 3})
	assert.ErrorIs(t, err, ErrReferenceNotRecognized)

	_, err = ix.EntitiesIn(PassageRef{Book: "Gen", Chapter: 0})
	assert.ErrorIs(t, err, ErrReferenceNotRecognized)
}

func TestMentionsFor(t *testing.T) {
	ix := testIndex()

	mentions := ix.MentionsFor(KindPerson, "abram")
	require.Len(t, mentions, 1)
	assert.Equal(t, "Gen", mentions[0].Book)
	assert.Equal(t, 12, mentions[0].ChapterStart)
	assert.Equal(t, 25, mentions[0].ChapterEnd)

	assert.Empty(t, ix.MentionsFor(KindPerson, "elimelech"))
}
