package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLookups(t *testing.T) {
	store := NewStore(testSnapshot())

	t.Run("Person by id", func(t *testing.T) {
		p, err := store.Person("david")
		require.NoError(t, err)
		assert.Equal(t, "David", p.Name)
	})

	t.Run("Unknown person", func(t *testing.T) {
		_, err := store.Person("nobody")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPersonNotFound)
	})

	t.Run("Unknown place and event map to their sentinels", func(t *testing.T) {
		_, err := store.Place("atlantis")
		assert.ErrorIs(t, err, ErrPlaceNotFound)
		_, err = store.Event("flood")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("Counts", func(t *testing.T) {
		people, places, events, mentions := store.Counts()
		assert.Equal(t, 13, people)
		assert.Equal(t, 2, places)
		assert.Equal(t, 3, events)
		assert.Equal(t, 7, mentions)
	})
}

func TestStoreReconciliation(t *testing.T) {
	t.Run("Parent link implies child link", func(t *testing.T) {
		store := NewStore(&Snapshot{People: []*Person{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B", Parents: []string{"a"}},
		}})

		a, err := store.Person("a")
		require.NoError(t, err)
		assert.Contains(t, a.Children, "b")
	})

	t.Run("Child link implies parent link", func(t *testing.T) {
		store := NewStore(&Snapshot{People: []*Person{
			{ID: "a", Name: "A", Children: []string{"b"}},
			{ID: "b", Name: "B"},
		}})

		b, err := store.Person("b")
		require.NoError(t, err)
		assert.Contains(t, b.Parents, "a")
	})

	t.Run("Spouse link is symmetric", func(t *testing.T) {
		store := NewStore(&Snapshot{People: []*Person{
			{ID: "a", Name: "A", Spouses: []string{"b"}},
			{ID: "b", Name: "B"},
		}})

		b, err := store.Person("b")
		require.NoError(t, err)
		assert.Contains(t, b.Spouses, "a")
	})

	t.Run("Self and unknown edges are dropped", func(t *testing.T) {
		store := NewStore(&Snapshot{People: []*Person{
			{ID: "a", Name: "A", Parents: []string{"a", "ghost"}, Spouses: []string{"ghost"}},
		}})

		a, err := store.Person("a")
		require.NoError(t, err)
		assert.Empty(t, a.Parents)
		assert.Empty(t, a.Spouses)
	})

	t.Run("Duplicate id keeps first record", func(t *testing.T) {
		store := NewStore(&Snapshot{People: []*Person{
			{ID: "a", Name: "First"},
			{ID: "a", Name: "Second"},
		}})

		a, err := store.Person("a")
		require.NoError(t, err)
		assert.Equal(t, "First", a.Name)
		assert.Len(t, store.People(), 1)
	})

	t.Run("More than two parents are kept", func(t *testing.T) {
		store := NewStore(&Snapshot{People: []*Person{
			{ID: "p1", Name: "P1"}, {ID: "p2", Name: "P2"}, {ID: "p3", Name: "P3"},
			{ID: "c", Name: "C", Parents: []string{"p1", "p2", "p3"}},
		}})

		c, err := store.Person("c")
		require.NoError(t, err)
		assert.Len(t, c.Parents, 3)
	})
}

func TestNotFoundErrorUnwrap(t *testing.T) {
	err := PlaceNotFound("nineveh")
	assert.True(t, errors.Is(err, ErrPlaceNotFound))
	assert.Contains(t, err.Error(), "nineveh")
}
