package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerseForms(t *testing.T) {
	cases := []struct {
		in   string
		want Reference
	}{
		{"John 3:16", Reference{Book: "Jhn", Chapter: 3, VerseStart: 16}},
		{"Genesis 15:6", Reference{Book: "Gen", Chapter: 15, VerseStart: 6}},
		{"Romans 3:21-26", Reference{Book: "Rom", Chapter: 3, VerseStart: 21, VerseEnd: 26}},
		{"1 Samuel 17:4", Reference{Book: "1Sa", Chapter: 17, VerseStart: 4}},
		{"2 Kings 2:11", Reference{Book: "2Ki", Chapter: 2, VerseStart: 11}},
		{"  Luke 2:7  ", Reference{Book: "Luk", Chapter: 2, VerseStart: 7}},
		{"psalm 23:1", Reference{Book: "Psa", Chapter: 23, VerseStart: 1}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, "Parse(%q)", c.in)
		assert.Equal(t, c.want, got, "Parse(%q)", c.in)
	}
}

func TestParseChapterForms(t *testing.T) {
	cases := []struct {
		in   string
		want Reference
	}{
		{"Genesis 15", Reference{Book: "Gen", Chapter: 15}},
		{"Ruth 1", Reference{Book: "Rut", Chapter: 1}},
		{"1 Corinthians 13", Reference{Book: "1Co", Chapter: 13}},
		{"Song of Solomon 2", Reference{Book: "Sng", Chapter: 2}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		require.NoError(t, err, "Parse(%q)", c.in)
		assert.Equal(t, c.want, got, "Parse(%q)", c.in)
	}
}

func TestParseDottedForms(t *testing.T) {
	t.Run("Book chapter verse", func(t *testing.T) {
		got, err := ParseDotted("Gen.15.6")
		require.NoError(t, err)
		assert.Equal(t, Reference{Book: "Gen", Chapter: 15, VerseStart: 6}, got)
	})

	t.Run("Book chapter", func(t *testing.T) {
		got, err := ParseDotted("Rut.1")
		require.NoError(t, err)
		assert.Equal(t, Reference{Book: "Rut", Chapter: 1}, got)
	})

	t.Run("Numbered book", func(t *testing.T) {
		got, err := ParseDotted("1Sa.17.4")
		require.NoError(t, err)
		assert.Equal(t, Reference{Book: "1Sa", Chapter: 17, VerseStart: 4}, got)
	})

	t.Run("Unknown book code", func(t *testing.T) {
		_, err := ParseDotted("Foo.1.1")
		assert.ErrorIs(t, err, ErrUnparseableReference)
	})

	t.Run("Parse falls through to dotted form", func(t *testing.T) {
		got, err := Parse("Jhn.3.16")
		require.NoError(t, err)
		assert.Equal(t, Reference{Book: "Jhn", Chapter: 3, VerseStart: 16}, got)
	})
}

func TestParseRejections(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"Genesis",
		"Hezekiah 3:16", // not a book
		"John 3:20-16",  // inverted range
		"Genesis 0",
		"Genesis 0:4",
		"3:16",
		"not a reference at all 99",
	}
	for _, in := range cases {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrUnparseableReference, "Parse(%q)", in)
	}
}

func TestReferenceString(t *testing.T) {
	assert.Equal(t, "Gen 15", Reference{Book: "Gen", Chapter: 15}.String())
	assert.Equal(t, "Jhn 3:16", Reference{Book: "Jhn", Chapter: 3, VerseStart: 16}.String())
	assert.Equal(t, "Rom 3:21-26", Reference{Book: "Rom", Chapter: 3, VerseStart: 21, VerseEnd: 26}.String())
}

func TestBookHelpers(t *testing.T) {
	assert.True(t, KnownBook("Gen"))
	assert.False(t, KnownBook("Foo"))
	assert.Equal(t, "Genesis", BookName("Gen"))
	assert.Equal(t, "Foo", BookName("Foo"))
}
