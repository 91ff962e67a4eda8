package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"theograph/internal/graph"
)

const peopleCSV = `personLookup,name,displayTitle,alsoCalled,gender,birthYear,deathYear,father,mother,partners,siblings,verses,dictText
boaz,Boaz,Boaz,,male,,,,,ruth,,"Rut.2.1, Rut.4.13",A wealthy Bethlehemite.
ruth,Ruth,Ruth,,female,,,,,boaz,,"Rut.1.4, Rut.4.13",A Moabite widow.
obed,Obed,Obed,,male,,,boaz,ruth,,,"Rut.4.17",
jesse,Jesse,Jesse,,male,,,obed,,,,"1Sa.16.1",
david,David,David (king),,male,-1040,-970,jesse,,bathsheba,eliab,"1Sa.16.13, 2Sa.5.4",King of Israel.
bathsheba,Bathsheba,Bathsheba,Bathshua,female,,,,,david,,"2Sa.11.3",
,Nameless,Nameless,,,,,,,,,,
ghost-child,,,,,,,,,,,,
`

const placesCSV = `placeLookup,displayTitle,kjvName,featureType,openBibleLat,openBibleLong,latitude,longitude,verses
bethlehem,Bethlehem,Beth-lehem,city,31.705,35.210,,,"Rut.1.19, Mic.5.2"
fallback-place,,Old Name,region,,,32.0,35.0,
`

const eventsCSV = `eventID,title,startDate,duration,sortKey,participants,locations,verses
anointing,David anointed king,-1025,,20.5,david,bethlehem,"1Sa.16.13"
no-title,,,,1,,,
badverses,Event with bad verses,,,30,david,,"NotARef, Gen.1.1"
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "People.csv"), []byte(peopleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Places.csv"), []byte(placesCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Events.csv"), []byte(eventsCSV), 0o644))
	return dir
}

func TestImport(t *testing.T) {
	snap, err := Import(writeFixtures(t))
	require.NoError(t, err)

	t.Run("People", func(t *testing.T) {
		// Rows without id or name are skipped.
		require.Len(t, snap.People, 6)

		byID := map[string]*graph.Person{}
		for _, p := range snap.People {
			byID[p.ID] = p
		}

		david := byID["david"]
		require.NotNil(t, david)
		assert.Equal(t, "David", david.Name)
		require.NotNil(t, david.BirthYear)
		assert.Equal(t, -1040, *david.BirthYear)
		assert.Equal(t, []string{"jesse"}, david.Parents)
		assert.Equal(t, []string{"bathsheba"}, david.Spouses)
		assert.Equal(t, "King of Israel.", david.Description)

		// father and mother both feed Parents.
		obed := byID["obed"]
		require.NotNil(t, obed)
		assert.Equal(t, []string{"boaz", "ruth"}, obed.Parents)

		// alsoCalled splits into variants.
		assert.Equal(t, []string{"Bathshua"}, byID["bathsheba"].AlsoCalled)
	})

	t.Run("Places", func(t *testing.T) {
		require.Len(t, snap.Places, 2)

		bethlehem := snap.Places[0]
		assert.Equal(t, "Bethlehem", bethlehem.Name)
		assert.Equal(t, "city", bethlehem.FeatureType)
		require.NotNil(t, bethlehem.Latitude)
		assert.InDelta(t, 31.705, *bethlehem.Latitude, 1e-9)

		// kjvName fallback and recogito coordinate fallback.
		fallback := snap.Places[1]
		assert.Equal(t, "Old Name", fallback.Name)
		require.NotNil(t, fallback.Latitude)
		assert.InDelta(t, 32.0, *fallback.Latitude, 1e-9)
	})

	t.Run("Events", func(t *testing.T) {
		require.Len(t, snap.Events, 2) // untitled row skipped

		anointing := snap.Events[0]
		assert.Equal(t, "David anointed king", anointing.Title)
		require.NotNil(t, anointing.StartYear)
		assert.Equal(t, -1025, *anointing.StartYear)
		assert.Equal(t, "c. 1025 BC", anointing.Era)
		require.NotNil(t, anointing.SortKey)
		assert.InDelta(t, 20.5, *anointing.SortKey, 1e-9)
		assert.Equal(t, []string{"david"}, anointing.Participants)
		assert.Equal(t, []string{"bethlehem"}, anointing.Places)
	})

	t.Run("Mentions", func(t *testing.T) {
		count := map[string]int{}
		for _, m := range snap.Mentions {
			count[m.EntityID]++
			assert.NotEmpty(t, m.Book)
			assert.GreaterOrEqual(t, m.ChapterStart, 1)
		}

		// Ruth's two mentions land in different chapters of one book.
		assert.Equal(t, 2, count["ruth"])
		// Bad verse references are skipped, valid ones kept.
		assert.Equal(t, 1, count["badverses"])
	})

	t.Run("Verse ranges collapse per chapter", func(t *testing.T) {
		var davidSamuel *graph.Mention
		for _, m := range snap.Mentions {
			if m.EntityID == "david" && m.Book == "1Sa" {
				davidSamuel = m
			}
		}
		require.NotNil(t, davidSamuel)
		assert.Equal(t, 16, davidSamuel.ChapterStart)
		assert.Equal(t, 16, davidSamuel.ChapterEnd)
		assert.Equal(t, 13, davidSamuel.VerseStart)
	})

	t.Run("Snapshot loads into a working graph", func(t *testing.T) {
		ix := graph.BuildIndex(graph.NewStore(snap))

		p, err := ix.Resolver().ResolveOne("David")
		require.NoError(t, err)
		assert.Equal(t, "david", p.ID)

		// Declared sibling columns are ignored; eliab never existed, so
		// david has no siblings here.
		assert.Empty(t, ix.Siblings("david"))

		hops, err := ix.FindPath("ruth", "david")
		require.NoError(t, err)
		assert.Len(t, hops, 4)
	})
}

func TestImportMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "People.csv"), []byte(peopleCSV), 0o644))

	_, err := Import(dir)
	assert.Error(t, err)
}
