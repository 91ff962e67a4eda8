// Package ingest converts Theographic Bible Metadata CSV exports into a
// graph snapshot. The CSVs come from
// https://github.com/robertrouse/theographic-bible-metadata; this package
// reads a local directory holding People.csv, Places.csv, and Events.csv.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"theograph/internal/graph"
	"theograph/internal/refs"
)

// Import reads the Theographic CSV files from dir and builds a snapshot.
func Import(dir string) (*graph.Snapshot, error) {
	snap := &graph.Snapshot{}

	peopleRows, err := readCSV(filepath.Join(dir, "People.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to read People.csv: %w", err)
	}
	placeRows, err := readCSV(filepath.Join(dir, "Places.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to read Places.csv: %w", err)
	}
	eventRows, err := readCSV(filepath.Join(dir, "Events.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to read Events.csv: %w", err)
	}

	importPeople(snap, peopleRows)
	importPlaces(snap, placeRows)
	importEvents(snap, eventRows)

	log.Printf("Imported %d people, %d places, %d events, %d mentions",
		len(snap.People), len(snap.Places), len(snap.Events), len(snap.Mentions))
	return snap, nil
}

// row is one CSV record addressed by header name.
type row map[string]string

func (r row) get(key string) string {
	return strings.TrimSpace(r[key])
}

// list splits a comma-separated cell into trimmed non-empty values.
func (r row) list(key string) []string {
	raw := r.get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r row) intPtr(key string) *int {
	raw := r.get(key)
	if raw == "" {
		return nil
	}
	// Some year cells carry decimal points.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

func (r row) floatPtr(key string) *float64 {
	raw := r.get(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// readCSV reads a whole file as header-addressed rows. The Theographic
// exports carry a UTF-8 BOM, which is stripped from the first header.
func readCSV(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		r := make(row, len(header))
		for i, key := range header {
			if i < len(record) {
				r[key] = record[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func importPeople(snap *graph.Snapshot, rows []row) {
	for _, r := range rows {
		id := r.get("personLookup")
		if id == "" {
			continue
		}
		name := r.get("name")
		if name == "" {
			name = r.get("displayTitle")
		}
		if name == "" {
			continue
		}

		p := &graph.Person{
			ID:          id,
			Name:        name,
			AlsoCalled:  r.list("alsoCalled"),
			Gender:      r.get("gender"),
			BirthYear:   r.intPtr("birthYear"),
			DeathYear:   r.intPtr("deathYear"),
			Description: r.get("dictText"),
		}

		// father and mother cells hold the parent's id; partners is
		// symmetric and reconciled at store load. Declared sibling columns
		// are ignored: siblings are derived from shared parents.
		p.Parents = append(p.Parents, r.list("father")...)
		p.Parents = append(p.Parents, r.list("mother")...)
		p.Spouses = r.list("partners")

		snap.People = append(snap.People, p)
		addMentions(snap, graph.KindPerson, id, r.list("verses"))
	}
}

func importPlaces(snap *graph.Snapshot, rows []row) {
	for _, r := range rows {
		id := r.get("placeLookup")
		if id == "" {
			continue
		}
		name := r.get("displayTitle")
		if name == "" {
			name = r.get("kjvName")
		}
		if name == "" {
			continue
		}

		// Prefer openBible coords, fall back to recogito
		lat := r.floatPtr("openBibleLat")
		if lat == nil {
			lat = r.floatPtr("latitude")
		}
		lon := r.floatPtr("openBibleLong")
		if lon == nil {
			lon = r.floatPtr("longitude")
		}

		snap.Places = append(snap.Places, &graph.Place{
			ID:          id,
			Name:        name,
			Latitude:    lat,
			Longitude:   lon,
			FeatureType: r.get("featureType"),
		})
		addMentions(snap, graph.KindPlace, id, r.list("verses"))
	}
}

func importEvents(snap *graph.Snapshot, rows []row) {
	for _, r := range rows {
		id := r.get("eventID")
		if id == "" {
			continue
		}
		title := r.get("title")
		if title == "" {
			continue
		}

		ev := &graph.Event{
			ID:           id,
			Title:        title,
			StartYear:    r.intPtr("startDate"),
			SortKey:      r.floatPtr("sortKey"),
			Participants: r.list("participants"),
			Places:       r.list("locations"),
		}
		if ev.StartYear != nil {
			ev.Era = eraLabel(*ev.StartYear)
		}

		snap.Events = append(snap.Events, ev)
		addMentions(snap, graph.KindEvent, id, r.list("verses"))
	}
}

// eraLabel renders a start year as a display era.
func eraLabel(year int) string {
	if year < 0 {
		return fmt.Sprintf("c. %d BC", -year)
	}
	return fmt.Sprintf("c. AD %d", year)
}

// addMentions converts dotted verse references (Gen.15.6) into mention
// records. Consecutive verses in the same chapter collapse into one
// chapter-level range; unparseable references are logged and skipped.
func addMentions(snap *graph.Snapshot, kind graph.EntityKind, entityID string, verses []string) {
	type chapterKey struct {
		book    string
		chapter int
	}
	seen := make(map[chapterKey]*graph.Mention)

	for _, raw := range verses {
		ref, err := refs.ParseDotted(raw)
		if err != nil {
			log.Printf("Warning: skipping unparseable verse reference %q for %s", raw, entityID)
			continue
		}

		key := chapterKey{book: ref.Book, chapter: ref.Chapter}
		m, ok := seen[key]
		if !ok {
			m = &graph.Mention{
				EntityKind:   kind,
				EntityID:     entityID,
				Book:         ref.Book,
				ChapterStart: ref.Chapter,
				ChapterEnd:   ref.Chapter,
				VerseStart:   ref.VerseStart,
				VerseEnd:     ref.VerseStart,
			}
			seen[key] = m
			snap.Mentions = append(snap.Mentions, m)
			continue
		}
		// Widen the verse range within the chapter.
		if ref.VerseStart != 0 {
			if m.VerseStart == 0 || ref.VerseStart < m.VerseStart {
				m.VerseStart = ref.VerseStart
			}
			if ref.VerseStart > m.VerseEnd {
				m.VerseEnd = ref.VerseStart
			}
		}
	}
}
