// Package refs normalizes free-text scripture references into canonical
// (book-code, chapter, verse-range) triples. The graph core consumes the
// triple; it never sees the free text.
package refs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparseableReference is returned when a reference cannot be reduced
// to a canonical book, chapter, and optional verse range.
var ErrUnparseableReference = errors.New("unparseable reference")

// Reference is a normalized scripture reference. VerseStart 0 means the
// whole chapter; VerseEnd 0 means a single verse.
type Reference struct {
	Book       string // canonical code, e.g. "Gen", "Jhn"
	Chapter    int
	VerseStart int
	VerseEnd   int
}

// String renders the reference in display form, e.g. "Gen 15:1-6".
func (r Reference) String() string {
	switch {
	case r.VerseStart == 0:
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	case r.VerseEnd == 0 || r.VerseEnd == r.VerseStart:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.VerseStart)
	default:
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.VerseStart, r.VerseEnd)
	}
}

var (
	verseRefPattern   = regexp.MustCompile(`^(\d?\s*[a-zA-Z ]+?)\s*(\d+):(\d+)(?:\s*-\s*(\d+))?$`)
	chapterRefPattern = regexp.MustCompile(`^(\d?\s*[a-zA-Z ]+?)\s+(\d+)$`)
	dottedRefPattern  = regexp.MustCompile(`^([1-3]?[A-Za-z]+)\.(\d+)(?:\.(\d+))?$`)
)

// Parse normalizes a free-text reference such as "John 3:16", "Genesis 15"
// or "Romans 3:21-26". Unknown book names and malformed shapes fail with
// ErrUnparseableReference.
func Parse(raw string) (Reference, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Reference{}, fmt.Errorf("empty reference: %w", ErrUnparseableReference)
	}

	if m := verseRefPattern.FindStringSubmatch(trimmed); m != nil {
		code, ok := bookCode(m[1])
		if !ok {
			return Reference{}, fmt.Errorf("unknown book %q: %w", m[1], ErrUnparseableReference)
		}
		ref := Reference{Book: code}
		ref.Chapter, _ = strconv.Atoi(m[2])
		ref.VerseStart, _ = strconv.Atoi(m[3])
		if m[4] != "" {
			ref.VerseEnd, _ = strconv.Atoi(m[4])
			if ref.VerseEnd < ref.VerseStart {
				return Reference{}, fmt.Errorf("inverted verse range %q: %w", raw, ErrUnparseableReference)
			}
		}
		if ref.Chapter < 1 || ref.VerseStart < 1 {
			return Reference{}, fmt.Errorf("%q: %w", raw, ErrUnparseableReference)
		}
		return ref, nil
	}

	if m := chapterRefPattern.FindStringSubmatch(trimmed); m != nil {
		code, ok := bookCode(m[1])
		if !ok {
			return Reference{}, fmt.Errorf("unknown book %q: %w", m[1], ErrUnparseableReference)
		}
		ref := Reference{Book: code}
		ref.Chapter, _ = strconv.Atoi(m[2])
		if ref.Chapter < 1 {
			return Reference{}, fmt.Errorf("%q: %w", raw, ErrUnparseableReference)
		}
		return ref, nil
	}

	// Already-normalized dotted form, e.g. "Gen.15.6" or "Gen.15".
	if ref, err := ParseDotted(trimmed); err == nil {
		return ref, nil
	}

	return Reference{}, fmt.Errorf("%q: %w", raw, ErrUnparseableReference)
}

// ParseDotted parses the canonical dotted form used by the source data,
// e.g. "Gen.15.6" (book.chapter.verse) or "Gen.15" (book.chapter).
func ParseDotted(raw string) (Reference, error) {
	m := dottedRefPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Reference{}, fmt.Errorf("%q: %w", raw, ErrUnparseableReference)
	}
	if !KnownBook(m[1]) {
		return Reference{}, fmt.Errorf("unknown book code %q: %w", m[1], ErrUnparseableReference)
	}
	ref := Reference{Book: m[1]}
	ref.Chapter, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		ref.VerseStart, _ = strconv.Atoi(m[3])
	}
	if ref.Chapter < 1 {
		return Reference{}, fmt.Errorf("%q: %w", raw, ErrUnparseableReference)
	}
	return ref, nil
}

// KnownBook reports whether code is one of the 66 canonical book codes.
func KnownBook(code string) bool {
	_, ok := bookNames[code]
	return ok
}

// BookName returns the display name for a canonical book code, or the code
// itself when unknown.
func BookName(code string) string {
	if name, ok := bookNames[code]; ok {
		return name
	}
	return code
}

func bookCode(name string) (string, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	code, ok := bookAliases[key]
	if ok {
		return code, true
	}
	// Accept a canonical code used directly ("Jhn 3:16").
	for c := range bookNames {
		if strings.EqualFold(c, key) {
			return c, true
		}
	}
	return "", false
}

// bookNames maps canonical codes to display names.
var bookNames = map[string]string{
	"Gen": "Genesis", "Exo": "Exodus", "Lev": "Leviticus", "Num": "Numbers",
	"Deu": "Deuteronomy", "Jos": "Joshua", "Jdg": "Judges", "Rut": "Ruth",
	"1Sa": "1 Samuel", "2Sa": "2 Samuel", "1Ki": "1 Kings", "2Ki": "2 Kings",
	"1Ch": "1 Chronicles", "2Ch": "2 Chronicles", "Ezr": "Ezra", "Neh": "Nehemiah",
	"Est": "Esther", "Job": "Job", "Psa": "Psalms", "Pro": "Proverbs",
	"Ecc": "Ecclesiastes", "Sng": "Song of Solomon", "Isa": "Isaiah", "Jer": "Jeremiah",
	"Lam": "Lamentations", "Ezk": "Ezekiel", "Dan": "Daniel", "Hos": "Hosea",
	"Jol": "Joel", "Amo": "Amos", "Oba": "Obadiah", "Jon": "Jonah",
	"Mic": "Micah", "Nam": "Nahum", "Hab": "Habakkuk", "Zep": "Zephaniah",
	"Hag": "Haggai", "Zec": "Zechariah", "Mal": "Malachi",
	"Mat": "Matthew", "Mrk": "Mark", "Luk": "Luke", "Jhn": "John",
	"Act": "Acts", "Rom": "Romans", "1Co": "1 Corinthians", "2Co": "2 Corinthians",
	"Gal": "Galatians", "Eph": "Ephesians", "Php": "Philippians", "Col": "Colossians",
	"1Th": "1 Thessalonians", "2Th": "2 Thessalonians", "1Ti": "1 Timothy", "2Ti": "2 Timothy",
	"Tit": "Titus", "Phm": "Philemon", "Heb": "Hebrews", "Jas": "James",
	"1Pe": "1 Peter", "2Pe": "2 Peter", "1Jn": "1 John", "2Jn": "2 John",
	"3Jn": "3 John", "Jud": "Jude", "Rev": "Revelation",
}

// bookAliases maps lowercased names and common abbreviations to codes.
var bookAliases = map[string]string{
	"genesis": "Gen", "gen": "Gen",
	"exodus": "Exo", "exod": "Exo", "ex": "Exo",
	"leviticus": "Lev", "lev": "Lev",
	"numbers": "Num", "num": "Num",
	"deuteronomy": "Deu", "deut": "Deu", "dt": "Deu",
	"joshua": "Jos", "josh": "Jos",
	"judges": "Jdg", "judg": "Jdg",
	"ruth": "Rut",
	"1 samuel": "1Sa", "1sam": "1Sa", "1 sam": "1Sa",
	"2 samuel": "2Sa", "2sam": "2Sa", "2 sam": "2Sa",
	"1 kings": "1Ki", "1kgs": "1Ki", "1 kgs": "1Ki",
	"2 kings": "2Ki", "2kgs": "2Ki", "2 kgs": "2Ki",
	"1 chronicles": "1Ch", "1chr": "1Ch", "1 chr": "1Ch",
	"2 chronicles": "2Ch", "2chr": "2Ch", "2 chr": "2Ch",
	"ezra":     "Ezr",
	"nehemiah": "Neh", "neh": "Neh",
	"esther": "Est", "esth": "Est",
	"job":    "Job",
	"psalms": "Psa", "psalm": "Psa", "ps": "Psa",
	"proverbs": "Pro", "prov": "Pro", "pr": "Pro",
	"ecclesiastes": "Ecc", "eccl": "Ecc",
	"song of solomon": "Sng", "song": "Sng", "sos": "Sng",
	"isaiah": "Isa", "isa": "Isa",
	"jeremiah": "Jer", "jer": "Jer",
	"lamentations": "Lam", "lam": "Lam",
	"ezekiel": "Ezk", "ezek": "Ezk", "eze": "Ezk",
	"daniel": "Dan", "dan": "Dan",
	"hosea": "Hos", "hos": "Hos",
	"joel": "Jol",
	"amos": "Amo",
	"obadiah": "Oba", "obad": "Oba",
	"jonah": "Jon",
	"micah": "Mic", "mic": "Mic",
	"nahum": "Nam", "nah": "Nam",
	"habakkuk": "Hab", "hab": "Hab",
	"zephaniah": "Zep", "zeph": "Zep",
	"haggai": "Hag", "hag": "Hag",
	"zechariah": "Zec", "zech": "Zec",
	"malachi": "Mal", "mal": "Mal",
	"matthew": "Mat", "matt": "Mat", "mt": "Mat",
	"mark": "Mrk", "mk": "Mrk",
	"luke": "Luk", "lk": "Luk",
	"john": "Jhn", "jn": "Jhn",
	"acts":   "Act",
	"romans": "Rom", "rom": "Rom",
	"1 corinthians": "1Co", "1cor": "1Co", "1 cor": "1Co",
	"2 corinthians": "2Co", "2cor": "2Co", "2 cor": "2Co",
	"galatians": "Gal", "gal": "Gal",
	"ephesians": "Eph", "eph": "Eph",
	"philippians": "Php", "phil": "Php",
	"colossians": "Col", "col": "Col",
	"1 thessalonians": "1Th", "1thess": "1Th", "1 thess": "1Th",
	"2 thessalonians": "2Th", "2thess": "2Th", "2 thess": "2Th",
	"1 timothy": "1Ti", "1tim": "1Ti", "1 tim": "1Ti",
	"2 timothy": "2Ti", "2tim": "2Ti", "2 tim": "2Ti",
	"titus":    "Tit",
	"philemon": "Phm", "phlm": "Phm",
	"hebrews": "Heb", "heb": "Heb",
	"james": "Jas", "jas": "Jas",
	"1 peter": "1Pe", "1pet": "1Pe", "1 pet": "1Pe",
	"2 peter": "2Pe", "2pet": "2Pe", "2 pet": "2Pe",
	"1 john": "1Jn", "1jn": "1Jn",
	"2 john": "2Jn", "2jn": "2Jn",
	"3 john": "3Jn", "3jn": "3Jn",
	"jude":       "Jud",
	"revelation": "Rev", "rev": "Rev",
}
