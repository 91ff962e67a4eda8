package graph

// EntityKind identifies the kind of record an identifier refers to.
type EntityKind string

const (
	KindPerson EntityKind = "person"
	KindPlace  EntityKind = "place"
	KindEvent  EntityKind = "event"
)

// RelationKind identifies a typed edge between entities. Parent/child form
// an inverse pair; spouse and sibling are symmetric; participant connects a
// person to an event.
type RelationKind string

const (
	RelParent      RelationKind = "parent"
	RelChild       RelationKind = "child"
	RelSpouse      RelationKind = "spouse"
	RelSibling     RelationKind = "sibling"
	RelParticipant RelationKind = "participates_in"
)

// Inverse returns the relation as seen from the other end of the edge.
func (r RelationKind) Inverse() RelationKind {
	switch r {
	case RelParent:
		return RelChild
	case RelChild:
		return RelParent
	default:
		return r
	}
}

// Person is a canonical person record. Parents is ordered as recorded in
// the source; more than two entries can occur when the source attributes
// parentage ambiguously. Children must be consistent with Parents; the
// store reconciles the two sets at load.
type Person struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	AlsoCalled  []string `yaml:"also_called,omitempty"`
	Gender      string   `yaml:"gender,omitempty"`
	BirthYear   *int     `yaml:"birth_year,omitempty"`
	DeathYear   *int     `yaml:"death_year,omitempty"`
	Parents     []string `yaml:"parents,omitempty"`
	Spouses     []string `yaml:"spouses,omitempty"`
	Children    []string `yaml:"children,omitempty"`
	Events      []string `yaml:"events,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Place is a canonical place record with optional coordinates.
type Place struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Latitude    *float64 `yaml:"latitude,omitempty"`
	Longitude   *float64 `yaml:"longitude,omitempty"`
	FeatureType string   `yaml:"feature_type,omitempty"`
	Events      []string `yaml:"events,omitempty"`
}

// Event is a canonical event record. Era is free-form display text, never
// used for ordering; SortKey carries the source's timeline position.
type Event struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	StartYear    *int     `yaml:"start_year,omitempty"`
	Era          string   `yaml:"era,omitempty"`
	SortKey      *float64 `yaml:"sort_key,omitempty"`
	Places       []string `yaml:"places,omitempty"`
	Participants []string `yaml:"participants,omitempty"`
}

// Mention records that an entity is associated with a span of scripture.
// Chapter and verse bounds are inclusive; a zero bound means open-ended
// within the book.
type Mention struct {
	EntityKind   EntityKind `yaml:"entity_kind"`
	EntityID     string     `yaml:"entity_id"`
	Book         string     `yaml:"book"`
	ChapterStart int        `yaml:"chapter_start,omitempty"`
	ChapterEnd   int        `yaml:"chapter_end,omitempty"`
	VerseStart   int        `yaml:"verse_start,omitempty"`
	VerseEnd     int        `yaml:"verse_end,omitempty"`
}

// Snapshot is the immutable on-disk form of the whole graph, loaded
// wholesale at startup and never written at runtime.
type Snapshot struct {
	People   []*Person  `yaml:"people"`
	Places   []*Place   `yaml:"places,omitempty"`
	Events   []*Event   `yaml:"events,omitempty"`
	Mentions []*Mention `yaml:"mentions,omitempty"`
}
