// Package render turns query results into markdown for the MCP and CLI
// surfaces. The operations layer returns plain structured data; everything
// presentational lives here.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"theograph/internal/graph"
	"theograph/internal/operations"
	"theograph/internal/refs"
)

// Genealogy formats a family tree grouped by generation, with the focal
// person's immediate family attached.
func Genealogy(result *operations.GenealogyResult) string {
	var buf bytes.Buffer
	t := result.Traversal

	fmt.Fprintf(&buf, "## Family Tree: %s\n\n", t.Focal.Name)

	if len(t.Ancestors) > 0 {
		buf.WriteString("### Ancestors\n")
		writeGenerations(&buf, t.Ancestors, "Generation")
		buf.WriteString("\n")
	} else if result.Direction != graph.Descendants {
		buf.WriteString("### Ancestors\nNo recorded ancestors.\n\n")
	}

	if len(t.Descendants) > 0 {
		buf.WriteString("### Descendants\n")
		writeGenerations(&buf, t.Descendants, "Generation")
		buf.WriteString("\n")
	} else if result.Direction != graph.Ancestors {
		buf.WriteString("### Descendants\nNo recorded descendants.\n\n")
	}

	if len(t.Spouses) > 0 || len(t.Siblings) > 0 {
		buf.WriteString("### Immediate Family\n")
		if len(t.Spouses) > 0 {
			fmt.Fprintf(&buf, "**Spouse(s)**: %s\n", joinNames(t.Spouses))
		}
		if len(t.Siblings) > 0 {
			fmt.Fprintf(&buf, "**Siblings**: %s\n", joinNames(t.Siblings))
		}
		buf.WriteString("\n")
	}

	if t.Focal.Description != "" {
		fmt.Fprintf(&buf, "### About\n%s\n\n", t.Focal.Description)
	}

	if t.CycleDetected {
		buf.WriteString("*Note: the source data contains a cyclic relationship; the affected branch was truncated.*\n")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func writeGenerations(buf *bytes.Buffer, entries []graph.TraversalEntry, label string) {
	byGen := make(map[int][]graph.TraversalEntry)
	maxGen := 0
	for _, e := range entries {
		byGen[e.Generation] = append(byGen[e.Generation], e)
		if e.Generation > maxGen {
			maxGen = e.Generation
		}
	}
	for gen := 1; gen <= maxGen; gen++ {
		group := byGen[gen]
		if len(group) == 0 {
			continue
		}
		names := make([]string, 0, len(group))
		for _, e := range group {
			names = append(names, e.Person.Name)
		}
		sort.Strings(names)
		fmt.Fprintf(buf, "- %s %d: %s\n", label, gen, strings.Join(names, ", "))
	}
}

// ConnectionPath formats a relationship path as a hop-by-hop chain.
func ConnectionPath(result *operations.ConnectionResult) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "## Connection: %s → %s\n\n", result.From.Name, result.To.Name)

	if len(result.Hops) == 1 {
		fmt.Fprintf(&buf, "%s and %s are the same person.\n", result.From.Name, result.To.Name)
		return buf.String()
	}

	fmt.Fprintf(&buf, "Path length: %d step(s)\n\n", len(result.Hops)-1)
	for i, hop := range result.Hops {
		if i == 0 {
			fmt.Fprintf(&buf, "1. **%s**\n", hop.Person.Name)
			continue
		}
		fmt.Fprintf(&buf, "%d. **%s** (%s of the previous)\n", i+1, hop.Person.Name, relationLabel(hop.Relation))
	}
	return buf.String()
}

// NoConnection formats the legitimate negative result of a disconnected
// pair.
func NoConnection(nameA, nameB string) string {
	return fmt.Sprintf("## Connection: %s → %s\n\nNo recorded relationship path connects these two people; they belong to disconnected parts of the graph.\n", nameA, nameB)
}

// PassageEntities formats the entity membership of a passage.
func PassageEntities(result *operations.PassageResult) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "## Entities in %s\n\n", displayRef(result.Reference))

	e := result.Entities
	if e.Empty() {
		buf.WriteString("No people, places, or events are recorded for this passage.\n")
		return buf.String()
	}

	if len(e.People) > 0 {
		buf.WriteString("### People\n")
		for _, p := range e.People {
			buf.WriteString("- " + p.Name)
			if len(p.AlsoCalled) > 0 {
				fmt.Fprintf(&buf, " (also called %s)", strings.Join(p.AlsoCalled, ", "))
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}
	if len(e.Places) > 0 {
		buf.WriteString("### Places\n")
		for _, pl := range e.Places {
			buf.WriteString("- " + pl.Name)
			if pl.FeatureType != "" {
				fmt.Fprintf(&buf, " (%s)", pl.FeatureType)
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}
	if len(e.Events) > 0 {
		buf.WriteString("### Events\n")
		for _, ev := range e.Events {
			buf.WriteString("- " + ev.Title)
			if ev.Era != "" {
				fmt.Fprintf(&buf, " (%s)", ev.Era)
			}
			buf.WriteString("\n")
		}
		buf.WriteString("\n")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// PersonSummary formats a lookup result: record, family, key references.
func PersonSummary(result *operations.LookupResult) string {
	var buf bytes.Buffer
	p := result.Person

	fmt.Fprintf(&buf, "### %s\n", p.Name)
	if len(p.AlsoCalled) > 0 {
		fmt.Fprintf(&buf, "**Also called**: %s\n", strings.Join(p.AlsoCalled, ", "))
	}
	if p.Gender != "" {
		fmt.Fprintf(&buf, "**Gender**: %s\n", p.Gender)
	}
	if years := lifeYears(p); years != "" {
		fmt.Fprintf(&buf, "**Years**: %s\n", years)
	}
	buf.WriteString("\n")

	if p.Description != "" {
		buf.WriteString(p.Description + "\n\n")
	}

	family := [][2]string{
		{"Parents", joinNames(result.Parents)},
		{"Spouse(s)", joinNames(result.Spouses)},
		{"Children", joinNames(result.Children)},
		{"Siblings", joinNames(result.Siblings)},
	}
	wroteFamily := false
	for _, f := range family {
		if f[1] == "" {
			continue
		}
		if !wroteFamily {
			buf.WriteString("**Relationships**:\n")
			wroteFamily = true
		}
		fmt.Fprintf(&buf, "- %s: %s\n", f[0], f[1])
	}
	if wroteFamily {
		buf.WriteString("\n")
	}

	if len(result.Mentions) > 0 {
		keyRefs := mentionRefs(result.Mentions, 10)
		fmt.Fprintf(&buf, "**Key References**: %s\n", strings.Join(keyRefs, ", "))
		if extra := len(result.Mentions) - 10; extra > 0 {
			fmt.Fprintf(&buf, "(and %d more)\n", extra)
		}
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// Timeline formats a person's events in timeline order.
func Timeline(result *operations.TimelineResult) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "## Timeline: %s\n\n", result.Person.Name)

	if len(result.Events) == 0 {
		buf.WriteString("No recorded events for this person.\n")
		return buf.String()
	}

	for _, te := range result.Events {
		buf.WriteString("- **" + te.Event.Title + "**")
		if te.Event.Era != "" {
			fmt.Fprintf(&buf, " (%s)", te.Event.Era)
		} else if te.Event.StartYear != nil {
			fmt.Fprintf(&buf, " (%s)", formatYear(*te.Event.StartYear))
		}
		if len(te.Places) > 0 {
			names := make([]string, 0, len(te.Places))
			for _, pl := range te.Places {
				names = append(names, pl.Name)
			}
			fmt.Fprintf(&buf, " — at %s", strings.Join(names, ", "))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// PlaceHistory formats a location's events and people.
func PlaceHistory(result *operations.PlaceHistoryResult) string {
	var buf bytes.Buffer
	pl := result.Place

	fmt.Fprintf(&buf, "## %s\n", pl.Name)
	if pl.FeatureType != "" {
		fmt.Fprintf(&buf, "**Type**: %s\n", pl.FeatureType)
	}
	if pl.Latitude != nil && pl.Longitude != nil {
		fmt.Fprintf(&buf, "**Coordinates**: %.4f, %.4f\n", *pl.Latitude, *pl.Longitude)
	}
	buf.WriteString("\n")

	if len(result.Events) == 0 {
		buf.WriteString("No recorded events at this place.\n")
		return buf.String()
	}

	buf.WriteString("### Events\n")
	for _, ev := range result.Events {
		buf.WriteString("- " + ev.Title)
		if ev.StartYear != nil {
			fmt.Fprintf(&buf, " (%s)", formatYear(*ev.StartYear))
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")

	if len(result.People) > 0 {
		buf.WriteString("### People\n")
		for _, p := range result.People {
			buf.WriteString("- " + p.Name + "\n")
		}
	}
	return strings.TrimRight(buf.String(), "\n") + "\n"
}

// Candidates formats an ambiguous-name candidate list for selection.
func Candidates(name string, candidates []graph.Candidate) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "The name %q matches several people:\n", name)
	for _, c := range candidates {
		fmt.Fprintf(&buf, "- %s (id: %s, matched via %s)\n", c.Name, c.ID, c.Via)
	}
	buf.WriteString("Repeat the query with a more specific name or an exact id.\n")
	return buf.String()
}

// Stats formats graph totals.
func Stats(s operations.StatsResult) string {
	var buf bytes.Buffer
	buf.WriteString("## Graph Statistics\n\n")
	fmt.Fprintf(&buf, "- People: %d\n", s.People)
	fmt.Fprintf(&buf, "- Places: %d\n", s.Places)
	fmt.Fprintf(&buf, "- Events: %d\n", s.Events)
	fmt.Fprintf(&buf, "- Parent/child edges: %d\n", s.ParentEdges)
	fmt.Fprintf(&buf, "- Spouse pairs: %d\n", s.SpouseEdges)
	fmt.Fprintf(&buf, "- Event participations: %d\n", s.ParticipantEdges)
	fmt.Fprintf(&buf, "- Scripture mentions: %d\n", s.Mentions)
	return buf.String()
}

func relationLabel(rel graph.RelationKind) string {
	switch rel {
	case graph.RelParent:
		return "parent"
	case graph.RelChild:
		return "child"
	case graph.RelSpouse:
		return "spouse"
	case graph.RelSibling:
		return "sibling"
	default:
		return string(rel)
	}
}

func joinNames(people []*graph.Person) string {
	if len(people) == 0 {
		return ""
	}
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

func lifeYears(p *graph.Person) string {
	switch {
	case p.BirthYear != nil && p.DeathYear != nil:
		return fmt.Sprintf("%s – %s", formatYear(*p.BirthYear), formatYear(*p.DeathYear))
	case p.BirthYear != nil:
		return "b. " + formatYear(*p.BirthYear)
	case p.DeathYear != nil:
		return "d. " + formatYear(*p.DeathYear)
	}
	return ""
}

func formatYear(year int) string {
	if year < 0 {
		return fmt.Sprintf("%d BC", -year)
	}
	return fmt.Sprintf("AD %d", year)
}

func displayRef(r refs.Reference) string {
	name := refs.BookName(r.Book)
	switch {
	case r.VerseStart == 0:
		return fmt.Sprintf("%s %d", name, r.Chapter)
	case r.VerseEnd == 0 || r.VerseEnd == r.VerseStart:
		return fmt.Sprintf("%s %d:%d", name, r.Chapter, r.VerseStart)
	default:
		return fmt.Sprintf("%s %d:%d-%d", name, r.Chapter, r.VerseStart, r.VerseEnd)
	}
}

func mentionRefs(mentions []*graph.Mention, limit int) []string {
	out := make([]string, 0, limit)
	for _, m := range mentions {
		if len(out) >= limit {
			break
		}
		book := refs.BookName(m.Book)
		switch {
		case m.ChapterStart == 0 && m.ChapterEnd == 0:
			out = append(out, book)
		case m.ChapterEnd == 0 || m.ChapterEnd == m.ChapterStart:
			out = append(out, fmt.Sprintf("%s %d", book, m.ChapterStart))
		default:
			out = append(out, fmt.Sprintf("%s %d-%d", book, m.ChapterStart, m.ChapterEnd))
		}
	}
	return out
}
