package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"theograph/internal/graph"
	"theograph/internal/operations"
)

// showHelp displays available commands
func (c *CLI) showHelp() {
	fmt.Println(HeaderStyle.Render("Commands"))
	fmt.Println()
	fmt.Println("  /explore <name> [direction] [generations]  Family tree (direction: ancestors/descendants/both)")
	fmt.Println("  /connect <name1> / <name2>                 Shortest relationship path between two people")
	fmt.Println("  /passage <reference>                       People, places, events in a passage (e.g. Genesis 15)")
	fmt.Println("  /person <name>                             Person record with family and key references")
	fmt.Println("  /timeline <name>                           Events of a person's life in order")
	fmt.Println("  /place <name>                              Events and people at a location")
	fmt.Println("  /stats                                     Graph totals")
	fmt.Println("  /exit                                      Quit")
	fmt.Println()
}

// exploreGenealogy handles /explore <name> [direction] [generations]
func (c *CLI) exploreGenealogy(args []string) error {
	// Trailing args may be a direction and a generation count; everything
	// before them is the name.
	generations := 0
	if n := len(args); n > 1 {
		if g, err := strconv.Atoi(args[n-1]); err == nil {
			generations = g
			args = args[:n-1]
		}
	}
	dir := graph.Both
	if n := len(args); n > 1 {
		if d, err := operations.ParseDirection(args[n-1]); err == nil {
			dir = d
			args = args[:n-1]
		}
	}
	name := strings.Join(args, " ")

	result, err := c.ops.Genealogy.Explore(name, dir, generations)
	if err != nil {
		chosen, rerr := c.resolveInteractive(name, err)
		if rerr != nil {
			return rerr
		}
		if result, err = c.ops.Genealogy.Explore(chosen, dir, generations); err != nil {
			return err
		}
	}

	t := result.Traversal
	fmt.Println(HeaderStyle.Render("Family Tree: " + t.Focal.Name))
	fmt.Println()

	printGenerations := func(label string, entries []graph.TraversalEntry) {
		if len(entries) == 0 {
			return
		}
		fmt.Println(SubheaderStyle.Render(label))
		byGen := map[int][]string{}
		maxGen := 0
		for _, e := range entries {
			byGen[e.Generation] = append(byGen[e.Generation], e.Person.Name)
			if e.Generation > maxGen {
				maxGen = e.Generation
			}
		}
		for gen := 1; gen <= maxGen; gen++ {
			if len(byGen[gen]) == 0 {
				continue
			}
			sort.Strings(byGen[gen])
			fmt.Printf("  %s %s\n", DimStyle.Render(fmt.Sprintf("gen %d:", gen)), PersonStyle.Render(strings.Join(byGen[gen], ", ")))
		}
		fmt.Println()
	}

	printGenerations("Ancestors", t.Ancestors)
	printGenerations("Descendants", t.Descendants)

	if len(t.Spouses) > 0 {
		fmt.Printf("  %s %s\n", DimStyle.Render("spouses:"), PersonStyle.Render(personNames(t.Spouses)))
	}
	if len(t.Siblings) > 0 {
		fmt.Printf("  %s %s\n", DimStyle.Render("siblings:"), PersonStyle.Render(personNames(t.Siblings)))
	}
	if len(t.Ancestors) == 0 && len(t.Descendants) == 0 && len(t.Spouses) == 0 && len(t.Siblings) == 0 {
		fmt.Println(DimStyle.Render("  no recorded family"))
	}
	if t.CycleDetected {
		fmt.Println(FormatWarning("cyclic relationship in source data; branch truncated"))
	}
	fmt.Println()
	return nil
}

// findConnection handles /connect <name1> / <name2>
func (c *CLI) findConnection(args []string) error {
	nameA, nameB, err := splitPair(args)
	if err != nil {
		return err
	}

	result, err := c.ops.Genealogy.FindConnection(nameA, nameB)
	if err != nil {
		if errors.Is(err, graph.ErrNoPathFound) {
			fmt.Printf("%s and %s are not connected in the graph.\n\n", HighlightStyle.Render(nameA), HighlightStyle.Render(nameB))
			return nil
		}
		return err
	}

	fmt.Println(HeaderStyle.Render(fmt.Sprintf("Connection: %s → %s", result.From.Name, result.To.Name)))
	fmt.Println()
	if len(result.Hops) == 1 {
		fmt.Println("  same person")
		fmt.Println()
		return nil
	}
	for i, hop := range result.Hops {
		if i == 0 {
			fmt.Printf("  %s\n", PersonStyle.Render(hop.Person.Name))
			continue
		}
		fmt.Printf("  %s %s\n", DimStyle.Render("└─ "+string(hop.Relation)+" →"), PersonStyle.Render(hop.Person.Name))
	}
	fmt.Printf("\n  %s\n\n", DimStyle.Render(fmt.Sprintf("%d step(s)", len(result.Hops)-1)))
	return nil
}

// splitPair splits "/connect Ruth / David" style arguments on a slash or
// the word "and"; two bare words also work.
func splitPair(args []string) (string, string, error) {
	joined := strings.Join(args, " ")
	for _, sep := range []string{" / ", " and "} {
		if idx := strings.Index(joined, sep); idx > 0 {
			return strings.TrimSpace(joined[:idx]), strings.TrimSpace(joined[idx+len(sep):]), nil
		}
	}
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	return "", "", fmt.Errorf("usage: /connect <name1> / <name2>")
}

// showPassage handles /passage <reference>
func (c *CLI) showPassage(reference string) error {
	result, err := c.ops.Passage.EntitiesIn(reference)
	if err != nil {
		if errors.Is(err, graph.ErrReferenceNotRecognized) {
			return fmt.Errorf("could not parse %q (try forms like \"Genesis 15\" or \"John 3:16\")", reference)
		}
		return err
	}

	fmt.Println(HeaderStyle.Render("Entities in " + result.Reference.String()))
	fmt.Println()

	if result.Entities.Empty() {
		fmt.Println(DimStyle.Render("  nothing recorded for this passage"))
		fmt.Println()
		return nil
	}

	if len(result.Entities.People) > 0 {
		fmt.Println(SubheaderStyle.Render("People"))
		for _, p := range result.Entities.People {
			fmt.Printf("  %s\n", PersonStyle.Render(p.Name))
		}
	}
	if len(result.Entities.Places) > 0 {
		fmt.Println(SubheaderStyle.Render("Places"))
		for _, pl := range result.Entities.Places {
			fmt.Printf("  %s\n", PlaceStyle.Render(pl.Name))
		}
	}
	if len(result.Entities.Events) > 0 {
		fmt.Println(SubheaderStyle.Render("Events"))
		for _, ev := range result.Entities.Events {
			fmt.Printf("  %s\n", EventStyle.Render(ev.Title))
		}
	}
	fmt.Println()
	return nil
}

// showPerson handles /person <name>
func (c *CLI) showPerson(name string) error {
	result, err := c.ops.Person.Lookup(name)
	if err != nil {
		chosen, rerr := c.resolveInteractive(name, err)
		if rerr != nil {
			return rerr
		}
		if result, err = c.ops.Person.Lookup(chosen); err != nil {
			return err
		}
	}

	p := result.Person
	fmt.Println(HeaderStyle.Render(p.Name))
	if len(p.AlsoCalled) > 0 {
		fmt.Printf("  %s %s\n", DimStyle.Render("also called:"), strings.Join(p.AlsoCalled, ", "))
	}
	if p.Description != "" {
		fmt.Printf("  %s\n", p.Description)
	}
	fmt.Println()

	family := []struct {
		label  string
		people []*graph.Person
	}{
		{"parents", result.Parents},
		{"spouses", result.Spouses},
		{"children", result.Children},
		{"siblings", result.Siblings},
	}
	for _, f := range family {
		if len(f.people) == 0 {
			continue
		}
		fmt.Printf("  %s %s\n", DimStyle.Render(f.label+":"), PersonStyle.Render(personNames(f.people)))
	}
	if len(result.Mentions) > 0 {
		fmt.Printf("  %s %s\n", DimStyle.Render("mentions:"), RefStyle.Render(fmt.Sprintf("%d passage ranges", len(result.Mentions))))
	}
	fmt.Println()
	return nil
}

// showTimeline handles /timeline <name>
func (c *CLI) showTimeline(name string) error {
	result, err := c.ops.Person.Timeline(name)
	if err != nil {
		chosen, rerr := c.resolveInteractive(name, err)
		if rerr != nil {
			return rerr
		}
		if result, err = c.ops.Person.Timeline(chosen); err != nil {
			return err
		}
	}

	fmt.Println(HeaderStyle.Render("Timeline: " + result.Person.Name))
	fmt.Println()
	if len(result.Events) == 0 {
		fmt.Println(DimStyle.Render("  no recorded events"))
		fmt.Println()
		return nil
	}
	for _, te := range result.Events {
		line := "  " + EventStyle.Render(te.Event.Title)
		if te.Event.Era != "" {
			line += " " + DimStyle.Render("("+te.Event.Era+")")
		}
		if len(te.Places) > 0 {
			var names []string
			for _, pl := range te.Places {
				names = append(names, pl.Name)
			}
			line += " " + PlaceStyle.Render("@ "+strings.Join(names, ", "))
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

// showPlace handles /place <name>
func (c *CLI) showPlace(name string) error {
	result, err := c.ops.Place.History(name)
	if err != nil {
		return err
	}

	fmt.Println(HeaderStyle.Render(result.Place.Name))
	if result.Place.FeatureType != "" {
		fmt.Printf("  %s %s\n", DimStyle.Render("type:"), result.Place.FeatureType)
	}
	fmt.Println()

	if len(result.Events) == 0 {
		fmt.Println(DimStyle.Render("  no recorded events at this place"))
		fmt.Println()
		return nil
	}
	fmt.Println(SubheaderStyle.Render("Events"))
	for _, ev := range result.Events {
		fmt.Printf("  %s\n", EventStyle.Render(ev.Title))
	}
	if len(result.People) > 0 {
		fmt.Println(SubheaderStyle.Render("People"))
		fmt.Printf("  %s\n", PersonStyle.Render(personNames(result.People)))
	}
	fmt.Println()
	return nil
}

// showStats handles /stats
func (c *CLI) showStats() {
	s := c.ops.Stats()
	fmt.Println(HeaderStyle.Render("Graph Statistics"))
	fmt.Println()
	fmt.Printf("  people:          %d\n", s.People)
	fmt.Printf("  places:          %d\n", s.Places)
	fmt.Printf("  events:          %d\n", s.Events)
	fmt.Printf("  parent edges:    %d\n", s.ParentEdges)
	fmt.Printf("  spouse pairs:    %d\n", s.SpouseEdges)
	fmt.Printf("  participations:  %d\n", s.ParticipantEdges)
	fmt.Printf("  mentions:        %d\n", s.Mentions)
	fmt.Println()
}

func personNames(people []*graph.Person) string {
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}
