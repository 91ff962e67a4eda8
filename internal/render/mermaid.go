package render

import (
	"bytes"
	"fmt"
	"strings"

	"theograph/internal/graph"
	"theograph/internal/operations"
)

// MermaidGenealogy renders a family tree as a top-down Mermaid graph.
// Parent edges point downward toward children; spouse and sibling links
// are drawn dotted off the focal node.
func MermaidGenealogy(result *operations.GenealogyResult) string {
	var buf bytes.Buffer
	t := result.Traversal

	buf.WriteString("```mermaid\ngraph TD\n")

	declared := map[string]bool{}
	declare := func(p *graph.Person, focal bool) {
		if declared[p.ID] {
			return
		}
		declared[p.ID] = true
		if focal {
			fmt.Fprintf(&buf, "    %s[\"%s\"]:::focal\n", nodeID(p.ID), escapeLabel(p.Name))
			return
		}
		fmt.Fprintf(&buf, "    %s[\"%s\"]\n", nodeID(p.ID), escapeLabel(p.Name))
	}

	declare(t.Focal, true)
	for _, e := range t.Ancestors {
		declare(e.Person, false)
	}
	for _, e := range t.Descendants {
		declare(e.Person, false)
	}
	for _, p := range t.Spouses {
		declare(p, false)
	}

	// Parent-to-child arrows, only between people present in the tree.
	ix := map[string]bool{}
	for id := range declared {
		ix[id] = true
	}
	drawn := map[string]bool{}
	for _, e := range t.Entries() {
		for _, parentID := range e.Person.Parents {
			if !ix[parentID] {
				continue
			}
			key := parentID + ">" + e.Person.ID
			if drawn[key] {
				continue
			}
			drawn[key] = true
			fmt.Fprintf(&buf, "    %s --> %s\n", nodeID(parentID), nodeID(e.Person.ID))
		}
	}
	for _, p := range t.Spouses {
		fmt.Fprintf(&buf, "    %s -.spouse.- %s\n", nodeID(t.Focal.ID), nodeID(p.ID))
	}

	buf.WriteString("    classDef focal fill:#f9e79f,stroke:#b7950b\n")
	buf.WriteString("```\n")
	return buf.String()
}

// MermaidConnection renders a relationship path as a left-to-right chain
// with edge labels naming each step.
func MermaidConnection(result *operations.ConnectionResult) string {
	var buf bytes.Buffer
	buf.WriteString("```mermaid\ngraph LR\n")

	for i, hop := range result.Hops {
		fmt.Fprintf(&buf, "    %s[\"%s\"]\n", nodeID(hop.Person.ID), escapeLabel(hop.Person.Name))
		if i == 0 {
			continue
		}
		prev := result.Hops[i-1]
		fmt.Fprintf(&buf, "    %s -->|%s| %s\n",
			nodeID(prev.Person.ID), relationLabel(hop.Relation), nodeID(hop.Person.ID))
	}

	buf.WriteString("```\n")
	return buf.String()
}

// MermaidTimeline renders a person's events as a Mermaid timeline, one
// entry per event in timeline order.
func MermaidTimeline(result *operations.TimelineResult) string {
	if len(result.Events) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString("```mermaid\ntimeline\n")
	fmt.Fprintf(&buf, "    title Life of %s\n", escapeLabel(result.Person.Name))
	for _, te := range result.Events {
		label := te.Event.Era
		if label == "" && te.Event.StartYear != nil {
			label = formatYear(*te.Event.StartYear)
		}
		if label == "" {
			label = "undated"
		}
		fmt.Fprintf(&buf, "    %s : %s\n", escapeLabel(label), escapeLabel(te.Event.Title))
	}
	buf.WriteString("```\n")
	return buf.String()
}

// nodeID makes an entity id safe for use as a Mermaid node identifier.
func nodeID(id string) string {
	var b strings.Builder
	b.WriteString("n_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
