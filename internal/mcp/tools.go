package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcp "github.com/metoro-io/mcp-golang"
	"theograph/internal/graph"
	"theograph/internal/operations"
	"theograph/internal/render"
)

// RegisterTools registers the study tools with the MCP server. Each tool
// returns markdown; ambiguity and disconnection come back as text the
// agent can act on rather than as protocol errors.
func RegisterTools(server *mcp.Server, ops *operations.Operations) error {
	if err := registerGenealogyTools(server, ops.Genealogy); err != nil {
		return fmt.Errorf("failed to register genealogy tools: %w", err)
	}
	if err := registerPassageTools(server, ops.Passage); err != nil {
		return fmt.Errorf("failed to register passage tools: %w", err)
	}
	if err := registerPersonTools(server, ops.Person); err != nil {
		return fmt.Errorf("failed to register person tools: %w", err)
	}
	if err := registerPlaceTools(server, ops.Place); err != nil {
		return fmt.Errorf("failed to register place tools: %w", err)
	}
	if err := registerStatsTool(server, ops); err != nil {
		return fmt.Errorf("failed to register stats tool: %w", err)
	}
	return nil
}

func registerGenealogyTools(server *mcp.Server, genealogyOps *operations.GenealogyOps) error {
	err := server.RegisterTool(
		"explore_genealogy",
		"Explore a biblical person's family tree: ancestors, descendants, spouses, and siblings, with a Mermaid diagram",
		func(args struct {
			Name        string `json:"name" jsonschema:"required,description=Person name (e.g. David or Bathsheba)"`
			Direction   string `json:"direction" jsonschema:"description=ancestors/descendants/both (default both)"`
			Generations int    `json:"generations" jsonschema:"description=Maximum generations to expand (default 5)"`
		}) (*mcp.ToolResponse, error) {
			dir, err := operations.ParseDirection(args.Direction)
			if err != nil {
				return nil, err
			}

			result, err := genealogyOps.Explore(args.Name, dir, args.Generations)
			if err != nil {
				if resp, handled := softResolveFailure(args.Name, err); handled {
					return resp, nil
				}
				return nil, err
			}

			response := render.Genealogy(result) + "\n" + render.MermaidGenealogy(result)
			return mcp.NewToolResponse(mcp.NewTextContent(response)), nil
		},
	)
	if err != nil {
		return err
	}

	err = server.RegisterTool(
		"find_connection",
		"Find the shortest relationship path between two biblical people",
		func(args struct {
			Person1 string `json:"person1" jsonschema:"required,description=First person name"`
			Person2 string `json:"person2" jsonschema:"required,description=Second person name"`
		}) (*mcp.ToolResponse, error) {
			result, err := genealogyOps.FindConnection(args.Person1, args.Person2)
			if err != nil {
				if errors.Is(err, graph.ErrNoPathFound) {
					// Disconnection is an answer, not a failure.
					return mcp.NewToolResponse(mcp.NewTextContent(render.NoConnection(args.Person1, args.Person2))), nil
				}
				if resp, handled := softResolveFailure(args.Person1+" / "+args.Person2, err); handled {
					return resp, nil
				}
				return nil, err
			}

			response := render.ConnectionPath(result) + "\n" + render.MermaidConnection(result)
			return mcp.NewToolResponse(mcp.NewTextContent(response)), nil
		},
	)
	return err
}

func registerPassageTools(server *mcp.Server, passageOps *operations.PassageOps) error {
	return server.RegisterTool(
		"people_in_passage",
		"List the people, places, and events mentioned in a scripture passage",
		func(args struct {
			Reference string `json:"reference" jsonschema:"required,description=Passage reference (e.g. Genesis 15 or John 3:16)"`
		}) (*mcp.ToolResponse, error) {
			result, err := passageOps.EntitiesIn(args.Reference)
			if err != nil {
				if errors.Is(err, graph.ErrReferenceNotRecognized) {
					msg := fmt.Sprintf("Could not parse %q as a scripture reference. Use forms like \"Genesis 15\", \"John 3:16\", or \"Gen.15.6\".", args.Reference)
					return mcp.NewToolResponse(mcp.NewTextContent(msg)), nil
				}
				return nil, err
			}

			return mcp.NewToolResponse(mcp.NewTextContent(render.PassageEntities(result))), nil
		},
	)
}

func registerPersonTools(server *mcp.Server, personOps *operations.PersonOps) error {
	err := server.RegisterTool(
		"lookup_person",
		"Look up a biblical person: names, life years, immediate family, and key scripture references",
		func(args struct {
			Name string `json:"name" jsonschema:"required,description=Person name or id"`
		}) (*mcp.ToolResponse, error) {
			result, err := personOps.Lookup(args.Name)
			if err != nil {
				if resp, handled := softResolveFailure(args.Name, err); handled {
					return resp, nil
				}
				return nil, err
			}

			return mcp.NewToolResponse(mcp.NewTextContent(render.PersonSummary(result))), nil
		},
	)
	if err != nil {
		return err
	}

	err = server.RegisterTool(
		"explore_person_events",
		"List the events of a person's life in timeline order, with locations",
		func(args struct {
			Name string `json:"name" jsonschema:"required,description=Person name"`
		}) (*mcp.ToolResponse, error) {
			result, err := personOps.Timeline(args.Name)
			if err != nil {
				if resp, handled := softResolveFailure(args.Name, err); handled {
					return resp, nil
				}
				return nil, err
			}

			response := render.Timeline(result)
			if diagram := render.MermaidTimeline(result); diagram != "" {
				response += "\n" + diagram
			}
			return mcp.NewToolResponse(mcp.NewTextContent(response)), nil
		},
	)
	return err
}

func registerPlaceTools(server *mcp.Server, placeOps *operations.PlaceOps) error {
	return server.RegisterTool(
		"explore_place",
		"Explore a biblical place: its events in timeline order and the people involved",
		func(args struct {
			Name string `json:"name" jsonschema:"required,description=Place name (e.g. Jerusalem or Bethel)"`
		}) (*mcp.ToolResponse, error) {
			result, err := placeOps.History(args.Name)
			if err != nil {
				if errors.Is(err, graph.ErrPlaceNotFound) {
					msg := fmt.Sprintf("No place named %q is recorded. Place names match exactly (case-insensitive).", args.Name)
					return mcp.NewToolResponse(mcp.NewTextContent(msg)), nil
				}
				return nil, err
			}

			return mcp.NewToolResponse(mcp.NewTextContent(render.PlaceHistory(result))), nil
		},
	)
}

func registerStatsTool(server *mcp.Server, ops *operations.Operations) error {
	return server.RegisterTool(
		"graph_stats",
		"Report entity and relationship totals for the loaded graph",
		func(args struct {
			JSON bool `json:"json" jsonschema:"description=Return raw JSON instead of markdown"`
		}) (*mcp.ToolResponse, error) {
			stats := ops.Stats()
			if args.JSON {
				data, _ := json.MarshalIndent(stats, "", "  ")
				return mcp.NewToolResponse(mcp.NewTextContent(string(data))), nil
			}
			return mcp.NewToolResponse(mcp.NewTextContent(render.Stats(stats))), nil
		},
	)
}

// softResolveFailure converts name-resolution failures into guidance text.
// Unknown names and ambiguity are expected agent inputs; the agent corrects
// them from the message. Other errors are left for protocol-level failure.
func softResolveFailure(name string, err error) (*mcp.ToolResponse, bool) {
	var ambiguous *graph.AmbiguousNameError
	if errors.As(err, &ambiguous) {
		return mcp.NewToolResponse(mcp.NewTextContent(render.Candidates(ambiguous.Name, ambiguous.Candidates))), true
	}
	if errors.Is(err, graph.ErrPersonNotFound) {
		msg := fmt.Sprintf("No person matching %q was found. Try an alternate spelling or a more common form of the name.", name)
		return mcp.NewToolResponse(mcp.NewTextContent(msg)), true
	}
	return nil, false
}
