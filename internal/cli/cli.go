package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"theograph/internal/graph"
	"theograph/internal/operations"
)

// CLI provides the interactive command-line interface
type CLI struct {
	ops      *operations.Operations
	readline *readline.Instance
}

// NewCLI creates a new CLI instance over the operations layer
func NewCLI(ops *operations.Operations) *CLI {
	return &CLI{ops: ops}
}

// Run starts the interactive CLI session
func (c *CLI) Run() error {
	// Initialize readline with autocompletion
	config := &readline.Config{
		Prompt:            "> ",
		HistoryFile:       filepath.Join(os.TempDir(), ".theograph_history"),
		AutoComplete:      c.buildAutoCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	c.readline = rl
	defer rl.Close()

	fmt.Println("Welcome to theograph - Biblical Relationship Explorer")
	fmt.Println("Type /help for commands.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Check for exit commands
		if line == "/exit" || line == "/quit" || line == "/q" {
			fmt.Println("Goodbye!")
			return nil
		}

		if err := c.processCommand(line); err != nil {
			fmt.Println(FormatError(err.Error()))
		}
	}

	return nil
}

// buildAutoCompleter creates the autocompletion configuration
func (c *CLI) buildAutoCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("/help"),
		readline.PcItem("/explore",
			readline.PcItemDynamic(c.listPersonNames()),
		),
		readline.PcItem("/connect",
			readline.PcItemDynamic(c.listPersonNames()),
		),
		readline.PcItem("/passage"),
		readline.PcItem("/person",
			readline.PcItemDynamic(c.listPersonNames()),
		),
		readline.PcItem("/timeline",
			readline.PcItemDynamic(c.listPersonNames()),
		),
		readline.PcItem("/place",
			readline.PcItemDynamic(c.listPlaceNames()),
		),
		readline.PcItem("/stats"),
		readline.PcItem("/exit"),
		readline.PcItem("/quit"),
		readline.PcItem("/q"),
	)
}

// listPersonNames returns a function that lists person names for
// autocompletion
func (c *CLI) listPersonNames() func(string) []string {
	return func(line string) []string {
		var names []string
		for _, p := range c.ops.Store().People() {
			names = append(names, p.Name)
		}
		return names
	}
}

// listPlaceNames returns a function that lists place names for
// autocompletion
func (c *CLI) listPlaceNames() func(string) []string {
	return func(line string) []string {
		var names []string
		for _, pl := range c.ops.Store().Places() {
			names = append(names, pl.Name)
		}
		return names
	}
}

// processCommand handles slash commands
func (c *CLI) processCommand(input string) error {
	if !strings.HasPrefix(input, "/") {
		return fmt.Errorf("unknown input %q (type /help for commands)", input)
	}

	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?":
		c.showHelp()
		return nil
	case "/explore", "/tree":
		if len(args) < 1 {
			return fmt.Errorf("usage: /explore <name> [ancestors|descendants|both] [generations]")
		}
		return c.exploreGenealogy(args)
	case "/connect", "/path":
		return c.findConnection(args)
	case "/passage", "/ref":
		if len(args) < 1 {
			return fmt.Errorf("usage: /passage <reference>  (e.g. /passage Genesis 15)")
		}
		return c.showPassage(strings.Join(args, " "))
	case "/person", "/who":
		if len(args) < 1 {
			return fmt.Errorf("usage: /person <name>")
		}
		return c.showPerson(strings.Join(args, " "))
	case "/timeline", "/events":
		if len(args) < 1 {
			return fmt.Errorf("usage: /timeline <name>")
		}
		return c.showTimeline(strings.Join(args, " "))
	case "/place", "/where":
		if len(args) < 1 {
			return fmt.Errorf("usage: /place <name>")
		}
		return c.showPlace(strings.Join(args, " "))
	case "/stats":
		c.showStats()
		return nil
	default:
		return fmt.Errorf("unknown command %s (type /help for commands)", command)
	}
}

// resolveInteractive retries a resolution failure interactively: on
// ambiguity the candidate picker chooses an id; unknown names print the
// fuzzy suggestions if any exist.
func (c *CLI) resolveInteractive(name string, err error) (string, error) {
	var ambiguous *graph.AmbiguousNameError
	if errors.As(err, &ambiguous) {
		chosen, pickErr := PickCandidate(ambiguous.Name, ambiguous.Candidates)
		if pickErr != nil {
			return "", pickErr
		}
		if chosen == "" {
			return "", fmt.Errorf("selection cancelled")
		}
		return chosen, nil
	}
	return "", err
}
