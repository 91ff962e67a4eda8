package mcp

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"theograph/internal/graph"
	"theograph/internal/operations"
)

// RunServer runs the MCP server over stdio, exposing the relationship
// graph to a connected agent.
func RunServer(dataDir string) error {
	// Log to stderr so it doesn't interfere with the stdio protocol
	log.SetOutput(os.Stderr)
	log.SetPrefix("[THEOGRAPH-MCP] ")
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	// Check if we're in MCP mode (stdio connected)
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return fmt.Errorf("MCP server mode requires stdin/stdout to be connected (not a terminal)")
	}

	log.Println("Starting theograph MCP server...")

	if dataDir == "" {
		dataDir = os.Getenv("THEOGRAPH_DATA")
	}
	if dataDir == "" {
		dataDir = "./data"
	}

	snapshot, err := graph.LoadSnapshot(filepath.Join(dataDir, graph.SnapshotFile))
	if err != nil {
		return fmt.Errorf("failed to load graph snapshot: %w", err)
	}

	store := graph.NewStore(snapshot)
	holder := graph.NewHolder(graph.BuildIndex(store))
	ops := operations.New(holder)

	people, places, events, mentions := store.Counts()
	log.Printf("Graph loaded: %d people, %d places, %d events, %d mentions", people, places, events, mentions)

	server := mcp.NewServer(stdio.NewStdioServerTransport())

	log.Println("Registering tools with MCP server...")
	if err := RegisterTools(server, ops); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	log.Println("MCP server ready, serving requests...")
	if err := server.Serve(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	// Block forever - the server runs in background goroutines
	select {}
}
