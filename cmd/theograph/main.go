package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"theograph/internal/cli"
	"theograph/internal/graph"
	"theograph/internal/ingest"
	"theograph/internal/mcp"
	"theograph/internal/operations"
	"theograph/internal/server"
)

func main() {
	var (
		help        bool
		dataDir     string
		importDir   string
		serverPort  int
		serverToken string
		noServer    bool
		debug       bool
		mcpMode     bool
	)

	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message (shorthand)")
	flag.StringVar(&dataDir, "data", os.Getenv("THEOGRAPH_DATA"), "Data directory holding the graph snapshot (defaults to ./data)")
	flag.StringVar(&importDir, "import", "", "Import Theographic CSV files from this directory and write the snapshot")
	flag.IntVar(&serverPort, "port", 8765, "Port for the HTTP API server")
	flag.StringVar(&serverToken, "token", os.Getenv("THEOGRAPH_TOKEN"), "Optional auth token for the HTTP API (can also use THEOGRAPH_TOKEN env var)")
	flag.BoolVar(&noServer, "no-server", false, "Disable the HTTP API server")
	flag.BoolVar(&debug, "debug", false, "Enable debug output for troubleshooting")
	flag.BoolVar(&mcpMode, "mcp", false, "Run as MCP server for AI assistants (requires stdio connection)")
	flag.Parse()

	if dataDir == "" {
		dataDir = "./data"
	}

	if help {
		fmt.Println("theograph - Biblical Relationship Explorer")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [flags]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Flags:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Environment Variables:")
		fmt.Println("  THEOGRAPH_DATA    Data directory holding the graph snapshot")
		fmt.Println("  THEOGRAPH_TOKEN   Optional auth token for the HTTP API")
		fmt.Println()
		fmt.Println("MCP Server Mode:")
		fmt.Println("  Run with -mcp flag to start as an MCP server for AI assistants.")
		fmt.Println("  This mode requires stdin/stdout to be connected (not a terminal).")
		os.Exit(0)
	}

	snapshotPath := filepath.Join(dataDir, graph.SnapshotFile)

	// Import mode: build the snapshot from Theographic CSVs and exit.
	if importDir != "" {
		snap, err := ingest.Import(importDir)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		if err := graph.SaveSnapshot(snap, snapshotPath); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		log.Printf("Snapshot written to %s", snapshotPath)
		return
	}

	// If MCP mode is requested, run as MCP server
	if mcpMode {
		if err := mcp.RunServer(dataDir); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}
		return
	}

	if debug {
		log.Println("Debug mode enabled")
	}

	snapshot, err := graph.LoadSnapshot(snapshotPath)
	if err != nil {
		log.Fatalf("Failed to load graph snapshot from %s: %v (run with -import <csv-dir> to build one)", snapshotPath, err)
	}

	store := graph.NewStore(snapshot)
	holder := graph.NewHolder(graph.BuildIndex(store))
	ops := operations.New(holder)

	people, places, events, mentions := store.Counts()
	log.Printf("Graph loaded: %d people, %d places, %d events, %d mentions", people, places, events, mentions)

	// Start HTTP API server if enabled
	if !noServer {
		apiServer := server.NewServer(serverPort, serverToken, ops)
		go func() {
			if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("API server error: %v", err)
			}
		}()

		// Ensure server stops on exit
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := apiServer.Stop(shutdownCtx); err != nil {
				log.Printf("Error stopping server: %v", err)
			}
		}()
	} else {
		log.Println("HTTP API server disabled")
	}

	// Run interactive CLI
	if err := cli.NewCLI(ops).Run(); err != nil {
		log.Fatalf("CLI error: %v", err)
	}
}
