package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/bitmap-search-mcp/internal/config"
	"github.com/ironsheep/bitmap-search-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("bitmap-search-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("bitmap-search-mcp - MCP server for on-screen bitmap and color search")
			fmt.Println()
			fmt.Println("Usage: bitmap-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  BITMAP_MCP_CONFIG=path       Optional config file (yaml/toml/json)")
			fmt.Println("  BITMAP_MCP_LOG_LEVEL=debug   Enable debug logging")
			fmt.Println("  BITMAP_MCP_CAPTURE_SCALE=2   Physical pixels per logical unit for captures")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(os.Getenv("BITMAP_MCP_CONFIG"))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.LogLevel == "debug" {
		log.Printf("Bitmap Search MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config: tolerance=%g scale=%g cache=%v", cfg.DefaultTolerance, cfg.CaptureScale, cfg.CacheBitmaps)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
