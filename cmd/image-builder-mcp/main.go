package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-builder-mcp/internal/app"
	"github.com/ironsheep/image-builder-mcp/internal/config"
	"github.com/ironsheep/image-builder-mcp/internal/server"
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
			fmt.Printf("image-builder-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-builder-mcp - MCP server that builds images out of palette blocks")
			fmt.Println()
			fmt.Println("Usage: image-builder-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=path        Config file (default %s, created if missing)\n", config.EnvConfigPath, config.DefaultPath)
			fmt.Printf("  %s=n         Override maxEdge\n", config.EnvMaxEdge)
			fmt.Printf("  %s=debug    Enable debug logging\n", config.EnvLogLevel)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	a, err := app.Load("", app.Options{})
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if a.Config.Debug {
		log.Printf("Image Builder MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Config %s: maxEdge %d, filter %s, %d palette entries",
			a.Config.Path, a.Config.MaxEdge, a.Config.Filter, a.Store.Load().Len())
	}

	srv := server.New(server.Options{
		Builder:  a.Builder,
		Store:    a.Store,
		Reloader: a.Reloader,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
