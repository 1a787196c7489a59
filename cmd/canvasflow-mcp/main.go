// Package main provides a standalone entry point for the canvasflow MCP server.
//
// It accepts the same flags as 'canvasflow mcp':
//
//	canvasflow-mcp                           # stdio mode (default)
//	canvasflow-mcp --transport http --port 8080
//	canvasflow-mcp --transport http --oauth --issuer https://company.okta.com --audience api://canvasflow
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tuannvm/canvasflow/internal/cmd"
)

// Version is the server version, set by the build process.
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := cmd.RunMCP("canvasflow-mcp", os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
