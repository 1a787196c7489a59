package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	cfmcp "github.com/tuannvm/canvasflow/internal/mcp"
)

func mcpMain(args []string) error {
	return RunMCP("canvasflow mcp", args)
}

// RunMCP parses MCP server flags from args and serves until interrupted.
// Flag defaults can be set through MCP_TRANSPORT, MCP_PORT and
// CANVASFLOW_CONFIG.
func RunMCP(name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var (
		transport      string
		port           int
		enableOAuth    bool
		oauth          cfmcp.OAuthConfig
		sessionTimeout time.Duration
		configPath     string
		mcpVerbose     bool
	)

	fs.StringVar(&transport, "transport", getEnv("MCP_TRANSPORT", cfmcp.TransportStdio), "transport mode: stdio, http")
	fs.IntVar(&port, "port", getEnvInt("MCP_PORT", 8080), "HTTP port (only used with --transport http)")
	fs.BoolVar(&enableOAuth, "oauth", false, "enable OAuth 2.1 authentication (only with http transport)")
	fs.StringVar(&oauth.Provider, "provider", "okta", "OAuth provider: okta, google, azure, hmac")
	fs.StringVar(&oauth.Issuer, "issuer", "", "OAuth issuer URL (required with --oauth)")
	fs.StringVar(&oauth.Audience, "audience", "", "OAuth audience (required with --oauth)")
	fs.StringVar(&oauth.ServerURL, "server-url", "", "public base URL for OAuth callbacks (default: http://localhost:<port>)")
	fs.DurationVar(&sessionTimeout, "session-timeout", 30*time.Minute, "HTTP session timeout")
	fs.StringVar(&configPath, "config", getEnv("CANVASFLOW_CONFIG", ""), "path to canvasflow config file")
	fs.BoolVar(&mcpVerbose, "v", false, "enable verbose logging")
	fs.BoolVar(&mcpVerbose, "verbose", false, "enable verbose logging")

	fs.Usage = func() {
		fmt.Printf(`Usage: %s [flags]

Run canvasflow as an MCP (Model Context Protocol) server exposing the
agent catalog, example workflows and node configuration as tools.

Transports:
  stdio    Standard input/output for CLI integration (default)
  http     Streamable HTTP transport, with optional OAuth 2.1

Examples:
  %[1]s
  %[1]s --transport http --port 8080
  %[1]s --transport http --oauth \
    --issuer https://company.okta.com --audience api://canvasflow

Flags:
`, name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if mcpVerbose {
		level = slog.LevelDebug
	}
	// stdout carries the stdio transport, so logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	handlers := cfmcp.NewHandlers().WithVerbose(mcpVerbose)
	if configPath != "" {
		handlers.WithConfigPath(configPath)
	}

	cfg := &cfmcp.ServerConfig{
		Version:        version,
		Logger:         logger,
		Handlers:       handlers,
		Port:           port,
		SessionTimeout: sessionTimeout,
	}
	if enableOAuth {
		if err := oauth.Validate(); err != nil {
			return err
		}
		cfg.OAuth = &oauth
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfmcp.NewServer(cfg).Run(ctx, transport); err != nil {
		return err
	}
	logger.Info("server shutdown complete")
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
