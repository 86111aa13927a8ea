package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/config"
	mcputil "github.com/sha1n/mcp-shiritori-server/internal/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/wordlists"
	"github.com/spf13/pflag"
)

// ServerName is the implementation name reported to MCP clients
const ServerName = "shiritori-mcp"

// RunParams contains dependencies for the run function
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(context.Context, *config.Settings, string) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// RunWithDeps executes the server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := params.ValidSettings(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Always log to stderr; stdout carries the stdio transport
	handler := slog.NewTextHandler(os.Stderr, nil)
	slog.SetDefault(slog.New(handler))

	slog.Info("Starting MCP shiritori server", "version", version)
	config.Log(settings)

	mcpServer, cleanup, err := params.CreateServer(ctx, settings, version)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	if settings.Transport == "stdio" {
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(mcpServer, settings)
}

// CreateMCPServer loads the configured word lists and creates the MCP server
// with the shiritori tools registered. The returned cleanup releases the
// word-list indexes.
func CreateMCPServer(ctx context.Context, settings *config.Settings, version string) (*mcp.Server, func(), error) {
	svc, err := wordlists.NewService(&settings.Words, &settings.Search)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create word-list service: %w", err)
	}

	if err := svc.Initialize(ctx); err != nil {
		if closeErr := svc.Close(); closeErr != nil {
			slog.Error("Failed to close word-list service", "error", closeErr)
		}
		return nil, nil, fmt.Errorf("failed to load word lists: %w", err)
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			slog.Error("Failed to close word-list service", "error", err)
		}
	}

	server := mcputil.CreateServer(mcputil.ServerConfig{
		Name:      ServerName,
		Version:   version,
		WordLists: svc,
	})

	return server, cleanup, nil
}
