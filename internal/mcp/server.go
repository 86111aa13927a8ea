package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/wordlists"
)

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string
	// WordLists backs the shiritori tools. Without it the server exposes no tools.
	WordLists *wordlists.Service
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	if cfg.WordLists != nil {
		wordlists.RegisterTools(s, cfg.WordLists)
	}

	return s
}
