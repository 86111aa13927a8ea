package wordlists

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/metrics"
)

// LookupArgument defines plain word lookup parameters.
type LookupArgument struct {
	Collection string `json:"collection,omitempty" jsonschema:"Word collection to search; defaults to the combined collection"`
	Text       string `json:"text,omitempty" jsonschema:"Substring to look for, or a pattern when wildcard is set; empty lists every word"`
	Wildcard   bool   `json:"wildcard,omitempty" jsonschema:"Treat text as a whole-word pattern where the placeholder stands for any one character"`
	Head       string `json:"head,omitempty" jsonschema:"Only words starting with this kana"`
	Tail       string `json:"tail,omitempty" jsonschema:"Only words ending with this kana"`
}

// LookupHandler handles the lookup_words MCP tool.
type LookupHandler struct {
	service *Service
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(service *Service) *LookupHandler {
	return &LookupHandler{service: service}
}

// Handle looks words up in one collection.
func (h *LookupHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args LookupArgument) (*mcp.CallToolResult, any, error) {
	head, err := parseUnit("head", args.Head)
	if err != nil {
		return errorResult("Invalid query: %s", err), nil, nil
	}
	tail, err := parseUnit("tail", args.Tail)
	if err != nil {
		return errorResult("Invalid query: %s", err), nil, nil
	}

	q := LookupQuery{
		Collection: args.Collection,
		Text:       args.Text,
		Head:       head,
		Tail:       tail,
	}
	if args.Wildcard {
		q.Mode = LookupWildcard
	}

	ctx, cancel := context.WithTimeout(ctx, h.service.GetSettings().Timeout)
	defer cancel()

	started := time.Now()
	words, err := h.service.Lookup(ctx, q)
	metrics.ObserveSearch("lookup", time.Since(started), len(words), err)
	if err != nil {
		return failureResult(h.service, "lookup", args.Collection, err), nil, nil
	}

	name := args.Collection
	if name == "" {
		name = h.service.DefaultCollection()
	}
	if len(words) == 0 {
		return textResult(fmt.Sprintf("No words found in '%s'", name)), nil, nil
	}

	limit := h.service.GetSettings().MaxResults
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d words in '%s':\n\n", len(words), name)
	for i, w := range words {
		if i == limit {
			break
		}
		sb.WriteString(w)
		sb.WriteString("\n")
	}
	if len(words) > limit {
		fmt.Fprintf(&sb, "\n... and %d more words\n", len(words)-limit)
	}
	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *LookupHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "lookup_words",
		Description: "Look up words of a collection by substring or by a one-character placeholder pattern",
	}
}

// ListCollectionsArgument takes no parameters.
type ListCollectionsArgument struct{}

// ListCollectionsHandler handles the list_collections MCP tool.
type ListCollectionsHandler struct {
	service *Service
}

// NewListCollectionsHandler creates a new collection listing handler.
func NewListCollectionsHandler(service *Service) *ListCollectionsHandler {
	return &ListCollectionsHandler{service: service}
}

// Handle lists the configured collections and their load state.
func (h *ListCollectionsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ListCollectionsArgument) (*mcp.CallToolResult, any, error) {
	states := h.service.Catalog().States()
	if len(states) == 0 {
		return errorResult("No word lists are configured"), nil, nil
	}

	def := h.service.DefaultCollection()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d collections:\n\n", len(states))
	for _, s := range states {
		fmt.Fprintf(&sb, "- %s", s.Name)
		if s.Name == def {
			sb.WriteString(" (default)")
		}
		if !s.Loaded() {
			fmt.Fprintf(&sb, ": failed to load: %s\n", s.Error)
			continue
		}
		fmt.Fprintf(&sb, ": %d words, %d start kana", s.Words, s.Units)
		if s.Union {
			fmt.Fprintf(&sb, ", union of %d lists", len(s.Sources))
		}
		sb.WriteString("\n")
	}
	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *ListCollectionsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_collections",
		Description: "List the loaded word collections with their sizes",
	}
}

// RegisterLookupTools registers the lookup and listing tools with an MCP server.
func RegisterLookupTools(server *mcp.Server, service *Service) {
	lookup := NewLookupHandler(service)
	mcp.AddTool(server, lookup.GetToolDefinition(), lookup.Handle)

	list := NewListCollectionsHandler(service)
	mcp.AddTool(server, list.GetToolDefinition(), list.Handle)
}

// RegisterTools registers every word-list tool with an MCP server.
func RegisterTools(server *mcp.Server, service *Service) {
	RegisterChainTools(server, service)
	RegisterLookupTools(server, service)
}
