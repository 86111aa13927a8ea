package wordlists

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/shiritori"
)

// Cost model argument values.
const (
	CostWords = "words"
	CostChars = "chars"
)

// Boundary argument values.
const (
	ByStart = "start"
	ByEnd   = "end"
)

// SearchChainsArgument defines chain search parameters.
type SearchChainsArgument struct {
	Collection  string             `json:"collection,omitempty" jsonschema:"Word collection to search; defaults to the combined collection"`
	Start       string             `json:"start,omitempty" jsonschema:"Kana the first word must start with"`
	End         string             `json:"end,omitempty" jsonschema:"Kana the last word must end with"`
	Length      int                `json:"length,omitempty" jsonschema:"Number of words in the chain; required unless shortest is set"`
	Shortest    bool               `json:"shortest,omitempty" jsonschema:"Find the shortest chains instead of chains of a fixed length"`
	Cost        string             `json:"cost,omitempty" jsonschema:"What shortest minimizes: words (default) or chars"`
	Constraints ConstraintArgument `json:"constraints,omitempty" jsonschema:"Substring and boundary constraints"`
}

// SearchChainsHandler handles the search_chains MCP tool.
type SearchChainsHandler struct {
	service *Service
}

// NewSearchChainsHandler creates a new chain search handler.
func NewSearchChainsHandler(service *Service) *SearchChainsHandler {
	return &SearchChainsHandler{service: service}
}

// Handle runs an exact-length or shortest chain search.
func (h *SearchChainsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchChainsArgument) (*mcp.CallToolResult, any, error) {
	c, err := unitConstraints(args.Constraints, args.Start, args.End)
	if err != nil {
		return errorResult("Invalid query: %s", err), nil, nil
	}

	kind := "exact"
	search := func(ctx context.Context, ix *shiritori.Index) ([]shiritori.Chain, error) {
		return ix.SearchExact(ctx, c)
	}

	if args.Shortest {
		model, err := parseCost(args.Cost)
		if err != nil {
			return errorResult("Invalid query: %s", err), nil, nil
		}
		kind = "shortest"
		search = func(ctx context.Context, ix *shiritori.Index) ([]shiritori.Chain, error) {
			return ix.SearchShortest(ctx, c, model)
		}
	} else {
		if args.Length < 1 {
			return errorResult("Invalid query: length must be at least 1"), nil, nil
		}
		c.Length = args.Length
	}

	name, chains, err := runSearch(ctx, h.service, kind, args.Collection, search)
	if err != nil {
		return failureResult(h.service, kind, name, err), nil, nil
	}
	return textResult(formatChains(name, chains, h.service.GetSettings().MaxResults)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchChainsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_chains",
		Description: "Find shiritori word chains of a fixed length, or the shortest chains, in a word collection",
	}
}

// CountChainsArgument defines chain counting parameters.
type CountChainsArgument struct {
	Collection  string             `json:"collection,omitempty" jsonschema:"Word collection to search; defaults to the combined collection"`
	Start       string             `json:"start,omitempty" jsonschema:"Kana the first word must start with"`
	End         string             `json:"end,omitempty" jsonschema:"Kana the last word must end with"`
	Length      int                `json:"length" jsonschema:"Number of words in the chain"`
	By          string             `json:"by,omitempty" jsonschema:"Group counts by the start (default) or end kana of each chain"`
	Constraints ConstraintArgument `json:"constraints,omitempty" jsonschema:"Substring and boundary constraints"`
}

// CountChainsHandler handles the count_chains MCP tool.
type CountChainsHandler struct {
	service *Service
}

// NewCountChainsHandler creates a new chain count handler.
func NewCountChainsHandler(service *Service) *CountChainsHandler {
	return &CountChainsHandler{service: service}
}

// Handle counts chains grouped by their start or end unit.
func (h *CountChainsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CountChainsArgument) (*mcp.CallToolResult, any, error) {
	c, err := unitConstraints(args.Constraints, args.Start, args.End)
	if err != nil {
		return errorResult("Invalid query: %s", err), nil, nil
	}
	if args.Length < 1 {
		return errorResult("Invalid query: length must be at least 1"), nil, nil
	}
	c.Length = args.Length

	by, label := shiritori.BoundaryStart, ByStart
	switch args.By {
	case "", ByStart:
	case ByEnd:
		by, label = shiritori.BoundaryEnd, ByEnd
	default:
		return errorResult("Invalid query: by must be '%s' or '%s', got: %s", ByStart, ByEnd, args.By), nil, nil
	}

	name, counts, err := runSearch(ctx, h.service, "count", args.Collection, func(ctx context.Context, ix *shiritori.Index) ([]shiritori.UnitCount, error) {
		return ix.CountByBoundary(ctx, c, by)
	})
	if err != nil {
		return failureResult(h.service, "count", name, err), nil, nil
	}

	total := 0
	for _, uc := range counts {
		total += uc.Count
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d chains of %d words in '%s', counted by %s:\n\n", total, c.Length, name, label)
	for _, uc := range counts {
		fmt.Fprintf(&sb, "%s: %d\n", uc.Unit, uc.Count)
	}
	return textResult(sb.String()), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *CountChainsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "count_chains",
		Description: "Count shiritori chains of a fixed length, grouped by the kana they start or end with",
	}
}

// WildcardChainsArgument defines pattern-anchored chain search parameters.
type WildcardChainsArgument struct {
	Collection   string             `json:"collection,omitempty" jsonschema:"Word collection to search; defaults to the combined collection"`
	StartPattern string             `json:"start_pattern" jsonschema:"Pattern the first word must match; the placeholder stands for any one character"`
	EndPattern   string             `json:"end_pattern,omitempty" jsonschema:"Pattern the last word must match"`
	Length       int                `json:"length" jsonschema:"Number of words in the chain"`
	Constraints  ConstraintArgument `json:"constraints,omitempty" jsonschema:"Substring and boundary constraints"`
}

// WildcardChainsHandler handles the search_wildcard_chains MCP tool.
type WildcardChainsHandler struct {
	service *Service
}

// NewWildcardChainsHandler creates a new pattern-anchored search handler.
func NewWildcardChainsHandler(service *Service) *WildcardChainsHandler {
	return &WildcardChainsHandler{service: service}
}

// Handle runs a chain search anchored by word patterns.
func (h *WildcardChainsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args WildcardChainsArgument) (*mcp.CallToolResult, any, error) {
	placeholder := h.service.Placeholder()
	q := shiritori.WildcardQuery{
		Length:      args.Length,
		Constraints: args.Constraints.constraints(),
	}

	var err error
	if q.Start, err = shiritori.CompilePattern(args.StartPattern, placeholder); err != nil {
		return errorResult("Invalid start pattern: %s", err), nil, nil
	}
	if args.EndPattern != "" {
		if q.End, err = shiritori.CompilePattern(args.EndPattern, placeholder); err != nil {
			return errorResult("Invalid end pattern: %s", err), nil, nil
		}
	}

	name, chains, err := runSearch(ctx, h.service, "wildcard", args.Collection, func(ctx context.Context, ix *shiritori.Index) ([]shiritori.Chain, error) {
		return ix.SearchWildcard(ctx, q)
	})
	if err != nil {
		return failureResult(h.service, "wildcard", name, err), nil, nil
	}
	return textResult(formatChains(name, chains, h.service.GetSettings().MaxResults)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *WildcardChainsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_wildcard_chains",
		Description: "Find shiritori chains whose first and last words match patterns with a one-character placeholder",
	}
}

// LengthChainsArgument defines word-length chain search parameters.
type LengthChainsArgument struct {
	Collection  string             `json:"collection,omitempty" jsonschema:"Word collection to search; defaults to the combined collection"`
	Lengths     [][]int            `json:"lengths" jsonschema:"Acceptable word lengths for each position of the chain"`
	Permute     bool               `json:"permute,omitempty" jsonschema:"Also accept the positions in any order"`
	Constraints ConstraintArgument `json:"constraints,omitempty" jsonschema:"Substring and boundary constraints"`
}

// LengthChainsHandler handles the search_length_chains MCP tool.
type LengthChainsHandler struct {
	service *Service
}

// NewLengthChainsHandler creates a new word-length search handler.
func NewLengthChainsHandler(service *Service) *LengthChainsHandler {
	return &LengthChainsHandler{service: service}
}

// Handle runs a chain search driven by per-position word lengths.
func (h *LengthChainsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args LengthChainsArgument) (*mcp.CallToolResult, any, error) {
	q := shiritori.LengthQuery{
		LengthSets:  args.Lengths,
		Permute:     args.Permute,
		Constraints: args.Constraints.constraints(),
	}

	name, chains, err := runSearch(ctx, h.service, "multi_length", args.Collection, func(ctx context.Context, ix *shiritori.Index) ([]shiritori.Chain, error) {
		return ix.SearchMultiLength(ctx, q)
	})
	if err != nil {
		return failureResult(h.service, "multi_length", name, err), nil, nil
	}
	return textResult(formatChains(name, chains, h.service.GetSettings().MaxResults)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *LengthChainsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_length_chains",
		Description: "Find shiritori chains whose words have given character lengths, position by position",
	}
}

// LoopsArgument defines loop search parameters.
type LoopsArgument struct {
	Collection string `json:"collection,omitempty" jsonschema:"Word collection to search; defaults to the combined collection"`
	Pattern    string `json:"pattern" jsonschema:"Pattern the loop text must match under some rotation; its length is the loop length"`
}

// LoopsHandler handles the search_loops MCP tool.
type LoopsHandler struct {
	service *Service
}

// NewLoopsHandler creates a new loop search handler.
func NewLoopsHandler(service *Service) *LoopsHandler {
	return &LoopsHandler{service: service}
}

// Handle runs a loop search.
func (h *LoopsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args LoopsArgument) (*mcp.CallToolResult, any, error) {
	p, err := shiritori.CompilePattern(args.Pattern, h.service.Placeholder())
	if err != nil {
		return errorResult("Invalid pattern: %s", err), nil, nil
	}

	name, chains, err := runSearch(ctx, h.service, "loop", args.Collection, func(ctx context.Context, ix *shiritori.Index) ([]shiritori.Chain, error) {
		return ix.SearchLoop(ctx, p)
	})
	if err != nil {
		return failureResult(h.service, "loop", name, err), nil, nil
	}
	return textResult(formatChains(name, chains, h.service.GetSettings().MaxResults)), nil, nil
}

// GetToolDefinition returns the MCP tool definition.
func (h *LoopsHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_loops",
		Description: "Find closed shiritori chains whose last word links back to the first and whose text matches a pattern",
	}
}

// unitConstraints builds constraints with optional start and end units.
func unitConstraints(args ConstraintArgument, start, end string) (shiritori.Constraints, error) {
	c := args.constraints()
	var err error
	if c.Start, err = parseUnit("start", start); err != nil {
		return c, err
	}
	if c.End, err = parseUnit("end", end); err != nil {
		return c, err
	}
	return c, nil
}

// parseCost parses the cost model argument.
func parseCost(value string) (shiritori.CostModel, error) {
	switch value {
	case "", CostWords:
		return shiritori.WordCost, nil
	case CostChars:
		return shiritori.CharCost, nil
	default:
		return shiritori.WordCost, fmt.Errorf("cost must be '%s' or '%s', got: %s", CostWords, CostChars, value)
	}
}

// RegisterChainTools registers the chain search tools with an MCP server.
func RegisterChainTools(server *mcp.Server, service *Service) {
	search := NewSearchChainsHandler(service)
	mcp.AddTool(server, search.GetToolDefinition(), search.Handle)

	count := NewCountChainsHandler(service)
	mcp.AddTool(server, count.GetToolDefinition(), count.Handle)

	wildcard := NewWildcardChainsHandler(service)
	mcp.AddTool(server, wildcard.GetToolDefinition(), wildcard.Handle)

	lengths := NewLengthChainsHandler(service)
	mcp.AddTool(server, lengths.GetToolDefinition(), lengths.Handle)

	loops := NewLoopsHandler(service)
	mcp.AddTool(server, loops.GetToolDefinition(), loops.Handle)
}
