package wordlists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/kana"
	"github.com/sha1n/mcp-shiritori-server/internal/metrics"
	"github.com/sha1n/mcp-shiritori-server/internal/shiritori"
)

// ChainSeparator separates the words of a chain in tool output.
const ChainSeparator = " → "

// ConstraintArgument holds the chain predicates shared by the search tools.
type ConstraintArgument struct {
	Required        []string `json:"required,omitempty" jsonschema:"Substrings the concatenated chain must contain; list a substring twice to require two occurrences"`
	RequiredExactly bool     `json:"required_exactly,omitempty" jsonschema:"Require the exact number of occurrences instead of at least"`
	Excluded        []string `json:"excluded,omitempty" jsonschema:"Substrings the concatenated chain must not contain"`
	NoPreceding     bool     `json:"no_preceding,omitempty" jsonschema:"Only chains whose first word cannot follow any other word"`
	NoSucceeding    bool     `json:"no_succeeding,omitempty" jsonschema:"Only chains that no unused word can extend"`
}

// constraints converts the argument into search constraints.
func (a ConstraintArgument) constraints() shiritori.Constraints {
	c := shiritori.Constraints{
		Required:     a.Required,
		Excluded:     a.Excluded,
		NoPreceding:  a.NoPreceding,
		NoSucceeding: a.NoSucceeding,
	}
	if a.RequiredExactly {
		c.Mode = shiritori.Exactly
	}
	return c
}

// parseUnit parses an optional unit argument.
func parseUnit(field, value string) (kana.Unit, error) {
	if value == "" {
		return kana.NoUnit, nil
	}
	u, err := kana.ParseUnit(value)
	if err != nil {
		return kana.NoUnit, fmt.Errorf("%s %q: %w", field, value, err)
	}
	return u, nil
}

// runSearch resolves the collection and runs fn under the configured search
// timeout, recording metrics for the search kind.
func runSearch[T any](ctx context.Context, svc *Service, kind, collection string, fn func(context.Context, *shiritori.Index) ([]T, error)) (string, []T, error) {
	name, index, err := svc.Collection(collection)
	if err != nil {
		return collection, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, svc.GetSettings().Timeout)
	defer cancel()

	started := time.Now()
	results, err := fn(ctx, index)
	metrics.ObserveSearch(kind, time.Since(started), len(results), err)
	return name, results, err
}

// errorResult builds a tool error result.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// textResult builds a successful tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// failureResult maps a search error to a tool error result. Caller mistakes
// are reported as such; other failures are logged.
func failureResult(svc *Service, kind, collection string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, ErrNotReady):
		return errorResult("Search is not available. The word lists are still being loaded. Please try again later.")
	case errors.Is(err, ErrUnknownCollection):
		return errorResult("Unknown collection %q. Available collections: %s", collection, strings.Join(svc.Catalog().LoadedNames(), ", "))
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Search timed out", "kind", kind, "collection", collection, "timeout", svc.GetSettings().Timeout)
		return errorResult("Search timed out after %s. Narrow the query and try again.", svc.GetSettings().Timeout)
	case errors.Is(err, context.Canceled):
		return errorResult("Search was canceled")
	case errors.Is(err, shiritori.ErrInvalidPattern),
		errors.Is(err, shiritori.ErrInvalidLength),
		errors.Is(err, kana.ErrInvalidUnit):
		return errorResult("Invalid query: %s", err)
	default:
		slog.Warn("Search failed", "kind", kind, "collection", collection, "error", err)
		return errorResult("Search failed: %s", err)
	}
}

// formatChains renders at most limit chains, one per line.
func formatChains(collection string, chains []shiritori.Chain, limit int) string {
	if len(chains) == 0 {
		return fmt.Sprintf("No chains found in '%s'", collection)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d chains in '%s':\n\n", len(chains), collection)
	for i, ch := range chains {
		if i == limit {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.Join(ch, ChainSeparator))
	}
	if len(chains) > limit {
		fmt.Fprintf(&sb, "\n... and %d more chains\n", len(chains)-limit)
	}
	return sb.String()
}
