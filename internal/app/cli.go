package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")

	flags.StringSliceP("words-files", "w", nil, "Word-list files, one word per line (comma-separated)")
	flags.Bool("words-combined", true, "Also serve the union of all word lists as a combined collection")
	flags.Duration("search-timeout", 0, "Maximum duration of a single search")
	flags.Int("search-max-results", 0, "Maximum number of chains listed in a tool result")
	flags.String("search-placeholder", "", "Single character matching any character in wildcard patterns")
}
