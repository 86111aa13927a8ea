package config

import (
	"context"
	"log/slog"
)

const masked = "****"

// Log logs the resolved settings to the default logger
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings section by section. Secrets are
// masked and SSE-only values are skipped for the stdio transport.
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logTransport(ctx, logger, s)
	logAuth(ctx, logger, s.Auth)
	logWordLists(ctx, logger, s.Words)
	logger.InfoContext(ctx, "Config: search", "value", SearchSettingsLogValue(s.Search))
}

func logTransport(ctx context.Context, logger *slog.Logger, s *Settings) {
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport != "sse" {
		return
	}
	logger.InfoContext(ctx, "Config: host", "value", s.Host)
	logger.InfoContext(ctx, "Config: port", "value", s.Port)
}

func logAuth(ctx context.Context, logger *slog.Logger, a AuthSettings) {
	logger.InfoContext(ctx, "Config: auth.type", "value", a.Type)
	switch a.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic", "value", BasicAuthSettingsLogValue(a.Basic))
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(a.APIKeys))
	}
}

// logWordLists reports whether the combined collection will actually be
// built, which needs at least two files.
func logWordLists(ctx context.Context, logger *slog.Logger, w WordListsSettings) {
	logger.InfoContext(ctx, "Config: words.files", "count", len(w.Files), "value", w.Files)
	logger.InfoContext(ctx, "Config: words.combined", "value", w.Combined, "applies", w.Combined && len(w.Files) > 1)
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = masked
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", BasicAuthSettingsLogValue(s.Basic)),
		slog.Any("api_keys", keys),
	)
}

// BasicAuthSettingsLogValue returns a slog.Value for BasicAuthSettings with masked data
func BasicAuthSettingsLogValue(s BasicAuthSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("password", masked),
	)
}

// WordListsSettingsLogValue returns a slog.Value for WordListsSettings
func WordListsSettingsLogValue(s WordListsSettings) slog.Value {
	return slog.GroupValue(
		slog.Any("files", s.Files),
		slog.Bool("combined", s.Combined),
	)
}

// SearchSettingsLogValue returns a slog.Value for SearchSettings
func SearchSettingsLogValue(s SearchSettings) slog.Value {
	return slog.GroupValue(
		slog.Duration("timeout", s.Timeout),
		slog.Int("max_results", s.MaxResults),
		slog.String("placeholder", s.Placeholder),
	)
}

// SettingsLogValue returns a slog.Value for Settings with masked data
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Any("auth", AuthSettingsLogValue(s.Auth)),
		slog.Any("words", WordListsSettingsLogValue(s.Words)),
		slog.Any("search", SearchSettingsLogValue(s.Search)),
	)
}
