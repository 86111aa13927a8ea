package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// envPrefix is the prefix of every environment variable the server reads
const envPrefix = "SHIRITORI_MCP"

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// WordListsSettings configuration for the word lists loaded at startup
type WordListsSettings struct {
	// Files are word-list files, one word per line. Each file becomes a
	// collection named after its base name without extension.
	Files []string `mapstructure:"files"`
	// Combined adds a collection holding the union of all files.
	Combined bool `mapstructure:"combined"`
}

// SearchSettings configuration for chain searches served by the tools
type SearchSettings struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxResults  int           `mapstructure:"max_results"`
	Placeholder string        `mapstructure:"placeholder"`
}

// Settings application settings
type Settings struct {
	Transport string            `mapstructure:"transport"`
	Host      string            `mapstructure:"host"`
	Port      int               `mapstructure:"port"`
	Auth      AuthSettings      `mapstructure:"auth"`
	Words     WordListsSettings `mapstructure:"words"`
	Search    SearchSettings    `mapstructure:"search"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	v.SetDefault("words.combined", true)
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.placeholder", "○")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are not picked up by AutomaticEnv on Unmarshal
	for _, key := range []string{
		"auth.type",
		"auth.basic.username",
		"auth.basic.password",
		"auth.api_keys",
		"words.files",
		"words.combined",
		"search.timeout",
		"search.max_results",
		"search.placeholder",
	} {
		_ = v.BindEnv(key, envName(key))
	}

	if flags != nil {
		for key, flag := range map[string]string{
			"transport":           "transport",
			"host":                "host",
			"port":                "port",
			"auth.type":           "auth-type",
			"auth.basic.username": "auth-basic-username",
			"auth.basic.password": "auth-basic-password",
			"auth.api_keys":       "auth-api-keys",
			"words.files":         "words-files",
			"words.combined":      "words-combined",
			"search.timeout":      "search-timeout",
			"search.max_results":  "search-max-results",
			"search.placeholder":  "search-placeholder",
		} {
			_ = v.BindPFlag(key, flags.Lookup(flag))
		}
	}

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	settings.Auth.APIKeys = splitList(settings.Auth.APIKeys, os.Getenv(envName("auth.api_keys")))
	settings.Words.Files = splitList(settings.Words.Files, os.Getenv(envName("words.files")))
	for i, f := range settings.Words.Files {
		settings.Words.Files[i] = expandHomeDir(f)
	}

	return &settings, nil
}

// envName returns the environment variable bound to a settings key
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// splitList handles list values given as one comma-separated env var,
// then trims every element and drops empty ones.
func splitList(values []string, env string) []string {
	if env != "" && (len(values) == 0 || (len(values) == 1 && strings.Contains(values[0], ","))) {
		values = strings.Split(env, ",")
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return filterEmptyStrings(values)
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete
// auth config, or unusable word-list and search settings.
func ValidateSettings(s *Settings) error {
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	if err := validateAuthSettings(&s.Auth); err != nil {
		return err
	}
	if err := validateWordListsSettings(&s.Words); err != nil {
		return err
	}
	return validateSearchSettings(&s.Search)
}

func validateAuthSettings(a *AuthSettings) error {
	hasBasicCreds := a.Basic.Username != "" || a.Basic.Password != ""
	hasAPIKeys := len(a.APIKeys) > 0

	switch a.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if a.Basic.Username == "" || a.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + a.Type)
	}
	return nil
}

func validateWordListsSettings(w *WordListsSettings) error {
	if len(w.Files) == 0 {
		return errors.New("at least one word-list file is required (words-files)")
	}
	return nil
}

func validateSearchSettings(s *SearchSettings) error {
	if s.Timeout <= 0 {
		return errors.New("search-timeout must be positive")
	}
	if s.MaxResults <= 0 {
		return errors.New("search-max-results must be positive")
	}
	if utf8.RuneCountInString(s.Placeholder) != 1 {
		return errors.New("search-placeholder must be exactly one character, got: " + s.Placeholder)
	}
	return nil
}
