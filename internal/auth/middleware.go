package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sha1n/mcp-shiritori-server/internal/config"
)

// APIKeyHeader carries the API key when auth type is apikey. A bearer token
// in the Authorization header is accepted as well.
const APIKeyHeader = "X-API-Key"

// PublicPaths bypass authentication so health checks and metrics scrapers need no credentials.
var PublicPaths = []string{"/health", "/metrics"}

// isPublicPath checks if the request path should bypass authentication
func isPublicPath(path string) bool {
	for _, p := range PublicPaths {
		if p == path {
			return true
		}
	}
	return false
}

// NewMiddleware creates a new authentication middleware based on settings
func NewMiddleware(settings config.AuthSettings) (func(http.Handler) http.Handler, error) {
	switch settings.Type {
	case config.AuthTypeNone, "":
		return func(next http.Handler) http.Handler {
			return next
		}, nil
	case config.AuthTypeBasic:
		if settings.Basic.Username == "" || settings.Basic.Password == "" {
			return nil, fmt.Errorf("basic auth requires non-empty username and password")
		}
		return guard(basicAuthenticator(settings.Basic)), nil
	case config.AuthTypeAPIKey:
		if len(settings.APIKeys) == 0 {
			return nil, fmt.Errorf("apikey auth requires at least one API key")
		}
		return guard(apiKeyAuthenticator(settings.APIKeys)), nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", settings.Type)
	}
}

// authenticator reports whether a request carries valid credentials and
// writes any challenge headers when it does not.
type authenticator func(w http.ResponseWriter, r *http.Request) bool

// guard wraps an authenticator into a middleware that skips public paths
func guard(authenticate authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) || authenticate(w, r) {
				next.ServeHTTP(w, r)
				return
			}
			slog.Debug("Rejected unauthenticated request", "path", r.URL.Path, "remote", r.RemoteAddr)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}

func basicAuthenticator(settings config.BasicAuthSettings) authenticator {
	return func(w http.ResponseWriter, r *http.Request) bool {
		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(settings.Username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(settings.Password)) == 1
		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			return false
		}
		return true
	}
}

func apiKeyAuthenticator(apiKeys []string) authenticator {
	return func(w http.ResponseWriter, r *http.Request) bool {
		key := requestAPIKey(r)
		if key == "" {
			return false
		}

		valid := false
		for _, validKey := range apiKeys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(validKey)) == 1 {
				valid = true
			}
		}
		return valid
	}
}

// requestAPIKey extracts the API key from the request headers
func requestAPIKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
