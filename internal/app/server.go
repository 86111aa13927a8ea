package app

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/mcp-shiritori-server/internal/auth"
	"github.com/sha1n/mcp-shiritori-server/internal/config"
	"github.com/sha1n/mcp-shiritori-server/internal/metrics"
)

// Routes served over HTTP when the transport is sse
const (
	SSEPath     = "/sse"
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

// readHeaderTimeout bounds request header reads. Open SSE streams are not affected.
const readHeaderTimeout = 10 * time.Second

// StartSSEServer serves the shiritori tools over SSE until the listener fails
func StartSSEServer(s *mcp.Server, settings *config.Settings) error {
	srv, err := NewSSEServer(s, settings)
	if err != nil {
		return err
	}

	slog.Info("Serving shiritori tools over SSE", "addr", srv.Addr, "path", SSEPath, "auth_type", settings.Auth.Type)
	return srv.ListenAndServe()
}

// NewSSEServer builds the HTTP server: the SSE endpoint plus the health and
// metrics routes, all behind the configured auth middleware
func NewSSEServer(s *mcp.Server, settings *config.Settings) (*http.Server, error) {
	authMiddleware, err := auth.NewMiddleware(settings.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth middleware: %w", err)
	}

	return &http.Server{
		Addr:              net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port)),
		Handler:           authMiddleware(newMux(s)),
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

func newMux(s *mcp.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+HealthPath, handleHealth)
	mux.Handle("GET "+MetricsPath, metrics.Handler())
	mux.Handle(SSEPath, mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s
	}, nil))
	return mux
}

// handleHealth reports liveness. Word lists are loaded before the server
// starts, so a listening server is ready to search.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
