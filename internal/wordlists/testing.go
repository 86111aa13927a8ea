package wordlists

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sha1n/mcp-shiritori-server/internal/config"
)

// TestList is a word list written to disk by NewTestService.
// This is exported for use in other packages' tests.
type TestList struct {
	Name  string
	Lines []string
}

// WriteWordList writes lines to dir/name.txt and returns the path.
func WriteWordList(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name+".txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write word list: %v", err)
	}
	return path
}

// NewTestService writes the lists to a temp dir and returns an initialized
// service over them. The service is closed when the test ends.
func NewTestService(t *testing.T, combined bool, lists ...TestList) *Service {
	t.Helper()
	dir := t.TempDir()

	words := &config.WordListsSettings{Combined: combined}
	for _, l := range lists {
		words.Files = append(words.Files, WriteWordList(t, dir, l.Name, l.Lines...))
	}
	search := &config.SearchSettings{
		Timeout:     10 * time.Second,
		MaxResults:  100,
		Placeholder: "?",
	}

	svc, err := NewService(words, search)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return svc
}
