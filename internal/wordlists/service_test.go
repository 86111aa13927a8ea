package wordlists

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sha1n/mcp-shiritori-server/internal/config"
)

func testSearchSettings() *config.SearchSettings {
	return &config.SearchSettings{Timeout: 10 * time.Second, MaxResults: 100, Placeholder: "?"}
}

func TestNewService_NilSettings(t *testing.T) {
	if _, err := NewService(nil, testSearchSettings()); err == nil {
		t.Error("Expected error for nil word-list settings")
	}
	if _, err := NewService(&config.WordListsSettings{}, nil); err == nil {
		t.Error("Expected error for nil search settings")
	}
}

func TestService_NotReadyBeforeInitialize(t *testing.T) {
	svc, err := NewService(&config.WordListsSettings{}, testSearchSettings())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if svc.IsReady() {
		t.Error("Expected service not ready before Initialize")
	}
	if _, _, err := svc.Collection(""); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
}

func TestService_InitializeCombined(t *testing.T) {
	svc := NewTestService(t, true,
		TestList{Name: "animals", Lines: animals},
		TestList{Name: "fruits", Lines: fruits},
	)

	if !svc.IsReady() {
		t.Fatal("Expected service to be ready")
	}
	if got := svc.DefaultCollection(); got != "animals_fruits" {
		t.Errorf("Expected default collection 'animals_fruits', got %q", got)
	}

	name, ix, err := svc.Collection("")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if name != "animals_fruits" {
		t.Errorf("Expected resolved name 'animals_fruits', got %q", name)
	}
	if ix.Len() != len(animals)+len(fruits) {
		t.Errorf("Expected %d words in union, got %d", len(animals)+len(fruits), ix.Len())
	}

	for _, n := range []string{"animals", "fruits"} {
		if _, _, err := svc.Collection(n); err != nil {
			t.Errorf("Collection(%q) failed: %v", n, err)
		}
	}

	states := svc.Catalog().States()
	if len(states) != 3 {
		t.Fatalf("Expected 3 collections, got %d", len(states))
	}
	union, _ := svc.Catalog().Get("animals_fruits")
	if !union.Union || len(union.Sources) != 2 {
		t.Errorf("Expected union over 2 sources, got %+v", union)
	}
}

func TestService_InitializeWithoutCombined(t *testing.T) {
	svc := NewTestService(t, false,
		TestList{Name: "animals", Lines: animals},
		TestList{Name: "fruits", Lines: fruits},
	)

	if got := svc.DefaultCollection(); got != "animals" {
		t.Errorf("Expected default collection 'animals', got %q", got)
	}
	if _, _, err := svc.Collection("animals_fruits"); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("Expected ErrUnknownCollection, got %v", err)
	}
}

func TestService_SingleFileHasNoUnion(t *testing.T) {
	svc := NewTestService(t, true, TestList{Name: "animals", Lines: animals})

	if got := svc.DefaultCollection(); got != "animals" {
		t.Errorf("Expected default collection 'animals', got %q", got)
	}
	if n := len(svc.Catalog().States()); n != 1 {
		t.Errorf("Expected 1 collection, got %d", n)
	}
}

func TestService_FileHygiene(t *testing.T) {
	svc := NewTestService(t, false, TestList{Name: "animals", Lines: []string{
		"# four animals",
		"ねこ",
		"",
		"  こい  ",
		"ねこ",
	}})

	_, ix, err := svc.Collection("animals")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if diff := cmp.Diff([]string{"こい", "ねこ"}, ix.Words()); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}
}

func TestService_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := WriteWordList(t, dir, "animals", animals...)
	missing := filepath.Join(dir, "missing.txt")
	binary := filepath.Join(dir, "binary.txt")
	if err := os.WriteFile(binary, []byte("ねこ\x00"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	svc, err := NewService(&config.WordListsSettings{Files: []string{good, missing, binary}, Combined: true}, testSearchSettings())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	errs := svc.Catalog().WithErrors()
	if len(errs) != 2 {
		t.Fatalf("Expected 2 failed collections, got %v", errs)
	}
	if _, ok := errs["missing"]; !ok {
		t.Error("Expected missing file to be recorded")
	}
	if _, ok := errs["binary"]; !ok {
		t.Error("Expected binary file to be recorded")
	}
	if got := svc.DefaultCollection(); got != "animals" {
		t.Errorf("Expected default collection 'animals', got %q", got)
	}
	if _, _, err := svc.Collection("missing"); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("Expected ErrUnknownCollection for failed collection, got %v", err)
	}
}

func TestService_DuplicateCollectionName(t *testing.T) {
	first := WriteWordList(t, t.TempDir(), "words", animals...)
	second := WriteWordList(t, t.TempDir(), "words", fruits...)

	svc, err := NewService(&config.WordListsSettings{Files: []string{first, second}, Combined: true}, testSearchSettings())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	_, ix, err := svc.Collection("words")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if ix.Len() != len(animals) {
		t.Errorf("Expected the first file to win, got %d words", ix.Len())
	}

	if state, _ := svc.Catalog().Get("words"); !state.Loaded() {
		t.Errorf("Expected 'words' to stay loaded, got %+v", state)
	}
	if _, ok := svc.Catalog().WithErrors()[second]; !ok {
		t.Error("Expected the second file to be recorded as failed")
	}
}

func TestService_InitializeNothingLoaded(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(&config.WordListsSettings{Files: []string{filepath.Join(dir, "missing.txt")}}, testSearchSettings())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Initialize(context.Background()); err == nil {
		t.Error("Expected error when no word list can be loaded")
	}
	if svc.IsReady() {
		t.Error("Expected service not ready")
	}
}

func TestService_InitializeCanceled(t *testing.T) {
	path := WriteWordList(t, t.TempDir(), "animals", animals...)
	svc, err := NewService(&config.WordListsSettings{Files: []string{path}}, testSearchSettings())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Initialize(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestService_Lookup(t *testing.T) {
	svc := NewTestService(t, true,
		TestList{Name: "animals", Lines: animals},
		TestList{Name: "fruits", Lines: fruits},
	)

	got, err := svc.Lookup(context.Background(), LookupQuery{Text: "?こ", Mode: LookupWildcard})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ねこ"}, got); diff != "" {
		t.Errorf("Result mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.Lookup(context.Background(), LookupQuery{Collection: "nope"}); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("Expected ErrUnknownCollection, got %v", err)
	}
}

func TestService_Placeholder(t *testing.T) {
	svc, err := NewService(&config.WordListsSettings{}, &config.SearchSettings{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if got := svc.Placeholder(); got != '○' {
		t.Errorf("Expected default placeholder '○', got %q", got)
	}

	svc.search.Placeholder = "＊"
	if got := svc.Placeholder(); got != '＊' {
		t.Errorf("Expected placeholder '＊', got %q", got)
	}
}

func TestService_Close(t *testing.T) {
	svc := NewTestService(t, false, TestList{Name: "animals", Lines: animals})

	if err := svc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if svc.IsReady() {
		t.Error("Expected service not ready after Close")
	}
	if _, err := svc.Lookup(context.Background(), LookupQuery{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady after Close, got %v", err)
	}
}
