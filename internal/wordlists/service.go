package wordlists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sha1n/mcp-shiritori-server/internal/config"
	"github.com/sha1n/mcp-shiritori-server/internal/metrics"
	"github.com/sha1n/mcp-shiritori-server/internal/shiritori"
	"golang.org/x/sync/errgroup"
)

// MaxParallelLoads is the maximum number of word-list files read concurrently
const MaxParallelLoads = 4

var (
	// ErrUnknownCollection is returned when a query names a collection that
	// is not loaded.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrNotReady is returned before any collection has been loaded.
	ErrNotReady = errors.New("word lists are not loaded")
)

// Service loads word lists and serves their indexes.
type Service struct {
	words       *config.WordListsSettings
	search      *config.SearchSettings
	lookup      *Lookup
	catalog     *Catalog
	indexes     map[string]*shiritori.Index
	defaultName string
	ready       bool
	mu          sync.RWMutex
}

// loadResult is the outcome of reading and indexing one file.
type loadResult struct {
	name  string
	path  string
	words []string
	index *shiritori.Index
	err   error
}

// NewService creates a new word-list service.
func NewService(words *config.WordListsSettings, search *config.SearchSettings) (*Service, error) {
	if words == nil || search == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}

	lookup, err := NewLookup()
	if err != nil {
		return nil, err
	}

	return &Service{
		words:   words,
		search:  search,
		lookup:  lookup,
		catalog: NewCatalog(),
		indexes: make(map[string]*shiritori.Index),
	}, nil
}

// Initialize reads every configured file, builds one collection per file and,
// when enabled, the union collection. Files that fail to load are recorded in
// the catalog and skipped. It fails only when no collection could be loaded.
func (s *Service) Initialize(ctx context.Context) error {
	results := make([]loadResult, len(s.words.Files))

	var g errgroup.Group
	g.SetLimit(MaxParallelLoads)
	for i, path := range s.words.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = loadCollection(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var members []string
	var sources []string
	var lists [][]string
	for _, r := range results {
		if _, dup := s.indexes[r.name]; dup && r.err == nil {
			// Keyed by path so the loaded collection's state is kept
			r.err = fmt.Errorf("collection %q is already loaded from another file", r.name)
			r.name = r.path
		}
		if r.err != nil {
			slog.Error("Failed to load word list", "collection", r.name, "path", r.path, "error", r.err)
			s.catalog.SetError(r.name, []string{r.path}, r.err.Error())
			continue
		}

		if err := s.register(r.name, []string{r.path}, r.index, false); err != nil {
			slog.Error("Failed to register word list", "collection", r.name, "error", err)
			s.catalog.SetError(r.name, []string{r.path}, err.Error())
			continue
		}
		members = append(members, r.name)
		sources = append(sources, r.path)
		lists = append(lists, r.words)
	}
	s.catalog.UpdateLastLoad()

	if len(members) == 0 {
		s.ready = false
		return errors.New("no word list could be loaded")
	}
	s.defaultName = members[0]

	if s.words.Combined && len(members) > 1 {
		name := UnionName(members)
		index, err := shiritori.NewIndex(Union(lists...))
		if err == nil {
			err = s.register(name, sources, index, true)
		}
		if err != nil {
			slog.Error("Failed to build union collection", "collection", name, "error", err)
			s.catalog.SetError(name, sources, err.Error())
		} else {
			s.defaultName = name
		}
	}

	s.ready = true
	slog.Info("Word lists ready", "collections", len(s.indexes), "default", s.defaultName)
	return nil
}

// loadCollection reads and indexes one word-list file.
func loadCollection(path string) loadResult {
	r := loadResult{name: CollectionName(path), path: path}
	r.words, r.err = readFile(path)
	if r.err != nil {
		return r
	}
	r.index, r.err = shiritori.NewIndex(r.words)
	return r
}

// readFile reads the words of one file.
func readFile(path string) (words []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	words, err = ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// register makes a built collection searchable. Callers hold s.mu.
func (s *Service) register(name string, sources []string, index *shiritori.Index, union bool) error {
	if err := s.lookup.Add(name, index.Words()); err != nil {
		return err
	}

	s.indexes[name] = index
	s.catalog.Set(CollectionState{
		Name:     name,
		Sources:  sources,
		Union:    union,
		Words:    index.Len(),
		Units:    index.HeadUnits(),
		LoadedAt: time.Now(),
	})
	metrics.SetCollectionWords(name, index.Len())
	slog.Info("Collection loaded", "collection", name, "words", index.Len(), "units", index.HeadUnits())
	return nil
}

// IsReady returns true once at least one collection is searchable.
func (s *Service) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Collection returns the index of the named collection. An empty name
// selects the default collection: the union when one was built, otherwise
// the first configured file. The resolved name is returned with the index.
func (s *Service) Collection(name string) (string, *shiritori.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return "", nil, ErrNotReady
	}
	if name == "" {
		name = s.defaultName
	}
	index, ok := s.indexes[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return name, index, nil
}

// Lookup runs a plain word lookup against one collection. An empty
// collection name selects the default collection.
func (s *Service) Lookup(ctx context.Context, q LookupQuery) ([]string, error) {
	name, _, err := s.Collection(q.Collection)
	if err != nil {
		return nil, err
	}
	q.Collection = name
	if q.Placeholder == 0 {
		q.Placeholder = s.Placeholder()
	}

	s.mu.RLock()
	lookup := s.lookup
	s.mu.RUnlock()
	if lookup == nil {
		return nil, ErrNotReady
	}
	return lookup.Find(ctx, q)
}

// Catalog returns the load state of all collections.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// DefaultCollection returns the name used when a query names no collection.
func (s *Service) DefaultCollection() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultName
}

// Placeholder returns the configured wildcard placeholder.
func (s *Service) Placeholder() rune {
	r, size := utf8.DecodeRuneInString(s.search.Placeholder)
	if size == 0 || r == utf8.RuneError {
		return shiritori.DefaultPlaceholder
	}
	return r
}

// GetSettings returns the search settings.
func (s *Service) GetSettings() *config.SearchSettings {
	return s.search
}

// Close releases all resources.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lookup != nil {
		if err := s.lookup.Close(); err != nil {
			return fmt.Errorf("failed to close lookup index: %w", err)
		}
		s.lookup = nil
	}

	s.indexes = make(map[string]*shiritori.Index)
	s.ready = false
	return nil
}
