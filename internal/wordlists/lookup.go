package wordlists

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/mcp-shiritori-server/internal/domain"
	"github.com/sha1n/mcp-shiritori-server/internal/kana"
	"github.com/sha1n/mcp-shiritori-server/internal/shiritori"
)

// MaxBatchSize is the maximum number of documents per batch
const MaxBatchSize = 500

// LookupMode selects how LookupQuery.Text is matched against words.
type LookupMode int

const (
	// LookupSubstring matches words containing Text.
	LookupSubstring LookupMode = iota
	// LookupWildcard matches words of the same length as Text, where the
	// placeholder stands for any one character.
	LookupWildcard
)

// LookupQuery selects words of one collection.
type LookupQuery struct {
	Collection  string
	Text        string
	Mode        LookupMode
	Placeholder rune
	// Head and Tail, when set, also require the word's chaining units.
	Head kana.Unit
	Tail kana.Unit
}

// Lookup is an in-memory Bleve index over every loaded word, used for plain
// word lookup outside the chain searches.
type Lookup struct {
	index bleve.Index
}

// CreateIndexMapping creates the Bleve index mapping for word documents.
// Every field is a single keyword term so that regexp queries match whole words.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	keywordField := func(store bool) *mapping.FieldMapping {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = store
		f.IncludeInAll = false
		return f
	}

	docMapping.AddFieldMappingsAt(domain.WordFieldCollection, keywordField(true))
	docMapping.AddFieldMappingsAt(domain.WordFieldWord, keywordField(true))
	docMapping.AddFieldMappingsAt(domain.WordFieldNormalized, keywordField(false))
	docMapping.AddFieldMappingsAt(domain.WordFieldHead, keywordField(false))
	docMapping.AddFieldMappingsAt(domain.WordFieldTail, keywordField(false))

	idField := bleve.NewTextFieldMapping()
	idField.Index = false
	idField.Store = true
	docMapping.AddFieldMappingsAt(domain.WordFieldID, idField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = keyword.Name

	return indexMapping
}

// NewLookup creates an empty in-memory lookup index.
func NewLookup() (*Lookup, error) {
	index, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup index: %w", err)
	}
	return &Lookup{index: index}, nil
}

// Add indexes the words of a collection.
func (l *Lookup) Add(collection string, words []string) error {
	batch := l.index.NewBatch()
	for _, w := range words {
		doc := domain.WordDocument{
			ID:         collection + "/" + w,
			Collection: collection,
			Word:       w,
			Normalized: kana.Normalize(w),
			Head:       kana.Head(w).String(),
			Tail:       kana.Tail(w).String(),
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to index %q: %w", w, err)
		}

		if batch.Size() >= MaxBatchSize {
			if err := l.index.Batch(batch); err != nil {
				return fmt.Errorf("batch index failed: %w", err)
			}
			batch = l.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := l.index.Batch(batch); err != nil {
			return fmt.Errorf("final batch index failed: %w", err)
		}
	}
	return nil
}

// Find returns the words matching q in Japanese collation order.
func (l *Lookup) Find(ctx context.Context, q LookupQuery) ([]string, error) {
	textQuery, err := buildTextQuery(q)
	if err != nil {
		return nil, err
	}

	collectionQuery := bleve.NewTermQuery(q.Collection)
	collectionQuery.SetField(domain.WordFieldCollection)
	must := []query.Query{textQuery, collectionQuery}

	if q.Head != kana.NoUnit {
		headQuery := bleve.NewTermQuery(q.Head.String())
		headQuery.SetField(domain.WordFieldHead)
		must = append(must, headQuery)
	}
	if q.Tail != kana.NoUnit {
		tailQuery := bleve.NewTermQuery(q.Tail.String())
		tailQuery.SetField(domain.WordFieldTail)
		must = append(must, tailQuery)
	}

	total, err := l.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	req := bleve.NewSearchRequest(bleve.NewConjunctionQuery(must...))
	req.Size = int(total)
	req.Fields = []string{domain.WordFieldWord}

	results, err := l.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}

	words := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		if w, ok := hit.Fields[domain.WordFieldWord].(string); ok {
			words = append(words, w)
		}
	}
	shiritori.SortStrings(words)
	return words, nil
}

// DocCount returns the number of indexed words across all collections.
func (l *Lookup) DocCount() (uint64, error) {
	return l.index.DocCount()
}

// Close releases the index.
func (l *Lookup) Close() error {
	return l.index.Close()
}

// buildTextQuery translates the lookup text into a regexp over the
// normalized field. Literal text is quoted.
func buildTextQuery(q LookupQuery) (query.Query, error) {
	text := kana.Normalize(q.Text)

	var expr string
	switch q.Mode {
	case LookupSubstring:
		expr = ".*" + regexp.QuoteMeta(text) + ".*"
	case LookupWildcard:
		if text == "" {
			return nil, fmt.Errorf("wildcard lookup needs a pattern: %w", shiritori.ErrInvalidPattern)
		}
		placeholder := kana.Normalize(string(q.Placeholder))
		var sb strings.Builder
		for _, r := range text {
			if string(r) == placeholder {
				sb.WriteString(".")
				continue
			}
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
		expr = sb.String()
	default:
		return nil, fmt.Errorf("unknown lookup mode %d", q.Mode)
	}

	rq := bleve.NewRegexpQuery(expr)
	rq.SetField(domain.WordFieldNormalized)
	return rq, nil
}
