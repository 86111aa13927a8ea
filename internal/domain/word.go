package domain

// WordDocument represents one word of a collection.
// It is the document stored in the Bleve lookup index.
type WordDocument struct {
	// ID is unique across collections.
	// Format: "<collection>/<word>"
	ID string `json:"id"`

	// Collection is the name of the word list the word was loaded from.
	// Example: "kokumei"
	Collection string `json:"collection"`

	// Word is the word as written in the source file.
	Word string `json:"word"`

	// Normalized is the NFKC form of Word. Lookups match against it.
	Normalized string `json:"normalized"`

	// Head and Tail are the chaining units of the word.
	Head string `json:"head"`
	Tail string `json:"tail"`
}

// Bleve field name constants for consistent field references in queries and mappings.
const (
	WordFieldID         = "id"
	WordFieldCollection = "collection"
	WordFieldWord       = "word"
	WordFieldNormalized = "normalized"
	WordFieldHead       = "head"
	WordFieldTail       = "tail"
)
