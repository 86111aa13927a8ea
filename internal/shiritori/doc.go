// Package shiritori searches word chains under the shiritori linking rule:
// each word must begin with the unit the previous word ends with, and no word
// may appear twice in a chain.
//
// An Index is built once per word collection and is read-only afterwards, so
// any number of searches may run against it concurrently. Each search keeps
// its own path state and copies a chain before it is returned.
//
// Searches return chains sorted by the Japanese collation of their
// concatenated text. A search that finds nothing returns an empty result and
// a nil error; errors are reserved for malformed input and cancellation.
package shiritori

import "errors"

var (
	// ErrEmptyWord is returned when a collection contains a zero-length word.
	ErrEmptyWord = errors.New("empty word")

	// ErrInvalidPattern is returned when a wildcard pattern cannot be compiled.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidLength is returned for a chain length below one or an empty length set.
	ErrInvalidLength = errors.New("invalid chain length")
)
