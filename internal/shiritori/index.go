package shiritori

import (
	"fmt"
	"strings"

	"github.com/sha1n/mcp-shiritori-server/internal/kana"
)

// Chain is an ordered sequence of distinct words.
type Chain []string

// String returns the concatenated text of the chain.
func (c Chain) String() string {
	return strings.Join(c, "")
}

// key identifies the exact word sequence.
func (c Chain) key() string {
	return strings.Join(c, "\x00")
}

type wordInfo struct {
	head    kana.Unit
	tail    kana.Unit
	length  int
	textLen int
}

// Index groups the words of one collection by head unit.
type Index struct {
	words    []string
	info     map[string]wordInfo
	byHead   map[kana.Unit][]string
	byLength map[int][]string

	// liveTails counts words per tail unit, excluding dead tails.
	liveTails map[kana.Unit]int
}

// NewIndex builds an index over words. Words with the same normalized form,
// such as half-width and full-width spellings, are kept once under the first
// spelling seen. Every bucket preserves the collation order of the collection.
func NewIndex(words []string) (*Index, error) {
	sorted := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for i, w := range words {
		if w == "" {
			return nil, fmt.Errorf("word %d: %w", i, ErrEmptyWord)
		}
		key := kana.Normalize(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sorted = append(sorted, w)
	}
	SortStrings(sorted)

	ix := &Index{
		words:     sorted,
		info:      make(map[string]wordInfo, len(sorted)),
		byHead:    make(map[kana.Unit][]string),
		byLength:  make(map[int][]string),
		liveTails: make(map[kana.Unit]int),
	}
	for _, w := range sorted {
		wi := wordInfo{
			head:    kana.Head(w),
			tail:    kana.Tail(w),
			length:  kana.Length(w),
			textLen: kana.TextLength(w),
		}
		ix.info[w] = wi
		ix.byHead[wi.head] = append(ix.byHead[wi.head], w)
		ix.byLength[wi.length] = append(ix.byLength[wi.length], w)
		if !wi.tail.Dead() {
			ix.liveTails[wi.tail]++
		}
	}
	return ix, nil
}

// Len returns the number of distinct words in the index.
func (ix *Index) Len() int {
	return len(ix.words)
}

// Words returns all words in collation order. The slice must not be modified.
func (ix *Index) Words() []string {
	return ix.words
}

// WordsStartingWith returns the words whose head unit is u, in collation
// order, or an empty slice for a unit no word starts with. The slice must not
// be modified.
func (ix *Index) WordsStartingWith(u kana.Unit) []string {
	return ix.byHead[u]
}

// HeadUnits returns the number of distinct head units.
func (ix *Index) HeadUnits() int {
	return len(ix.byHead)
}

// Contains reports whether w is in the index.
func (ix *Index) Contains(w string) bool {
	_, ok := ix.info[w]
	return ok
}

// Head returns the head unit of w, using the cached value for indexed words.
func (ix *Index) Head(w string) kana.Unit {
	if wi, ok := ix.info[w]; ok {
		return wi.head
	}
	return kana.Head(w)
}

// Tail returns the tail unit of w, using the cached value for indexed words.
func (ix *Index) Tail(w string) kana.Unit {
	if wi, ok := ix.info[w]; ok {
		return wi.tail
	}
	return kana.Tail(w)
}

// Length returns the sounded character length of w, as counted by
// kana.Length. Length-driven searches and the char cost model use it.
func (ix *Index) Length(w string) int {
	if wi, ok := ix.info[w]; ok {
		return wi.length
	}
	return kana.Length(w)
}

// TextLength returns the number of characters of w in normalized form.
func (ix *Index) TextLength(w string) int {
	if wi, ok := ix.info[w]; ok {
		return wi.textLen
	}
	return kana.TextLength(w)
}

// startWords returns the candidate first words for a chain.
func (ix *Index) startWords(start kana.Unit, noPreceding bool) []string {
	words := ix.words
	if start != kana.NoUnit {
		words = ix.byHead[start]
	}
	if !noPreceding {
		return words
	}
	var out []string
	for _, w := range words {
		if ix.nothingPrecedes(w) {
			out = append(out, w)
		}
	}
	return out
}

// nothingPrecedes reports whether no other word could link into w.
func (ix *Index) nothingPrecedes(w string) bool {
	head := ix.Head(w)
	n := ix.liveTails[head]
	if tail := ix.Tail(w); tail == head && !tail.Dead() && ix.Contains(w) {
		n--
	}
	return n == 0
}

// nothingSucceeds reports whether no unused word could follow last.
func (ix *Index) nothingSucceeds(last string, used func(string) bool) bool {
	tail := ix.Tail(last)
	if tail.Dead() {
		return true
	}
	for _, w := range ix.byHead[tail] {
		if !used(w) {
			return false
		}
	}
	return true
}
