package shiritori

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/sha1n/mcp-shiritori-server/internal/kana"
)

// CountMode selects how required substrings are counted.
type CountMode int

const (
	// AtLeast accepts a chain containing each required substring at least
	// as often as it is listed.
	AtLeast CountMode = iota
	// Exactly accepts a chain containing each required substring exactly
	// as often as it is listed.
	Exactly
)

// Constraints restrict the chains a search accepts.
type Constraints struct {
	// Start and End fix the head unit of the first word and the tail unit of
	// the last word. kana.NoUnit leaves them open.
	Start kana.Unit
	End   kana.Unit

	// Length is the number of words for fixed-length searches.
	Length int

	// Required substrings of the concatenated chain. Listing a substring
	// twice requires two occurrences.
	Required []string
	Mode     CountMode

	// Excluded substrings must not occur in the concatenated chain.
	Excluded []string

	// NoPreceding rejects chains whose first word could follow another word.
	NoPreceding bool
	// NoSucceeding rejects chains whose last word could be followed by an unused word.
	NoSucceeding bool
}

// CountOccurrences counts every occurrence of sub in s, overlaps included:
// "aa" occurs twice in "aaa".
func CountOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	n := 0
	for i := 0; i <= len(s)-len(sub); {
		j := strings.Index(s[i:], sub)
		if j < 0 {
			break
		}
		n++
		_, size := utf8.DecodeRuneInString(s[i+j:])
		i += j + size
	}
	return n
}

// RequiredSatisfied reports whether the chain's text contains the required
// substrings as many times as mode demands.
func RequiredSatisfied(chain Chain, required []string, mode CountMode) bool {
	return requirementsFor(required).satisfied(chain.String(), mode)
}

// ExcludedSatisfied reports whether none of the excluded substrings occur in
// the chain's text.
func ExcludedSatisfied(chain Chain, excluded []string) bool {
	text := chain.String()
	for _, ex := range excluded {
		if ex != "" && strings.Contains(text, ex) {
			return false
		}
	}
	return true
}

// NoPrecedingSatisfied reports whether no word other than the chain's first
// word has a tail unit equal to the first word's head unit.
func (ix *Index) NoPrecedingSatisfied(chain Chain) bool {
	if len(chain) == 0 {
		return false
	}
	return ix.nothingPrecedes(chain[0])
}

// NoSucceedingSatisfied reports whether no word outside the chain has a head
// unit equal to the last word's tail unit.
func (ix *Index) NoSucceedingSatisfied(chain Chain) bool {
	if len(chain) == 0 {
		return false
	}
	used := make(map[string]bool, len(chain))
	for _, w := range chain {
		used[w] = true
	}
	return ix.nothingSucceeds(chain[len(chain)-1], func(w string) bool { return used[w] })
}

type requirement struct {
	text  string
	count int
}

type requirements []requirement

func requirementsFor(required []string) requirements {
	var reqs requirements
	index := make(map[string]int)
	for _, r := range required {
		if r == "" {
			continue
		}
		if i, ok := index[r]; ok {
			reqs[i].count++
			continue
		}
		index[r] = len(reqs)
		reqs = append(reqs, requirement{text: r, count: 1})
	}
	return reqs
}

func (reqs requirements) satisfied(text string, mode CountMode) bool {
	for _, r := range reqs {
		n := CountOccurrences(text, r.text)
		if mode == Exactly && n != r.count {
			return false
		}
		if n < r.count {
			return false
		}
	}
	return true
}

// checker evaluates the acceptance predicates shared by every search.
type checker struct {
	ix           *Index
	required     requirements
	mode         CountMode
	excluded     [][]byte
	noSucceeding bool
}

func newChecker(ix *Index, c Constraints) *checker {
	k := &checker{
		ix:           ix,
		required:     requirementsFor(c.Required),
		mode:         c.Mode,
		noSucceeding: c.NoSucceeding,
	}
	for _, ex := range c.Excluded {
		if ex != "" {
			k.excluded = append(k.excluded, []byte(ex))
		}
	}
	return k
}

// excludedHit reports whether the partial text already contains an excluded
// substring. Appending words never removes an occurrence, so such a branch
// can be abandoned.
func (k *checker) excludedHit(text []byte) bool {
	for _, ex := range k.excluded {
		if bytes.Contains(text, ex) {
			return true
		}
	}
	return false
}

// accept evaluates the required, excluded and no-succeeding predicates.
func (k *checker) accept(path []string, used func(string) bool, text []byte) bool {
	if k.excludedHit(text) {
		return false
	}
	if len(k.required) > 0 && !k.required.satisfied(string(text), k.mode) {
		return false
	}
	if k.noSucceeding && !k.ix.nothingSucceeds(path[len(path)-1], used) {
		return false
	}
	return true
}
