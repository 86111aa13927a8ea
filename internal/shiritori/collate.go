package shiritori

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// A collate.Collator keeps internal buffers and must not be shared between
// goroutines.
var collators = sync.Pool{
	New: func() any {
		return collate.New(language.Japanese)
	},
}

func compareText(c *collate.Collator, a, b string) int {
	if r := c.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

// SortStrings sorts words in Japanese collation order.
func SortStrings(words []string) {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	slices.SortFunc(words, func(a, b string) int {
		return compareText(c, a, b)
	})
}

// sortChains orders chains by their concatenated text.
func sortChains(chains []Chain) {
	if len(chains) < 2 {
		return
	}
	type keyed struct {
		text  string
		chain Chain
	}
	entries := make([]keyed, len(chains))
	for i, ch := range chains {
		entries[i] = keyed{text: ch.String(), chain: ch}
	}

	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	slices.SortStableFunc(entries, func(a, b keyed) int {
		if r := compareText(c, a.text, b.text); r != 0 {
			return r
		}
		return slices.Compare(a.chain, b.chain)
	})

	for i := range entries {
		chains[i] = entries[i].chain
	}
}
