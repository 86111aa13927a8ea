package shiritori

import (
	"context"
	"slices"

	"github.com/sha1n/mcp-shiritori-server/internal/kana"
	"golang.org/x/text/collate"
)

// Boundary selects which end of a chain CountByBoundary groups by.
type Boundary int

const (
	// BoundaryStart groups chains by the head unit of their first word.
	BoundaryStart Boundary = iota
	// BoundaryEnd groups chains by the tail unit of their last word.
	BoundaryEnd
)

// UnitCount is the number of chains sharing a boundary unit.
type UnitCount struct {
	Unit  kana.Unit
	Count int
}

// SearchExact returns every chain of exactly c.Length words satisfying c.
func (ix *Index) SearchExact(ctx context.Context, c Constraints) ([]Chain, error) {
	var out []Chain
	err := ix.enumerate(ctx, c, func(ch Chain) {
		out = append(out, ch)
	})
	if err != nil {
		return nil, err
	}
	sortChains(out)
	return out, nil
}

// CountByBoundary runs the same enumeration as SearchExact but only counts
// accepted chains per start or end unit. Counts are ordered by unit.
func (ix *Index) CountByBoundary(ctx context.Context, c Constraints, by Boundary) ([]UnitCount, error) {
	counts := make(map[kana.Unit]int)
	err := ix.enumerate(ctx, c, func(ch Chain) {
		if by == BoundaryStart {
			counts[ix.Head(ch[0])]++
		} else {
			counts[ix.Tail(ch[len(ch)-1])]++
		}
	})
	if err != nil {
		return nil, err
	}

	out := make([]UnitCount, 0, len(counts))
	for u, n := range counts {
		out = append(out, UnitCount{Unit: u, Count: n})
	}
	coll := collators.Get().(*collate.Collator)
	defer collators.Put(coll)
	slices.SortFunc(out, func(a, b UnitCount) int {
		return compareText(coll, a.Unit.String(), b.Unit.String())
	})
	return out, nil
}

func (ix *Index) enumerate(ctx context.Context, c Constraints, emit func(Chain)) error {
	if c.Length < 1 {
		return ErrInvalidLength
	}
	w := newWalker(ctx, ix, c, c.Length)
	w.emit = emit
	if c.End != kana.NoUnit {
		w.final = func(last string) bool {
			return ix.Tail(last) == c.End
		}
	}
	return w.run(ix.startWords(c.Start, c.NoPreceding))
}
