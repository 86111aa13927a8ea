package shiritori

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// LengthQuery describes a search in which every position of the chain takes
// a word whose character length is one of a set.
type LengthQuery struct {
	// LengthSets holds the acceptable word lengths per position.
	LengthSets [][]int
	// Permute also tries every distinct reordering of LengthSets.
	Permute bool
	// Constraints supplies the substring and boundary predicates. Its Start,
	// End and Length fields are ignored.
	Constraints Constraints
}

// SearchMultiLength returns every chain whose i-th word has a length drawn
// from the i-th length set, in the given order or, with Permute, in any order
// of the sets. Chains found through several length sequences are reported once.
func (ix *Index) SearchMultiLength(ctx context.Context, q LengthQuery) ([]Chain, error) {
	sets, err := canonicalSets(q.LengthSets)
	if err != nil {
		return nil, err
	}
	st := &stepper{ctx: ctx}

	orders := [][][]int{sets}
	if q.Permute {
		if orders, err = distinctPermutations(st, sets); err != nil {
			return nil, err
		}
	}

	seenSeq := make(map[string]struct{})
	seenChain := make(map[string]struct{})
	var out []Chain
	for _, order := range orders {
		seqs, err := cartesian(st, order)
		if err != nil {
			return nil, err
		}
		for _, seq := range seqs {
			k := intsKey(seq)
			if _, ok := seenSeq[k]; ok {
				continue
			}
			seenSeq[k] = struct{}{}

			if err := ix.walkLengths(ctx, q.Constraints, seq, func(ch Chain) {
				ck := ch.key()
				if _, ok := seenChain[ck]; ok {
					return
				}
				seenChain[ck] = struct{}{}
				out = append(out, ch)
			}); err != nil {
				return nil, err
			}
		}
	}
	sortChains(out)
	return out, nil
}

func (ix *Index) walkLengths(ctx context.Context, c Constraints, seq []int, emit func(Chain)) error {
	var first []string
	for _, w := range ix.byLength[seq[0]] {
		if c.NoPreceding && !ix.nothingPrecedes(w) {
			continue
		}
		first = append(first, w)
	}

	w := newWalker(ctx, ix, c, len(seq))
	w.emit = emit
	w.admit = func(depth int, word string) bool {
		return ix.Length(word) == seq[depth]
	}
	return w.run(first)
}

// canonicalSets sorts and de-duplicates each length set.
func canonicalSets(sets [][]int) ([][]int, error) {
	if len(sets) == 0 {
		return nil, ErrInvalidLength
	}
	out := make([][]int, len(sets))
	for i, set := range sets {
		if len(set) == 0 {
			return nil, fmt.Errorf("position %d: %w", i+1, ErrInvalidLength)
		}
		s := slices.Clone(set)
		slices.Sort(s)
		s = slices.Compact(s)
		if s[0] < 1 {
			return nil, fmt.Errorf("position %d: %w", i+1, ErrInvalidLength)
		}
		out[i] = s
	}
	return out, nil
}

// distinctPermutations returns every ordering of sets, treating equal sets as
// indistinguishable.
func distinctPermutations(st *stepper, sets [][]int) ([][][]int, error) {
	sorted := slices.Clone(sets)
	slices.SortFunc(sorted, slices.Compare[[]int])

	var out [][][]int
	used := make([]bool, len(sorted))
	current := make([][]int, 0, len(sorted))

	var permute func() error
	permute = func() error {
		if err := st.step(); err != nil {
			return err
		}
		if len(current) == len(sorted) {
			out = append(out, slices.Clone(current))
			return nil
		}
		for i := range sorted {
			if used[i] {
				continue
			}
			if i > 0 && !used[i-1] && slices.Equal(sorted[i], sorted[i-1]) {
				continue
			}
			used[i] = true
			current = append(current, sorted[i])
			if err := permute(); err != nil {
				return err
			}
			current = current[:len(current)-1]
			used[i] = false
		}
		return nil
	}
	if err := permute(); err != nil {
		return nil, err
	}
	return out, nil
}

// cartesian returns every sequence choosing one length per position.
func cartesian(st *stepper, sets [][]int) ([][]int, error) {
	out := [][]int{{}}
	for _, set := range sets {
		next := make([][]int, 0, len(out)*len(set))
		for _, prefix := range out {
			for _, n := range set {
				if err := st.step(); err != nil {
					return nil, err
				}
				seq := make([]int, len(prefix), len(prefix)+1)
				copy(seq, prefix)
				next = append(next, append(seq, n))
			}
		}
		out = next
	}
	return out, nil
}

func intsKey(seq []int) string {
	parts := make([]string, len(seq))
	for i, n := range seq {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
