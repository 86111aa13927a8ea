package shiritori

import "context"

// WildcardQuery describes a fixed-length search anchored by patterns instead
// of units.
type WildcardQuery struct {
	// Start must match the first word.
	Start *Pattern
	// End, if set, must match the last word.
	End *Pattern
	// Length is the number of words.
	Length int
	// Constraints supplies the substring and boundary predicates. Its Start,
	// End and Length fields are ignored.
	Constraints Constraints
}

// SearchWildcard returns every chain of q.Length words whose first word
// matches q.Start and whose last word matches q.End.
func (ix *Index) SearchWildcard(ctx context.Context, q WildcardQuery) ([]Chain, error) {
	if q.Length < 1 {
		return nil, ErrInvalidLength
	}
	if q.Start == nil {
		return nil, ErrInvalidPattern
	}

	var first []string
	for _, w := range ix.words {
		if !q.Start.Match(w) {
			continue
		}
		if q.Constraints.NoPreceding && !ix.nothingPrecedes(w) {
			continue
		}
		first = append(first, w)
	}

	var out []Chain
	w := newWalker(ctx, ix, q.Constraints, q.Length)
	w.emit = func(ch Chain) {
		out = append(out, ch)
	}
	if q.End != nil {
		w.final = q.End.Match
	}
	if err := w.run(first); err != nil {
		return nil, err
	}
	sortChains(out)
	return out, nil
}
