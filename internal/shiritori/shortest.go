package shiritori

import (
	"container/heap"
	"context"
	"slices"

	"github.com/sha1n/mcp-shiritori-server/internal/kana"
)

// CostModel selects what "shortest" means for SearchShortest.
type CostModel int

const (
	// WordCost minimizes the number of words.
	WordCost CostModel = iota
	// CharCost minimizes the total number of characters.
	CharCost
)

// String returns the configuration name of the cost model.
func (m CostModel) String() string {
	if m == CharCost {
		return "chars"
	}
	return "words"
}

// partial is an immutable snapshot of a chain under construction. Extending
// it copies the path, so snapshots can be shared between queue entries.
type partial struct {
	path Chain
	text string
	cost int
}

func (p partial) contains(w string) bool {
	return slices.Contains(p.path, w)
}

func (p partial) extend(w string, cost int) partial {
	path := make(Chain, len(p.path), len(p.path)+1)
	copy(path, p.path)
	return partial{
		path: append(path, w),
		text: p.text + w,
		cost: p.cost + cost,
	}
}

// SearchShortest returns every minimum-cost chain satisfying c. c.Length is
// ignored. Single-word chains are checked first; if any is accepted, all of
// them are returned.
func (ix *Index) SearchShortest(ctx context.Context, c Constraints, model CostModel) ([]Chain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &shortestSearch{
		stepper: stepper{ctx: ctx},
		ix:      ix,
		c:       c,
		check:   newChecker(ix, c),
		// Pruning by per-word best cost is unsound when acceptance depends
		// on the words placed before it.
		prune: len(requirementsFor(c.Required)) == 0 && !c.NoSucceeding,
	}

	starts := ix.startWords(c.Start, c.NoPreceding)
	var out []Chain
	for _, w := range starts {
		if s.accepts(partial{path: Chain{w}, text: w}) {
			out = append(out, Chain{w})
		}
	}
	if len(out) > 0 {
		sortChains(out)
		return out, nil
	}

	var err error
	if model == CharCost {
		out, err = s.byChars(starts)
	} else {
		out, err = s.byWords(starts)
	}
	if err != nil {
		return nil, err
	}
	sortChains(out)
	return out, nil
}

type shortestSearch struct {
	stepper
	ix    *Index
	c     Constraints
	check *checker
	prune bool
}

func (s *shortestSearch) accepts(p partial) bool {
	last := p.path[len(p.path)-1]
	if s.c.End != kana.NoUnit && s.ix.Tail(last) != s.c.End {
		return false
	}
	return s.check.accept(p.path, p.contains, []byte(p.text))
}

// next returns the words that may extend p, or nil at a dead end.
func (s *shortestSearch) next(p partial) []string {
	tail := s.ix.Tail(p.path[len(p.path)-1])
	if tail.Dead() {
		return nil
	}
	return s.ix.WordsStartingWith(tail)
}

// byWords expands breadth first, one word per layer, and stops at the first
// layer containing an accepted chain.
func (s *shortestSearch) byWords(starts []string) ([]Chain, error) {
	best := make(map[string]int)
	layer := make([]partial, 0, len(starts))
	for _, w := range starts {
		if s.check.excludedHit([]byte(w)) {
			continue
		}
		layer = append(layer, partial{path: Chain{w}, text: w, cost: 1})
		best[w] = 1
	}

	for depth := 2; len(layer) > 0; depth++ {
		var found []Chain
		var nextLayer []partial
		for _, p := range layer {
			for _, w := range s.next(p) {
				if err := s.step(); err != nil {
					return nil, err
				}
				if p.contains(w) {
					continue
				}
				if s.prune {
					if d, ok := best[w]; ok && d < depth {
						continue
					}
				}
				np := p.extend(w, 1)
				if s.check.excludedHit([]byte(np.text)) {
					continue
				}
				if s.accepts(np) {
					found = append(found, np.path)
					continue
				}
				if _, ok := best[w]; !ok {
					best[w] = depth
				}
				if len(found) == 0 {
					nextLayer = append(nextLayer, np)
				}
			}
		}
		if len(found) > 0 {
			return found, nil
		}
		layer = nextLayer
	}
	return nil, s.ctx.Err()
}

// byChars expands the cheapest chain first, where the cost of a chain is its
// total character length. Every chain popped at the first accepted cost is
// collected.
func (s *shortestSearch) byChars(starts []string) ([]Chain, error) {
	best := make(map[string]int)
	q := &partialQueue{}
	for _, w := range starts {
		if s.check.excludedHit([]byte(w)) {
			continue
		}
		cost := s.ix.Length(w)
		heap.Push(q, partial{path: Chain{w}, text: w, cost: cost})
		if b, ok := best[w]; !ok || cost < b {
			best[w] = cost
		}
	}

	var found []Chain
	answer := -1
	for q.Len() > 0 {
		if err := s.step(); err != nil {
			return nil, err
		}
		p := heap.Pop(q).(partial)
		if answer >= 0 && p.cost > answer {
			break
		}
		if len(p.path) > 1 && s.accepts(p) {
			answer = p.cost
			found = append(found, p.path)
			continue
		}
		for _, w := range s.next(p) {
			if p.contains(w) {
				continue
			}
			cost := p.cost + s.ix.Length(w)
			if answer >= 0 && cost > answer {
				continue
			}
			if s.prune {
				if b, ok := best[w]; ok && cost > b {
					continue
				}
				if b, ok := best[w]; !ok || cost < b {
					best[w] = cost
				}
			}
			np := p.extend(w, s.ix.Length(w))
			if s.check.excludedHit([]byte(np.text)) {
				continue
			}
			heap.Push(q, np)
		}
	}
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	return found, nil
}

// partialQueue is a min-heap of partial chains ordered by cost.
type partialQueue []partial

func (q partialQueue) Len() int           { return len(q) }
func (q partialQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q partialQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *partialQueue) Push(x any) {
	*q = append(*q, x.(partial))
}

func (q *partialQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
