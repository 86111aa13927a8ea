package shiritori

import (
	"context"
	"slices"
	"strings"

	"github.com/sha1n/mcp-shiritori-server/internal/kana"
)

// SearchLoop returns the closed chains whose total text length equals the
// pattern's length and whose text matches the pattern under some rotation.
// A chain is closed when its last word links back to its first.
//
// Loops using the same set of words are reported once, whatever their
// starting word or order.
func (ix *Index) SearchLoop(ctx context.Context, p *Pattern) ([]Chain, error) {
	if p == nil {
		return nil, ErrInvalidPattern
	}
	l := &loopSearch{
		stepper: stepper{ctx: ctx},
		ix:      ix,
		pattern: p,
		target:  p.Len(),
		used:    make(map[string]bool),
		seen:    make(map[string]struct{}),
	}
	for _, w := range ix.words {
		if ix.TextLength(w) >= l.target {
			continue
		}
		if err := l.visit(w, 0); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortChains(l.found)
	return l.found, nil
}

type loopSearch struct {
	stepper
	ix      *Index
	pattern *Pattern
	target  int

	path  []string
	used  map[string]bool
	seen  map[string]struct{}
	found []Chain
}

func (l *loopSearch) visit(word string, length int) error {
	if err := l.step(); err != nil {
		return err
	}
	length += l.ix.TextLength(word)
	if length > l.target {
		return nil
	}

	l.path = append(l.path, word)
	l.used[word] = true
	defer func() {
		l.path = l.path[:len(l.path)-1]
		delete(l.used, word)
	}()

	tail := l.ix.Tail(word)
	if length == l.target {
		if !tail.Dead() && tail == l.ix.Head(l.path[0]) && l.rotationMatches() {
			l.record()
		}
		return nil
	}
	if tail.Dead() {
		return nil
	}
	for _, next := range l.ix.WordsStartingWith(tail) {
		if l.used[next] || length+l.ix.TextLength(next) > l.target {
			continue
		}
		if err := l.visit(next, length); err != nil {
			return err
		}
	}
	return nil
}

func (l *loopSearch) rotationMatches() bool {
	runes := []rune(kana.Normalize(strings.Join(l.path, "")))
	rotated := make([]rune, len(runes))
	for i := range runes {
		n := copy(rotated, runes[i:])
		copy(rotated[n:], runes[:i])
		if l.pattern.Match(string(rotated)) {
			return true
		}
	}
	return false
}

func (l *loopSearch) record() {
	members := slices.Clone(l.path)
	slices.Sort(members)
	key := strings.Join(members, "\x00")
	if _, ok := l.seen[key]; ok {
		return
	}
	l.seen[key] = struct{}{}
	l.found = append(l.found, slices.Clone(Chain(l.path)))
}
