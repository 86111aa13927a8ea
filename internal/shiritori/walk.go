package shiritori

import "context"

// cancelCheckInterval is the number of expansion steps between context checks.
const cancelCheckInterval = 1024

type stepper struct {
	ctx   context.Context
	steps int
}

func (s *stepper) step() error {
	s.steps++
	if s.steps%cancelCheckInterval == 0 {
		return s.ctx.Err()
	}
	return nil
}

// walker enumerates chains of a fixed number of words by backtracking over a
// single mutable path. Accepted chains are copied before being emitted.
type walker struct {
	stepper
	ix     *Index
	check  *checker
	length int

	// admit filters candidate words at positions after the first. Nil
	// admits every linked word.
	admit func(depth int, word string) bool
	// final is an extra acceptance test on the last word. Nil accepts all.
	final func(last string) bool
	emit  func(chain Chain)

	path []string
	used map[string]bool
	text []byte
}

func newWalker(ctx context.Context, ix *Index, c Constraints, length int) *walker {
	return &walker{
		stepper: stepper{ctx: ctx},
		ix:      ix,
		check:   newChecker(ix, c),
		length:  length,
		used:    make(map[string]bool),
	}
}

func (w *walker) isUsed(word string) bool {
	return w.used[word]
}

func (w *walker) run(first []string) error {
	for _, word := range first {
		if err := w.visit(word); err != nil {
			return err
		}
	}
	return w.ctx.Err()
}

func (w *walker) visit(word string) error {
	if err := w.step(); err != nil {
		return err
	}

	mark := len(w.text)
	w.path = append(w.path, word)
	w.used[word] = true
	w.text = append(w.text, word...)
	defer func() {
		w.path = w.path[:len(w.path)-1]
		delete(w.used, word)
		w.text = w.text[:mark]
	}()

	if w.check.excludedHit(w.text) {
		return nil
	}

	depth := len(w.path)
	if depth == w.length {
		if (w.final == nil || w.final(word)) && w.check.accept(w.path, w.isUsed, w.text) {
			w.emit(append(Chain(nil), w.path...))
		}
		return nil
	}

	tail := w.ix.Tail(word)
	if tail.Dead() {
		return nil
	}
	for _, next := range w.ix.WordsStartingWith(tail) {
		if w.used[next] {
			continue
		}
		if w.admit != nil && !w.admit(depth, next) {
			continue
		}
		if err := w.visit(next); err != nil {
			return err
		}
	}
	return nil
}
