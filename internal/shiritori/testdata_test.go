package shiritori

import (
	"slices"
	"testing"
)

var animals = []string{"ねこ", "こい", "いぬ", "ぬま"}

var fruits = []string{
	"りんご", "ごりら", "らっぱ", "ぱんだ", "だちょう",
	"うさぎ", "ぎんこう", "らいおん", "ごま", "まり",
}

func mustIndex(t *testing.T, words []string) *Index {
	t.Helper()
	ix, err := NewIndex(words)
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	return ix
}

// assertLinked checks that every chain obeys the linking rule and repeats no word.
func assertLinked(t *testing.T, ix *Index, chains []Chain) {
	t.Helper()
	for _, ch := range chains {
		for i := 1; i < len(ch); i++ {
			if ix.Tail(ch[i-1]) != ix.Head(ch[i]) {
				t.Errorf("Chain %v breaks the linking rule at %d", ch, i)
			}
			if ix.Tail(ch[i-1]).Dead() {
				t.Errorf("Chain %v continues after a dead unit at %d", ch, i)
			}
		}
		sorted := slices.Clone(ch)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(ch) {
			t.Errorf("Chain %v repeats a word", ch)
		}
	}
}
