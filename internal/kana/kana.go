// Package kana maps words to the phonetic units used to link them in a
// shiritori chain.
//
// A word's head unit is the first character of its NFKC form. Its tail unit
// is the last character after two rewrites: a trailing elongation mark takes
// the character it lengthens, and small kana become their full-size parent.
// A tail of "ン" or "ん" is dead: nothing may follow it.
package kana

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Unit is a single canonical linking character.
type Unit rune

// NoUnit is returned for empty input and means "unconstrained" when used in
// search options.
const NoUnit Unit = 0

// ChoonMark is the katakana elongation mark.
const ChoonMark = 'ー'

// ErrInvalidUnit is returned by ParseUnit when the input is not exactly one character.
var ErrInvalidUnit = errors.New("unit must be exactly one character")

var smallToFull = map[rune]rune{
	'ぁ': 'あ', 'ぃ': 'い', 'ぅ': 'う', 'ぇ': 'え', 'ぉ': 'お',
	'っ': 'つ', 'ゃ': 'や', 'ゅ': 'ゆ', 'ょ': 'よ', 'ゎ': 'わ',
	'ゕ': 'か', 'ゖ': 'け',
	'ァ': 'ア', 'ィ': 'イ', 'ゥ': 'ウ', 'ェ': 'エ', 'ォ': 'オ',
	'ッ': 'ツ', 'ャ': 'ヤ', 'ュ': 'ユ', 'ョ': 'ヨ', 'ヮ': 'ワ',
	'ヵ': 'カ', 'ヶ': 'ケ',
}

// Normalize returns the NFKC form of s. Half-width katakana become full
// width and decomposed voicing marks are composed.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}

// Length returns the number of sounded characters in the normalized form of
// word. Elongation marks and small tsu only extend a neighbouring sound and
// are not counted, so "ペルー" has length 2.
func Length(word string) int {
	n := 0
	for _, r := range Normalize(word) {
		if !Unsounded(r) {
			n++
		}
	}
	return n
}

// TextLength returns the number of characters in the normalized form of word.
func TextLength(word string) int {
	return utf8.RuneCountInString(Normalize(word))
}

// Unsounded reports whether r is left out of Length.
func Unsounded(r rune) bool {
	return r == ChoonMark || r == 'ッ' || r == 'っ'
}

// Head returns the head unit of word, or NoUnit if word is empty.
func Head(word string) Unit {
	n := Normalize(word)
	r, size := utf8.DecodeRuneInString(n)
	if size == 0 {
		return NoUnit
	}
	return Unit(r)
}

// Tail returns the tail unit of word, or NoUnit if word is empty. The
// returned unit may be dead; callers that extend chains must check Dead.
func Tail(word string) Unit {
	runes := []rune(Normalize(word))
	if len(runes) == 0 {
		return NoUnit
	}
	last := len(runes) - 1
	for last > 0 && runes[last] == ChoonMark {
		last--
	}
	r := runes[last]
	if full, ok := smallToFull[r]; ok {
		r = full
	}
	return Unit(r)
}

// ParseUnit normalizes s and returns it as a unit. Small kana are mapped to
// their full-size parent so that a caller asking for "ャ" links like "ヤ".
func ParseUnit(s string) (Unit, error) {
	n := Normalize(s)
	if utf8.RuneCountInString(n) != 1 {
		return NoUnit, ErrInvalidUnit
	}
	r, _ := utf8.DecodeRuneInString(n)
	if full, ok := smallToFull[r]; ok {
		r = full
	}
	return Unit(r), nil
}

// Dead reports whether u is the nasal terminal that ends a chain.
func (u Unit) Dead() bool {
	return u == 'ン' || u == 'ん'
}

// String returns the unit as a one-character string, or "" for NoUnit.
func (u Unit) String() string {
	if u == NoUnit {
		return ""
	}
	return string(rune(u))
}
