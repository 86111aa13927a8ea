package shiritori

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sha1n/mcp-shiritori-server/internal/kana"
)

// DefaultPlaceholder matches exactly one character in a wildcard pattern.
const DefaultPlaceholder = '○'

// Pattern is a compiled wildcard pattern anchored to the whole candidate.
type Pattern struct {
	source string
	length int
	re     *regexp.Regexp
}

// CompilePattern compiles pattern, in which placeholder matches any single
// character and every other character matches itself. A zero placeholder
// selects DefaultPlaceholder. Pattern and candidates are compared in NFKC form.
func CompilePattern(pattern string, placeholder rune) (*Pattern, error) {
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}
	if !utf8.ValidString(pattern) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidPattern)
	}
	normalized := kana.Normalize(pattern)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	ph := kana.Normalize(string(placeholder))

	var sb strings.Builder
	sb.WriteString(`^(?s:`)
	length := 0
	for _, r := range normalized {
		length++
		if string(r) == ph {
			sb.WriteString(".")
			continue
		}
		sb.WriteString(regexp.QuoteMeta(string(r)))
	}
	sb.WriteString(`)$`)

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return &Pattern{source: pattern, length: length, re: re}, nil
}

// Match reports whether the whole candidate matches the pattern.
func (p *Pattern) Match(candidate string) bool {
	n := kana.Normalize(candidate)
	if utf8.RuneCountInString(n) != p.length {
		return false
	}
	return p.re.MatchString(n)
}

// Len returns the number of characters a matching candidate has.
func (p *Pattern) Len() int {
	return p.length
}

// String returns the pattern as given.
func (p *Pattern) String() string {
	return p.source
}
