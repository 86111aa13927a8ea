package wordlists

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// CommentPrefix starts a line that is ignored in word-list files.
const CommentPrefix = "#"

var (
	// ErrBinaryFile is returned for files that are not plain text.
	ErrBinaryFile = errors.New("word list is not a text file")

	// ErrInvalidEncoding is returned for lines that are not valid UTF-8.
	ErrInvalidEncoding = errors.New("word list is not valid UTF-8")
)

// CollectionName derives a collection name from a word-list path: the base
// name without extension.
func CollectionName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// UnionName names the collection holding all of the given collections.
func UnionName(names []string) string {
	return strings.Join(names, "_")
}

// CleanLine trims a raw line and reports whether it holds a word.
// Blank lines and comment lines hold none.
func CleanLine(line string) (string, bool) {
	line = strings.TrimPrefix(line, "\ufeff")
	// TrimSpace also removes the ideographic space U+3000
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, CommentPrefix) {
		return "", false
	}
	return line, true
}

// ReadWords reads one word per line from r. Lines are cleaned with
// CleanLine and words repeated within the input are kept once, in order of
// first appearance.
func ReadWords(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	if IsBinary(head) {
		return nil, ErrBinaryFile
	}

	var words []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(br)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if !utf8.ValidString(raw) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidEncoding)
		}
		word, ok := CleanLine(raw)
		if !ok {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	return words, nil
}

// Union merges word lists, keeping each word once in order of first
// appearance.
func Union(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

// IsBinary checks if the content appears to be binary by looking for null bytes
// in the first 512 bytes. This is a heuristic used by git and other tools.
func IsBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), 512)], 0) >= 0
}
