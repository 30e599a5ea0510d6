package textstat

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DisplayExampleLimit is the number of example sentences shown for a word.
const DisplayExampleLimit = 5

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// Range is a byte range [Start, End) in a string.
type Range struct {
	Start int
	End   int
}

// Sentences splits text on runs of '.', '!' and '?' and trims each piece.
// Empty pieces are kept.
func Sentences(text string) []string {
	parts := sentenceBoundary.Split(text, -1)
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// ExampleSentences returns the sentences of text that contain word as a whole
// word, in source order. A positive limit caps the number of results.
func ExampleSentences(text, word string, limit int) []string {
	matcher := NewMatcher(word)
	out := []string{}
	for _, sentence := range Sentences(text) {
		if sentence == "" || !matcher.Match(sentence) {
			continue
		}
		out = append(out, sentence)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Matcher finds case-insensitive whole-word occurrences of a word. The word
// is matched literally.
type Matcher struct {
	word string
	re   *regexp.Regexp
}

// NewMatcher returns a Matcher for word. An empty word matches nothing.
func NewMatcher(word string) *Matcher {
	m := &Matcher{word: word}
	if word != "" {
		m.re = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	}
	return m
}

// Word returns the word the matcher was built for.
func (m *Matcher) Word() string {
	return m.word
}

// Match reports whether s contains the word.
func (m *Matcher) Match(s string) bool {
	_, ok := m.next(s, 0)
	return ok
}

// FindAll returns the ranges of all occurrences in s, left to right.
func (m *Matcher) FindAll(s string) []Range {
	var out []Range
	pos := 0
	for {
		r, ok := m.next(s, pos)
		if !ok {
			return out
		}
		out = append(out, r)
		pos = r.End
	}
}

func (m *Matcher) next(s string, pos int) (Range, bool) {
	if m.re == nil {
		return Range{}, false
	}
	for pos < len(s) {
		loc := m.re.FindStringIndex(s[pos:])
		if loc == nil {
			return Range{}, false
		}
		start, end := pos+loc[0], pos+loc[1]
		if isWholeWord(s, start, end) {
			return Range{Start: start, End: end}, true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return Range{}, false
}

// isWholeWord reports whether s[start:end] is not adjacent to a letter,
// digit or underscore.
func isWholeWord(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
