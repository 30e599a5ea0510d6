// Package textstat counts words and extracts example sentences from plain text.
package textstat

import (
	"iter"
	"strings"
	"unicode"
)

// Tokens yields the lowercase words of text. A word is a maximal run of
// Unicode letters; everything else separates words and is dropped.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for start, end := range letterRuns(text) {
			if !yield(strings.ToLower(text[start:end])) {
				return
			}
		}
	}
}

// Tokenize returns all tokens of text in order.
func Tokenize(text string) []string {
	var tokens []string
	for tok := range Tokens(text) {
		tokens = append(tokens, tok)
	}
	return tokens
}

// letterRuns yields byte offsets [start, end) of each maximal letter run.
func letterRuns(text string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1
		for i, r := range text {
			if unicode.IsLetter(r) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(start, i) {
					return
				}
				start = -1
			}
		}
		if start >= 0 {
			yield(start, len(text))
		}
	}
}
