package textstat

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// WordFrequency is the number of occurrences of a word and its share of all
// tokens in the analyzed text.
type WordFrequency struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SortKey selects the column used to order a frequency list.
type SortKey string

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortByCount SortKey = "count"
	SortByWord  SortKey = "word"

	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Frequencies is the immutable result of aggregating a token sequence.
type Frequencies struct {
	total int
	items []WordFrequency
	index map[string]int
}

// Analyze tokenizes text and aggregates the tokens.
func Analyze(text string) Frequencies {
	return Aggregate(Tokens(text))
}

// Aggregate counts tokens. Entries are ordered by count descending, then by
// word ascending, so the order is reproducible for identical input.
func Aggregate(tokens iter.Seq[string]) Frequencies {
	counts := make(map[string]int)
	total := 0
	for tok := range tokens {
		counts[tok]++
		total++
	}
	if total == 0 {
		return Frequencies{}
	}

	items := make([]WordFrequency, 0, len(counts))
	for word, count := range counts {
		items = append(items, WordFrequency{
			Word:       word,
			Count:      count,
			Percentage: 100 * float64(count) / float64(total),
		})
	}
	slices.SortFunc(items, func(a, b WordFrequency) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})

	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.Word] = i
	}
	return Frequencies{total: total, items: items, index: index}
}

// Total returns the number of tokens, repeats included.
func (f Frequencies) Total() int {
	return f.total
}

// Unique returns the number of distinct words.
func (f Frequencies) Unique() int {
	return len(f.items)
}

// Empty reports whether the text had no tokens.
func (f Frequencies) Empty() bool {
	return len(f.items) == 0
}

// Items returns a copy of the entries in default rank order.
func (f Frequencies) Items() []WordFrequency {
	return slices.Clone(f.items)
}

// Lookup returns the entry for a lowercase word.
func (f Frequencies) Lookup(word string) (WordFrequency, bool) {
	i, ok := f.index[word]
	if !ok {
		return WordFrequency{}, false
	}
	return f.items[i], true
}

// MaxCount returns the highest count, or 0 for an empty result.
func (f Frequencies) MaxCount() int {
	if len(f.items) == 0 {
		return 0
	}
	return f.items[0].Count
}

// Sorted returns the entries re-ordered by key and order.
func (f Frequencies) Sorted(key SortKey, order SortOrder) []WordFrequency {
	return SortFrequencies(f.items, key, order)
}

// Filter returns the ranked entries whose count lies within [minCount, maxCount].
// A non-positive maxCount means no upper bound.
func (f Frequencies) Filter(minCount, maxCount int) []WordFrequency {
	out := make([]WordFrequency, 0, len(f.items))
	for _, item := range f.items {
		if item.Count < minCount {
			continue
		}
		if maxCount > 0 && item.Count > maxCount {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortFrequencies returns a stably sorted copy of items. Counts and
// percentages are carried over unchanged.
func SortFrequencies(items []WordFrequency, key SortKey, order SortOrder) []WordFrequency {
	out := slices.Clone(items)
	var compare func(a, b WordFrequency) int
	switch key {
	case SortByWord:
		compare = func(a, b WordFrequency) int { return strings.Compare(a.Word, b.Word) }
	default:
		compare = func(a, b WordFrequency) int { return cmp.Compare(a.Count, b.Count) }
	}
	if order == Descending {
		asc := compare
		compare = func(a, b WordFrequency) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// ParseSortKey parses "count" or "word".
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByCount:
		return SortByCount, nil
	case SortByWord:
		return SortByWord, nil
	}
	return "", fmt.Errorf("unknown sort key %q (use count or word)", s)
}

// ParseSortOrder parses "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort order %q (use asc or desc)", s)
}
