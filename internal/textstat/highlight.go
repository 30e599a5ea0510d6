package textstat

import "strings"

// Intensity range used for highlighting. The most frequent word gets
// MaxIntensity; a word with a vanishing count approaches MinIntensity.
const (
	MinIntensity = 0.1
	MaxIntensity = 0.5
)

// Span marks one occurrence of a counted word in the source text.
type Span struct {
	Range
	Word      string
	Count     int
	Intensity float64
}

// Intensity maps count linearly into [MinIntensity, MaxIntensity] relative
// to maxCount.
func Intensity(count, maxCount int) float64 {
	if maxCount <= 0 {
		return MinIntensity
	}
	return MinIntensity + float64(count)/float64(maxCount)*(MaxIntensity-MinIntensity)
}

// HighlightSpans returns the spans of every whole-word occurrence in text of
// a word present in freqs, ordered by position. Spans never overlap.
func HighlightSpans(text string, freqs Frequencies) []Span {
	maxCount := freqs.MaxCount()
	if maxCount == 0 {
		return nil
	}
	var spans []Span
	for start, end := range letterRuns(text) {
		if !isWholeWord(text, start, end) {
			continue
		}
		wf, ok := freqs.Lookup(strings.ToLower(text[start:end]))
		if !ok {
			continue
		}
		spans = append(spans, Span{
			Range:     Range{Start: start, End: end},
			Word:      wf.Word,
			Count:     wf.Count,
			Intensity: Intensity(wf.Count, maxCount),
		})
	}
	return spans
}

// RenderHighlighted copies text, replacing each span's segment with the
// result of mark. Spans must be ordered and non-overlapping.
func RenderHighlighted(text string, spans []Span, mark func(segment string, span Span) string) string {
	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, span := range spans {
		if span.Start < pos || span.End > len(text) {
			continue
		}
		b.WriteString(text[pos:span.Start])
		b.WriteString(mark(text[span.Start:span.End], span))
		pos = span.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// EmphasizeWord wraps each whole-word occurrence of word in sentence with mark.
func EmphasizeWord(sentence, word string, mark func(string) string) string {
	ranges := NewMatcher(word).FindAll(sentence)
	if len(ranges) == 0 {
		return sentence
	}
	var b strings.Builder
	pos := 0
	for _, r := range ranges {
		b.WriteString(sentence[pos:r.Start])
		b.WriteString(mark(sentence[r.Start:r.End]))
		pos = r.End
	}
	b.WriteString(sentence[pos:])
	return b.String()
}
