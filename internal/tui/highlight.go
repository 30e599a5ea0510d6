package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/lexideck/internal/textstat"
)

var (
	highlightBase = colorful.Color{R: 38 / 255.0, G: 38 / 255.0, B: 38 / 255.0}
	highlightPeak = colorful.Color{R: 1, G: 215 / 255.0, B: 0}
)

// HighlightColor returns the background for a span intensity. The most
// frequent word gets the full highlight colour.
func HighlightColor(intensity float64) lipgloss.Color {
	alpha := min(max(intensity/textstat.MaxIntensity, 0), 1)
	return lipgloss.Color(highlightBase.BlendRgb(highlightPeak, alpha).Hex())
}

func highlightStyle(r *lipgloss.Renderer, intensity float64) lipgloss.Style {
	style := r.NewStyle().Background(HighlightColor(intensity))
	if intensity/textstat.MaxIntensity > 0.6 {
		return style.Foreground(lipgloss.Color("#101010"))
	}
	return style.Foreground(lipgloss.Color("#F0F0F0"))
}

// HighlightedText renders text with every span's background set from its
// intensity, word wrapped to width. A non-positive width disables wrapping.
func HighlightedText(r *lipgloss.Renderer, text string, spans []textstat.Span, width int) string {
	lines := wrapRanges(text, width)
	out := make([]string, 0, len(lines))
	next := 0
	for _, line := range lines {
		var b strings.Builder
		pos := line.Start
		for next < len(spans) && spans[next].End <= pos {
			next++
		}
		for i := next; i < len(spans); i++ {
			span := spans[i]
			if span.Start >= line.End {
				break
			}
			start, end := max(span.Start, pos), min(span.End, line.End)
			b.WriteString(text[pos:start])
			b.WriteString(highlightStyle(r, span.Intensity).Render(text[start:end]))
			pos = end
		}
		b.WriteString(text[pos:line.End])
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

// wrapRanges splits text into display lines no wider than width. Lines break
// at the last space that fits; the space itself is dropped. Words wider than
// width are cut. Newlines always break.
func wrapRanges(text string, width int) []textstat.Range {
	var out []textstat.Range
	start := 0
	for {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			return append(out, wrapLine(text, start, len(text), width)...)
		}
		end += start
		out = append(out, wrapLine(text, start, end, width)...)
		start = end + 1
	}
}

func wrapLine(text string, start, end, width int) []textstat.Range {
	if width <= 0 || start == end {
		return []textstat.Range{{Start: start, End: end}}
	}
	var out []textstat.Range
	lineStart, lineWidth, lastSpace := start, 0, -1
	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(text[i:end])
		w := runewidth.RuneWidth(r)
		if lineWidth+w > width && i > lineStart {
			switch {
			case r == ' ':
				out = append(out, textstat.Range{Start: lineStart, End: i})
				i += size
				lineStart, lineWidth, lastSpace = i, 0, -1
			case lastSpace >= 0:
				out = append(out, textstat.Range{Start: lineStart, End: lastSpace})
				lineStart = lastSpace + 1
				lineWidth = runewidth.StringWidth(text[lineStart:i])
				lastSpace = strings.LastIndexByte(text[lineStart:i], ' ')
				if lastSpace >= 0 {
					lastSpace += lineStart
				}
			default:
				out = append(out, textstat.Range{Start: lineStart, End: i})
				lineStart, lineWidth, lastSpace = i, 0, -1
			}
			continue
		}
		if r == ' ' {
			lastSpace = i
		}
		lineWidth += w
		i += size
	}
	return append(out, textstat.Range{Start: lineStart, End: end})
}
