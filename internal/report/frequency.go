package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/verte-zerg/lexideck/internal/textstat"
)

// PageSizes lists the page sizes offered for frequency tables.
var PageSizes = []int{50, 100, 250, 500, 1000}

// DefaultPageSize is the first entry of PageSizes.
const DefaultPageSize = 50

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// NextPageSize returns the page size after size in PageSizes, wrapping.
func NextPageSize(size int) int {
	i := slices.Index(PageSizes, size)
	return PageSizes[(i+1)%len(PageSizes)]
}

// Page is one page of a frequency list.
type Page struct {
	Items  []textstat.WordFrequency
	Number int
	Pages  int
	Offset int
}

// Paginate returns page number (1-based) of items. The number is clamped to
// the available pages; an empty list has a single empty page.
func Paginate(items []textstat.WordFrequency, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(items) + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	number = min(max(number, 1), pages)
	start := min((number-1)*size, len(items))
	end := min(start+size, len(items))
	return Page{Items: items[start:end], Number: number, Pages: pages, Offset: start}
}

// WriteSummary writes the total and unique word counts.
func WriteSummary(w io.Writer, freqs textstat.Frequencies) error {
	_, err := fmt.Fprintf(w, "Total words: %d\nUnique words: %d\n", freqs.Total(), freqs.Unique())
	return err
}

// FrequencyRows formats page items as table rows numbered from the page offset.
func FrequencyRows(page Page) [][]string {
	rows := make([][]string, 0, len(page.Items))
	for i, item := range page.Items {
		rows = append(rows, []string{
			strconv.Itoa(page.Offset + i + 1),
			item.Word,
			strconv.Itoa(item.Count),
			FormatPercentage(item.Percentage),
		})
	}
	return rows
}

// FormatPercentage renders a share with two decimals.
func FormatPercentage(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

// WriteFrequencyTable writes one page of the frequency table.
func WriteFrequencyTable(w io.Writer, page Page) error {
	headers := []string{"#", "Word", "Occurrences", "Percentage"}
	lines := formatTable(headers, FrequencyRows(page), map[int]bool{0: true, 2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Page %d of %d\n", page.Number, page.Pages)
	return err
}
