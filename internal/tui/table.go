package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lexideck/internal/report"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

// frequencyTab holds the paginated, sortable frequency table.
type frequencyTab struct {
	freqs    textstat.Frequencies
	sorted   []textstat.WordFrequency
	sortKey  textstat.SortKey
	order    textstat.SortOrder
	page     int
	pageSize int
	table    table.Model
	width    int
	height   int
}

func newFrequencyTab(freqs textstat.Frequencies, key textstat.SortKey, order textstat.SortOrder, pageSize int) *frequencyTab {
	if !report.ValidPageSize(pageSize) {
		pageSize = report.DefaultPageSize
	}
	t := &frequencyTab{
		freqs:    freqs,
		sortKey:  key,
		order:    order,
		page:     1,
		pageSize: pageSize,
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(1),
		),
	}
	t.table.SetStyles(frequencyTableStyles())
	t.resort()
	return t
}

// toggleSort selects key. Selecting the active column flips the order; a new
// column starts descending.
func (t *frequencyTab) toggleSort(key textstat.SortKey) {
	if t.sortKey == key {
		if t.order == textstat.Ascending {
			t.order = textstat.Descending
		} else {
			t.order = textstat.Ascending
		}
	} else {
		t.sortKey = key
		t.order = textstat.Descending
	}
	t.resort()
}

func (t *frequencyTab) resort() {
	t.sorted = t.freqs.Sorted(t.sortKey, t.order)
	t.refresh()
}

func (t *frequencyTab) movePage(delta int) {
	t.page += delta
	t.refresh()
	t.table.GotoTop()
}

func (t *frequencyTab) cyclePageSize() {
	t.pageSize = report.NextPageSize(t.pageSize)
	t.page = 1
	t.refresh()
	t.table.GotoTop()
}

func (t *frequencyTab) current() report.Page {
	return report.Paginate(t.sorted, t.page, t.pageSize)
}

func (t *frequencyTab) refresh() {
	page := t.current()
	t.page = page.Number
	rows := make([]table.Row, 0, len(page.Items))
	for _, row := range report.FrequencyRows(page) {
		rows = append(rows, table.Row(row))
	}
	t.table.SetColumns(t.columns(page))
	t.table.SetRows(rows)
	if t.table.Cursor() >= len(rows) {
		t.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (t *frequencyTab) columns(page report.Page) []table.Column {
	numWidth := max(len(strconv.Itoa(page.Offset+len(page.Items))), 1)
	wordWidth := lipgloss.Width("Word ▲")
	for _, item := range page.Items {
		wordWidth = max(wordWidth, lipgloss.Width(item.Word))
	}
	return []table.Column{
		{Title: "#", Width: numWidth},
		{Title: t.title("Word", textstat.SortByWord), Width: wordWidth},
		{Title: t.title("Occurrences", textstat.SortByCount), Width: lipgloss.Width("Occurrences ▲")},
		{Title: "Percentage", Width: len("Percentage")},
	}
}

func (t *frequencyTab) title(name string, key textstat.SortKey) string {
	if t.sortKey != key {
		return name
	}
	if t.order == textstat.Ascending {
		return name + " ▲"
	}
	return name + " ▼"
}

// selectedWord returns the word under the cursor.
func (t *frequencyTab) selectedWord() (string, bool) {
	row := t.table.SelectedRow()
	if len(row) < 2 {
		return "", false
	}
	return row[1], true
}

func (t *frequencyTab) setSize(width, height int) {
	t.width = width
	t.height = height
	t.table.SetWidth(width)
	t.table.SetHeight(max(1, height-1))
}

func (t *frequencyTab) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "w":
		t.toggleSort(textstat.SortByWord)
	case "c":
		t.toggleSort(textstat.SortByCount)
	case "]", "n":
		t.movePage(1)
	case "[", "p":
		t.movePage(-1)
	case "s":
		t.cyclePageSize()
	case "g", "home":
		t.table.GotoTop()
	case "G", "end":
		t.table.GotoBottom()
	default:
		var cmd tea.Cmd
		t.table, cmd = t.table.Update(msg)
		return cmd
	}
	return nil
}

func (t *frequencyTab) summary() string {
	page := t.current()
	return fmt.Sprintf("Total words: %d  Unique words: %d  Page %d of %d  Words per page: %d",
		t.freqs.Total(), t.freqs.Unique(), page.Number, page.Pages, t.pageSize)
}

func (t *frequencyTab) view() string {
	if t.freqs.Empty() {
		return "No words found."
	}
	return headerStyle.Render(truncateLine(t.summary(), t.width)) + "\n" + mutedStyle.Render(t.table.View())
}

func frequencyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
