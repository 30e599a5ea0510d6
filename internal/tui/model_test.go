package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

const modelText = "The cat sat. A dog ran. The cat slept."

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, text string) *Model {
	t.Helper()
	m := NewModel(Options{
		Text:        text,
		Frequencies: textstat.Analyze(text),
		Analyze:     model.AnalyzeConfig{PageSize: 50, Sort: "count", Order: "desc"},
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func manyWords(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, string([]rune{rune('a' + i/26), rune('a' + i%26)}))
	}
	return strings.Join(words, " ")
}

func TestSortToggling(t *testing.T) {
	m := newTestModel(t, modelText)
	tab := m.freqTab

	m.Update(runeKey("w"))
	if tab.sortKey != textstat.SortByWord || tab.order != textstat.Descending {
		t.Fatalf("expected word desc, got %s %s", tab.sortKey, tab.order)
	}
	m.Update(runeKey("w"))
	if tab.order != textstat.Ascending {
		t.Fatalf("expected same column to flip order, got %s", tab.order)
	}
	if word, _ := tab.selectedWord(); word != "a" {
		t.Fatalf("expected first word a, got %q", word)
	}
	m.Update(runeKey("c"))
	if tab.sortKey != textstat.SortByCount || tab.order != textstat.Descending {
		t.Fatalf("expected new column to start desc, got %s %s", tab.sortKey, tab.order)
	}
	if word, _ := tab.selectedWord(); word != "cat" {
		t.Fatalf("expected cat first, got %q", word)
	}
}

func TestSortIndicatorInHeader(t *testing.T) {
	m := newTestModel(t, modelText)
	cols := m.freqTab.table.Columns()
	if cols[2].Title != "Occurrences ▼" || cols[1].Title != "Word" {
		t.Fatalf("unexpected titles %q %q", cols[1].Title, cols[2].Title)
	}
}

func TestPageNavigation(t *testing.T) {
	m := newTestModel(t, manyWords(120))
	tab := m.freqTab

	m.Update(runeKey("]"))
	m.Update(runeKey("]"))
	m.Update(runeKey("]"))
	if tab.page != 3 {
		t.Fatalf("expected page clamped to 3, got %d", tab.page)
	}
	if rows := tab.table.Rows(); len(rows) != 20 || rows[0][0] != "101" {
		t.Fatalf("expected numbering to continue across pages, got %d rows", len(rows))
	}
	m.Update(runeKey("["))
	if tab.page != 2 {
		t.Fatalf("expected page 2, got %d", tab.page)
	}
	m.Update(runeKey("s"))
	if tab.pageSize != 100 || tab.page != 1 {
		t.Fatalf("expected page size 100 on page 1, got %d on %d", tab.pageSize, tab.page)
	}
	if !strings.Contains(tab.summary(), "Page 1 of 2") {
		t.Fatalf("unexpected summary %q", tab.summary())
	}
}

func TestExamplesModal(t *testing.T) {
	m := newTestModel(t, modelText)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.examplesWord != "cat" {
		t.Fatalf("expected examples for cat, got %q", m.examplesWord)
	}
	if len(m.examples) != 2 || m.examples[0] != "The cat sat" || m.examples[1] != "The cat slept" {
		t.Fatalf("unexpected examples %q", m.examples)
	}
	if !strings.Contains(m.View(), `Examples of "cat"`) {
		t.Fatalf("expected modal in view")
	}
	// Keys other than close are swallowed by the modal.
	m.Update(runeKey("w"))
	if m.freqTab.sortKey != textstat.SortByCount {
		t.Fatalf("expected sort unchanged while modal is open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.examplesWord != "" {
		t.Fatalf("expected modal closed")
	}
}

func TestTabNavigationAndFooter(t *testing.T) {
	m := newTestModel(t, modelText)
	if !containsAll(m.renderFooter(), []string{"Sort: w/c", "Page: [/]", "Examples: enter"}) {
		t.Fatalf("unexpected footer %q", m.renderFooter())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabHighlight {
		t.Fatalf("expected highlighted text tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabFlashcards {
		t.Fatalf("expected flashcards tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Deck storage is unavailable.") {
		t.Fatalf("expected unavailable notice without a store")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabFrequency {
		t.Fatalf("expected wrap to first tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabFlashcards {
		t.Fatalf("expected wrap to last tab, got %d", m.activeTab)
	}
}

func TestEmptyText(t *testing.T) {
	m := newTestModel(t, "123 !!!")
	if !strings.Contains(m.View(), "No words found.") {
		t.Fatalf("expected empty notice")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.examplesWord != "" {
		t.Fatalf("expected no modal without rows")
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
