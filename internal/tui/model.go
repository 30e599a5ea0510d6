// Package tui provides the Bubble Tea interface for exploring a text: its
// frequency table, the highlighted text and flashcard decks.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lexideck/internal/flashcard"
	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

const (
	tabFrequency = iota
	tabHighlight
	tabFlashcards
)

// Options configures the interface.
type Options struct {
	Text        string
	Frequencies textstat.Frequencies
	Analyze     model.AnalyzeConfig
	Deck        model.DeckOptions
	// Builder may be nil when no deck store is available.
	Builder *flashcard.Builder
	// ProviderErr explains why Builder has no definition provider.
	ProviderErr error
	// InputTTY reads keys from the terminal when stdin carried the text.
	InputTTY bool
}

// Model implements the Bubble Tea interface.
type Model struct {
	text  string
	freqs textstat.Frequencies
	spans []textstat.Span

	tabs      []string
	activeTab int
	freqTab   *frequencyTab
	highlight viewport.Model
	flash     *flashcardTab

	examplesWord string
	examples     []string

	width  int
	height int
}

// NewModel constructs the interface model.
func NewModel(opts Options) *Model {
	key, err := textstat.ParseSortKey(opts.Analyze.Sort)
	if err != nil {
		key = textstat.SortByCount
	}
	order, err := textstat.ParseSortOrder(opts.Analyze.Order)
	if err != nil {
		order = textstat.Descending
	}
	m := &Model{
		text:      opts.Text,
		freqs:     opts.Frequencies,
		spans:     textstat.HighlightSpans(opts.Text, opts.Frequencies),
		tabs:      []string{"Frequency Table", "Highlighted Text", "Flashcards"},
		freqTab:   newFrequencyTab(opts.Frequencies, key, order, opts.Analyze.PageSize),
		highlight: viewport.New(0, 0),
		flash:     newFlashcardTab(opts.Builder, opts.ProviderErr, opts.Text, opts.Frequencies, opts.Deck),
	}
	m.renderHighlight()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.flash.init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, m.flash.update(msg)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.examplesWord != "" {
		switch msg.String() {
		case "esc", "enter", "q":
			m.closeExamples()
		}
		return m, nil
	}
	if m.activeTab == tabFlashcards && m.flash.capturesInput() {
		return m, m.flash.update(msg)
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	}
	switch m.activeTab {
	case tabFrequency:
		if msg.String() == "enter" {
			if word, ok := m.freqTab.selectedWord(); ok {
				m.openExamples(word)
			}
			return m, nil
		}
		return m, m.freqTab.update(msg)
	case tabHighlight:
		var cmd tea.Cmd
		m.highlight, cmd = m.highlight.Update(msg)
		return m, cmd
	default:
		return m, m.flash.update(msg)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.examplesWord != "" {
		return fitLines(m.renderExamples(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(padLines(m.renderTabs(), m.width), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	footerHeight = 1
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.freqTab.setSize(m.width, bodyHeight)
	m.highlight.Width = m.width
	m.highlight.Height = bodyHeight
	m.flash.width = m.width
	m.flash.height = bodyHeight
	m.renderHighlight()
}

func (m *Model) renderHighlight() {
	if m.freqs.Empty() {
		m.highlight.SetContent("No words found.")
		return
	}
	m.highlight.SetContent(HighlightedText(lipgloss.DefaultRenderer(), m.text, m.spans, m.width))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabFrequency {
		m.freqTab.table.Focus()
	} else {
		m.freqTab.table.Blur()
	}
}

func (m *Model) openExamples(word string) {
	m.examplesWord = word
	m.examples = textstat.ExampleSentences(m.text, word, textstat.DisplayExampleLimit)
}

func (m *Model) closeExamples() {
	m.examplesWord = ""
	m.examples = nil
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	switch m.activeTab {
	case tabFrequency:
		return m.freqTab.view()
	case tabHighlight:
		return m.highlight.View()
	default:
		return m.flash.view()
	}
}

func (m *Model) renderFooter() string {
	var help string
	switch m.activeTab {
	case tabFrequency:
		help = "Nav: left/right  Sort: w/c  Page: [/]  Page size: s  Examples: enter  Quit: q"
	case tabHighlight:
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Quit: q"
	default:
		help = "Nav: left/right  " + m.flash.help() + "  Quit: q"
		if m.flash.capturesInput() {
			help = m.flash.help()
		}
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderExamples() string {
	title := titleStyle.Render(fmt.Sprintf("Examples of %q", m.examplesWord))
	width := modalInnerWidth(m.width)
	body := []string{title, ""}
	if len(m.examples) == 0 {
		body = append(body, mutedStyle.Render("No example sentences found."))
	}
	for _, sentence := range m.examples {
		line := textstat.EmphasizeWord(sentence, m.examplesWord, emphasize)
		body = append(body, lipgloss.NewStyle().Width(width).Render("• "+line))
	}
	body = append(body, "", headerStyle.Render("esc to close"))
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Run starts the interface in the alternate screen and blocks until it exits.
func Run(opts Options) error {
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.InputTTY {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	program := tea.NewProgram(NewModel(opts), programOpts...)
	_, err := program.Run()
	return err
}
