package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/lexideck/internal/flashcard"
	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

type flashcardMode int

const (
	modeHistory flashcardMode = iota
	modeForm
	modeGenerating
	modeReview
)

const (
	fieldMin = iota
	fieldMax
	fieldSize
	fieldSentences
)

type decksLoadedMsg struct {
	decks []model.Deck
	err   error
}

type deckGeneratedMsg struct {
	result flashcard.Result
	err    error
}

type cardsLoadedMsg struct {
	deck  model.Deck
	cards []model.Flashcard
	err   error
}

// flashcardTab lists past decks, generates new ones and runs reviews.
type flashcardTab struct {
	builder     *flashcard.Builder
	providerErr error
	text        string
	freqs       textstat.Frequencies
	opts        model.DeckOptions

	mode       flashcardMode
	decks      []model.Deck
	cursor     int
	inputs     []textinput.Model
	inputIndex int
	formErr    string
	errMsg     string
	spinner    spinner.Model

	deck   model.Deck
	review *flashcard.Review

	width  int
	height int
}

func newFlashcardTab(builder *flashcard.Builder, providerErr error, text string, freqs textstat.Frequencies, opts model.DeckOptions) *flashcardTab {
	t := &flashcardTab{
		builder:     builder,
		providerErr: providerErr,
		text:        text,
		freqs:       freqs,
		opts:        opts,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	t.inputs = []textinput.Model{
		newNumberInput("Min occurrence: "),
		newNumberInput("Max occurrence: "),
		newNumberInput("Deck size: "),
		newNumberInput("Sentences per card (1-3): "),
	}
	return t
}

func newNumberInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 6
	input.Cursor.SetMode(cursor.CursorBlink)
	input.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}
	return input
}

func (t *flashcardTab) available() bool {
	return t.builder != nil && t.builder.Store != nil
}

// capturesInput reports whether key presses belong to a text field.
func (t *flashcardTab) capturesInput() bool {
	return t.mode == modeForm
}

func (t *flashcardTab) init() tea.Cmd {
	if !t.available() {
		return nil
	}
	return t.loadDecksCmd()
}

func (t *flashcardTab) loadDecksCmd() tea.Cmd {
	st := t.builder.Store
	return func() tea.Msg {
		decks, err := st.ListDecks(context.Background())
		return decksLoadedMsg{decks: decks, err: err}
	}
}

func (t *flashcardTab) loadCardsCmd(deck model.Deck) tea.Cmd {
	st := t.builder.Store
	return func() tea.Msg {
		cards, err := st.ListFlashcards(context.Background(), deck.ID)
		return cardsLoadedMsg{deck: deck, cards: cards, err: err}
	}
}

func (t *flashcardTab) generateCmd(opts model.DeckOptions) tea.Cmd {
	builder, text, freqs := t.builder, t.text, t.freqs
	return func() tea.Msg {
		result, err := builder.Generate(context.Background(), text, freqs, opts)
		return deckGeneratedMsg{result: result, err: err}
	}
}

func (t *flashcardTab) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		if msg.err != nil {
			t.errMsg = fmt.Sprintf("failed to load decks: %v", msg.err)
			return nil
		}
		t.decks = msg.decks
		t.cursor = min(t.cursor, max(len(t.decks)-1, 0))
		return nil
	case cardsLoadedMsg:
		if msg.err != nil {
			t.errMsg = fmt.Sprintf("failed to load deck: %v", msg.err)
			return nil
		}
		t.startReview(msg.deck, msg.cards)
		return nil
	case deckGeneratedMsg:
		return t.finishGenerate(msg)
	case spinner.TickMsg:
		if t.mode != modeGenerating {
			return nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if !t.available() {
			return nil
		}
		switch t.mode {
		case modeHistory:
			return t.updateHistory(msg)
		case modeForm:
			return t.updateForm(msg)
		case modeReview:
			return t.updateReview(msg)
		}
	}
	return nil
}

func (t *flashcardTab) updateHistory(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		t.cursor = max(t.cursor-1, 0)
	case "down", "j":
		t.cursor = min(t.cursor+1, max(len(t.decks)-1, 0))
	case "enter":
		if len(t.decks) == 0 {
			return nil
		}
		t.errMsg = ""
		return t.loadCardsCmd(t.decks[t.cursor])
	case "n":
		return t.startForm()
	case "r":
		return t.loadDecksCmd()
	}
	return nil
}

func (t *flashcardTab) startForm() tea.Cmd {
	t.mode = modeForm
	t.formErr = ""
	values := []int{t.opts.MinOccurrence, t.opts.MaxOccurrence, t.opts.Size, t.opts.SentencesPerCard}
	for i, v := range values {
		t.inputs[i].SetValue(strconv.Itoa(v))
	}
	return t.setInputIndex(0)
}

func (t *flashcardTab) setInputIndex(idx int) tea.Cmd {
	count := len(t.inputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	t.inputIndex = idx
	var cmd tea.Cmd
	for i := range t.inputs {
		if i == t.inputIndex {
			cmd = t.inputs[i].Focus()
		} else {
			t.inputs[i].Blur()
		}
	}
	return cmd
}

func (t *flashcardTab) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		t.mode = modeHistory
		t.formErr = ""
		return nil
	case tea.KeyEnter:
		opts, err := t.parseForm()
		if err != nil {
			t.formErr = err.Error()
			return nil
		}
		t.opts = opts
		t.mode = modeGenerating
		t.formErr = ""
		t.errMsg = ""
		return tea.Batch(t.spinner.Tick, t.generateCmd(opts))
	case tea.KeyTab, tea.KeyDown:
		return t.setInputIndex(t.inputIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return t.setInputIndex(t.inputIndex - 1)
	}
	var cmd tea.Cmd
	t.inputs[t.inputIndex], cmd = t.inputs[t.inputIndex].Update(msg)
	return cmd
}

func (t *flashcardTab) parseForm() (model.DeckOptions, error) {
	names := []string{"min occurrence", "max occurrence", "deck size", "sentences per card"}
	values := make([]int, len(t.inputs))
	for i, input := range t.inputs {
		raw := strings.TrimSpace(input.Value())
		v, err := strconv.Atoi(raw)
		if err != nil {
			return model.DeckOptions{}, fmt.Errorf("invalid %s (use a whole number)", names[i])
		}
		values[i] = v
	}
	opts := t.opts
	opts.MinOccurrence = values[fieldMin]
	opts.MaxOccurrence = values[fieldMax]
	opts.Size = values[fieldSize]
	opts.SentencesPerCard = values[fieldSentences]
	return flashcard.NormalizeOptions(opts)
}

func (t *flashcardTab) finishGenerate(msg deckGeneratedMsg) tea.Cmd {
	if msg.err != nil {
		t.errMsg = fmt.Sprintf("failed to generate deck: %v", msg.err)
		if errors.Is(msg.err, flashcard.ErrNoDefinitions) && t.providerErr != nil {
			t.errMsg = fmt.Sprintf("failed to generate deck: %v", t.providerErr)
		}
	}
	if len(msg.result.Cards) == 0 {
		t.mode = modeHistory
		return t.loadDecksCmd()
	}
	t.startReview(msg.result.Deck, msg.result.Cards)
	return t.loadDecksCmd()
}

func (t *flashcardTab) startReview(deck model.Deck, cards []model.Flashcard) {
	t.deck = deck
	t.review = flashcard.NewReview(cards)
	t.mode = modeReview
}

func (t *flashcardTab) updateReview(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		t.mode = modeHistory
		t.review = nil
		return t.loadDecksCmd()
	case " ", "enter":
		if t.review.Done() {
			t.mode = modeHistory
			t.review = nil
			return nil
		}
		t.review.Reveal()
	case "k":
		if t.review.Revealed() {
			t.review.Know()
		}
	case "d":
		if t.review.Revealed() {
			t.review.DontKnow()
		}
	}
	return nil
}

func (t *flashcardTab) help() string {
	if !t.available() {
		return ""
	}
	switch t.mode {
	case modeForm:
		return "tab/shift+tab: next field  enter: generate  esc: cancel"
	case modeGenerating:
		return "Generating deck..."
	case modeReview:
		if t.review != nil && t.review.Revealed() {
			return "k: I know  d: I don't know  esc: back"
		}
		return "space: show definition  esc: back"
	default:
		return "Select: up/down  Open: enter  New deck: n  Reload: r"
	}
}

func (t *flashcardTab) view() string {
	if !t.available() {
		return "Deck storage is unavailable."
	}
	var body string
	switch t.mode {
	case modeForm:
		body = t.viewForm()
	case modeGenerating:
		body = t.spinner.View() + " Generating deck..."
	case modeReview:
		body = t.viewReview()
	default:
		body = t.viewHistory()
	}
	if t.errMsg != "" {
		body = errorStyle.Render(truncateLine(t.errMsg, t.width)) + "\n\n" + body
	}
	return body
}

func (t *flashcardTab) viewHistory() string {
	lines := []string{titleStyle.Render("Deck History")}
	if len(t.decks) == 0 {
		lines = append(lines, mutedStyle.Render("No decks yet. Press n to create one."))
		return strings.Join(lines, "\n")
	}
	for i, deck := range t.decks {
		line := fmt.Sprintf("%s - %s", deck.Name, deck.CreatedAt.Local().Format(time.DateTime))
		if i == t.cursor {
			lines = append(lines, emphasisStyle.Render("> "+line))
		} else {
			lines = append(lines, mutedStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func (t *flashcardTab) viewForm() string {
	lines := []string{titleStyle.Render("New Deck")}
	for _, input := range t.inputs {
		lines = append(lines, input.View())
	}
	if t.providerErr != nil {
		lines = append(lines, "", headerStyle.Render(t.providerErr.Error()))
	}
	if t.formErr != "" {
		lines = append(lines, errorStyle.Render(t.formErr))
	}
	return strings.Join(lines, "\n")
}

func (t *flashcardTab) viewReview() string {
	if t.review == nil || t.review.Done() {
		return titleStyle.Render(t.deck.Name) + "\n\n" + "All cards reviewed. Press enter to return."
	}
	card, _ := t.review.Current()
	pos, total := t.review.Position()
	width := modalInnerWidth(t.width)
	content := []string{
		headerStyle.Render(fmt.Sprintf("Card %d of %d", pos, total)),
		"",
		titleStyle.Render(card.Front),
	}
	if card.Sentence != "" {
		sentence := textstat.EmphasizeWord(card.Sentence, card.Front, emphasize)
		content = append(content, "", sentenceStyle.Width(width).Render(sentence))
	}
	if t.review.Revealed() {
		content = append(content, "", lipgloss.NewStyle().Width(width).Render(strings.TrimSpace(card.Back)))
	}
	box := cardStyle.Width(modalWidth(t.width)).Render(strings.Join(content, "\n"))
	return titleStyle.Render(t.deck.Name) + "\n" + box
}
