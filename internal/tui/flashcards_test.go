package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lexideck/internal/flashcard"
	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

type memStore struct {
	decks []model.Deck
	cards []model.Flashcard
}

func (m *memStore) CreateDeck(_ context.Context, name string) (model.Deck, error) {
	deck := model.Deck{ID: fmt.Sprintf("deck-%d", len(m.decks)+1), Name: name, CreatedAt: time.Now()}
	m.decks = append([]model.Deck{deck}, m.decks...)
	return deck, nil
}

func (m *memStore) GetDeck(_ context.Context, id string) (model.Deck, error) {
	for _, d := range m.decks {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Deck{}, errors.New("deck not found")
}

func (m *memStore) ListDecks(_ context.Context) ([]model.Deck, error) {
	return m.decks, nil
}

func (m *memStore) SaveFlashcard(_ context.Context, card model.Flashcard) (model.Flashcard, error) {
	card.ID = fmt.Sprintf("card-%d", len(m.cards)+1)
	m.cards = append(m.cards, card)
	return card, nil
}

func (m *memStore) ListFlashcards(_ context.Context, deckID string) ([]model.Flashcard, error) {
	var out []model.Flashcard
	for _, c := range m.cards {
		if c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out, nil
}

type echoDefinitions struct{}

func (echoDefinitions) Define(_ context.Context, word, _ string) (string, error) {
	return "meaning of " + word, nil
}

func newTestFlashcardTab(st *memStore, defs flashcard.DefinitionProvider, providerErr error) *flashcardTab {
	freqs := textstat.Analyze(modelText)
	opts := flashcard.DefaultOptions(freqs)
	tab := newFlashcardTab(&flashcard.Builder{Store: st, Definitions: defs}, providerErr, modelText, freqs, opts)
	tab.width = 100
	tab.height = 30
	return tab
}

func TestFlashcardGenerateAndReview(t *testing.T) {
	st := &memStore{}
	tab := newTestFlashcardTab(st, echoDefinitions{}, nil)
	tab.update(tab.init()())

	tab.update(runeKey("n"))
	if tab.mode != modeForm {
		t.Fatalf("expected form mode, got %d", tab.mode)
	}
	if tab.inputs[fieldMax].Value() != "2" || tab.inputs[fieldSize].Value() != "10" {
		t.Fatalf("unexpected defaults %q %q", tab.inputs[fieldMax].Value(), tab.inputs[fieldSize].Value())
	}
	tab.inputs[fieldMin].SetValue("2")
	opts, err := tab.parseForm()
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}

	tab.update(tab.generateCmd(opts)())
	if tab.mode != modeReview {
		t.Fatalf("expected review mode, got %d", tab.mode)
	}
	if pos, total := tab.review.Position(); pos != 1 || total != 2 {
		t.Fatalf("expected card 1 of 2, got %d of %d", pos, total)
	}
	if !strings.Contains(tab.view(), "Card 1 of 2") {
		t.Fatalf("expected card position in view")
	}

	tab.update(runeKey("k"))
	if _, total := tab.review.Position(); total != 2 {
		t.Fatalf("expected know to require a revealed card")
	}
	tab.update(tea.KeyMsg{Type: tea.KeySpace})
	if !tab.review.Revealed() {
		t.Fatalf("expected space to reveal")
	}
	if !strings.Contains(tab.view(), "meaning of cat") {
		t.Fatalf("expected definition after reveal")
	}
	tab.update(runeKey("d"))
	card, _ := tab.review.Current()
	if card.Front != "the" {
		t.Fatalf("expected next card the, got %q", card.Front)
	}
	tab.update(tea.KeyMsg{Type: tea.KeySpace})
	tab.update(runeKey("k"))
	tab.update(tea.KeyMsg{Type: tea.KeySpace})
	tab.update(runeKey("k"))
	if !tab.review.Done() {
		t.Fatalf("expected review complete")
	}
	if !strings.Contains(tab.view(), "All cards reviewed") {
		t.Fatalf("expected completion notice")
	}
}

func TestFlashcardHistoryOpensDeck(t *testing.T) {
	st := &memStore{}
	deck, _ := st.CreateDeck(context.Background(), "Deck_a")
	if _, err := st.SaveFlashcard(context.Background(), model.Flashcard{DeckID: deck.ID, Front: "cat", Back: "feline"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	tab := newTestFlashcardTab(st, echoDefinitions{}, nil)
	tab.update(tab.init()())
	if !strings.Contains(tab.view(), "Deck_a") {
		t.Fatalf("expected deck in history")
	}
	cmd := tab.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected load command")
	}
	tab.update(cmd())
	if tab.mode != modeReview || tab.deck.ID != deck.ID {
		t.Fatalf("expected review of %s", deck.ID)
	}
	tab.update(tea.KeyMsg{Type: tea.KeyEsc})
	if tab.mode != modeHistory {
		t.Fatalf("expected history after esc")
	}
}

func TestFlashcardFormValidation(t *testing.T) {
	tab := newTestFlashcardTab(&memStore{}, echoDefinitions{}, nil)
	tab.update(runeKey("n"))
	tab.inputs[fieldSize].SetValue("0")
	tab.update(tea.KeyMsg{Type: tea.KeyEnter})
	if tab.mode != modeForm || !strings.Contains(tab.formErr, "deck size") {
		t.Fatalf("expected deck size error, got mode %d err %q", tab.mode, tab.formErr)
	}
	tab.update(tea.KeyMsg{Type: tea.KeyEsc})
	if tab.mode != modeHistory {
		t.Fatalf("expected esc to leave the form")
	}
}

func TestFlashcardMissingProvider(t *testing.T) {
	st := &memStore{}
	tab := newTestFlashcardTab(st, nil, errors.New("api key is required: set GEMINI_API_KEY"))
	tab.update(tab.generateCmd(tab.opts)())
	if tab.mode != modeHistory {
		t.Fatalf("expected history mode, got %d", tab.mode)
	}
	if !strings.Contains(tab.errMsg, "GEMINI_API_KEY") {
		t.Fatalf("expected provider error, got %q", tab.errMsg)
	}
	if len(st.decks) != 0 {
		t.Fatalf("expected no deck created")
	}
}
