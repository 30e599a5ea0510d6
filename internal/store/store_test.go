package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/lexideck/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "lexideck.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}

func TestListDecksNewestFirst(t *testing.T) {
	st := openTestStore(t)
	st.now = fixedClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		deck, err := st.CreateDeck(ctx, name)
		if err != nil {
			t.Fatalf("create deck: %v", err)
		}
		if deck.ID == "" {
			t.Fatalf("expected generated id")
		}
		ids = append(ids, deck.ID)
	}

	decks, err := st.ListDecks(ctx)
	if err != nil {
		t.Fatalf("list decks: %v", err)
	}
	if len(decks) != 3 {
		t.Fatalf("expected 3 decks, got %d", len(decks))
	}
	if decks[0].ID != ids[2] || decks[2].ID != ids[0] {
		t.Fatalf("expected newest first, got %v", decks)
	}
	if decks[0].Name != "third" {
		t.Fatalf("unexpected name %q", decks[0].Name)
	}
	if !decks[1].CreatedAt.Equal(time.Date(2024, 1, 1, 12, 0, 1, 0, time.UTC)) {
		t.Fatalf("unexpected created_at %v", decks[1].CreatedAt)
	}
}

func TestListDecksSameTimestampUsesInsertOrder(t *testing.T) {
	st := openTestStore(t)
	st.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	ctx := context.Background()
	a, _ := st.CreateDeck(ctx, "a")
	b, _ := st.CreateDeck(ctx, "b")
	decks, err := st.ListDecks(ctx)
	if err != nil {
		t.Fatalf("list decks: %v", err)
	}
	if decks[0].ID != b.ID || decks[1].ID != a.ID {
		t.Fatalf("expected later insert first, got %v", decks)
	}
}

func TestFlashcardsOldestFirst(t *testing.T) {
	st := openTestStore(t)
	st.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Millisecond)
	ctx := context.Background()

	deck, err := st.CreateDeck(ctx, "deck")
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	other, err := st.CreateDeck(ctx, "other")
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	fronts := []string{"alpha", "beta", "gamma"}
	for _, front := range fronts {
		card, err := st.SaveFlashcard(ctx, model.Flashcard{
			DeckID:   deck.ID,
			Front:    front,
			Back:     "  definition of " + front + "\n",
			Sentence: "The " + front + " sentence",
		})
		if err != nil {
			t.Fatalf("save flashcard: %v", err)
		}
		if card.ID == "" || card.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamp, got %+v", card)
		}
	}
	if _, err := st.SaveFlashcard(ctx, model.Flashcard{DeckID: other.ID, Front: "x"}); err != nil {
		t.Fatalf("save flashcard: %v", err)
	}

	cards, err := st.ListFlashcards(ctx, deck.ID)
	if err != nil {
		t.Fatalf("list flashcards: %v", err)
	}
	if len(cards) != len(fronts) {
		t.Fatalf("expected %d cards, got %d", len(fronts), len(cards))
	}
	for i, front := range fronts {
		if cards[i].Front != front {
			t.Fatalf("expected %q at %d, got %q", front, i, cards[i].Front)
		}
		if cards[i].DeckID != deck.ID {
			t.Fatalf("unexpected deck id %q", cards[i].DeckID)
		}
	}
	if cards[0].Back != "  definition of alpha\n" {
		t.Fatalf("expected back stored untransformed, got %q", cards[0].Back)
	}
}

func TestSaveFlashcardUnknownDeck(t *testing.T) {
	st := openTestStore(t)
	_, err := st.SaveFlashcard(context.Background(), model.Flashcard{DeckID: "missing", Front: "a"})
	if !errors.Is(err, ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestGetDeck(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	deck, err := st.CreateDeck(ctx, "deck")
	if err != nil {
		t.Fatalf("create deck: %v", err)
	}
	got, err := st.GetDeck(ctx, deck.ID)
	if err != nil {
		t.Fatalf("get deck: %v", err)
	}
	if got.Name != "deck" || !got.CreatedAt.Equal(deck.CreatedAt) {
		t.Fatalf("unexpected deck %+v", got)
	}
	if _, err := st.GetDeck(ctx, "nope"); !errors.Is(err, ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestListFlashcardsEmptyDeck(t *testing.T) {
	st := openTestStore(t)
	cards, err := st.ListFlashcards(context.Background(), "none")
	if err != nil {
		t.Fatalf("list flashcards: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected no cards, got %d", len(cards))
	}
}
