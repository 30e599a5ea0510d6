package pgstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/store"
)

func connectTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("LEXIDECK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LEXIDECK_TEST_DATABASE_URL not set")
	}
	st, err := Connect(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestStoreRoundTrip_Integration(t *testing.T) {
	st := connectTestStore(t)
	ctx := context.Background()

	deck, err := st.CreateDeck(ctx, "integration deck")
	require.NoError(t, err)
	require.NotEmpty(t, deck.ID)
	t.Cleanup(func() {
		_, _ = st.pool.Exec(context.Background(), `DELETE FROM decks WHERE id = $1`, deck.ID)
	})

	for _, front := range []string{"one", "two", "three"} {
		_, err := st.SaveFlashcard(ctx, model.Flashcard{DeckID: deck.ID, Front: front, Back: "def " + front, Sentence: front + " here"})
		require.NoError(t, err)
	}

	cards, err := st.ListFlashcards(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "one", cards[0].Front)
	assert.Equal(t, "three", cards[2].Front)

	got, err := st.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "integration deck", got.Name)

	decks, err := st.ListDecks(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, decks)
	for i := 1; i < len(decks); i++ {
		assert.False(t, decks[i].CreatedAt.After(decks[i-1].CreatedAt), "decks must be newest first")
	}
}

func TestSaveFlashcardUnknownDeck_Integration(t *testing.T) {
	st := connectTestStore(t)
	_, err := st.SaveFlashcard(context.Background(), model.Flashcard{DeckID: "00000000-0000-0000-0000-000000000000", Front: "x"})
	assert.True(t, errors.Is(err, store.ErrDeckNotFound))
}

func TestInvalidDeckIDs(t *testing.T) {
	st := &Store{}
	_, err := st.GetDeck(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	_, err = st.SaveFlashcard(context.Background(), model.Flashcard{DeckID: "not-a-uuid"})
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	cards, err := st.ListFlashcards(context.Background(), "not-a-uuid")
	assert.NoError(t, err)
	assert.Empty(t, cards)
	assert.NoError(t, st.Close())
}
