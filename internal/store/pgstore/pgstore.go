// Package pgstore provides PostgreSQL persistence of flashcard decks, e.g. a
// hosted Supabase database.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/store"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS decks (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id UUID PRIMARY KEY,
		seq BIGSERIAL,
		deck_id UUID NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
		front TEXT NOT NULL,
		back TEXT NOT NULL,
		sentence TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_deck_id ON flashcards(deck_id, created_at)`,
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and applies migrations.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return nil
}

// CreateDeck inserts a deck and returns it with its generated id.
func (s *Store) CreateDeck(ctx context.Context, name string) (model.Deck, error) {
	deck := model.Deck{Name: name}
	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO decks (id, name) VALUES ($1, $2) RETURNING id, created_at`,
		uuid.New(), name,
	).Scan(&id, &deck.CreatedAt)
	if err != nil {
		return model.Deck{}, fmt.Errorf("failed to create deck: %w", err)
	}
	deck.ID = id.String()
	slog.Debug("created deck", "id", deck.ID, "name", name)
	return deck, nil
}

// GetDeck returns a deck by id.
func (s *Store) GetDeck(ctx context.Context, id string) (model.Deck, error) {
	deckID, err := uuid.Parse(id)
	if err != nil {
		return model.Deck{}, fmt.Errorf("%w: %s", store.ErrDeckNotFound, id)
	}
	var deck model.Deck
	var gotID uuid.UUID
	err = s.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM decks WHERE id = $1`, deckID,
	).Scan(&gotID, &deck.Name, &deck.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Deck{}, fmt.Errorf("%w: %s", store.ErrDeckNotFound, id)
	}
	if err != nil {
		return model.Deck{}, fmt.Errorf("failed to get deck: %w", err)
	}
	deck.ID = gotID.String()
	return deck, nil
}

// ListDecks returns all decks, newest first.
func (s *Store) ListDecks(ctx context.Context) ([]model.Deck, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM decks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	var decks []model.Deck
	for rows.Next() {
		var deck model.Deck
		var id uuid.UUID
		if err := rows.Scan(&id, &deck.Name, &deck.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		deck.ID = id.String()
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}
	return decks, nil
}

// SaveFlashcard stores a card as given.
func (s *Store) SaveFlashcard(ctx context.Context, card model.Flashcard) (model.Flashcard, error) {
	deckID, err := uuid.Parse(card.DeckID)
	if err != nil {
		return model.Flashcard{}, fmt.Errorf("%w: %s", store.ErrDeckNotFound, card.DeckID)
	}
	id := uuid.New()
	err = s.pool.QueryRow(ctx,
		`INSERT INTO flashcards (id, deck_id, front, back, sentence)
		 SELECT $1, id, $3, $4, $5 FROM decks WHERE id = $2
		 RETURNING created_at`,
		id, deckID, card.Front, card.Back, card.Sentence,
	).Scan(&card.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Flashcard{}, fmt.Errorf("%w: %s", store.ErrDeckNotFound, card.DeckID)
	}
	if err != nil {
		return model.Flashcard{}, fmt.Errorf("failed to save flashcard: %w", err)
	}
	card.ID = id.String()
	return card, nil
}

// ListFlashcards returns the cards of a deck, oldest first.
func (s *Store) ListFlashcards(ctx context.Context, deckID string) ([]model.Flashcard, error) {
	id, err := uuid.Parse(deckID)
	if err != nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, deck_id, front, back, sentence, created_at
		 FROM flashcards
		 WHERE deck_id = $1
		 ORDER BY created_at ASC, seq ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	defer rows.Close()

	var cards []model.Flashcard
	for rows.Next() {
		var card model.Flashcard
		var cardID, cardDeckID uuid.UUID
		if err := rows.Scan(&cardID, &cardDeckID, &card.Front, &card.Back, &card.Sentence, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard: %w", err)
		}
		card.ID = cardID.String()
		card.DeckID = cardDeckID.String()
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate flashcards: %w", err)
	}
	return cards, nil
}
