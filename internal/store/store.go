// Package store handles SQLite persistence of flashcard decks.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/lexideck/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrDeckNotFound is returned when a deck id does not exist.
var ErrDeckNotFound = errors.New("deck not found")

// Fixed-width timestamps keep lexical and chronological order identical.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for decks and flashcards.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS decks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS flashcards (
			id TEXT PRIMARY KEY,
			deck_id TEXT NOT NULL REFERENCES decks(id),
			front TEXT NOT NULL,
			back TEXT NOT NULL,
			sentence TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_decks_created_at ON decks(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_flashcards_deck_id ON flashcards(deck_id, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateDeck stores a new deck and returns it with its generated id.
func (s *Store) CreateDeck(ctx context.Context, name string) (model.Deck, error) {
	deck := model.Deck{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decks (id, name, created_at) VALUES (?, ?, ?)`,
		deck.ID, deck.Name, deck.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return model.Deck{}, err
	}
	return deck, nil
}

// GetDeck returns a deck by id.
func (s *Store) GetDeck(ctx context.Context, id string) (model.Deck, error) {
	var deck model.Deck
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM decks WHERE id = ?`, id,
	).Scan(&deck.ID, &deck.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Deck{}, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	if err != nil {
		return model.Deck{}, err
	}
	deck.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return model.Deck{}, err
	}
	return deck, nil
}

// ListDecks returns all decks, newest first.
func (s *Store) ListDecks(ctx context.Context) ([]model.Deck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM decks ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var decks []model.Deck
	for rows.Next() {
		var deck model.Deck
		var createdAt string
		if err := rows.Scan(&deck.ID, &deck.Name, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		deck.CreatedAt = parsed
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decks, nil
}

// SaveFlashcard stores a card in an existing deck. Front, back and sentence
// are stored as given.
func (s *Store) SaveFlashcard(ctx context.Context, card model.Flashcard) (saved model.Flashcard, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Flashcard{}, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM decks WHERE id = ?`, card.DeckID).Scan(&exists)
	if err != nil {
		return model.Flashcard{}, err
	}
	if exists == 0 {
		err = fmt.Errorf("%w: %s", ErrDeckNotFound, card.DeckID)
		return model.Flashcard{}, err
	}

	card.ID = uuid.NewString()
	card.CreatedAt = s.now().UTC()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO flashcards (id, deck_id, front, back, sentence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		card.ID, card.DeckID, card.Front, card.Back, card.Sentence, card.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return model.Flashcard{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.Flashcard{}, err
	}
	return card, nil
}

// ListFlashcards returns the cards of a deck, oldest first.
func (s *Store) ListFlashcards(ctx context.Context, deckID string) ([]model.Flashcard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, deck_id, front, back, sentence, created_at
		 FROM flashcards
		 WHERE deck_id = ?
		 ORDER BY created_at ASC, rowid ASC`, deckID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var cards []model.Flashcard
	for rows.Next() {
		var card model.Flashcard
		var createdAt string
		if err := rows.Scan(&card.ID, &card.DeckID, &card.Front, &card.Back, &card.Sentence, &createdAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		card.CreatedAt = parsed
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
