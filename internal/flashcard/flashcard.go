// Package flashcard builds flashcard decks from analyzed text and runs
// review sessions over them.
package flashcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

// Limits on sentences per card.
const (
	MinSentencesPerCard = 1
	MaxSentencesPerCard = 3
)

// DefaultConcurrency is the number of definitions requested at once.
const DefaultConcurrency = 4

var (
	// ErrNoWords is returned when no word falls within the occurrence range.
	ErrNoWords = errors.New("no words match the occurrence range")
	// ErrNoDefinitions is returned when the builder has no definition provider.
	ErrNoDefinitions = errors.New("no definition provider configured")
)

// DeckStore persists decks and their cards.
type DeckStore interface {
	CreateDeck(ctx context.Context, name string) (model.Deck, error)
	GetDeck(ctx context.Context, id string) (model.Deck, error)
	ListDecks(ctx context.Context) ([]model.Deck, error)
	SaveFlashcard(ctx context.Context, card model.Flashcard) (model.Flashcard, error)
	ListFlashcards(ctx context.Context, deckID string) ([]model.Flashcard, error)
}

// DefinitionProvider returns the definition of a word in context.
type DefinitionProvider interface {
	Define(ctx context.Context, word, sentence string) (string, error)
}

// Result is the outcome of a deck generation. Cards holds only cards that
// were persisted.
type Result struct {
	Deck  model.Deck
	Cards []model.Flashcard
}

// Builder generates decks.
type Builder struct {
	Store       DeckStore
	Definitions DefinitionProvider
	Now         func() time.Time
}

// DefaultOptions returns the deck options used when nothing is configured.
func DefaultOptions(freqs textstat.Frequencies) model.DeckOptions {
	return model.DeckOptions{
		MinOccurrence:    1,
		MaxOccurrence:    freqs.MaxCount(),
		Size:             10,
		SentencesPerCard: 1,
		Concurrency:      DefaultConcurrency,
	}
}

// NormalizeOptions validates opts and clamps sentences per card to the
// supported range.
func NormalizeOptions(opts model.DeckOptions) (model.DeckOptions, error) {
	if opts.Size <= 0 {
		return opts, fmt.Errorf("deck size must be > 0")
	}
	if opts.MinOccurrence < 1 {
		return opts, fmt.Errorf("min occurrence must be >= 1")
	}
	if opts.MaxOccurrence > 0 && opts.MaxOccurrence < opts.MinOccurrence {
		return opts, fmt.Errorf("max occurrence must be >= min occurrence")
	}
	opts.SentencesPerCard = min(max(opts.SentencesPerCard, MinSentencesPerCard), MaxSentencesPerCard)
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return opts, nil
}

// Select returns the words that become cards: ranked entries within the
// occurrence range, truncated to the deck size.
func Select(freqs textstat.Frequencies, opts model.DeckOptions) []textstat.WordFrequency {
	words := freqs.Filter(opts.MinOccurrence, opts.MaxOccurrence)
	if opts.Size > 0 && len(words) > opts.Size {
		words = words[:opts.Size]
	}
	return words
}

// DeckName returns the name given to a deck created at t.
func DeckName(t time.Time) string {
	return "Deck_" + t.UTC().Format(time.RFC3339)
}

// Generate creates a deck for text and fills it with one card per selected
// word. Definitions are fetched concurrently; cards are saved in rank order
// and a card is only reported once its save succeeded. On failure the
// partial result is returned alongside the error.
func (b *Builder) Generate(ctx context.Context, text string, freqs textstat.Frequencies, opts model.DeckOptions) (Result, error) {
	opts, err := NormalizeOptions(opts)
	if err != nil {
		return Result{}, err
	}
	if b.Definitions == nil {
		return Result{}, ErrNoDefinitions
	}
	words := Select(freqs, opts)
	if len(words) == 0 {
		return Result{}, ErrNoWords
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	deck, err := b.Store.CreateDeck(ctx, DeckName(now()))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create deck: %w", err)
	}
	slog.Info("generating deck", "deck", deck.ID, "words", len(words))

	sentences := make([]string, len(words))
	for i, wf := range words {
		if examples := textstat.ExampleSentences(text, wf.Word, opts.SentencesPerCard); len(examples) > 0 {
			sentences[i] = examples[0]
		}
	}

	definitions := make([]string, len(words))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, wf := range words {
		g.Go(func() error {
			def, err := b.Definitions.Define(gctx, wf.Word, sentences[i])
			if err != nil {
				return fmt.Errorf("failed to define %q: %w", wf.Word, err)
			}
			definitions[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("definition request failed", "deck", deck.ID, "error", err)
		return Result{Deck: deck}, err
	}

	result := Result{Deck: deck, Cards: make([]model.Flashcard, 0, len(words))}
	for i, wf := range words {
		card, err := b.Store.SaveFlashcard(ctx, model.Flashcard{
			DeckID:   deck.ID,
			Front:    wf.Word,
			Back:     definitions[i],
			Sentence: sentences[i],
		})
		if err != nil {
			slog.Error("failed to save flashcard", "deck", deck.ID, "word", wf.Word, "error", err)
			return result, fmt.Errorf("failed to save flashcard %q: %w", wf.Word, err)
		}
		result.Cards = append(result.Cards, card)
	}
	slog.Info("deck generated", "deck", deck.ID, "cards", len(result.Cards))
	return result, nil
}
