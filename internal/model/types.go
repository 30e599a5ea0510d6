// Package model defines shared data structures.
package model

import "time"

// Deck is a named set of flashcards.
type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Flashcard pairs a word with its definition and an example sentence.
type Flashcard struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Sentence  string    `json:"sentence"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckOptions controls which words become flashcards.
type DeckOptions struct {
	MinOccurrence    int
	MaxOccurrence    int
	Size             int
	SentencesPerCard int
	Concurrency      int
}

// AnalyzeConfig defines frequency table presentation settings.
type AnalyzeConfig struct {
	PageSize int
	Sort     string
	Order    string
}

// DefinitionConfig selects the definition provider.
type DefinitionConfig struct {
	Provider string
	Model    string
	APIKey   string
}

// StoreConfig selects the deck store backend.
type StoreConfig struct {
	Driver string
	DSN    string
}
