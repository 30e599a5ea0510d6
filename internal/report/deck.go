package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/lexideck/internal/model"
)

// WriteExamples writes example sentences as a bulleted list.
func WriteExamples(w io.Writer, word string, sentences []string) error {
	if len(sentences) == 0 {
		_, err := fmt.Fprintf(w, "No examples of %q found.\n", word)
		return err
	}
	if _, err := fmt.Fprintf(w, "Examples of %q:\n", word); err != nil {
		return err
	}
	for _, s := range sentences {
		if _, err := fmt.Fprintf(w, "- %s\n", s); err != nil {
			return err
		}
	}
	return nil
}

// WriteDecks writes the deck history table.
func WriteDecks(w io.Writer, decks []model.Deck) error {
	if len(decks) == 0 {
		_, err := fmt.Fprintln(w, "No decks found.")
		return err
	}
	rows := make([][]string, 0, len(decks))
	for _, d := range decks {
		rows = append(rows, []string{d.ID, d.Name, d.CreatedAt.Local().Format(time.DateTime)})
	}
	for _, line := range formatTable([]string{"ID", "Name", "Created"}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteFlashcards writes every card of a deck.
func WriteFlashcards(w io.Writer, deck model.Deck, cards []model.Flashcard) error {
	if _, err := fmt.Fprintf(w, "%s (%d cards)\n", deck.Name, len(cards)); err != nil {
		return err
	}
	for i, c := range cards {
		if _, err := fmt.Fprintf(w, "\n%s. %s\n", strconv.Itoa(i+1), c.Front); err != nil {
			return err
		}
		if c.Sentence != "" {
			if _, err := fmt.Fprintf(w, "   %q\n", c.Sentence); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "   %s\n", c.Back); err != nil {
			return err
		}
	}
	return nil
}
