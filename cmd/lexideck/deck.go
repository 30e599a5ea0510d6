package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lexideck/internal/definition"
	"github.com/verte-zerg/lexideck/internal/flashcard"
	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/report"
	"github.com/verte-zerg/lexideck/internal/store"
	"github.com/verte-zerg/lexideck/internal/textstat"
)

var (
	deckMin         int
	deckMax         int
	deckSize        int
	deckSentences   int
	deckConcurrency int
	deckProvider    string
	deckModel       string
)

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Generate, list and review flashcard decks",
	}
	cmd.AddCommand(newDeckGenerateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List decks, newest first",
		Args:  cobra.NoArgs,
		RunE:  runDeckListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <deck-id>",
		Short: "Print the cards of a deck",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeckShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "review <deck-id>",
		Short: "Review a deck in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeckReviewCmd,
	})
	return cmd
}

func newDeckGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [file.txt]",
		Short: "Create a deck from the words of a text",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDeckGenerateCmd,
	}
	cmd.Flags().IntVar(&deckMin, "min", 1, "minimum occurrences of a word")
	cmd.Flags().IntVar(&deckMax, "max", 0, "maximum occurrences of a word (0 = most frequent word)")
	cmd.Flags().IntVar(&deckSize, "size", defaultDeckSize, "cards per deck")
	cmd.Flags().IntVar(&deckSentences, "sentences", defaultSentences, "example sentences per card (1-3)")
	cmd.Flags().IntVar(&deckConcurrency, "concurrency", flashcard.DefaultConcurrency, "definitions requested at once")
	cmd.Flags().StringVar(&deckProvider, "provider", definition.ProviderGemini, "definition provider (gemini or openai)")
	cmd.Flags().StringVar(&deckModel, "model", "", "provider model (default depends on provider)")
	return cmd
}

func runDeckGenerateCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStoreConfig(cmd, fileCfg)
	applyIntConfig(cmd, "min", &deckMin, fileCfg.Deck.Min)
	applyIntConfig(cmd, "max", &deckMax, fileCfg.Deck.Max)
	applyIntConfig(cmd, "size", &deckSize, fileCfg.Deck.Size)
	applyIntConfig(cmd, "sentences", &deckSentences, fileCfg.Deck.Sentences)
	applyIntConfig(cmd, "concurrency", &deckConcurrency, fileCfg.Deck.Concurrency)
	applyStringConfig(cmd, "provider", &deckProvider, fileCfg.Definition.Provider)
	applyStringConfig(cmd, "model", &deckModel, fileCfg.Definition.Model)

	if err := validateDeckFlags(); err != nil {
		return err
	}
	text, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	freqs := textstat.Analyze(text)
	opts := model.DeckOptions{
		MinOccurrence:    deckMin,
		MaxOccurrence:    deckMax,
		Size:             deckSize,
		SentencesPerCard: deckSentences,
		Concurrency:      deckConcurrency,
	}
	if opts.MaxOccurrence == 0 {
		opts.MaxOccurrence = freqs.MaxCount()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	provider, err := definition.New(ctx, model.DefinitionConfig{Provider: deckProvider, Model: deckModel})
	if err != nil {
		return fmt.Errorf("failed to create definition provider: %w", err)
	}
	defer closeProvider(provider)

	st, err := openStore(ctx, model.StoreConfig{Driver: storeDriver, DSN: storeDSN})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close deck store: %v\n", cerr)
		}
	}()

	logErrln("Generating deck...")
	builder := &flashcard.Builder{Store: st, Definitions: provider}
	result, genErr := builder.Generate(ctx, text, freqs, opts)
	if errors.Is(genErr, flashcard.ErrNoWords) {
		return fmt.Errorf("no words occur between %d and %d times", opts.MinOccurrence, opts.MaxOccurrence)
	}
	if result.Deck.ID != "" {
		if err := report.WriteFlashcards(cmd.OutOrStdout(), result.Deck, result.Cards); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "\nDeck id: %s\n", result.Deck.ID); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if genErr != nil {
		return fmt.Errorf("failed to generate deck: %w", genErr)
	}
	return nil
}

func validateDeckFlags() error {
	if deckMin < 1 {
		return fmt.Errorf("--min must be >= 1")
	}
	if deckMax < 0 {
		return fmt.Errorf("--max must be >= 0")
	}
	if deckMax > 0 && deckMax < deckMin {
		return fmt.Errorf("--max must be >= --min")
	}
	if deckSize <= 0 {
		return fmt.Errorf("--size must be > 0")
	}
	if deckSentences < flashcard.MinSentencesPerCard || deckSentences > flashcard.MaxSentencesPerCard {
		return fmt.Errorf("--sentences must be between %d and %d", flashcard.MinSentencesPerCard, flashcard.MaxSentencesPerCard)
	}
	if deckConcurrency <= 0 {
		return fmt.Errorf("--concurrency must be > 0")
	}
	return nil
}

func withStore(cmd *cobra.Command, fn func(context.Context, deckStore) error) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStoreConfig(cmd, fileCfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx, model.StoreConfig{Driver: storeDriver, DSN: storeDSN})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close deck store: %v\n", cerr)
		}
	}()
	return fn(ctx, st)
}

func runDeckListCmd(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st deckStore) error {
		decks, err := st.ListDecks(ctx)
		if err != nil {
			return fmt.Errorf("failed to list decks: %w", err)
		}
		if err := report.WriteDecks(cmd.OutOrStdout(), decks); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runDeckShowCmd(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st deckStore) error {
		deck, cards, err := loadDeck(ctx, st, args[0])
		if err != nil {
			return err
		}
		if err := report.WriteFlashcards(cmd.OutOrStdout(), deck, cards); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runDeckReviewCmd(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st deckStore) error {
		deck, cards, err := loadDeck(ctx, st, args[0])
		if err != nil {
			return err
		}
		return reviewDeck(cmd.InOrStdin(), cmd.OutOrStdout(), deck, cards)
	})
}

func loadDeck(ctx context.Context, st deckStore, id string) (model.Deck, []model.Flashcard, error) {
	deck, err := st.GetDeck(ctx, id)
	if errors.Is(err, store.ErrDeckNotFound) {
		return model.Deck{}, nil, fmt.Errorf("deck %q not found (see: lexideck deck list)", id)
	}
	if err != nil {
		return model.Deck{}, nil, fmt.Errorf("failed to load deck: %w", err)
	}
	cards, err := st.ListFlashcards(ctx, deck.ID)
	if err != nil {
		return model.Deck{}, nil, fmt.Errorf("failed to load flashcards: %w", err)
	}
	return deck, cards, nil
}

// reviewDeck runs a line-based review: enter reveals the definition, then
// k keeps the card out of the session and d brings it back later.
func reviewDeck(in io.Reader, out io.Writer, deck model.Deck, cards []model.Flashcard) error {
	review := flashcard.NewReview(cards)
	scanner := bufio.NewScanner(in)
	var writeErr error
	prompt := func(format string, args ...any) (string, bool) {
		if _, writeErr = fmt.Fprintf(out, format, args...); writeErr != nil {
			return "", false
		}
		if !scanner.Scan() {
			return "", false
		}
		return strings.ToLower(strings.TrimSpace(scanner.Text())), true
	}

	if _, err := fmt.Fprintf(out, "%s (%d cards)\n", deck.Name, len(cards)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for !review.Done() {
		card, _ := review.Current()
		pos, total := review.Position()
		header := fmt.Sprintf("\nCard %d of %d\n%s\n", pos, total, card.Front)
		if card.Sentence != "" {
			header += fmt.Sprintf("%q\n", card.Sentence)
		}
		answer, ok := prompt("%s[enter] show definition, [q] quit: ", header)
		if !ok || answer == "q" {
			return reviewErr(writeErr, scanner.Err())
		}
		review.Reveal()
		for review.Revealed() {
			answer, ok = prompt("%s\n[k] I know, [d] I don't know, [q] quit: ", strings.TrimSpace(card.Back))
			if !ok || answer == "q" {
				return reviewErr(writeErr, scanner.Err())
			}
			switch answer {
			case "k":
				review.Know()
			case "d":
				review.DontKnow()
			}
		}
	}
	if _, err := fmt.Fprintln(out, "\nAll cards reviewed."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func reviewErr(writeErr, scanErr error) error {
	if writeErr != nil {
		return fmt.Errorf("failed to write output: %w", writeErr)
	}
	if scanErr != nil {
		return fmt.Errorf("failed to read answer: %w", scanErr)
	}
	return nil
}
