// Package main provides the CLI entrypoint for lexideck.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lexideck/internal/config"
	"github.com/verte-zerg/lexideck/internal/definition"
	"github.com/verte-zerg/lexideck/internal/flashcard"
	"github.com/verte-zerg/lexideck/internal/model"
	"github.com/verte-zerg/lexideck/internal/report"
	"github.com/verte-zerg/lexideck/internal/textsource"
	"github.com/verte-zerg/lexideck/internal/textstat"
	"github.com/verte-zerg/lexideck/internal/tui"
)

const (
	defaultSort        = "count"
	defaultOrder       = "desc"
	defaultDeckSize    = 10
	defaultSentences   = 1
	defaultStoreDriver = driverSQLite
)

// stdinIsTerminal reports whether stdin is interactive; piped text is read
// only when it is not.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var (
	inputText   string
	verbose     bool
	storeDriver string
	storeDSN    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "lexideck [file.txt]",
		Short:             "Word frequencies, example sentences and flashcards for a text",
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&inputText, "text", "", "text to analyze instead of a file or stdin")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug details to stderr")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", defaultStoreDriver, "deck store driver (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&storeDSN, "dsn", "", "deck store location (SQLite path or PostgreSQL URL)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newExamplesCmd())
	rootCmd.AddCommand(newHighlightCmd())
	rootCmd.AddCommand(newDeckCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		logErrf("%v\n", err)
	}
	setupLogging(cmd.ErrOrStderr(), verbose)
	return nil
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func readInput(cmd *cobra.Command, args []string) (string, bool, error) {
	src := textsource.Source{
		Text:       inputText,
		Stdin:      cmd.InOrStdin(),
		StdinIsTTY: stdinIsTerminal(),
	}
	if len(args) > 0 {
		src.Path = args[0]
	}
	text, err := textsource.Read(src)
	if errors.Is(err, textsource.ErrNoInput) {
		return "", false, fmt.Errorf("no input: pass a .txt file, --text, or pipe text on stdin")
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}
	fromStdin := src.Path == "" && src.Text == ""
	return text, fromStdin, nil
}

func runTUICmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStoreConfig(cmd, fileCfg)
	analyzeCfg := model.AnalyzeConfig{PageSize: report.DefaultPageSize, Sort: defaultSort, Order: defaultOrder}
	applyAnalyzeFileConfig(&analyzeCfg, fileCfg.Analyze)

	text, fromStdin, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	freqs := textstat.Analyze(text)
	deckOpts := flashcard.DefaultOptions(freqs)
	applyDeckFileConfig(&deckOpts, fileCfg.Deck)

	logFile, err := redirectLogs()
	if err != nil {
		return err
	}
	defer func() {
		if logFile == nil {
			return
		}
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}()

	ctx := context.Background()
	opts := tui.Options{
		Text:        text,
		Frequencies: freqs,
		Analyze:     analyzeCfg,
		Deck:        deckOpts,
		InputTTY:    fromStdin,
	}

	st, err := openStore(ctx, model.StoreConfig{Driver: storeDriver, DSN: storeDSN})
	if err != nil {
		logErrf("deck store unavailable: %v\n", err)
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close deck store: %v\n", cerr)
			}
		}()
		builder := &flashcard.Builder{Store: st}
		provider, err := definition.New(ctx, definitionFileConfig(fileCfg.Definition))
		if err != nil {
			opts.ProviderErr = err
		} else {
			defer closeProvider(provider)
			builder.Definitions = provider
		}
		opts.Builder = builder
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// redirectLogs sends slog records to a file while the TUI owns the terminal.
// Without --verbose records are dropped.
func redirectLogs() (*os.File, error) {
	if !verbose {
		setupLogging(io.Discard, false)
		return nil, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	setupLogging(file, true)
	return file, nil
}

func closeProvider(provider definition.Provider) {
	if err := provider.Close(); err != nil {
		logErrf("failed to close definition provider: %v\n", err)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStoreConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyStringConfig(cmd, "store", &storeDriver, fileCfg.Store.Driver)
	applyStringConfig(cmd, "dsn", &storeDSN, fileCfg.Store.DSN)
}

func applyAnalyzeFileConfig(cfg *model.AnalyzeConfig, fileCfg config.AnalyzeConfig) {
	if fileCfg.PageSize != nil {
		cfg.PageSize = *fileCfg.PageSize
	}
	if fileCfg.Sort != nil {
		cfg.Sort = *fileCfg.Sort
	}
	if fileCfg.Order != nil {
		cfg.Order = *fileCfg.Order
	}
}

func applyDeckFileConfig(opts *model.DeckOptions, fileCfg config.DeckConfig) {
	if fileCfg.Min != nil {
		opts.MinOccurrence = *fileCfg.Min
	}
	if fileCfg.Max != nil && *fileCfg.Max > 0 {
		opts.MaxOccurrence = *fileCfg.Max
	}
	if fileCfg.Size != nil {
		opts.Size = *fileCfg.Size
	}
	if fileCfg.Sentences != nil {
		opts.SentencesPerCard = *fileCfg.Sentences
	}
	if fileCfg.Concurrency != nil {
		opts.Concurrency = *fileCfg.Concurrency
	}
}

func definitionFileConfig(fileCfg config.DefinitionConfig) model.DefinitionConfig {
	var cfg model.DefinitionConfig
	if fileCfg.Provider != nil {
		cfg.Provider = *fileCfg.Provider
	}
	if fileCfg.Model != nil {
		cfg.Model = *fileCfg.Model
	}
	return cfg
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lexideck configuration
# Uncomment a value to enable it. CLI flags override config values.
# API keys are read from GEMINI_API_KEY / OPENAI_API_KEY (a .env file in the
# working directory is loaded when present).

[analyze]
# page-size = %d          # Rows per page: 50, 100, 250, 500 or 1000
# sort = %q           # count or word
# order = %q           # asc or desc

[deck]
# min = 1                 # Minimum occurrences of a word
# max = 0                 # Maximum occurrences (0 = most frequent word)
# size = %d               # Cards per deck
# sentences = %d           # Example sentences per card (1-3)
# concurrency = %d         # Definitions requested at once

[definition]
# provider = %q      # gemini or openai
# model = %q  # Provider model name

[store]
# driver = %q        # sqlite or postgres
# dsn = ""                # SQLite path or PostgreSQL URL (default %s)
`,
		report.DefaultPageSize,
		defaultSort,
		defaultOrder,
		defaultDeckSize,
		defaultSentences,
		flashcard.DefaultConcurrency,
		definition.ProviderGemini,
		definition.DefaultGeminiModel,
		defaultStoreDriver,
		config.DefaultDBPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
