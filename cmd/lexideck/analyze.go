package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lexideck/internal/report"
	"github.com/verte-zerg/lexideck/internal/textstat"
	"github.com/verte-zerg/lexideck/internal/tui"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var (
	analyzeSort     string
	analyzeOrder    string
	analyzePage     int
	analyzePageSize int
	analyzeJSON     bool

	examplesLimit int

	highlightColor string
	highlightWidth int
)

type analyzeOutput struct {
	TotalWords  int                      `json:"total_words"`
	UniqueWords int                      `json:"unique_words"`
	Words       []textstat.WordFrequency `json:"words"`
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file.txt]",
		Short: "Print the word frequency table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeSort, "sort", defaultSort, "sort column (count or word)")
	cmd.Flags().StringVar(&analyzeOrder, "order", defaultOrder, "sort order (asc or desc)")
	cmd.Flags().IntVar(&analyzePage, "page", 1, "page to print")
	cmd.Flags().IntVar(&analyzePageSize, "page-size", report.DefaultPageSize, "rows per page (50, 100, 250, 500, 1000)")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false, "print every entry as JSON")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "sort", &analyzeSort, fileCfg.Analyze.Sort)
	applyStringConfig(cmd, "order", &analyzeOrder, fileCfg.Analyze.Order)
	applyIntConfig(cmd, "page-size", &analyzePageSize, fileCfg.Analyze.PageSize)

	key, err := textstat.ParseSortKey(analyzeSort)
	if err != nil {
		return fmt.Errorf("invalid --sort: %w", err)
	}
	order, err := textstat.ParseSortOrder(analyzeOrder)
	if err != nil {
		return fmt.Errorf("invalid --order: %w", err)
	}
	if !report.ValidPageSize(analyzePageSize) {
		return fmt.Errorf("--page-size must be one of %v", report.PageSizes)
	}
	if analyzePage < 1 {
		return fmt.Errorf("--page must be >= 1")
	}

	text, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	freqs := textstat.Analyze(text)
	items := freqs.Sorted(key, order)
	out := cmd.OutOrStdout()

	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analyzeOutput{TotalWords: freqs.Total(), UniqueWords: freqs.Unique(), Words: items}); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := report.WriteSummary(out, freqs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if freqs.Empty() {
		return nil
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.WriteFrequencyTable(out, report.Paginate(items, analyzePage, analyzePageSize)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples <word> [file.txt]",
		Short: "Print sentences that use a word",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runExamplesCmd,
	}
	cmd.Flags().IntVar(&examplesLimit, "limit", textstat.DisplayExampleLimit, "maximum sentences (0 = all)")
	return cmd
}

func runExamplesCmd(cmd *cobra.Command, args []string) error {
	if examplesLimit < 0 {
		return fmt.Errorf("--limit must be >= 0")
	}
	text, _, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}
	word := args[0]
	sentences := textstat.ExampleSentences(text, word, examplesLimit)
	if err := report.WriteExamples(cmd.OutOrStdout(), word, sentences); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHighlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight [file.txt]",
		Short: "Print the text with words shaded by frequency",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHighlightCmd,
	}
	cmd.Flags().StringVar(&highlightColor, "color", colorAuto, "colour output (auto, always, never)")
	cmd.Flags().IntVar(&highlightWidth, "width", 0, "wrap width (0 = terminal width, no wrapping when piped)")
	return cmd
}

func runHighlightCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	renderer := lipgloss.NewRenderer(out)
	switch highlightColor {
	case colorAuto:
	case colorAlways:
		renderer.SetColorProfile(termenv.TrueColor)
	case colorNever:
		renderer.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("--color must be %s, %s or %s", colorAuto, colorAlways, colorNever)
	}
	if highlightWidth < 0 {
		return fmt.Errorf("--width must be >= 0")
	}

	text, _, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	width := highlightWidth
	if width == 0 && out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}
	freqs := textstat.Analyze(text)
	rendered := tui.HighlightedText(renderer, text, textstat.HighlightSpans(text, freqs), width)
	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
