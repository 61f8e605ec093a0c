package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"thscraper/pkg/config"
	"thscraper/pkg/logger"
	"thscraper/pkg/models"
	"thscraper/pkg/output"
	"thscraper/pkg/scraper"
)

var (
	// Scrape command flags, shared by all index subcommands
	numLinks    int
	chunkSize   int
	concurrency int
	proxyURL    string
	timeout     time.Duration
	rateLimit   float64
	format      string
	outputDir   string
	pixels      string
	best        bool
)

// addScrapeFlags registers the query and output flags on an index
// subcommand. The best variant only exists on the page-type indexes.
func addScrapeFlags(cmd *cobra.Command, withBest bool) {
	cmd.Flags().IntVarP(&numLinks, "number", "n", 50, "number of articles to scrape")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 100, "articles fetched per chunk")
	cmd.Flags().IntVar(&concurrency, "concurrency", 5, "concurrent fetches within a chunk")
	cmd.Flags().StringVar(&proxyURL, "proxy", "", "proxy URL for outbound requests")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "max requests per second (0 = unlimited)")
	cmd.Flags().StringVar(&format, "format", config.FormatConsole, "output format (console, deck)")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for slide deck output")
	cmd.Flags().StringVar(&pixels, "pixels", "300x300", "thumbnail bound as WIDTHxHEIGHT")
	if withBest {
		cmd.Flags().BoolVar(&best, "best", false, "rank by the best algorithm instead of recency")
	}
}

// setup loads the configuration, applies flag overrides, and installs the
// logger. Shared by every subcommand.
func setup(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetLogger(log)

	return cfg, log, nil
}

// applyFlags folds explicitly-set command line flags over the loaded
// configuration. Unset flags leave file and environment values alone.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("number") {
		cfg.Scrape.N = numLinks
	}
	if flags.Changed("chunk-size") {
		cfg.Scrape.ChunkSize = chunkSize
	}
	if flags.Changed("concurrency") {
		cfg.Scrape.Concurrency = concurrency
	}
	if flags.Changed("proxy") {
		cfg.HTTP.Proxy = proxyURL
	}
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit.RequestsPerSecond = rateLimit
	}
	if flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Changed("output-dir") {
		cfg.Output.Directory = outputDir
	}
	if flags.Changed("pixels") {
		w, h, err := parsePixels(pixels)
		if err != nil {
			return err
		}
		cfg.Output.MaxWidth = w
		cfg.Output.MaxHeight = h
	}
	if rootCmd.PersistentFlags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	return cfg.Validate()
}

// parsePixels parses a WIDTHxHEIGHT bound such as "300x300".
func parsePixels(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid pixel bound %q, expected WIDTHxHEIGHT", s)
	}

	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pixel width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pixel height %q", parts[1])
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("pixel bound must be positive, got %dx%d", w, h)
	}

	return w, h, nil
}

// buildQuery assembles a query for one uid, taking defaults from the
// effective configuration.
func buildQuery(cfg *config.Config, mode models.Mode, rawUID string) models.Query {
	return models.Query{
		UID:         slug.Make(rawUID),
		Mode:        mode,
		N:           cfg.Scrape.N,
		ChunkSize:   cfg.Scrape.ChunkSize,
		Concurrency: cfg.Scrape.Concurrency,
		Best:        best && mode.SupportsBest(),
	}
}

// runMode is the shared RunE body for the four index subcommands.
func runMode(cmd *cobra.Command, mode models.Mode, rawUID string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	s, err := scraper.New(cfg)
	if err != nil {
		return err
	}

	query := buildQuery(cfg, mode, rawUID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	articles, summary, err := s.Run(ctx, query)
	if err != nil {
		log.WithError(err).WithField("uid", query.UID).Error("scrape failed")
		return err
	}

	return writeOutput(cfg, log, query.UID, articles, summary)
}

// writeOutput renders the run results. The console table is always
// printed; deck format additionally writes a .pptx file named after the
// uid.
func writeOutput(cfg *config.Config, log logger.Logger, deckUID string, articles []models.Article, summary models.Summary) error {
	if strings.ToLower(cfg.Output.Format) == config.FormatDeck {
		path := output.DeckPath(cfg.Output.Directory, deckUID)
		if err := output.WriteDeck(path, deckUID, articles); err != nil {
			return err
		}
		log.InfoWithFields("slide deck written", map[string]interface{}{
			"path":   path,
			"slides": len(articles) + 1,
		})
	}

	return output.Console(os.Stdout, articles, summary)
}
