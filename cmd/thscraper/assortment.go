package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"thscraper/pkg/config"
	"thscraper/pkg/models"
	"thscraper/pkg/scraper"
)

// assortmentDeckUID names the combined deck written for a mixed run.
const assortmentDeckUID = "assortment"

// assortmentCmd runs several queries in one invocation with a shared dedup
// scope, so an article reachable through two queries appears once.
var assortmentCmd = &cobra.Command{
	Use:   "assortment <uid:mode[:n[:chunk]]>...",
	Short: "Scrape several indexes in one deduplicated run",
	Long: `Scrape several indexes in one run.

Each argument is an item of the form uid:mode[:n[:chunk]] where mode is
one of trends, lists, categories or search. Items omitting n or chunk use
the configured defaults. All items share one dedup scope, so an article
discovered by an earlier item is skipped by later ones.

A failed item is logged and skipped; the run fails only when no item
produced any articles.`,
	Example: `  # A category plus a related search, fifty articles total per item
  thscraper assortment food:categories "solar power:search:20"

  # Override n and chunk size per item
  thscraper assortment eco-living:trends:10:5 ai:search:30`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAssortment,
}

func init() {
	rootCmd.AddCommand(assortmentCmd)
	addScrapeFlags(assortmentCmd, true)
}

func runAssortment(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	queries := make([]models.Query, 0, len(args))
	for _, arg := range args {
		query, err := parseAssortmentItem(cfg, arg)
		if err != nil {
			return err
		}
		queries = append(queries, query)
	}

	s, err := scraper.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	articles, summary, err := s.RunAssortment(ctx, queries)
	if err != nil {
		log.WithError(err).Error("assortment failed")
		return err
	}

	return writeOutput(cfg, log, assortmentDeckUID, articles, summary)
}

// parseAssortmentItem parses one uid:mode[:n[:chunk]] argument into a
// query, taking defaults from the effective configuration.
func parseAssortmentItem(cfg *config.Config, arg string) (models.Query, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return models.Query{}, fmt.Errorf("invalid assortment item %q, expected uid:mode[:n[:chunk]]", arg)
	}

	uid := slug.Make(parts[0])
	if uid == "" {
		return models.Query{}, fmt.Errorf("invalid assortment item %q: empty uid", arg)
	}

	mode, err := models.ParseMode(parts[1])
	if err != nil {
		return models.Query{}, fmt.Errorf("invalid assortment item %q: %w", arg, err)
	}

	query := models.Query{
		UID:         uid,
		Mode:        mode,
		N:           cfg.Scrape.N,
		ChunkSize:   cfg.Scrape.ChunkSize,
		Concurrency: cfg.Scrape.Concurrency,
		Best:        best && mode.SupportsBest(),
	}

	if len(parts) >= 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil || n <= 0 {
			return models.Query{}, fmt.Errorf("invalid assortment item %q: n must be a positive integer", arg)
		}
		query.N = n
	}
	if len(parts) == 4 {
		chunk, err := strconv.Atoi(parts[3])
		if err != nil || chunk <= 0 {
			return models.Query{}, fmt.Errorf("invalid assortment item %q: chunk must be a positive integer", arg)
		}
		query.ChunkSize = chunk
	}

	return query, nil
}
