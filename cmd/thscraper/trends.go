package main

import (
	"github.com/spf13/cobra"

	"thscraper/pkg/models"
)

// trendsCmd scrapes the articles related to a single trend article.
var trendsCmd = &cobra.Command{
	Use:   "trends <uid>",
	Short: "Scrape articles related to a trend article",
	Long: `Scrape articles related to a single trend article.

The trend article itself is fetched first to resolve the identifiers that
key its related-articles index, and it becomes the first result when it
carries an image.`,
	Example: `  # Twenty articles related to a trend
  thscraper trends eco-friendly-packaging -n 20

  # Render as a slide deck
  thscraper trends eco-friendly-packaging --format deck --output-dir ./decks`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(cmd, models.ModeTrends, args[0])
	},
}

func init() {
	rootCmd.AddCommand(trendsCmd)
	addScrapeFlags(trendsCmd, false)
}
