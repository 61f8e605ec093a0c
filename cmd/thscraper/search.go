package main

import (
	"github.com/spf13/cobra"

	"thscraper/pkg/models"
)

// searchCmd scrapes the articles matching a search phrase.
var searchCmd = &cobra.Command{
	Use:   "search <phrase>",
	Short: "Scrape articles matching a search phrase",
	Long: `Scrape articles matching a search phrase.

The phrase is slugified before use, so quoting a multi-word phrase works:
"solar power" and solar-power search the same index.`,
	Example: `  thscraper search "sustainable fashion" -n 25 --best`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(cmd, models.ModeSearch, args[0])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addScrapeFlags(searchCmd, true)
}
