package main

import (
	"github.com/spf13/cobra"

	"thscraper/pkg/models"
)

// listsCmd scrapes the articles related to a list article.
var listsCmd = &cobra.Command{
	Use:   "lists <uid>",
	Short: "Scrape articles related to a list article",
	Long: `Scrape articles related to a list article.

Like trends, the list page is fetched first to resolve the identifiers
that key its related-articles index, but the list itself never appears in
the results.`,
	Example: `  thscraper lists top-100-eco-trends -n 30`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(cmd, models.ModeLists, args[0])
	},
}

func init() {
	rootCmd.AddCommand(listsCmd)
	addScrapeFlags(listsCmd, false)
}
