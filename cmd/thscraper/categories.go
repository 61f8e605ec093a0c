package main

import (
	"github.com/spf13/cobra"

	"thscraper/pkg/models"
)

// categoriesCmd scrapes the articles filed under a category.
var categoriesCmd = &cobra.Command{
	Use:   "categories <uid>",
	Short: "Scrape articles filed under a category",
	Example: `  # Latest articles in a category
  thscraper categories food

  # Top-ranked articles instead of latest
  thscraper categories food --best`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMode(cmd, models.ModeCategories, args[0])
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	addScrapeFlags(categoriesCmd, true)
}
