package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"thscraper/pkg/models"
)

const maxTitleWidth = 48

// Console renders the aggregated articles as a table followed by the run
// summary.
func Console(w io.Writer, articles []models.Article, summary models.Summary) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"id", "title", "image", "url"})

	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		image := "-"
		if len(a.Image) > 0 {
			image = fmt.Sprintf("%dx%d", a.ImageWidth, a.ImageHeight)
		}
		rows = append(rows, []string{a.ID, truncate(a.Title, maxTitleWidth), image, a.URL})
	}
	table.Bulk(rows)
	table.Render()

	_, err := fmt.Fprintf(w, "\n%d articles (%s)\n", len(articles), summary)
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
