package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thscraper/pkg/models"
)

func TestConsoleRendersArticles(t *testing.T) {
	articles := []models.Article{
		{
			ID:          "solar-lantern",
			URL:         "https://www.trendhunter.com/trends/solar-lantern",
			Title:       "Solar Lantern",
			Image:       []byte{1, 2, 3},
			ImageWidth:  300,
			ImageHeight: 225,
		},
		{
			ID:    "vertical-farm",
			URL:   "https://www.trendhunter.com/trends/vertical-farm",
			Title: "Vertical Farm",
		},
	}
	summary := models.Summary{Collected: 2, Processed: 2}

	var buf bytes.Buffer
	err := Console(&buf, articles, summary)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "solar-lantern")
	assert.Contains(t, out, "Solar Lantern")
	assert.Contains(t, out, "300x225")
	assert.Contains(t, out, "https://www.trendhunter.com/trends/vertical-farm")
	assert.Contains(t, out, "2 articles")

	// Articles without an image show a placeholder.
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "vertical-farm") {
			assert.Contains(t, line, "-")
		}
	}
}

func TestConsoleTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("Sustainable Packaging ", 5)
	articles := []models.Article{
		{ID: "a", URL: "https://example.com/a", Title: long},
	}

	var buf bytes.Buffer
	err := Console(&buf, articles, models.Summary{Collected: 1, Processed: 1})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "...")
}

func TestConsoleEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Console(&buf, nil, models.Summary{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0 articles")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))
}
