package models

import (
	"fmt"
	"strings"
)

// Mode selects which TrendHunter index a query paginates.
type Mode string

const (
	ModeTrends     Mode = "trends"
	ModeLists      Mode = "lists"
	ModeCategories Mode = "categories"
	ModeSearch     Mode = "search"
)

// ParseMode converts a subcommand or assortment-item string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTrends:
		return ModeTrends, nil
	case ModeLists:
		return ModeLists, nil
	case ModeCategories:
		return ModeCategories, nil
	case ModeSearch:
		return ModeSearch, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// SupportsBest reports whether the mode accepts the alternate "best"
// ranking parameter. Only the page-type indexes expose it.
func (m Mode) SupportsBest() bool {
	return m == ModeCategories || m == ModeSearch
}

// Query drives one pagination run. Immutable once constructed.
type Query struct {
	UID         string
	Mode        Mode
	N           int
	ChunkSize   int
	Concurrency int
	Best        bool
}

// Validate checks the query bounds before a run starts.
func (q Query) Validate() error {
	if q.UID == "" {
		return fmt.Errorf("query uid is required")
	}
	if q.N <= 0 {
		return fmt.Errorf("query n must be positive, got %d", q.N)
	}
	if q.ChunkSize <= 0 {
		return fmt.Errorf("query chunk size must be positive, got %d", q.ChunkSize)
	}
	if q.Concurrency <= 0 {
		return fmt.Errorf("query concurrency must be positive, got %d", q.Concurrency)
	}
	if q.Best && !q.Mode.SupportsBest() {
		return fmt.Errorf("mode %q does not support the best-algorithm variant", q.Mode)
	}
	return nil
}

// LinkCandidate is an article link extracted from an index page.
// ID is the URL slug and is the uniqueness key across a run.
type LinkCandidate struct {
	URL      string
	ImageURL string
	ID       string
}

// Resource is a fetched HTTP payload together with its source URL.
type Resource struct {
	URL     string
	Content []byte
}

// Article is the processed record for a single article page. Image fields
// are populated only when a thumbnail was fetched and resized.
type Article struct {
	ID          string
	URL         string
	Title       string
	Description string
	EID         string
	CID         string
	ImageURL    string
	Image       []byte
	ImageWidth  int
	ImageHeight int
}

// Summary reports per-run counters for the skipped/failed tally surfaced
// at the end of a run.
type Summary struct {
	Collected int
	Processed int
	Failed    int
	Exhausted bool
}

func (s Summary) String() string {
	return fmt.Sprintf("collected=%d processed=%d failed=%d exhausted=%t",
		s.Collected, s.Processed, s.Failed, s.Exhausted)
}
