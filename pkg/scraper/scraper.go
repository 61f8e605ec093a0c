package scraper

import (
	"context"
	"fmt"

	"thscraper/pkg/config"
	errs "thscraper/pkg/errors"
	"thscraper/pkg/extract"
	"thscraper/pkg/images"
	"thscraper/pkg/logger"
	"thscraper/pkg/models"
	"thscraper/pkg/ratelimit"
	"thscraper/pkg/trendhunter"
)

// maxIndexPages caps pagination so a misparsed site cannot loop forever.
const maxIndexPages = 1000

// Scraper orchestrates a scrape run: collect links, dedup, process chunks,
// aggregate records.
type Scraper struct {
	client *trendhunter.Client
	site   trendhunter.Site
	config *config.Config
	bound  images.Bound
	logger logger.Logger
}

// New creates a Scraper from the loaded configuration.
func New(cfg *config.Config) (*Scraper, error) {
	log := logger.GetLogger()

	limiter := ratelimit.FromRate(cfg.RateLimit.RequestsPerSecond)

	client, err := trendhunter.NewClient(&cfg.HTTP, limiter, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Scraper{
		client: client,
		site:   trendhunter.NewSite(""),
		config: cfg,
		bound: images.Bound{
			MaxWidth:  cfg.Output.MaxWidth,
			MaxHeight: cfg.Output.MaxHeight,
		},
		logger: log,
	}, nil
}

// SetSite points the scraper at an alternate base URL. Used by tests to run
// against a stub server.
func (s *Scraper) SetSite(base string) {
	s.site = trendhunter.NewSite(base)
}

// SetLogger replaces the scraper's logger.
func (s *Scraper) SetLogger(log logger.Logger) {
	s.logger = log
}

// Run executes a single query: Init -> Collecting -> Processing ->
// Aggregating. The returned error is non-nil only for unrecoverable runs;
// partial failures are reported through the summary.
func (s *Scraper) Run(ctx context.Context, query models.Query) ([]models.Article, models.Summary, error) {
	return s.run(ctx, query, NewSeenSet())
}

// RunAssortment executes several queries sharing one dedup scope and one
// aggregated result list. A failed item does not stop the remaining items;
// the run is unrecoverable only if nothing at all was scraped.
func (s *Scraper) RunAssortment(ctx context.Context, queries []models.Query) ([]models.Article, models.Summary, error) {
	if len(queries) == 0 {
		return nil, models.Summary{}, errs.Unrecoverable("assortment requires at least one item")
	}

	seen := NewSeenSet()
	var all []models.Article
	var total models.Summary

	for _, query := range queries {
		articles, summary, err := s.run(ctx, query, seen)
		if err != nil {
			s.logger.ErrorWithFields("assortment item failed", map[string]interface{}{
				"uid":   query.UID,
				"mode":  string(query.Mode),
				"error": err.Error(),
			})
			continue
		}

		all = append(all, articles...)
		total.Collected += summary.Collected
		total.Processed += summary.Processed
		total.Failed += summary.Failed
		total.Exhausted = total.Exhausted || summary.Exhausted
	}

	if len(all) == 0 {
		return nil, total, errs.Unrecoverable("no articles scraped across any assortment item")
	}

	return all, total, nil
}

// run is the per-query state machine shared by Run and RunAssortment.
func (s *Scraper) run(ctx context.Context, query models.Query, seen *SeenSet) ([]models.Article, models.Summary, error) {
	var summary models.Summary

	// Init
	if err := query.Validate(); err != nil {
		return nil, summary, errs.Unrecoverable(err.Error())
	}

	s.logger.InfoWithFields("starting run", map[string]interface{}{
		"uid":         query.UID,
		"mode":        string(query.Mode),
		"n":           query.N,
		"chunk_size":  query.ChunkSize,
		"concurrency": query.Concurrency,
	})

	// Collecting
	candidates, exhausted, err := s.collectLinks(ctx, query, seen)
	if err != nil {
		return nil, summary, err
	}
	summary.Collected = len(candidates)
	summary.Exhausted = exhausted

	if exhausted {
		s.logger.WarnWithFields("pagination exhausted before n links found", map[string]interface{}{
			"uid":  query.UID,
			"want": query.N,
			"got":  len(candidates),
		})
	}

	// Processing: chunks run strictly sequentially so at most one chunk's
	// worth of requests and image buffers is alive at a time.
	var articles []models.Article
	for i, chunk := range chunkCandidates(candidates, query.ChunkSize) {
		s.logger.DebugWithFields("processing chunk", map[string]interface{}{
			"chunk": i,
			"size":  len(chunk),
		})

		processed, failed := s.processChunk(ctx, chunk, query.Concurrency)
		articles = append(articles, processed...)
		summary.Failed += failed
	}
	summary.Processed = len(articles)

	// Aggregating
	s.logger.InfoWithFields("run finished", map[string]interface{}{
		"uid":       query.UID,
		"processed": summary.Processed,
		"failed":    summary.Failed,
	})

	return articles, summary, nil
}

// collectLinks paginates the query's index until n unique candidates are
// gathered or pagination is exhausted. Every id passes through the shared
// SeenSet; rejects are discarded. Returns whether pagination ran out early.
func (s *Scraper) collectLinks(ctx context.Context, query models.Query, seen *SeenSet) ([]models.LinkCandidate, bool, error) {
	var collected []models.LinkCandidate

	pages, seedResource, err := s.preparePagination(ctx, query, seen, &collected)
	if err != nil {
		return nil, false, err
	}

	// The seed page doubles as the first index page for trends and lists.
	if seedResource != nil && len(collected) < query.N {
		s.appendNewLinks(*seedResource, seen, &collected, query.N)
	}

	for page := 1; len(collected) < query.N && page <= maxIndexPages; page++ {
		pageURL := pages.URL(page)

		body, err := s.client.Get(ctx, pageURL)
		if err != nil {
			if len(collected) == 0 {
				return nil, false, errs.Unrecoverable(
					fmt.Sprintf("no links collected: first index page failed: %v", err))
			}
			s.logger.WarnWithFields("index page failed, stopping pagination", map[string]interface{}{
				"page":  page,
				"error": err.Error(),
			})
			return collected, true, nil
		}

		if trendhunter.IsEmptySentinel(body) {
			return collected, len(collected) < query.N, nil
		}

		added := s.appendNewLinks(models.Resource{URL: pageURL, Content: body}, seen, &collected, query.N)
		if added == 0 {
			// A page with no new links means the index has ended.
			return collected, len(collected) < query.N, nil
		}
	}

	if len(collected) < query.N {
		return collected, true, nil
	}
	return collected, false, nil
}

// appendNewLinks extracts candidates from an index resource and appends the
// unseen ones until limit is reached, returning how many were added.
func (s *Scraper) appendNewLinks(res models.Resource, seen *SeenSet, collected *[]models.LinkCandidate, limit int) int {
	links, err := extract.Links(res, s.site)
	if err != nil {
		s.logger.WarnWithFields("failed to parse index page", map[string]interface{}{
			"url":   res.URL,
			"error": err.Error(),
		})
		return 0
	}

	added := 0
	for _, link := range links {
		if len(*collected) >= limit {
			break
		}
		if !seen.Register(link.ID) {
			continue
		}
		*collected = append(*collected, link)
		added++
	}

	return added
}

// preparePagination builds the page iterator for the query's mode. Trends
// and lists first fetch the seed page to read the eid/cid pair that keys
// the related-articles index; the seed article itself becomes the first
// candidate for trends when it carries an image.
func (s *Scraper) preparePagination(ctx context.Context, query models.Query, seen *SeenSet, collected *[]models.LinkCandidate) (trendhunter.PageURLs, *models.Resource, error) {
	switch query.Mode {
	case models.ModeTrends, models.ModeLists:
		seedURL := s.site.SeedURL(query.Mode, query.UID)

		body, err := s.client.Get(ctx, seedURL)
		if err != nil {
			return nil, nil, errs.Unrecoverable(
				fmt.Sprintf("failed to fetch seed page %q: %v", seedURL, err))
		}

		res := models.Resource{URL: seedURL, Content: body}
		detail, err := extract.Article(res)
		if err != nil {
			return nil, nil, errs.Unrecoverable(
				fmt.Sprintf("failed to parse seed page %q: %v", seedURL, err))
		}
		if detail.EID == "" || detail.CID == "" {
			return nil, nil, errs.Unrecoverable(
				fmt.Sprintf("seed page %q carries no metadata", seedURL))
		}

		if query.Mode == models.ModeTrends && detail.ImageURL != "" {
			id := extract.Slug(seedURL)
			if seen.Register(id) {
				*collected = append(*collected, models.LinkCandidate{
					URL:      seedURL,
					ImageURL: detail.ImageURL,
					ID:       id,
				})
			}
		}

		return trendhunter.ArticleIterator{
			Site: s.site,
			Mode: query.Mode,
			EID:  detail.EID,
			CID:  detail.CID,
		}, &res, nil

	default:
		return trendhunter.PageTypeIterator{
			Site: s.site,
			Mode: query.Mode,
			UID:  query.UID,
			Best: query.Best,
		}, nil, nil
	}
}
