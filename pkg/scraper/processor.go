package scraper

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"thscraper/pkg/extract"
	"thscraper/pkg/images"
	"thscraper/pkg/models"
)

// processChunk fetches and parses every candidate in the chunk with at most
// q.Concurrency requests in flight. A failed item is logged and dropped;
// siblings keep running. Results come back in the chunk's input order.
func (s *Scraper) processChunk(ctx context.Context, chunk []models.LinkCandidate, concurrency int) ([]models.Article, int) {
	results := make([]*models.Article, len(chunk))
	var failed int32

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i, link := range chunk {
		i, link := i, link
		g.Go(func() error {
			article, err := s.processLink(ctx, link)
			if err != nil {
				atomic.AddInt32(&failed, 1)
				s.logger.WarnWithFields("skipping article", map[string]interface{}{
					"id":    link.ID,
					"url":   link.URL,
					"error": err.Error(),
				})
				return nil
			}
			results[i] = article
			return nil
		})
	}

	// Join, then restore input order; completion order is unconstrained.
	_ = g.Wait()

	articles := make([]models.Article, 0, len(chunk))
	for _, r := range results {
		if r != nil {
			articles = append(articles, *r)
		}
	}

	return articles, int(failed)
}

// processLink fetches one article's detail page and thumbnail.
func (s *Scraper) processLink(ctx context.Context, link models.LinkCandidate) (*models.Article, error) {
	body, err := s.client.Get(ctx, link.URL)
	if err != nil {
		return nil, err
	}

	detail, err := extract.Article(models.Resource{URL: link.URL, Content: body})
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:          link.ID,
		URL:         link.URL,
		Title:       detail.Title,
		Description: detail.Description,
		EID:         detail.EID,
		CID:         detail.CID,
		ImageURL:    link.ImageURL,
	}

	// Index cards carry the thumbnail URL; seed pages only expose it on
	// the detail page.
	if article.ImageURL == "" {
		article.ImageURL = detail.ImageURL
	}

	if article.ImageURL != "" {
		data, err := s.client.Get(ctx, article.ImageURL)
		if err != nil {
			return nil, err
		}

		resized, err := images.Fit(data, s.bound)
		if err != nil {
			return nil, err
		}

		article.Image = resized.Data
		article.ImageWidth = resized.Width
		article.ImageHeight = resized.Height
	}

	return article, nil
}

// chunkCandidates splits candidates into batches of at most size elements.
func chunkCandidates(candidates []models.LinkCandidate, size int) [][]models.LinkCandidate {
	if size <= 0 || len(candidates) == 0 {
		return nil
	}

	chunks := make([][]models.LinkCandidate, 0, (len(candidates)+size-1)/size)
	for start := 0; start < len(candidates); start += size {
		end := start + size
		if end > len(candidates) {
			end = len(candidates)
		}
		chunks = append(chunks, candidates[start:end])
	}

	return chunks
}
