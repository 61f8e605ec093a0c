// Package extract pulls article links and detail fields out of TrendHunter
// markup. The selectors follow the site's index and detail page templates;
// AJAX index responses embed escaped hrefs, so backslashes are stripped
// before URLs are used.
package extract

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	errs "thscraper/pkg/errors"
	"thscraper/pkg/models"
	"thscraper/pkg/trendhunter"
)

// Detail holds the fields parsed from an article detail page.
type Detail struct {
	Title       string
	Description string
	EID         string
	CID         string
	ImageURL    string
}

// Empty reports whether nothing usable was parsed from the page.
func (d Detail) Empty() bool {
	return d.Title == "" && d.Description == "" && d.EID == "" && d.CID == ""
}

// Links extracts article link candidates from an index page, in document
// order. Only anchors that link into /trends/ and carry a thumbnail are
// article cards; everything else on the page is navigation.
func Links(res models.Resource, site trendhunter.Site) ([]models.LinkCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Content))
	if err != nil {
		return nil, errs.Parsing(res.URL, "unreadable index markup")
	}

	var links []models.LinkCandidate

	doc.Find("a.thar").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = unescape(href)
		if !strings.Contains(href, "/trends/") {
			return
		}

		img := sel.Find("img[data-src]").First()
		imageURL, ok := img.Attr("data-src")
		if !ok {
			return
		}

		articleURL := site.ArticleURL(href)
		links = append(links, models.LinkCandidate{
			URL:      articleURL,
			ImageURL: unescape(imageURL),
			ID:       Slug(articleURL),
		})
	})

	return links, nil
}

// Article parses the detail fields from an article page. A page where the
// title, description, and metadata are all missing is a parse failure.
func Article(res models.Resource) (Detail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Content))
	if err != nil {
		return Detail{}, errs.Parsing(res.URL, "unreadable article markup")
	}

	var d Detail

	d.Title = strings.TrimSpace(doc.Find("h2.tha__title2").First().Text())
	d.Description = strings.TrimSpace(doc.Find("div.tha__articleText").First().Text())

	meta := doc.Find("div.th__article[data-eid][data-cid]").First()
	d.EID, _ = meta.Attr("data-eid")
	d.CID, _ = meta.Attr("data-cid")

	if src, ok := doc.Find("img.gal__mainImage[data-src]").First().Attr("data-src"); ok {
		d.ImageURL = unescape(src)
	}

	if d.Empty() {
		return Detail{}, errs.Parsing(res.URL, "no title, description, or metadata")
	}

	return d, nil
}

// Slug returns the article identifier: the last path segment of its URL.
func Slug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		// Fall back to the raw string's last segment.
		parts := strings.Split(strings.TrimRight(rawURL, "/"), "/")
		return parts[len(parts)-1]
	}
	path := strings.TrimRight(u.Path, "/")
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}
