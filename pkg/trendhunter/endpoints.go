package trendhunter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"thscraper/pkg/models"
)

const (
	// BaseURL is the base URL for TrendHunter
	BaseURL = "https://www.trendhunter.com"

	// APIActionLoadPage is the AJAX action that returns an index page fragment
	APIActionLoadPage = "lp"

	// AJAXIncrement marks the request as an AJAX pagination call
	AJAXIncrement = "1"

	// BestParam is the alternate ranking variant on page-type indexes
	BestParam = "best"
)

// EmptySentinel is the body the AJAX endpoint returns once pagination runs
// past the last page.
var EmptySentinel = []byte(`{"success":true,"data":""}`)

// IsEmptySentinel reports whether an index response carries no content.
func IsEmptySentinel(body []byte) bool {
	return strings.Contains(string(body), string(EmptySentinel))
}

// Site builds TrendHunter URLs. The base is overridable so tests can point
// the scraper at a stub server.
type Site struct {
	Base string
}

// NewSite creates a Site for the given base URL, defaulting to production.
func NewSite(base string) Site {
	if base == "" {
		base = BaseURL
	}
	return Site{Base: strings.TrimRight(base, "/")}
}

// SeedURL is the plain article/list page fetched first for trends and lists
// queries; its metadata parameterizes the pagination iterator.
func (s Site) SeedURL(mode models.Mode, uid string) string {
	return fmt.Sprintf("%s/%s/%s", s.Base, mode, uid)
}

// ArticleURL resolves a possibly-relative article href against the site.
func (s Site) ArticleURL(href string) string {
	base, err := url.Parse(s.Base + "/")
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// PageURLs yields the index URL for each page of a pagination run.
type PageURLs interface {
	// URL returns the index URL for the given 1-based page.
	URL(page int) string
}

// ArticleIterator paginates related articles for trends and lists queries.
// The first page is keyed by the seed article's entity id, later pages by
// its category id.
type ArticleIterator struct {
	Site Site
	Mode models.Mode
	EID  string
	CID  string
}

func (it ArticleIterator) URL(page int) string {
	params := url.Values{}
	params.Set("act", APIActionLoadPage)
	params.Set("p", strconv.Itoa(page))
	params.Set("aj", AJAXIncrement)

	if page == 1 {
		params.Set("eid", it.EID)
	} else {
		params.Set("cid", it.CID)
	}

	return fmt.Sprintf("%s/%s?%s", it.Site.Base, it.Mode, params.Encode())
}

// PageTypeIterator paginates the categories and search indexes, which are
// served from the site root with the page type as a parameter.
type PageTypeIterator struct {
	Site Site
	Mode models.Mode
	UID  string
	Best bool
}

func (it PageTypeIterator) URL(page int) string {
	params := url.Values{}
	params.Set("act", APIActionLoadPage)
	params.Set("p", strconv.Itoa(page))
	params.Set("aj", AJAXIncrement)
	params.Set("pt", string(it.Mode))
	params.Set("v", it.UID)
	params.Set("t", string(models.ModeTrends))

	if it.Best {
		params.Set("s", BestParam)
	}

	return fmt.Sprintf("%s/?%s", it.Site.Base, params.Encode())
}
