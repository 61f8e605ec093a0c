package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thscraper/pkg/models"
	"thscraper/pkg/trendhunter"
)

const indexPage = `
<html><body>
  <a class="thar" href="/trends/solar-lantern">
    <img data-src="https://cdn.trendhunter.com/thumbs/solar-lantern.jpeg">
    Solar Lantern
  </a>
  <a class="thar" href="/about-us">
    <img data-src="https://cdn.trendhunter.com/thumbs/about.jpeg">
  </a>
  <a class="thar" href="\/trends\/folding-kayak">
    <img data-src="https:\/\/cdn.trendhunter.com\/thumbs\/folding-kayak.jpeg">
  </a>
  <a class="thar" href="/trends/no-thumbnail"></a>
  <a href="/trends/wrong-class">
    <img data-src="https://cdn.trendhunter.com/thumbs/wrong.jpeg">
  </a>
</body></html>`

const articlePage = `
<html><body>
  <div class="th__article" data-eid="445566" data-cid="77">
    <h2 class="tha__title2"> Solar Lantern </h2>
    <img class="gal__mainImage" data-src="https://cdn.trendhunter.com/full/solar-lantern.jpeg">
    <div class="tha__articleText">
      A lantern that charges in daylight.
    </div>
  </div>
</body></html>`

func TestLinks(t *testing.T) {
	site := trendhunter.NewSite("")
	res := models.Resource{URL: "https://www.trendhunter.com/trends?act=lp&p=1", Content: []byte(indexPage)}

	links, err := Links(res, site)
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "https://www.trendhunter.com/trends/solar-lantern", links[0].URL)
	assert.Equal(t, "https://cdn.trendhunter.com/thumbs/solar-lantern.jpeg", links[0].ImageURL)
	assert.Equal(t, "solar-lantern", links[0].ID)

	// Escaped AJAX hrefs are cleaned before use.
	assert.Equal(t, "https://www.trendhunter.com/trends/folding-kayak", links[1].URL)
	assert.Equal(t, "https://cdn.trendhunter.com/thumbs/folding-kayak.jpeg", links[1].ImageURL)
	assert.Equal(t, "folding-kayak", links[1].ID)
}

func TestLinksDocumentOrder(t *testing.T) {
	site := trendhunter.NewSite("")
	var page string
	for i := 0; i < 5; i++ {
		page += fmt.Sprintf(
			`<a class="thar" href="/trends/article-%d"><img data-src="https://cdn/x%d.jpeg"></a>`, i, i)
	}

	links, err := Links(models.Resource{URL: "u", Content: []byte(page)}, site)
	require.NoError(t, err)
	require.Len(t, links, 5)
	for i, link := range links {
		assert.Equal(t, fmt.Sprintf("article-%d", i), link.ID)
	}
}

func TestLinksEmptyPage(t *testing.T) {
	links, err := Links(models.Resource{URL: "u", Content: []byte("<html></html>")}, trendhunter.NewSite(""))
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestArticle(t *testing.T) {
	d, err := Article(models.Resource{URL: "https://www.trendhunter.com/trends/solar-lantern", Content: []byte(articlePage)})
	require.NoError(t, err)

	assert.Equal(t, "Solar Lantern", d.Title)
	assert.Equal(t, "A lantern that charges in daylight.", d.Description)
	assert.Equal(t, "445566", d.EID)
	assert.Equal(t, "77", d.CID)
	assert.Equal(t, "https://cdn.trendhunter.com/full/solar-lantern.jpeg", d.ImageURL)
}

func TestArticleMissingStructure(t *testing.T) {
	_, err := Article(models.Resource{URL: "u", Content: []byte("<html><body><p>404</p></body></html>")})
	assert.Error(t, err)
}

func TestArticlePartialStructure(t *testing.T) {
	// Title alone is enough to keep the record.
	page := `<h2 class="tha__title2">Just a Title</h2>`
	d, err := Article(models.Resource{URL: "u", Content: []byte(page)})
	require.NoError(t, err)
	assert.Equal(t, "Just a Title", d.Title)
	assert.Empty(t, d.EID)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.trendhunter.com/trends/solar-lantern", "solar-lantern"},
		{"https://www.trendhunter.com/trends/solar-lantern/", "solar-lantern"},
		{"/trends/folding-kayak", "folding-kayak"},
		{"https://www.trendhunter.com/", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.url), tt.url)
	}
}
