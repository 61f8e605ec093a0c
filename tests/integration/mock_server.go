package integration

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// MockTrendHunterServer simulates the site's detail pages, AJAX index
// endpoint, and image host with realistic markup.
type MockTrendHunterServer struct {
	server *httptest.Server

	mu           sync.RWMutex
	indexPages   [][]string     // article slugs per AJAX index page
	seedCards    []string       // slugs embedded in seed pages for trends/lists
	detailStatus map[string]int // per-slug status override

	requestCount int32
}

// NewMockTrendHunterServer creates a started mock server. Call Close when
// done.
func NewMockTrendHunterServer() *MockTrendHunterServer {
	m := &MockTrendHunterServer{
		detailStatus: make(map[string]int),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// GetURL returns the mock server's base URL.
func (m *MockTrendHunterServer) GetURL() string {
	return m.server.URL
}

// Close shuts the server down.
func (m *MockTrendHunterServer) Close() {
	m.server.Close()
}

// RequestCount returns how many requests the server has seen.
func (m *MockTrendHunterServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// SetIndexPages installs the AJAX index content: one slice of article
// slugs per page. Pages past the end return the empty sentinel.
func (m *MockTrendHunterServer) SetIndexPages(pages ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexPages = pages
}

// SetSeedCards installs the article cards embedded in seed pages.
func (m *MockTrendHunterServer) SetSeedCards(slugs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedCards = slugs
}

// FailDetail makes one article's detail page return the given status.
func (m *MockTrendHunterServer) FailDetail(slug string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailStatus[slug] = status
}

func (m *MockTrendHunterServer) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	// Thumbnail host
	if strings.HasPrefix(r.URL.Path, "/img/") {
		w.Header().Set("Content-Type", "image/png")
		w.Write(testPNG(16, 12))
		return
	}

	// AJAX index endpoint
	if r.URL.Query().Get("act") == "lp" {
		m.handleIndex(w, r)
		return
	}

	// Article detail and seed pages
	m.handleDetail(w, r)
}

func (m *MockTrendHunterServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("p"))
	if err != nil || page < 1 {
		http.Error(w, "bad page", http.StatusBadRequest)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if page > len(m.indexPages) {
		fmt.Fprint(w, `{"success":true,"data":""}`)
		return
	}

	fmt.Fprint(w, m.indexFragment(m.indexPages[page-1]))
}

func (m *MockTrendHunterServer) handleDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	slug := parts[1]

	m.mu.RLock()
	status := m.detailStatus[slug]
	cards := m.seedCards
	m.mu.RUnlock()

	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	// Seed pages double as index pages, so every detail page embeds the
	// configured cards. Plain article pages just carry none.
	var sb strings.Builder
	sb.WriteString("<html><body>")
	fmt.Fprintf(&sb, `<div class="th__article" data-eid="e-%s" data-cid="c-%s">`, slug, slug)
	fmt.Fprintf(&sb, `<h2 class="tha__title2">Title of %s</h2>`, slug)
	fmt.Fprintf(&sb, `<div class="tha__articleText">Description of %s.</div>`, slug)
	fmt.Fprintf(&sb, `<img class="gal__mainImage" data-src="%s/img/%s.png"/>`, m.server.URL, slug)
	sb.WriteString(`</div>`)
	sb.WriteString(m.indexFragment(cards))
	sb.WriteString("</body></html>")

	fmt.Fprint(w, sb.String())
}

// indexFragment renders article cards the way the AJAX endpoint does,
// with backslash-escaped hrefs.
func (m *MockTrendHunterServer) indexFragment(slugs []string) string {
	var sb strings.Builder
	for _, slug := range slugs {
		fmt.Fprintf(&sb,
			`<a class="thar" href="\/trends\/%s"><img data-src="%s\/img\/%s.png"/></a>`,
			slug, strings.ReplaceAll(m.server.URL, "/", `\/`), slug)
	}
	return sb.String()
}

// testPNG encodes a small solid-ish PNG of the given size.
func testPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
