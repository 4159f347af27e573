// ABOUTME: Fetches article summaries and lead images from a MediaWiki site
// ABOUTME: Scrapes the first content paragraph rather than using the API
package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound means the wiki has no article under the requested title
var ErrNotFound = errors.New("wiki article not found")

// Article is a scraped summary of one wiki page
type Article struct {
	Title    string
	Summary  string
	ImageURL string
	URL      string
}

// Client scrapes article pages from a wiki base URL
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the wiki at baseURL with a per-request timeout
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the article for a topic and extracts its first
// content paragraph and lead image. Spaces in the topic become
// underscores per wiki title convention.
func (c *Client) Lookup(ctx context.Context, topic string) (*Article, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("empty wiki topic")
	}

	title := strings.ReplaceAll(topic, " ", "_")
	pageURL := c.baseURL + "/wiki/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building wiki request: %w", err)
	}
	req.Header.Set("User-Agent", "lorekeeper/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching wiki page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", topic, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki returned status %d for %s", resp.StatusCode, topic)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing wiki page: %w", err)
	}

	article := &Article{Title: topic, URL: pageURL}

	doc.Find("div.mw-parser-output > p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := strings.TrimSpace(p.Text())
		if text == "" {
			return true
		}
		article.Summary = text
		return false
	})
	if article.Summary == "" {
		return nil, fmt.Errorf("%s: no article text: %w", topic, ErrNotFound)
	}

	if src, ok := doc.Find("div.mw-parser-output img").First().Attr("src"); ok {
		article.ImageURL = c.absoluteURL(src)
	}
	return article, nil
}

// absoluteURL resolves protocol-relative and path-relative image links
func (c *Client) absoluteURL(src string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return c.baseURL + src
	default:
		return src
	}
}
