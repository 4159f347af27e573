// ABOUTME: Tests for the wiki scraper using a local test server
// ABOUTME: Covers paragraph extraction, image resolution, and error paths
package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<html><body>
<div class="mw-parser-output">
<p>   </p>
<p>The Bokoblin is a common monster found across Hyrule.</p>
<p>Second paragraph, should be ignored.</p>
<img src="/images/bokoblin.png">
</div>
</body></html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wiki/Bokoblin":
			w.Write([]byte(articleHTML))
		case "/wiki/Empty_Page":
			w.Write([]byte(`<html><body><div class="mw-parser-output"></div></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup_ExtractsFirstParagraph(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, 5*time.Second)

	a, err := c.Lookup(context.Background(), "Bokoblin")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if !strings.Contains(a.Summary, "common monster") {
		t.Errorf("Summary = %q", a.Summary)
	}
	if strings.Contains(a.Summary, "Second paragraph") {
		t.Error("Summary includes later paragraphs")
	}
	if a.ImageURL != srv.URL+"/images/bokoblin.png" {
		t.Errorf("ImageURL = %q", a.ImageURL)
	}
	if a.URL != srv.URL+"/wiki/Bokoblin" {
		t.Errorf("URL = %q", a.URL)
	}
}

func TestLookup_SpacesBecomeUnderscores(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, 5*time.Second)

	// "Empty Page" maps onto /wiki/Empty_Page, which exists but has no
	// prose; a page with text would not be reachable without the
	// underscore rewrite.
	_, err := c.Lookup(context.Background(), "Empty Page")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(Empty Page) error = %v, want ErrNotFound", err)
	}
}

func TestLookup_NotFound(t *testing.T) {
	srv := testServer(t)
	c := New(srv.URL, 5*time.Second)

	_, err := c.Lookup(context.Background(), "Missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(Missing) error = %v, want ErrNotFound", err)
	}
}

func TestLookup_EmptyTopic(t *testing.T) {
	c := New("http://unused.invalid", time.Second)
	if _, err := c.Lookup(context.Background(), "  "); err == nil {
		t.Error("Lookup(blank) should error without a request")
	}
}

func TestLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, time.Second)
	if _, err := c.Lookup(context.Background(), "Bokoblin"); err == nil {
		t.Error("Lookup() should surface non-200 responses")
	}
}

func TestAbsoluteURL(t *testing.T) {
	c := New("https://wiki.example.com", time.Second)

	cases := map[string]string{
		"//cdn.example.com/a.png":    "https://cdn.example.com/a.png",
		"/images/a.png":              "https://wiki.example.com/images/a.png",
		"https://other.com/full.png": "https://other.com/full.png",
	}
	for in, want := range cases {
		if got := c.absoluteURL(in); got != want {
			t.Errorf("absoluteURL(%q) = %q, want %q", in, got, want)
		}
	}
}
