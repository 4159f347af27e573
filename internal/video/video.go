// ABOUTME: Searches YouTube for walkthrough videos on a game topic
// ABOUTME: Wraps the Data API v3 search endpoint behind a small client
package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrNotConfigured means no API key is set; callers degrade instead of retrying
var ErrNotConfigured = errors.New("video search is not configured")

const defaultMaxResults = 3

// Video is one search hit
type Video struct {
	Title   string
	Channel string
	URL     string
}

// Searcher finds walkthrough videos. The query is themed to the game
// so a bare topic like "Fire Temple" still searches the right corpus.
type Searcher struct {
	apiKey     string
	queryTheme string
	maxResults int64

	// newService is swapped in tests
	newService func(ctx context.Context) (*youtube.Service, error)
}

// NewSearcher creates a searcher using the given API key. An empty key
// produces a searcher whose calls fail fast with ErrNotConfigured.
func NewSearcher(apiKey string) *Searcher {
	s := &Searcher{
		apiKey:     apiKey,
		queryTheme: "Tears of the Kingdom %s walkthrough guide",
		maxResults: defaultMaxResults,
	}
	s.newService = func(ctx context.Context) (*youtube.Service, error) {
		return youtube.NewService(ctx, option.WithAPIKey(s.apiKey))
	}
	return s
}

// FindWalkthroughs searches for walkthrough videos on a topic
func (s *Searcher) FindWalkthroughs(ctx context.Context, topic string) ([]Video, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("empty video search topic")
	}

	svc, err := s.newService(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}

	query := fmt.Sprintf(s.queryTheme, topic)
	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(s.maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("searching videos for %q: %w", topic, err)
	}

	var out []Video
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		out = append(out, Video{
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
			URL:     "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		})
	}
	return out, nil
}

// FormatList renders search hits as a numbered list for the agent
func FormatList(topic string, videos []Video) string {
	if len(videos) == 0 {
		return fmt.Sprintf("I could not find any walkthrough videos for %s.", topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are some walkthrough videos for %s:", topic)
	for i, v := range videos {
		fmt.Fprintf(&b, "\n%d. %s (%s): %s", i+1, v.Title, v.Channel, v.URL)
	}
	return b.String()
}
