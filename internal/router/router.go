// ABOUTME: Routing policy deciding which knowledge source answers a query
// ABOUTME: Composes tagged responses; sources fall through on not-found
package router

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/harper/lorekeeper/internal/atlas"
	"github.com/harper/lorekeeper/internal/compendium"
	"github.com/harper/lorekeeper/internal/tags"
	"github.com/harper/lorekeeper/internal/video"
	"github.com/harper/lorekeeper/internal/wiki"
)

// In-character sentinel answers for degraded paths. The conversation
// continues on every failure; callers never see a raw error.
const (
	msgDeferWalkthrough = "You have the spirit of a true hero! Try to overcome this challenge on your own first. If you remain stuck, ask me again and I will find a guide for you."
	msgVideoUnavailable = "I am unable to search for walkthrough guides right now. Press on, hero."
	msgNoLocations      = "I could not find any matching locations on my maps."
	msgNoKnowledge      = "I could not find anything about that in my records."
)

// Retriever answers lore questions from the semantic index
type Retriever interface {
	Retrieve(ctx context.Context, query string) string
}

// EntityCatalog resolves named game entities
type EntityCatalog interface {
	Resolve(query string) *compendium.Entry
}

// WikiSource fetches article summaries for named subjects
type WikiSource interface {
	Lookup(ctx context.Context, topic string) (*wiki.Article, error)
}

// LocationIndex queries point locations by category, name, and region
type LocationIndex interface {
	ByCategory(category string, layer atlas.Layer) []atlas.Location
	ByCategoryAndName(category, name string, layer atlas.Layer) []atlas.Location
	ByRegion(category, regionName string) []atlas.Location
	ByName(name string) *atlas.Location
	RegionNames() []string
}

// MapRenderer draws locations onto a base map
type MapRenderer interface {
	Render(locations []atlas.Location, layer atlas.Layer, key string) (string, error)
}

// VideoSource searches for walkthrough videos
type VideoSource interface {
	FindWalkthroughs(ctx context.Context, topic string) ([]video.Video, error)
}

// Router owns the source-selection policy. Structured sources answer
// before free-text semantic search because they are higher precision
// for concrete entities and places. Any nil source is skipped.
type Router struct {
	retriever Retriever
	catalog   EntityCatalog
	wiki      WikiSource
	atlas     LocationIndex
	renderer  MapRenderer
	videos    VideoSource

	// defaultSession stands in when callers pass no session id, so
	// throttling still works per process.
	defaultSession string

	mu              sync.Mutex
	walkthroughAsks map[string]int
}

// New wires a router over its sources
func New(retriever Retriever, catalog EntityCatalog, wikiSrc WikiSource, locations LocationIndex, renderer MapRenderer, videos VideoSource) *Router {
	return &Router{
		retriever:       retriever,
		catalog:         catalog,
		wiki:            wikiSrc,
		atlas:           locations,
		renderer:        renderer,
		videos:          videos,
		defaultSession:  uuid.NewString(),
		walkthroughAsks: make(map[string]int),
	}
}

// Answer routes a free-form query to the right source and returns a
// tagged response.
func (r *Router) Answer(ctx context.Context, sessionID, query string) string {
	switch Classify(query) {
	case IntentWalkthrough:
		return r.FindWalkthrough(ctx, sessionID, Subject(query))
	case IntentWhere:
		region := r.regionIn(query)
		subject := Subject(query)
		if region != "" {
			subject = strings.ReplaceAll(subject, region, "")
			subject = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(subject), " in"))
		}
		return r.ShowLocations(ctx, subject, "", region, "")
	default:
		subject := Subject(query)
		if r.catalog != nil && r.catalog.Resolve(subject) != nil {
			return r.LookupEntity(ctx, subject)
		}
		return r.SearchLore(ctx, query)
	}
}

// SearchLore answers a lore or history question from the semantic index
func (r *Router) SearchLore(ctx context.Context, query string) string {
	if r.retriever == nil {
		return tags.Speak(msgNoKnowledge)
	}
	return tags.Speak(r.retriever.Retrieve(ctx, query))
}

// LookupEntity answers a question about a named subject. The wiki is
// consulted first for fresher prose, the compendium second; prose
// always precedes its image marker.
func (r *Router) LookupEntity(ctx context.Context, name string) string {
	if r.wiki != nil {
		article, err := r.wiki.Lookup(ctx, name)
		if err == nil {
			out := tags.Speak(article.Summary)
			if article.ImageURL != "" {
				out += tags.Image(article.ImageURL)
			}
			return out
		}
		if !errors.Is(err, wiki.ErrNotFound) {
			log.Printf("Wiki lookup for %q failed: %v", name, err)
		}
	}

	if r.catalog != nil {
		if entry := r.catalog.Resolve(name); entry != nil {
			formatted := compendium.Format(entry)
			out := tags.Speak(formatted.Description)
			if formatted.ImageRef != "" {
				out += tags.Image(formatted.ImageRef)
			}
			return out
		}
	}

	// Neither structured source knows the name; semantic search may
	return r.SearchLore(ctx, name)
}

// ShowLocations finds matching locations and renders them onto a map.
// Empty results fall back to a wiki lookup of the subject before
// giving up with the no-locations answer.
func (r *Router) ShowLocations(ctx context.Context, category, name, region, layerName string) string {
	layer := atlas.ParseLayer(layerName)

	var locs []atlas.Location
	if r.atlas != nil {
		switch {
		case region != "":
			locs = r.atlas.ByRegion(category, region)
		case name != "":
			locs = r.atlas.ByCategoryAndName(category, name, layer)
		case category != "":
			locs = r.atlas.ByCategory(category, layer)
		}
		if len(locs) == 0 && name == "" && category != "" {
			// The "category" may actually be a place name
			if loc := r.atlas.ByName(category); loc != nil {
				locs = []atlas.Location{*loc}
				layer = loc.Layer
			}
		}
	}

	if len(locs) == 0 {
		if fallback := r.wikiFallback(ctx, firstNonEmpty(name, category, region)); fallback != "" {
			return fallback
		}
		return tags.Speak(msgNoLocations)
	}

	prose := describeLocations(locs, category, region)
	out := tags.Speak(prose)

	if r.renderer != nil {
		key := strings.TrimSpace(strings.Join([]string{category, name, region}, " "))
		path, err := r.renderer.Render(locs, layer, key)
		if err != nil {
			log.Printf("Map render for %q failed: %v", key, err)
		} else if path != "" {
			out += tags.MapImage(path)
		}
	}
	return out
}

// FindWalkthrough throttles walkthrough help by policy: the first ask
// in a session gets encouragement, a repeated ask gets real guides.
func (r *Router) FindWalkthrough(ctx context.Context, sessionID, topic string) string {
	if sessionID == "" {
		sessionID = r.defaultSession
	}

	r.mu.Lock()
	r.walkthroughAsks[sessionID]++
	asks := r.walkthroughAsks[sessionID]
	r.mu.Unlock()

	if asks < 2 {
		return tags.Speak(msgDeferWalkthrough)
	}

	if r.videos == nil {
		return tags.Speak(msgVideoUnavailable)
	}
	hits, err := r.videos.FindWalkthroughs(ctx, topic)
	if err != nil {
		if !errors.Is(err, video.ErrNotConfigured) {
			log.Printf("Video search for %q failed: %v", topic, err)
		}
		return tags.Speak(msgVideoUnavailable)
	}
	return tags.Speak(video.FormatList(topic, hits))
}

// ResetSession clears the walkthrough throttle for a session
func (r *Router) ResetSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.walkthroughAsks, sessionID)
}

// wikiFallback tries the wiki for a subject, returning a tagged
// response or empty when the wiki cannot help.
func (r *Router) wikiFallback(ctx context.Context, subject string) string {
	if r.wiki == nil || subject == "" {
		return ""
	}
	article, err := r.wiki.Lookup(ctx, subject)
	if err != nil {
		if !errors.Is(err, wiki.ErrNotFound) {
			log.Printf("Wiki fallback for %q failed: %v", subject, err)
		}
		return ""
	}
	out := tags.Speak(article.Summary)
	if article.ImageURL != "" {
		out += tags.Image(article.ImageURL)
	}
	return out
}

// regionIn finds a known region name mentioned in the query
func (r *Router) regionIn(query string) string {
	if r.atlas == nil {
		return ""
	}
	q := strings.ToLower(query)
	for _, name := range r.atlas.RegionNames() {
		if strings.Contains(q, name) {
			return name
		}
	}
	return ""
}

// describeLocations summarizes matches, naming the first few
func describeLocations(locs []atlas.Location, category, region string) string {
	what := strings.TrimSpace(category)
	if what == "" {
		what = "matching"
	}
	where := ""
	if region != "" {
		where = " in " + strings.TrimSpace(region)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d %s location", len(locs), what)
	if len(locs) != 1 {
		b.WriteString("s")
	}
	fmt.Fprintf(&b, "%s and marked them on your map.", where)

	const maxNamed = 5
	for i, loc := range locs {
		if i == maxNamed {
			fmt.Fprintf(&b, " And %d more.", len(locs)-maxNamed)
			break
		}
		if i == 0 {
			b.WriteString(" Look for")
		}
		fmt.Fprintf(&b, " %s.", loc.Name)
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
