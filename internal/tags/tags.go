// ABOUTME: Inline tag protocol marking spoken text, images, and map renders
// ABOUTME: Renders, parses, and strips triple-pipe delimited segments
package tags

import (
	"strings"
)

// Markers used in agent responses. Text inside SPEAK blocks is meant
// for speech synthesis; IMAGE_URL and MAP_IMAGE carry a resource
// reference for the client to display. Everything else is silent text.
const (
	speakOpen   = "|||SPEAK|||"
	speakClose  = "|||/SPEAK|||"
	imagePrefix = "|||IMAGE_URL:"
	mapPrefix   = "|||MAP_IMAGE:"
	delim       = "|||"
)

// Kind discriminates segment types
type Kind int

const (
	KindSilent Kind = iota
	KindSpeak
	KindImage
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindSpeak:
		return "speak"
	case KindImage:
		return "image"
	case KindMap:
		return "map"
	default:
		return "silent"
	}
}

// Segment is one piece of a tagged response. Text holds the spoken or
// silent prose for text kinds and the URL or file path for resource kinds.
type Segment struct {
	Kind Kind
	Text string
}

// Speak wraps text in speech markers
func Speak(text string) string {
	return speakOpen + text + speakClose
}

// Image formats an image reference tag
func Image(url string) string {
	return imagePrefix + url + delim
}

// MapImage formats a rendered map reference tag
func MapImage(path string) string {
	return mapPrefix + path + delim
}

// Render joins segments back into wire form. Empty segments are
// dropped so Render(Parse(s)) is stable.
func Render(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		switch s.Kind {
		case KindSpeak:
			b.WriteString(Speak(s.Text))
		case KindImage:
			b.WriteString(Image(s.Text))
		case KindMap:
			b.WriteString(MapImage(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Parse splits a tagged response into segments. Tolerant of sloppy
// model output: an unclosed SPEAK block speaks to the end of input,
// an unterminated resource tag is kept as silent text, and a stray
// triple pipe that opens no known tag is literal text.
func Parse(s string) []Segment {
	var segs []Segment
	var silent strings.Builder

	flushSilent := func() {
		if silent.Len() > 0 {
			segs = append(segs, Segment{Kind: KindSilent, Text: silent.String()})
			silent.Reset()
		}
	}

	for len(s) > 0 {
		i := strings.Index(s, delim)
		if i < 0 {
			silent.WriteString(s)
			break
		}
		silent.WriteString(s[:i])
		s = s[i:]

		switch {
		case strings.HasPrefix(s, speakOpen):
			flushSilent()
			body := s[len(speakOpen):]
			end := strings.Index(body, speakClose)
			if end < 0 {
				if body != "" {
					segs = append(segs, Segment{Kind: KindSpeak, Text: body})
				}
				s = ""
				break
			}
			if body[:end] != "" {
				segs = append(segs, Segment{Kind: KindSpeak, Text: body[:end]})
			}
			s = body[end+len(speakClose):]

		case strings.HasPrefix(s, imagePrefix), strings.HasPrefix(s, mapPrefix):
			kind := KindImage
			prefix := imagePrefix
			if strings.HasPrefix(s, mapPrefix) {
				kind = KindMap
				prefix = mapPrefix
			}
			body := s[len(prefix):]
			end := strings.Index(body, delim)
			if end < 0 {
				// Unterminated tag, keep it verbatim
				silent.WriteString(s)
				s = ""
				break
			}
			flushSilent()
			if body[:end] != "" {
				segs = append(segs, Segment{Kind: kind, Text: body[:end]})
			}
			s = body[end+len(delim):]

		default:
			silent.WriteString(delim)
			s = s[len(delim):]
		}
	}
	flushSilent()
	return segs
}

// Strip removes all tag markers, returning plain prose. Resource
// references are dropped entirely; spoken and silent text survive.
func Strip(s string) string {
	var b strings.Builder
	for _, seg := range Parse(s) {
		switch seg.Kind {
		case KindSpeak, KindSilent:
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// SpokenText returns only the text inside SPEAK blocks
func SpokenText(s string) string {
	var parts []string
	for _, seg := range Parse(s) {
		if seg.Kind == KindSpeak {
			parts = append(parts, seg.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Resources returns the image and map references in document order
func Resources(s string) []Segment {
	var out []Segment
	for _, seg := range Parse(s) {
		if seg.Kind == KindImage || seg.Kind == KindMap {
			out = append(out, seg)
		}
	}
	return out
}
