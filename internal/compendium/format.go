// ABOUTME: Formats compendium entries into prose for the agent
// ABOUTME: Missing entries yield a fixed not-found answer and no image
package compendium

import (
	"fmt"
	"sort"
	"strings"
)

// NotFoundDescription is the fixed answer for unresolved queries
const NotFoundDescription = "I could not find any information on that subject in the compendium."

// Formatted is a compendium answer ready for the tag protocol: prose
// plus an optional image reference to attach after it.
type Formatted struct {
	Description string
	ImageRef    string
}

// Format renders an entry as readable prose. Optional fields appear
// only when non-empty. A nil entry formats as the not-found answer.
func Format(e *Entry) Formatted {
	if e == nil {
		return Formatted{Description: NotFoundDescription}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Compendium Entry: %s (Category: %s)", titleCase(e.Name), titleCase(e.Category))

	desc := e.Description
	if desc == "" {
		desc = "No description available."
	}
	fmt.Fprintf(&b, "\nDescription: %s", desc)

	if len(e.Locations) > 0 {
		fmt.Fprintf(&b, "\nCommon Locations: %s", strings.Join(e.Locations, ", "))
	}
	if len(e.Drops) > 0 {
		fmt.Fprintf(&b, "\nDrops: %s", strings.Join(e.Drops, ", "))
	}
	if len(e.Properties) > 0 {
		keys := make([]string, 0, len(e.Properties))
		for k := range e.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		props := make([]string, 0, len(keys))
		for _, k := range keys {
			label := titleCase(strings.ReplaceAll(k, "_", " "))
			props = append(props, fmt.Sprintf("%s: %v", label, e.Properties[k]))
		}
		fmt.Fprintf(&b, "\nProperties: %s", strings.Join(props, ", "))
	}

	return Formatted{Description: b.String(), ImageRef: e.Image}
}

// titleCase uppercases the first letter of each space-separated word
func titleCase(s string) string {
	if s == "" {
		return "N/A"
	}
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
