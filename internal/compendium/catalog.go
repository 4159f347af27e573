// ABOUTME: Structured compendium of game entities with recursive name resolution
// ABOUTME: Tolerates both flat-list and nested-group catalog file shapes
package compendium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Entry is one compendium record. Only Name is required; catalog data
// revisions vary in which of the other fields they carry.
type Entry struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Locations   []string       `json:"locations"`
	Drops       []string       `json:"drops"`
	Properties  map[string]any `json:"properties"`
	Image       string         `json:"image"`
}

// Node is the catalog shape union: either a flat list of entries or a
// named group of further nodes. Catalog files have carried both shapes
// across data revisions, so resolution recurses over whichever this is
// rather than assuming one.
type Node struct {
	Entries []Entry
	Groups  []Group
}

// Group is a named child node; order follows the source document so
// resolution order is stable for a fixed catalog.
type Group struct {
	Key  string
	Node *Node
}

// UnmarshalJSON decodes either shape. Arrays become entry lists.
// Objects holding a "name" field are a single entry; any other object
// is a group whose values are decoded recursively. Scalar values are
// skipped (metadata keys such as "info").
func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return err
		}
		for _, raw := range raws {
			var e Entry
			if err := json.Unmarshal(raw, &e); err != nil {
				continue
			}
			n.Entries = append(n.Entries, e)
		}
		return nil

	case '{':
		if objectHasName(data) {
			var e Entry
			if err := json.Unmarshal(data, &e); err != nil {
				return err
			}
			n.Entries = append(n.Entries, e)
			return nil
		}
		return n.unmarshalGroups(data)

	default:
		// Scalar: not catalog data, ignore
		return nil
	}
}

// unmarshalGroups walks an object with a token decoder so group order
// matches the document, keeping resolution deterministic.
func (n *Node) unmarshalGroups(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key token %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		child := &Node{}
		if err := json.Unmarshal(raw, child); err != nil {
			continue
		}
		if len(child.Entries) == 0 && len(child.Groups) == 0 {
			continue
		}
		n.Groups = append(n.Groups, Group{Key: key, Node: child})
	}
	return nil
}

// objectHasName reports whether a JSON object carries a top-level
// string "name" field, marking it as a single entry rather than a group.
func objectHasName(data []byte) bool {
	var probe struct {
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	if len(probe.Name) == 0 {
		return false
	}
	var s string
	return json.Unmarshal(probe.Name, &s) == nil && s != ""
}

// Catalog is the loaded compendium with optional image URL rewriting
type Catalog struct {
	root         *Node
	imageBaseURL string
}

// Load reads and decodes the compendium file. A missing or malformed
// file is the caller's signal to run without a compendium; it does not
// abort startup of anything else.
func Load(path, imageBaseURL string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading compendium %s: %w", path, err)
	}
	return Parse(data, imageBaseURL)
}

// Parse decodes compendium data from memory
func Parse(data []byte, imageBaseURL string) (*Catalog, error) {
	root := &Node{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("parsing compendium: %w", err)
	}
	return &Catalog{root: root, imageBaseURL: imageBaseURL}, nil
}

// Resolve finds an entry by name: exact case-insensitive match first,
// then substring match, each as a depth-first walk short-circuiting on
// the first hit. With several entries sharing a substring (the chuchu
// family) this returns whichever the traversal reaches first, stable
// for a fixed catalog but not a best-match ranking.
func (c *Catalog) Resolve(query string) *Entry {
	if c == nil || c.root == nil {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	if e := c.root.find(func(name string) bool { return name == q }); e != nil {
		return c.withImageURL(e)
	}
	if e := c.root.find(func(name string) bool { return strings.Contains(name, q) }); e != nil {
		return c.withImageURL(e)
	}
	return nil
}

// find walks entries then groups depth-first, returning the first
// entry whose lowercased name satisfies match.
func (n *Node) find(match func(name string) bool) *Entry {
	for i := range n.Entries {
		if n.Entries[i].Name == "" {
			continue
		}
		if match(strings.ToLower(n.Entries[i].Name)) {
			return &n.Entries[i]
		}
	}
	for _, g := range n.Groups {
		if e := g.Node.find(match); e != nil {
			return e
		}
	}
	return nil
}

// withImageURL returns a copy of the entry with its image link
// rewritten onto the configured base URL. Catalog files carry image
// links for a host that no longer serves them; the filename is the
// stable part.
func (c *Catalog) withImageURL(e *Entry) *Entry {
	out := *e
	if c.imageBaseURL != "" && out.Image != "" {
		name := out.Image
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		out.Image = strings.TrimSuffix(c.imageBaseURL, "/") + "/" + name
	}
	return &out
}
