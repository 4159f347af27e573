// ABOUTME: Lightweight query intent classification for the routing policy
// ABOUTME: Keyword heuristics; the caller may also pass intent explicitly
package router

import (
	"strings"
)

// Intent is the coarse routing class of a query
type Intent int

const (
	IntentLore Intent = iota
	IntentEntity
	IntentWhere
	IntentWalkthrough
)

func (i Intent) String() string {
	switch i {
	case IntentEntity:
		return "entity"
	case IntentWhere:
		return "where"
	case IntentWalkthrough:
		return "walkthrough"
	default:
		return "lore"
	}
}

var walkthroughPhrases = []string{
	"walkthrough", "how do i", "how to", "i'm stuck", "im stuck",
	"help me beat", "help me with", "guide for", "how can i beat",
	"how do you beat", "how to solve",
}

var wherePhrases = []string{
	"where", "show me the map", "on the map", "show locations",
	"locations of", "find all", "mark the",
}

// Classify buckets a query by intent. Walkthrough requests win over
// location requests because "how do I get to" is a help ask, not a
// map ask.
func Classify(query string) Intent {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, p := range walkthroughPhrases {
		if strings.Contains(q, p) {
			return IntentWalkthrough
		}
	}
	for _, p := range wherePhrases {
		if strings.Contains(q, p) {
			return IntentWhere
		}
	}
	return IntentLore
}

var subjectPrefixes = []string{
	"where can i find", "where are the", "where are", "where is the",
	"where is", "what is a", "what is the", "what is", "what are",
	"who is", "who are", "tell me about the", "tell me about",
	"show me the", "show me", "find all", "locations of",
	"mark the", "describe the", "describe",
}

// Subject strips question scaffolding, leaving the thing being asked
// about. "What is a Bokoblin?" becomes "bokoblin".
func Subject(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.TrimRight(q, "?!. ")

	for _, p := range subjectPrefixes {
		if strings.HasPrefix(q, p+" ") {
			q = strings.TrimSpace(strings.TrimPrefix(q, p))
			break
		}
	}
	return q
}
