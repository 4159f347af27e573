// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Verifies argument validation and result wiring over a fake router
package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/lorekeeper/internal/router"
)

type fakeRetriever struct{}

func (fakeRetriever) Retrieve(_ context.Context, query string) string {
	return "lore about " + query
}

func testHandlers() *Handlers {
	rt := router.New(fakeRetriever{}, nil, nil, nil, nil, nil)
	return &Handlers{router: rt}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("result content is not text: %+v", res.Content[0])
	}
	return text.Text
}

func TestSearchLore(t *testing.T) {
	h := testHandlers()

	res, err := h.SearchLore(context.Background(), callRequest(map[string]any{"query": "Zonai history"}))
	if err != nil {
		t.Fatalf("SearchLore() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("SearchLore() returned tool error: %+v", res)
	}
	if !strings.Contains(resultText(t, res), "lore about Zonai history") {
		t.Errorf("result = %q", resultText(t, res))
	}
}

func TestSearchLore_MissingQuery(t *testing.T) {
	h := testHandlers()

	res, err := h.SearchLore(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("SearchLore() error = %v", err)
	}
	if !res.IsError {
		t.Error("missing query should produce a tool error result")
	}
}

func TestAsk_DefaultsSession(t *testing.T) {
	h := testHandlers()

	res, err := h.Ask(context.Background(), callRequest(map[string]any{"question": "Tell me about the Zonai"}))
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("Ask() returned tool error: %+v", res)
	}
	if !strings.Contains(resultText(t, res), "lore about") {
		t.Errorf("result = %q", resultText(t, res))
	}
}

func TestIngestLore_NotConfigured(t *testing.T) {
	h := testHandlers()

	res, err := h.IngestLore(context.Background(), callRequest(map[string]any{
		"source_id": "vid1",
		"text":      "some transcript",
	}))
	if err != nil {
		t.Fatalf("IngestLore() error = %v", err)
	}
	if !res.IsError {
		t.Error("ingest without an ingestor should produce a tool error result")
	}
}

func TestFindWalkthrough_RequiresTopic(t *testing.T) {
	h := testHandlers()

	res, err := h.FindWalkthrough(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("FindWalkthrough() error = %v", err)
	}
	if !res.IsError {
		t.Error("missing topic should produce a tool error result")
	}
}
