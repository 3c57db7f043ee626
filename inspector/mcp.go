package inspector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterMCP registers inspector tools on an MCP server.
func (i *Inspector) RegisterMCP(srv *mcp.Server) {
	i.registerChainTool(srv)
	i.registerContainsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

var sourceProperties = map[string]any{
	"html": map[string]any{"type": "string", "description": "Inline HTML snapshot to inspect"},
	"url":  map[string]any{"type": "string", "description": "Page URL to fetch and inspect"},
	"live": map[string]any{"type": "boolean", "description": "Render the URL in Chrome instead of a plain fetch (captures client-side shadow DOM)"},
}

// --- domscope_chain ---

type mcpChainRequest struct {
	HTML     string `json:"html,omitempty"`
	URL      string `json:"url,omitempty"`
	Live     bool   `json:"live,omitempty"`
	Selector string `json:"selector"`
}

func (i *Inspector) registerChainTool(srv *mcp.Server) {
	props := map[string]any{
		"selector": map[string]any{"type": "string", "description": "CSS selector of the element to resolve (first match)"},
	}
	for k, v := range sourceProperties {
		props[k] = v
	}

	tool := &mcp.Tool{
		Name:        "domscope_chain",
		Description: "Resolve which server-managed components own a DOM element, outermost to innermost. Crosses shadow-root boundaries and stops at container boundary elements.",
		InputSchema: inputSchema(props, []string{"selector"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var rr mcpChainRequest
		if err := json.Unmarshal(req.Params.Arguments, &rr); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		doc, err := i.loadRequested(ctx, documentRequest{HTML: rr.HTML, URL: rr.URL, Live: rr.Live})
		if err != nil {
			return toolError(err), nil
		}
		chain, err := i.Chain(doc, rr.Selector)
		if err != nil {
			return toolError(err), nil
		}
		return toolJSON(chainResponse{PageURL: doc.PageURL, Chain: chain})
	})
}

// --- domscope_contains ---

type mcpContainsRequest struct {
	HTML string `json:"html,omitempty"`
	URL  string `json:"url,omitempty"`
	Live bool   `json:"live,omitempty"`
	Ref  string `json:"ref"`
	Node string `json:"node"`
}

func (i *Inspector) registerContainsTool(srv *mcp.Server) {
	props := map[string]any{
		"ref":  map[string]any{"type": "string", "description": "CSS selector of the reference element (first match)"},
		"node": map[string]any{"type": "string", "description": "CSS selector of the node to test (first match)"},
	}
	for k, v := range sourceProperties {
		props[k] = v
	}

	tool := &mcp.Tool{
		Name:        "domscope_contains",
		Description: "Test whether a node lies within a reference element's subtree, crossing shadow-root boundaries that ordinary DOM containment misses.",
		InputSchema: inputSchema(props, []string{"ref", "node"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var rr mcpContainsRequest
		if err := json.Unmarshal(req.Params.Arguments, &rr); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		doc, err := i.loadRequested(ctx, documentRequest{HTML: rr.HTML, URL: rr.URL, Live: rr.Live})
		if err != nil {
			return toolError(err), nil
		}
		contained, err := i.Contains(doc, rr.Ref, rr.Node)
		if err != nil {
			return toolError(err), nil
		}
		return toolJSON(containsResponse{Contained: contained})
	})
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return toolError(fmt.Errorf("marshal: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}
