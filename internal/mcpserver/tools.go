package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/agentflare-ai/dokuref/internal/refgen"
	"github.com/agentflare-ai/dokuref/internal/source"
)

// Tool name prefix for all MCP tools
const ToolPrefix = "dokuref."

// Tool names
const (
	ToolGenerate    = ToolPrefix + "generate"
	ToolListSymbols = ToolPrefix + "list_symbols"
)

const sourceDescription = "Source to document: a .json/.yaml dump, a .pyi stub, py:<module> for a live Python module, or a Go package pattern"

// withRequest applies per-call arguments on top of the server defaults.
func withRequest(opts refgen.Options, req mcp.CallToolRequest) (refgen.Options, error) {
	kind, err := source.ParseKind(mcp.ParseString(req, "kind", string(opts.Source.Kind)))
	if err != nil {
		return opts, err
	}
	opts.Source.Kind = kind
	if title := mcp.ParseString(req, "title", ""); title != "" {
		opts.Page.Title = title
	}
	return opts, nil
}

// GenerateTool renders DokuWiki reference pages.
type GenerateTool struct {
	opts refgen.Options
}

// NewGenerateTool creates a new generate tool
func NewGenerateTool(opts refgen.Options) *GenerateTool {
	return &GenerateTool{opts: opts}
}

// GetTool returns the MCP tool definition
func (t *GenerateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolGenerate,
		mcp.WithDescription("Generate a DokuWiki API reference page for a module"),
		mcp.WithString("source", mcp.Required(), mcp.Description(sourceDescription)),
		mcp.WithString("kind", mcp.Description("Force the source kind: dump, stub, python or go")),
		mcp.WithString("title", mcp.Description("Page title; defaults to \"<module> Reference Manual\"")),
	)
}

// Handle processes the tool request
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src := mcp.ParseString(req, "source", "")
	if src == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	opts, err := withRequest(t.opts, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := refgen.Generate(ctx, src, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to generate reference: %v", err)), nil
	}
	pages := make([]string, 0, len(results))
	for _, r := range results {
		pages = append(pages, r.Text)
	}
	return mcp.NewToolResultText(strings.Join(pages, "\n")), nil
}

// ListSymbolsTool lists the classified symbols and their signatures.
type ListSymbolsTool struct {
	opts refgen.Options
}

// NewListSymbolsTool creates a new list symbols tool
func NewListSymbolsTool(opts refgen.Options) *ListSymbolsTool {
	return &ListSymbolsTool{opts: opts}
}

// GetTool returns the MCP tool definition
func (t *ListSymbolsTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolListSymbols,
		mcp.WithDescription("List the classes, functions, methods and properties that would be documented, with normalized signatures"),
		mcp.WithString("source", mcp.Required(), mcp.Description(sourceDescription)),
		mcp.WithString("kind", mcp.Description("Force the source kind: dump, stub, python or go")),
	)
}

// Handle processes the tool request
func (t *ListSymbolsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	src := mcp.ParseString(req, "source", "")
	if src == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	opts, err := withRequest(t.opts, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mods, err := refgen.Classify(ctx, src, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list symbols: %v", err)), nil
	}
	var buf bytes.Buffer
	for _, m := range mods {
		fmt.Fprintf(&buf, "module %s\n", m.Name)
		refgen.WriteSymbols(&buf, m)
	}
	return mcp.NewToolResultText(buf.String()), nil
}
