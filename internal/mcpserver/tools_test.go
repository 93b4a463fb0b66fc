package mcpserver

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/dokuref/internal/refgen"
)

const fixture = "../source/dump/testdata/sconepy.json"

func request(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return content.Text
}

func TestGenerateTool(t *testing.T) {
	tool := NewGenerateTool(refgen.Options{})
	assert.Equal(t, ToolGenerate, tool.GetTool().Name)

	result, err := tool.Handle(t.Context(), request(map[string]interface{}{
		"source": fixture,
		"title":  "SconePy",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	out := text(t, result)
	assert.Contains(t, out, "====== SconePy ======")
	assert.Contains(t, out, "| **bodies**() | List[ [[#Body|Body]] ] | Get the bodies of the model |")
}

func TestGenerateToolErrors(t *testing.T) {
	tool := NewGenerateTool(refgen.Options{})

	result, err := tool.Handle(t.Context(), request(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = tool.Handle(t.Context(), request(map[string]interface{}{"source": fixture, "kind": "ruby"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = tool.Handle(t.Context(), request(map[string]interface{}{"source": "missing.json"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "Failed to generate reference")
}

func TestListSymbolsTool(t *testing.T) {
	tool := NewListSymbolsTool(refgen.Options{})
	assert.Equal(t, ToolListSymbols, tool.GetTool().Name)

	result, err := tool.Handle(t.Context(), request(map[string]interface{}{"source": fixture, "kind": "dump"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	out := text(t, result)
	assert.Contains(t, out, "module sconepy")
	assert.Contains(t, out, "sconepy.Body.com_pos")
	assert.Contains(t, out, "set_log_level(level: int) -> None")
}

func TestNewRegistersTools(t *testing.T) {
	s := New("dokuref", "test", refgen.Options{}, nil)
	require.NotNil(t, s.mcpServer)
}
