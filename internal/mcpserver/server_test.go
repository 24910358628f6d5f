package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/eotext/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(testutil.TestService(t), "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no call-tool test helper, so the handlers are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "convert_text":
		result, err = srv.convertText(ctx, req)
	case "list_vocabulary":
		result, err = srv.listVocabulary(ctx, req)
	case "add_vocabulary_word":
		result, err = srv.addVocabularyWord(ctx, req)
	case "get_transliteration_guide":
		result, err = srv.getGuide(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestConvertText(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "convert_text", map[string]interface{}{
		"from": "h",
		"to":   "u",
		"text": "Chiuj estas senchavaj kaj taugaj ideoj.",
	})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	if got := resultText(r); got != "Ĉiuj estas senchavaj kaj taŭgaj ideoj." {
		t.Errorf("result = %q", got)
	}

	r = callTool(t, srv, "convert_text", map[string]interface{}{
		"from": "u", "to": "x-system", "text": "ŝanĝo",
	})
	if got := resultText(r); got != "sxangxo" {
		t.Errorf("result = %q", got)
	}
}

func TestConvertText_Errors(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "convert_text", map[string]interface{}{"from": "q", "to": "u", "text": "a"})
	if !r.IsError {
		t.Error("expected error for unknown system")
	}
	r = callTool(t, srv, "convert_text", map[string]interface{}{"from": "u", "to": "x"})
	if !r.IsError {
		t.Error("expected error for missing text")
	}
}

func TestAddAndListVocabulary(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "add_vocabulary_word", map[string]interface{}{"word": "Flughalt"})
	if r.IsError {
		t.Fatalf("add failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"word": "flughalt"`) {
		t.Errorf("add result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_vocabulary", map[string]interface{}{"source": "user"})
	if got := resultText(r); got != "flughalt" {
		t.Errorf("user vocabulary = %q", got)
	}

	r = callTool(t, srv, "list_vocabulary", map[string]interface{}{})
	if !strings.Contains(resultText(r), "senchav\n") {
		t.Errorf("full vocabulary missing builtin entry")
	}

	r = callTool(t, srv, "list_vocabulary", map[string]interface{}{"source": "file"})
	if got := resultText(r); got != "no entries found" {
		t.Errorf("file vocabulary = %q", got)
	}

	r = callTool(t, srv, "add_vocabulary_word", map[string]interface{}{"word": "flughalt"})
	if !r.IsError || !strings.Contains(resultText(r), "already in vocabulary") {
		t.Errorf("duplicate add = %q", resultText(r))
	}

	r = callTool(t, srv, "add_vocabulary_word", map[string]interface{}{"word": "saluton"})
	if !r.IsError {
		t.Error("expected error for entry without pair")
	}
}

func TestGuide(t *testing.T) {
	srv := testServer(t)

	text := resultText(callTool(t, srv, "get_transliteration_guide", nil))
	for _, want := range []string{"| ĉ | `cx` | `ch` |", "| Ŭ | `Ux` | `U` |", "## Rules"} {
		if !strings.Contains(text, want) {
			t.Errorf("guide missing %q", want)
		}
	}

	contents, err := srv.readSystemsResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != SystemsURI || tc.Text != text {
		t.Errorf("resource = %+v", contents[0])
	}
}
