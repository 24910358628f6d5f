// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes eotext tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/eotext/internal/apperr"
	"github.com/starford/eotext/internal/translator"
)

// SystemsURI is the URI of the writing systems guide resource.
const SystemsURI = "eotext://systems"

// systemCodes are the accepted values for the from/to tool arguments.
var systemCodes = []string{"u", "x", "h", "utf8", "x-system", "h-system"}

// Server wraps the MCP server with eotext tools.
type Server struct {
	mcp *server.MCPServer
	svc *translator.Service
}

// New creates a new MCP server with all eotext tools registered.
func New(svc *translator.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"eotext",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("convert_text",
		mcp.WithDescription("Convert Esperanto text between UTF-8 (ĉ ĝ ĥ ĵ ŝ ŭ), the x-system (cx gx ...) "+
			"and the h-system (ch gh ... with u for ŭ). Read the guide first via "+
			"get_transliteration_guide or the "+SystemsURI+" resource."),
		mcp.WithString("from", mcp.Required(), mcp.Enum(systemCodes...), mcp.Description("Source system")),
		mcp.WithString("to", mcp.Required(), mcp.Enum(systemCodes...), mcp.Description("Target system")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to convert")),
	), s.convertText)

	s.mcp.AddTool(mcp.NewTool("list_vocabulary",
		mcp.WithDescription("List the word fragments in which an h-system pair is kept literally."),
		mcp.WithString("source", mcp.Enum("builtin", "file", "user"), mcp.Description("Optional source filter")),
	), s.listVocabulary)

	s.mcp.AddTool(mcp.NewTool("add_vocabulary_word",
		mcp.WithDescription("Add a word or root to the user vocabulary so that its ch/gh/hh/jh/sh or au "+
			"is not converted from the h-system. The entry must contain such a pair."),
		mcp.WithString("word", mcp.Required(), mcp.Description("Word or root fragment, e.g. flughalt")),
	), s.addVocabularyWord)

	s.mcp.AddTool(mcp.NewTool("get_transliteration_guide",
		mcp.WithDescription("Returns the letter table and the conversion rules of the three writing systems."),
	), s.getGuide)

	s.mcp.AddResource(
		mcp.NewResource(SystemsURI, "Esperanto Writing Systems",
			mcp.WithResourceDescription("Letter table and conversion rules for UTF-8, x-system and h-system."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readSystemsResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) convertText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.Convert(ctx, from, to, text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(res.Result), nil
}

func (s *Server) listVocabulary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := translator.Source(req.GetString("source", ""))

	var words []string
	for _, item := range s.svc.Words(ctx) {
		if source == "" || item.Source == source {
			words = append(words, item.Word)
		}
	}
	if len(words) == 0 {
		return mcp.NewToolResultText("no entries found"), nil
	}
	return mcp.NewToolResultText(strings.Join(words, "\n")), nil
}

func (s *Server) addVocabularyWord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := req.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	item, err := s.svc.AddWord(ctx, word)
	switch {
	case errors.Is(err, apperr.ErrAlreadyExists):
		return mcp.NewToolResultError(fmt.Sprintf("already in vocabulary: %s", word)), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(item, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(Guide()), nil
}

func (s *Server) readSystemsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      SystemsURI,
			MIMEType: "text/markdown",
			Text:     Guide(),
		},
	}, nil
}
