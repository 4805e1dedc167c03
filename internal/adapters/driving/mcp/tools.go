package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query  string `json:"query" jsonschema:"the question to answer from the indexed corpus"`
	Length string `json:"length,omitempty" jsonschema:"answer length (short, medium or long; default medium)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// defaultLength is used when the caller omits the length field.
const defaultLength = "medium"

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "ask",
		Description: "Answer a question using retrieved passages from the indexed " +
			"paper and transcript corpus, with source citations",
	}, s.handleAsk)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	length := strings.TrimSpace(input.Length)
	if length == "" {
		length = defaultLength
	}

	answer, err := s.ports.Query.Ask(ctx, input.Query, length)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:  answer.Text,
		Sources: answer.Sources,
	}, nil
}
