// Package mcpadapter exposes retrieval and question answering as MCP tools
// over stdio, so agent runtimes can query the case graph directly.
package mcpadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/worawit/lawgraph/internal/core/ports"
)

type Server struct {
	searchUC ports.CaseSearcher
	askUC    ports.QuestionAnswerer
	factsUC  ports.FactReader
	topK     int
}

func NewServer(searchUC ports.CaseSearcher, askUC ports.QuestionAnswerer, factsUC ports.FactReader, topK int) *Server {
	if topK <= 0 {
		topK = 5
	}
	return &Server{
		searchUC: searchUC,
		askUC:    askUC,
		factsUC:  factsUC,
		topK:     topK,
	}
}

func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(
		"lawgraph",
		"1.0.0",
		server.WithLogging(),
		server.WithToolCapabilities(false),
	)

	searchTool := mcp.NewTool("legal_search",
		mcp.WithDescription("Hybrid lexical and embedding retrieval over ingested Thai legal documents"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query, Thai or English")),
		mcp.WithString("case_id", mcp.Description("Restrict to one case; empty searches the whole corpus")),
		mcp.WithNumber("k", mcp.Description("Number of chunks to return")),
	)
	askTool := mcp.NewTool("legal_ask",
		mcp.WithDescription("Answer a question about a case from retrieved passages and graph facts"),
		mcp.WithString("question", mcp.Required(), mcp.Description("Question, Thai or English")),
		mcp.WithString("case_id", mcp.Description("Case to answer about")),
		mcp.WithNumber("k", mcp.Description("Number of supporting chunks")),
	)
	factsTool := mcp.NewTool("case_facts",
		mcp.WithDescription("Structured facts for a case: parties, roles, amounts, dates and cited sections"),
		mcp.WithString("case_id", mcp.Required(), mcp.Description("Case identifier")),
		mcp.WithNumber("limit", mcp.Description("Maximum fact tuples")),
	)

	srv.AddTool(searchTool, s.handleSearch)
	srv.AddTool(askTool, s.handleAsk)
	srv.AddTool(factsTool, s.handleFacts)
	return srv
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	caseID := request.GetString("case_id", "")
	k := request.GetInt("k", s.topK)

	result, err := s.searchUC.Search(ctx, query, caseID, k)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	caseID := request.GetString("case_id", "")
	k := request.GetInt("k", s.topK)

	answer, err := s.askUC.Ask(ctx, question, caseID, k)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ask failed: %v", err)), nil
	}
	return jsonResult(answer)
}

func (s *Server) handleFacts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	caseID, err := request.RequireString("case_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := request.GetInt("limit", 0)

	facts, err := s.factsUC.Facts(ctx, caseID, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("facts failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"case_id": caseID, "facts": facts})
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
