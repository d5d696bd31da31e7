package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wastrilith2k/portfolio-assistant/internal/assistant"
	"github.com/wastrilith2k/portfolio-assistant/internal/knowledge"
	"github.com/wastrilith2k/portfolio-assistant/internal/portfolio"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Assistant *assistant.Assistant
	Portfolio *portfolio.Manager
	Store     *storage.Store // optional; enables the recent-interactions resource
}

// NewMCPServer exposes the assistant and the portfolio content to MCP hosts
// over stdio.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"portfolio-assistant",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("portfolio-assistant — AI chat assistant for a personal portfolio site, backed by its knowledge base."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask_assistant",
			mcp.WithDescription("Ask the portfolio assistant a question about the site owner's background, skills, or projects."),
			mcp.WithString("question", mcp.Description("The visitor question"), mcp.Required()),
		),
		mcpAskAssistant(deps),
	)

	s.AddTool(
		mcp.NewTool("get_profile",
			mcp.WithDescription("Fetch the site owner's profile as JSON."),
		),
		mcpGetProfile(deps),
	)

	s.AddTool(
		mcp.NewTool("list_projects",
			mcp.WithDescription("List the portfolio projects as JSON."),
		),
		mcpListProjects(deps),
	)

	s.AddTool(
		mcp.NewTool("search_topics",
			mcp.WithDescription("Return the knowledge-base context snippet the assistant would use for a query, without calling the model."),
			mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
		),
		mcpSearchTopics(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"portfolio://knowledge-base",
			"Knowledge Base",
			mcp.WithResourceDescription("The full rendered knowledge base the assistant prompts with"),
			mcp.WithMIMEType("text/plain"),
		),
		mcpResourceKnowledgeBase(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"portfolio://recent",
			"Recent Interactions",
			mcp.WithResourceDescription("Last 10 assistant interactions (questions only)"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecent(deps),
	)

	return s
}

func mcpAskAssistant(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil || question == "" {
			return mcpError("question is required"), nil
		}

		result, err := deps.Assistant.Ask(ctx, question, nil)
		if err != nil {
			// The fallback text still reaches the host; it carries contact
			// details instead of an answer.
			return mcpText(result.Response), nil
		}
		return mcpText(result.Response), nil
	}
}

func mcpGetProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(deps.Portfolio.Profile())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal profile: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListProjects(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(deps.Portfolio.Projects())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal projects: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpSearchTopics(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}
		snippet := knowledge.SelectContext(deps.Portfolio.KnowledgeBase(), query)
		return mcpText(snippet), nil
	}
}

func mcpResourceKnowledgeBase(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     knowledge.Render(deps.Portfolio.KnowledgeBase()),
			},
		}, nil
	}
}

func mcpResourceRecent(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if deps.Store == nil {
			return nil, fmt.Errorf("interaction log not configured")
		}
		interactions, err := deps.Store.GetRecentInteractions(10)
		if err != nil {
			return nil, fmt.Errorf("failed to get recent interactions: %w", err)
		}

		type interactionSummary struct {
			ID        string `json:"id"`
			CreatedAt string `json:"created_at"`
			Question  string `json:"question"`
			Status    string `json:"status"`
		}
		summaries := make([]interactionSummary, len(interactions))
		for i, ix := range interactions {
			summaries[i] = interactionSummary{
				ID:        ix.ID,
				CreatedAt: ix.CreatedAt.Format(time.RFC3339),
				Question:  ix.Question,
				Status:    ix.Status,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal interactions: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
