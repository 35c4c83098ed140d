// Package mcp exposes the blog as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/logfields"
)

const (
	Name    = "Notion Blog MCP"
	Version = "0.1.0"

	// Endpoint is the path the streamable HTTP transport is mounted on
	Endpoint = "/mcp"
)

type ListPostsRequest struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
}

// PostListing is the compact form of a post returned by list_posts
type PostListing struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug,omitempty"`
	Date     string   `json:"date,omitempty"`
	Category []string `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	URL      string   `json:"url"`
}

type GetPostRequest struct {
	ID     string `json:"id"`     // post id or slug
	Format string `json:"format"` // markdown (default), html or json
}

// PropertyNames tells the tools which collection properties to surface
type PropertyNames struct {
	Title    string
	Date     string
	Category string
	Tags     string
	Slug     string
}

// NewServer creates a new MCP server with the list_posts and get_post tools
func NewServer(posts contentSvc.PostService, categories contentSvc.CategoryService, props PropertyNames, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(false),
	)

	listTool := mcp.NewTool("list_posts",
		mcp.WithDescription("List blog posts, newest first, optionally filtered by category and tag"),
		mcp.WithString("category",
			mcp.Description("Only posts in this category"),
		),
		mcp.WithString("tag",
			mcp.Description("Only posts carrying this tag"),
		),
	)
	s.AddTool(listTool, mcp.NewTypedToolHandler(listPostsHandler(categories, props, logger)))

	getTool := mcp.NewTool("get_post",
		mcp.WithDescription("Get the rendered body of a blog post by id or slug"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The post id (with or without dashes) or its slug"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(string(contentSvc.FormatMarkdown), string(contentSvc.FormatHTML), string(contentSvc.FormatJSON)),
		),
	)
	s.AddTool(getTool, mcp.NewTypedToolHandler(getPostHandler(posts, logger)))

	return s
}

// NewHTTPServer serves s over streamable HTTP at Endpoint
func NewHTTPServer(s *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s, server.WithEndpointPath(Endpoint))
}

func listPostsHandler(categories contentSvc.CategoryService, props PropertyNames, logger *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest, args ListPostsRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args ListPostsRequest) (*mcp.CallToolResult, error) {
		posts, err := categories.Filter(ctx, args.Category, args.Tag)
		if err != nil {
			logger.Warn("mcp list_posts failed", logfields.Error(err))
			return mcp.NewToolResultError(toolMessage("failed to list posts", err)), nil
		}

		listing := make([]PostListing, 0, len(posts))
		for _, p := range posts {
			listing = append(listing, toListing(p, props))
		}

		responseBytes, err := json.Marshal(listing)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
		}
		return mcp.NewToolResultText(string(responseBytes)), nil
	}
}

func getPostHandler(posts contentSvc.PostService, logger *slog.Logger) func(ctx context.Context, request mcp.CallToolRequest, args GetPostRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args GetPostRequest) (*mcp.CallToolResult, error) {
		if args.ID == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		format := contentSvc.Format(args.Format)
		if format == "" {
			format = contentSvc.FormatMarkdown
		}

		body, err := posts.RenderBody(ctx, args.ID, format)
		if err != nil {
			logger.Warn("mcp get_post failed", logfields.DocumentID(args.ID), logfields.Error(err))
			return mcp.NewToolResultError(toolMessage("failed to get post", err)), nil
		}
		return mcp.NewToolResultText(body), nil
	}
}

// toolMessage keeps upstream details out of tool output
func toolMessage(prefix string, err error) string {
	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		return prefix + ": content source unavailable"
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}

func toListing(p content.DocumentSummary, props PropertyNames) PostListing {
	l := PostListing{
		ID:       p.ID,
		Title:    p.Text(props.Title),
		Slug:     p.Text(props.Slug),
		Category: p.Strings(props.Category),
		Tags:     p.Strings(props.Tags),
		URL:      p.URL,
	}
	if d := p.EffectiveDate(props.Date); !d.IsZero() {
		l.Date = d.Format("2006-01-02")
	}
	return l
}
