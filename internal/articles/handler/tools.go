// Package handler exposes the article operations as MCP tools and serves
// the HTTP health endpoint. Tool handlers never return a Go error for a
// failed operation; failures are reported inside the tool result so an
// agent can read and react to them.
package handler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"joomlamcp/internal/articles/service"
	apperrors "joomlamcp/pkg/errors"
	"joomlamcp/pkg/logger"
	"joomlamcp/pkg/model"
)

type ToolHandler struct {
	service   service.ArticleService
	log       *logger.Logger
	splitBody bool
}

// NewToolHandler builds the tool layer. splitBody must match the service
// configuration: it decides whether update_article advertises separate
// introtext/fulltext parameters or one combined body parameter.
func NewToolHandler(svc service.ArticleService, log *logger.Logger, splitBody bool) *ToolHandler {
	return &ToolHandler{
		service:   svc,
		log:       log,
		splitBody: splitBody,
	}
}

// Register adds every article tool to the MCP server.
func (h *ToolHandler) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("get_articles",
		mcp.WithDescription("Retrieve all articles from the Joomla website as raw JSON."),
	), h.GetArticles)

	s.AddTool(mcp.NewTool("get_categories",
		mcp.WithDescription("List the available content categories with their IDs."),
	), h.GetCategories)

	s.AddTool(mcp.NewTool("create_article",
		mcp.WithDescription("Create a new article. If no category ID is given, the available categories are listed instead and nothing is created."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The article content, in Markdown or plain text."),
		),
		mcp.WithString("title",
			mcp.Description("The article title. Derived from the leading content when omitted."),
		),
		mcp.WithNumber("category_id",
			mcp.Description("ID of an existing category to file the article under."),
		),
		mcp.WithBoolean("convert",
			mcp.DefaultBool(true),
			mcp.Description("Convert the text to sanitized HTML before publishing."),
		),
		mcp.WithBoolean("published",
			mcp.DefaultBool(true),
			mcp.Description("Publish the article immediately; otherwise it is created unpublished."),
		),
	), h.CreateArticle)

	s.AddTool(h.updateArticleTool(), h.UpdateArticle)

	s.AddTool(mcp.NewTool("manage_article_state",
		mcp.WithDescription("Move an article to a target workflow state: 1 published, 0 unpublished, 2 archived, -2 trashed."),
		mcp.WithNumber("article_id",
			mcp.Required(),
			mcp.Description("ID of the article to change."),
		),
		mcp.WithNumber("target_state",
			mcp.Required(),
			mcp.Description("Target state value: 1, 0, 2 or -2."),
		),
	), h.ManageArticleState)

	s.AddTool(mcp.NewTool("delete_article",
		mcp.WithDescription("Permanently delete an article. Articles not in the trash are moved there first."),
		mcp.WithNumber("article_id",
			mcp.Required(),
			mcp.Description("ID of the article to delete."),
		),
	), h.DeleteArticle)
}

// updateArticleTool builds the update_article definition for the configured
// body granularity.
func (h *ToolHandler) updateArticleTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Update fields of an existing article. Only the supplied fields are changed; a new title also regenerates the alias."),
		mcp.WithNumber("article_id",
			mcp.Required(),
			mcp.Description("ID of the article to update."),
		),
		mcp.WithString("title",
			mcp.Description("New article title."),
		),
		mcp.WithString("metadesc",
			mcp.Description("New meta description."),
		),
		mcp.WithBoolean("convert",
			mcp.DefaultBool(true),
			mcp.Description("Convert supplied body text to sanitized HTML."),
		),
	}

	if h.splitBody {
		opts = append(opts,
			mcp.WithString("introtext",
				mcp.Description("New introductory text, shown in article listings."),
			),
			mcp.WithString("fulltext",
				mcp.Description("New full article body. Sent alone it replaces the whole body."),
			),
		)
	} else {
		opts = append(opts,
			mcp.WithString("body",
				mcp.Description("New article body, replacing the existing content."),
			),
		)
	}

	return mcp.NewTool("update_article", opts...)
}

func (h *ToolHandler) GetArticles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.invocationLogger("get_articles")
	out, err := h.service.ListArticles(ctx)
	return h.result(log, out, err)
}

func (h *ToolHandler) GetCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.invocationLogger("get_categories")
	out, err := h.service.ListCategories(ctx)
	return h.result(log, out, err)
}

func (h *ToolHandler) CreateArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.invocationLogger("create_article")

	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := &model.CreateArticleInput{
		Text:       text,
		Title:      req.GetString("title", ""),
		CategoryID: int64(req.GetInt("category_id", 0)),
		Convert:    req.GetBool("convert", true),
		Published:  req.GetBool("published", true),
	}

	out, err := h.service.CreateArticle(ctx, in)
	return h.result(log, out, err)
}

func (h *ToolHandler) UpdateArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.invocationLogger("update_article")

	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	in := &model.UpdateArticleInput{
		ID:       id,
		Title:    req.GetString("title", ""),
		MetaDesc: req.GetString("metadesc", ""),
		Convert:  req.GetBool("convert", true),
	}
	if h.splitBody {
		in.IntroText = req.GetString("introtext", "")
		in.FullText = req.GetString("fulltext", "")
	} else {
		in.FullText = req.GetString("body", "")
	}

	out, err := h.service.UpdateArticle(ctx, in)
	return h.result(log, out, err)
}

func (h *ToolHandler) ManageArticleState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.invocationLogger("manage_article_state")

	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := req.RequireInt("target_state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := h.service.ChangeArticleState(ctx, &model.StateChangeInput{
		ID:          id,
		TargetState: target,
	})
	return h.result(log, out, err)
}

func (h *ToolHandler) DeleteArticle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := h.invocationLogger("delete_article")

	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := h.service.DeleteArticle(ctx, id)
	return h.result(log, out, err)
}

func requireID(req mcp.CallToolRequest) (int64, error) {
	id, err := req.RequireInt("article_id")
	if err != nil {
		return 0, err
	}
	return int64(id), nil
}

// result maps a service outcome to a tool result. AppErrors are rendered
// with their code so the caller can distinguish validation problems from
// transport or remote failures.
func (h *ToolHandler) result(log *logger.Logger, out string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		appErr := apperrors.AsAppError(err)
		log.Warn("tool invocation failed", "code", appErr.Code, "error", appErr.Message)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", appErr.Code, appErr.Message)), nil
	}
	log.Info("tool invocation succeeded")
	return mcp.NewToolResultText(out), nil
}

func (h *ToolHandler) invocationLogger(tool string) *logger.Logger {
	return h.log.With("tool", tool, "invocation_id", uuid.NewString())
}
