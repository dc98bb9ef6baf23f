// Package service implements the article operations facade. Each operation
// is stateless, validates its input before any network I/O, re-fetches
// remote state immediately before using it in a decision, and renders a
// human-readable outcome string. Failures come back as *errors.AppError so
// the tool layer can report them without ever crashing the process.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"joomlamcp/internal/articles/validator"
	"joomlamcp/pkg/audit"
	apperrors "joomlamcp/pkg/errors"
	"joomlamcp/pkg/joomla"
	"joomlamcp/pkg/logger"
	"joomlamcp/pkg/model"
	"joomlamcp/pkg/sanitizer"
)

// JoomlaAPI is the remote collaborator contract. *joomla.Client implements
// it; tests substitute a mock.
type JoomlaAPI interface {
	ListArticles(ctx context.Context) (*joomla.Response, error)
	ListCategories(ctx context.Context) (*joomla.Response, error)
	GetArticle(ctx context.Context, id int64) (*joomla.Response, error)
	CreateArticle(ctx context.Context, payload joomla.CreatePayload) (*joomla.Response, error)
	UpdateArticle(ctx context.Context, id int64, patch map[string]any) (*joomla.Response, error)
	DeleteArticle(ctx context.Context, id int64) (*joomla.Response, error)
}

type ArticleService interface {
	ListArticles(ctx context.Context) (string, error)
	ListCategories(ctx context.Context) (string, error)
	CreateArticle(ctx context.Context, in *model.CreateArticleInput) (string, error)
	UpdateArticle(ctx context.Context, in *model.UpdateArticleInput) (string, error)
	ChangeArticleState(ctx context.Context, in *model.StateChangeInput) (string, error)
	DeleteArticle(ctx context.Context, id int64) (string, error)
}

// Options parameterizes the single facade implementation. SplitBody selects
// the update-operation field granularity: introtext/fulltext when true, one
// combined body field sent as articletext when false.
type Options struct {
	SplitBody bool
	Audit     *audit.Producer
}

type articleService struct {
	api       JoomlaAPI
	validator *validator.ArticleValidator
	audit     *audit.Producer
	log       *logger.Logger
	splitBody bool
}

func NewArticleService(api JoomlaAPI, v *validator.ArticleValidator, log *logger.Logger, opts Options) ArticleService {
	return &articleService{
		api:       api,
		validator: v,
		audit:     opts.Audit,
		log:       log,
		splitBody: opts.SplitBody,
	}
}

func (s *articleService) ListArticles(ctx context.Context) (string, error) {
	resp, err := s.api.ListArticles(ctx)
	if err != nil {
		return "", apperrors.Transport("Error fetching articles", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apperrors.Remote("fetch articles", resp.StatusCode, resp.Text())
	}
	return resp.Text(), nil
}

func (s *articleService) ListCategories(ctx context.Context) (string, error) {
	categories, err := s.fetchCategories(ctx)
	if err != nil {
		return "", err
	}
	if len(categories) == 0 {
		return "No categories found.", nil
	}

	var b strings.Builder
	b.WriteString("Available categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- ID: %d, Title: %s\n", c.Attributes.ID, c.Attributes.Title)
	}
	return b.String(), nil
}

func (s *articleService) CreateArticle(ctx context.Context, in *model.CreateArticleInput) (string, error) {
	if err := s.validator.ValidateCreate(in); err != nil {
		return "", apperrors.Validation("Create article validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	text := in.Text
	if in.Convert {
		text = sanitizer.ToSafeHTML(text)
	}

	title := in.Title
	if title == "" {
		title = deriveTitle(text)
	}
	alias := sanitizer.GenerateAlias(title)

	// Usability fallback, not an error: without a category id the caller
	// gets the listing and a prompt, and no create request is issued.
	if in.CategoryID == 0 {
		listing, err := s.ListCategories(ctx)
		if err != nil {
			return "", err
		}
		return listing + "\nPlease specify a category ID.", nil
	}

	categories, err := s.fetchCategories(ctx)
	if err != nil {
		return "", err
	}
	if !containsCategory(categories, in.CategoryID) {
		return "", apperrors.Validation(
			fmt.Sprintf("Category ID %d is not valid.", in.CategoryID),
			map[string]any{"category_id": in.CategoryID},
		)
	}

	state := joomla.StateUnpublished
	if in.Published {
		state = joomla.StatePublished
	}

	payload := joomla.CreatePayload{
		Alias:       alias,
		ArticleText: text,
		CatID:       in.CategoryID,
		Language:    "*",
		Title:       title,
		State:       state,
	}

	resp, err := s.api.CreateArticle(ctx, payload)
	if err != nil {
		return "", apperrors.Transport("Error creating article", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", apperrors.Remote("create article", resp.StatusCode, resp.Text())
	}

	s.audit.Publish(ctx, audit.Event{
		Action: "create",
		Title:  title,
		Detail: fmt.Sprintf("%s, category %d", state.Name(), in.CategoryID),
	})
	s.log.Info("article created", "title", title, "category_id", in.CategoryID, "state", state.Name())

	return fmt.Sprintf("Successfully created %s article '%s' in category ID %d", state.Name(), title, in.CategoryID), nil
}

func (s *articleService) UpdateArticle(ctx context.Context, in *model.UpdateArticleInput) (string, error) {
	if err := s.validator.ValidateUpdate(in); err != nil {
		return "", apperrors.Validation("Update article validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	// Existence check, and the current title for the result message.
	current, err := s.fetchArticle(ctx, in.ID)
	if err != nil {
		return "", err
	}

	convert := func(text string) string {
		if in.Convert {
			return sanitizer.ToSafeHTML(text)
		}
		return text
	}

	patch := map[string]any{}
	var updated []string

	if in.Title != "" {
		patch["title"] = in.Title
		patch["alias"] = sanitizer.GenerateAlias(in.Title)
		updated = append(updated, fmt.Sprintf("title to '%s'", in.Title))
	}
	if in.MetaDesc != "" {
		patch["metadesc"] = in.MetaDesc
		updated = append(updated, "metadesc")
	}

	if s.splitBody {
		if in.IntroText != "" {
			patch["introtext"] = convert(in.IntroText)
			updated = append(updated, "introtext")
			if in.FullText != "" {
				patch["fulltext"] = convert(in.FullText)
				updated = append(updated, "fulltext")
			}
		} else if in.FullText != "" {
			patch["articletext"] = convert(in.FullText)
			updated = append(updated, "body")
		}
	} else {
		body := in.FullText
		if body == "" {
			body = in.IntroText
		}
		if body != "" {
			patch["articletext"] = convert(body)
			updated = append(updated, "body")
		}
	}

	resp, err := s.api.UpdateArticle(ctx, in.ID, patch)
	if err != nil {
		return "", apperrors.Transport("Error updating article", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return "", apperrors.Remote("update article", resp.StatusCode, resp.Text())
	}

	s.audit.Publish(ctx, audit.Event{
		Action:    "update",
		ArticleID: in.ID,
		Title:     current.Title,
		Detail:    strings.Join(updated, ", "),
	})
	s.log.Info("article updated", "id", in.ID, "fields", updated)

	return fmt.Sprintf("Successfully updated article '%s' (ID: %d) %s.", current.Title, in.ID, strings.Join(updated, ", ")), nil
}

func (s *articleService) ChangeArticleState(ctx context.Context, in *model.StateChangeInput) (string, error) {
	if err := s.validator.ValidateStateChange(in); err != nil {
		return "", apperrors.Validation("State change validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	current, err := s.fetchArticle(ctx, in.ID)
	if err != nil {
		return "", err
	}

	target := joomla.State(in.TargetState)
	if current.State == target {
		return fmt.Sprintf("Article '%s' (ID: %d) is already in %s state.", current.Title, in.ID, target.Name()), nil
	}

	resp, err := s.api.UpdateArticle(ctx, in.ID, map[string]any{"state": in.TargetState})
	if err != nil {
		return "", apperrors.Transport("Error updating article state", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return "", apperrors.Remote("update article state", resp.StatusCode, resp.Text())
	}

	s.audit.Publish(ctx, audit.Event{
		Action:    "state_change",
		ArticleID: in.ID,
		Title:     current.Title,
		Detail:    fmt.Sprintf("%s -> %s", current.State.Name(), target.Name()),
	})
	s.log.Info("article state changed", "id", in.ID, "from", current.State.Name(), "to", target.Name())

	return fmt.Sprintf("Successfully updated article '%s' (ID: %d) from %s to %s state.",
		current.Title, in.ID, current.State.Name(), target.Name()), nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", apperrors.InvalidInput("Article ID must be a positive integer")
	}

	current, err := s.fetchArticle(ctx, id)
	if err != nil {
		return "", err
	}

	// Joomla's hard delete is only reliable from the trashed state, so a
	// non-trashed article is soft-deleted first. If that step fails the
	// destructive delete is never issued.
	if current.State != joomla.StateTrashed {
		if _, err := s.ChangeArticleState(ctx, &model.StateChangeInput{
			ID:          id,
			TargetState: int(joomla.StateTrashed),
		}); err != nil {
			inner := apperrors.AsAppError(err)
			return "", apperrors.Wrap(inner, inner.Code,
				"Failed to move article to trashed state before deletion: "+inner.Message)
		}
	}

	resp, err := s.api.DeleteArticle(ctx, id)
	if err != nil {
		return "", apperrors.Transport("Error deleting article", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return "", apperrors.Remote("delete article", resp.StatusCode, resp.Text())
	}

	s.audit.Publish(ctx, audit.Event{
		Action:    "delete",
		ArticleID: id,
		Title:     current.Title,
	})
	s.log.Info("article deleted", "id", id, "title", current.Title)

	return fmt.Sprintf("Successfully deleted article '%s' (ID: %d).", current.Title, id), nil
}

// fetchCategories retrieves and decodes the category collection,
// distinguishing transport failures, remote rejections, invalid JSON, and a
// non-list document shape.
func (s *articleService) fetchCategories(ctx context.Context) ([]joomla.Item, error) {
	resp, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.Transport("Error fetching categories", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Remote("fetch categories", resp.StatusCode, resp.Text())
	}

	var doc joomla.ListDocument
	if err := resp.DecodeJSON(&doc); err != nil {
		return nil, apperrors.Payload("Error parsing categories response: invalid JSON", resp.Text())
	}
	if len(doc.Data) == 0 {
		return nil, nil
	}

	var categories []joomla.Item
	if err := json.Unmarshal(doc.Data, &categories); err != nil {
		return nil, apperrors.Payload("Error parsing categories response: expected a list of categories", resp.Text())
	}
	return categories, nil
}

func (s *articleService) fetchArticle(ctx context.Context, id int64) (joomla.Attributes, error) {
	resp, err := s.api.GetArticle(ctx, id)
	if err != nil {
		return joomla.Attributes{}, apperrors.Transport("Error fetching article", err)
	}
	if resp.StatusCode != http.StatusOK {
		return joomla.Attributes{}, apperrors.Remote("find article", resp.StatusCode, resp.Text())
	}

	var doc joomla.ItemDocument
	if err := resp.DecodeJSON(&doc); err != nil {
		return joomla.Attributes{}, apperrors.Payload("Failed to parse article data: invalid JSON", resp.Text())
	}
	return doc.Data.Attributes, nil
}

const maxDerivedTitleLen = 50

// deriveTitle builds a title from the leading content when the caller did
// not supply one: first 50 runes, ellipsis when truncated, newlines
// flattened to spaces.
func deriveTitle(text string) string {
	title := text
	if runes := []rune(title); len(runes) > maxDerivedTitleLen {
		title = strings.TrimSpace(string(runes[:maxDerivedTitleLen])) + "..."
	}
	return strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
}

func containsCategory(categories []joomla.Item, id int64) bool {
	for _, c := range categories {
		if c.Attributes.ID == id {
			return true
		}
	}
	return false
}
