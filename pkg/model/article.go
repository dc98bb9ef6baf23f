// Package model holds the tool input structs shared between the MCP handler
// and the article service, with their validation tags.
package model

// CreateArticleInput carries the parameters of a create_article call.
// CategoryID zero means "not supplied": the operation responds with the
// category listing instead of creating anything.
type CreateArticleInput struct {
	Text       string `validate:"required"`
	Title      string
	CategoryID int64 `validate:"omitempty,gt=0"`
	Convert    bool
	Published  bool
}

// UpdateArticleInput carries the parameters of an update_article call. All
// content fields are optional, but at least one of Title, IntroText,
// FullText, or MetaDesc must be set; that rule lives in the validator so it
// fails before any network I/O.
type UpdateArticleInput struct {
	ID        int64 `validate:"required,gt=0"`
	Title     string
	IntroText string
	FullText  string
	MetaDesc  string
	Convert   bool
}

// StateChangeInput carries the parameters of a manage_article_state call.
// TargetState is checked against the four valid Joomla states by the
// validator rather than a tag, so the error message can name them.
type StateChangeInput struct {
	ID          int64 `validate:"required,gt=0"`
	TargetState int
}
