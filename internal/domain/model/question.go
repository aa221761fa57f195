package model

import (
	"strings"
	"time"
)

// Question is a submitted question as the client sees it.
// Items are owned by the list or dashboard view that fetched them; the
// local copy is only mutated after the remote call that caused the change
// succeeds (the moderation dashboard additionally tracks an optimistic
// status, see internal/moderation).
type Question struct {
	ID        string
	Title     string
	Text      string
	Author    string
	CreatedAt time.Time
	Status    Status
	Images    []string
}

// Answer is a submitted answer to a question.
type Answer struct {
	ID        string
	Text      string
	Author    string
	CreatedAt time.Time
	Status    Status
	Images    []string
}

// QuestionPage is one page of a question listing.
type QuestionPage struct {
	Items []Question
	Total int
}

// ListQuery carries question list parameters.
type ListQuery struct {
	Search   string
	Page     int
	PageSize int
}

// Upload is a file attached to a submission.
type Upload struct {
	Name        string
	ContentType string
	Content     []byte
}

// QuestionDraft is the compose state for a new question.
type QuestionDraft struct {
	Title string
	Text  string
	Files []Upload
}

// AnswerDraft is the compose state for a new answer.
type AnswerDraft struct {
	Text  string
	Files []Upload
}

// ImageURL resolves an upstream image reference against the API origin.
// The upstream returns paths like "/uploads/abc.png"; absolute URLs pass
// through unchanged.
func ImageURL(origin, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}

// Snippet returns the first n characters of text with an ellipsis when
// truncated.
func Snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}
