package dto

import (
	"encoding/json"
	"time"

	"github.com/uwrite-api/models"
)

// CreateChapterRequest appends a chapter to a project
type CreateChapterRequest struct {
	ProjectID string          `json:"projectId" binding:"required"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	Status    *string         `json:"status"`
}

// UpdateChapterRequest carries any subset of title, content and status
type UpdateChapterRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
	Status  *string         `json:"status"`
}

// ReorderChaptersRequest is the full new order of a project's chapters
type ReorderChaptersRequest struct {
	ProjectID         string   `json:"projectId" binding:"required"`
	OrderedChapterIDs []string `json:"orderedChapterIds"`
}

// ChapterResponse represents a chapter as seen by its owner
type ChapterResponse struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	Index       int             `json:"index"`
	Title       string          `json:"title"`
	Content     json.RawMessage `json:"content"`
	ContentHTML string          `json:"contentHtml"`
	ContentText string          `json:"contentText"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewChapterResponse maps a chapter model to its response shape
func NewChapterResponse(c models.Chapter) ChapterResponse {
	var content json.RawMessage
	if len(c.Content) > 0 {
		content = json.RawMessage(c.Content)
	}
	return ChapterResponse{
		ID:          c.ID,
		ProjectID:   c.ProjectID,
		Index:       c.Index,
		Title:       c.Title,
		Content:     content,
		ContentHTML: c.ContentHTML,
		ContentText: c.ContentText,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// OKResponse acknowledges a mutation without a body
type OKResponse struct {
	OK bool `json:"ok"`
}
