package dto

import (
	"time"

	"github.com/uwrite-api/models"
)

// LikeResponse reports the like state after a toggle
type LikeResponse struct {
	Liked bool `json:"liked"`
}

// LikeStatusResponse is the like counter of a target, with the caller's own
// state when the request was authenticated
type LikeStatusResponse struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

// CreateCommentRequest is the body of a new comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// AuthorSummary is the public face of a comment's author
type AuthorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommentResponse represents a comment with its author
type CommentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	ProjectID string        `json:"projectId"`
	ChapterID *string       `json:"chapterId"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    AuthorSummary `json:"author"`
}

// NewCommentResponse maps a comment with a loaded User
func NewCommentResponse(c models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		ProjectID: c.ProjectID,
		ChapterID: c.ChapterID,
		CreatedAt: c.CreatedAt,
		Author: AuthorSummary{
			ID:    c.User.ID,
			Name:  c.User.Name,
			Email: c.User.Email,
		},
	}
}
