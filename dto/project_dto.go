package dto

import (
	"time"

	"github.com/uwrite-api/models"
)

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	OwnerID   string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// ProjectListResponse represents paginated project list response
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	TotalCount int64             `json:"totalCount"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Title      string  `json:"title"`
	Synopsis   *string `json:"synopsis"`
	Visibility *string `json:"visibility"`
}

// UpdateProjectRequest carries the fields to change; nil means unchanged
type UpdateProjectRequest struct {
	Title      *string `json:"title"`
	Synopsis   *string `json:"synopsis"`
	Visibility *string `json:"visibility"`
}

// ProjectResponse represents the standard response format for a project
type ProjectResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Synopsis   *string   `json:"synopsis"`
	Visibility string    `json:"visibility"`
	OwnerID    string    `json:"ownerId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewProjectResponse maps a project model to its response shape
func NewProjectResponse(p models.Project) ProjectResponse {
	return ProjectResponse{
		ID:         p.ID,
		Title:      p.Title,
		Synopsis:   p.Synopsis,
		Visibility: string(p.Visibility),
		OwnerID:    p.OwnerID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
