package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChapterStatus is the draft/published lifecycle of a chapter
type ChapterStatus string

const (
	ChapterStatusDraft     ChapterStatus = "DRAFT"
	ChapterStatusPublished ChapterStatus = "PUBLISHED"
)

// Valid reports whether s is one of the known statuses
func (s ChapterStatus) Valid() bool {
	return s == ChapterStatusDraft || s == ChapterStatusPublished
}

// Chapter is an ordered sub-unit of a project.
//
// Within one project the Index values are always exactly 0..n-1. The unique
// (project_id, sort_index) index backs this up at the store level.
type Chapter struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProjectID   string         `json:"projectId" gorm:"type:varchar(36);not null;uniqueIndex:idx_chapters_project_sort,priority:1"`
	Index       int            `json:"index" gorm:"column:sort_index;not null;uniqueIndex:idx_chapters_project_sort,priority:2"`
	Title       string         `json:"title" gorm:"not null"`
	Content     datatypes.JSON `json:"content" gorm:"default:null"`
	ContentHTML string         `json:"contentHtml" gorm:"column:content_html;type:text"`
	ContentText string         `json:"contentText" gorm:"column:content_text;type:text"`
	Status      ChapterStatus  `json:"status" gorm:"type:varchar(10);not null;default:'DRAFT';index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// BeforeCreate assigns a UUID and the default status
func (c *Chapter) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ChapterStatusDraft
	}
	return nil
}

// IsPublished reports whether the chapter left the draft state
func (c *Chapter) IsPublished() bool {
	return c.Status == ChapterStatusPublished
}
