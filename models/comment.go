package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an append-only remark on a project or on one of its chapters.
// Chapter comments also carry the parent project id; ChapterID nil marks a
// project-level comment.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;index"`
	ProjectID string    `json:"projectId" gorm:"type:varchar(36);not null;index"`
	ChapterID *string   `json:"chapterId" gorm:"type:varchar(36);default:null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// NewComment builds a comment for a target. projectID is the enclosing
// project, which equals target.ID for project targets.
func NewComment(userID, projectID string, target Target, content string) Comment {
	comment := Comment{UserID: userID, ProjectID: projectID, Content: content}
	if target.Kind == TargetChapter {
		id := target.ID
		comment.ChapterID = &id
	}
	return comment
}

// Target returns the commented resource
func (c *Comment) Target() Target {
	if c.ChapterID != nil {
		return ChapterTarget(*c.ChapterID)
	}
	return ProjectTarget(c.ProjectID)
}

// BeforeCreate assigns a UUID
func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ProjectID == "" {
		return ErrInvalidTarget
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
