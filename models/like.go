package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like joins a user to exactly one project or chapter
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;index:idx_likes_user_project,unique,priority:1;index:idx_likes_user_chapter,unique,priority:1"`
	ProjectID *string   `json:"projectId,omitempty" gorm:"type:varchar(36);default:null;index:idx_likes_user_project,unique,priority:2"`
	ChapterID *string   `json:"chapterId,omitempty" gorm:"type:varchar(36);default:null;index:idx_likes_user_chapter,unique,priority:2"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewLike builds a like for the given user and target
func NewLike(userID string, target Target) Like {
	like := Like{UserID: userID}
	id := target.ID
	if target.Kind == TargetChapter {
		like.ChapterID = &id
	} else {
		like.ProjectID = &id
	}
	return like
}

// Target returns the liked resource
func (l *Like) Target() (Target, error) {
	return targetFromColumns(l.ProjectID, l.ChapterID)
}

// BeforeCreate assigns a UUID and rejects rows without exactly one target
func (l *Like) BeforeCreate(*gorm.DB) error {
	if _, err := l.Target(); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
