package repositories

import (
	"context"

	"github.com/uwrite-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment and loads its author
func (r *CommentRepository) Create(ctx context.Context, comment models.Comment) (models.Comment, error) {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return comment, err
	}
	result := db.Preload("User").First(&comment, "id = ?", comment.ID)
	return comment, result.Error
}

// ListByTarget retrieves the comments on target, newest first. A project
// target only yields project-level comments.
func (r *CommentRepository) ListByTarget(ctx context.Context, target models.Target) ([]models.Comment, error) {
	var comments []models.Comment
	db := r.db.WithContext(ctx).Preload("User")
	if target.Kind == models.TargetChapter {
		db = db.Where("chapter_id = ?", target.ID)
	} else {
		db = db.Where("project_id = ? AND chapter_id IS NULL", target.ID)
	}
	result := db.Order("created_at DESC").Find(&comments)
	return comments, result.Error
}
