package repositories

import (
	"context"

	"github.com/uwrite-api/models"
	"gorm.io/gorm"
)

// LikeRepository handles database operations for likes
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository instance
func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle flips the like of userID on target and reports the new state.
//
// The delete doubles as the existence check, so check and flip are one
// statement. When two toggles race to create, the unique (user, target)
// index rejects the loser, which is reported as already liked.
func (r *LikeRepository) Toggle(ctx context.Context, userID string, target models.Target) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed := tx.Where("user_id = ?", userID).
			Where(target.Column()+" = ?", target.ID).
			Delete(&models.Like{})
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected > 0 {
			return nil
		}

		like := models.NewLike(userID, target)
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}
	return liked, nil
}

// Exists reports whether userID currently likes target
func (r *LikeRepository) Exists(ctx context.Context, userID string, target models.Target) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Where(target.Column()+" = ?", target.ID).
		Count(&count)
	return count > 0, result.Error
}

// CountByTarget counts the likes on target
func (r *LikeRepository) CountByTarget(ctx context.Context, target models.Target) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Like{}).
		Where(target.Column()+" = ?", target.ID).
		Count(&count)
	return count, result.Error
}
