package repositories

import (
	"context"

	"github.com/samber/lo"
	"github.com/uwrite-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChapterRepository owns the ordered chapter sequence of each project.
//
// Every mutation that touches sort_index runs in one transaction that first
// locks the enclosing project row, so concurrent writers on the same project
// are strictly ordered and nobody observes a gap or a duplicate index.
type ChapterRepository struct {
	db *gorm.DB
}

// NewChapterRepository creates a new chapter repository instance
func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// FindByID retrieves a chapter by its ID
func (r *ChapterRepository) FindByID(ctx context.Context, id string) (models.Chapter, error) {
	var chapter models.Chapter
	result := r.db.WithContext(ctx).First(&chapter, "id = ?", id)
	return chapter, result.Error
}

// ListByProject retrieves the chapters of a project in index order
func (r *ChapterRepository) ListByProject(ctx context.Context, projectID string) ([]models.Chapter, error) {
	var chapters []models.Chapter
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("sort_index ASC").
		Find(&chapters)
	return chapters, result.Error
}

// Append inserts the chapter at the end of its project's sequence. The
// Index field is overwritten with max+1, or 0 for the first chapter.
func (r *ChapterRepository) Append(ctx context.Context, chapter *models.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, chapter.ProjectID); err != nil {
			return err
		}

		var maxIndex int
		row := tx.Model(&models.Chapter{}).
			Select("COALESCE(MAX(sort_index), -1)").
			Where("project_id = ?", chapter.ProjectID).
			Row()
		if err := row.Scan(&maxIndex); err != nil {
			return err
		}

		chapter.Index = maxIndex + 1
		return tx.Create(chapter).Error
	})
}

// Update writes the given columns of a chapter. sort_index is never updated
// here; use Reorder.
func (r *ChapterRepository) Update(ctx context.Context, id string, changes map[string]any) (models.Chapter, error) {
	var chapter models.Chapter
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&chapter, "id = ?", id).Error; err != nil {
			return err
		}
		delete(changes, "sort_index")
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&chapter).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&chapter, "id = ?", id).Error
	})
	return chapter, err
}

// Reorder assigns index i to orderedIDs[i]. The ids must be exactly the
// project's chapter ids, otherwise ErrOrderMismatch is returned and nothing
// is written.
func (r *ChapterRepository) Reorder(ctx context.Context, projectID string, orderedIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, projectID); err != nil {
			return err
		}

		var currentIDs []string
		if err := tx.Model(&models.Chapter{}).Where("project_id = ?", projectID).Pluck("id", &currentIDs).Error; err != nil {
			return err
		}
		if !sameIDSet(currentIDs, orderedIDs) {
			return ErrOrderMismatch
		}

		// Park every row on a distinct negative slot first so the unique
		// (project_id, sort_index) index holds after each single-row update.
		for i, id := range orderedIDs {
			result := tx.Model(&models.Chapter{}).
				Where("id = ? AND project_id = ?", id, projectID).
				UpdateColumn("sort_index", -(i + 1))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != 1 {
				return ErrOrderMismatch
			}
		}

		return flipParkedIndexes(tx, projectID)
	})
}

// DeleteAndRenumber removes a chapter with its likes and comments, then
// shifts every later chapter of the same project down by one.
func (r *ChapterRepository) DeleteAndRenumber(ctx context.Context, chapter models.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, chapter.ProjectID); err != nil {
			return err
		}

		// Re-read under the lock; a concurrent reorder may have moved it.
		var current models.Chapter
		if err := tx.Select("id", "project_id", "sort_index").First(&current, "id = ?", chapter.ID).Error; err != nil {
			return err
		}

		if err := tx.Where("chapter_id = ?", current.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", current.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Chapter{}, "id = ?", current.ID).Error; err != nil {
			return err
		}

		// k -> -k keeps rows distinct, then -k -> k-1 closes the gap.
		if err := tx.Model(&models.Chapter{}).
			Where("project_id = ? AND sort_index > ?", current.ProjectID, current.Index).
			UpdateColumn("sort_index", gorm.Expr("-sort_index")).Error; err != nil {
			return err
		}
		return flipParkedIndexes(tx, current.ProjectID)
	})
}

// flipParkedIndexes maps every negative index -k of the project to k-1
func flipParkedIndexes(tx *gorm.DB, projectID string) error {
	return tx.Model(&models.Chapter{}).
		Where("project_id = ? AND sort_index < 0", projectID).
		UpdateColumn("sort_index", gorm.Expr("-sort_index - 1")).Error
}

// sameIDSet reports whether want is a duplicate-free permutation of have
func sameIDSet(have, want []string) bool {
	if len(have) != len(want) || len(lo.Uniq(want)) != len(want) {
		return false
	}
	missing, extra := lo.Difference(have, want)
	return len(missing) == 0 && len(extra) == 0
}
