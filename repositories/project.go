package repositories

import (
	"context"
	"strings"

	"github.com/uwrite-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID retrieves a project by its ID
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	result := r.db.WithContext(ctx).First(&project, "id = ?", id)
	return project, result.Error
}

// Create inserts a new project into the database
func (r *ProjectRepository) Create(ctx context.Context, project models.Project) (models.Project, error) {
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(&project)
	return project, result.Error
}

// Update writes the given columns and returns the fresh row
func (r *ProjectRepository) Update(ctx context.Context, id string, changes map[string]any) (models.Project, error) {
	var project models.Project
	db := r.db.WithContext(ctx)
	if len(changes) > 0 {
		result := db.Model(&models.Project{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return project, result.Error
		}
	}
	err := db.First(&project, "id = ?", id).Error
	return project, err
}

// Delete removes a project and everything hanging off it, children first
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, id); err != nil {
			return err
		}

		chapterIDs := tx.Model(&models.Chapter{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("chapter_id IN (?)", chapterIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		// chapter comments carry the project id too
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

// GetOwnerID returns the user ID who owns the project
func (r *ProjectRepository) GetOwnerID(ctx context.Context, id string) (string, error) {
	type ProjectOwner struct {
		OwnerID string
	}

	var owner ProjectOwner
	err := r.db.WithContext(ctx).Model(&models.Project{}).Select("owner_id").Where("id = ?", id).First(&owner).Error
	return owner.OwnerID, err
}

// FindWithPagination retrieves a user's projects with pagination, filtering and sorting
func (r *ProjectRepository) FindWithPagination(
	ctx context.Context,
	page, pageSize int,
	sortBy, sortOrder string,
	ownerID string,
	search string) ([]models.Project, int64, error) {

	var projects []models.Project
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.Project{}).Where("owner_id = ?", ownerID)

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		db = db.Where("(LOWER(title) LIKE ? OR LOWER(COALESCE(synopsis, '')) LIKE ?)", searchPattern, searchPattern)
	}

	// Count total records with the same filter
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize

	// sortBy and sortOrder are whitelisted by the service
	orderString := sortBy + " " + sortOrder
	if err := db.Order(orderString).Limit(pageSize).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, totalCount, nil
}

// publishedChapters preloads only published chapters in index order
func publishedChapters(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", models.ChapterStatusPublished).Order("sort_index ASC")
}

// FindPublic retrieves every public project with its owner and published chapters
func (r *ProjectRepository) FindPublic(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	result := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Chapters", publishedChapters).
		Where("visibility = ?", models.VisibilityPublic).
		Order("updated_at DESC").
		Find(&projects)
	return projects, result.Error
}

// FindPublicByID retrieves one public project with its owner and published chapters
func (r *ProjectRepository) FindPublicByID(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	result := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Chapters", publishedChapters).
		Where("id = ? AND visibility = ?", id, models.VisibilityPublic).
		First(&project)
	return project, result.Error
}
