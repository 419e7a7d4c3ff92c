package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/cache"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/models"
	"github.com/uwrite-api/repositories"
	"github.com/uwrite-api/utils"
	"gorm.io/gorm"
)

const (
	maxSynopsisLength = 10000
	maxPageSize       = 100
)

// ProjectService handles business logic for projects
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	gate        *AccessGate
	cache       cache.Store
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo *repositories.ProjectRepository, gate *AccessGate, store cache.Store) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, gate: gate, cache: store}
}

// ListProjects retrieves the caller's projects with pagination, filtering and sorting
func (s *ProjectService) ListProjects(ctx context.Context, filter dto.ProjectFilter) (dto.ProjectListResponse, error) {
	if filter.OwnerID == "" {
		return dto.ProjectListResponse{}, ErrUnauthenticated
	}

	filter.Page, filter.PageSize = utils.ClampPage(filter.Page, filter.PageSize, maxPageSize)

	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}

	// Valid sort columns (whitelist approach for security)
	validSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
	}
	if !validSortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}

	projects, totalCount, err := s.projectRepo.FindWithPagination(
		ctx,
		filter.Page,
		filter.PageSize,
		filter.SortBy,
		filter.SortOrder,
		filter.OwnerID,
		strings.TrimSpace(filter.Search),
	)
	if err != nil {
		return dto.ProjectListResponse{}, fmt.Errorf("failed to list projects: %w", err)
	}

	return dto.ProjectListResponse{
		Projects:   lo.Map(projects, func(p models.Project, _ int) dto.ProjectResponse { return dto.NewProjectResponse(p) }),
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: utils.TotalPages(totalCount, filter.PageSize),
	}, nil
}

// CreateProject creates a new project owned by the caller
func (s *ProjectService) CreateProject(ctx context.Context, userID string, req dto.CreateProjectRequest) (models.Project, error) {
	if userID == "" {
		return models.Project{}, ErrUnauthenticated
	}

	project := models.Project{
		OwnerID:    userID,
		Title:      strings.TrimSpace(req.Title),
		Synopsis:   utils.TrimmedPtr(req.Synopsis),
		Visibility: models.VisibilityPrivate,
	}

	problems := &ValidationError{}
	if project.Title == "" {
		problems.Add("title", "title is required")
	}
	checkSynopsis(problems, project.Synopsis)
	if req.Visibility != nil {
		project.Visibility = models.Visibility(strings.ToUpper(*req.Visibility))
		checkVisibility(problems, project.Visibility)
	}
	if err := problems.OrNil(); err != nil {
		return models.Project{}, err
	}

	created, err := s.projectRepo.Create(ctx, project)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	if created.IsPublic() {
		invalidatePublic(ctx, s.cache, created.ID)
	}
	return created, nil
}

// GetProject retrieves one of the caller's projects
func (s *ProjectService) GetProject(ctx context.Context, userID, projectID string) (models.Project, error) {
	return s.gate.OwnedProject(ctx, userID, projectID)
}

// UpdateProject applies the non-nil fields of req
func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID string, req dto.UpdateProjectRequest) (models.Project, error) {
	if _, err := s.gate.OwnedProject(ctx, userID, projectID); err != nil {
		return models.Project{}, err
	}

	changes := make(map[string]any)
	problems := &ValidationError{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			problems.Add("title", "title cannot be empty")
		}
		changes["title"] = title
	}
	if req.Synopsis != nil {
		synopsis := utils.TrimmedPtr(req.Synopsis)
		checkSynopsis(problems, synopsis)
		changes["synopsis"] = synopsis
	}
	if req.Visibility != nil {
		visibility := models.Visibility(strings.ToUpper(*req.Visibility))
		checkVisibility(problems, visibility)
		changes["visibility"] = visibility
	}
	if len(changes) == 0 {
		problems.Add("body", "at least one of title, synopsis or visibility is required")
	}
	if err := problems.OrNil(); err != nil {
		return models.Project{}, err
	}

	updated, err := s.projectRepo.Update(ctx, projectID, changes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, ErrForbidden
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	invalidatePublic(ctx, s.cache, projectID)
	return updated, nil
}

// DeleteProject deletes a project with its chapters, likes and comments
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	if _, err := s.gate.OwnedProject(ctx, userID, projectID); err != nil {
		return err
	}

	err := s.projectRepo.Delete(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// deleted concurrently; the outcome is the same
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	logutils.Log.WithFields(logutils.Fields{"projectId": projectID, "userId": userID}).Info("project deleted")
	invalidatePublic(ctx, s.cache, projectID)
	return nil
}

func checkSynopsis(problems *ValidationError, synopsis *string) {
	if synopsis != nil && utf8.RuneCountInString(*synopsis) > maxSynopsisLength {
		problems.Add("synopsis", fmt.Sprintf("synopsis must be at most %d characters", maxSynopsisLength))
	}
}

func checkVisibility(problems *ValidationError, visibility models.Visibility) {
	if !visibility.Valid() {
		problems.Add("visibility", "visibility must be PRIVATE or PUBLIC")
	}
}
