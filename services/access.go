package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/uwrite-api/models"
	"github.com/uwrite-api/repositories"
	"gorm.io/gorm"
)

// AccessGate answers ownership and visibility questions.
//
// Owner routes reveal Forbidden to an authenticated non-owner. Public, like
// and comment routes only ever reveal NotFound for content that is not
// public, whoever the caller is.
type AccessGate struct {
	projects *repositories.ProjectRepository
	chapters *repositories.ChapterRepository
}

// NewAccessGate creates a new gate over the project and chapter stores
func NewAccessGate(projects *repositories.ProjectRepository, chapters *repositories.ChapterRepository) *AccessGate {
	return &AccessGate{projects: projects, chapters: chapters}
}

// OwnedProject loads a project the caller must own. A missing project is
// Forbidden as well.
func (g *AccessGate) OwnedProject(ctx context.Context, userID, projectID string) (models.Project, error) {
	if userID == "" {
		return models.Project{}, ErrUnauthenticated
	}
	project, err := g.projects.FindByID(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, ErrForbidden
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	if project.OwnerID != userID {
		return models.Project{}, ErrForbidden
	}
	return project, nil
}

// OwnedChapter loads a chapter whose project the caller must own
func (g *AccessGate) OwnedChapter(ctx context.Context, userID, chapterID string) (models.Chapter, error) {
	if userID == "" {
		return models.Chapter{}, ErrUnauthenticated
	}
	chapter, err := g.chapters.FindByID(ctx, chapterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chapter{}, ErrNotFound
	}
	if err != nil {
		return models.Chapter{}, fmt.Errorf("failed to load chapter: %w", err)
	}

	ownerID, err := g.projects.GetOwnerID(ctx, chapter.ProjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chapter{}, ErrNotFound
	}
	if err != nil {
		return models.Chapter{}, fmt.Errorf("failed to load project owner: %w", err)
	}
	if ownerID != userID {
		return models.Chapter{}, ErrForbidden
	}
	return chapter, nil
}

// PublicProject loads a project that must be PUBLIC
func (g *AccessGate) PublicProject(ctx context.Context, projectID string) (models.Project, error) {
	project, err := g.projects.FindByID(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	if !project.IsPublic() {
		return models.Project{}, ErrNotFound
	}
	return project, nil
}

// PublicChapter loads a PUBLISHED chapter of a PUBLIC project
func (g *AccessGate) PublicChapter(ctx context.Context, chapterID string) (models.Chapter, error) {
	chapter, err := g.chapters.FindByID(ctx, chapterID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chapter{}, ErrNotFound
	}
	if err != nil {
		return models.Chapter{}, fmt.Errorf("failed to load chapter: %w", err)
	}
	if !chapter.IsPublished() {
		return models.Chapter{}, ErrNotFound
	}
	if _, err := g.PublicProject(ctx, chapter.ProjectID); err != nil {
		return models.Chapter{}, err
	}
	return chapter, nil
}

// PublicTarget checks that a like or comment target is public and returns
// the id of its enclosing project
func (g *AccessGate) PublicTarget(ctx context.Context, target models.Target) (string, error) {
	if err := target.Validate(); err != nil {
		return "", ErrNotFound
	}
	if target.Kind == models.TargetChapter {
		chapter, err := g.PublicChapter(ctx, target.ID)
		if err != nil {
			return "", err
		}
		return chapter.ProjectID, nil
	}
	project, err := g.PublicProject(ctx, target.ID)
	if err != nil {
		return "", err
	}
	return project.ID, nil
}
