package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/cache"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/models"
	"github.com/uwrite-api/repositories"
	"gorm.io/gorm"
)

// PublicService serves the published-only read surface
type PublicService struct {
	projectRepo *repositories.ProjectRepository
	cache       cache.Store
}

// NewPublicService creates a new public browse service instance
func NewPublicService(projectRepo *repositories.ProjectRepository, store cache.Store) *PublicService {
	return &PublicService{projectRepo: projectRepo, cache: store}
}

// ListPublicProjects returns every public project, most recently updated first
func (s *PublicService) ListPublicProjects(ctx context.Context) ([]dto.PublicProject, error) {
	var cached []dto.PublicProject
	if s.readCache(ctx, cache.PublicListKey(), &cached) {
		return cached, nil
	}
	gen, cacheable := s.generation(ctx)

	projects, err := s.projectRepo.FindPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list public projects: %w", err)
	}
	out := lo.Map(projects, func(p models.Project, _ int) dto.PublicProject {
		return dto.NewPublicProject(p, false)
	})

	if cacheable {
		s.writeCache(ctx, cache.PublicListKey(), out, gen)
	}
	return out, nil
}

// GetPublicProject returns one public project; anything else is NotFound
func (s *PublicService) GetPublicProject(ctx context.Context, projectID string) (dto.PublicProject, error) {
	key := cache.PublicProjectKey(projectID)

	var cached dto.PublicProject
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}
	gen, cacheable := s.generation(ctx)

	project, err := s.projectRepo.FindPublicByID(ctx, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PublicProject{}, ErrNotFound
	}
	if err != nil {
		return dto.PublicProject{}, fmt.Errorf("failed to load public project: %w", err)
	}
	out := dto.NewPublicProject(project, true)

	if cacheable {
		s.writeCache(ctx, key, out, gen)
	}
	return out, nil
}

// readCache treats cache failures as misses
func (s *PublicService) readCache(ctx context.Context, key string, dst any) bool {
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		logutils.Log.WithError(err).WithField("key", key).Warn("public cache read failed")
		return false
	}
	return hit
}

// generation must be read before the database load it guards. When it
// cannot be read the result is served uncached.
func (s *PublicService) generation(ctx context.Context) (int64, bool) {
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		logutils.Log.WithError(err).Warn("public cache generation read failed")
		return 0, false
	}
	return gen, true
}

func (s *PublicService) writeCache(ctx context.Context, key string, value any, gen int64) {
	if err := s.cache.Set(ctx, key, value, gen); err != nil {
		logutils.Log.WithError(err).WithField("key", key).Warn("public cache write failed")
	}
}

// invalidatePublic drops the cached projections a project change can affect
func invalidatePublic(ctx context.Context, store cache.Store, projectID string) {
	err := store.Invalidate(ctx, cache.PublicListKey(), cache.PublicProjectKey(projectID))
	if err != nil {
		logutils.Log.WithError(err).WithField("projectId", projectID).Warn("public cache invalidation failed")
	}
}
