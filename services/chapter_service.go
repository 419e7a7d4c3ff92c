package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/cache"
	"github.com/uwrite-api/lib/content"
	"github.com/uwrite-api/lib/metrics"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/models"
	"github.com/uwrite-api/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChapterService manages the ordered chapters of a project. Only the owner
// of the enclosing project may read or change them here.
type ChapterService struct {
	chapterRepo *repositories.ChapterRepository
	gate        *AccessGate
	converter   content.Converter
	cache       cache.Store
	metrics     *metrics.Recorder
}

// NewChapterService creates a new chapter service instance
func NewChapterService(
	chapterRepo *repositories.ChapterRepository,
	gate *AccessGate,
	converter content.Converter,
	store cache.Store,
	recorder *metrics.Recorder,
) *ChapterService {
	return &ChapterService{
		chapterRepo: chapterRepo,
		gate:        gate,
		converter:   converter,
		cache:       store,
		metrics:     recorder,
	}
}

// CreateChapter appends a chapter at the end of the project
func (s *ChapterService) CreateChapter(ctx context.Context, userID string, req dto.CreateChapterRequest) (models.Chapter, error) {
	if _, err := s.gate.OwnedProject(ctx, userID, req.ProjectID); err != nil {
		return models.Chapter{}, err
	}

	chapter := models.Chapter{
		ProjectID: req.ProjectID,
		Title:     strings.TrimSpace(req.Title),
		Status:    models.ChapterStatusDraft,
	}

	problems := &ValidationError{}
	if chapter.Title == "" {
		problems.Add("title", "title is required")
	}
	if req.Status != nil {
		chapter.Status = models.ChapterStatus(strings.ToUpper(*req.Status))
		checkStatus(problems, chapter.Status)
	}
	if !isJSONNull(req.Content) {
		rendered, err := s.converter.Convert(req.Content)
		if err != nil {
			problems.Add("content", err.Error())
		} else {
			chapter.Content = datatypes.JSON(req.Content)
			chapter.ContentHTML = rendered.HTML
			chapter.ContentText = rendered.Text
		}
	}
	if err := problems.OrNil(); err != nil {
		return models.Chapter{}, err
	}

	err := s.chapterRepo.Append(ctx, &chapter)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// the project vanished between the gate and the lock
		return models.Chapter{}, ErrForbidden
	}
	if err != nil {
		s.metrics.ChapterMutation("create", "failed")
		return models.Chapter{}, fmt.Errorf("failed to create chapter: %w", err)
	}

	s.metrics.ChapterMutation("create", "ok")
	if chapter.IsPublished() {
		invalidatePublic(ctx, s.cache, chapter.ProjectID)
	}
	return chapter, nil
}

// ListChapters returns the project's chapters in index order
func (s *ChapterService) ListChapters(ctx context.Context, userID, projectID string) ([]models.Chapter, error) {
	if _, err := s.gate.OwnedProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	chapters, err := s.chapterRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// GetChapter returns one chapter of the caller's project
func (s *ChapterService) GetChapter(ctx context.Context, userID, chapterID string) (models.Chapter, error) {
	return s.gate.OwnedChapter(ctx, userID, chapterID)
}

// UpdateChapter applies any subset of title, content and status. New content
// regenerates the derived hypertext and plain text.
func (s *ChapterService) UpdateChapter(ctx context.Context, userID, chapterID string, req dto.UpdateChapterRequest) (models.Chapter, error) {
	existing, err := s.gate.OwnedChapter(ctx, userID, chapterID)
	if err != nil {
		return models.Chapter{}, err
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
	if req.Status != nil {
		status := models.ChapterStatus(strings.ToUpper(*req.Status))
		checkStatus(problems, status)
		changes["status"] = status
	}
	switch {
	case req.Content == nil:
	case isJSONNull(req.Content):
		changes["content"] = nil
		changes["content_html"] = ""
		changes["content_text"] = ""
	default:
		rendered, err := s.converter.Convert(req.Content)
		if err != nil {
			problems.Add("content", err.Error())
			break
		}
		changes["content"] = datatypes.JSON(req.Content)
		changes["content_html"] = rendered.HTML
		changes["content_text"] = rendered.Text
	}
	if len(changes) == 0 && len(problems.Details) == 0 {
		problems.Add("body", "at least one of title, content or status is required")
	}
	if err := problems.OrNil(); err != nil {
		return models.Chapter{}, err
	}

	updated, err := s.chapterRepo.Update(ctx, chapterID, changes)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chapter{}, ErrNotFound
	}
	if err != nil {
		s.metrics.ChapterMutation("update", "failed")
		return models.Chapter{}, fmt.Errorf("failed to update chapter: %w", err)
	}

	s.metrics.ChapterMutation("update", "ok")
	if existing.IsPublished() || updated.IsPublished() {
		invalidatePublic(ctx, s.cache, updated.ProjectID)
	}
	return updated, nil
}

// ReorderChapters gives orderedChapterIds[i] the index i. The ids must be
// exactly the project's chapters; anything else is rejected untouched.
func (s *ChapterService) ReorderChapters(ctx context.Context, userID string, req dto.ReorderChaptersRequest) error {
	if _, err := s.gate.OwnedProject(ctx, userID, req.ProjectID); err != nil {
		return err
	}

	if len(req.OrderedChapterIDs) == 0 {
		return invalidField("orderedChapterIds", "orderedChapterIds must be a non-empty list")
	}
	if lo.Contains(req.OrderedChapterIDs, "") {
		return invalidField("orderedChapterIds", "chapter ids cannot be empty")
	}
	if len(lo.Uniq(req.OrderedChapterIDs)) != len(req.OrderedChapterIDs) {
		s.metrics.ChapterMutation("reorder", "rejected")
		return ErrInvalidOrder
	}

	err := s.chapterRepo.Reorder(ctx, req.ProjectID, req.OrderedChapterIDs)
	switch {
	case errors.Is(err, repositories.ErrOrderMismatch):
		s.metrics.ChapterMutation("reorder", "rejected")
		return ErrInvalidOrder
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrForbidden
	case err != nil:
		s.metrics.ChapterMutation("reorder", "failed")
		return fmt.Errorf("failed to reorder chapters: %w", err)
	}

	s.metrics.ChapterMutation("reorder", "ok")
	invalidatePublic(ctx, s.cache, req.ProjectID)
	return nil
}

// DeleteChapter removes a chapter and closes the gap it leaves
func (s *ChapterService) DeleteChapter(ctx context.Context, userID, chapterID string) error {
	chapter, err := s.gate.OwnedChapter(ctx, userID, chapterID)
	if err != nil {
		return err
	}

	err = s.chapterRepo.DeleteAndRenumber(ctx, chapter)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		s.metrics.ChapterMutation("delete", "failed")
		return fmt.Errorf("failed to delete chapter: %w", err)
	}

	s.metrics.ChapterMutation("delete", "ok")
	logutils.Log.WithFields(logutils.Fields{
		"chapterId": chapter.ID,
		"projectId": chapter.ProjectID,
	}).Debug("chapter deleted")
	invalidatePublic(ctx, s.cache, chapter.ProjectID)
	return nil
}

func checkStatus(problems *ValidationError, status models.ChapterStatus) {
	if !status.Valid() {
		problems.Add("status", "status must be DRAFT or PUBLISHED")
	}
}

// isJSONNull reports whether raw is absent or the JSON literal null
func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
