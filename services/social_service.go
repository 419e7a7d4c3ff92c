package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/metrics"
	"github.com/uwrite-api/models"
	"github.com/uwrite-api/repositories"
)

// LikeService toggles likes on public projects and published chapters
type LikeService struct {
	likeRepo *repositories.LikeRepository
	gate     *AccessGate
	metrics  *metrics.Recorder
}

// NewLikeService creates a new like service instance
func NewLikeService(likeRepo *repositories.LikeRepository, gate *AccessGate, recorder *metrics.Recorder) *LikeService {
	return &LikeService{likeRepo: likeRepo, gate: gate, metrics: recorder}
}

// ToggleLike flips the caller's like on target and reports the new state.
// Calling it twice returns to the original state.
func (s *LikeService) ToggleLike(ctx context.Context, userID string, target models.Target) (bool, error) {
	if userID == "" {
		return false, ErrUnauthenticated
	}
	if _, err := s.gate.PublicTarget(ctx, target); err != nil {
		return false, err
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, target)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like on %s: %w", target, err)
	}

	s.metrics.LikeToggled(string(target.Kind), liked)
	return liked, nil
}

// LikeStatus counts the likes on a public target. Liked is only ever true
// for an identified caller.
func (s *LikeService) LikeStatus(ctx context.Context, userID string, target models.Target) (dto.LikeStatusResponse, error) {
	if _, err := s.gate.PublicTarget(ctx, target); err != nil {
		return dto.LikeStatusResponse{}, err
	}

	count, err := s.likeRepo.CountByTarget(ctx, target)
	if err != nil {
		return dto.LikeStatusResponse{}, fmt.Errorf("failed to count likes on %s: %w", target, err)
	}
	status := dto.LikeStatusResponse{Count: count}
	if userID == "" {
		return status, nil
	}

	status.Liked, err = s.likeRepo.Exists(ctx, userID, target)
	if err != nil {
		return dto.LikeStatusResponse{}, fmt.Errorf("failed to read like on %s: %w", target, err)
	}
	return status, nil
}

// CommentService appends and lists comments on public content
type CommentService struct {
	commentRepo *repositories.CommentRepository
	gate        *AccessGate
	metrics     *metrics.Recorder
}

// NewCommentService creates a new comment service instance
func NewCommentService(commentRepo *repositories.CommentRepository, gate *AccessGate, recorder *metrics.Recorder) *CommentService {
	return &CommentService{commentRepo: commentRepo, gate: gate, metrics: recorder}
}

// CreateComment stores the trimmed content on target with its author loaded
func (s *CommentService) CreateComment(ctx context.Context, userID string, target models.Target, content string) (models.Comment, error) {
	if userID == "" {
		return models.Comment{}, ErrUnauthenticated
	}
	projectID, err := s.gate.PublicTarget(ctx, target)
	if err != nil {
		return models.Comment{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, invalidField("content", "content cannot be empty")
	}

	comment, err := s.commentRepo.Create(ctx, models.NewComment(userID, projectID, target, content))
	if err != nil {
		return models.Comment{}, fmt.Errorf("failed to create comment on %s: %w", target, err)
	}

	s.metrics.CommentCreated(string(target.Kind))
	return comment, nil
}

// ListComments returns the comments on a public target, newest first
func (s *CommentService) ListComments(ctx context.Context, target models.Target) ([]models.Comment, error) {
	if _, err := s.gate.PublicTarget(ctx, target); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByTarget(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments on %s: %w", target, err)
	}
	return comments, nil
}
