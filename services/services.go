package services

import (
	"github.com/uwrite-api/lib/cache"
	"github.com/uwrite-api/lib/content"
	"github.com/uwrite-api/lib/metrics"
	"github.com/uwrite-api/repositories"
	"gorm.io/gorm"
)

// Dependencies are the collaborators every service is built from
type Dependencies struct {
	DB         *gorm.DB
	Tokens     *TokenManager
	Cache      cache.Store
	Converter  content.Converter
	Metrics    *metrics.Recorder
	BcryptCost int
}

// Services bundles the service layer for the HTTP handlers
type Services struct {
	Auth     *AuthService
	Projects *ProjectService
	Chapters *ChapterService
	Likes    *LikeService
	Comments *CommentService
	Public   *PublicService
	Tokens   *TokenManager
}

// New wires repositories and services over one database handle
func New(deps Dependencies) *Services {
	if deps.Cache == nil {
		deps.Cache = cache.NopStore{}
	}
	if deps.Converter == nil {
		deps.Converter = content.NewConverter()
	}

	userRepo := repositories.NewUserRepository(deps.DB)
	projectRepo := repositories.NewProjectRepository(deps.DB)
	chapterRepo := repositories.NewChapterRepository(deps.DB)
	likeRepo := repositories.NewLikeRepository(deps.DB)
	commentRepo := repositories.NewCommentRepository(deps.DB)

	gate := NewAccessGate(projectRepo, chapterRepo)

	return &Services{
		Auth:     NewAuthService(userRepo, deps.Tokens, deps.BcryptCost),
		Projects: NewProjectService(projectRepo, gate, deps.Cache),
		Chapters: NewChapterService(chapterRepo, gate, deps.Converter, deps.Cache, deps.Metrics),
		Likes:    NewLikeService(likeRepo, gate, deps.Metrics),
		Comments: NewCommentService(commentRepo, gate, deps.Metrics),
		Public:   NewPublicService(projectRepo, deps.Cache),
		Tokens:   deps.Tokens,
	}
}
