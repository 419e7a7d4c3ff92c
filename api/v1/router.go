package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/middleware"
	"github.com/uwrite-api/services"
	"gorm.io/gorm"
)

// RouterOptions tune the v1 surface
type RouterOptions struct {
	Version      string
	SecureCookie bool
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, db *gorm.DB, svc *services.Services, opts RouterOptions) {
	NewHealthController(db, opts.Version).RegisterRoutes(router)
	NewAuthController(svc.Auth, svc.Tokens, opts.SecureCookie).RegisterRoutes(router)

	social := NewSocialController(svc.Likes, svc.Comments)

	// Public read surface
	NewPublicController(svc.Public).RegisterRoutes(router)
	social.RegisterPublic(router, svc.Tokens)

	// Everything below requires a caller
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Tokens))
	NewProjectController(svc.Projects).RegisterRoutes(protected)
	NewChapterController(svc.Chapters).RegisterRoutes(protected)
	social.RegisterProtected(protected)
}
