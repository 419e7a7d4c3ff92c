package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/resputil"
	"github.com/uwrite-api/middleware"
	"github.com/uwrite-api/models"
	"github.com/uwrite-api/services"
)

// SocialController handles likes and comments on public content
type SocialController struct {
	likeService    *services.LikeService
	commentService *services.CommentService
}

// NewSocialController creates a new social controller
func NewSocialController(likeService *services.LikeService, commentService *services.CommentService) *SocialController {
	return &SocialController{likeService: likeService, commentService: commentService}
}

// RegisterPublic registers the like counters and comment feeds anyone may read
func (ctrl *SocialController) RegisterPublic(router *gin.RouterGroup, tokens middleware.TokenValidator) {
	optional := middleware.OptionalAuth(tokens)
	router.GET("/projects/:id/likes", optional, ctrl.LikeStatus(models.ProjectTarget))
	router.GET("/chapters/:id/likes", optional, ctrl.LikeStatus(models.ChapterTarget))
	router.GET("/projects/:id/comments", ctrl.ListComments(models.ProjectTarget))
	router.GET("/chapters/:id/comments", ctrl.ListComments(models.ChapterTarget))
}

// RegisterProtected registers the routes that need a caller
func (ctrl *SocialController) RegisterProtected(router *gin.RouterGroup) {
	router.POST("/projects/:id/likes", ctrl.ToggleLike(models.ProjectTarget))
	router.POST("/chapters/:id/likes", ctrl.ToggleLike(models.ChapterTarget))
	router.POST("/projects/:id/comments", ctrl.CreateComment(models.ProjectTarget))
	router.POST("/chapters/:id/comments", ctrl.CreateComment(models.ChapterTarget))
}

// ToggleLike godoc
// @Summary Like or unlike a public project or published chapter
// @Tags likes
// @Produce json
// @Param id path string true "Project or Chapter ID"
// @Success 200 {object} dto.LikeResponse
// @Router /projects/{id}/likes [post]
// @Router /chapters/{id}/likes [post]
func (ctrl *SocialController) ToggleLike(target func(string) models.Target) gin.HandlerFunc {
	return func(c *gin.Context) {
		liked, err := ctrl.likeService.ToggleLike(c.Request.Context(), middleware.CurrentUserID(c), target(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		resputil.Success(c, http.StatusOK, dto.LikeResponse{Liked: liked})
	}
}

// LikeStatus godoc
// @Summary Like count of a public target and whether the caller likes it
// @Tags likes
// @Produce json
// @Param id path string true "Project or Chapter ID"
// @Success 200 {object} dto.LikeStatusResponse
// @Router /projects/{id}/likes [get]
// @Router /chapters/{id}/likes [get]
func (ctrl *SocialController) LikeStatus(target func(string) models.Target) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := ctrl.likeService.LikeStatus(c.Request.Context(), middleware.CurrentUserID(c), target(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		resputil.Success(c, http.StatusOK, status)
	}
}

// CreateComment godoc
// @Summary Comment on a public project or published chapter
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Project or Chapter ID"
// @Param comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Router /projects/{id}/comments [post]
// @Router /chapters/{id}/comments [post]
func (ctrl *SocialController) CreateComment(target func(string) models.Target) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		comment, err := ctrl.commentService.CreateComment(c.Request.Context(), middleware.CurrentUserID(c), target(c.Param("id")), req.Content)
		if err != nil {
			respondError(c, err)
			return
		}
		resputil.Success(c, http.StatusCreated, dto.NewCommentResponse(comment))
	}
}

// ListComments godoc
// @Summary List comments on a public target, newest first
// @Tags comments
// @Produce json
// @Param id path string true "Project or Chapter ID"
// @Success 200 {array} dto.CommentResponse
// @Router /projects/{id}/comments [get]
// @Router /chapters/{id}/comments [get]
func (ctrl *SocialController) ListComments(target func(string) models.Target) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := ctrl.commentService.ListComments(c.Request.Context(), target(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		resputil.Success(c, http.StatusOK, lo.Map(comments, func(cm models.Comment, _ int) dto.CommentResponse {
			return dto.NewCommentResponse(cm)
		}))
	}
}
