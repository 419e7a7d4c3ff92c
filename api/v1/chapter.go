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

// ChapterController handles the owner's chapter endpoints
type ChapterController struct {
	chapterService *services.ChapterService
}

// NewChapterController creates a new chapter controller
func NewChapterController(chapterService *services.ChapterService) *ChapterController {
	return &ChapterController{chapterService: chapterService}
}

// RegisterRoutes registers chapter routes; router must already require auth
func (ctrl *ChapterController) RegisterRoutes(router *gin.RouterGroup) {
	chapters := router.Group("/chapters")
	{
		chapters.POST("", ctrl.CreateChapter)
		chapters.GET("", ctrl.ListChapters)
		chapters.PUT("/reorder", ctrl.ReorderChapters)
		chapters.GET("/:id", ctrl.GetChapter)
		chapters.PUT("/:id", ctrl.UpdateChapter)
		chapters.DELETE("/:id", ctrl.DeleteChapter)
	}
}

// CreateChapter godoc
// @Summary Append a chapter to a project
// @Tags chapters
// @Accept json
// @Produce json
// @Param chapter body dto.CreateChapterRequest true "Chapter Data"
// @Success 201 {object} dto.ChapterResponse
// @Router /chapters [post]
func (ctrl *ChapterController) CreateChapter(c *gin.Context) {
	var req dto.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	chapter, err := ctrl.chapterService.CreateChapter(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusCreated, dto.NewChapterResponse(chapter))
}

// ListChapters godoc
// @Summary List a project's chapters in order
// @Tags chapters
// @Produce json
// @Param projectId query string true "Project ID"
// @Success 200 {array} dto.ChapterResponse
// @Router /chapters [get]
func (ctrl *ChapterController) ListChapters(c *gin.Context) {
	projectID := c.Query("projectId")
	if projectID == "" {
		respondError(c, &services.ValidationError{Details: map[string]string{"projectId": "projectId is required"}})
		return
	}

	chapters, err := ctrl.chapterService.ListChapters(c.Request.Context(), middleware.CurrentUserID(c), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, lo.Map(chapters, func(ch models.Chapter, _ int) dto.ChapterResponse {
		return dto.NewChapterResponse(ch)
	}))
}

// GetChapter godoc
// @Summary Get one chapter
// @Tags chapters
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} dto.ChapterResponse
// @Router /chapters/{id} [get]
func (ctrl *ChapterController) GetChapter(c *gin.Context) {
	chapter, err := ctrl.chapterService.GetChapter(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.NewChapterResponse(chapter))
}

// UpdateChapter godoc
// @Summary Update any subset of title, content and status
// @Tags chapters
// @Accept json
// @Produce json
// @Param id path string true "Chapter ID"
// @Param chapter body dto.UpdateChapterRequest true "Chapter Data"
// @Success 200 {object} dto.ChapterResponse
// @Router /chapters/{id} [put]
func (ctrl *ChapterController) UpdateChapter(c *gin.Context) {
	ctx, userID, chapterID := c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")

	// a non-owner is refused before the body is looked at
	if _, err := ctrl.chapterService.GetChapter(ctx, userID, chapterID); err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	chapter, err := ctrl.chapterService.UpdateChapter(ctx, userID, chapterID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.NewChapterResponse(chapter))
}

// ReorderChapters godoc
// @Summary Replace the chapter order of a project
// @Tags chapters
// @Accept json
// @Produce json
// @Param order body dto.ReorderChaptersRequest true "Full new order"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} map[string]interface{} "INVALID_ORDER"
// @Router /chapters/reorder [put]
func (ctrl *ChapterController) ReorderChapters(c *gin.Context) {
	var req dto.ReorderChaptersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := ctrl.chapterService.ReorderChapters(c.Request.Context(), middleware.CurrentUserID(c), req); err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.OKResponse{OK: true})
}

// DeleteChapter godoc
// @Summary Delete a chapter and renumber the ones after it
// @Tags chapters
// @Produce json
// @Param id path string true "Chapter ID"
// @Success 200 {object} dto.OKResponse
// @Router /chapters/{id} [delete]
func (ctrl *ChapterController) DeleteChapter(c *gin.Context) {
	if err := ctrl.chapterService.DeleteChapter(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.OKResponse{OK: true})
}
