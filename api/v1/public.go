package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/lib/resputil"
	"github.com/uwrite-api/services"
)

// PublicController serves published work to anyone
type PublicController struct {
	publicService *services.PublicService
}

// NewPublicController creates a new public browse controller
func NewPublicController(publicService *services.PublicService) *PublicController {
	return &PublicController{publicService: publicService}
}

// RegisterRoutes registers public browse routes
func (ctrl *PublicController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/public", ctrl.ListPublicProjects)
	router.GET("/public/:id", ctrl.GetPublicProject)
}

// ListPublicProjects godoc
// @Summary List public projects with their published chapters
// @Tags public
// @Produce json
// @Success 200 {array} dto.PublicProject
// @Router /public [get]
func (ctrl *PublicController) ListPublicProjects(c *gin.Context) {
	projects, err := ctrl.publicService.ListPublicProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, projects)
}

// GetPublicProject godoc
// @Summary Get one public project with its published chapters
// @Tags public
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.PublicProject
// @Router /public/{id} [get]
func (ctrl *PublicController) GetPublicProject(c *gin.Context) {
	project, err := ctrl.publicService.GetPublicProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, project)
}
