package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/resputil"
	"github.com/uwrite-api/middleware"
	"github.com/uwrite-api/services"
)

// ProjectController handles the owner's project endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// RegisterRoutes registers project routes; router must already require auth
func (ctrl *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", ctrl.ListProjects)
		projects.POST("", ctrl.CreateProject)
		projects.GET("/:id", ctrl.GetProject)
		projects.PUT("/:id", ctrl.UpdateProject)
		projects.DELETE("/:id", ctrl.DeleteProject)
	}
}

// ListProjects godoc
// @Summary List the caller's projects with pagination and filtering
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search term for title/synopsis"
// @Param sortBy query string false "Field to sort by (created_at, updated_at, title)"
// @Param sortOrder query string false "Sort order (asc or desc)"
// @Success 200 {object} dto.ProjectListResponse
// @Router /projects [get]
func (ctrl *ProjectController) ListProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	filter := dto.ProjectFilter{
		OwnerID:   middleware.CurrentUserID(c),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		PageSize:  pageSize,
	}

	response, err := ctrl.projectService.ListProjects(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, response)
}

// CreateProject godoc
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project Data"
// @Success 201 {object} dto.ProjectResponse
// @Router /projects [post]
func (ctrl *ProjectController) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := ctrl.projectService.CreateProject(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusCreated, dto.NewProjectResponse(project))
}

// GetProject godoc
// @Summary Get one of the caller's projects
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Router /projects/{id} [get]
func (ctrl *ProjectController) GetProject(c *gin.Context) {
	project, err := ctrl.projectService.GetProject(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.NewProjectResponse(project))
}

// UpdateProject godoc
// @Summary Update any subset of title, synopsis and visibility
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Project Data"
// @Success 200 {object} dto.ProjectResponse
// @Router /projects/{id} [put]
func (ctrl *ProjectController) UpdateProject(c *gin.Context) {
	ctx, userID, projectID := c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")

	// a non-owner is refused before the body is looked at
	if _, err := ctrl.projectService.GetProject(ctx, userID, projectID); err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	project, err := ctrl.projectService.UpdateProject(ctx, userID, projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.NewProjectResponse(project))
}

// DeleteProject godoc
// @Summary Delete a project with its chapters, likes and comments
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.OKResponse
// @Router /projects/{id} [delete]
func (ctrl *ProjectController) DeleteProject(c *gin.Context) {
	if err := ctrl.projectService.DeleteProject(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, dto.OKResponse{OK: true})
}
