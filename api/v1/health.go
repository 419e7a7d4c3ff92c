package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController reports liveness and database reachability
type HealthController struct {
	db      *gorm.DB
	version string
}

// NewHealthController creates a new health controller
func NewHealthController(db *gorm.DB, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// RegisterRoutes registers the health route
func (ctrl *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", ctrl.HealthCheck)
}

// HealthCheck handles the health check endpoint
func (ctrl *HealthController) HealthCheck(c *gin.Context) {
	status, database := "ok", "up"
	code := http.StatusOK

	sqlDB, err := ctrl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status, database = "degraded", "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"service":  "uwrite-api",
		"version":  ctrl.version,
		"database": database,
	})
}
