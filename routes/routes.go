package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/uwrite-api/api/v1"
	"github.com/uwrite-api/lib/metrics"
	"github.com/uwrite-api/middleware"
	"github.com/uwrite-api/services"
	"gorm.io/gorm"
)

// Options configure the HTTP engine
type Options struct {
	CORSOrigins  []string
	Version      string
	SecureCookie bool
}

// SetupRouter builds the engine with middleware, /metrics and the v1 API
func SetupRouter(db *gorm.DB, svc *services.Services, recorder *metrics.Recorder, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(recorder))
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))

	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	api := router.Group("/api/v1")
	v1.RegisterRoutes(api, db, svc, v1.RouterOptions{
		Version:      opts.Version,
		SecureCookie: opts.SecureCookie,
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		// credentials cannot be combined with a wildcard origin
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
