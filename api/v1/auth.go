package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/resputil"
	"github.com/uwrite-api/middleware"
	"github.com/uwrite-api/services"
)

// AuthController handles account endpoints
type AuthController struct {
	authService  *services.AuthService
	tokens       *services.TokenManager
	secureCookie bool
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, tokens *services.TokenManager, secureCookie bool) *AuthController {
	return &AuthController{authService: authService, tokens: tokens, secureCookie: secureCookie}
}

// RegisterRoutes registers auth routes
func (ctrl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", ctrl.Register)
		auth.POST("/login", ctrl.Login)
		auth.POST("/logout", ctrl.Logout)
		auth.GET("/me", middleware.AuthMiddleware(ctrl.tokens), ctrl.GetCurrentUser)
	}
}

// Register handles user registration
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	resputil.Success(c, http.StatusCreated, user)
}

// Login handles user authentication
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	authResponse, err := ctrl.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Set token as HttpOnly cookie; the body also carries it for Bearer clients
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AccessTokenCookie,
		authResponse.Token,
		int(ctrl.tokens.TTL().Seconds()),
		"/",
		"",
		ctrl.secureCookie,
		true,
	)

	resputil.Success(c, http.StatusOK, authResponse)
}

// GetCurrentUser returns the currently authenticated user's profile
func (ctrl *AuthController) GetCurrentUser(c *gin.Context) {
	user, err := ctrl.authService.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	resputil.Success(c, http.StatusOK, user)
}
