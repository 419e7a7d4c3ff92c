package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uwrite-api/dto"
	"github.com/uwrite-api/lib/resputil"
	"github.com/uwrite-api/middleware"
)

// Logout clears the access token cookie
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AccessTokenCookie,
		"",
		-1,
		"/",
		"",
		ctrl.secureCookie,
		true,
	)

	resputil.Success(c, http.StatusOK, dto.OKResponse{OK: true})
}
