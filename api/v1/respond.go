package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/uwrite-api/lib/resputil"
	"github.com/uwrite-api/logutils"
	"github.com/uwrite-api/services"
)

// respondError maps a service error onto the error envelope. Unexpected
// errors are logged and answered without their text.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		resputil.HTTPError(c, http.StatusBadRequest, resputil.ValidationError, "Invalid request data", verr.Details)
	case errors.Is(err, services.ErrUnauthenticated):
		resputil.HTTPError(c, http.StatusUnauthorized, resputil.Unauthenticated, "Authentication required", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		resputil.HTTPError(c, http.StatusUnauthorized, resputil.Unauthenticated, "Invalid email or password", nil)
	case errors.Is(err, services.ErrForbidden):
		resputil.HTTPError(c, http.StatusForbidden, resputil.Forbidden, "You don't have permission to access this resource", nil)
	case errors.Is(err, services.ErrNotFound):
		resputil.HTTPError(c, http.StatusNotFound, resputil.NotFound, "Resource not found", nil)
	case errors.Is(err, services.ErrInvalidOrder):
		resputil.HTTPError(c, http.StatusBadRequest, resputil.InvalidOrder, err.Error(), nil)
	case errors.Is(err, services.ErrEmailTaken):
		resputil.HTTPError(c, http.StatusConflict, resputil.EmailTaken, "Email already registered", nil)
	default:
		_ = c.Error(err)
		logutils.Log.WithError(err).WithFields(logutils.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		resputil.HTTPError(c, http.StatusInternalServerError, resputil.Internal, "Internal server error", nil)
	}
}

// respondBindError answers a body that could not be decoded or validated
func respondBindError(c *gin.Context, err error) {
	details := map[string]string{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[lowerFirst(fe.Field())] = "failed on the '" + fe.Tag() + "' rule"
		}
	} else {
		details["body"] = "request body must be valid JSON"
	}
	resputil.HTTPError(c, http.StatusBadRequest, resputil.ValidationError, "Invalid request data", details)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
