package resputil

import (
	"github.com/gin-gonic/gin"
)

// ErrorCode is the stable identifier of a failure condition
type ErrorCode string

const (
	Unauthenticated ErrorCode = "UNAUTHENTICATED"
	Forbidden       ErrorCode = "FORBIDDEN"
	NotFound        ErrorCode = "NOT_FOUND"
	ValidationError ErrorCode = "VALIDATION_ERROR"
	InvalidOrder    ErrorCode = "INVALID_ORDER"
	EmailTaken      ErrorCode = "EMAIL_TAKEN"
	Internal        ErrorCode = "INTERNAL"
)

// Success writes the success envelope
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// HTTPError writes the error envelope and aborts the handler chain.
// details is omitted when nil.
func HTTPError(c *gin.Context, status int, code ErrorCode, message string, details any) {
	body := gin.H{
		"status":  "error",
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
