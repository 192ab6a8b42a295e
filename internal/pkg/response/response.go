package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// HTTPError is the response a module sentinel maps to.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// ErrorMap binds a module's sentinel errors to HTTP responses, so handlers
// declare the mapping once instead of repeating a switch per endpoint.
// Errors with no mapping fall through to a generic 500.
type ErrorMap map[error]HTTPError

func (m ErrorMap) Write(c *gin.Context, err error) {
	for sentinel, he := range m {
		if errors.Is(err, sentinel) {
			Error(c, he.Status, he.Code, he.Message)
			return
		}
	}
	Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
}
