package httperr

import (
	"errors"

	"subscription-plans/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Write renders err as {"error": message, "code": kind}. Errors without a kind are
// attached to the gin context for logging and answered with a generic 500.
func Write(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(apperr.HTTPStatus(appErr.Kind), gin.H{
			"error": appErr.Message,
			"code":  appErr.Kind,
		})
		return
	}

	_ = c.Error(err)
	c.JSON(apperr.HTTPStatus(apperr.KindInternal), gin.H{
		"error": "Internal server error",
		"code":  apperr.KindInternal,
	})
}

// BadRequest is shorthand for request validation failures.
func BadRequest(c *gin.Context, msg string) {
	Write(c, apperr.BadRequest(msg))
}
