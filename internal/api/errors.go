package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust-backend/internal/core"
	"wanderlust-backend/internal/middleware"
)

const internalErrorMessage = "Internal server error"

// respondError maps service errors to status codes. Anything unrecognised is
// logged and reported as a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		msg := "Validation failed"
		if len(verr.Violations) > 0 {
			v := verr.Violations[0]
			msg = capitalize(v.Field) + " " + v.Message
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msg, Errors: verr.Violations})
	case errors.Is(err, core.ErrInvalidID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid id"})
	case errors.Is(err, core.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Role must be one of: user, member"})
	case errors.Is(err, core.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "No fields to update"})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not found"})
	case errors.Is(err, core.ErrAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Already exists"})
	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: internalErrorMessage})
	}
}

// bindJSON decodes the request body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
