package ui

import (
	"errors"
	"net/http"
	"strconv"

	"placementcms/domain/core"
	apperrors "placementcms/internal/errors"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// respondError maps an application error onto an HTTP status
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		// keep driver detail out of responses
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			message = appErr.Message
		}
	}
	c.JSON(status, gin.H{"success": false, "error": message})
}

func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeValidationError, apperrors.CodeInvalidInput, apperrors.CodeUnsupportedFile:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeConflict:
		return http.StatusConflict
	}
	switch {
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsConflictError(err):
		return http.StatusConflict
	case core.IsValidationError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// pathID reads and validates the :id route parameter
func pathID(c *gin.Context) (core.ID, bool) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.InvalidInput("invalid id"))
		return "", false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
