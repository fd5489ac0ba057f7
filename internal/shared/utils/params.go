package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"stepsign/internal/shared/errors"
)

// ParseIDParam parses a positive integer ID from a URL path parameter.
// entityName is used in error messages (e.g., "session", "claim").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID: " + raw)
	}

	return uint(id), nil
}

// ParseLimitQuery parses the "limit" query parameter, falling back to
// defaultLimit when absent or invalid.
func ParseLimitQuery(c *gin.Context, defaultLimit int) int {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultLimit
	}

	return limit
}
