package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ldbb-analytics-api/internal/middleware"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// currentClaims extracts the authenticated user's claims from the context.
func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}

// currentRole returns the caller's role, defaulting to admin when the
// route is unauthenticated.
func currentRole(c *gin.Context) models.UserRole {
	if claims, ok := currentClaims(c); ok {
		return claims.Role
	}
	return models.RoleAdmin
}

// requestRole prefers an explicit role query parameter over the token's
// role. The value only scopes cache keys; it never changes behaviour.
func requestRole(c *gin.Context) models.UserRole {
	if q := strings.TrimSpace(c.Query("role")); q != "" {
		return models.UserRole(q)
	}
	return currentRole(c)
}

// bindRange reads the date range query parameters verbatim. Validation
// happens in the normalizer, not here.
func bindRange(c *gin.Context) models.RawDateRange {
	return models.RawDateRange{
		StartDate: strings.TrimSpace(c.Query("startDate")),
		EndDate:   strings.TrimSpace(c.Query("endDate")),
		Preset:    strings.TrimSpace(c.Query("preset")),
	}
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.ErrValidation.Wrapf(err, "invalid %s %q", name, raw)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter, returning zero when
// absent or malformed so services apply their defaults.
func queryInt(c *gin.Context, name string) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
