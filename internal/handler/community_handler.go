package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/pkg/response"
)

type communityService interface {
	UserStats(ctx context.Context, raw models.RawDateRange) (*models.UserStats, bool, error)
	ForumStats(ctx context.Context, raw models.RawDateRange) (*models.ForumStats, bool, error)
	GroupStats(ctx context.Context, raw models.RawDateRange) (*models.GroupStats, bool, error)
	MostActiveGroups(ctx context.Context, raw models.RawDateRange, limit int) ([]models.GroupActivity, error)
	UserActivities(ctx context.Context, userID int64, limit int) ([]models.UserActivity, error)
}

// CommunityHandler wires member, forum and group endpoints.
type CommunityHandler struct {
	service communityService
}

// NewCommunityHandler constructs the handler.
func NewCommunityHandler(service communityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// UserStats godoc
// @Summary Member counters
// @Tags Community
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /users/stats [get]
func (h *CommunityHandler) UserStats(c *gin.Context) {
	stats, _, err := h.service.UserStats(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// UserActivities godoc
// @Summary One member's activity entries
// @Tags Community
// @Produce json
// @Param userId path int true "User ID"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /users/{userId}/activities [get]
func (h *CommunityHandler) UserActivities(c *gin.Context) {
	id, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	feed, err := h.service.UserActivities(c.Request.Context(), id, queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed, nil)
}

// ForumStats godoc
// @Summary Forum counters with posting series
// @Tags Community
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /forums/stats [get]
func (h *CommunityHandler) ForumStats(c *gin.Context) {
	stats, _, err := h.service.ForumStats(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ForumActivity godoc
// @Summary Forum posting series only
// @Tags Community
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /forums/activity [get]
func (h *CommunityHandler) ForumActivity(c *gin.Context) {
	stats, _, err := h.service.ForumStats(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats.ActivityByDate, nil)
}

// GroupStats godoc
// @Summary Group counters
// @Tags Community
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /groups/stats [get]
func (h *CommunityHandler) GroupStats(c *gin.Context) {
	stats, _, err := h.service.GroupStats(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// MostActiveGroups godoc
// @Summary Groups ranked by activity level
// @Tags Community
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /groups/most-active [get]
func (h *CommunityHandler) MostActiveGroups(c *gin.Context) {
	groups, err := h.service.MostActiveGroups(c.Request.Context(), bindRange(c), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}
