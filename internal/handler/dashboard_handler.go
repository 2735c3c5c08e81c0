package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ldbb-analytics-api/internal/dto"
	"github.com/noah-isme/ldbb-analytics-api/internal/middleware"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/internal/service"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
	"github.com/noah-isme/ldbb-analytics-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context, role models.UserRole, raw models.RawDateRange) (*dto.DashboardSummary, bool, error)
	SummaryStats(ctx context.Context, role models.UserRole, raw models.RawDateRange) (*dto.SummaryStats, bool, error)
	UserEngagement(ctx context.Context, raw models.RawDateRange) ([]dto.EngagementPoint, error)
	CourseEnrollment(ctx context.Context) ([]dto.CategoryCount, error)
	CompletionTrend(ctx context.Context, raw models.RawDateRange) ([]dto.TrendPoint, error)
	ForumActivity(ctx context.Context, raw models.RawDateRange) ([]dto.ActivityPoint, error)
	TopCourses(ctx context.Context, raw models.RawDateRange, limit int) ([]dto.TopCourse, error)
	RecentActivities(ctx context.Context, limit int) ([]dto.RecentActivity, error)
}

type exportService interface {
	Export(ctx context.Context, role models.UserRole, raw models.RawDateRange, format string) (*service.ExportResult, error)
}

// DashboardHandler wires the dashboard facade to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
	export  exportService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService, export exportService) *DashboardHandler {
	return &DashboardHandler{service: service, export: export}
}

// Stats godoc
// @Summary Full dashboard payload
// @Tags Dashboard
// @Produce json
// @Param role query string false "Viewer role, used for cache scoping"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param preset query string false "Range preset: day, week, month, year, custom"
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Stats(c.Request.Context(), requestRole(c), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, summary, nil, meta)
}

// Summary godoc
// @Summary Headline counters only
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary-stats [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	stats, cacheHit, err := h.service.SummaryStats(c.Request.Context(), requestRole(c), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, stats, nil, meta)
}

// UserEngagement godoc
// @Summary Course view and forum activity series
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/user-engagement [get]
func (h *DashboardHandler) UserEngagement(c *gin.Context) {
	points, err := h.service.UserEngagement(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, points, nil)
}

// CourseEnrollment godoc
// @Summary Enrollment share per category
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/course-enrollment [get]
func (h *DashboardHandler) CourseEnrollment(c *gin.Context) {
	categories, err := h.service.CourseEnrollment(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// CompletionTrend godoc
// @Summary Course completion trend series
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/course-completion-trend [get]
func (h *DashboardHandler) CompletionTrend(c *gin.Context) {
	trend, err := h.service.CompletionTrend(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trend, nil)
}

// ForumActivity godoc
// @Summary Forum posting series
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/forum-activity [get]
func (h *DashboardHandler) ForumActivity(c *gin.Context) {
	activity, err := h.service.ForumActivity(c.Request.Context(), bindRange(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// TopCourses godoc
// @Summary Courses ranked by enrollments
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /dashboard/top-courses [get]
func (h *DashboardHandler) TopCourses(c *gin.Context) {
	top, err := h.service.TopCourses(c.Request.Context(), bindRange(c), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, top, nil)
}

// RecentActivities godoc
// @Summary Newest community activities
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Router /dashboard/recent-activities [get]
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	feed, err := h.service.RecentActivities(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed, nil)
}

// Export godoc
// @Summary Download dashboard stats as CSV, PDF or JSON
// @Tags Dashboard
// @Produce octet-stream
// @Param format query string false "csv, pdf or json (default csv)"
// @Success 200 {file} file
// @Router /dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		format = service.FormatCSV
	}
	result, err := h.export.Export(c.Request.Context(), requestRole(c), bindRange(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
