package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ldbb-analytics-api/internal/dto"
	"github.com/noah-isme/ldbb-analytics-api/internal/middleware"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/pkg/response"
)

type courseService interface {
	Courses(ctx context.Context, raw models.RawDateRange) ([]models.CourseRecord, bool, error)
	Course(ctx context.Context, id int64) (*dto.CourseDetail, error)
}

// CourseHandler wires course endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary Course catalogue with aggregate statistics
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	start := time.Now()
	courses, cacheHit, err := h.service.Courses(c.Request.Context(), bindRange(c))
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
	response.JSON(c, http.StatusOK, courses, nil, meta)
}

// Detail godoc
// @Summary One course with lessons and quizzes
// @Tags Courses
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId} [get]
func (h *CourseHandler) Detail(c *gin.Context) {
	id, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.service.Course(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}
