package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
	"github.com/noah-isme/ldbb-analytics-api/pkg/response"
)

type quizService interface {
	Quizzes(ctx context.Context, raw models.RawDateRange, courseID int64) ([]models.QuizRecord, bool, error)
	Quiz(ctx context.Context, id int64) (*models.QuizRecord, error)
}

// QuizHandler wires quiz endpoints.
type QuizHandler struct {
	service quizService
}

// NewQuizHandler constructs the handler.
func NewQuizHandler(service quizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// List godoc
// @Summary Quiz statistics, optionally filtered by course
// @Tags Quizzes
// @Produce json
// @Param courseId query int false "Course ID"
// @Success 200 {object} response.Envelope
// @Router /quizzes [get]
func (h *QuizHandler) List(c *gin.Context) {
	var courseID int64
	if raw := strings.TrimSpace(c.Query("courseId")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.ErrValidation.Wrapf(err, "invalid courseId %q", raw))
			return
		}
		courseID = parsed
	}
	quizzes, _, err := h.service.Quizzes(c.Request.Context(), bindRange(c), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quizzes, nil)
}

// ByCourse godoc
// @Summary Quizzes belonging to one course
// @Tags Quizzes
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/quizzes [get]
func (h *QuizHandler) ByCourse(c *gin.Context) {
	id, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}
	quizzes, _, err := h.service.Quizzes(c.Request.Context(), bindRange(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quizzes, nil)
}

// Detail godoc
// @Summary One quiz by id
// @Tags Quizzes
// @Produce json
// @Param quizId path int true "Quiz ID"
// @Success 200 {object} response.Envelope
// @Router /quizzes/{quizId} [get]
func (h *QuizHandler) Detail(c *gin.Context) {
	id, err := pathID(c, "quizId")
	if err != nil {
		response.Error(c, err)
		return
	}
	quiz, err := h.service.Quiz(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz, nil)
}
