package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ldbb-analytics-api/internal/daterange"
	"github.com/noah-isme/ldbb-analytics-api/internal/dto"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// CourseCatalog provides LearnDash course data to the course endpoints.
type CourseCatalog interface {
	Courses(ctx context.Context, rng models.DateRange) ([]models.CourseRecord, error)
	Lessons(ctx context.Context, courseID int64) ([]models.LessonRecord, error)
	Quizzes(ctx context.Context, rng models.DateRange, courseID int64) ([]models.QuizRecord, error)
}

// CourseService serves the course endpoints. Source failures are surfaced
// here, not degraded; only the dashboard facade degrades.
type CourseService struct {
	catalog  CourseCatalog
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewCourseService constructs a course service.
func NewCourseService(catalog CourseCatalog, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{catalog: catalog, cache: cache, logger: logger, cacheTTL: cacheTTL, now: time.Now}
}

// Courses lists the catalogue for a range. The boolean reports a cache hit.
func (s *CourseService) Courses(ctx context.Context, raw models.RawDateRange) ([]models.CourseRecord, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("courses:list:%s", rng.CacheKey())
	var cached []models.CourseRecord
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}

	courses, err := s.catalog.Courses(ctx, rng)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, courses, s.cacheTTL); err != nil {
		s.logger.Warn("course list cache write failed", zap.Error(err))
	}
	return courses, false, nil
}

// Course returns one course with lessons and quizzes embedded.
func (s *CourseService) Course(ctx context.Context, id int64) (*dto.CourseDetail, error) {
	courses, err := s.catalog.Courses(ctx, models.DateRange{})
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		if c.ID != id {
			continue
		}
		lessons, err := s.catalog.Lessons(ctx, id)
		if err != nil {
			return nil, err
		}
		quizzes, err := s.catalog.Quizzes(ctx, models.DateRange{}, id)
		if err != nil {
			return nil, err
		}
		return &dto.CourseDetail{CourseRecord: c, Lessons: lessons, Quizzes: quizzes}, nil
	}
	return nil, appErrors.ErrNotFound.Wrapf(nil, "course %d not found", id)
}
