package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ldbb-analytics-api/internal/daterange"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// QuizProvider provides LearnDash quiz data to the quiz endpoints.
type QuizProvider interface {
	Quizzes(ctx context.Context, rng models.DateRange, courseID int64) ([]models.QuizRecord, error)
}

// QuizService serves the quiz endpoints.
type QuizService struct {
	provider QuizProvider
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewQuizService constructs a quiz service.
func NewQuizService(provider QuizProvider, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{provider: provider, cache: cache, logger: logger, cacheTTL: cacheTTL, now: time.Now}
}

// Quizzes lists quiz statistics, optionally filtered to one course. The
// boolean reports a cache hit.
func (s *QuizService) Quizzes(ctx context.Context, raw models.RawDateRange, courseID int64) ([]models.QuizRecord, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("quizzes:list:%s:%d", rng.CacheKey(), courseID)
	var cached []models.QuizRecord
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, true, nil
	}

	quizzes, err := s.provider.Quizzes(ctx, rng, courseID)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, quizzes, s.cacheTTL); err != nil {
		s.logger.Warn("quiz list cache write failed", zap.Error(err))
	}
	return quizzes, false, nil
}

// Quiz returns one quiz by id.
func (s *QuizService) Quiz(ctx context.Context, id int64) (*models.QuizRecord, error) {
	quizzes, err := s.provider.Quizzes(ctx, models.DateRange{}, 0)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, appErrors.ErrNotFound.Wrapf(nil, "quiz %d not found", id)
}
