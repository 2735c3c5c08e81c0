package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ldbb-analytics-api/internal/daterange"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
)

// CommunityProvider provides BuddyBoss data to the community endpoints.
type CommunityProvider interface {
	UserStats(ctx context.Context, rng models.DateRange) (*models.UserStats, error)
	ForumStats(ctx context.Context, rng models.DateRange) (*models.ForumStats, error)
	GroupStats(ctx context.Context, rng models.DateRange) (*models.GroupStats, error)
	RecentActivities(ctx context.Context, limit int) ([]models.UserActivity, error)
}

// CommunityService serves the member, forum and group endpoints.
type CommunityService struct {
	provider     CommunityProvider
	cache        *CacheService
	logger       *zap.Logger
	cacheTTL     time.Duration
	groupsLimit  int
	now          func() time.Time
}

// NewCommunityService constructs a community service.
func NewCommunityService(provider CommunityProvider, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration, groupsLimit int) *CommunityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if groupsLimit <= 0 {
		groupsLimit = 5
	}
	return &CommunityService{provider: provider, cache: cache, logger: logger, cacheTTL: cacheTTL, groupsLimit: groupsLimit, now: time.Now}
}

// UserStats returns member counters for a range. The boolean reports a
// cache hit.
func (s *CommunityService) UserStats(ctx context.Context, raw models.RawDateRange) (*models.UserStats, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("community:users:%s", rng.CacheKey())
	var cached models.UserStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	stats, err := s.provider.UserStats(ctx, rng)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("user stats cache write failed", zap.Error(err))
	}
	return stats, false, nil
}

// ForumStats returns forum counters for a range.
func (s *CommunityService) ForumStats(ctx context.Context, raw models.RawDateRange) (*models.ForumStats, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("community:forums:%s", rng.CacheKey())
	var cached models.ForumStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	stats, err := s.provider.ForumStats(ctx, rng)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("forum stats cache write failed", zap.Error(err))
	}
	return stats, false, nil
}

// GroupStats returns group counters for a range.
func (s *CommunityService) GroupStats(ctx context.Context, raw models.RawDateRange) (*models.GroupStats, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("community:groups:%s", rng.CacheKey())
	var cached models.GroupStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	stats, err := s.provider.GroupStats(ctx, rng)
	if err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("group stats cache write failed", zap.Error(err))
	}
	return stats, false, nil
}

// MostActiveGroups ranks groups by activity level, preserving stored order
// between equal levels. A non-positive limit falls back to the configured
// default.
func (s *CommunityService) MostActiveGroups(ctx context.Context, raw models.RawDateRange, limit int) ([]models.GroupActivity, error) {
	stats, _, err := s.GroupStats(ctx, raw)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.groupsLimit
	}
	ranked := make([]models.GroupActivity, len(stats.GroupsByActivity))
	copy(ranked, stats.GroupsByActivity)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ActivityLevel > ranked[j].ActivityLevel
	})
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// UserActivities returns one member's activity entries, newest first.
func (s *CommunityService) UserActivities(ctx context.Context, userID int64, limit int) ([]models.UserActivity, error) {
	feed, err := s.provider.RecentActivities(ctx, 0)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserActivity, 0, len(feed))
	for _, a := range feed {
		if a.UserID != userID {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
