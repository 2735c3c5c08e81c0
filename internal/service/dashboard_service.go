package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ldbb-analytics-api/internal/daterange"
	"github.com/noah-isme/ldbb-analytics-api/internal/dto"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
)

// LMSSource provides LearnDash aggregates to the dashboard.
type LMSSource interface {
	Courses(ctx context.Context, rng models.DateRange) ([]models.CourseRecord, error)
	Quizzes(ctx context.Context, rng models.DateRange, courseID int64) ([]models.QuizRecord, error)
	CompletionTrend(ctx context.Context, rng models.DateRange) ([]models.TrendPoint, error)
	EnrollmentByCategory(ctx context.Context) ([]models.CategoryCount, error)
}

// CommunitySource provides BuddyBoss aggregates to the dashboard.
type CommunitySource interface {
	UserStats(ctx context.Context, rng models.DateRange) (*models.UserStats, error)
	ForumStats(ctx context.Context, rng models.DateRange) (*models.ForumStats, error)
	RecentActivities(ctx context.Context, limit int) ([]models.UserActivity, error)
	Engagement(ctx context.Context, rng models.DateRange) ([]models.EngagementPoint, error)
}

// DashboardServiceParams bundles the dashboard service dependencies.
type DashboardServiceParams struct {
	LMS                   LMSSource
	Community             CommunitySource
	Cache                 *CacheService
	Metrics               *MetricsService
	Logger                *zap.Logger
	CacheTTL              time.Duration
	TopCoursesLimit       int
	RecentActivitiesLimit int
	Now                   func() time.Time
}

// DashboardService aggregates LMS and community sources into the admin
// dashboard payload. A failing source degrades its own sections to zero
// values instead of failing the whole response.
type DashboardService struct {
	lms              LMSSource
	community        CommunitySource
	cache            *CacheService
	metrics          *MetricsService
	logger           *zap.Logger
	cacheTTL         time.Duration
	topCoursesLimit  int
	recentFeedLimit  int
	now              func() time.Time
}

// NewDashboardService constructs a dashboard service with sane defaults.
func NewDashboardService(p DashboardServiceParams) *DashboardService {
	if p.CacheTTL <= 0 {
		p.CacheTTL = 5 * time.Minute
	}
	if p.TopCoursesLimit <= 0 {
		p.TopCoursesLimit = 4
	}
	if p.RecentActivitiesLimit <= 0 {
		p.RecentActivitiesLimit = 5
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &DashboardService{
		lms:             p.LMS,
		community:       p.Community,
		cache:           p.Cache,
		metrics:         p.Metrics,
		logger:          p.Logger,
		cacheTTL:        p.CacheTTL,
		topCoursesLimit: p.TopCoursesLimit,
		recentFeedLimit: p.RecentActivitiesLimit,
		now:             p.Now,
	}
}

// Stats returns the full dashboard payload for the requested range. The
// role participates in the cache key so role-scoped variants stay distinct
// once they exist; it never changes the payload today. The boolean reports
// a cache hit.
func (s *DashboardService) Stats(ctx context.Context, role models.UserRole, raw models.RawDateRange) (*dto.DashboardSummary, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("dashboard:stats:%s:%s", role, rng.CacheKey())
	var cached dto.DashboardSummary
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	summary := s.composeSummary(ctx, rng)
	if err := dto.Shape(summary); err != nil {
		return nil, false, err
	}
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return summary, false, nil
}

// SummaryStats returns only the headline counters for the requested range.
func (s *DashboardService) SummaryStats(ctx context.Context, role models.UserRole, raw models.RawDateRange) (*dto.SummaryStats, bool, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, false, err
	}

	key := fmt.Sprintf("dashboard:summary:%s:%s", role, rng.CacheKey())
	var cached dto.SummaryStats
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	stats := s.headlineStats(ctx, rng)
	if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
		s.logger.Warn("summary cache write failed", zap.Error(err))
	}
	return stats, false, nil
}

// UserEngagement returns the combined engagement series.
func (s *DashboardService) UserEngagement(ctx context.Context, raw models.RawDateRange) ([]dto.EngagementPoint, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, err
	}
	points, err := s.communityEngagement(ctx, rng)
	if err != nil {
		return nil, err
	}
	return points, nil
}

// CourseEnrollment returns enrollment share per course category.
func (s *DashboardService) CourseEnrollment(ctx context.Context) ([]dto.CategoryCount, error) {
	start := time.Now()
	rows, err := s.lms.EnrollmentByCategory(ctx)
	s.observe("learndash", start)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryCount, len(rows))
	for i, r := range rows {
		out[i] = dto.CategoryCount{Category: r.Category, Count: r.Count}
	}
	return out, nil
}

// CompletionTrend returns the course completion trend series.
func (s *DashboardService) CompletionTrend(ctx context.Context, raw models.RawDateRange) ([]dto.TrendPoint, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := s.lms.CompletionTrend(ctx, rng)
	s.observe("learndash", start)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TrendPoint, len(rows))
	for i, r := range rows {
		out[i] = dto.TrendPoint{Date: r.Date, Rate: r.Rate}
	}
	return out, nil
}

// ForumActivity returns the forum posting series.
func (s *DashboardService) ForumActivity(ctx context.Context, raw models.RawDateRange) ([]dto.ActivityPoint, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, err
	}
	start := time.Now()
	stats, err := s.community.ForumStats(ctx, rng)
	s.observe("buddyboss", start)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityPoint, len(stats.ActivityByDate))
	for i, p := range stats.ActivityByDate {
		out[i] = dto.ActivityPoint{Date: p.Date, Posts: p.Posts}
	}
	return out, nil
}

// TopCourses returns the enrollment leaderboard. A non-positive limit
// falls back to the configured default.
func (s *DashboardService) TopCourses(ctx context.Context, raw models.RawDateRange, limit int) ([]dto.TopCourse, error) {
	rng, err := daterange.Normalize(raw, s.now())
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.topCoursesLimit
	}
	start := time.Now()
	courses, err := s.lms.Courses(ctx, rng)
	s.observe("learndash", start)
	if err != nil {
		return nil, err
	}
	return buildTopCourses(courses, limit), nil
}

// RecentActivities returns the newest community activities. A non-positive
// limit falls back to the configured default.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]dto.RecentActivity, error) {
	if limit <= 0 {
		limit = s.recentFeedLimit
	}
	start := time.Now()
	feed, err := s.community.RecentActivities(ctx, limit)
	s.observe("buddyboss", start)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecentActivity, len(feed))
	for i, a := range feed {
		out[i] = dto.RecentActivity{
			UserID:      a.UserID,
			User:        a.UserName,
			Avatar:      a.Avatar,
			Action:      a.Action,
			Description: a.Description,
			Timestamp:   a.Timestamp,
		}
	}
	return out, nil
}

func (s *DashboardService) composeSummary(ctx context.Context, rng models.DateRange) *dto.DashboardSummary {
	summary := &dto.DashboardSummary{
		SummaryStats:          *s.headlineStats(ctx, rng),
		UserEngagement:        []dto.EngagementPoint{},
		CourseEnrollment:      []dto.CategoryCount{},
		CourseCompletionTrend: []dto.TrendPoint{},
		ForumActivity:         []dto.ActivityPoint{},
		TopCourses:            []dto.TopCourse{},
		RecentActivities:      []dto.RecentActivity{},
	}

	if points, err := s.communityEngagement(ctx, rng); err != nil {
		s.degrade("engagement", err)
	} else {
		summary.UserEngagement = points
	}

	start := time.Now()
	categories, err := s.lms.EnrollmentByCategory(ctx)
	s.observe("learndash", start)
	if err != nil {
		s.degrade("course enrollment", err)
	} else {
		for _, c := range categories {
			summary.CourseEnrollment = append(summary.CourseEnrollment, dto.CategoryCount{Category: c.Category, Count: c.Count})
		}
	}

	start = time.Now()
	trend, err := s.lms.CompletionTrend(ctx, rng)
	s.observe("learndash", start)
	if err != nil {
		s.degrade("completion trend", err)
	} else {
		for _, p := range trend {
			summary.CourseCompletionTrend = append(summary.CourseCompletionTrend, dto.TrendPoint{Date: p.Date, Rate: p.Rate})
		}
	}

	start = time.Now()
	forum, err := s.community.ForumStats(ctx, rng)
	s.observe("buddyboss", start)
	if err != nil {
		s.degrade("forum activity", err)
	} else {
		for _, p := range forum.ActivityByDate {
			summary.ForumActivity = append(summary.ForumActivity, dto.ActivityPoint{Date: p.Date, Posts: p.Posts})
		}
	}

	start = time.Now()
	courses, err := s.lms.Courses(ctx, rng)
	s.observe("learndash", start)
	if err != nil {
		s.degrade("top courses", err)
	} else {
		summary.TopCourses = buildTopCourses(courses, s.topCoursesLimit)
	}

	start = time.Now()
	feed, err := s.community.RecentActivities(ctx, s.recentFeedLimit)
	s.observe("buddyboss", start)
	if err != nil {
		s.degrade("recent activities", err)
	} else {
		for _, a := range feed {
			summary.RecentActivities = append(summary.RecentActivities, dto.RecentActivity{
				UserID:      a.UserID,
				User:        a.UserName,
				Avatar:      a.Avatar,
				Action:      a.Action,
				Description: a.Description,
				Timestamp:   a.Timestamp,
			})
		}
	}

	return summary
}

// headlineStats computes the four headline counters, degrading each source
// independently.
func (s *DashboardService) headlineStats(ctx context.Context, rng models.DateRange) *dto.SummaryStats {
	stats := &dto.SummaryStats{}

	start := time.Now()
	courses, err := s.lms.Courses(ctx, rng)
	s.observe("learndash", start)
	if err != nil {
		s.degrade("course completion rate", err)
	} else {
		stats.CourseCompletionRate = meanCompletionRate(courses)
	}

	start = time.Now()
	quizzes, err := s.lms.Quizzes(ctx, rng, 0)
	s.observe("learndash", start)
	if err != nil {
		s.degrade("quiz average", err)
	} else {
		stats.QuizAverage = meanQuizScore(quizzes)
	}

	start = time.Now()
	users, err := s.community.UserStats(ctx, rng)
	s.observe("buddyboss", start)
	if err != nil {
		s.degrade("active users", err)
	} else {
		stats.ActiveUsers = users.ActiveUsers
	}

	start = time.Now()
	forum, err := s.community.ForumStats(ctx, rng)
	s.observe("buddyboss", start)
	if err != nil {
		s.degrade("forum posts", err)
	} else {
		stats.ForumPosts = forum.TotalPosts
	}

	if rng.Bounded() {
		s.attachTrends(ctx, rng, stats)
	}
	return stats
}

// attachTrends compares headline counters against the immediately preceding
// window of equal length. A trend is omitted when the prior value is zero
// or the prior window cannot be read.
func (s *DashboardService) attachTrends(ctx context.Context, rng models.DateRange, stats *dto.SummaryStats) {
	prev := rng.Previous()

	if users, err := s.community.UserStats(ctx, prev); err == nil && users.ActiveUsers > 0 {
		stats.ActiveUsersTrend = trendDelta(float64(stats.ActiveUsers), float64(users.ActiveUsers))
	}
	if forum, err := s.community.ForumStats(ctx, prev); err == nil && forum.TotalPosts > 0 {
		stats.ForumPostsTrend = trendDelta(float64(stats.ForumPosts), float64(forum.TotalPosts))
	}
}

func (s *DashboardService) communityEngagement(ctx context.Context, rng models.DateRange) ([]dto.EngagementPoint, error) {
	start := time.Now()
	rows, err := s.community.Engagement(ctx, rng)
	s.observe("buddyboss", start)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EngagementPoint, len(rows))
	for i, r := range rows {
		out[i] = dto.EngagementPoint{Date: r.Date, CourseViews: r.CourseViews, ForumActivity: r.ForumActivity}
	}
	return out, nil
}

func (s *DashboardService) observe(source string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveSourceQuery(source, time.Since(start))
	}
}

func (s *DashboardService) degrade(section string, err error) {
	s.logger.Warn("dashboard section degraded", zap.String("section", section), zap.Error(err))
}

// buildTopCourses ranks courses by enrollments, preserving catalogue order
// between equal counts, and caps the result at limit.
func buildTopCourses(courses []models.CourseRecord, limit int) []dto.TopCourse {
	ranked := make([]models.CourseRecord, len(courses))
	copy(ranked, courses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Enrollments > ranked[j].Enrollments
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	out := make([]dto.TopCourse, len(ranked))
	for i, c := range ranked {
		out[i] = dto.TopCourse{
			ID:             c.ID,
			Title:          c.Title,
			Instructor:     c.InstructorName,
			Enrollments:    c.Enrollments,
			CompletionRate: c.CompletionRate,
			Rating:         c.AverageRating,
		}
	}
	return out
}

// meanCompletionRate averages course completion rates and rounds to the
// nearest integer. An empty catalogue yields zero.
func meanCompletionRate(courses []models.CourseRecord) float64 {
	if len(courses) == 0 {
		return 0
	}
	var sum float64
	for _, c := range courses {
		sum += c.CompletionRate
	}
	return math.Round(sum / float64(len(courses)))
}

// meanQuizScore averages quiz scores and rounds to one decimal. No quizzes
// yields zero.
func meanQuizScore(quizzes []models.QuizRecord) float64 {
	if len(quizzes) == 0 {
		return 0
	}
	var sum float64
	for _, q := range quizzes {
		sum += q.AverageScore
	}
	return math.Round(sum/float64(len(quizzes))*10) / 10
}

func trendDelta(current, prior float64) *dto.TrendDelta {
	change := (current - prior) / prior * 100
	direction := "up"
	if change < 0 {
		direction = "down"
		change = -change
	}
	return &dto.TrendDelta{Direction: direction, Change: math.Round(change*10) / 10}
}
