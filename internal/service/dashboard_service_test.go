package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/internal/source"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeLMS struct {
	courses       []models.CourseRecord
	quizzes       []models.QuizRecord
	trend         []models.TrendPoint
	categories    []models.CategoryCount
	coursesErr    error
	quizzesErr    error
	trendErr      error
	categoriesErr error
	calls         int
}

func (f *fakeLMS) Courses(_ context.Context, _ models.DateRange) ([]models.CourseRecord, error) {
	f.calls++
	return f.courses, f.coursesErr
}

func (f *fakeLMS) Quizzes(_ context.Context, _ models.DateRange, _ int64) ([]models.QuizRecord, error) {
	f.calls++
	return f.quizzes, f.quizzesErr
}

func (f *fakeLMS) CompletionTrend(_ context.Context, _ models.DateRange) ([]models.TrendPoint, error) {
	f.calls++
	return f.trend, f.trendErr
}

func (f *fakeLMS) EnrollmentByCategory(_ context.Context) ([]models.CategoryCount, error) {
	f.calls++
	return f.categories, f.categoriesErr
}

type fakeCommunity struct {
	users         *models.UserStats
	prevUsers     *models.UserStats
	forum         *models.ForumStats
	prevForum     *models.ForumStats
	feed          []models.UserActivity
	engagement    []models.EngagementPoint
	usersErr      error
	forumErr      error
	feedErr       error
	engagementErr error
	pivot         time.Time
	calls         int
}

func (f *fakeCommunity) isPrior(rng models.DateRange) bool {
	return !f.pivot.IsZero() && rng.End != nil && rng.End.Before(f.pivot)
}

func (f *fakeCommunity) UserStats(_ context.Context, rng models.DateRange) (*models.UserStats, error) {
	f.calls++
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	if f.isPrior(rng) && f.prevUsers != nil {
		return f.prevUsers, nil
	}
	return f.users, nil
}

func (f *fakeCommunity) ForumStats(_ context.Context, rng models.DateRange) (*models.ForumStats, error) {
	f.calls++
	if f.forumErr != nil {
		return nil, f.forumErr
	}
	if f.isPrior(rng) && f.prevForum != nil {
		return f.prevForum, nil
	}
	return f.forum, nil
}

func (f *fakeCommunity) RecentActivities(_ context.Context, limit int) ([]models.UserActivity, error) {
	f.calls++
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	feed := f.feed
	if limit > 0 && limit < len(feed) {
		feed = feed[:limit]
	}
	return feed, nil
}

func (f *fakeCommunity) Engagement(_ context.Context, _ models.DateRange) ([]models.EngagementPoint, error) {
	f.calls++
	return f.engagement, f.engagementErr
}

type stubCacheRepo struct {
	store map[string][]byte
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{store: make(map[string][]byte)}
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	return nil
}

func newMockDashboard(cache *CacheService) *DashboardService {
	return NewDashboardService(DashboardServiceParams{
		LMS:       source.NewLearnDash(),
		Community: source.NewBuddyBossWithClock(func() time.Time { return fixedNow }),
		Cache:     cache,
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return fixedNow },
	})
}

func TestStatsHeadlineNumbersFromMockSources(t *testing.T) {
	svc := newMockDashboard(nil)

	summary, hit, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{})
	require.NoError(t, err)
	assert.False(t, hit)

	assert.Equal(t, 1254, summary.ActiveUsers)
	assert.Equal(t, float64(68), summary.CourseCompletionRate)
	// (78.5 + 81.2 + 75.8 + 68.4) / 4 = 75.975, rounded to one decimal
	assert.Equal(t, 76.0, summary.QuizAverage)
	assert.Equal(t, 3782, summary.ForumPosts)

	require.Len(t, summary.TopCourses, 4)
	assert.Equal(t, []int{743, 651, 582, 479}, []int{
		summary.TopCourses[0].Enrollments,
		summary.TopCourses[1].Enrollments,
		summary.TopCourses[2].Enrollments,
		summary.TopCourses[3].Enrollments,
	})

	require.Len(t, summary.RecentActivities, 5)
	assert.Equal(t, "Michael Scott", summary.RecentActivities[0].User)

	// unbounded range never carries trends
	assert.Nil(t, summary.ActiveUsersTrend)
	assert.Nil(t, summary.ForumPostsTrend)
}

func TestStatsInvalidRangeSkipsSources(t *testing.T) {
	lms := &fakeLMS{}
	community := &fakeCommunity{}
	svc := NewDashboardService(DashboardServiceParams{
		LMS:       lms,
		Community: community,
		Now:       func() time.Time { return fixedNow },
	})

	_, _, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{StartDate: "2026-03-10", EndDate: "2026-03-01"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))
	assert.Zero(t, lms.calls)
	assert.Zero(t, community.calls)
}

func TestStatsDegradesWhenForumSourceFails(t *testing.T) {
	lms := &fakeLMS{
		courses: []models.CourseRecord{{ID: 1, Title: "Course A", Enrollments: 100, CompletionRate: 80}},
		quizzes: []models.QuizRecord{{ID: 1, Title: "Quiz A", AverageScore: 90}},
	}
	community := &fakeCommunity{
		users:    &models.UserStats{ActiveUsers: 42},
		forumErr: appErrors.ErrSourceUnavailable,
		feed: []models.UserActivity{
			{UserID: 1, UserName: "A", Action: "enrolled", Timestamp: fixedNow},
		},
		engagement: []models.EngagementPoint{{Date: "Jan", CourseViews: 10, ForumActivity: 5}},
	}
	svc := NewDashboardService(DashboardServiceParams{
		LMS:       lms,
		Community: community,
		Now:       func() time.Time { return fixedNow },
	})

	summary, _, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{})
	require.NoError(t, err)

	// forum sections collapse to zero values, everything else survives
	assert.Zero(t, summary.ForumPosts)
	assert.Empty(t, summary.ForumActivity)
	assert.Equal(t, 42, summary.ActiveUsers)
	assert.Equal(t, float64(80), summary.CourseCompletionRate)
	require.Len(t, summary.TopCourses, 1)
}

func TestStatsEmptyCollectionsYieldZeroAverages(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		LMS: &fakeLMS{},
		Community: &fakeCommunity{
			users: &models.UserStats{},
			forum: &models.ForumStats{},
		},
		Now: func() time.Time { return fixedNow },
	})

	summary, _, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{})
	require.NoError(t, err)
	assert.Zero(t, summary.CourseCompletionRate)
	assert.Zero(t, summary.QuizAverage)
}

func TestStatsCacheHitOnSecondCall(t *testing.T) {
	cache := NewCacheService(newStubCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	svc := newMockDashboard(cache)

	first, hit, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{})
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.ActiveUsers, second.ActiveUsers)
}

func TestStatsCacheKeyedByRole(t *testing.T) {
	repo := newStubCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := newMockDashboard(cache)

	_, _, err := svc.Stats(context.Background(), models.RoleAdmin, models.RawDateRange{})
	require.NoError(t, err)
	_, hit, err := svc.Stats(context.Background(), models.RoleInstructor, models.RawDateRange{})
	require.NoError(t, err)
	assert.False(t, hit, "different role must not share a cache entry")
	assert.Len(t, repo.store, 2)
}

func TestSummaryStatsTrendsComparePriorWindow(t *testing.T) {
	community := &fakeCommunity{
		users:     &models.UserStats{ActiveUsers: 120},
		prevUsers: &models.UserStats{ActiveUsers: 100},
		forum:     &models.ForumStats{TotalPosts: 90},
		prevForum: &models.ForumStats{TotalPosts: 100},
		pivot:     time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := NewDashboardService(DashboardServiceParams{
		LMS:       &fakeLMS{},
		Community: community,
		Now:       func() time.Time { return fixedNow },
	})

	raw := models.RawDateRange{StartDate: "2026-03-01", EndDate: "2026-03-10"}
	stats, _, err := svc.SummaryStats(context.Background(), models.RoleAdmin, raw)
	require.NoError(t, err)

	require.NotNil(t, stats.ActiveUsersTrend)
	assert.Equal(t, "up", stats.ActiveUsersTrend.Direction)
	assert.Equal(t, 20.0, stats.ActiveUsersTrend.Change)

	require.NotNil(t, stats.ForumPostsTrend)
	assert.Equal(t, "down", stats.ForumPostsTrend.Direction)
	assert.Equal(t, 10.0, stats.ForumPostsTrend.Change)
}

func TestSummaryStatsTrendOmittedWhenPriorZero(t *testing.T) {
	community := &fakeCommunity{
		users:     &models.UserStats{ActiveUsers: 120},
		prevUsers: &models.UserStats{},
		forum:     &models.ForumStats{TotalPosts: 90},
		prevForum: &models.ForumStats{},
		pivot:     time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	svc := NewDashboardService(DashboardServiceParams{
		LMS:       &fakeLMS{},
		Community: community,
		Now:       func() time.Time { return fixedNow },
	})

	raw := models.RawDateRange{StartDate: "2026-03-01", EndDate: "2026-03-10"}
	stats, _, err := svc.SummaryStats(context.Background(), models.RoleAdmin, raw)
	require.NoError(t, err)
	assert.Nil(t, stats.ActiveUsersTrend)
	assert.Nil(t, stats.ForumPostsTrend)
}

func TestTopCoursesStableTieBreak(t *testing.T) {
	lms := &fakeLMS{courses: []models.CourseRecord{
		{ID: 1, Title: "First", Enrollments: 200},
		{ID: 2, Title: "Second", Enrollments: 500},
		{ID: 3, Title: "Third", Enrollments: 200},
	}}
	svc := NewDashboardService(DashboardServiceParams{
		LMS:       lms,
		Community: &fakeCommunity{},
		Now:       func() time.Time { return fixedNow },
	})

	top, err := svc.TopCourses(context.Background(), models.RawDateRange{}, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(2), top[0].ID)
	// ties keep catalogue order
	assert.Equal(t, int64(1), top[1].ID)
	assert.Equal(t, int64(3), top[2].ID)
}

func TestTopCoursesDefaultLimit(t *testing.T) {
	svc := newMockDashboard(nil)
	top, err := svc.TopCourses(context.Background(), models.RawDateRange{}, 0)
	require.NoError(t, err)
	assert.Len(t, top, 4)
}

func TestRecentActivitiesCapped(t *testing.T) {
	svc := newMockDashboard(nil)
	feed, err := svc.RecentActivities(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Timestamp.After(feed[i-1].Timestamp))
	}
}

func TestSectionEndpointsSurfaceSourceErrors(t *testing.T) {
	community := &fakeCommunity{
		forumErr:      appErrors.ErrSourceUnavailable,
		engagementErr: appErrors.ErrSourceUnavailable,
	}
	svc := NewDashboardService(DashboardServiceParams{
		LMS:       &fakeLMS{coursesErr: appErrors.ErrSourceUnavailable},
		Community: community,
		Now:       func() time.Time { return fixedNow },
	})

	_, err := svc.ForumActivity(context.Background(), models.RawDateRange{})
	assert.True(t, appErrors.Is(err, appErrors.ErrSourceUnavailable))

	_, err = svc.UserEngagement(context.Background(), models.RawDateRange{})
	assert.True(t, appErrors.Is(err, appErrors.ErrSourceUnavailable))

	_, err = svc.TopCourses(context.Background(), models.RawDateRange{}, 0)
	assert.True(t, appErrors.Is(err, appErrors.ErrSourceUnavailable))
}
