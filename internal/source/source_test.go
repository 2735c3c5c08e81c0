package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
)

func TestLearnDashCoursesAreDeterministic(t *testing.T) {
	s := NewLearnDash()
	first, err := s.Courses(context.Background(), models.DateRange{})
	require.NoError(t, err)
	second, err := s.Courses(context.Background(), models.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	assert.Equal(t, 743, first[0].Enrollments)
}

func TestLearnDashQuizzesFilterByCourse(t *testing.T) {
	s := NewLearnDash()
	quizzes, err := s.Quizzes(context.Background(), models.DateRange{}, 2)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "Python Fundamentals Quiz", quizzes[0].Title)

	all, err := s.Quizzes(context.Background(), models.DateRange{}, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLearnDashLessonsUnknownCourseIsEmpty(t *testing.T) {
	s := NewLearnDash()
	lessons, err := s.Lessons(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, lessons)
}

func TestBuddyBossRecentActivitiesNewestFirst(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	s := NewBuddyBossWithClock(func() time.Time { return now })

	feed, err := s.RecentActivities(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, feed, 5)
	for i := 1; i < len(feed); i++ {
		assert.True(t, feed[i].Timestamp.Before(feed[i-1].Timestamp))
	}
	assert.Equal(t, "Michael Scott", feed[0].UserName)
}

func TestBuddyBossRecentActivitiesRespectLimit(t *testing.T) {
	s := NewBuddyBoss()
	feed, err := s.RecentActivities(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestUserDirectoryFindAndTokens(t *testing.T) {
	d := NewUserDirectory()
	ctx := context.Background()

	u, err := d.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = d.FindByUsername(ctx, "nobody")
	assert.Error(t, err)

	token := models.RefreshToken{ID: "rt-1", UserID: u.ID, Token: "opaque", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, d.CreateRefreshToken(ctx, token))
	got, err := d.FindRefreshToken(ctx, "opaque")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
}
