package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

func validSummary() *DashboardSummary {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	return &DashboardSummary{
		SummaryStats: SummaryStats{
			ActiveUsers:          1254,
			CourseCompletionRate: 68,
			QuizAverage:          76.4,
			ForumPosts:           3782,
		},
		UserEngagement: []EngagementPoint{{Date: "Jan", CourseViews: 120, ForumActivity: 85}},
		CourseEnrollment: []CategoryCount{
			{Category: "Development", Count: 35},
			{Category: "Business", Count: 25},
		},
		CourseCompletionTrend: []TrendPoint{{Date: "Jan", Rate: 55}},
		ForumActivity:         []ActivityPoint{{Date: "Week 1", Posts: 320}},
		TopCourses: []TopCourse{
			{ID: 1, Title: "Advanced JavaScript", Instructor: "John Doe", Enrollments: 743, CompletionRate: 78, Rating: 4.8},
			{ID: 2, Title: "Python for Data Science", Instructor: "Jane Smith", Enrollments: 651, CompletionRate: 82, Rating: 4.7},
		},
		RecentActivities: []RecentActivity{
			{UserID: 5, User: "Michael Scott", Action: "completed", Description: "Advanced JavaScript", Timestamp: now},
			{UserID: 6, User: "Jim Halpert", Action: "enrolled", Description: "Python for Data Science", Timestamp: now.Add(-3 * time.Hour)},
		},
	}
}

func TestShapeAcceptsValidSummary(t *testing.T) {
	assert.NoError(t, Shape(validSummary()))
}

func TestShapeRejectsNilSummary(t *testing.T) {
	err := Shape(nil)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSchemaViolation))
}

func TestShapeRejectsRateOutOfBounds(t *testing.T) {
	s := validSummary()
	s.CourseCompletionRate = 134
	err := Shape(s)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSchemaViolation))
}

func TestShapeRejectsUnorderedLeaderboard(t *testing.T) {
	s := validSummary()
	s.TopCourses[0], s.TopCourses[1] = s.TopCourses[1], s.TopCourses[0]
	err := Shape(s)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSchemaViolation))
}

func TestShapeRejectsUnorderedFeed(t *testing.T) {
	s := validSummary()
	s.RecentActivities[0], s.RecentActivities[1] = s.RecentActivities[1], s.RecentActivities[0]
	err := Shape(s)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSchemaViolation))
}
