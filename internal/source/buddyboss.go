package source

import (
	"context"
	"time"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
)

// BuddyBoss is the mock community adapter. Activity timestamps are derived
// from the injected clock so the feed stays fresh across restarts.
type BuddyBoss struct {
	now func() time.Time
}

// NewBuddyBoss builds the adapter with the wall clock.
func NewBuddyBoss() *BuddyBoss {
	return &BuddyBoss{now: time.Now}
}

// NewBuddyBossWithClock builds the adapter with a fixed clock for tests.
func NewBuddyBossWithClock(now func() time.Time) *BuddyBoss {
	return &BuddyBoss{now: now}
}

// UserStats returns member counters with a weekly activity series.
func (s *BuddyBoss) UserStats(_ context.Context, _ models.DateRange) (*models.UserStats, error) {
	return &models.UserStats{
		TotalUsers:  3845,
		ActiveUsers: 1254,
		NewUsers:    248,
		UserActivity: []models.CountPoint{
			{Date: "Week 1", Count: 980},
			{Date: "Week 2", Count: 1045},
			{Date: "Week 3", Count: 1122},
			{Date: "Week 4", Count: 1190},
			{Date: "Week 5", Count: 1218},
			{Date: "Week 6", Count: 1254},
		},
	}, nil
}

// ForumStats returns forum counters with a weekly posting series.
func (s *BuddyBoss) ForumStats(_ context.Context, _ models.DateRange) (*models.ForumStats, error) {
	return &models.ForumStats{
		TotalForums:  24,
		TotalTopics:  876,
		TotalPosts:   3782,
		TotalReplies: 2906,
		ActivityByDate: []models.ActivityPoint{
			{Date: "Week 1", Posts: 320},
			{Date: "Week 2", Posts: 350},
			{Date: "Week 3", Posts: 410},
			{Date: "Week 4", Posts: 390},
			{Date: "Week 5", Posts: 450},
			{Date: "Week 6", Posts: 420},
		},
	}, nil
}

// GroupStats returns group counters, groups ordered as stored.
func (s *BuddyBoss) GroupStats(_ context.Context, _ models.DateRange) (*models.GroupStats, error) {
	return &models.GroupStats{
		TotalGroups:  28,
		ActiveGroups: 19,
		GroupsByActivity: []models.GroupActivity{
			{ID: 1, Name: "JavaScript Developers", MembersCount: 234, ActivityLevel: 85},
			{ID: 2, Name: "Data Science Hub", MembersCount: 198, ActivityLevel: 72},
			{ID: 3, Name: "Design Community", MembersCount: 176, ActivityLevel: 64},
			{ID: 4, Name: "Marketing Pros", MembersCount: 143, ActivityLevel: 58},
			{ID: 5, Name: "Student Lounge", MembersCount: 312, ActivityLevel: 42},
		},
	}, nil
}

// RecentActivities returns the activity feed newest first, capped at limit.
// A non-positive limit returns the whole feed.
func (s *BuddyBoss) RecentActivities(_ context.Context, limit int) ([]models.UserActivity, error) {
	now := s.now()
	feed := []models.UserActivity{
		{UserID: 101, UserName: "Michael Scott", Action: "completed", Description: "Advanced JavaScript", Timestamp: now.Add(-2 * time.Hour)},
		{UserID: 102, UserName: "Jim Halpert", Action: "enrolled", Description: "Python for Data Science", Timestamp: now.Add(-5 * time.Hour)},
		{UserID: 103, UserName: "Pam Beesly", Action: "posted", Description: "UX critique thread in Design Community", Timestamp: now.Add(-26 * time.Hour)},
		{UserID: 104, UserName: "Dwight Schrute", Action: "passed", Description: "Marketing Strategy Quiz", Timestamp: now.Add(-30 * time.Hour)},
		{UserID: 105, UserName: "Kelly Kapoor", Action: "joined", Description: "Student Lounge group", Timestamp: now.Add(-48 * time.Hour)},
	}
	if limit > 0 && limit < len(feed) {
		feed = feed[:limit]
	}
	return feed, nil
}

// Engagement returns the monthly course-view and forum-activity series.
func (s *BuddyBoss) Engagement(_ context.Context, _ models.DateRange) ([]models.EngagementPoint, error) {
	return []models.EngagementPoint{
		{Date: "Jan", CourseViews: 1200, ForumActivity: 850},
		{Date: "Feb", CourseViews: 1350, ForumActivity: 920},
		{Date: "Mar", CourseViews: 1480, ForumActivity: 1010},
		{Date: "Apr", CourseViews: 1390, ForumActivity: 960},
		{Date: "May", CourseViews: 1540, ForumActivity: 1080},
		{Date: "Jun", CourseViews: 1610, ForumActivity: 1140},
		{Date: "Jul", CourseViews: 1450, ForumActivity: 990},
		{Date: "Aug", CourseViews: 1380, ForumActivity: 930},
		{Date: "Sep", CourseViews: 1620, ForumActivity: 1170},
		{Date: "Oct", CourseViews: 1740, ForumActivity: 1230},
		{Date: "Nov", CourseViews: 1690, ForumActivity: 1190},
		{Date: "Dec", CourseViews: 1580, ForumActivity: 1100},
	}, nil
}
