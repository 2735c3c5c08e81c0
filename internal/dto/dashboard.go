package dto

import "time"

// EngagementPoint is one sample of the combined engagement series.
type EngagementPoint struct {
	Date          string `json:"date" validate:"required"`
	CourseViews   int    `json:"courseViews" validate:"gte=0"`
	ForumActivity int    `json:"forumActivity" validate:"gte=0"`
}

// CategoryCount buckets course enrollments by category.
type CategoryCount struct {
	Category string `json:"category" validate:"required"`
	Count    int    `json:"count" validate:"gte=0"`
}

// TrendPoint is one sample of the completion-rate trend series.
type TrendPoint struct {
	Date string  `json:"date" validate:"required"`
	Rate float64 `json:"rate" validate:"gte=0,lte=100"`
}

// ActivityPoint is one sample of the forum posting series.
type ActivityPoint struct {
	Date  string `json:"date" validate:"required"`
	Posts int    `json:"posts" validate:"gte=0"`
}

// TopCourse is one leaderboard entry ranked by enrollments.
type TopCourse struct {
	ID             int64   `json:"id" validate:"gt=0"`
	Title          string  `json:"title" validate:"required"`
	Instructor     string  `json:"instructor"`
	Enrollments    int     `json:"enrollments" validate:"gte=0"`
	CompletionRate float64 `json:"completionRate" validate:"gte=0,lte=100"`
	Rating         float64 `json:"rating" validate:"gte=0,lte=5"`
}

// RecentActivity is one feed entry, newest first.
type RecentActivity struct {
	UserID      int64     `json:"userId" validate:"gt=0"`
	User        string    `json:"user" validate:"required"`
	Avatar      string    `json:"avatar,omitempty"`
	Action      string    `json:"action" validate:"required"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp" validate:"required"`
}

// TrendDelta compares a headline counter against the immediately
// preceding window of equal length.
type TrendDelta struct {
	Direction string  `json:"direction" validate:"oneof=up down"`
	Change    float64 `json:"change" validate:"gte=0"`
}

// SummaryStats carries the four headline counters with optional trends.
type SummaryStats struct {
	ActiveUsers          int         `json:"activeUsers" validate:"gte=0"`
	CourseCompletionRate float64     `json:"courseCompletionRate" validate:"gte=0,lte=100"`
	QuizAverage          float64     `json:"quizAverage" validate:"gte=0,lte=100"`
	ForumPosts           int         `json:"forumPosts" validate:"gte=0"`
	ActiveUsersTrend     *TrendDelta `json:"activeUsersTrend,omitempty"`
	ForumPostsTrend      *TrendDelta `json:"forumPostsTrend,omitempty"`
}

// DashboardSummary is the full dashboard payload: headline counters plus
// every chart series the admin screen renders.
type DashboardSummary struct {
	SummaryStats
	UserEngagement        []EngagementPoint `json:"userEngagement" validate:"dive"`
	CourseEnrollment      []CategoryCount   `json:"courseEnrollment" validate:"dive"`
	CourseCompletionTrend []TrendPoint      `json:"courseCompletionTrend" validate:"dive"`
	ForumActivity         []ActivityPoint   `json:"forumActivity" validate:"dive"`
	TopCourses            []TopCourse       `json:"topCourses" validate:"dive"`
	RecentActivities      []RecentActivity  `json:"recentActivities" validate:"dive"`
}
