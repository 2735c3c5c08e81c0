package models

import "time"

// UserActivity is one BuddyBoss activity-stream entry. Sources return
// activities newest first.
type UserActivity struct {
	UserID      int64     `db:"user_id" json:"userId"`
	UserName    string    `db:"user_name" json:"userName"`
	Avatar      string    `db:"avatar" json:"avatar,omitempty"`
	Action      string    `db:"action" json:"action"`
	Description string    `db:"description" json:"description"`
	Timestamp   time.Time `db:"occurred_at" json:"timestamp"`
}

// CountPoint is one sample of a dated counter series.
type CountPoint struct {
	Date  string `db:"date" json:"date"`
	Count int    `db:"count" json:"count"`
}

// UserStats aggregates BuddyBoss member counters.
type UserStats struct {
	TotalUsers   int          `db:"total_users" json:"totalUsers"`
	ActiveUsers  int          `db:"active_users" json:"activeUsers"`
	NewUsers     int          `db:"new_users" json:"newUsers"`
	UserActivity []CountPoint `json:"userActivity"`
}

// EngagementPoint is one sample of the combined engagement series.
type EngagementPoint struct {
	Date          string `db:"date" json:"date"`
	CourseViews   int    `db:"course_views" json:"courseViews"`
	ForumActivity int    `db:"forum_activity" json:"forumActivity"`
}
