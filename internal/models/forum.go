package models

// ActivityPoint is one sample of the forum posting series.
type ActivityPoint struct {
	Date  string `db:"date" json:"date"`
	Posts int    `db:"posts" json:"posts"`
}

// ForumStats aggregates BuddyBoss forum counters with a posting series
// ordered oldest to newest.
type ForumStats struct {
	TotalForums    int             `db:"total_forums" json:"totalForums"`
	TotalTopics    int             `db:"total_topics" json:"totalTopics"`
	TotalPosts     int             `db:"total_posts" json:"totalPosts"`
	TotalReplies   int             `db:"total_replies" json:"totalReplies"`
	ActivityByDate []ActivityPoint `json:"activityByDate"`
}
