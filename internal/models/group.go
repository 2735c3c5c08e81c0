package models

// GroupActivity describes one BuddyBoss group and its activity level.
type GroupActivity struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	MembersCount  int    `db:"members_count" json:"membersCount"`
	ActivityLevel int    `db:"activity_level" json:"activityLevel"`
}

// GroupStats aggregates BuddyBoss group counters.
type GroupStats struct {
	TotalGroups      int             `db:"total_groups" json:"totalGroups"`
	ActiveGroups     int             `db:"active_groups" json:"activeGroups"`
	GroupsByActivity []GroupActivity `json:"groupsByActivity"`
}
