package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// BuddyBossRepository is the SQL-backed community adapter.
type BuddyBossRepository struct {
	db *sqlx.DB
}

// NewBuddyBossRepository creates a BuddyBoss repository.
func NewBuddyBossRepository(db *sqlx.DB) *BuddyBossRepository {
	return &BuddyBossRepository{db: db}
}

// UserStats returns member counters with a dated activity series.
func (r *BuddyBossRepository) UserStats(ctx context.Context, rng models.DateRange) (*models.UserStats, error) {
	const counters = `SELECT total_users, active_users, new_users FROM member_stats LIMIT 1`
	var stats models.UserStats
	if err := r.db.GetContext(ctx, &stats, counters); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss member counters query failed")
	}

	var b strings.Builder
	b.WriteString(`SELECT period_label AS date, active_count AS count
		FROM member_activity_series WHERE 1=1`)
	args := make([]interface{}, 0, 2)
	rangeFilter(&b, &args, rng, "period_start")
	b.WriteString(" ORDER BY period_start")
	if err := r.db.SelectContext(ctx, &stats.UserActivity, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss member series query failed")
	}
	return &stats, nil
}

// ForumStats returns forum counters with a dated posting series.
func (r *BuddyBossRepository) ForumStats(ctx context.Context, rng models.DateRange) (*models.ForumStats, error) {
	const counters = `SELECT total_forums, total_topics, total_posts, total_replies FROM forum_stats LIMIT 1`
	var stats models.ForumStats
	if err := r.db.GetContext(ctx, &stats, counters); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss forum counters query failed")
	}

	var b strings.Builder
	b.WriteString(`SELECT period_label AS date, post_count AS posts
		FROM forum_activity_series WHERE 1=1`)
	args := make([]interface{}, 0, 2)
	rangeFilter(&b, &args, rng, "period_start")
	b.WriteString(" ORDER BY period_start")
	if err := r.db.SelectContext(ctx, &stats.ActivityByDate, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss forum series query failed")
	}
	return &stats, nil
}

// GroupStats returns group counters with per-group activity levels.
func (r *BuddyBossRepository) GroupStats(ctx context.Context, rng models.DateRange) (*models.GroupStats, error) {
	const counters = `SELECT total_groups, active_groups FROM group_stats LIMIT 1`
	var stats models.GroupStats
	if err := r.db.GetContext(ctx, &stats, counters); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss group counters query failed")
	}

	var b strings.Builder
	b.WriteString(`SELECT id, name, members_count, activity_level
		FROM group_activity WHERE 1=1`)
	args := make([]interface{}, 0, 2)
	rangeFilter(&b, &args, rng, "last_activity_at")
	b.WriteString(" ORDER BY id")
	if err := r.db.SelectContext(ctx, &stats.GroupsByActivity, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss group activity query failed")
	}
	return &stats, nil
}

// RecentActivities returns the activity feed newest first.
func (r *BuddyBossRepository) RecentActivities(ctx context.Context, limit int) ([]models.UserActivity, error) {
	var b strings.Builder
	b.WriteString(`SELECT user_id, user_name, avatar, action, description, occurred_at
		FROM activity_stream ORDER BY occurred_at DESC`)
	args := make([]interface{}, 0, 1)
	if limit > 0 {
		args = append(args, limit)
		b.WriteString(" LIMIT ?")
	}
	var rows []models.UserActivity
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss activity stream query failed")
	}
	return rows, nil
}

// Engagement returns the combined engagement series oldest first.
func (r *BuddyBossRepository) Engagement(ctx context.Context, rng models.DateRange) ([]models.EngagementPoint, error) {
	var b strings.Builder
	b.WriteString(`SELECT period_label AS date, course_views, forum_activity
		FROM engagement_series WHERE 1=1`)
	args := make([]interface{}, 0, 2)
	rangeFilter(&b, &args, rng, "period_start")
	b.WriteString(" ORDER BY period_start")

	var rows []models.EngagementPoint
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "buddyboss engagement query failed")
	}
	return rows, nil
}
