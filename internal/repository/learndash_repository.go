package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// LearnDashRepository is the SQL-backed LMS adapter. It reads from the
// aggregate tables the sync job maintains and never writes.
type LearnDashRepository struct {
	db *sqlx.DB
}

// NewLearnDashRepository creates a LearnDash repository.
func NewLearnDashRepository(db *sqlx.DB) *LearnDashRepository {
	return &LearnDashRepository{db: db}
}

func rangeFilter(b *strings.Builder, args *[]interface{}, rng models.DateRange, column string) {
	if rng.Start != nil {
		*args = append(*args, *rng.Start)
		b.WriteString(" AND ")
		b.WriteString(column)
		b.WriteString(" >= ?")
	}
	if rng.End != nil {
		*args = append(*args, *rng.End)
		b.WriteString(" AND ")
		b.WriteString(column)
		b.WriteString(" <= ?")
	}
}

// Courses returns the course catalogue with aggregate statistics, filtered
// to courses active inside the range.
func (r *LearnDashRepository) Courses(ctx context.Context, rng models.DateRange) ([]models.CourseRecord, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, title, instructor_id, instructor_name, enrollments, completion_rate, average_rating, category
		FROM course_stats WHERE 1=1`)
	args := make([]interface{}, 0, 2)
	rangeFilter(&b, &args, rng, "last_activity_at")
	b.WriteString(" ORDER BY id")

	var rows []models.CourseRecord
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "learndash courses query failed")
	}
	return rows, nil
}

// Lessons returns the lessons of one course.
func (r *LearnDashRepository) Lessons(ctx context.Context, courseID int64) ([]models.LessonRecord, error) {
	const q = `SELECT id, title, course_id, view_count, completion_rate
		FROM lesson_stats WHERE course_id = $1 ORDER BY id`
	var rows []models.LessonRecord
	if err := r.db.SelectContext(ctx, &rows, q, courseID); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "learndash lessons query failed")
	}
	return rows, nil
}

// Quizzes returns quiz statistics, optionally filtered to one course.
func (r *LearnDashRepository) Quizzes(ctx context.Context, rng models.DateRange, courseID int64) ([]models.QuizRecord, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, title, course_id, average_score, pass_rate, total_attempts
		FROM quiz_stats WHERE 1=1`)
	args := make([]interface{}, 0, 3)
	if courseID != 0 {
		args = append(args, courseID)
		b.WriteString(" AND course_id = ?")
	}
	rangeFilter(&b, &args, rng, "last_attempt_at")
	b.WriteString(" ORDER BY id")

	var rows []models.QuizRecord
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "learndash quizzes query failed")
	}
	return rows, nil
}

// CompletionTrend returns the completion-rate series oldest first.
func (r *LearnDashRepository) CompletionTrend(ctx context.Context, rng models.DateRange) ([]models.TrendPoint, error) {
	var b strings.Builder
	b.WriteString(`SELECT period_label AS date, completion_rate AS rate
		FROM course_completion_trend WHERE 1=1`)
	args := make([]interface{}, 0, 2)
	rangeFilter(&b, &args, rng, "period_start")
	b.WriteString(" ORDER BY period_start")

	var rows []models.TrendPoint
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(b.String()), args...); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "learndash completion trend query failed")
	}
	return rows, nil
}

// EnrollmentByCategory returns enrollment share per category.
func (r *LearnDashRepository) EnrollmentByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	const q = `SELECT category, count FROM enrollment_by_category ORDER BY count DESC`
	var rows []models.CategoryCount
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, appErrors.ErrSourceUnavailable.Wrapf(err, "learndash enrollment query failed")
	}
	return rows, nil
}
