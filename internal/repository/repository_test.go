package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestCoursesUnboundedRangeHasNoFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLearnDashRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "instructor_id", "instructor_name", "enrollments", "completion_rate", "average_rating", "category"}).
		AddRow(1, "Advanced JavaScript", 11, "John Doe", 743, 78.0, 4.8, "Development").
		AddRow(2, "Python for Data Science", 12, "Jane Smith", 651, 82.0, 4.7, "Development")
	mock.ExpectQuery(`FROM course_stats WHERE 1=1 ORDER BY id`).
		WillReturnRows(rows)

	courses, err := repo.Courses(context.Background(), models.DateRange{})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Advanced JavaScript", courses[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoursesBoundedRangeBindsBothEnds(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLearnDashRepository(db)

	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM course_stats WHERE 1=1 AND last_activity_at >= \$1 AND last_activity_at <= \$2 ORDER BY id`).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "instructor_id", "instructor_name", "enrollments", "completion_rate", "average_rating", "category"}))

	_, err := repo.Courses(context.Background(), models.DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizzesCourseFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLearnDashRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "course_id", "average_score", "pass_rate", "total_attempts"}).
		AddRow(2, "Python Fundamentals Quiz", 2, 81.2, 88.0, 1050)
	mock.ExpectQuery(`FROM quiz_stats WHERE 1=1 AND course_id = \$1 ORDER BY id`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	quizzes, err := repo.Quizzes(context.Background(), models.DateRange{}, 2)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, int64(2), quizzes[0].CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoursesQueryErrorBecomesSourceUnavailable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLearnDashRepository(db)

	mock.ExpectQuery(`FROM course_stats`).WillReturnError(sql.ErrConnDone)

	_, err := repo.Courses(context.Background(), models.DateRange{})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSourceUnavailable))
}

func TestRecentActivitiesAppliesLimit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBuddyBossRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "user_name", "avatar", "action", "description", "occurred_at"}).
		AddRow(101, "Michael Scott", "", "completed", "Advanced JavaScript", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM activity_stream ORDER BY occurred_at DESC LIMIT $1`)).
		WithArgs(5).
		WillReturnRows(rows)

	feed, err := repo.RecentActivities(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsernameNoRowsIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
