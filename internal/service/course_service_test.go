package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	"github.com/noah-isme/ldbb-analytics-api/internal/source"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

func newMockCourses() *CourseService {
	return NewCourseService(source.NewLearnDash(), nil, nil, time.Minute)
}

func TestCoursesListsCatalogue(t *testing.T) {
	svc := newMockCourses()

	courses, hit, err := svc.Courses(context.Background(), models.RawDateRange{})
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, courses, 4)
}

func TestCourseDetailEmbedsLessonsAndQuizzes(t *testing.T) {
	svc := newMockCourses()

	detail, err := svc.Course(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "UX Design Fundamentals", detail.Title)
	require.Len(t, detail.Quizzes, 1)
	assert.Equal(t, "Design Principles Quiz", detail.Quizzes[0].Title)
	assert.NotEmpty(t, detail.Lessons)
}

func TestCourseUnknownIDIsNotFound(t *testing.T) {
	svc := newMockCourses()

	_, err := svc.Course(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestQuizzesFilterAndLookup(t *testing.T) {
	svc := NewQuizService(source.NewLearnDash(), nil, nil, time.Minute)

	quizzes, hit, err := svc.Quizzes(context.Background(), models.RawDateRange{}, 2)
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, quizzes, 1)

	quiz, err := svc.Quiz(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Marketing Strategy Quiz", quiz.Title)

	_, err = svc.Quiz(context.Background(), 77)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
