// Package source provides the built-in data source adapters. The mock
// adapters serve deterministic collections so the whole API works without a
// live WordPress install; the SQL-backed adapters live in the repository
// package.
package source

import (
	"context"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
)

// LearnDash is the mock LMS adapter. It is read-only and safe for
// concurrent use.
type LearnDash struct {
	courses    []models.CourseRecord
	lessons    map[int64][]models.LessonRecord
	quizzes    []models.QuizRecord
	trend      []models.TrendPoint
	categories []models.CategoryCount
}

// NewLearnDash builds the adapter with its fixed course catalogue.
func NewLearnDash() *LearnDash {
	return &LearnDash{
		courses: []models.CourseRecord{
			{ID: 1, Title: "Advanced JavaScript", InstructorID: 11, InstructorName: "John Doe", Enrollments: 743, CompletionRate: 78, AverageRating: 4.8, Category: "Development"},
			{ID: 2, Title: "Python for Data Science", InstructorID: 12, InstructorName: "Jane Smith", Enrollments: 651, CompletionRate: 82, AverageRating: 4.7, Category: "Development"},
			{ID: 3, Title: "UX Design Fundamentals", InstructorID: 13, InstructorName: "Alice Johnson", Enrollments: 582, CompletionRate: 64, AverageRating: 4.5, Category: "Design"},
			{ID: 4, Title: "Digital Marketing Essentials", InstructorID: 14, InstructorName: "Robert Brown", Enrollments: 479, CompletionRate: 48, AverageRating: 4.2, Category: "Marketing"},
		},
		lessons: map[int64][]models.LessonRecord{
			1: {
				{ID: 101, Title: "Closures and Scope", CourseID: 1, ViewCount: 1320, CompletionRate: 84},
				{ID: 102, Title: "Async Patterns", CourseID: 1, ViewCount: 1184, CompletionRate: 76},
			},
			2: {
				{ID: 201, Title: "NumPy Essentials", CourseID: 2, ViewCount: 1010, CompletionRate: 81},
				{ID: 202, Title: "Pandas in Practice", CourseID: 2, ViewCount: 948, CompletionRate: 74},
			},
			3: {
				{ID: 301, Title: "Design Thinking", CourseID: 3, ViewCount: 866, CompletionRate: 69},
			},
			4: {
				{ID: 401, Title: "SEO Foundations", CourseID: 4, ViewCount: 702, CompletionRate: 55},
			},
		},
		quizzes: []models.QuizRecord{
			{ID: 1, Title: "JavaScript Basics Quiz", CourseID: 1, AverageScore: 78.5, PassRate: 82, TotalAttempts: 1245},
			{ID: 2, Title: "Python Fundamentals Quiz", CourseID: 2, AverageScore: 81.2, PassRate: 88, TotalAttempts: 1050},
			{ID: 3, Title: "Design Principles Quiz", CourseID: 3, AverageScore: 75.8, PassRate: 79, TotalAttempts: 890},
			{ID: 4, Title: "Marketing Strategy Quiz", CourseID: 4, AverageScore: 68.4, PassRate: 71, TotalAttempts: 745},
		},
		trend: []models.TrendPoint{
			{Date: "Jan", Rate: 55},
			{Date: "Feb", Rate: 59},
			{Date: "Mar", Rate: 62},
			{Date: "Apr", Rate: 64},
			{Date: "May", Rate: 66},
			{Date: "Jun", Rate: 68},
		},
		categories: []models.CategoryCount{
			{Category: "Development", Count: 35},
			{Category: "Business", Count: 25},
			{Category: "Design", Count: 20},
			{Category: "Marketing", Count: 15},
			{Category: "Other", Count: 5},
		},
	}
}

// Courses returns the catalogue with aggregate statistics. The mock
// catalogue has no per-course timestamps, so the range is accepted for
// interface symmetry only.
func (s *LearnDash) Courses(_ context.Context, _ models.DateRange) ([]models.CourseRecord, error) {
	out := make([]models.CourseRecord, len(s.courses))
	copy(out, s.courses)
	return out, nil
}

// Lessons returns the lessons of one course, empty for unknown ids.
func (s *LearnDash) Lessons(_ context.Context, courseID int64) ([]models.LessonRecord, error) {
	rows := s.lessons[courseID]
	out := make([]models.LessonRecord, len(rows))
	copy(out, rows)
	return out, nil
}

// Quizzes returns quiz statistics, optionally filtered to one course.
// courseID zero means all courses.
func (s *LearnDash) Quizzes(_ context.Context, _ models.DateRange, courseID int64) ([]models.QuizRecord, error) {
	out := make([]models.QuizRecord, 0, len(s.quizzes))
	for _, q := range s.quizzes {
		if courseID != 0 && q.CourseID != courseID {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// CompletionTrend returns the completion-rate series oldest first.
func (s *LearnDash) CompletionTrend(_ context.Context, _ models.DateRange) ([]models.TrendPoint, error) {
	out := make([]models.TrendPoint, len(s.trend))
	copy(out, s.trend)
	return out, nil
}

// EnrollmentByCategory returns enrollment share per course category.
func (s *LearnDash) EnrollmentByCategory(_ context.Context) ([]models.CategoryCount, error) {
	out := make([]models.CategoryCount, len(s.categories))
	copy(out, s.categories)
	return out, nil
}
