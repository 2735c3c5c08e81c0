package dto

import "github.com/noah-isme/ldbb-analytics-api/internal/models"

// CourseDetail is one course with its lessons and quizzes embedded.
type CourseDetail struct {
	models.CourseRecord
	Lessons []models.LessonRecord `json:"lessons"`
	Quizzes []models.QuizRecord   `json:"quizzes"`
}
