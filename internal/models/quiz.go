package models

// QuizRecord is a LearnDash quiz with its aggregate statistics.
type QuizRecord struct {
	ID            int64   `db:"id" json:"id"`
	Title         string  `db:"title" json:"title"`
	CourseID      int64   `db:"course_id" json:"courseId"`
	AverageScore  float64 `db:"average_score" json:"averageScore"`
	PassRate      float64 `db:"pass_rate" json:"passRate"`
	TotalAttempts int     `db:"total_attempts" json:"totalAttempts"`
}
