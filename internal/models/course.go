package models

// CourseRecord is a LearnDash course with its aggregate statistics.
type CourseRecord struct {
	ID             int64   `db:"id" json:"id"`
	Title          string  `db:"title" json:"title"`
	InstructorID   int64   `db:"instructor_id" json:"instructorId"`
	InstructorName string  `db:"instructor_name" json:"instructorName"`
	Enrollments    int     `db:"enrollments" json:"enrollments"`
	CompletionRate float64 `db:"completion_rate" json:"completionRate"`
	AverageRating  float64 `db:"average_rating" json:"averageRating"`
	Category       string  `db:"category" json:"category"`
}

// LessonRecord is a LearnDash lesson with view statistics.
type LessonRecord struct {
	ID             int64   `db:"id" json:"id"`
	Title          string  `db:"title" json:"title"`
	CourseID       int64   `db:"course_id" json:"courseId"`
	ViewCount      int     `db:"view_count" json:"viewCount"`
	CompletionRate float64 `db:"completion_rate" json:"completionRate"`
}

// CategoryCount buckets course enrollments by category.
type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

// TrendPoint is one sample of the course completion trend series.
type TrendPoint struct {
	Date string  `db:"date" json:"date"`
	Rate float64 `db:"rate" json:"rate"`
}
