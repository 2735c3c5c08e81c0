package dto

import (
	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

var validate = validator.New()

// Shape verifies the aggregator's output contract before it leaves the
// service layer: field bounds, leaderboard ordering and feed ordering. A
// violation here is a programming error, never a client mistake.
func Shape(s *DashboardSummary) error {
	if s == nil {
		return appErrors.ErrSchemaViolation.Wrapf(nil, "nil summary")
	}
	if err := validate.Struct(s); err != nil {
		return appErrors.ErrSchemaViolation.Wrapf(err, "summary field out of bounds")
	}
	for i := 1; i < len(s.TopCourses); i++ {
		if s.TopCourses[i].Enrollments > s.TopCourses[i-1].Enrollments {
			return appErrors.ErrSchemaViolation.Wrapf(nil, "topCourses not ordered by enrollments at index %d", i)
		}
	}
	for i := 1; i < len(s.RecentActivities); i++ {
		if s.RecentActivities[i].Timestamp.After(s.RecentActivities[i-1].Timestamp) {
			return appErrors.ErrSchemaViolation.Wrapf(nil, "recentActivities not newest-first at index %d", i)
		}
	}
	return nil
}
