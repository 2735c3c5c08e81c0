package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/dto"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

type fakeStatsProvider struct {
	summary *dto.DashboardSummary
	err     error
}

func (f *fakeStatsProvider) Stats(_ context.Context, _ models.UserRole, _ models.RawDateRange) (*dto.DashboardSummary, bool, error) {
	return f.summary, false, f.err
}

func exportFixture() *fakeStatsProvider {
	return &fakeStatsProvider{summary: &dto.DashboardSummary{
		SummaryStats: dto.SummaryStats{
			ActiveUsers:          1254,
			CourseCompletionRate: 68,
			QuizAverage:          76.4,
			ForumPosts:           3782,
		},
	}}
}

func TestExportCSVRendersHeadlineRows(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), models.RoleAdmin, models.RawDateRange{}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.Filename, ".csv")

	want := "Metric,Value\n" +
		"Active Users,1254\n" +
		"Course Completion Rate,68%\n" +
		"Quiz Average,76.4%\n" +
		"Forum Posts,3782\n"
	assert.Equal(t, want, string(result.Payload))
}

func TestExportPDFProducesDocument(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), models.RoleAdmin, models.RawDateRange{}, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, len(result.Payload) > 0)
	assert.Equal(t, "%PDF", string(result.Payload[:4]))
}

func TestExportJSONRoundTrips(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), models.RoleAdmin, models.RawDateRange{}, FormatJSON)
	require.NoError(t, err)

	var got dto.DashboardSummary
	require.NoError(t, json.Unmarshal(result.Payload, &got))
	assert.Equal(t, 1254, got.ActiveUsers)
}

func TestExportUnknownFormatFallsBackToJSON(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), models.RoleAdmin, models.RawDateRange{}, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "application/json", result.ContentType)

	var got dto.DashboardSummary
	require.NoError(t, json.Unmarshal(result.Payload, &got))
	assert.Equal(t, 3782, got.ForumPosts)
}

func TestExportPropagatesInvalidRange(t *testing.T) {
	svc := NewExportService(&fakeStatsProvider{err: appErrors.ErrInvalidRange}, nil)

	_, err := svc.Export(context.Background(), models.RoleAdmin, models.RawDateRange{}, FormatCSV)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))
}
