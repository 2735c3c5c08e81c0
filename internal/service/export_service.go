package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ldbb-analytics-api/internal/dto"
	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
	"github.com/noah-isme/ldbb-analytics-api/pkg/export"
)

// Export formats supported by the stats export endpoint.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DashboardStatsProvider supplies the payload the export renders.
type DashboardStatsProvider interface {
	Stats(ctx context.Context, role models.UserRole, raw models.RawDateRange) (*dto.DashboardSummary, bool, error)
}

// ExportResult carries the rendered document.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders the dashboard headline counters as downloadable
// documents. Rendering happens inline; the handler streams the result.
type ExportService struct {
	stats  DashboardStatsProvider
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an export service.
func NewExportService(stats DashboardStatsProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		stats:  stats,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		now:    time.Now,
	}
}

// Export renders the dashboard stats for the requested range in the given
// format.
func (s *ExportService) Export(ctx context.Context, role models.UserRole, raw models.RawDateRange, format string) (*ExportResult, error) {
	summary, _, err := s.stats.Stats(ctx, role, raw)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(summaryDataset(summary))
		if err != nil {
			return nil, appErrors.ErrInternal.Wrapf(err, "csv export failed")
		}
		return &ExportResult{Payload: payload, ContentType: "text/csv", Filename: s.filename("csv")}, nil
	case FormatPDF:
		payload, err := s.pdf.Render(summaryDataset(summary), "Dashboard Statistics")
		if err != nil {
			return nil, appErrors.ErrInternal.Wrapf(err, "pdf export failed")
		}
		return &ExportResult{Payload: payload, ContentType: "application/pdf", Filename: s.filename("pdf")}, nil
	default:
		// unsupported formats fall back to the raw summary
		payload, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return nil, appErrors.ErrInternal.Wrapf(err, "json export failed")
		}
		return &ExportResult{Payload: payload, ContentType: "application/json", Filename: s.filename("json")}, nil
	}
}

func (s *ExportService) filename(ext string) string {
	return fmt.Sprintf("dashboard-stats-%s.%s", s.now().Format("20060102"), ext)
}

// summaryDataset flattens the headline counters into the Metric/Value table
// both tabular formats share.
func summaryDataset(summary *dto.DashboardSummary) export.Dataset {
	return export.Dataset{
		Headers: []string{"Metric", "Value"},
		Rows: []map[string]string{
			{"Metric": "Active Users", "Value": strconv.Itoa(summary.ActiveUsers)},
			{"Metric": "Course Completion Rate", "Value": formatPercent(summary.CourseCompletionRate)},
			{"Metric": "Quiz Average", "Value": formatPercent(summary.QuizAverage)},
			{"Metric": "Forum Posts", "Value": strconv.Itoa(summary.ForumPosts)},
		},
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
