package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

var testNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func TestNormalizePresetWeek(t *testing.T) {
	rng, err := Normalize(models.RawDateRange{Preset: "week"}, testNow)
	require.NoError(t, err)
	require.True(t, rng.Bounded())
	assert.Equal(t, testNow, *rng.End)
	assert.Equal(t, testNow.AddDate(0, 0, -7), *rng.Start)
}

func TestNormalizePresetMonth(t *testing.T) {
	rng, err := Normalize(models.RawDateRange{Preset: "month"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -30), *rng.Start)
	assert.Equal(t, testNow, *rng.End)
}

func TestNormalizePresetYearStartsJanuaryFirst(t *testing.T) {
	rng, err := Normalize(models.RawDateRange{Preset: "year"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *rng.Start)
	assert.Equal(t, testNow, *rng.End)
}

func TestNormalizePresetOverridesExplicitBounds(t *testing.T) {
	raw := models.RawDateRange{Preset: "day", StartDate: "2020-01-01", EndDate: "2020-02-01"}
	rng, err := Normalize(raw, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(-24*time.Hour), *rng.Start)
	assert.Equal(t, testNow, *rng.End)
}

func TestNormalizeCustomUsesExplicitBounds(t *testing.T) {
	raw := models.RawDateRange{Preset: "custom", StartDate: "2026-01-01", EndDate: "2026-01-31"}
	rng, err := Normalize(raw, testNow)
	require.NoError(t, err)
	require.True(t, rng.Bounded())
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *rng.Start)
	// the entire end day is part of the range
	assert.True(t, rng.Contains(time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, rng.Contains(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNormalizeStartOnlyLeavesEndOpen(t *testing.T) {
	rng, err := Normalize(models.RawDateRange{StartDate: "2026-02-01"}, testNow)
	require.NoError(t, err)
	assert.NotNil(t, rng.Start)
	assert.Nil(t, rng.End)
	assert.False(t, rng.Bounded())
	assert.True(t, rng.Contains(testNow.AddDate(1, 0, 0)))
}

func TestNormalizeEmptyIsUnconstrained(t *testing.T) {
	rng, err := Normalize(models.RawDateRange{}, testNow)
	require.NoError(t, err)
	assert.Nil(t, rng.Start)
	assert.Nil(t, rng.End)
	assert.Equal(t, "all", rng.CacheKey())
}

func TestNormalizeStartAfterEndRejected(t *testing.T) {
	raw := models.RawDateRange{StartDate: "2026-03-10", EndDate: "2026-03-01"}
	_, err := Normalize(raw, testNow)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))
}

func TestNormalizeUnparseableDateRejected(t *testing.T) {
	for _, raw := range []models.RawDateRange{
		{StartDate: "03/10/2026"},
		{EndDate: "not-a-date"},
		{Preset: "fortnight"},
	} {
		_, err := Normalize(raw, testNow)
		require.Error(t, err)
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidRange))
	}
}

func TestPreviousWindowHasEqualLength(t *testing.T) {
	raw := models.RawDateRange{StartDate: "2026-03-01", EndDate: "2026-03-10"}
	rng, err := Normalize(raw, testNow)
	require.NoError(t, err)

	prev := rng.Previous()
	require.True(t, prev.Bounded())
	assert.Equal(t, rng.Span(), prev.Span())
	assert.True(t, prev.End.Before(*rng.Start))
}

func TestPreviousOfUnboundedIsZero(t *testing.T) {
	prev := models.DateRange{}.Previous()
	assert.Nil(t, prev.Start)
	assert.Nil(t, prev.End)
}
