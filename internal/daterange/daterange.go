// Package daterange normalizes loosely-typed date range parameters into the
// canonical bounds applied uniformly across every data source.
package daterange

import (
	"time"

	"github.com/noah-isme/ldbb-analytics-api/internal/models"
	appErrors "github.com/noah-isme/ldbb-analytics-api/pkg/errors"
)

// Layout is the accepted wire format for explicit bounds.
const Layout = "2006-01-02"

// Normalize validates raw range parameters and resolves them against now.
//
// A preset other than "custom" takes precedence over explicit bounds and
// computes both ends relative to now. The "custom" preset, or no preset at
// all, uses whichever explicit bounds were supplied; missing bounds stay
// open. No parameters at all yields the unconstrained range.
func Normalize(raw models.RawDateRange, now time.Time) (models.DateRange, error) {
	preset := models.DateRangePreset(raw.Preset)
	switch preset {
	case "":
		// fall through to explicit bounds
	case models.PresetCustom:
		// explicit bounds govern
	case models.PresetDay, models.PresetWeek, models.PresetMonth, models.PresetYear:
		return fromPreset(preset, now), nil
	default:
		return models.DateRange{}, appErrors.ErrInvalidRange.Wrapf(nil, "unknown preset %q", raw.Preset)
	}

	rng := models.DateRange{Preset: preset}
	if raw.StartDate != "" {
		start, err := time.Parse(Layout, raw.StartDate)
		if err != nil {
			return models.DateRange{}, appErrors.ErrInvalidRange.Wrapf(err, "unparseable startDate %q", raw.StartDate)
		}
		rng.Start = &start
	}
	if raw.EndDate != "" {
		end, err := time.Parse(Layout, raw.EndDate)
		if err != nil {
			return models.DateRange{}, appErrors.ErrInvalidRange.Wrapf(err, "unparseable endDate %q", raw.EndDate)
		}
		// the whole end day is included
		end = end.Add(24*time.Hour - time.Nanosecond)
		rng.End = &end
	}
	if rng.Start != nil && rng.End != nil && rng.Start.After(*rng.End) {
		return models.DateRange{}, appErrors.ErrInvalidRange.Wrapf(nil, "startDate after endDate")
	}
	return rng, nil
}

func fromPreset(preset models.DateRangePreset, now time.Time) models.DateRange {
	end := now
	var start time.Time
	switch preset {
	case models.PresetDay:
		start = now.Add(-24 * time.Hour)
	case models.PresetWeek:
		start = now.AddDate(0, 0, -7)
	case models.PresetMonth:
		start = now.AddDate(0, 0, -30)
	case models.PresetYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return models.DateRange{Start: &start, End: &end, Preset: preset}
}
