package models

import "time"

// DateRangePreset names a shorthand range resolved relative to "now".
type DateRangePreset string

const (
	PresetDay    DateRangePreset = "day"
	PresetWeek   DateRangePreset = "week"
	PresetMonth  DateRangePreset = "month"
	PresetYear   DateRangePreset = "year"
	PresetCustom DateRangePreset = "custom"
)

// RawDateRange carries the loosely-typed range parameters exactly as the
// caller sent them. It is never handed to aggregation logic directly; the
// normalizer turns it into a DateRange first.
type RawDateRange struct {
	StartDate string `form:"startDate" json:"startDate,omitempty"`
	EndDate   string `form:"endDate" json:"endDate,omitempty"`
	Preset    string `form:"preset" json:"preset,omitempty"`
}

// Empty reports whether no range parameter was supplied at all.
func (r RawDateRange) Empty() bool {
	return r.StartDate == "" && r.EndDate == "" && r.Preset == ""
}

// DateRange is the canonical, validated range applied consistently across
// every data source. Nil bounds mean unbounded on that side.
type DateRange struct {
	Start  *time.Time      `json:"start,omitempty"`
	End    *time.Time      `json:"end,omitempty"`
	Preset DateRangePreset `json:"preset,omitempty"`
}

// Bounded reports whether both ends of the range are fixed.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Contains reports whether t falls inside the range, bounds inclusive.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Span returns the length of a bounded range and zero otherwise.
func (r DateRange) Span() time.Duration {
	if !r.Bounded() {
		return 0
	}
	return r.End.Sub(*r.Start)
}

// Previous returns the immediately preceding window of equal length. It is
// only meaningful for bounded ranges; the zero DateRange is returned
// otherwise.
func (r DateRange) Previous() DateRange {
	if !r.Bounded() {
		return DateRange{}
	}
	span := r.End.Sub(*r.Start)
	prevEnd := r.Start.Add(-time.Nanosecond)
	prevStart := prevEnd.Add(-span)
	return DateRange{Start: &prevStart, End: &prevEnd, Preset: PresetCustom}
}

// CacheKey renders a stable identifier for cache composition.
func (r DateRange) CacheKey() string {
	if !r.Bounded() {
		if r.Start != nil {
			return r.Start.UTC().Format("20060102") + "-open"
		}
		if r.End != nil {
			return "open-" + r.End.UTC().Format("20060102")
		}
		return "all"
	}
	return r.Start.UTC().Format("20060102") + "-" + r.End.UTC().Format("20060102")
}
