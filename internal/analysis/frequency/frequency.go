// Package frequency infers the reporting cadence of a financial statement
// from the spacing of its period dates.
package frequency

import (
	"sort"
	"strings"
	"time"

	"github.com/seenimoa/autodcf/pkg/models"
)

// DefaultQuarterlyMaxGapDays is the median gap below which periods are
// treated as quarters. Quarters sit around 90 days apart, years around 365.
const DefaultQuarterlyMaxGapDays = 150.0

// DefaultDateColumns are the column names preferred when more than one
// column holds dates.
var DefaultDateColumns = []string{"date", "period end", "period ending", "fiscal date", "report date"}

// Detector classifies statements as quarterly, annual or unknown.
type Detector struct {
	QuarterlyMaxGapDays float64  // median gap threshold (default: 150)
	DateColumns         []string // preferred date column names, case-insensitive
}

// NewDetector returns a detector with the default threshold and date names.
func NewDetector() Detector {
	return Detector{
		QuarterlyMaxGapDays: DefaultQuarterlyMaxGapDays,
		DateColumns:         DefaultDateColumns,
	}
}

// Detect classifies a statement using the default detector.
func Detect(s *models.Statement) models.Frequency {
	return NewDetector().Detect(s)
}

// Detect classifies the cadence of a statement. Statements without a
// date-like column, or with fewer than two dated rows, are Unknown.
func (d Detector) Detect(s *models.Statement) models.Frequency {
	return d.DetectColumn(s, d.DateColumn(s))
}

// DetectColumn classifies the cadence of a statement from the dates in
// column col, as returned by DateColumn. A negative col yields Unknown.
func (d Detector) DetectColumn(s *models.Statement, col int) models.Frequency {
	if s == nil || col < 0 {
		return models.FrequencyUnknown
	}

	gaps := DayGaps(dates(s, col))
	if len(gaps) == 0 {
		return models.FrequencyUnknown
	}

	threshold := d.QuarterlyMaxGapDays
	if threshold <= 0 {
		threshold = DefaultQuarterlyMaxGapDays
	}
	if Median(gaps) < threshold {
		return models.FrequencyQuarterly
	}
	return models.FrequencyAnnual
}

// DateColumn returns the index of the statement's date-like column, or -1.
// A column named like one of DateColumns wins over other date columns;
// otherwise the first date-like column in order is used.
func (d Detector) DateColumn(s *models.Statement) int {
	if s == nil {
		return -1
	}
	names := d.DateColumns
	if names == nil {
		names = DefaultDateColumns
	}

	first := -1
	for i, name := range s.Columns {
		if !s.IsDateColumn(i) {
			continue
		}
		if matchesName(name, names) {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// DayGaps sorts dates ascending (stable) and returns the whole-day gap
// between each consecutive pair. The result has len(dates)-1 entries.
func DayGaps(dates []time.Time) []float64 {
	if len(dates) < 2 {
		return nil
	}
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, float64(daysBetween(sorted[i-1], sorted[i])))
	}
	return gaps
}

// Median returns the median of values, averaging the middle pair for even
// lengths. It returns 0 for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// daysBetween counts calendar days, floored, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func dates(s *models.Statement, col int) []time.Time {
	cells := s.Column(col)
	out := make([]time.Time, 0, len(cells))
	for _, v := range cells {
		if t, ok := v.Date(); ok {
			out = append(out, t)
		}
	}
	return out
}

func matchesName(name string, names []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, want := range names {
		if n == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
