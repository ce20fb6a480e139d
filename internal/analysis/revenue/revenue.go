// Package revenue locates the revenue line of an income statement and
// computes period-over-period growth, average growth and CAGR.
package revenue

import (
	"math"
	"strings"

	"github.com/seenimoa/autodcf/pkg/models"
)

// DefaultCandidates are matched, in order, as lowercase substrings of column names.
var DefaultCandidates = []string{"revenue", "total revenue", "sales", "net sales"}

// Analyzer extracts revenue series using a configurable candidate list.
type Analyzer struct {
	Candidates []string
}

// NewAnalyzer returns an analyzer with the default candidates.
func NewAnalyzer() Analyzer {
	return Analyzer{Candidates: DefaultCandidates}
}

// Extract pulls the revenue series with the default analyzer.
func Extract(s *models.Statement) (models.RevenueSeries, bool) {
	return NewAnalyzer().Extract(s)
}

// Column returns the index of the first column whose lowercased name
// contains any candidate, or -1.
func (a Analyzer) Column(s *models.Statement) int {
	if s == nil {
		return -1
	}
	candidates := a.Candidates
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for i, name := range s.Columns {
		lower := strings.ToLower(name)
		for _, c := range candidates {
			if c != "" && strings.Contains(lower, strings.ToLower(c)) {
				return i
			}
		}
	}
	return -1
}

// Extract builds the revenue series of a statement. The first column is
// the period label. Rows with no numeric revenue are dropped and the
// remaining rows keep their ingestion order. It reports false when no
// revenue-like column exists.
func (a Analyzer) Extract(s *models.Statement) (models.RevenueSeries, bool) {
	col := a.Column(s)
	if col < 0 {
		return models.RevenueSeries{}, false
	}

	series := models.RevenueSeries{
		Column: s.Columns[col],
		Points: make([]models.RevenuePoint, 0, len(s.Rows)),
	}
	for r := range s.Rows {
		rev, ok := s.Cell(r, col).Float()
		if !ok {
			continue
		}
		series.Points = append(series.Points, models.RevenuePoint{
			Period:  s.Cell(r, 0),
			Revenue: rev,
		})
	}
	return series, true
}

// Analyze extracts the series and computes its growth metrics.
func (a Analyzer) Analyze(s *models.Statement) models.RevenueAnalysis {
	series, ok := a.Extract(s)
	if !ok {
		return models.RevenueAnalysis{Found: false}
	}
	return models.RevenueAnalysis{
		Found:  true,
		Column: series.Column,
		Series: series,
		Growth: ComputeGrowth(series),
	}
}

// ComputeGrowth derives growth metrics from a revenue series.
func ComputeGrowth(series models.RevenueSeries) models.GrowthMetrics {
	values := series.Revenues()
	growth := PeriodGrowth(values)
	return models.GrowthMetrics{
		PeriodGrowth:  growth,
		AverageGrowth: Average(growth),
		CAGR:          CAGR(values),
	}
}

// PeriodGrowth returns growth in percent aligned with values. Entry 0 and
// any entry whose prior value is zero are undefined.
func PeriodGrowth(values []float64) []models.Rate {
	out := make([]models.Rate, len(values))
	for i := range values {
		if i == 0 {
			out[i] = models.Undefined()
			continue
		}
		out[i] = pctChange(values[i-1], values[i])
	}
	return out
}

// Average is the arithmetic mean of the defined rates. It is undefined when
// no rate is defined.
func Average(rates []models.Rate) models.Rate {
	sum, n := 0.0, 0
	for _, r := range rates {
		if !r.Valid {
			continue
		}
		sum += r.Value
		n++
	}
	if n == 0 {
		return models.Undefined()
	}
	return models.Defined(sum / float64(n))
}

// CAGR is the compound growth rate per period, in percent, between the first
// and last value. One or zero points give 0. A non-positive initial value or
// a result that is not a finite real number is undefined.
func CAGR(values []float64) models.Rate {
	n := len(values) - 1
	if n <= 0 {
		return models.Defined(0)
	}
	initial, final := values[0], values[n]
	if initial <= 0 {
		return models.Undefined()
	}
	ratio := final / initial
	if ratio < 0 && n != 1 {
		// Fractional root of a negative number.
		return models.Undefined()
	}
	return models.Defined((math.Pow(ratio, 1/float64(n)) - 1) * 100)
}

func pctChange(prev, cur float64) models.Rate {
	if prev == 0 {
		return models.Undefined()
	}
	return models.Defined((cur/prev - 1) * 100)
}
