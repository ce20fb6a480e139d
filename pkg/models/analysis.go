package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Frequency is the reporting cadence inferred for a statement.
type Frequency string

const (
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyAnnual    Frequency = "Annual"
	FrequencyUnknown   Frequency = "Unknown"
)

// Rate is a percentage that may be undefined (division by zero, too few
// points, non-real CAGR). Undefined rates must never enter sums.
type Rate struct {
	Value float64
	Valid bool
}

// Defined wraps a computed percentage. Non-finite input yields an undefined rate.
func Defined(v float64) Rate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rate{}
	}
	return Rate{Value: v, Valid: true}
}

// Undefined returns a rate with no value.
func Undefined() Rate { return Rate{} }

// String formats the rate with two decimals, or "n/a".
func (r Rate) String() string {
	if !r.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", r.Value)
}

// MarshalJSON encodes undefined rates as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number or null.
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rate{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Defined(v)
	return nil
}

// MarshalYAML encodes undefined rates as null.
func (r Rate) MarshalYAML() (interface{}, error) {
	if !r.Valid {
		return nil, nil
	}
	return r.Value, nil
}

// RevenuePoint is one (period, revenue) observation.
type RevenuePoint struct {
	Period  Value   `json:"period" yaml:"period"`
	Revenue float64 `json:"revenue" yaml:"revenue"`
}

// RevenueSeries holds revenue observations in ingestion order.
type RevenueSeries struct {
	Column string         `json:"column" yaml:"column"`
	Points []RevenuePoint `json:"points" yaml:"points"`
}

// Len returns the number of observations.
func (s RevenueSeries) Len() int { return len(s.Points) }

// Revenues returns the revenue values in order.
func (s RevenueSeries) Revenues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Revenue
	}
	return out
}

// Periods returns the period labels in order.
func (s RevenueSeries) Periods() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Period.String()
	}
	return out
}

// GrowthMetrics summarises revenue growth over a series.
// PeriodGrowth is aligned with the series; entry 0 is always undefined.
type GrowthMetrics struct {
	PeriodGrowth  []Rate `json:"period_growth" yaml:"period_growth"`
	AverageGrowth Rate   `json:"average_growth" yaml:"average_growth"`
	CAGR          Rate   `json:"cagr" yaml:"cagr"`
}

// RevenueAnalysis is attached to income statements.
// Found is false when no revenue-like column exists.
type RevenueAnalysis struct {
	Found  bool          `json:"found" yaml:"found"`
	Column string        `json:"column,omitempty" yaml:"column,omitempty"`
	Series RevenueSeries `json:"series" yaml:"series"`
	Growth GrowthMetrics `json:"growth" yaml:"growth"`
}

// StatementAnalysis is the per-statement result of an analysis run.
type StatementAnalysis struct {
	Name          string           `json:"name" yaml:"name"`
	Role          StatementRole    `json:"role" yaml:"role"`
	DateColumn    string           `json:"date_column" yaml:"date_column"`
	Frequency     Frequency        `json:"frequency" yaml:"frequency"`
	TotalPeriods  int              `json:"total_periods" yaml:"total_periods"`
	FullYears     int              `json:"full_years" yaml:"full_years"`
	FiscalYearEnd int              `json:"fiscal_year_end" yaml:"fiscal_year_end"`
	Revenue       *RevenueAnalysis `json:"revenue,omitempty" yaml:"revenue,omitempty"`
}

// AnalysisResults maps statement names to their analysis while keeping
// insertion order. The zero value is ready to use.
type AnalysisResults struct {
	order []string
	items map[string]StatementAnalysis
}

// NewAnalysisResults returns an empty result set.
func NewAnalysisResults() *AnalysisResults {
	return &AnalysisResults{items: make(map[string]StatementAnalysis)}
}

// Set stores an analysis. Replacing an existing name keeps its position.
func (r *AnalysisResults) Set(a StatementAnalysis) {
	if r.items == nil {
		r.items = make(map[string]StatementAnalysis)
	}
	if _, ok := r.items[a.Name]; !ok {
		r.order = append(r.order, a.Name)
	}
	r.items[a.Name] = a
}

// Get looks up a statement by name.
func (r *AnalysisResults) Get(name string) (StatementAnalysis, bool) {
	if r == nil {
		return StatementAnalysis{}, false
	}
	a, ok := r.items[name]
	return a, ok
}

// Len returns the number of analysed statements.
func (r *AnalysisResults) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Names returns statement names in insertion order.
func (r *AnalysisResults) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the analyses in insertion order.
func (r *AnalysisResults) All() []StatementAnalysis {
	if r == nil {
		return nil
	}
	out := make([]StatementAnalysis, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.items[name])
	}
	return out
}

// MarshalJSON encodes the results as an ordered list.
func (r *AnalysisResults) MarshalJSON() ([]byte, error) {
	all := r.All()
	if all == nil {
		all = []StatementAnalysis{}
	}
	return json.Marshal(all)
}

// UnmarshalJSON decodes an ordered list produced by MarshalJSON.
func (r *AnalysisResults) UnmarshalJSON(data []byte) error {
	var list []StatementAnalysis
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*r = AnalysisResults{}
	for _, a := range list {
		r.Set(a)
	}
	return nil
}

// MarshalYAML encodes the results as an ordered list.
func (r *AnalysisResults) MarshalYAML() (interface{}, error) {
	all := r.All()
	if all == nil {
		all = []StatementAnalysis{}
	}
	return all, nil
}
