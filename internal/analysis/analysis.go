// Package analysis runs the statement analysis engine over a set of loaded
// financial statements: cadence detection per statement, plus revenue growth
// for income statements.
package analysis

import (
	"github.com/seenimoa/autodcf/internal/analysis/frequency"
	"github.com/seenimoa/autodcf/internal/analysis/revenue"
	"github.com/seenimoa/autodcf/internal/config"
	"github.com/seenimoa/autodcf/pkg/models"
)

// Input is one statement handed to the engine, tagged with its role.
type Input struct {
	Name      string
	Role      models.StatementRole
	Statement *models.Statement
}

// Options tunes the heuristics. The zero value uses the defaults.
type Options struct {
	QuarterlyMaxGapDays float64
	DateColumns         []string
	RevenueCandidates   []string
}

// Engine holds the configured detector and revenue analyzer.
type Engine struct {
	detector frequency.Detector
	revenue  revenue.Analyzer
}

// NewEngine builds an engine from options, falling back to defaults for
// unset fields.
func NewEngine(opts Options) *Engine {
	d := frequency.NewDetector()
	if opts.QuarterlyMaxGapDays > 0 {
		d.QuarterlyMaxGapDays = opts.QuarterlyMaxGapDays
	}
	if len(opts.DateColumns) > 0 {
		d.DateColumns = opts.DateColumns
	}
	a := revenue.NewAnalyzer()
	if len(opts.RevenueCandidates) > 0 {
		a.Candidates = opts.RevenueCandidates
	}
	return &Engine{detector: d, revenue: a}
}

// NewEngineFromConfig builds an engine from the analysis settings.
func NewEngineFromConfig(cfg config.AnalysisConfig) *Engine {
	return NewEngine(Options{
		QuarterlyMaxGapDays: cfg.QuarterlyMaxGapDays,
		DateColumns:         cfg.DateColumns,
		RevenueCandidates:   cfg.RevenueCandidates,
	})
}

// Analyze runs the default engine.
func Analyze(inputs []Input, fiscalYearEnd int) *models.AnalysisResults {
	return NewEngine(Options{}).Analyze(inputs, fiscalYearEnd)
}

// Analyze produces one StatementAnalysis per input that has a date-like
// column, in input order. Inputs without dates are omitted. Income
// statements additionally carry revenue growth. The fiscal year end is
// recorded as given.
func (e *Engine) Analyze(inputs []Input, fiscalYearEnd int) *models.AnalysisResults {
	results := models.NewAnalysisResults()
	for _, in := range inputs {
		a, ok := e.AnalyzeStatement(in, fiscalYearEnd)
		if !ok {
			continue
		}
		results.Set(a)
	}
	return results
}

// AnalyzeStatement analyses a single input. It reports false when the
// statement has no date-like column.
func (e *Engine) AnalyzeStatement(in Input, fiscalYearEnd int) (models.StatementAnalysis, bool) {
	col := e.detector.DateColumn(in.Statement)
	if col < 0 {
		return models.StatementAnalysis{}, false
	}

	freq := e.detector.DetectColumn(in.Statement, col)
	total := in.Statement.Len()

	name := in.Name
	if name == "" {
		name = in.Statement.Name
	}
	role := in.Role
	if role == "" {
		role = models.RoleOther
	}

	a := models.StatementAnalysis{
		Name:          name,
		Role:          role,
		DateColumn:    in.Statement.Columns[col],
		Frequency:     freq,
		TotalPeriods:  total,
		FullYears:     FullYears(freq, total),
		FiscalYearEnd: fiscalYearEnd,
	}

	if role == models.RoleIncome {
		rev := e.revenue.Analyze(in.Statement)
		a.Revenue = &rev
	}
	return a, true
}

// FullYears collapses quarterly periods four to a year. Any other cadence
// counts one period as one year.
func FullYears(freq models.Frequency, totalPeriods int) int {
	if freq == models.FrequencyQuarterly {
		return totalPeriods / 4
	}
	return totalPeriods
}
