package loader

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/autodcf/internal/analysis"
	"github.com/seenimoa/autodcf/pkg/models"
)

const defaultConcurrency = 3

// FileSpec names one statement to load. Source, when set, is read instead
// of opening Path; Path then only supplies the file name and extension.
type FileSpec struct {
	Name   string
	Role   models.StatementRole
	Path   string
	Source io.Reader
}

// DefaultSpecs builds the three classic statements. Empty paths are skipped
// at load time.
func DefaultSpecs(income, balance, cashflow string) []FileSpec {
	return []FileSpec{
		{Name: "Income Statement", Role: models.RoleIncome, Path: income},
		{Name: "Balance Sheet", Role: models.RoleBalanceSheet, Path: balance},
		{Name: "Cash Flow Statement", Role: models.RoleCashFlow, Path: cashflow},
	}
}

// Loaded is a successfully read statement with its spec.
type Loaded struct {
	Spec      FileSpec
	Statement *models.Statement
}

// Failure records a statement that could not be read.
type Failure struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Err  error  `json:"-"    yaml:"-"`
}

// Error implements error.
func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Name, f.Path, f.Err)
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }

// Result is the outcome of LoadStatements. Loaded keeps spec order.
type Result struct {
	Loaded   []Loaded
	Failures []Failure
	Skipped  []string
}

// Inputs converts the loaded statements into analysis inputs.
func (r Result) Inputs() []analysis.Input {
	inputs := make([]analysis.Input, 0, len(r.Loaded))
	for _, l := range r.Loaded {
		inputs = append(inputs, analysis.Input{
			Name:      l.Spec.Name,
			Role:      l.Spec.Role,
			Statement: l.Statement,
		})
	}
	return inputs
}

// LoadStatements reads all specs concurrently. A file that fails to load
// is recorded in Failures and does not stop the others.
func LoadStatements(ctx context.Context, specs []FileSpec, opts Options) Result {
	logger := zerolog.Ctx(ctx)

	statements := make([]*models.Statement, len(specs))
	errs := make([]error, len(specs))

	limit := opts.Concurrency
	if limit < 1 {
		limit = defaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)

	var result Result
	for i, spec := range specs {
		if spec.Path == "" && spec.Source == nil {
			result.Skipped = append(result.Skipped, spec.Name)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			st, err := loadSpec(spec, opts)
			if err != nil {
				errs[i] = err
				return nil // non-fatal
			}
			statements[i] = st
			return nil
		})
	}
	_ = g.Wait()

	for i, spec := range specs {
		switch {
		case errs[i] != nil:
			logger.Warn().Err(errs[i]).Str("statement", spec.Name).Msg("failed to load statement")
			result.Failures = append(result.Failures, Failure{Name: spec.Name, Path: spec.Path, Err: errs[i]})
		case statements[i] != nil:
			logger.Debug().
				Str("statement", spec.Name).
				Int("rows", statements[i].Len()).
				Int("columns", len(statements[i].Columns)).
				Msg("statement loaded")
			result.Loaded = append(result.Loaded, Loaded{Spec: spec, Statement: statements[i]})
		}
	}
	return result
}

func loadSpec(spec FileSpec, opts Options) (*models.Statement, error) {
	if spec.Source != nil {
		return LoadReader(spec.Source, spec.Path, opts)
	}
	return LoadFile(spec.Path, opts)
}
