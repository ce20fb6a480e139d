package revenue

import (
	"math"
	"testing"

	"github.com/seenimoa/autodcf/pkg/models"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func incomeStatement(revenueCol string, revenues ...models.Value) *models.Statement {
	s := models.NewStatement("Income Statement", []string{"Period", revenueCol, "Net Income"})
	for i, r := range revenues {
		_ = s.AddRow(models.TextValue("P"+string(rune('1'+i))), r, models.NumberValue(1))
	}
	return s
}

func nums(vs ...float64) []models.Value {
	out := make([]models.Value, len(vs))
	for i, v := range vs {
		out[i] = models.NumberValue(v)
	}
	return out
}

func TestExtractTotalRevenues(t *testing.T) {
	s := incomeStatement("Total Revenues", nums(100, 110, 121)...)

	series, ok := Extract(s)
	if !ok {
		t.Fatal("expected revenue column to be found")
	}
	if series.Column != "Total Revenues" {
		t.Errorf("Column: got %q", series.Column)
	}
	if got := series.Periods(); len(got) != 3 || got[0] != "P1" || got[2] != "P3" {
		t.Errorf("Periods: got %v", got)
	}

	g := ComputeGrowth(series)
	if len(g.PeriodGrowth) != 3 {
		t.Fatalf("PeriodGrowth length: got %d, want 3", len(g.PeriodGrowth))
	}
	if g.PeriodGrowth[0].Valid {
		t.Error("first growth entry must be undefined")
	}
	for i := 1; i < 3; i++ {
		if !g.PeriodGrowth[i].Valid || !approx(g.PeriodGrowth[i].Value, 10) {
			t.Errorf("growth[%d]: got %+v, want 10", i, g.PeriodGrowth[i])
		}
	}
	if !g.AverageGrowth.Valid || !approx(g.AverageGrowth.Value, 10) {
		t.Errorf("AverageGrowth: got %+v, want 10", g.AverageGrowth)
	}
	if !g.CAGR.Valid || !approx(g.CAGR.Value, 10) {
		t.Errorf("CAGR: got %+v, want 10", g.CAGR)
	}
}

func TestExtractNotFound(t *testing.T) {
	s := models.NewStatement("Balance Sheet", []string{"Date", "Total Assets", "Total Equity"})
	_ = s.AddRow(models.TextValue("FY23"), models.NumberValue(500), models.NumberValue(200))

	if _, ok := Extract(s); ok {
		t.Error("expected no revenue column")
	}
	if _, ok := Extract(nil); ok {
		t.Error("expected no revenue column for nil statement")
	}

	a := NewAnalyzer().Analyze(s)
	if a.Found {
		t.Error("Analyze should report Found=false")
	}
}

func TestColumnSelection(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    int
	}{
		{"exact", []string{"Date", "Revenue"}, 1},
		{"case insensitive", []string{"Date", "NET SALES"}, 1},
		{"first match wins across columns", []string{"Date", "Sales Returns", "Total Revenue"}, 1},
		{"substring", []string{"Quarter", "Operating Revenues (USD)"}, 1},
		{"none", []string{"Date", "EBITDA"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.NewStatement("x", tt.columns)
			if got := NewAnalyzer().Column(s); got != tt.want {
				t.Errorf("Column(%v): got %d, want %d", tt.columns, got, tt.want)
			}
		})
	}
}

func TestCustomCandidates(t *testing.T) {
	s := models.NewStatement("x", []string{"Period", "Turnover"})
	_ = s.AddRow(models.TextValue("FY24"), models.NumberValue(10))

	if _, ok := Extract(s); ok {
		t.Fatal("default candidates should not match Turnover")
	}
	a := Analyzer{Candidates: []string{"turnover"}}
	series, ok := a.Extract(s)
	if !ok || series.Len() != 1 {
		t.Errorf("custom candidates: ok=%v len=%d", ok, series.Len())
	}
}

func TestExtractDropsNullRevenueKeepsOrder(t *testing.T) {
	s := incomeStatement("Revenue",
		models.NumberValue(300),
		models.Null(),
		models.NumberValue(100),
		models.TextValue("n/a"),
		models.NumberValue(200),
	)
	series, ok := Extract(s)
	if !ok {
		t.Fatal("expected revenue column")
	}
	got := series.Revenues()
	want := []float64{300, 100, 200}
	if len(got) != len(want) {
		t.Fatalf("Revenues: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Revenues[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
	if p := series.Periods(); p[1] != "P3" {
		t.Errorf("period labels should follow kept rows: %v", p)
	}
}

func TestPeriodGrowthZeroPrior(t *testing.T) {
	g := PeriodGrowth([]float64{0, 50, 100})
	if g[1].Valid {
		t.Errorf("growth from zero should be undefined, got %+v", g[1])
	}
	if !g[2].Valid || !approx(g[2].Value, 100) {
		t.Errorf("growth[2]: got %+v, want 100", g[2])
	}

	avg := Average(g)
	if !avg.Valid || !approx(avg.Value, 100) {
		t.Errorf("Average should skip undefined entries: got %+v", avg)
	}
}

func TestAverageUndefined(t *testing.T) {
	if Average(PeriodGrowth([]float64{100})).Valid {
		t.Error("single point average should be undefined")
	}
	if Average(nil).Valid {
		t.Error("empty average should be undefined")
	}
	if Average(PeriodGrowth([]float64{0, 10})).Valid {
		t.Error("average with no defined growth should be undefined")
	}
}

func TestCAGR(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		valid  bool
		want   float64
	}{
		{"empty", nil, true, 0},
		{"single point", []float64{100}, true, 0},
		{"two points", []float64{100, 150}, true, 50},
		{"three points", []float64{100, 110, 121}, true, 10},
		{"decline", []float64{100, 81, 64}, true, -20},
		{"initial zero", []float64{0, 10, 20}, false, 0},
		{"initial negative", []float64{-100, 50}, false, 0},
		{"negative final fractional root", []float64{100, 50, -20}, false, 0},
		{"negative final single period", []float64{100, -50}, true, -150},
		{"final zero", []float64{100, 50, 0}, true, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CAGR(tt.values)
			if got.Valid != tt.valid {
				t.Fatalf("CAGR(%v) valid: got %v, want %v", tt.values, got.Valid, tt.valid)
			}
			if tt.valid && !approx(got.Value, tt.want) {
				t.Errorf("CAGR(%v): got %v, want %v", tt.values, got.Value, tt.want)
			}
		})
	}
}

func TestComputeGrowthDegenerate(t *testing.T) {
	g := ComputeGrowth(models.RevenueSeries{})
	if len(g.PeriodGrowth) != 0 {
		t.Errorf("PeriodGrowth: got %v", g.PeriodGrowth)
	}
	if g.AverageGrowth.Valid {
		t.Error("AverageGrowth should be undefined")
	}
	if !g.CAGR.Valid || g.CAGR.Value != 0 {
		t.Errorf("CAGR: got %+v, want defined 0", g.CAGR)
	}
}
