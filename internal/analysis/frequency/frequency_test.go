package frequency

import (
	"testing"
	"time"

	"github.com/seenimoa/autodcf/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// datedStatement builds a Date/Revenue statement whose dates are separated by gaps (in days).
func datedStatement(start time.Time, gaps ...int) *models.Statement {
	s := models.NewStatement("test", []string{"Date", "Revenue"})
	cur := start
	_ = s.AddRow(models.DateValue(cur), models.NumberValue(100))
	for _, g := range gaps {
		cur = cur.AddDate(0, 0, g)
		_ = s.AddRow(models.DateValue(cur), models.NumberValue(100))
	}
	return s
}

func TestDetectQuarterly(t *testing.T) {
	s := datedStatement(day(2023, 1, 1), 91, 92, 90)
	if got := Detect(s); got != models.FrequencyQuarterly {
		t.Errorf("Detect: got %s, want Quarterly", got)
	}
}

func TestDetectAnnual(t *testing.T) {
	s := datedStatement(day(2021, 12, 31), 365, 366)
	if got := Detect(s); got != models.FrequencyAnnual {
		t.Errorf("Detect: got %s, want Annual", got)
	}
}

func TestDetectFewerThanTwoRows(t *testing.T) {
	single := datedStatement(day(2024, 3, 31))
	if got := Detect(single); got != models.FrequencyUnknown {
		t.Errorf("single row: got %s, want Unknown", got)
	}

	empty := models.NewStatement("empty", []string{"Date", "Revenue"})
	if got := Detect(empty); got != models.FrequencyUnknown {
		t.Errorf("empty: got %s, want Unknown", got)
	}
}

func TestDetectNoDateColumn(t *testing.T) {
	s := models.NewStatement("no dates", []string{"Period", "Revenue"})
	_ = s.AddRow(models.TextValue("FY22"), models.NumberValue(100))
	_ = s.AddRow(models.TextValue("FY23"), models.NumberValue(110))

	if got := Detect(s); got != models.FrequencyUnknown {
		t.Errorf("Detect: got %s, want Unknown", got)
	}
	if got := Detect(nil); got != models.FrequencyUnknown {
		t.Errorf("Detect(nil): got %s, want Unknown", got)
	}
}

func TestDetectUnsortedInput(t *testing.T) {
	s := models.NewStatement("shuffled", []string{"Date"})
	for _, d := range []time.Time{day(2024, 6, 30), day(2023, 12, 31), day(2024, 3, 31), day(2024, 9, 30)} {
		_ = s.AddRow(models.DateValue(d))
	}
	if got := Detect(s); got != models.FrequencyQuarterly {
		t.Errorf("Detect: got %s, want Quarterly", got)
	}
}

func TestDetectSkipsNullDates(t *testing.T) {
	s := models.NewStatement("gappy", []string{"Date", "Revenue"})
	_ = s.AddRow(models.DateValue(day(2022, 12, 31)), models.NumberValue(1))
	_ = s.AddRow(models.Null(), models.NumberValue(2))
	_ = s.AddRow(models.DateValue(day(2023, 12, 31)), models.NumberValue(3))

	if got := Detect(s); got != models.FrequencyAnnual {
		t.Errorf("Detect: got %s, want Annual", got)
	}
}

func TestDetectCustomThreshold(t *testing.T) {
	// Semi-annual reporting: ~182 day gaps.
	s := datedStatement(day(2023, 6, 30), 184, 182)
	if got := Detect(s); got != models.FrequencyAnnual {
		t.Errorf("default threshold: got %s, want Annual", got)
	}

	d := NewDetector()
	d.QuarterlyMaxGapDays = 200
	if got := d.Detect(s); got != models.FrequencyQuarterly {
		t.Errorf("threshold 200: got %s, want Quarterly", got)
	}
}

func TestDetectBoundary(t *testing.T) {
	// A median of exactly 150 days is not below the threshold.
	s := datedStatement(day(2024, 1, 1), 150, 150)
	if got := Detect(s); got != models.FrequencyAnnual {
		t.Errorf("Detect: got %s, want Annual", got)
	}
}

func TestDateColumnPrefersNamedColumn(t *testing.T) {
	s := models.NewStatement("two dates", []string{"Filed", "Period End", "Revenue"})
	_ = s.AddRow(models.DateValue(day(2024, 2, 1)), models.DateValue(day(2023, 12, 31)), models.NumberValue(1))

	d := NewDetector()
	if got := d.DateColumn(s); got != 1 {
		t.Errorf("DateColumn: got %d, want 1", got)
	}

	d.DateColumns = []string{"nothing"}
	if got := d.DateColumn(s); got != 0 {
		t.Errorf("DateColumn without name match: got %d, want 0", got)
	}
}

func TestDetectColumn(t *testing.T) {
	// Column 0 is annual, column 1 quarterly.
	s := models.NewStatement("two cadences", []string{"Fiscal Year", "Quarter End", "Revenue"})
	for i := 0; i < 4; i++ {
		_ = s.AddRow(
			models.DateValue(day(2020+i, 12, 31)),
			models.DateValue(day(2023, 3, 31).AddDate(0, 3*i, 0)),
			models.NumberValue(1),
		)
	}

	d := NewDetector()
	if got := d.DetectColumn(s, 0); got != models.FrequencyAnnual {
		t.Errorf("column 0: got %s, want Annual", got)
	}
	if got := d.DetectColumn(s, 1); got != models.FrequencyQuarterly {
		t.Errorf("column 1: got %s, want Quarterly", got)
	}
	if got := d.DetectColumn(s, -1); got != models.FrequencyUnknown {
		t.Errorf("column -1: got %s, want Unknown", got)
	}
	if got := d.DetectColumn(nil, 0); got != models.FrequencyUnknown {
		t.Errorf("nil statement: got %s, want Unknown", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"odd", []float64{91, 92, 90}, 91},
		{"even", []float64{365, 366}, 365.5},
		{"unsorted even", []float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.want {
				t.Errorf("Median(%v): got %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestDayGaps(t *testing.T) {
	gaps := DayGaps([]time.Time{day(2024, 3, 31), day(2023, 12, 31), day(2024, 3, 31)})
	want := []float64{91, 0}
	if len(gaps) != len(want) {
		t.Fatalf("DayGaps: got %v, want %v", gaps, want)
	}
	for i := range want {
		if gaps[i] != want[i] {
			t.Errorf("gap %d: got %v, want %v", i, gaps[i], want[i])
		}
	}
	if DayGaps([]time.Time{day(2024, 1, 1)}) != nil {
		t.Error("single date should yield no gaps")
	}
}
