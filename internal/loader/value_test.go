package loader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seenimoa/autodcf/pkg/models"
)

func TestParseCellNumbers(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"100", 100},
		{" 104.5 ", 104.5},
		{"1,234", 1234},
		{"(1,234)", -1234},
		{"-42", -42},
		{"$1,000.50", 1000.5},
		{"₹ 2,500", 2500},
		{"12.5%", 12.5},
		{"1e3", 1000},
		{"2023", 2023},
	}
	for _, tt := range tests {
		v := ParseCell(tt.raw)
		f, ok := v.Float()
		if assert.True(t, ok, "ParseCell(%q) kind %s", tt.raw, v.Kind) {
			assert.InDelta(t, tt.want, f, 1e-9, "ParseCell(%q)", tt.raw)
		}
	}
}

func TestParseCellNulls(t *testing.T) {
	for _, raw := range []string{"", "   ", "-", "NA", "N/A", "nan", "NaN", "null"} {
		assert.True(t, ParseCell(raw).IsNull(), "ParseCell(%q) should be null", raw)
	}
}

func TestParseCellDates(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2023-03-31", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"2023/3/31", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"3/31/2023", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"12-31-22", time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"31-Mar-2023", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"Mar 31, 2023", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"Mar 2023", time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2023-03-31T00:00:00Z", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"3/31/23 00:00", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"3/31/2023 18:30", time.Date(2023, 3, 31, 18, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		v := ParseCell(tt.raw)
		d, ok := v.Date()
		if assert.True(t, ok, "ParseCell(%q) kind %s", tt.raw, v.Kind) {
			assert.True(t, tt.want.Equal(d), "ParseCell(%q): got %v, want %v", tt.raw, d, tt.want)
		}
	}
}

func TestParseCellText(t *testing.T) {
	for _, raw := range []string{"FY2023", "Q1 FY24", "Total Revenue", "12 apples"} {
		v := ParseCell(raw)
		assert.Equal(t, models.KindText, v.Kind, "ParseCell(%q)", raw)
		assert.Equal(t, raw, v.Text)
	}
}
