package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseFiscalYearEnd(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"1", 1, nil},
		{" 6\n", 6, nil},
		{"12", 12, nil},
		{"0", 0, ErrMonthOutOfRange},
		{"13", 0, ErrMonthOutOfRange},
		{"-3", 0, ErrMonthOutOfRange},
		{"June", 0, ErrNotANumber},
		{"", 0, ErrNotANumber},
		{"6.5", 0, ErrNotANumber},
	}
	for _, tt := range tests {
		got, err := ParseFiscalYearEnd(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseFiscalYearEnd(%q): err %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFiscalYearEnd(%q): got %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestFiscalYearEndOrDefault(t *testing.T) {
	if m, ok := FiscalYearEndOrDefault("3"); m != 3 || !ok {
		t.Errorf("got %d, %v; want 3, true", m, ok)
	}
	if m, ok := FiscalYearEndOrDefault("abc"); m != 12 || ok {
		t.Errorf("got %d, %v; want 12, false", m, ok)
	}
	if m, ok := FiscalYearEndOrDefault("0"); m != 12 || ok {
		t.Errorf("got %d, %v; want 12, false", m, ok)
	}
}

func TestAskFiscalYearEnd(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		message string
	}{
		{"valid", "9\n", 9, ""},
		{"valid without newline", "3", 3, ""},
		{"out of range", "14\n", 12, "Invalid month entered. Defaulting to December (12)."},
		{"not a number", "march\n", 12, "Invalid input. Defaulting to December (12)."},
		{"no input", "", 12, "No input. Defaulting to December (12)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := AskFiscalYearEnd(strings.NewReader(tt.input), &out)
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if !strings.HasPrefix(out.String(), "Enter the fiscal year-end month (1-12): ") {
				t.Errorf("missing question, output %q", out.String())
			}
			if tt.message != "" && !strings.Contains(out.String(), tt.message) {
				t.Errorf("output %q does not contain %q", out.String(), tt.message)
			}
			if tt.message == "" && strings.Contains(out.String(), "Defaulting") {
				t.Errorf("unexpected fallback notice: %q", out.String())
			}
		})
	}
}
