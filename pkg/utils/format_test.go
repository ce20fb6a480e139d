package utils

import (
	"math"
	"testing"
	"time"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.00"},
		{100, "100.00"},
		{1000, "1,000.00"},
		{12345, "12,345.00"},
		{123456, "123,456.00"},
		{1234567.891, "1,234,567.89"},
		{2847.5, "2,847.50"},
		{999.999, "1,000.00"},
		{-1234.56, "-1,234.56"},
		{-0.001, "0.00"},
		{math.NaN(), "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatAmount(tt.input)
			if result != tt.expected {
				t.Errorf("FormatAmount(%f) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{500, "500"},
		{12.5, "12.5"},
		{1500, "1.5 K"},
		{2500000, "2.5 M"},
		{7.25e9, "7.25 B"},
		{3e12, "3 T"},
		{-4200000, "-4.2 M"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatCompact(tt.input)
			if result != tt.expected {
				t.Errorf("FormatCompact(%f) = %s, want %s", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatPct(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{2.45, "+2.45%"},
		{0, "+0.00%"},
		{-1.234, "-1.23%"},
	}

	for _, tt := range tests {
		if got := FormatPct(tt.input); got != tt.expected {
			t.Errorf("FormatPct(%f) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 10, 19, 15, 4, 0, 0, time.UTC)
	if got, want := FormatTimestamp(ts), "19 Oct 2026, 03:04 PM UTC"; got != want {
		t.Errorf("FormatTimestamp = %q, want %q", got, want)
	}
}
