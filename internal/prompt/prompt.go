// Package prompt asks the user for the company's fiscal year end month.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultFiscalYearEnd is December.
const DefaultFiscalYearEnd = 12

var (
	// ErrNotANumber is returned when the input is not an integer.
	ErrNotANumber = errors.New("fiscal year end is not a number")
	// ErrMonthOutOfRange is returned for integers outside 1-12.
	ErrMonthOutOfRange = errors.New("fiscal year end must be between 1 and 12")
)

// ParseFiscalYearEnd parses a month number in 1-12.
func ParseFiscalYearEnd(s string) (int, error) {
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	if m < 1 || m > 12 {
		return 0, fmt.Errorf("%w: got %d", ErrMonthOutOfRange, m)
	}
	return m, nil
}

// FiscalYearEndOrDefault parses s and falls back to December on invalid input.
func FiscalYearEndOrDefault(s string) (int, bool) {
	m, err := ParseFiscalYearEnd(s)
	if err != nil {
		return DefaultFiscalYearEnd, false
	}
	return m, true
}

// AskFiscalYearEnd writes the question to out and reads one line from in.
// Invalid or missing input yields December and a notice on out.
func AskFiscalYearEnd(in io.Reader, out io.Writer) int {
	fmt.Fprint(out, "Enter the fiscal year-end month (1-12): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out, "\nNo input. Defaulting to December (12).")
		return DefaultFiscalYearEnd
	}

	m, err := ParseFiscalYearEnd(line)
	switch {
	case errors.Is(err, ErrMonthOutOfRange):
		fmt.Fprintln(out, "Invalid month entered. Defaulting to December (12).")
		return DefaultFiscalYearEnd
	case err != nil:
		fmt.Fprintln(out, "Invalid input. Defaulting to December (12).")
		return DefaultFiscalYearEnd
	}
	return m
}
