package loader

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the formatted rows of the named sheet, or of the first
// sheet when sheet is empty. Date-styled cells are rewritten from their
// serial value as ISO dates, whatever their display format.
func readXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	styles := map[int]bool{}
	for i := range rows {
		if i >= len(raw) {
			break
		}
		for j := range rows[i] {
			if j >= len(raw[i]) {
				break
			}
			if d, ok := serialDate(f, sheet, styles, i, j, raw[i][j]); ok {
				rows[i][j] = d
			}
		}
	}
	return rows, nil
}

// serialDate converts a numeric cell carrying a date number format.
func serialDate(f *excelize.File, sheet string, styles map[int]bool, row, col int, raw string) (string, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", false
	}
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return "", false
	}
	isDate, seen := styles[id]
	if !seen {
		isDate = dateStyle(f, id)
		styles[id] = isDate
	}
	if !isDate {
		return "", false
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02"), true
	}
	return t.Format("2006-01-02 15:04:05"), true
}

// builtinDateFormats are the built-in number format ids that render dates
// or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// Quoted literals and bracketed sections ([Red], [$-409]) carry no date tokens.
var numFmtLiterals = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

func dateStyle(f *excelize.File, id int) bool {
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateNumFmt(*style.CustomNumFmt)
	}
	return builtinDateFormats[style.NumFmt]
}

// isDateNumFmt reports whether a custom number format code renders a date.
func isDateNumFmt(code string) bool {
	s := strings.ToLower(numFmtLiterals.ReplaceAllString(code, ""))
	if strings.Contains(s, "general") {
		return false
	}
	return strings.ContainsAny(s, "ymd")
}
