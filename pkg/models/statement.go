package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical layout used when a date cell is rendered as text.
const DateLayout = "2006-01-02"

// ValueKind identifies the type held by a statement cell.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindDate
	KindNumber
	KindText
)

// String returns the lowercase kind name.
func (k ValueKind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// Value is a single cell of a financial statement.
type Value struct {
	Kind ValueKind
	Time time.Time
	Num  float64
	Text string
}

// Null returns an empty cell.
func Null() Value { return Value{} }

// DateValue wraps a date cell.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// NumberValue wraps a numeric cell.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// TextValue wraps a text cell.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// IsNull reports whether the cell is empty.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Float returns the numeric content of the cell.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// Date returns the date content of the cell.
func (v Value) Date() (time.Time, bool) {
	if v.Kind != KindDate {
		return time.Time{}, false
	}
	return v.Time, true
}

// String renders the cell as a period label.
func (v Value) String() string {
	switch v.Kind {
	case KindDate:
		return v.Time.Format(DateLayout)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// MarshalJSON encodes null cells as null, numbers as numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(v.Num)
	default:
		return json.Marshal(v.String())
	}
}

// UnmarshalJSON reverses MarshalJSON. Strings in DateLayout decode as dates.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null()
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case float64:
		*v = NumberValue(x)
	case string:
		if t, err := time.Parse(DateLayout, x); err == nil {
			*v = DateValue(t)
		} else {
			*v = TextValue(x)
		}
	default:
		return fmt.Errorf("unsupported cell value %s", string(data))
	}
	return nil
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v2.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case KindNull:
		return nil, nil
	case KindNumber:
		return v.Num, nil
	default:
		return v.String(), nil
	}
}

// StatementRole tags what kind of financial statement a table holds.
type StatementRole string

const (
	RoleIncome       StatementRole = "income"
	RoleBalanceSheet StatementRole = "balance_sheet"
	RoleCashFlow     StatementRole = "cash_flow"
	RoleOther        StatementRole = "other"
)

// ParseRole maps user input (flag values, form fields) to a role.
// Unrecognised input maps to RoleOther.
func ParseRole(s string) StatementRole {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "income_statement", "income-statement", "pnl", "p&l", "profit_loss":
		return RoleIncome
	case "balance", "balance_sheet", "balance-sheet", "bs":
		return RoleBalanceSheet
	case "cash_flow", "cash-flow", "cashflow", "cf":
		return RoleCashFlow
	default:
		return RoleOther
	}
}

// Statement is an in-memory rectangular financial statement.
// Every row has exactly len(Columns) cells.
type Statement struct {
	Name    string
	Columns []string
	Rows    [][]Value
}

// NewStatement creates an empty statement with a fixed column set.
func NewStatement(name string, columns []string) *Statement {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Statement{Name: name, Columns: cols}
}

// AddRow appends a row. Short rows are padded with nulls; long rows are rejected.
func (s *Statement) AddRow(cells ...Value) error {
	if len(cells) > len(s.Columns) {
		return fmt.Errorf("row has %d cells, statement %q has %d columns", len(cells), s.Name, len(s.Columns))
	}
	row := make([]Value, len(s.Columns))
	copy(row, cells)
	s.Rows = append(s.Rows, row)
	return nil
}

// Len returns the number of rows.
func (s *Statement) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Cell returns the value at (row, col), or null when out of range.
func (s *Statement) Cell(row, col int) Value {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Null()
	}
	return s.Rows[row][col]
}

// Column returns a copy of every cell in column i.
func (s *Statement) Column(i int) []Value {
	if i < 0 || i >= len(s.Columns) {
		return nil
	}
	out := make([]Value, len(s.Rows))
	for r := range s.Rows {
		out[r] = s.Rows[r][i]
	}
	return out
}

// IsDateColumn reports whether every non-null cell of column i is a date
// and at least one cell is non-null.
func (s *Statement) IsDateColumn(i int) bool {
	if i < 0 || i >= len(s.Columns) {
		return false
	}
	seen := false
	for _, row := range s.Rows {
		v := row[i]
		if v.IsNull() {
			continue
		}
		if v.Kind != KindDate {
			return false
		}
		seen = true
	}
	return seen
}
