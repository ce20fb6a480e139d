// Package loader reads financial statement files (CSV, Excel workbooks and
// HTML tables) into typed statements for the analysis engine.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/seenimoa/autodcf/internal/config"
	"github.com/seenimoa/autodcf/pkg/models"
)

var (
	// ErrUnsupportedFormat is returned for file extensions the loader cannot read.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyStatement is returned when a file holds no header row.
	ErrEmptyStatement = errors.New("statement has no header row")
)

// Options controls how individual files are read.
type Options struct {
	Sheet         string // xlsx sheet, empty selects the first sheet
	TableSelector string // CSS selector for HTML statements, empty selects the first table
	Concurrency   int    // parallel loads in LoadStatements
}

// OptionsFromConfig maps the loader settings to Options.
func OptionsFromConfig(cfg config.LoaderConfig) Options {
	return Options{
		Sheet:         cfg.Sheet,
		TableSelector: cfg.TableSelector,
		Concurrency:   cfg.Concurrency,
	}
}

// LoadFile reads one statement file, dispatching on its extension.
func LoadFile(path string, opts Options) (*models.Statement, error) {
	if _, err := formatOf(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return LoadReader(f, filepath.Base(path), opts)
}

// LoadReader reads a statement from r. The extension of name selects the format.
func LoadReader(r io.Reader, name string, opts Options) (*models.Statement, error) {
	format, err := formatOf(name)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case "csv":
		records, err = readCSV(r)
	case "xlsx":
		records, err = readXLSX(r, opts.Sheet)
	case "html":
		records, err = readHTML(r, opts.TableSelector)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return fromRecords(name, records)
}

// formatOf maps a file name to one of "csv", "xlsx" or "html".
func formatOf(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return "csv", nil
	case ".xlsx", ".xlsm":
		return "xlsx", nil
	case ".html", ".htm":
		return "html", nil
	case ".xls":
		return "", fmt.Errorf("%w: legacy .xls workbooks, save as .xlsx", ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// fromRecords turns raw rows into a statement. The first non-empty row is
// the header. Blank header cells and columns wider than the header are
// named "Unnamed: <index>". Blank data rows are dropped.
func fromRecords(name string, records [][]string) (*models.Statement, error) {
	start := -1
	for i, rec := range records {
		if !blank(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyStatement)
	}

	header := records[start]
	width := len(header)
	for _, rec := range records[start+1:] {
		width = max(width, len(rec))
	}

	columns := make([]string, width)
	for i := range columns {
		if i < len(header) {
			columns[i] = strings.TrimSpace(header[i])
		}
		if columns[i] == "" {
			columns[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}

	s := models.NewStatement(name, columns)
	for _, rec := range records[start+1:] {
		if blank(rec) {
			continue
		}
		cells := make([]models.Value, len(rec))
		for i, raw := range rec {
			cells[i] = ParseCell(raw)
		}
		if err := s.AddRow(cells...); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return s, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
