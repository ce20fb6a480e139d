package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/seenimoa/autodcf/internal/loader"
	"github.com/seenimoa/autodcf/pkg/models"
	"github.com/seenimoa/autodcf/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Report Generator: orchestrates text, data and chart rendering
// ════════════════════════════════════════════════════════════════════

// Format specifies the output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatHTML, FormatPDF:
		return f, nil
	case "":
		return FormatText, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// ReportConfig controls report generation behaviour.
type ReportConfig struct {
	Format   Format      // output format (default: text)
	Title    string      // report title (optional)
	ChartCfg ChartConfig // chart rendering config
}

// DefaultReportConfig returns sensible defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Format:   FormatText,
		Title:    "Financial Statement Analysis",
		ChartCfg: DefaultChartConfig(),
	}
}

// Issue is a statement file that could not be loaded.
type Issue struct {
	Statement string `json:"statement" yaml:"statement"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Error     string `json:"error" yaml:"error"`
}

// Report is one analysis run ready for presentation.
type Report struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Statements  *models.AnalysisResults `json:"statements" yaml:"statements"`
	LoadIssues  []Issue                 `json:"load_issues,omitempty" yaml:"load_issues,omitempty"`
}

// New wraps analysis results and load failures in a report with a fresh run id.
func New(results *models.AnalysisResults, failures []loader.Failure) *Report {
	if results == nil {
		results = models.NewAnalysisResults()
	}
	rep := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Statements:  results,
	}
	for _, f := range failures {
		issue := Issue{Statement: f.Name, Path: f.Path}
		if f.Err != nil {
			issue.Error = f.Err.Error()
		}
		rep.LoadIssues = append(rep.LoadIssues, issue)
	}
	return rep
}

// Render writes the report to w in cfg.Format. PDF needs a file path and is
// produced with GeneratePDF instead.
func Render(w io.Writer, rep *Report, cfg ReportConfig) error {
	if rep == nil {
		return fmt.Errorf("report is nil")
	}

	var (
		out []byte
		err error
	)
	switch cfg.Format {
	case FormatText, "":
		var s string
		s, err = GenerateText(rep, cfg)
		out = []byte(s)
	case FormatJSON:
		out, err = GenerateJSON(rep)
	case FormatYAML:
		out, err = GenerateYAML(rep)
	case FormatHTML:
		var s string
		s, err = GenerateHTML(rep, cfg)
		out = []byte(s)
	case FormatPDF:
		return fmt.Errorf("pdf output must be written to a file")
	default:
		return fmt.Errorf("unknown report format %q", cfg.Format)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// GenerateJSON encodes the report as indented JSON.
func GenerateJSON(rep *Report) ([]byte, error) {
	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

// GenerateYAML encodes the report as YAML.
func GenerateYAML(rep *Report) ([]byte, error) {
	out, err := yaml.Marshal(rep)
	if err != nil {
		return nil, fmt.Errorf("encoding YAML report: %w", err)
	}
	return out, nil
}

// GenerateHTML generates a self-contained HTML report with SVG charts.
func GenerateHTML(rep *Report, cfg ReportConfig) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("report is nil")
	}

	data := buildReportData(rep, cfg)

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// GenerateText generates the plain-text console report.
func GenerateText(rep *Report, cfg ReportConfig) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("report is nil")
	}

	data := buildReportData(rep, cfg)
	return renderTextReport(data), nil
}

// ════════════════════════════════════════════════════════════════════
// Report Data: flattened for text and template rendering
// ════════════════════════════════════════════════════════════════════

// ReportData is the template model passed to the HTML template.
type ReportData struct {
	Title       string
	RunID       string
	GeneratedAt string
	Statements  []StatementView
	Issues      []Issue
}

// StatementView is one analysed statement, preformatted for display.
type StatementView struct {
	Name          string
	Role          string
	DateColumn    string
	Frequency     string
	TotalPeriods  int
	FullYears     int
	FiscalYearEnd int
	FiscalMonth   string

	ShowRevenue   bool // income statements only
	RevenueFound  bool
	RevenueColumn string
	RevenueRows   []RevenueRow
	AverageGrowth string
	CAGR          string

	RevenueChart template.HTML
	GrowthChart  template.HTML
}

// RevenueRow is one period of the revenue table.
type RevenueRow struct {
	Period      string
	Revenue     string
	Growth      string
	GrowthClass string // CSS class: positive, negative, muted
}

func buildReportData(rep *Report, cfg ReportConfig) ReportData {
	data := ReportData{
		Title:       cfg.Title,
		RunID:       rep.RunID,
		GeneratedAt: utils.FormatTimestamp(rep.GeneratedAt),
		Issues:      rep.LoadIssues,
	}
	if data.Title == "" {
		data.Title = DefaultReportConfig().Title
	}

	for _, a := range rep.Statements.All() {
		view := StatementView{
			Name:          a.Name,
			Role:          string(a.Role),
			DateColumn:    a.DateColumn,
			Frequency:     string(a.Frequency),
			TotalPeriods:  a.TotalPeriods,
			FullYears:     a.FullYears,
			FiscalYearEnd: a.FiscalYearEnd,
			FiscalMonth:   monthName(a.FiscalYearEnd),
			ShowRevenue:   a.Revenue != nil,
		}
		if rev := a.Revenue; rev != nil && rev.Found {
			view.RevenueFound = true
			view.RevenueColumn = rev.Column
			view.RevenueRows = revenueRows(rev)
			view.AverageGrowth = rev.Growth.AverageGrowth.String()
			view.CAGR = rev.Growth.CAGR.String()

			chartCfg := cfg.ChartCfg
			chartCfg.Title = fmt.Sprintf("%s: %s", a.Name, rev.Column)
			view.RevenueChart = template.HTML(RevenueChart(rev.Series, chartCfg))

			chartCfg.Title = "Period-over-Period Growth (%)"
			view.GrowthChart = template.HTML(GrowthChart(rev.Series.Periods(), rev.Growth.PeriodGrowth, chartCfg))
		}
		data.Statements = append(data.Statements, view)
	}

	return data
}

func revenueRows(rev *models.RevenueAnalysis) []RevenueRow {
	rows := make([]RevenueRow, rev.Series.Len())
	for i, p := range rev.Series.Points {
		growth := models.Undefined()
		if i < len(rev.Growth.PeriodGrowth) {
			growth = rev.Growth.PeriodGrowth[i]
		}
		rows[i] = RevenueRow{
			Period:      p.Period.String(),
			Revenue:     utils.FormatAmount(p.Revenue),
			Growth:      growth.String(),
			GrowthClass: growthClass(growth),
		}
	}
	return rows
}

func growthClass(r models.Rate) string {
	switch {
	case !r.Valid:
		return "muted"
	case r.Value < 0:
		return "negative"
	default:
		return "positive"
	}
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}

// ════════════════════════════════════════════════════════════════════
// Text Report
// ════════════════════════════════════════════════════════════════════

func renderTextReport(d ReportData) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString(line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  Generated: %s | Run: %s\n", d.GeneratedAt, d.RunID))
	sb.WriteString(line + "\n")

	if len(d.Statements) == 0 {
		sb.WriteString("\nNo statements with a date column were found.\n")
	}

	for _, s := range d.Statements {
		sb.WriteString(fmt.Sprintf("\n%s Analysis:\n", s.Name))
		sb.WriteString(fmt.Sprintf("Frequency: %s\n", s.Frequency))
		sb.WriteString(fmt.Sprintf("Total Periods: %d\n", s.TotalPeriods))
		sb.WriteString(fmt.Sprintf("Full Years: %d\n", s.FullYears))
		sb.WriteString(fmt.Sprintf("Fiscal Year End: %d\n", s.FiscalYearEnd))

		if !s.ShowRevenue {
			continue
		}
		sb.WriteString(thinLine + "\n")
		if !s.RevenueFound {
			sb.WriteString("Revenue data is missing from the dataset.\n")
			continue
		}

		sb.WriteString("\nRevenue Data with Growth Rates:\n")
		periodW, revW := len("Period"), len(s.RevenueColumn)
		for _, r := range s.RevenueRows {
			periodW = max(periodW, len(r.Period))
			revW = max(revW, len(r.Revenue))
		}
		sb.WriteString(fmt.Sprintf("  %-*s  %*s  %14s\n", periodW, "Period", revW, s.RevenueColumn, "Revenue Growth"))
		for _, r := range s.RevenueRows {
			sb.WriteString(fmt.Sprintf("  %-*s  %*s  %14s\n", periodW, r.Period, revW, r.Revenue, r.Growth))
		}

		sb.WriteString(fmt.Sprintf("\nAverage Revenue Growth: %s\n", s.AverageGrowth))
		sb.WriteString(fmt.Sprintf("Compound Annual Growth Rate (CAGR): %s\n", s.CAGR))
	}

	if len(d.Issues) > 0 {
		sb.WriteString("\n" + thinLine + "\n")
		sb.WriteString("Load issues:\n")
		for _, is := range d.Issues {
			sb.WriteString(fmt.Sprintf("  - Error loading %s: %s\n", is.Statement, is.Error))
		}
	}

	sb.WriteString(line + "\n")
	return sb.String()
}
