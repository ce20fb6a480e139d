package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenimoa/autodcf/internal/analysis"
	"github.com/seenimoa/autodcf/internal/loader"
	"github.com/seenimoa/autodcf/internal/prompt"
	"github.com/seenimoa/autodcf/internal/report"
)

const defaultPDFOutput = "autodcf-report.pdf"

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse financial statement files",
	Long: `Load up to three statement files, detect each one's reporting frequency
and compute revenue growth for the income statement.

Examples:
  autodcf analyze --income income.csv --balance-sheet bs.xlsx --cash-flow cf.csv
  autodcf analyze --income income.csv --fiscal-year-end 6 --format json
  autodcf analyze --income income.html --prompt
  autodcf analyze --income income.xlsx --sheet "FY Data" --format pdf --output report.pdf`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("income", "", "income statement file (csv, xlsx, html)")
	analyzeCmd.Flags().String("balance-sheet", "", "balance sheet file")
	analyzeCmd.Flags().String("cash-flow", "", "cash flow statement file")
	analyzeCmd.Flags().String("fiscal-year-end", "", "fiscal year-end month, 1-12 (default from config)")
	analyzeCmd.Flags().Bool("prompt", false, "ask for the fiscal year-end month on stdin")
	analyzeCmd.Flags().String("format", "", "output format: text, json, yaml, html, pdf (default from config)")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().String("sheet", "", "worksheet name for xlsx files (default: first sheet)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	income, _ := flags.GetString("income")
	balance, _ := flags.GetString("balance-sheet")
	cashflow, _ := flags.GetString("cash-flow")
	if income == "" && balance == "" && cashflow == "" {
		return errors.New("provide at least one of --income, --balance-sheet, --cash-flow")
	}

	formatName, _ := flags.GetString("format")
	if formatName == "" {
		formatName = cfg.Report.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

	fye := cfg.Analysis.FiscalYearEnd
	switch ask, _ := flags.GetBool("prompt"); {
	case flags.Changed("fiscal-year-end"):
		raw, _ := flags.GetString("fiscal-year-end")
		m, ok := prompt.FiscalYearEndOrDefault(raw)
		if !ok {
			logger.Warn().Str("input", raw).Int("fiscal_year_end", m).Msg("invalid fiscal year end, using default")
		}
		fye = m
	case ask:
		fye = prompt.AskFiscalYearEnd(cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	opts := loader.OptionsFromConfig(cfg.Loader)
	if sheet, _ := flags.GetString("sheet"); sheet != "" {
		opts.Sheet = sheet
	}

	res := loader.LoadStatements(ctx, loader.DefaultSpecs(income, balance, cashflow), opts)
	results := analysis.NewEngineFromConfig(cfg.Analysis).Analyze(res.Inputs(), fye)
	rep := report.New(results, res.Failures)

	logger.Debug().
		Str("run_id", rep.RunID).
		Int("statements", results.Len()).
		Int("failures", len(res.Failures)).
		Int("fiscal_year_end", fye).
		Msg("analysis complete")

	rcfg := report.DefaultReportConfig()
	rcfg.Format = format
	if cfg.Report.Title != "" {
		rcfg.Title = cfg.Report.Title
	}

	output, _ := flags.GetString("output")
	if err := writeReport(cmd, rep, rcfg, output); err != nil {
		return err
	}

	if len(res.Loaded) == 0 {
		return errors.New("no statement could be loaded")
	}
	return nil
}

// writeReport renders rep to output, or to stdout when output is empty.
// PDF always goes to a file.
func writeReport(cmd *cobra.Command, rep *report.Report, rcfg report.ReportConfig, output string) error {
	if rcfg.Format == report.FormatPDF {
		html, err := report.GenerateHTML(rep, rcfg)
		if err != nil {
			return err
		}
		if output == "" {
			output = defaultPDFOutput
		}
		written, err := report.GeneratePDF(cmd.Context(), html, report.PDFConfig{OutputPath: output})
		if err != nil {
			return err
		}
		if written != output {
			logger.Warn().Str("path", written).Msg("no PDF engine found, wrote HTML instead")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", written)
		return nil
	}

	if output == "" {
		return report.Render(cmd.OutOrStdout(), rep, rcfg)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	return writeAndClose(f, rep, rcfg)
}

// writeAndClose renders rep into w and closes it, reporting the close error
// when rendering succeeded.
func writeAndClose(w io.WriteCloser, rep *report.Report, rcfg report.ReportConfig) error {
	if err := report.Render(w, rep, rcfg); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	return nil
}
