package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/seenimoa/autodcf/internal/loader"
	"github.com/seenimoa/autodcf/internal/prompt"
	"github.com/seenimoa/autodcf/internal/report"
)

// statementFields are the multipart fields read by POST /api/v1/analyze,
// in the order of loader.DefaultSpecs.
var statementFields = []string{"income", "balance_sheet", "cash_flow"}

var contentTypes = map[report.Format]string{
	report.FormatText: "text/plain; charset=utf-8",
	report.FormatYAML: "application/yaml",
	report.FormatHTML: "text/html; charset=utf-8",
}

// handleAnalyze accepts up to three statement files as multipart/form-data
// and returns the analysis report.
//
// Form fields: income, balance_sheet, cash_flow (files), fiscal_year_end.
// Query: format=json|text|yaml|html (default json).
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	format, err := requestFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	maxBytes := int64(s.cfg.API.MaxUploadMB) << 20
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeErrorf(w, http.StatusBadRequest, "invalid multipart upload: %v", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	fye := s.cfg.Analysis.FiscalYearEnd
	if v := r.FormValue("fiscal_year_end"); v != "" {
		fye, err = prompt.ParseFiscalYearEnd(v)
		if err != nil {
			writeErrorf(w, http.StatusBadRequest, "invalid fiscal_year_end: %v", err)
			return
		}
	}

	specs := loader.DefaultSpecs("", "", "")
	uploaded := 0
	for i, field := range statementFields {
		file, hdr, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			writeErrorf(w, http.StatusBadRequest, "reading %s: %v", field, err)
			return
		}
		defer file.Close()

		specs[i].Path = hdr.Filename
		specs[i].Source = file
		uploaded++
	}
	if uploaded == 0 {
		writeError(w, http.StatusBadRequest, "at least one statement file is required (income, balance_sheet, cash_flow)")
		return
	}

	res := loader.LoadStatements(r.Context(), specs, s.opts)
	results := s.engine.Analyze(res.Inputs(), fye)
	rep := report.New(results, res.Failures)
	s.reports.Set(rep.RunID, rep)

	logger.Info().
		Str("run_id", rep.RunID).
		Int("statements", results.Len()).
		Int("failures", len(res.Failures)).
		Int("fiscal_year_end", fye).
		Msg("analysis complete")

	if len(res.Loaded) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Data:    rep.LoadIssues,
			Error:   "no statement could be loaded",
		})
		return
	}

	s.writeReport(w, r, rep, format)
}

// handleGetReport returns a recent report by run id, in any format.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	rep, ok := s.reports.Get(id)
	if !ok {
		writeErrorf(w, http.StatusNotFound, "report %q not found or expired", id)
		return
	}
	s.writeReport(w, r, rep, format)
}

// writeReport sends rep as an APIResponse for JSON, or rendered otherwise.
func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, rep *report.Report, format report.Format) {
	if format == report.FormatJSON {
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: rep})
		return
	}

	cfg := report.DefaultReportConfig()
	cfg.Format = format
	if s.cfg.Report.Title != "" {
		cfg.Title = s.cfg.Report.Title
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, rep, cfg); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("rendering report")
		writeErrorf(w, http.StatusInternalServerError, "rendering report: %v", err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// requestFormat reads ?format=, defaulting to JSON. PDF is CLI-only.
func requestFormat(r *http.Request) (report.Format, error) {
	name := r.URL.Query().Get("format")
	if name == "" {
		return report.FormatJSON, nil
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if format == report.FormatPDF {
		return "", errors.New("pdf output is only available from the command line")
	}
	return format, nil
}
