package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"labelpress/internal/pipeline"
	"labelpress/internal/render"
	"labelpress/internal/settings"
	"labelpress/internal/tableio"
)

// Sentinels that indicate a bad upload rather than a server fault.
var clientErrors = []error{
	tableio.ErrUnsupportedFormat,
	pipeline.ErrFormatUnrecognized,
	pipeline.ErrMissingColumns,
	pipeline.ErrEmptyInput,
	settings.ErrMalformed,
}

func (s *Server) spreadsheet(r *http.Request) (*tableio.Table, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing file field", tableio.ErrUnsupportedFormat)
	}
	defer file.Close()
	return tableio.Load(header.Filename, file)
}

// handleUpload converts a spreadsheet into a printable label document.
// The optional label_size form field overrides the configured stock.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	table, err := s.spreadsheet(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	labelSize := r.FormValue("label_size")
	if labelSize == "" {
		labelSize = s.cfg.DefaultLabelSize
	}

	gen := render.NewGenerator(s.db.SettingsSnapshot(s.logger), labelSize, s.fetcher, s.codes, s.logger)
	res, err := gen.Generate(r.Context(), table)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	traceID := middleware.GetReqID(r.Context())
	if err := s.db.InsertRun(traceID, "generate", string(res.Format), res.Rows, res.Pages); err != nil {
		s.logger.Warn("run record failed", "err", err)
	}

	filename := fmt.Sprintf("labels_%s.pdf", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Label-Count", strconv.Itoa(res.Pages))
	_, _ = w.Write(res.PDF)
}

// handleValidate dry-runs the parser over an upload and reports match
// outcomes without producing a document. format=xlsx downloads the
// report as a workbook instead of JSON.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	table, err := s.spreadsheet(r)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	pipe := pipeline.New(s.db.SettingsSnapshot(s.logger))
	report, err := pipe.Validate(table)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	traceID := middleware.GetReqID(r.Context())
	if err := s.db.InsertRun(traceID, "validate", string(report.Format), report.TotalRows, 0); err != nil {
		s.logger.Warn("run record failed", "err", err)
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="validation_report.xlsx"`)
		if err := pipeline.WriteReportXLSX(report, w); err != nil {
			s.logger.Error("report export failed", "err", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.db.SettingsSnapshot(s.logger))
}

func (s *Server) handleSettingsPost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.saveSettings(w, body)
}

func (s *Server) handleSettingsExport(w http.ResponseWriter, r *http.Request) {
	cfg := s.db.SettingsSnapshot(s.logger)
	doc, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="settings.json"`)
	_, _ = w.Write(doc)
}

func (s *Server) handleSettingsImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.saveSettings(w, body)
}

// saveSettings validates and stores a settings document in its
// canonical marshaled form.
func (s *Server) saveSettings(w http.ResponseWriter, body []byte) {
	cfg, err := settings.Parse(body)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	doc, err := json.Marshal(cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.db.SaveSettingsJSON(doc); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.db.ListRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}
