// Package web serves a localhost-only single-user UI; it intentionally has no
// auth/CSRF protection in this mode.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gobill/billing"
	"gobill/config"
	"gobill/history"
	"gobill/output"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	cfg      config.Config
	recorder history.Recorder
	sessions *sessionStore
	mux      *http.ServeMux
	now      func() time.Time
	warn     io.Writer
}

type pageView struct {
	Title    string
	FileName string
	Sheet    SheetView
}

type titleRequest struct {
	Title string `json:"title"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func NewServer(recorder history.Recorder, cfg config.Config) http.Handler {
	if recorder == nil {
		recorder = history.Discard{}
	}
	server := &Server{
		cfg:      cfg,
		recorder: recorder,
		sessions: newSessionStore(cfg.Server.SessionTTL, time.Now),
		now:      time.Now,
		warn:     os.Stderr,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /api/sessions/{id}", server.handleAPISession)
	mux.HandleFunc("PUT /api/sessions/{id}/title", server.handleAPITitle)
	mux.HandleFunc("POST /api/sessions/{id}/entries", server.handleAPIEntryAdd)
	mux.HandleFunc("PATCH /api/sessions/{id}/entries/{index}", server.handleAPIEntryPatch)
	mux.HandleFunc("DELETE /api/sessions/{id}/entries/{index}", server.handleAPIEntryDelete)
	mux.HandleFunc("GET /sessions/{id}/download", server.handleDownload)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleIndex starts a new page session on every load, so a reload begins
// with a fresh sheet.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, sheet := s.sessions.create()

	view := pageView{
		Title:    "gobill - billing entries",
		FileName: s.fileName(),
		Sheet:    BuildSheetView(id, sheet),
	}
	w.Header().Set("Cache-Control", "no-store")
	if err := renderTemplate(w, "billing.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPISession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sheet, err := s.sessions.snapshot(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildSheetView(id, sheet))
}

func (s *Server) handleAPITitle(w http.ResponseWriter, r *http.Request) {
	var body titleRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mutate(w, r.PathValue("id"), func(sheet billing.Sheet) billing.Sheet {
		return sheet.SetProjectTitle(body.Title)
	})
}

func (s *Server) handleAPIEntryAdd(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r.PathValue("id"), func(sheet billing.Sheet) billing.Sheet {
		return sheet.AddEntry()
	})
}

// handleAPIEntryPatch updates one field. Unknown field names and indexes past
// the end leave the sheet unchanged and still answer 200.
func (s *Server) handleAPIEntryPatch(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid entry index", http.StatusBadRequest)
		return
	}

	var body fieldRequest
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mutate(w, r.PathValue("id"), func(sheet billing.Sheet) billing.Sheet {
		return sheet.UpdateEntryField(index, body.Field, body.Value)
	})
}

func (s *Server) handleAPIEntryDelete(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid entry index", http.StatusBadRequest)
		return
	}

	s.mutate(w, r.PathValue("id"), func(sheet billing.Sheet) billing.Sheet {
		return sheet.RemoveEntry(index)
	})
}

// handleDownload exports the current snapshot. Each request builds its own
// workbook.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sheet, err := s.sessions.snapshot(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writer, err := output.BillingWriterForFormat(r.URL.Query().Get("format"), s.excelOptions())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, sheet); err != nil {
		http.Error(w, fmt.Sprintf("export billing: %v", err), http.StatusInternalServerError)
		return
	}

	// Recorded before the body is sent so a client holding the file always
	// finds its history row.
	record := history.NewRecord(sheet, writer.Format(), history.SurfaceWeb, s.now())
	_ = history.Save(s.recorder, record, s.warn)

	fileName := downloadName(s.fileName(), writer.Extension())
	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) mutate(w http.ResponseWriter, id string, fn func(billing.Sheet) billing.Sheet) {
	sheet, err := s.sessions.update(id, fn)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildSheetView(id, sheet))
}

func (s *Server) excelOptions() output.ExcelOptions {
	return output.ExcelOptions{
		SheetName:     s.cfg.Export.SheetName,
		TitleFontSize: s.cfg.Export.TitleFontSize,
	}
}

func (s *Server) fileName() string {
	if strings.TrimSpace(s.cfg.Export.FileName) == "" {
		return output.BillingFileName
	}
	return s.cfg.Export.FileName
}

func downloadName(fileName, extension string) string {
	if strings.HasSuffix(strings.ToLower(fileName), extension) {
		return fileName
	}
	stem := strings.TrimSuffix(fileName, ".xlsx")
	return stem + extension
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, "session not found (reload the page)", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func parseIndex(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("index must be >= 0")
	}
	return parsed, nil
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
