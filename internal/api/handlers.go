package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qc"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qcfix"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/report"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/subtitle"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	resp := profilesResponse{Version: s.catalog.Version}
	for _, name := range s.catalog.Names() {
		prof, _ := s.catalog.Get(name)
		resp.Profiles = append(resp.Profiles, profileEntry{
			Name:       name,
			Thresholds: prof,
			Guidelines: s.catalog.Sources(name),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if !s.decode(w, r, &req) {
		return
	}

	doc, prof, name, ok := s.loadDocument(w, r, &req)
	if !ok {
		return
	}

	issues, metrics := qc.Evaluate(doc, prof)
	countIssues(issues)
	if issues == nil {
		issues = []qc.Issue{}
	}

	resp := runResponse{
		Issues:  issues,
		Metrics: metrics,
		Preview: preview(doc),
	}

	if r.URL.Query().Get("report") == "html" {
		var sb strings.Builder
		if err := report.Render(&sb, report.Data{
			ProfileName: name,
			Issues:      issues,
			Metrics:     metrics,
			Sources:     s.catalog.Sources(name),
		}); err != nil {
			s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("render report: %w", err))
			return
		}
		resp.ReportHTML = sb.String()
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	var req fixRequest
	if !s.decode(w, r, &req) {
		return
	}

	mode := req.FixMode
	if mode == "" {
		mode = FixModeNone
	}
	switch mode {
	case FixModeNone, FixModeSafeOnly, FixModeAssisted:
	default:
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("unknown fixMode %q", req.FixMode))
		return
	}

	doc, prof, _, ok := s.loadDocument(w, r, &req.runRequest)
	if !ok {
		return
	}

	issues, metrics := qc.Evaluate(doc, prof)
	countIssues(issues)
	if issues == nil {
		issues = []qc.Issue{}
	}

	resp := fixResponse{Issues: issues, Metrics: metrics}
	if mode == FixModeSafeOnly {
		resp.Changes = qcfix.Apply(doc, prof)
		resp.FixedText = subtitle.RenderSRT(doc)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// loadDocument resolves the payload, profile and parsed document shared by
// the run and fix endpoints, writing the error response itself on failure.
func (s *Server) loadDocument(
	w http.ResponseWriter,
	r *http.Request,
	req *runRequest,
) (*subtitle.Document, *profile.Profile, string, bool) {
	content, err := req.resolveContent()
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, nil, "", false
	}

	name := req.Profile
	if name == "" {
		name = s.cfg.DefaultProfile
	}
	prof, err := s.catalog.Get(name)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, nil, "", false
	}

	doc, err := subtitle.Load(content, req.Filename)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, nil, "", false
	}
	return doc, prof, name, true
}

func preview(doc *subtitle.Document) string {
	if len(doc.Cues) == 0 {
		return ""
	}
	return doc.Cues[0].Text()
}

func countIssues(issues []qc.Issue) {
	for _, issue := range issues {
		issuesReported.WithLabelValues(string(issue.Severity)).Inc()
	}
}

// decode reads a size-capped JSON body, reporting malformed input as 400.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return false
		}
		s.writeError(w, r, http.StatusBadRequest, errors.New("invalid JSON body"))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warnw("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: RequestIDFromContext(r.Context()),
	})
}
