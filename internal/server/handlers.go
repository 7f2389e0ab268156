package server

import (
	"errors"
	"net/http"

	"github.com/jmylchreest/designkit/internal/design"
	"github.com/jmylchreest/designkit/internal/export"
	"github.com/jmylchreest/designkit/internal/lab"
)

// ContrastRequest is the body of the contrast endpoint.
type ContrastRequest struct {
	Background string  `json:"bgColor"`
	Text       string  `json:"textColor"`
	LineHeight float64 `json:"lineHeight,omitempty"`
}

// ExportRequest is the body of the export endpoint.
type ExportRequest struct {
	Format      string             `json:"format"`
	ColorSystem design.ColorSystem `json:"colorSystem"`
}

// ExportResponse carries rendered code.
type ExportResponse struct {
	Format string `json:"format"`
	Code   string `json:"code"`
}

func (s *Server) handleGenerateGuide(w http.ResponseWriter, r *http.Request) {
	var req design.GuideRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sys, err := s.gen.Guide(r.Context(), req)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	if sys.Fallback {
		s.logger.Warn("served fallback design system", "error", sys.Error)
	}
	s.writeJSON(w, http.StatusOK, sys)
}

func (s *Server) handleRecommendColors(w http.ResponseWriter, r *http.Request) {
	var req design.AdviceRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	advice, err := s.gen.Advise(r.Context(), req)
	if err != nil {
		s.writeRequestError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, advice)
}

// handleContrast measures a pair without calling any provider.
func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	var req ContrastRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Background == "" || req.Text == "" {
		s.writeError(w, http.StatusBadRequest, "background and text colours are required")
		return
	}
	s.writeJSON(w, http.StatusOK, lab.Analyse(req.Background, req.Text, req.LineHeight))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if replaced := req.ColorSystem.Sanitise(design.DefaultColorSystem("")); len(replaced) > 0 {
		s.logger.Debug("export request had malformed colours, using defaults", "roles", replaced)
	}
	code, err := s.exporter.Render(format, req.ColorSystem)
	if err != nil {
		s.logger.Error("export failed", "format", format, "error", err)
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	s.writeJSON(w, http.StatusOK, ExportResponse{Format: string(format), Code: string(code)})
}

// writeRequestError maps request validation errors to 400.
func (s *Server) writeRequestError(w http.ResponseWriter, err error) {
	if errors.Is(err, design.ErrMissingInput) || errors.Is(err, design.ErrInvalidColour) {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("request failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}
