package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/openclaw/qrgen/generator"
	"github.com/openclaw/qrgen/qr"
	"github.com/openclaw/qrgen/render"
)

type generateRequest struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Version int    `json:"version,omitempty"`
	Size    int    `json:"size,omitempty"`
	Level   string `json:"level,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Mask    int    `json:"mask"`
	PNG     string `json:"png,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sym, err := s.Generator.Generate(r.Context(), req.Text)
	if errors.Is(err, generator.ErrEmptyInput) {
		writeJSON(w, http.StatusOK, generateResponse{Status: "empty", Message: "Please enter some text to generate a QR code."})
		return
	}
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	png, err := render.DisplayPNG(sym, s.DisplaySize, s.Border)
	if err != nil {
		s.Log.Error("render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Status:  "ok",
		Version: sym.Version,
		Size:    sym.Size,
		Level:   sym.Level.String(),
		Mode:    sym.Mode.String(),
		Mask:    sym.Mask,
		PNG:     base64.StdEncoding.EncodeToString(png),
	})
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	sym, ok := s.symbolFromQuery(w, r)
	if !ok {
		return
	}

	png, err := render.DisplayPNG(sym, s.sizeParam(r), s.Border)
	if err != nil {
		s.Log.Error("render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	sym, ok := s.symbolFromQuery(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(render.SVG(sym, s.sizeParam(r), s.Border)))
}

// symbolFromQuery generates the symbol for the text query parameter,
// writing the response itself when there is no symbol. Empty text is a
// no-op and gets 204.
func (s *Server) symbolFromQuery(w http.ResponseWriter, r *http.Request) (*qr.Symbol, bool) {
	sym, err := s.Generator.Generate(r.Context(), r.URL.Query().Get("text"))
	if errors.Is(err, generator.ErrEmptyInput) {
		w.WriteHeader(http.StatusNoContent)
		return nil, false
	}
	if err != nil {
		s.writeGenerateError(w, err)
		return nil, false
	}
	return sym, true
}

func (s *Server) sizeParam(r *http.Request) int {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 21 || size > 4096 {
		return s.DisplaySize
	}
	return size
}

func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, qr.ErrDataTooLong), errors.Is(err, qr.ErrInvalidCharacter):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, generator.ErrStopped):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.Log.Error("generate failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
