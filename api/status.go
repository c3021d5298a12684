package api

import (
	"net/http"
	"time"

	"github.com/openclaw/qrgen/generator"
)

type statusResponse struct {
	Status  string          `json:"status"`
	Level   string          `json:"level"`
	Uptime  string          `json:"uptime"`
	Version string          `json:"version"`
	Stats   generator.Stats `json:"stats"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Level:   s.Generator.Level().String(),
		Uptime:  time.Since(s.Started).Truncate(time.Second).String(),
		Version: s.Version,
		Stats:   s.Generator.Stats(),
	})
}
