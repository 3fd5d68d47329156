package http

import (
	"net/http"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	stats, err := s.uc.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Status        string `json:"status"`
		ProjectsCount int64  `json:"projects_count"`
		RisksCount    int64  `json:"risks_count"`
		Version       string `json:"version"`
	}{
		Status:        "healthy",
		ProjectsCount: stats.ProjectCount,
		RisksCount:    stats.RiskCount,
		Version:       s.version,
	})
}
