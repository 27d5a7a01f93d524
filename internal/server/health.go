package server

import "net/http"

// HealthResponse is the /health body. There is no failure path.
type HealthResponse struct {
	Status          string `json:"status"`
	DocumentsStored int    `json:"documents_stored"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:          "healthy",
		DocumentsStored: s.store.Count(),
	})
}
