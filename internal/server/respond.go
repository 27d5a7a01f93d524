package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/common"
)

// ErrorResponse is the body of every failure response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("http.encode_response_error", "error", err)
	}
}

// writeError translates a classified failure into its HTTP status and a
// JSON detail body. Nothing is swallowed; unclassified errors report as 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code := common.CodeOf(err)
	logger.Warn("http.request_failed",
		"code", code,
		"status", code.HTTPStatus(),
		"error", err,
	)
	writeJSON(w, code.HTTPStatus(), ErrorResponse{Detail: common.DetailOf(err)})
}
