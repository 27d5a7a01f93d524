package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/common"
)

// AskRequest is the /ask request body.
type AskRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
}

// AskResponse is the /ask success body.
type AskResponse struct {
	Answer string `json:"answer"`
}

// handleAsk answers a question against a previously processed document.
func (s *Service) handleAsk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logger, common.InvalidInputError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.DocumentID) == "" || strings.TrimSpace(req.Question) == "" {
		writeError(w, s.logger, common.InvalidInputError("document_id and question are required"))
		return
	}

	rec, ok := s.store.Get(req.DocumentID)
	if !ok {
		writeError(w, s.logger, common.DocumentNotFoundError(req.DocumentID))
		return
	}

	answer, err := s.answerer.Answer(ctx, rec.RawText, req.Question)
	if err != nil {
		writeError(w, s.logger, common.AnswerFailedError(err))
		return
	}

	s.logger.Info("ask.answered",
		"document_id", req.DocumentID,
		"question_len", len(req.Question),
		"answer_len", len(answer),
	)
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}
