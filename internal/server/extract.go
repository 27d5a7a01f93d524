package server

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/claims"
	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/common"
)

// ExtractResponse is the /extract success body: the parsed claim fields
// plus the newly issued document identifier.
type ExtractResponse struct {
	claims.ClaimData
	DocumentID string `json:"document_id"`
}

// handleExtract runs the upload flow: media-kind check, text extraction,
// structured extraction, two-stage parse, store, respond. The record is
// created atomically after the model output parses; a failure at any stage
// leaves the store untouched.
func (s *Service) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	data, contentType, err := readUpload(r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	text, err := s.extractor.Extract(ctx, data, contentType)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	raw, err := s.fields.ExtractClaim(ctx, text)
	if err != nil {
		writeError(w, s.logger, common.ExtractionFailedError("structured extraction failed", err))
		return
	}

	claim, notes, err := claims.Parse(raw)
	if err != nil {
		writeError(w, s.logger, common.ExtractionFailedError("structured extraction failed", err))
		return
	}
	if len(notes) > 0 {
		s.logger.Warn("claims.normalize_applied", "notes", notes)
	}
	if verr := claims.ValidateClaim(claim); verr != nil {
		// Advisory only; the typed claim is stored and returned regardless.
		s.logger.Warn("claims.schema_mismatch", "error", verr)
	}

	id := s.store.Put(text, *claim)
	s.logger.Info("extract.stored",
		"document_id", id,
		"content_type", contentType,
		"text_len", len(text),
	)

	writeJSON(w, http.StatusOK, ExtractResponse{ClaimData: *claim, DocumentID: id})
}

// readUpload returns the file bytes and their declared content type from
// either a multipart form ("file" part) or a raw request body.
func readUpload(r *http.Request) ([]byte, string, error) {
	reqType := r.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(reqType); err == nil && strings.HasPrefix(mt, "multipart/") {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return nil, "", common.InvalidInputError("multipart form must include a 'file' part")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", common.NewAppError(common.CodeInternal, "read uploaded file", err)
		}
		return data, hdr.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", common.InvalidInputError("read request body: " + err.Error())
	}
	return data, reqType, nil
}
