// Package server is the HTTP surface of the claims QA service: document
// upload and extraction, question answering, and a health report.
package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/extract"
	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/llm"
	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/store"
)

const defaultMaxUploadBytes = 20 * 1024 * 1024

type Service struct {
	logger    *slog.Logger
	store     store.DocumentStore
	extractor *extract.Extractor
	fields    llm.FieldExtractor
	answerer  llm.Answerer
	maxUpload int64
}

func NewService(
	logger *slog.Logger,
	st store.DocumentStore,
	extractor *extract.Extractor,
	fields llm.FieldExtractor,
	answerer llm.Answerer,
	maxUploadBytes int64,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Service{
		logger:    logger,
		store:     st,
		extractor: extractor,
		fields:    fields,
		answerer:  answerer,
		maxUpload: maxUploadBytes,
	}
}

// RegisterHTTP mounts the service routes on the router.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Post("/extract", s.handleExtract)
	r.Post("/ask", s.handleAsk)
	r.Get("/health", s.handleHealth)
}

// NewRouter builds the chi router with standard middleware.
func NewRouter(s *Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	s.RegisterHTTP(r)
	return r
}
