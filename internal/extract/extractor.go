// Package extract recovers plain text from uploaded claim documents.
// Images go to an OCR-capable model in a single request; PDFs are parsed
// locally page by page.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/common"
	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/llm"
)

// Kind identifies a supported upload media kind.
type Kind string

const (
	KindImage Kind = "IMAGE"
	KindPDF   Kind = "PDF"
)

// DetectKind maps a declared content type to a media kind. Anything other
// than image/* or application/pdf fails before any extraction attempt.
func DetectKind(contentType string) (Kind, error) {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case strings.HasPrefix(mt, "image/"):
		return KindImage, nil
	case mt == "application/pdf":
		return KindPDF, nil
	default:
		return "", common.UnsupportedMediaTypeError(contentType)
	}
}

type Extractor struct {
	logger *slog.Logger
	ocr    llm.TextRecognizer
}

func NewExtractor(logger *slog.Logger, ocr llm.TextRecognizer) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger, ocr: ocr}
}

// Extract recovers plain text from the payload. No partial result is ever
// returned: any provider or parser error fails the whole call.
func (e *Extractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	kind, err := DetectKind(contentType)
	if err != nil {
		return "", err
	}

	start := time.Now()
	var text string
	switch kind {
	case KindImage:
		text, err = e.ocr.RecognizeText(ctx, data, mediaType(contentType))
		if err != nil {
			return "", common.ExtractionFailedError("image text extraction failed", err)
		}
	case KindPDF:
		pages, perr := extractPDFPages(data)
		if perr != nil {
			return "", common.ExtractionFailedError("pdf text extraction failed", perr)
		}
		text = joinPages(pages)
	}

	e.logger.Info("extract.text.ok",
		"kind", kind,
		"bytes", len(data),
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// joinPages appends every page's text plus a newline separator, in order.
// Pages that yielded no text still contribute their separator so page-count
// expectations hold downstream.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// mediaType strips any parameters from a content type, e.g.
// "image/png; charset=binary" -> "image/png".
func mediaType(contentType string) string {
	mt := strings.TrimSpace(contentType)
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return strings.ToLower(mt)
}
