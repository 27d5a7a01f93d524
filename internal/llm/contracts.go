package llm

import "context"

// TextRecognizer is an OCR-capable model: document image -> raw text.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// FieldExtractor converts document text into structured-claim JSON. The
// response is returned unparsed; parsing and repair are the caller's
// responsibility.
type FieldExtractor interface {
	ExtractClaim(ctx context.Context, text string) (string, error)
}

// Answerer answers a free-text question against stored document text.
type Answerer interface {
	Answer(ctx context.Context, documentText, question string) (string, error)
}
