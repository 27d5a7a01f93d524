// Package gemini implements the llm provider contracts against the Gemini
// generateContent REST API.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fikayo1/Intelligent-medical-claims-QA/internal/llm"
)

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generationConfig struct {
	Temperature *float32 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// RecognizeText implements llm.TextRecognizer: one request carrying the
// fixed OCR instruction plus the full image payload; the model's text
// comes back verbatim.
func (c *Client) RecognizeText(ctx context.Context, image []byte, mimeType string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("ocr.recognize.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"mime_type", mimeType,
		"bytes", len(image),
	)

	parts := []part{
		{Text: llm.OCRPrompt},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		c.log.Error("ocr.recognize.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	c.log.Info("ocr.recognize.ok",
		"req_id", rid,
		"text_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// ExtractClaim implements llm.FieldExtractor. The raw model text is
// returned unparsed; two-stage parsing happens at the orchestrator.
func (c *Client) ExtractClaim(ctx context.Context, text string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(text),
	)

	out, err := c.generate(ctx, []part{{Text: llm.BuildExtractionPrompt(text)}})
	if err != nil {
		c.log.Error("llm.extract.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"response_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Answer implements llm.Answerer. Surrounding whitespace is trimmed from
// the model response.
func (c *Client) Answer(ctx context.Context, documentText, question string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.answer.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"question_len", len(question),
		"text_len", len(documentText),
	)

	out, err := c.generate(ctx, []part{{Text: llm.BuildAnswerPrompt(documentText, question)}})
	if err != nil {
		c.log.Error("llm.answer.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	c.log.Info("llm.answer.ok",
		"req_id", rid,
		"answer_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return strings.TrimSpace(out), nil
}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	body := generateRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: &generationConfig{
			Temperature: &c.cfg.Temperature,
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/models/" + c.cfg.Model + ":generateContent"
	headers := map[string]string{"x-goog-api-key": c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		if len(raw) > 0 {
			return "", fmt.Errorf("gemini request failed: %w: %s", err, string(raw))
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var b strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
