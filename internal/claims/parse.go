package claims

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripMarkdownFences removes surrounding whitespace and any literal
// ```json / ``` fence markers from model output. This is the single repair
// pass allowed between the two strict parse attempts.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// Parse converts raw model output into ClaimData.
//
// Two-stage parse: strict JSON decode first; on failure, one fence-stripping
// normalization pass, then a second strict decode. No further heuristics —
// if the second attempt fails, the whole extraction fails. Successfully
// parsed output then goes through lenient shape normalization before the
// typed decode.
func Parse(raw string) (*ClaimData, []string, error) {
	doc := []byte(raw)
	if !json.Valid(doc) {
		repaired := StripMarkdownFences(raw)
		doc = []byte(repaired)
		if !json.Valid(doc) {
			return nil, nil, fmt.Errorf("model output is not valid JSON")
		}
	}

	cleaned, notes, err := NormalizeClaimJSON(doc)
	if err != nil {
		return nil, notes, err
	}

	var claim ClaimData
	if err := json.Unmarshal(cleaned, &claim); err != nil {
		return nil, notes, fmt.Errorf("unmarshal claim fields: %w", err)
	}
	claim.Normalize()
	return &claim, notes, nil
}
