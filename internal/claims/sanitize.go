package claims

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeClaimJSON
// - Removes unknown top-level keys
// - Coerces numeric-string ages to integers and numeric amounts to strings
// - Wraps stray scalar values where the schema expects sequences
// - Drops null entries inside sequences
// Returns the cleaned document plus a note per adjustment made.
func NormalizeClaimJSON(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	notes := make([]string, 0, 8)

	// 1) remove unknown keys
	allowed := map[string]struct{}{
		"patient": {}, "diagnoses": {}, "medications": {},
		"procedures": {}, "admission": {}, "total_amount": {},
	}
	for k := range m {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			notes = append(notes, k+"(unknown)")
		}
	}

	// 2) patient: age may come back as a numeric string
	if p, ok := m["patient"].(map[string]any); ok {
		switch t := p["age"].(type) {
		case string:
			s := strings.TrimSpace(t)
			if n, err := strconv.Atoi(s); err == nil {
				p["age"] = n
				notes = append(notes, "patient.age(string)")
			} else {
				delete(p, "age")
				notes = append(notes, "patient.age(drop)")
			}
		}
	}

	// 3) string sequences: tolerate a bare string, drop null entries
	for _, k := range []string{"diagnoses", "procedures"} {
		switch t := m[k].(type) {
		case string:
			m[k] = []any{t}
			notes = append(notes, k+"(scalar)")
		case []any:
			m[k] = compactStrings(t, k, &notes)
		}
	}

	// 4) medications: entries that are bare strings become {"name": s};
	// dosage/quantity numbers coerce to strings
	if meds, ok := m["medications"].([]any); ok {
		out := make([]any, 0, len(meds))
		for i, entry := range meds {
			switch t := entry.(type) {
			case map[string]any:
				for _, f := range []string{"name", "dosage", "quantity"} {
					if v, ok := t[f].(float64); ok {
						t[f] = formatNumber(v)
						notes = append(notes, fmt.Sprintf("medications[%d].%s(number)", i, f))
					}
				}
				out = append(out, t)
			case string:
				out = append(out, map[string]any{"name": t})
				notes = append(notes, fmt.Sprintf("medications[%d](scalar)", i))
			case nil:
				notes = append(notes, fmt.Sprintf("medications[%d](null)", i))
			}
		}
		m["medications"] = out
	}

	// 5) admission: was_admitted may come back as a string boolean;
	// empty date strings become explicit nulls
	if adm, ok := m["admission"].(map[string]any); ok {
		if v, ok := adm["was_admitted"].(string); ok {
			adm["was_admitted"] = strings.EqualFold(strings.TrimSpace(v), "true")
			notes = append(notes, "admission.was_admitted(string)")
		}
		for _, f := range []string{"admission_date", "discharge_date"} {
			if v, ok := adm[f].(string); ok && strings.TrimSpace(v) == "" {
				adm[f] = nil
				notes = append(notes, "admission."+f+"(empty)")
			}
		}
	}

	// 6) total_amount: numbers coerce to strings
	switch t := m["total_amount"].(type) {
	case float64:
		m["total_amount"] = formatNumber(t)
		notes = append(notes, "total_amount(number)")
	case string:
		if strings.TrimSpace(t) == "" {
			m["total_amount"] = nil
			notes = append(notes, "total_amount(empty)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, notes, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, notes, nil
}

func compactStrings(in []any, key string, notes *[]string) []any {
	out := make([]any, 0, len(in))
	for i, v := range in {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case nil:
			*notes = append(*notes, fmt.Sprintf("%s[%d](null)", key, i))
		default:
			out = append(out, fmt.Sprintf("%v", t))
			*notes = append(*notes, fmt.Sprintf("%s[%d](type)", key, i))
		}
	}
	return out
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
