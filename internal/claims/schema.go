package claims

// BuildClaimJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We embed it literally in the extraction prompt and use it
// locally to check normalized model output.
func BuildClaimJSONSchema() map[string]any {
	props := map[string]any{
		"patient": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": nullableProp("string"),
				"age":  nullableProp("integer"),
			},
			"required": []string{"name", "age"},
		},
		"diagnoses": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"medications": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     nullableProp("string"),
					"dosage":   nullableProp("string"),
					"quantity": nullableProp("string"),
				},
				"required": []string{"name", "dosage", "quantity"},
			},
		},
		"procedures": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"admission": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"was_admitted":   map[string]any{"type": "boolean"},
				"admission_date": dateProp(),
				"discharge_date": dateProp(),
			},
			"required": []string{"was_admitted", "admission_date", "discharge_date"},
		},
		"total_amount": nullableProp("string"),
	}

	required := []string{"patient", "diagnoses", "medications", "procedures", "admission", "total_amount"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func nullableProp(typ string) map[string]any {
	return map[string]any{"type": []string{typ, "null"}}
}

func dateProp() map[string]any {
	// pattern only constrains string instances; null still passes
	return map[string]any{
		"type":    []string{"string", "null"},
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	}
}
