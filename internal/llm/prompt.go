package llm

import "strings"

// OCRPrompt is the fixed instruction sent with an uploaded image.
const OCRPrompt = "Extract all text from this medical claim document. Return only the raw text without any formatting:"

// claimShape is the literal JSON shape embedded in the extraction prompt.
// It must stay in sync with claims.BuildClaimJSONSchema.
const claimShape = `{
    "patient": {
        "name": "string or null",
        "age": "number or null"
    },
    "diagnoses": ["array of strings"],
    "medications": [
        {
            "name": "string or null",
            "dosage": "string or null",
            "quantity": "string or null"
        }
    ],
    "procedures": ["array of strings"],
    "admission": {
        "was_admitted": "boolean",
        "admission_date": "string or null in YYYY-MM-DD format",
        "discharge_date": "string or null in YYYY-MM-DD format"
    },
    "total_amount": "string or null"
}`

// BuildExtractionPrompt composes the structured-extraction request: the
// claim shape as literal JSON-shaped instructions plus the full input text.
func BuildExtractionPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Extract medical claim information from the following text and return ONLY valid JSON in this exact structure:\n\n")
	b.WriteString(claimShape)
	b.WriteString("\n\nText to analyze:\n")
	b.WriteString(text)
	return b.String()
}

// BuildAnswerPrompt composes the question-answering request over stored
// document text.
func BuildAnswerPrompt(documentText, question string) string {
	var b strings.Builder
	b.WriteString("Based on the following medical claim document text, answer this question: ")
	b.WriteString(question)
	b.WriteString("\n\nDocument text:\n")
	b.WriteString(documentText)
	b.WriteString("\n\nReturn only the direct answer without any additional text or explanation.")
	return b.String()
}
