// Package claims defines the structured medical-claim shape requested from
// the generative model and the parsing pipeline that turns raw model output
// into it.
package claims

// PatientInfo identifies the claimant.
type PatientInfo struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

// Medication is a single prescribed item on the claim.
type Medication struct {
	Name     *string `json:"name"`
	Dosage   *string `json:"dosage"`
	Quantity *string `json:"quantity"`
}

// AdmissionInfo captures the inpatient stay, if any.
type AdmissionInfo struct {
	WasAdmitted   bool    `json:"was_admitted"`
	AdmissionDate *string `json:"admission_date"` // YYYY-MM-DD
	DischargeDate *string `json:"discharge_date"` // YYYY-MM-DD
}

// ClaimData is the normalized shape we want from the LLM. Fields the model
// declines to populate serialize as explicit nulls, never omitted keys;
// downstream consumers rely on key presence.
type ClaimData struct {
	Patient     PatientInfo   `json:"patient"`
	Diagnoses   []string      `json:"diagnoses"`
	Medications []Medication  `json:"medications"`
	Procedures  []string      `json:"procedures"`
	Admission   AdmissionInfo `json:"admission"`
	TotalAmount *string       `json:"total_amount"`
}

// Normalize ensures sequence fields serialize as empty arrays rather than
// JSON null.
func (c *ClaimData) Normalize() {
	if c.Diagnoses == nil {
		c.Diagnoses = []string{}
	}
	if c.Medications == nil {
		c.Medications = []Medication{}
	}
	if c.Procedures == nil {
		c.Procedures = []string{}
	}
}
