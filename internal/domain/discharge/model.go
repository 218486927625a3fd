package discharge

// Summary is the input to the discharge PDF. Every field is optional and an
// absent field renders as empty text.
type Summary struct {
	BHT             *string `json:"bht,omitempty"`
	PatientName     *string `json:"patientName,omitempty"`
	Diagnosis       *string `json:"diagnosis,omitempty"`
	ICD10Code       *string `json:"icd10Code,omitempty"`
	DischargeDate   *string `json:"dischargeDate,omitempty"`
	ProgressSummary *string `json:"progressSummary,omitempty"`
	ManagementPlan  *string `json:"managementPlan,omitempty"`
	DischargePlan   *string `json:"dischargePlan,omitempty"`
	Drugs           *string `json:"drugs,omitempty"`
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
