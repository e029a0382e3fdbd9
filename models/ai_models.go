package models

// AgronomistQuestion is a free-form question for the AI agronomist.
type AgronomistQuestion struct {
	Prompt string `json:"prompt"`
}

// AdvisorExplanation is the narrative generated for a recommendation run.
type AdvisorExplanation struct {
	Conditions      FieldConditions  `json:"conditions"`
	Recommendations []Recommendation `json:"recommendations"`
	Narrative       string           `json:"narrative"`
}
