package models

// ModuleStat aggregates quiz attempts for one learning module.
type ModuleStat struct {
	ModuleID      string  `json:"module_id"`
	Attempts      int     `json:"attempts"`
	CorrectCount  int     `json:"correct_count"`
	Learners      int     `json:"learners"`
	CorrectRatePc float64 `json:"correct_rate_pct"`
}

// ProgressSummary is a learner's view of their own quiz history.
type ProgressSummary struct {
	Attempts        int      `json:"attempts"`
	CorrectAttempts int      `json:"correct_attempts"`
	ModulesPassed   []string `json:"modules_passed"`
	ModulesTotal    int      `json:"modules_total"`
}
