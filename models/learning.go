package models

// Quiz is a single-answer question attached to a learning module.
type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"-"`
}

// LearningModule is one expandable educational card.
type LearningModule struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
	Quiz    Quiz     `json:"quiz"`
}

type QuizAnswerRequest struct {
	Answer string `json:"answer"`
}

// QuizResult is returned after an answer is checked.
type QuizResult struct {
	ModuleID string `json:"module_id"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
	Expected string `json:"expected,omitempty"`
	Feedback string `json:"feedback"`
	Recorded bool   `json:"recorded"`
}
