package learning

import "cropadvisory/models"

// Card is the interactive state of one module: whether it is expanded,
// the selected answer, and whether that answer has been submitted.
type Card struct {
	Module    models.LearningModule
	Open      bool
	Answer    string
	Submitted bool
}

func NewCard(m models.LearningModule) *Card {
	return &Card{Module: m}
}

// Toggle expands or collapses the card.
func (c *Card) Toggle() {
	c.Open = !c.Open
}

// Select picks an answer. Changing the answer withdraws any earlier submission.
func (c *Card) Select(option string) {
	c.Answer = option
	c.Submitted = false
}

func (c *Card) Submit() {
	c.Submitted = true
}

func (c *Card) Correct() bool {
	return c.Submitted && c.Answer == c.Module.Quiz.Correct
}

// Feedback is the message shown under the quiz once submitted.
func (c *Card) Feedback() string {
	switch {
	case !c.Submitted:
		return ""
	case c.Correct():
		return "Correct!"
	default:
		return "Try again. Answer: " + c.Module.Quiz.Correct
	}
}

// ToggleLabel is the text of the expand button.
func (c *Card) ToggleLabel() string {
	if c.Open {
		return "Hide"
	}
	return "Explore"
}
