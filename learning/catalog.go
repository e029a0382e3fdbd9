package learning

import (
	"errors"
	"slices"

	"cropadvisory/models"
)

var (
	ErrModuleNotFound = errors.New("learning module not found")
	ErrInvalidOption  = errors.New("answer is not one of the quiz options")
)

var modules = []models.LearningModule{
	{
		ID:      "soil-health-basics",
		Title:   "Soil Health Basics",
		Summary: "Understand organic matter, structure, and nutrients.",
		Tips: []string{
			"Add compost to boost organic matter and microbial life.",
			"Avoid excessive tillage to preserve soil structure.",
			"Test soil annually for pH and macro/micronutrients.",
		},
		Quiz: models.Quiz{
			Question: "Which practice best improves soil organic matter?",
			Options:  []string{"Deep plowing", "Adding compost", "Over-irrigation"},
			Correct:  "Adding compost",
		},
	},
	{
		ID:      "crop-rotation",
		Title:   "Crop Rotation",
		Summary: "Alternate crop families to break pest cycles and balance nutrients.",
		Tips: []string{
			"Rotate legumes with cereals to fix nitrogen naturally.",
			"Avoid planting the same family on the same plot consecutively.",
			"Use short-season cover crops between main seasons.",
		},
		Quiz: models.Quiz{
			Question: "Why include legumes in rotation?",
			Options:  []string{"They need more fertilizer", "They fix nitrogen", "They love shade"},
			Correct:  "They fix nitrogen",
		},
	},
	{
		ID:      "smart-irrigation",
		Title:   "Smart Irrigation",
		Summary: "Match water to crop needs using soil moisture and weather.",
		Tips: []string{
			"Irrigate early morning or late evening to reduce evaporation.",
			"Use drip or sprinkler to save water and target roots.",
			"Mulch to maintain moisture and suppress weeds.",
		},
		Quiz: models.Quiz{
			Question: "Best time to irrigate for minimal evaporation?",
			Options:  []string{"Noon", "Early morning", "Afternoon"},
			Correct:  "Early morning",
		},
	},
}

// Modules returns the learning catalogue in display order.
func Modules() []models.LearningModule {
	out := make([]models.LearningModule, len(modules))
	for i, m := range modules {
		out[i] = cloneModule(m)
	}
	return out
}

func cloneModule(m models.LearningModule) models.LearningModule {
	m.Tips = slices.Clone(m.Tips)
	m.Quiz.Options = slices.Clone(m.Quiz.Options)
	return m
}

// Module looks a module up by id.
func Module(id string) (models.LearningModule, error) {
	for _, m := range modules {
		if m.ID == id {
			return cloneModule(m), nil
		}
	}
	return models.LearningModule{}, ErrModuleNotFound
}

// Check grades answer against the module's quiz.
func Check(moduleID, answer string) (models.QuizResult, error) {
	m, err := Module(moduleID)
	if err != nil {
		return models.QuizResult{}, err
	}
	if !isOption(m.Quiz, answer) {
		return models.QuizResult{}, ErrInvalidOption
	}

	c := NewCard(m)
	c.Select(answer)
	c.Submit()

	res := models.QuizResult{
		ModuleID: m.ID,
		Answer:   answer,
		Correct:  c.Correct(),
		Feedback: c.Feedback(),
	}
	if !res.Correct {
		res.Expected = m.Quiz.Correct
	}
	return res, nil
}

func isOption(q models.Quiz, answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}
