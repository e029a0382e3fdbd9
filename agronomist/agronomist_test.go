package agronomist

import (
	"math"
	"testing"

	"cropadvisory/advisor"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestExplainPrompt(t *testing.T) {
	fc := advisor.DefaultConditions
	fc.Rainfall = math.NaN()
	recs := advisor.Recommend(fc, advisor.Crops())

	p := ExplainPrompt(fc, recs)

	assert.Contains(t, p, "- soil: loam")
	assert.Contains(t, p, "- pH: 6.8")
	assert.Contains(t, p, "- temperature: 26 °C")
	assert.Contains(t, p, "- rainfall: not provided")
	assert.Contains(t, p, "1. "+recs[0].Crop.Name)
	assert.Contains(t, p, "seasons kharif/zaid")
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", ResponseText(nil))
	assert.Equal(t, "", ResponseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Maize fits "), genai.Text("well. ")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	assert.Equal(t, "Maize fits well.", ResponseText(resp))
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "not provided", number(math.Inf(-1), " mm"))
	assert.Equal(t, "650 mm", number(650, " mm"))
	assert.Equal(t, "not provided", orUnknown(""))
}

var _ Narrator = (*GeminiNarrator)(nil)
