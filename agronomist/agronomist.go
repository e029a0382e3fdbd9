// Package agronomist turns advisor output into plain-language advice using
// the Gemini API.
package agronomist

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"cropadvisory/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("agronomist returned no text")

const systemInstruction = "You are an agronomist advising smallholder farmers in India. " +
	"Answer briefly and practically. Use the kharif/rabi/zaid season names. " +
	"Do not invent crop data that was not given to you."

// Narrator explains recommendations and answers farming questions.
type Narrator interface {
	Explain(ctx context.Context, fc models.FieldConditions, recs []models.Recommendation) (string, error)
	Ask(ctx context.Context, question string) (string, error)
}

// GeminiNarrator is the Narrator backed by a Gemini model.
type GeminiNarrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiNarrator(ctx context.Context, apiKey, modelName string) (*GeminiNarrator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.SetTemperature(0.4)

	return &GeminiNarrator{client: client, model: model}, nil
}

func (g *GeminiNarrator) Explain(ctx context.Context, fc models.FieldConditions, recs []models.Recommendation) (string, error) {
	return g.generate(ctx, ExplainPrompt(fc, recs))
}

func (g *GeminiNarrator) Ask(ctx context.Context, question string) (string, error) {
	return g.generate(ctx, question)
}

func (g *GeminiNarrator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	text := ResponseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *GeminiNarrator) Close() error {
	return g.client.Close()
}

// ExplainPrompt describes the field and the ranked crops for the model.
func ExplainPrompt(fc models.FieldConditions, recs []models.Recommendation) string {
	var b strings.Builder
	b.WriteString("A farmer entered these field conditions:\n")
	fmt.Fprintf(&b, "- soil: %s\n", orUnknown(fc.Soil))
	fmt.Fprintf(&b, "- pH: %s\n", number(fc.PH, ""))
	fmt.Fprintf(&b, "- temperature: %s\n", number(fc.Temperature, " °C"))
	fmt.Fprintf(&b, "- rainfall: %s\n", number(fc.Rainfall, " mm"))
	fmt.Fprintf(&b, "- season: %s\n", orUnknown(fc.Season))

	b.WriteString("\nA rule-based advisor ranked these crops (confidence out of 100):\n")
	for i, r := range recs {
		c := r.Crop
		fmt.Fprintf(&b, "%d. %s: %d%% (soils %s; pH %g-%g; temp %g-%g °C; rain %g-%g mm; seasons %s)\n",
			i+1, c.Name, r.Confidence,
			strings.Join(c.Soils, ", "), c.PH.Min, c.PH.Max, c.Temp.Min, c.Temp.Max,
			c.Rain.Min, c.Rain.Max, strings.Join(c.Seasons, "/"))
	}
	b.WriteString("\nExplain in under 150 words why the top crop fits, what limits the others, " +
		"and one practical step to improve the field for the season.")
	return b.String()
}

// ResponseText concatenates the text parts of the first candidate.
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String())
}

func number(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "not provided"
	}
	return fmt.Sprintf("%g%s", v, unit)
}

func orUnknown(s string) string {
	if s == "" {
		return "not provided"
	}
	return s
}
