package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"cropadvisory/advisor"
	"cropadvisory/models"

	"github.com/gofiber/fiber/v2"
)

// conditionsBody accepts numeric fields as JSON numbers or strings.
type conditionsBody struct {
	Soil   string          `json:"soil"`
	PH     json.RawMessage `json:"ph"`
	Temp   json.RawMessage `json:"temp"`
	Rain   json.RawMessage `json:"rain"`
	Season string          `json:"season"`
}

func (b conditionsBody) raw() advisor.RawConditions {
	return advisor.RawConditions{
		Soil:   b.Soil,
		PH:     rawNumber(b.PH),
		Temp:   rawNumber(b.Temp),
		Rain:   rawNumber(b.Rain),
		Season: b.Season,
	}
}

func rawNumber(m json.RawMessage) string {
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	return string(m)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// conditionsFromQuery reads the advisor form from the query string. Absent
// fields take the form defaults.
func conditionsFromQuery(c *fiber.Ctx) models.FieldConditions {
	d := advisor.DefaultConditions
	return advisor.CoerceConditions(advisor.RawConditions{
		Soil:   queryOr(c, "soil", d.Soil),
		PH:     queryOr(c, "ph", formatNumber(d.PH)),
		Temp:   queryOr(c, "temp", formatNumber(d.Temperature)),
		Rain:   queryOr(c, "rain", formatNumber(d.Rainfall)),
		Season: queryOr(c, "season", d.Season),
	})
}

func conditionsFromBody(c *fiber.Ctx) (models.FieldConditions, error) {
	var body conditionsBody
	if err := c.BodyParser(&body); err != nil {
		return models.FieldConditions{}, err
	}
	return advisor.CoerceConditions(body.raw()), nil
}

// HandleListCrops returns the crop dataset.
// GET /api/v1/crops
func (h *Handler) HandleListCrops(c *fiber.Ctx) error {
	return successJSON(c, advisor.Crops())
}

// HandleGetCrop returns one crop profile.
// GET /api/v1/crops/:name
func (h *Handler) HandleGetCrop(c *fiber.Ctx) error {
	crop, ok := advisor.FindCrop(c.Params("name"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "Crop not found")
	}
	return successJSON(c, crop)
}

// HandleAdvisorOptions returns the choices and defaults of the advisor form.
// GET /api/v1/advisor/options
func (h *Handler) HandleAdvisorOptions(c *fiber.Ctx) error {
	return successJSON(c, fiber.Map{
		"soils":    advisor.Soils,
		"seasons":  advisor.Seasons,
		"defaults": advisor.DefaultConditions,
		"limit":    advisor.DefaultLimit,
	})
}

// HandleRecommendQuery scores the crops for conditions given in the query string.
// GET /api/v1/advisor/recommendations
func (h *Handler) HandleRecommendQuery(c *fiber.Ctx) error {
	fc := conditionsFromQuery(c)
	return successJSON(c, fiber.Map{
		"conditions":      fc,
		"recommendations": advisor.Recommend(fc, advisor.Crops()),
	})
}

// HandleRecommendBody scores the crops for conditions given as JSON.
// POST /api/v1/advisor/recommendations
func (h *Handler) HandleRecommendBody(c *fiber.Ctx) error {
	fc, err := conditionsFromBody(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return successJSON(c, fiber.Map{
		"conditions":      fc,
		"recommendations": advisor.Recommend(fc, advisor.Crops()),
	})
}

// HandleExplain asks the agronomist to explain a recommendation run.
// POST /api/v1/advisor/explain
func (h *Handler) HandleExplain(c *fiber.Ctx) error {
	if h.Narrator == nil {
		return errorJSON(c, fiber.StatusServiceUnavailable, "Agronomist is not configured")
	}

	fc, err := conditionsFromBody(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	recs := advisor.Recommend(fc, advisor.Crops())

	ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
	defer cancel()

	narrative, err := h.Narrator.Explain(ctx, fc, recs)
	if err != nil {
		log.Printf("[advisor] explain failed: %v", err)
		return errorJSON(c, fiber.StatusBadGateway, "Failed to generate explanation")
	}

	return successJSON(c, models.AdvisorExplanation{
		Conditions:      fc,
		Recommendations: recs,
		Narrative:       narrative,
	})
}

// HandleInsights returns the seasonal outlooks.
// GET /api/v1/insights
func (h *Handler) HandleInsights(c *fiber.Ctx) error {
	return successJSON(c, advisor.SeasonalInsights())
}
