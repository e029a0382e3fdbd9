package models

import (
	"encoding/json"
	"math"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max]. NaN is never contained.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// CropProfile describes the growing conditions a crop accepts.
type CropProfile struct {
	Name        string   `json:"name"`
	Soils       []string `json:"soils"`
	PH          Range    `json:"ph"`
	Temp        Range    `json:"temp"`
	Rain        Range    `json:"rain"`
	Seasons     []string `json:"seasons"`
	Description string   `json:"desc"`
}

// FieldConditions are the user-entered conditions of a field.
// Numeric fields hold NaN when the input could not be parsed.
type FieldConditions struct {
	Soil        string  `json:"soil"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temp"`
	Rainfall    float64 `json:"rain"`
	Season      string  `json:"season"`
}

// MarshalJSON writes NaN readings as null.
func (fc FieldConditions) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Soil        string   `json:"soil"`
		PH          *float64 `json:"ph"`
		Temperature *float64 `json:"temp"`
		Rainfall    *float64 `json:"rain"`
		Season      string   `json:"season"`
	}{
		Soil:        fc.Soil,
		PH:          finite(fc.PH),
		Temperature: finite(fc.Temperature),
		Rainfall:    finite(fc.Rainfall),
		Season:      fc.Season,
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ScoreBreakdown holds the five sub-scores that make up a confidence value.
type ScoreBreakdown struct {
	Soil        float64 `json:"soil"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temp"`
	Rainfall    float64 `json:"rain"`
	Season      float64 `json:"season"`
}

// Recommendation pairs a crop with its confidence for a set of field conditions.
type Recommendation struct {
	Crop       CropProfile    `json:"crop"`
	Confidence int            `json:"confidence"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
}

// SeasonalInsight is a short outlook for one cropping season.
type SeasonalInsight struct {
	Season string `json:"season"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}
