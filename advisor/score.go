package advisor

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"cropadvisory/models"
)

// DefaultLimit is the number of crops Recommend returns.
const DefaultLimit = 4

const (
	inRange     = 1.0
	nearRange   = 0.7
	outOfRange  = 0.3
	labelMatch  = 1.0
	labelMiss   = 0.6
	tolerancePc = 0.15
)

const (
	weightSoil   = 0.20
	weightPH     = 0.20
	weightTemp   = 0.25
	weightRain   = 0.20
	weightSeason = 0.15
)

// ScoreRange grades v against r: 1.0 inside, 0.7 within 15% of the range
// width outside either bound, 0.3 otherwise. NaN always grades 0.3.
func ScoreRange(r models.Range, v float64) float64 {
	if r.Contains(v) {
		return inRange
	}
	tol := r.Width() * tolerancePc
	if v >= r.Min-tol && v <= r.Max+tol {
		return nearRange
	}
	return outOfRange
}

func scoreLabel(set []string, v string) float64 {
	if contains(set, v) {
		return labelMatch
	}
	return labelMiss
}

// Breakdown computes the five sub-scores of c for fc.
func Breakdown(c models.CropProfile, fc models.FieldConditions) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		Soil:        scoreLabel(c.Soils, fc.Soil),
		PH:          ScoreRange(c.PH, fc.PH),
		Temperature: ScoreRange(c.Temp, fc.Temperature),
		Rainfall:    ScoreRange(c.Rain, fc.Rainfall),
		Season:      scoreLabel(c.Seasons, fc.Season),
	}
}

// Confidence turns a breakdown into a whole percentage.
func Confidence(b models.ScoreBreakdown) int {
	total := b.Soil*weightSoil + b.PH*weightPH + b.Temperature*weightTemp + b.Rainfall*weightRain + b.Season*weightSeason
	return int(math.Round(total * 100))
}

// ScoreCrop scores a single crop.
func ScoreCrop(c models.CropProfile, fc models.FieldConditions) models.Recommendation {
	b := Breakdown(c, fc)
	return models.Recommendation{Crop: c, Confidence: Confidence(b), Breakdown: b}
}

// Rank scores every profile and orders them by descending confidence.
// Equal confidences keep dataset order.
func Rank(fc models.FieldConditions, profiles []models.CropProfile) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(profiles))
	for _, p := range profiles {
		recs = append(recs, ScoreCrop(p, fc))
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	return recs
}

// Recommend returns the DefaultLimit best crops for fc.
func Recommend(fc models.FieldConditions, profiles []models.CropProfile) []models.Recommendation {
	recs := Rank(fc, profiles)
	if len(recs) > DefaultLimit {
		recs = recs[:DefaultLimit]
	}
	return recs
}

// RawConditions is the unparsed form input.
type RawConditions struct {
	Soil   string
	PH     string
	Temp   string
	Rain   string
	Season string
}

// CoerceConditions parses form input. Labels are trimmed and lower-cased;
// numbers that are empty or do not parse become NaN.
func CoerceConditions(raw RawConditions) models.FieldConditions {
	return models.FieldConditions{
		Soil:        NormalizeLabel(raw.Soil),
		PH:          ParseNumber(raw.PH),
		Temperature: ParseNumber(raw.Temp),
		Rainfall:    ParseNumber(raw.Rain),
		Season:      NormalizeLabel(raw.Season),
	}
}

// NormalizeLabel trims and lower-cases a soil or season label.
func NormalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseNumber parses s as a float, returning NaN when it cannot.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
