package advisor

import (
	"math"
	"math/rand"
	"testing"

	"cropadvisory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Crop.Name
	}
	return out
}

func indexOf(recs []models.Recommendation, name string) int {
	for i, r := range recs {
		if r.Crop.Name == name {
			return i
		}
	}
	return -1
}

func TestRecommendSampleInput(t *testing.T) {
	recs := Recommend(DefaultConditions, Crops())

	require.Len(t, recs, DefaultLimit)
	assert.Equal(t, []string{"Maize", "Soybean"}, names(recs)[:2])
	assert.Equal(t, 100, recs[0].Confidence)
	assert.Equal(t, 100, recs[1].Confidence)
	assert.NotContains(t, names(recs), "Watermelon")

	all := Rank(DefaultConditions, Crops())
	require.Len(t, all, len(Crops()))
	water := indexOf(all, "Watermelon")
	assert.Greater(t, water, indexOf(all, "Maize"))
	assert.Greater(t, water, indexOf(all, "Soybean"))
	assert.Equal(t, 72, all[water].Confidence)
}

func TestScoreRangeTiers(t *testing.T) {
	r := models.Range{Min: 400, Max: 600} // tolerance 30

	cases := []struct {
		v    float64
		want float64
	}{
		{400, 1.0},
		{600, 1.0},
		{500, 1.0},
		{370, 0.7},
		{630, 0.7},
		{369.9, 0.3},
		{650, 0.3},
		{math.NaN(), 0.3},
		{math.Inf(1), 0.3},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ScoreRange(r, c.v), "value %v", c.v)
	}
}

func TestScoreRangeDegenerate(t *testing.T) {
	r := models.Range{Min: 7, Max: 7}
	assert.Equal(t, 1.0, ScoreRange(r, 7))
	assert.Equal(t, 0.3, ScoreRange(r, 7.01))
}

func TestExactBoundsScoreFull(t *testing.T) {
	for _, c := range Crops() {
		for _, v := range []float64{c.PH.Min, c.PH.Max} {
			fc := models.FieldConditions{PH: v}
			assert.Equal(t, 1.0, Breakdown(c, fc).PH, "%s pH %v", c.Name, v)
		}
		for _, v := range []float64{c.Temp.Min, c.Temp.Max} {
			fc := models.FieldConditions{Temperature: v}
			assert.Equal(t, 1.0, Breakdown(c, fc).Temperature, "%s temp %v", c.Name, v)
		}
		for _, v := range []float64{c.Rain.Min, c.Rain.Max} {
			fc := models.FieldConditions{Rainfall: v}
			assert.Equal(t, 1.0, Breakdown(c, fc).Rainfall, "%s rain %v", c.Name, v)
		}
	}
}

func TestPerfectMatchIsHundred(t *testing.T) {
	c, ok := FindCrop("rice")
	require.True(t, ok)

	fc := models.FieldConditions{Soil: "clay", PH: 6.5, Temperature: 30, Rainfall: 1500, Season: Kharif}
	rec := ScoreCrop(c, fc)
	assert.Equal(t, 100, rec.Confidence)
	assert.Equal(t, models.ScoreBreakdown{Soil: 1, PH: 1, Temperature: 1, Rainfall: 1, Season: 1}, rec.Breakdown)
}

func TestUnparsableInputDegrades(t *testing.T) {
	c, _ := FindCrop("Wheat")
	fc := CoerceConditions(RawConditions{Soil: "gravel", PH: "", Temp: "20", Rain: "abc", Season: "monsoon"})

	// 0.6*0.2 + 0.3*0.2 + 1.0*0.25 + 0.3*0.2 + 0.6*0.15 = 0.58
	assert.Equal(t, 58, ScoreCrop(c, fc).Confidence)
}

func TestRecommendPropertiesRandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		fc := models.FieldConditions{
			Soil:        Soils[rng.Intn(len(Soils))],
			PH:          rng.Float64() * 14,
			Temperature: rng.Float64()*60 - 10,
			Rainfall:    rng.Float64() * 3000,
			Season:      Seasons[rng.Intn(len(Seasons))],
		}
		if i%10 == 0 {
			fc.PH = math.NaN()
		}

		recs := Recommend(fc, Crops())
		require.LessOrEqual(t, len(recs), DefaultLimit)
		for j, r := range recs {
			assert.GreaterOrEqual(t, r.Confidence, 0)
			assert.LessOrEqual(t, r.Confidence, 100)
			if j > 0 {
				assert.GreaterOrEqual(t, recs[j-1].Confidence, r.Confidence)
			}
		}
	}
}

func TestRankTiesKeepDatasetOrder(t *testing.T) {
	// Nothing matches: every crop scores the same floor.
	fc := CoerceConditions(RawConditions{})
	all := Rank(fc, Crops())

	assert.Equal(t, []string{"Wheat", "Rice", "Maize", "Soybean", "Chickpea", "Mustard", "Watermelon"}, names(all))
}

func TestRecommendFewerProfilesThanLimit(t *testing.T) {
	c, _ := FindCrop("Mustard")
	recs := Recommend(DefaultConditions, []models.CropProfile{c})
	assert.Len(t, recs, 1)
	assert.Empty(t, Recommend(DefaultConditions, nil))
}

func TestCoerceConditions(t *testing.T) {
	fc := CoerceConditions(RawConditions{Soil: "  Sandy Loam ", PH: "6.5", Temp: " 28 ", Rain: "x", Season: "ZAID"})

	assert.Equal(t, "sandy loam", fc.Soil)
	assert.Equal(t, 6.5, fc.PH)
	assert.Equal(t, 28.0, fc.Temperature)
	assert.True(t, math.IsNaN(fc.Rainfall))
	assert.Equal(t, Zaid, fc.Season)
}
