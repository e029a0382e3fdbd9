package advisor

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cropadvisory/models"
)

// Season labels.
const (
	Kharif = "kharif"
	Rabi   = "rabi"
	Zaid   = "zaid"
)

// Soils lists the soil types offered by the advisor form.
var Soils = []string{"sandy loam", "loam", "clay loam", "clay", "silty clay"}

// Seasons lists the cropping seasons offered by the advisor form.
var Seasons = []string{Kharif, Rabi, Zaid}

// DefaultConditions is the form state a fresh page starts with.
var DefaultConditions = models.FieldConditions{
	Soil:        "loam",
	PH:          6.8,
	Temperature: 26,
	Rainfall:    650,
	Season:      Kharif,
}

var crops = []models.CropProfile{
	{
		Name:        "Wheat",
		Soils:       []string{"loam", "clay loam"},
		PH:          models.Range{Min: 6.0, Max: 7.5},
		Temp:        models.Range{Min: 10, Max: 25},
		Rain:        models.Range{Min: 300, Max: 900},
		Seasons:     []string{Rabi},
		Description: "Cool-season cereal grain suitable for well-drained loams.",
	},
	{
		Name:        "Rice",
		Soils:       []string{"clay", "silty clay", "clay loam"},
		PH:          models.Range{Min: 5.5, Max: 7.0},
		Temp:        models.Range{Min: 20, Max: 35},
		Rain:        models.Range{Min: 1000, Max: 2000},
		Seasons:     []string{Kharif},
		Description: "Water-loving staple crop thriving in warm, wet conditions.",
	},
	{
		Name:        "Maize",
		Soils:       []string{"sandy loam", "loam"},
		PH:          models.Range{Min: 5.8, Max: 7.2},
		Temp:        models.Range{Min: 18, Max: 32},
		Rain:        models.Range{Min: 400, Max: 1000},
		Seasons:     []string{Kharif, Zaid},
		Description: "Versatile crop with moderate water needs and warm temps.",
	},
	{
		Name:        "Soybean",
		Soils:       []string{"sandy loam", "loam"},
		PH:          models.Range{Min: 6.0, Max: 7.5},
		Temp:        models.Range{Min: 20, Max: 30},
		Rain:        models.Range{Min: 500, Max: 900},
		Seasons:     []string{Kharif},
		Description: "Protein-rich legume that improves soil nitrogen.",
	},
	{
		Name:        "Chickpea",
		Soils:       []string{"loam", "sandy loam"},
		PH:          models.Range{Min: 6.0, Max: 8.0},
		Temp:        models.Range{Min: 10, Max: 25},
		Rain:        models.Range{Min: 300, Max: 700},
		Seasons:     []string{Rabi},
		Description: "Drought-tolerant pulse suited for cooler seasons.",
	},
	{
		Name:        "Mustard",
		Soils:       []string{"loam", "sandy loam"},
		PH:          models.Range{Min: 6.0, Max: 7.5},
		Temp:        models.Range{Min: 10, Max: 25},
		Rain:        models.Range{Min: 300, Max: 450},
		Seasons:     []string{Rabi},
		Description: "Oilseed crop tolerant to low temperatures.",
	},
	{
		Name:        "Watermelon",
		Soils:       []string{"sandy loam"},
		PH:          models.Range{Min: 6.0, Max: 7.5},
		Temp:        models.Range{Min: 22, Max: 35},
		Rain:        models.Range{Min: 400, Max: 600},
		Seasons:     []string{Zaid},
		Description: "Short-duration fruit requiring warm weather and irrigation.",
	},
}

// Crops returns a copy of the built-in crop dataset in its canonical order.
func Crops() []models.CropProfile {
	out := make([]models.CropProfile, len(crops))
	for i, c := range crops {
		out[i] = cloneProfile(c)
	}
	return out
}

func cloneProfile(c models.CropProfile) models.CropProfile {
	c.Soils = slices.Clone(c.Soils)
	c.Seasons = slices.Clone(c.Seasons)
	return c
}

// FindCrop looks a crop up by name, ignoring case.
func FindCrop(name string) (models.CropProfile, bool) {
	name = strings.TrimSpace(name)
	for _, c := range crops {
		if strings.EqualFold(c.Name, name) {
			return cloneProfile(c), true
		}
	}
	return models.CropProfile{}, false
}

// ValidateProfiles checks that every profile has a unique name, non-empty
// label sets and well-ordered ranges.
func ValidateProfiles(profiles []models.CropProfile) error {
	var errs []error
	seen := make(map[string]bool, len(profiles))
	for i, p := range profiles {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("profile %d: empty name", i))
		} else if seen[strings.ToLower(p.Name)] {
			errs = append(errs, fmt.Errorf("profile %q: duplicate name", p.Name))
		}
		seen[strings.ToLower(p.Name)] = true

		if len(p.Soils) == 0 {
			errs = append(errs, fmt.Errorf("profile %q: no soils", p.Name))
		}
		if len(p.Seasons) == 0 {
			errs = append(errs, fmt.Errorf("profile %q: no seasons", p.Name))
		}
		for _, s := range p.Seasons {
			if !contains(Seasons, s) {
				errs = append(errs, fmt.Errorf("profile %q: unknown season %q", p.Name, s))
			}
		}
		for field, r := range map[string]models.Range{"pH": p.PH, "temp": p.Temp, "rain": p.Rain} {
			if !(r.Min <= r.Max) {
				errs = append(errs, fmt.Errorf("profile %q: %s range [%v, %v] is inverted", p.Name, field, r.Min, r.Max))
			}
		}
	}
	return errors.Join(errs...)
}

var insights = []models.SeasonalInsight{
	{
		Season: Kharif,
		Title:  "Kharif outlook",
		Text:   "Warm temps with moderate rain favor maize, rice, and soybean in most regions.",
	},
	{
		Season: Rabi,
		Title:  "Rabi outlook",
		Text:   "Cooler nights and steady moisture support wheat, mustard, and chickpea growth.",
	},
	{
		Season: Zaid,
		Title:  "Zaid outlook",
		Text:   "Short-season crops like watermelon and cucumber thrive with smart irrigation.",
	},
}

// SeasonalInsights returns the static outlook for each season.
func SeasonalInsights() []models.SeasonalInsight {
	out := make([]models.SeasonalInsight, len(insights))
	copy(out, insights)
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
