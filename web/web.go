// Package web renders the dashboard page.
package web

import (
	"embed"
	"html/template"
	"io"
	"math"
	"strconv"
	"strings"

	"cropadvisory/advisor"
	"cropadvisory/learning"
	"cropadvisory/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// CardView is a learning card plus the link that toggles it.
type CardView struct {
	*learning.Card
	ToggleHref string
	OpenIDs    []string
}

// Param is a query parameter carried through a link or form.
type Param struct {
	Name  string
	Value string
}

// PageData is everything the dashboard template needs.
type PageData struct {
	Title           string
	Snapshot        models.TelemetrySnapshot
	Insights        []models.SeasonalInsight
	Form            advisor.RawConditions
	Soils           []string
	Seasons         []string
	AdvisorParams   []Param
	Recommendations []models.Recommendation
	Cards           []CardView
	LearningParams  []Param
	PollMillis      int64
}

var funcs = template.FuncMap{
	"num": func(v float64) string {
		if math.IsNaN(v) {
			return "-"
		}
		return strconv.FormatFloat(v, 'f', 1, 64)
	},
	"join": strings.Join,
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the dashboard page to w.
func (r *Renderer) Render(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Smart Crop & Soil Advisory"
	}
	return r.tmpl.ExecuteTemplate(w, "index.html", data)
}
