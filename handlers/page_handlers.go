package handlers

import (
	"bytes"
	"log"
	"net/url"

	"cropadvisory/advisor"
	"cropadvisory/learning"
	"cropadvisory/web"

	"github.com/gofiber/fiber/v2"
)

// HandleDashboardPage renders the dashboard, advisor and learning center.
// Page state lives in the query string: the advisor form fields, every "open"
// value expands a card, and quiz=<id>&answer=<option> submits that card's quiz.
// Each form carries the other component's state along.
// GET /
func (h *Handler) HandleDashboardPage(c *fiber.Ctx) error {
	data := web.PageData{
		Snapshot:   h.Telemetry.Snapshot(),
		Insights:   advisor.SeasonalInsights(),
		Soils:      advisor.Soils,
		Seasons:    advisor.Seasons,
		PollMillis: h.Telemetry.Interval().Milliseconds(),
	}

	d := advisor.DefaultConditions
	data.Form = advisor.RawConditions{
		Soil:   queryOr(c, "soil", d.Soil),
		PH:     queryOr(c, "ph", formatNumber(d.PH)),
		Temp:   queryOr(c, "temp", formatNumber(d.Temperature)),
		Rain:   queryOr(c, "rain", formatNumber(d.Rainfall)),
		Season: queryOr(c, "season", d.Season),
	}
	data.Recommendations = advisor.Recommend(advisor.CoerceConditions(data.Form), advisor.Crops())
	data.AdvisorParams = advisorParams(c)

	quizID, answer := c.Query("quiz"), c.Query("answer")
	var quizParams []web.Param
	if quizID != "" {
		quizParams = []web.Param{{Name: "quiz", Value: quizID}, {Name: "answer", Value: answer}}
	}

	keep := append(append([]web.Param{}, data.AdvisorParams...), quizParams...)
	data.Cards = learningCards(openModules(c), quizID, answer, keep)
	for _, card := range data.Cards {
		if card.Open {
			data.LearningParams = append(data.LearningParams, web.Param{Name: "open", Value: card.Module.ID})
		}
	}
	data.LearningParams = append(data.LearningParams, quizParams...)

	var buf bytes.Buffer
	if err := h.Page.Render(&buf, data); err != nil {
		log.Printf("[page] render failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

var advisorFields = []string{"soil", "ph", "temp", "rain", "season"}

// advisorParams returns the advisor fields present in the query, in form order.
func advisorParams(c *fiber.Ctx) []web.Param {
	var params []web.Param
	for _, key := range advisorFields {
		if c.Context().QueryArgs().Has(key) {
			params = append(params, web.Param{Name: key, Value: c.Query(key)})
		}
	}
	return params
}

func openModules(c *fiber.Ctx) map[string]bool {
	open := make(map[string]bool)
	for _, v := range c.Context().QueryArgs().PeekMulti("open") {
		open[string(v)] = true
	}
	return open
}

// learningCards builds the card views. A submitted quiz always opens its card.
func learningCards(open map[string]bool, quizID, answer string, keep []web.Param) []web.CardView {
	mods := learning.Modules()
	if quizID != "" {
		open[quizID] = true
	}

	var openIDs []string
	for _, m := range mods {
		if open[m.ID] {
			openIDs = append(openIDs, m.ID)
		}
	}

	cards := make([]web.CardView, 0, len(mods))
	for _, m := range mods {
		card := learning.NewCard(m)
		card.Open = open[m.ID]
		if m.ID == quizID && answer != "" {
			card.Select(answer)
			card.Submit()
		}
		cards = append(cards, web.CardView{
			Card:       card,
			ToggleHref: toggleHref(openIDs, m.ID, keep),
			OpenIDs:    openIDs,
		})
	}
	return cards
}

func toggleHref(openIDs []string, id string, keep []web.Param) string {
	q := url.Values{}
	for _, p := range keep {
		q.Add(p.Name, p.Value)
	}
	toggled := false
	for _, o := range openIDs {
		if o == id {
			toggled = true
			continue
		}
		q.Add("open", o)
	}
	if !toggled {
		q.Add("open", id)
	}
	if len(q) == 0 {
		return "/#learning"
	}
	return "/?" + q.Encode() + "#" + id
}
