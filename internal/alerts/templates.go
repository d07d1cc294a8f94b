package alerts

import (
	"fmt"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// Детерминированные шаблоны на случай недоступности генеративного бэкенда.
// Никогда не пустые и всегда содержат хотя бы одну рекомендацию.

type template struct {
	title           string
	message         string
	recommendations []string
}

var fallbackTemplates = map[models.EventType]template{
	models.EventTraffic: {
		title:   "Heavy traffic expected in %s",
		message: "Congestion risk in %s is at %.0f%%. Expect delays on main roads.",
		recommendations: []string{
			"Use alternate routes where possible",
			"Allow extra travel time",
		},
	},
	models.EventWater: {
		title:   "Waterlogging risk in %s",
		message: "Waterlogging risk in %s is at %.0f%%. Low-lying streets may flood.",
		recommendations: []string{
			"Avoid underpasses and low-lying roads",
			"Do not drive through standing water",
		},
	},
	models.EventGarbage: {
		title:   "Garbage accumulation in %s",
		message: "Uncollected waste reported around %s (risk %.0f%%).",
		recommendations: []string{
			"Report overflowing bins through the app",
			"Avoid dumping waste outside collection points",
		},
	},
	models.EventLight: {
		title:   "Street lighting outage in %s",
		message: "Street light failures reported around %s (risk %.0f%%).",
		recommendations: []string{
			"Take well-lit routes after dark",
		},
	},
	models.EventRoad: {
		title:   "Road damage in %s",
		message: "Road surface damage reported around %s (risk %.0f%%).",
		recommendations: []string{
			"Slow down near damaged stretches",
		},
	},
	models.EventEncroachment: {
		title:   "Encroachment reported in %s",
		message: "Footpath or road encroachment reported around %s (risk %.0f%%).",
		recommendations: []string{
			"Keep to marked pedestrian paths",
		},
	},
	models.EventAnimals: {
		title:   "Stray animals reported in %s",
		message: "Stray animal activity reported around %s (risk %.0f%%).",
		recommendations: []string{
			"Keep distance and report aggressive animals",
		},
	},
}

// fallbackNarration строит текст оповещения по шаблону для типа происшествия
func fallbackNarration(input NarrationInput) *Narration {
	tpl, ok := fallbackTemplates[input.EventType]
	if !ok {
		return &Narration{
			Title:           fmt.Sprintf("Civic issue alert in %s", input.AreaName),
			Message:         fmt.Sprintf("Elevated %s risk in %s (%.0f%%).", input.EventType, input.AreaName, input.Probability*100),
			Recommendations: []string{"Stay alert and follow municipal advisories"},
		}
	}
	return &Narration{
		Title:           fmt.Sprintf(tpl.title, input.AreaName),
		Message:         fmt.Sprintf(tpl.message, input.AreaName, input.Probability*100),
		Recommendations: tpl.recommendations,
	}
}
