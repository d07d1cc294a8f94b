package predict

import (
	"math"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// Zone - район города с базовыми весами риска по типам происшествий.
// Каталог статичен: центры и веса откалиброваны по историческим данным
// жалоб Вадодары и не меняются в рантайме.
type Zone struct {
	Name      string
	Latitude  float64
	Longitude float64
	Weights   map[models.EventType]float64
}

// AreaResolver возвращает функцию, сопоставляющую координаты с именем
// ближайшего района каталога
func AreaResolver(zones []Zone) func(lat, lon float64) string {
	return func(lat, lon float64) string {
		best := ""
		bestDist := math.MaxFloat64
		for _, z := range zones {
			d := math.Hypot(z.Latitude-lat, z.Longitude-lon)
			if d < bestDist {
				bestDist = d
				best = z.Name
			}
		}
		return best
	}
}

// Vadodara возвращает каталог районов Вадодары
func Vadodara() []Zone {
	return []Zone{
		{
			Name: "Alkapuri", Latitude: 22.31, Longitude: 73.18,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.45,
				models.EventGarbage: 0.25,
				models.EventWater:   0.20,
				models.EventLight:   0.25,
			},
		},
		{
			Name: "Sayajigunj", Latitude: 22.31, Longitude: 73.19,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.42,
				models.EventGarbage: 0.30,
				models.EventWater:   0.22,
				models.EventLight:   0.28,
			},
		},
		{
			Name: "Fatehgunj", Latitude: 22.32, Longitude: 73.19,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.38,
				models.EventGarbage: 0.32,
				models.EventWater:   0.25,
				models.EventLight:   0.30,
			},
		},
		{
			Name: "Gotri", Latitude: 22.32, Longitude: 73.14,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.44,
				models.EventGarbage: 0.28,
				models.EventWater:   0.30,
				models.EventLight:   0.26,
			},
		},
		{
			Name: "Manjalpur", Latitude: 22.27, Longitude: 73.19,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.30,
				models.EventGarbage: 0.35,
				models.EventWater:   0.35,
				models.EventLight:   0.32,
			},
		},
		{
			Name: "Karelibaug", Latitude: 22.31, Longitude: 73.21,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.35,
				models.EventGarbage: 0.33,
				models.EventWater:   0.28,
				models.EventLight:   0.30,
			},
		},
		{
			Name: "Gorwa", Latitude: 22.33, Longitude: 73.16,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.28,
				models.EventGarbage: 0.30,
				models.EventWater:   0.32,
				models.EventLight:   0.34,
			},
		},
		{
			Name: "Makarpura", Latitude: 22.25, Longitude: 73.19,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.36,
				models.EventGarbage: 0.38,
				models.EventWater:   0.30,
				models.EventLight:   0.28,
			},
		},
		{
			Name: "Waghodia", Latitude: 22.29, Longitude: 73.23,
			Weights: map[models.EventType]float64{
				models.EventTraffic: 0.26,
				models.EventGarbage: 0.28,
				models.EventWater:   0.38,
				models.EventLight:   0.36,
			},
		},
	}
}
