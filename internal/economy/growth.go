package economy

import (
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// runGrowth accumulates growth points from surplus and wellbeing, and drifts
// prosperity toward its target. Growth points never go negative.
func runGrowth(w *world.World, loc *world.Location) {
	population := len(loc.ResidentIDs)
	foodStock := foodStock(loc)

	delta := 0.0
	if foodStock > population*2 {
		delta += 2
	}
	if loc.Prosperity > 60 {
		delta += 1
	}
	if activeRouteCount(w, loc) > 0 {
		delta += 1
	}
	if loc.Happiness > 70 {
		delta += 1
	}
	if foodStock < population/2 {
		delta -= 2
	}
	if loc.Safety < 30 {
		delta -= 1
	}
	if loc.Happiness < 30 {
		delta -= 1
	}

	loc.GrowthPoints += delta
	if loc.GrowthPoints < 0 {
		loc.GrowthPoints = 0
	}

	// Prosperity drifts a half point per turn toward a target set by food,
	// safety, and happiness thresholds.
	target := 20.0
	if foodStock > population {
		target += 20
	}
	if loc.Safety > 50 {
		target += 20
	}
	if loc.Happiness > 50 {
		target += 20
	}
	if loc.Prosperity < target {
		loc.Prosperity = world.Clamp(loc.Prosperity+0.5, 0, 100)
	} else if loc.Prosperity > target {
		loc.Prosperity = world.Clamp(loc.Prosperity-0.5, 0, 100)
	}
}

func foodStock(loc *world.Location) int {
	total := 0
	for _, id := range rules.FoodIDs() {
		total += loc.CountResource(id)
	}
	return total
}

func activeRouteCount(w *world.World, loc *world.Location) int {
	count := 0
	for _, id := range loc.RouteIDs {
		if r, ok := w.Routes[id]; ok && r.Active {
			count++
		}
	}
	return count
}
