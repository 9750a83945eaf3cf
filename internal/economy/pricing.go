package economy

import (
	"math"

	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// priceMultiplier maps total stock to a price multiplier through a
// monotonically decreasing step curve: scarcity up to 8x base, glut down to
// half base.
func priceMultiplier(stock int) float64 {
	switch {
	case stock <= 0:
		return 10.0
	case stock <= 1:
		return 6.0
	case stock <= 3:
		return 4.0
	case stock <= 8:
		return 2.5
	case stock <= 15:
		return 1.5
	case stock <= 25:
		return 1.0
	case stock < 40:
		return 0.75
	default:
		return 0.5
	}
}

// runPricing recomputes market prices for every resource from current stock.
// Prices floor at 1 crown.
func runPricing(loc *world.Location) {
	if loc.Prices == nil {
		loc.Prices = make(map[string]int)
	}
	for _, id := range rules.ResourceIDs() {
		def, _ := rules.ResourceByID(id)
		mult := priceMultiplier(loc.CountResource(id))
		price := int(math.Round(float64(def.BaseValue) * mult))
		if price < 1 {
			price = 1
		}
		loc.Prices[id] = price
	}
}

// Price returns the current price of a resource at a settlement, falling
// back to base value before the first pricing pass.
func Price(loc *world.Location, resource string) int {
	if p, ok := loc.Prices[resource]; ok {
		return p
	}
	if def, ok := rules.ResourceByID(resource); ok {
		return def.BaseValue
	}
	return 1
}
