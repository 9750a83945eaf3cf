// Package economy runs the per-settlement economic turn: production,
// consumption, spoilage, deposit replenishment, pricing, and growth, in that
// order. The step order inside a settlement is part of the observable
// contract: consumption sees this turn's production.
package economy

import (
	"math"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// Tick advances the economy of every non-destroyed settlement.
func Tick(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed {
			continue
		}
		TickLocation(w, loc, stream)
	}
}

// TickLocation advances one settlement's economy by one turn.
func TickLocation(w *world.World, loc *world.Location, stream *rng.Stream) {
	runProduction(w, loc, stream)
	runConsumption(w, loc)
	runSpoilage(loc)
	runReplenishment(w, loc)
	runPricing(loc)
	runGrowth(w, loc)
}

// runSpoilage ages every stack and shrinks perishables.
func runSpoilage(loc *world.Location) {
	for _, s := range loc.Storage {
		s.Age++
		def, ok := rules.ResourceByID(s.Resource)
		if !ok || def.SpoilRate <= 0 {
			continue
		}
		lost := int(math.Ceil(float64(s.Quantity) * def.SpoilRate))
		s.Quantity -= lost
	}
	// Drop emptied stacks in a second pass.
	kept := loc.Storage[:0]
	for _, s := range loc.Storage {
		if s.Quantity > 0 {
			kept = append(kept, s)
		}
	}
	loc.Storage = kept
}

// replenishRadius bounds which deposits a settlement's workers reach.
const replenishRadius = 3

// runReplenishment regrows natural deposits near the settlement toward cap.
func runReplenishment(w *world.World, loc *world.Location) {
	for dy := -replenishRadius; dy <= replenishRadius; dy++ {
		for dx := -replenishRadius; dx <= replenishRadius; dx++ {
			tile := w.TileAt(loc.X+dx, loc.Y+dy)
			if tile == nil || tile.Deposit == nil {
				continue
			}
			d := tile.Deposit
			if d.Amount < d.Cap {
				d.Amount = math.Min(d.Cap, d.Amount+d.Replenish)
			}
		}
	}
}
