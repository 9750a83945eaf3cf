package economy

import (
	"log/slog"

	"github.com/talgya/wildermark/internal/world"
)

// Food draw priority by settlement wealth. Wealthy settlements eat the good
// stuff first; poor ones stretch the staples. List order is load-bearing.
var (
	wealthyFoodOrder = []string{"meat", "fish", "exotic_fruit", "cheese", "bread", "berries", "wheat"}
	poorFoodOrder    = []string{"bread", "berries", "wheat", "fish", "cheese", "meat", "exotic_fruit"}
)

// stackReserve units per stack are never eaten, so storage keeps seed grain
// and trade stock.
const stackReserve = 2

// runConsumption feeds the population, consumes upkeep goods, and applies the
// satisfaction fallout: happiness shifts, starvation eviction, and the
// residents' food-need reset.
func runConsumption(w *world.World, loc *world.Location) {
	population := len(loc.ResidentIDs)
	if population == 0 {
		return
	}

	needed := float64(population) * loc.FoodConsumptionRate()
	order := poorFoodOrder
	if loc.Wealthy() {
		order = wealthyFoodOrder
	}

	consumed := 0
	want := int(needed + 0.999)
	for _, res := range order {
		if consumed >= want {
			break
		}
		consumed += takeWithReserve(loc, res, want-consumed)
	}

	consumeUpkeepGoods(w, loc)

	satisfaction := 1.0
	if needed > 0 {
		satisfaction = world.Clamp(float64(consumed)/needed, 0, 1)
	}

	switch {
	case satisfaction > 0.8:
		loc.Happiness = world.Clamp(loc.Happiness+1, 0, 100)
	case satisfaction > 0.5:
		// Getting by; no change.
	default:
		loc.Happiness = world.Clamp(loc.Happiness-3, 0, 100)
	}

	if satisfaction < 0.3 && population > 1 {
		evictResident(w, loc)
		loc.Prosperity = world.Clamp(loc.Prosperity-2, 0, 100)
	}

	for _, id := range loc.ResidentIDs {
		c, ok := w.Characters[id]
		if !ok || !c.Alive {
			continue
		}
		c.Needs.Food = world.Clamp(satisfaction*80+10, 0, 100)
	}
}

// takeWithReserve removes up to want units of a resource, leaving
// stackReserve units untouched in every stack.
func takeWithReserve(loc *world.Location, resource string, want int) int {
	taken := 0
	for _, s := range loc.Storage {
		if taken >= want {
			break
		}
		if s.Resource != resource {
			continue
		}
		free := s.Quantity - stackReserve
		if free <= 0 {
			continue
		}
		take := want - taken
		if take > free {
			take = free
		}
		s.Quantity -= take
		taken += take
	}
	return taken
}

// Upkeep goods wear out on fixed intervals per settlement type.
func consumeUpkeepGoods(w *world.World, loc *world.Location) {
	switch loc.Type {
	case world.LocCity, world.LocTown, world.LocPort:
		if w.Turn%5 == 0 {
			loc.RemoveResource("tools", 1)
			loc.RemoveResource("ale", 1)
		}
	case world.LocCastle:
		if w.Turn%5 == 0 {
			loc.RemoveResource("ale", 1)
		}
		if w.Turn%10 == 0 {
			loc.RemoveResource("weapons", 1)
			loc.RemoveResource("armor", 1)
		}
	}
}

// evictResident pushes the first resident out: home cleared, job lost, food
// need zeroed. The character stays in the world as a drifter.
func evictResident(w *world.World, loc *world.Location) {
	if len(loc.ResidentIDs) == 0 {
		return
	}
	id := loc.ResidentIDs[0]
	loc.ResidentIDs = loc.ResidentIDs[1:]

	c, ok := w.Characters[id]
	if !ok {
		return
	}
	c.HomeID = 0
	c.Job = "unemployed"
	c.Needs.Food = 0
	slog.Debug("resident evicted by famine", "location", loc.Name, "character", c.Name)
}
