package trade

import (
	"log/slog"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

const (
	// Fraction of each surplus moved per execution pass.
	shipmentFraction = 0.3
	// Merchant's cut of the sale value at the destination.
	merchantCut = 0.5
	// Multiplier from route danger to per-pass raid chance.
	raidChanceScale = 0.5
)

// ExecuteTrades runs one shipping pass over every active route: goods loaded
// last pass arrive and are sold, then a fresh load of surplus leaves the
// origin. A raid both loses the in-flight goods and deactivates the route.
func ExecuteTrades(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedRouteIDs() {
		r := w.Routes[id]
		if !r.Active {
			continue
		}
		origin, ok := w.Locations[r.FromID]
		if !ok || origin.Destroyed {
			r.Active = false
			continue
		}
		dest, ok := w.Locations[r.ToID]
		if !ok || dest.Destroyed {
			r.Active = false
			continue
		}

		if stream.Chance(r.Danger * raidChanceScale) {
			raidRoute(w, r, origin, dest)
			continue
		}

		deliver(w, r, origin, dest)
		if loadShipment(r, origin, dest) && !caravanOnRoad(w, r) {
			spawnCaravan(w, r, origin)
		}
		r.LastUsed = w.Turn
	}
}

// spawnCaravan puts a trader creature on the map walking the route, so the
// shipment is a visible thing in the world rather than route bookkeeping.
func spawnCaravan(w *world.World, r *world.TradeRoute, origin *world.Location) {
	def, ok := rules.CreatureByID("trader")
	if !ok || len(r.Path) < 2 {
		return
	}
	path := make([]world.Point, len(r.Path)-1)
	copy(path, r.Path[1:])
	w.AddCreature(&world.Creature{
		Type: "trader", X: origin.X, Y: origin.Y,
		Health: def.Health, MaxHealth: def.Health,
		Attack: def.Attack, Defense: def.Defense, Speed: def.Speed,
		HomeLocID: r.FromID, TargetLocID: r.ToID,
		Path: path,
	})
}

func caravanOnRoad(w *world.World, r *world.TradeRoute) bool {
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == "trader" && c.HomeLocID == r.FromID && c.TargetLocID == r.ToID {
			return true
		}
	}
	return false
}

// deliver unloads in-flight goods into destination storage and pays the
// origin's merchants their cut of the sale.
func deliver(w *world.World, r *world.TradeRoute, origin, dest *world.Location) {
	if len(r.InFlight) == 0 {
		return
	}
	gold := 0
	for _, s := range r.InFlight {
		stored := dest.AddResource(s.Resource, s.Quantity, s.Quality)
		if overflow := s.Quantity - stored; overflow > 0 {
			// No room at the destination; the caravan hauls the rest back.
			origin.AddResource(s.Resource, overflow, s.Quality)
		}
		gold += int(float64(stored*priceAt(dest, s.Resource)) * merchantCut)
	}
	r.InFlight = nil
	payMerchants(w, origin, gold)
}

// loadShipment moves a fraction of each surplus out of origin storage into
// the route's in-flight hold, bounded by transport weight capacity and the
// destination's remaining shortage. Reports whether anything was loaded.
func loadShipment(r *world.TradeRoute, origin, dest *world.Location) bool {
	loaded := false
	weightLeft := world.TransportCapacity(r.Transport)
	surplus := surplusByResource(origin)
	for _, res := range sortedResourceKeys(surplus) {
		def, ok := rules.ResourceByID(res)
		if !ok || !wantsResource(dest, def) {
			continue
		}
		qty := floorFraction(surplus[res], shipmentFraction)
		if def.Weight > 0 {
			if fit := int(weightLeft / def.Weight); fit < qty {
				qty = fit
			}
		}
		if qty <= 0 {
			continue
		}
		quality := avgQuality(origin, res)
		removed := origin.RemoveResource(res, qty)
		if removed == 0 {
			continue
		}
		r.InFlight = append(r.InFlight, &world.Stack{Resource: res, Quantity: removed, Quality: quality})
		weightLeft -= float64(removed) * def.Weight
		loaded = true
	}
	return loaded
}

func raidRoute(w *world.World, r *world.TradeRoute, origin, dest *world.Location) {
	r.Active = false
	r.InFlight = nil
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == "trader" && c.HomeLocID == r.FromID && c.TargetLocID == r.ToID {
			c.Health = 0
		}
	}
	origin.Safety = world.Clamp(origin.Safety-5, 0, 100)
	w.AddEvent(&world.GameEvent{
		Type: "caravan_raid", Turn: w.Turn,
		Title:       "Caravan raided",
		Description: "Bandits struck the caravan from " + origin.Name + " to " + dest.Name,
		LocationID:  origin.ID,
		Severity:    world.SeverityModerate,
	})
	slog.Debug("trade route raided", "from", origin.Name, "to", dest.Name)
}

func priceAt(loc *world.Location, resource string) int {
	if p, ok := loc.Prices[resource]; ok && p > 0 {
		return p
	}
	if def, ok := rules.ResourceByID(resource); ok {
		return def.BaseValue
	}
	return 1
}

// payMerchants splits trade profit across the origin's merchants. Without
// a merchant the profit dissipates; trade still moved the goods.
func payMerchants(w *world.World, origin *world.Location, gold int) {
	if gold <= 0 {
		return
	}
	var merchants []*world.Character
	for _, id := range origin.ResidentIDs {
		if c, ok := w.Characters[id]; ok && c.Alive && c.Job == "merchant" {
			merchants = append(merchants, c)
		}
	}
	if len(merchants) == 0 {
		return
	}
	share := gold / len(merchants)
	for _, m := range merchants {
		m.Gold += share
	}
}
