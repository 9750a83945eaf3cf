// Package trade builds and runs the route network between settlements.
// Routes form where one settlement's surplus meets another's shortage;
// goods then flow periodically, with bandit danger able to shut a route
// down. Terrain knowledge comes in through a Pathfinder so the package
// never touches tiles directly.
package trade

import (
	"log/slog"
	"math"

	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// Pathfinder returns a tile path between two points, or nil when no path
// exists.
type Pathfinder func(from, to world.Point) []world.Point

const (
	maxRoutesPerLocation = 3
	maxRoutesGlobal      = 30
	maxRouteDistance     = 30
	minRouteScore        = 5.0

	// Destination stock below this fraction of category capacity counts
	// as a shortage worth scoring.
	shortageFraction = 0.3

	sameCountryBonus = 1.5

	// Transport selection distance thresholds.
	horseCartDistance = 15
	cartDistance      = 8
)

// EstablishRoutes creates at most one new route per settlement per pass.
// Settlements qualify with fewer than three routes and at least one stack
// past half its size cap; candidates are scored by how much of the surplus
// the destination is short of, discounted by distance.
func EstablishRoutes(w *world.World, find Pathfinder) {
	for _, id := range w.SortedLocationIDs() {
		if activeRouteCount(w) >= maxRoutesGlobal {
			return
		}
		origin := w.Locations[id]
		if origin.Destroyed || locationRouteCount(w, origin) >= maxRoutesPerLocation {
			continue
		}
		surplus := surplusByResource(origin)
		if len(surplus) == 0 {
			continue
		}

		dest, score := bestDestination(w, origin, surplus)
		if dest == nil || score < minRouteScore {
			continue
		}
		path := find(world.Point{X: origin.X, Y: origin.Y}, world.Point{X: dest.X, Y: dest.Y})
		if path == nil {
			continue
		}

		dist := float64(world.Distance(origin.X, origin.Y, dest.X, dest.Y))
		r := w.AddRoute(&world.TradeRoute{
			FromID:    origin.ID,
			ToID:      dest.ID,
			Path:      path,
			Distance:  dist,
			Transport: pickTransport(origin, dest, dist),
			Active:    true,
			LastUsed:  w.Turn,
		})
		origin.RouteIDs = append(origin.RouteIDs, r.ID)
		dest.RouteIDs = append(dest.RouteIDs, r.ID)
		slog.Debug("trade route established",
			"from", origin.Name, "to", dest.Name,
			"transport", r.Transport, "distance", dist,
		)
	}
}

// surplusByResource sums, per resource, the units above half the stack-size
// cap in every overfull stack. Only overfull stacks count; a settlement
// with many half-empty stacks has inventory, not surplus.
func surplusByResource(loc *world.Location) map[string]int {
	surplus := make(map[string]int)
	for _, s := range loc.Storage {
		def, ok := rules.ResourceByID(s.Resource)
		if !ok {
			continue
		}
		half := def.StackSize / 2
		if s.Quantity > half {
			surplus[s.Resource] += s.Quantity - half
		}
	}
	return surplus
}

func bestDestination(w *world.World, origin *world.Location, surplus map[string]int) (*world.Location, float64) {
	var best *world.Location
	bestScore := 0.0
	for _, id := range w.SortedLocationIDs() {
		cand := w.Locations[id]
		if cand.ID == origin.ID || cand.Destroyed {
			continue
		}
		dist := world.Distance(origin.X, origin.Y, cand.X, cand.Y)
		if dist == 0 || dist > maxRouteDistance {
			continue
		}
		if alreadyRouted(w, origin.ID, cand.ID) {
			continue
		}

		score := 0.0
		for _, res := range sortedResourceKeys(surplus) {
			def, ok := rules.ResourceByID(res)
			if !ok {
				continue
			}
			if wantsResource(cand, def) {
				score += float64(surplus[res] * def.BaseValue)
			}
		}
		score /= float64(dist)
		if origin.CountryID == cand.CountryID {
			score *= sameCountryBonus
		}
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best, bestScore
}

// wantsResource reports whether the destination's stock of a resource sits
// below the shortage fraction of its category capacity.
func wantsResource(loc *world.Location, def rules.Resource) bool {
	cap, capped := loc.StorageCap[def.Category]
	if !capped {
		cap = def.StackSize * 2
	}
	return float64(loc.CountResource(def.ID)) < shortageFraction*float64(cap)
}

func pickTransport(a, b *world.Location, dist float64) world.Transport {
	if a.Type == world.LocPort && b.Type == world.LocPort {
		return world.TransportShip
	}
	if dist > horseCartDistance {
		return world.TransportHorseCart
	}
	if dist > cartDistance {
		return world.TransportCart
	}
	return world.TransportHauling
}

func alreadyRouted(w *world.World, a, b int) bool {
	for _, id := range w.SortedRouteIDs() {
		r := w.Routes[id]
		if !r.Active {
			continue
		}
		if (r.FromID == a && r.ToID == b) || (r.FromID == b && r.ToID == a) {
			return true
		}
	}
	return false
}

func activeRouteCount(w *world.World) int {
	n := 0
	for _, r := range w.Routes {
		if r.Active {
			n++
		}
	}
	return n
}

func locationRouteCount(w *world.World, loc *world.Location) int {
	n := 0
	for _, id := range loc.RouteIDs {
		if r, ok := w.Routes[id]; ok && r.Active {
			n++
		}
	}
	return n
}

func sortedResourceKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func avgQuality(loc *world.Location, resource string) float64 {
	total, units := 0.0, 0
	for _, s := range loc.Storage {
		if s.Resource == resource {
			total += s.Quality * float64(s.Quantity)
			units += s.Quantity
		}
	}
	if units == 0 {
		return 0.5
	}
	return total / float64(units)
}

func floorFraction(n int, frac float64) int {
	return int(math.Floor(float64(n) * frac))
}
