package trade

import (
	"github.com/talgya/wildermark/internal/world"
)

const (
	dangerPerHostile = 0.05
	dangerRadius     = 5
)

// RecomputeDanger rescores every active route from the hostiles currently
// loitering near its path. Each hostile creature within range of any path
// tile adds a small increment; the total is capped at 1.
func RecomputeDanger(w *world.World) {
	for _, id := range w.SortedRouteIDs() {
		r := w.Routes[id]
		if !r.Active {
			continue
		}
		danger := 0.0
		for _, cid := range w.SortedCreatureIDs() {
			c := w.Creatures[cid]
			if !c.Hostile || c.Health <= 0 {
				continue
			}
			if nearPath(r.Path, c.X, c.Y) {
				danger += dangerPerHostile
			}
		}
		if danger > 1 {
			danger = 1
		}
		r.Danger = danger
	}
}

func nearPath(path []world.Point, x, y int) bool {
	for _, p := range path {
		if world.Distance(p.X, p.Y, x, y) <= dangerRadius {
			return true
		}
	}
	return false
}
