package agent

import (
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/world"
)

// Military unit types are driven by the military package, not here.
func militaryUnit(typ string) bool {
	switch typ {
	case "guard", "hunter", "army", "builder":
		return true
	}
	return false
}

// TickCreatures moves every free creature through its type-specific state
// machine. Owned sheep belong to the herding pass and military units to the
// military pass; both are skipped here.
func TickCreatures(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCreatureIDs() {
		c, ok := w.Creatures[id]
		if !ok || c.Health <= 0 {
			continue
		}
		if militaryUnit(c.Type) || (c.Type == "sheep" && c.OwnerID != 0) {
			continue
		}

		switch c.Type {
		case "dragon":
			tickDragon(w, c, stream)
		case "bandit":
			tickBandit(w, c, stream)
		case "trader":
			tickTrader(c)
		default:
			tickGeneric(w, c, stream)
		}
	}
}

// tickDragon: rare territory migration, occasional settlement hunts, and
// party chases inside its hunting range.
func tickDragon(w *world.World, c *world.Creature, stream *rng.Stream) {
	if stream.Chance(0.02) {
		c.HomeX += stream.NextInt(-5, 5)
		c.HomeY += stream.NextInt(-5, 5)
		c.StepToward(w, c.HomeX, c.HomeY)
		return
	}
	if stream.Chance(0.05) {
		if loc := nearestSettlement(w, c.X, c.Y, 15); loc != nil {
			c.TargetLocID = loc.ID
			c.StepToward(w, loc.X, loc.Y)
			return
		}
	}
	if c.TargetLocID != 0 {
		if loc, ok := w.Locations[c.TargetLocID]; ok && !loc.Destroyed {
			c.StepToward(w, loc.X, loc.Y)
			if c.X == loc.X && c.Y == loc.Y {
				c.TargetLocID = 0
			}
			return
		}
		c.TargetLocID = 0
	}
	if world.Distance(c.X, c.Y, w.Party.X, w.Party.Y) <= 6 {
		c.StepToward(w, w.Party.X, w.Party.Y)
		return
	}
	holdTerritory(w, c, stream)
}

// tickBandit: chase the party when close, otherwise drift toward roads to
// prey on traffic.
func tickBandit(w *world.World, c *world.Creature, stream *rng.Stream) {
	if world.Distance(c.X, c.Y, w.Party.X, w.Party.Y) <= 4 {
		c.StepToward(w, w.Party.X, w.Party.Y)
		return
	}
	if stream.Chance(0.10) {
		if rx, ry, ok := nearestRoad(w, c.X, c.Y, 5); ok {
			c.StepToward(w, rx, ry)
			return
		}
	}
	if stream.Chance(0.30) {
		wander(w, c, stream)
	}
}

// tickTrader follows its precomputed path one step per turn. A caravan
// whose path is spent has arrived and disbands.
func tickTrader(c *world.Creature) {
	if len(c.Path) == 0 {
		c.Health = 0
		return
	}
	next := c.Path[0]
	c.Path = c.Path[1:]
	c.X, c.Y = next.X, next.Y
}

// tickGeneric covers wildlife: hostiles charge the party, prey flees it,
// territorial creatures return home, and the rest mostly hold position.
func tickGeneric(w *world.World, c *world.Creature, stream *rng.Stream) {
	dist := world.Distance(c.X, c.Y, w.Party.X, w.Party.Y)
	if c.Hostile && dist <= 4 {
		c.StepToward(w, w.Party.X, w.Party.Y)
		return
	}
	if !c.Hostile && dist <= 3 {
		fleeParty(w, c)
		return
	}
	holdTerritory(w, c, stream)
}

func holdTerritory(w *world.World, c *world.Creature, stream *rng.Stream) {
	if c.WanderRadius > 0 && world.Distance(c.X, c.Y, c.HomeX, c.HomeY) > c.WanderRadius {
		c.StepToward(w, c.HomeX, c.HomeY)
		return
	}
	if stream.Chance(0.30) {
		wander(w, c, stream)
	}
}

func wander(w *world.World, c *world.Creature, stream *rng.Stream) {
	nx := c.X + stream.NextInt(-1, 1)
	ny := c.Y + stream.NextInt(-1, 1)
	if w.InBounds(nx, ny) {
		c.X, c.Y = nx, ny
	}
}

func fleeParty(w *world.World, c *world.Creature) {
	nx, ny := c.X, c.Y
	if w.Party.X > c.X {
		nx--
	} else if w.Party.X < c.X {
		nx++
	}
	if w.Party.Y > c.Y {
		ny--
	} else if w.Party.Y < c.Y {
		ny++
	}
	if w.InBounds(nx, ny) {
		c.X, c.Y = nx, ny
	}
}

func nearestSettlement(w *world.World, x, y, radius int) *world.Location {
	var best *world.Location
	bestDist := radius + 1
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed {
			continue
		}
		d := world.Distance(x, y, loc.X, loc.Y)
		if d < bestDist {
			best, bestDist = loc, d
		}
	}
	return best
}

// nearestRoad scans the box around (x, y) for a road tile, nearest first.
func nearestRoad(w *world.World, x, y, radius int) (int, int, bool) {
	bestDist := radius + 1
	var bx, by int
	found := false
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			tile := w.TileAt(x+dx, y+dy)
			if tile == nil || tile.RoadLevel == 0 {
				continue
			}
			d := world.Distance(x, y, x+dx, y+dy)
			if d < bestDist {
				bestDist, bx, by, found = d, x+dx, y+dy, true
			}
		}
	}
	return bx, by, found
}
