package military

import (
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// Detection ranges by unit type.
const (
	guardDetectRange  = 6
	armyDetectRange   = 10
	hunterDetectRange = 12
	hunterIdleLimit   = 10
)

// TickUnits runs on-duty behavior for hunters, guards, armies, and builders.
func TickUnits(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCreatureIDs() {
		c, ok := w.Creatures[id]
		if !ok || c.Health <= 0 {
			continue
		}
		switch c.Type {
		case "hunter":
			tickHunter(w, c, stream)
		case "guard":
			tickGuard(w, c, stream, guardDetectRange)
		case "army":
			tickArmy(w, c, stream)
		case "builder":
			tickBuilder(w, c)
		}
	}
}

// tickHunter paths to the nearest unowned prey, attacks on adjacency, and
// hauls the kill's loot home. Idle-too-long hunters stand down.
func tickHunter(w *world.World, c *world.Creature, stream *rng.Stream) {
	prey := nearestPrey(w, c.X, c.Y, hunterDetectRange)
	if prey != nil {
		c.IdleTurns = 0
		if world.Distance(c.X, c.Y, prey.X, prey.Y) <= 1 {
			resolveSkirmish(c, prey, stream)
			if prey.Health <= 0 {
				depositLoot(w, c.HomeLocID, prey.Loot, prey.Type)
			}
			return
		}
		c.StepToward(w, prey.X, prey.Y)
		return
	}

	c.IdleTurns++
	if c.IdleTurns > hunterIdleLimit {
		standDown(w, c)
		return
	}
	if world.Distance(c.X, c.Y, c.HomeX, c.HomeY) > c.WanderRadius {
		c.StepToward(w, c.HomeX, c.HomeY)
		return
	}
	patrol(w, c, stream)
}

// tickGuard paths to the nearest bandit or dragon in detection range and
// attacks on adjacency.
func tickGuard(w *world.World, c *world.Creature, stream *rng.Stream, detect int) {
	threat := nearestThreat(w, c, detect)
	if threat != nil {
		if world.Distance(c.X, c.Y, threat.X, threat.Y) <= 1 {
			resolveSkirmish(c, threat, stream)
			return
		}
		c.StepToward(w, threat.X, threat.Y)
		return
	}
	if world.Distance(c.X, c.Y, c.HomeX, c.HomeY) > c.WanderRadius {
		c.StepToward(w, c.HomeX, c.HomeY)
		return
	}
	patrol(w, c, stream)
}

// tickArmy marches on its target settlement; sieging happens in the combat
// pass once the army stands on the settlement tile. Armies also engage
// threats they pass.
func tickArmy(w *world.World, c *world.Creature, stream *rng.Stream) {
	threat := nearestThreat(w, c, armyDetectRange)
	if threat != nil && world.Distance(c.X, c.Y, threat.X, threat.Y) <= 1 {
		resolveSkirmish(c, threat, stream)
		return
	}

	target, ok := w.Locations[c.TargetLocID]
	if !ok || target.Destroyed || !w.AtWar(c.CountryID, target.CountryID) {
		// Target gone or war over with that country: retarget or head home.
		next := nearestEnemySettlement(w, c.CountryID, c.X, c.Y)
		if next == nil {
			c.TargetLocID = 0
			c.StepToward(w, c.HomeX, c.HomeY)
			return
		}
		c.TargetLocID = next.ID
		target = next
	}
	if c.X == target.X && c.Y == target.Y {
		return // Siege in place.
	}
	c.StepToward(w, target.X, target.Y)
}

// tickBuilder walks to its ruin and rebuilds it on arrival. The builder
// disbands after the work is done.
func tickBuilder(w *world.World, c *world.Creature) {
	ruin, ok := w.Locations[c.TargetLocID]
	if !ok || !ruin.Destroyed {
		c.Health = 0 // Nothing to rebuild; disband on the cleanup pass.
		return
	}
	if c.X != ruin.X || c.Y != ruin.Y {
		c.StepToward(w, ruin.X, ruin.Y)
		return
	}
	rebuild(w, ruin)
	c.Health = 0
}

// rebuild restores a ruin to its original settlement type at low durability.
func rebuild(w *world.World, ruin *world.Location) {
	ruin.Destroyed = false
	ruin.Type = ruin.OriginalType
	ruin.Durability = 30
	ruin.BurningTurns = 0
	ruin.Happiness = 40
	ruin.Safety = 40
	w.AddEvent(&world.GameEvent{
		Type: "rebuild", Turn: w.Turn,
		Title:       "Rebuilt from the ashes",
		Description: ruin.Name + " has been rebuilt",
		LocationID:  ruin.ID,
		Severity:    world.SeverityModerate,
	})
}

func standDown(w *world.World, c *world.Creature) {
	if ch, ok := w.Characters[c.CharID]; ok {
		ch.OnDuty = false
		ch.Job = "unemployed"
		ch.X, ch.Y = c.HomeX, c.HomeY
	}
	c.Health = 0 // Unit dissolves; the resident remains.
}

func patrol(w *world.World, c *world.Creature, stream *rng.Stream) {
	nx := c.X + stream.NextInt(-1, 1)
	ny := c.Y + stream.NextInt(-1, 1)
	if w.InBounds(nx, ny) {
		c.X, c.Y = nx, ny
	}
}

func nearestPrey(w *world.World, x, y, radius int) *world.Creature {
	var best *world.Creature
	bestDist := radius + 1
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Health <= 0 || c.OwnerID != 0 {
			continue
		}
		def, ok := rules.CreatureByID(c.Type)
		if !ok || !def.Prey {
			continue
		}
		d := world.Distance(x, y, c.X, c.Y)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// nearestThreat finds the closest bandit, dragon, or enemy army in range.
func nearestThreat(w *world.World, unit *world.Creature, radius int) *world.Creature {
	var best *world.Creature
	bestDist := radius + 1
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.ID == unit.ID || c.Health <= 0 {
			continue
		}
		hostile := c.Type == "bandit" || c.Type == "dragon" ||
			(c.Type == "army" && c.CountryID != unit.CountryID && w.AtWar(unit.CountryID, c.CountryID))
		if !hostile {
			continue
		}
		d := world.Distance(unit.X, unit.Y, c.X, c.Y)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func depositLoot(w *world.World, locID int, loot map[string]int, _ string) {
	loc, ok := w.Locations[locID]
	if !ok || loc.Destroyed {
		return
	}
	for _, res := range sortedKeys(loot) {
		loc.AddResource(res, loot[res], 0.5)
	}
}

func sortedKeys(m map[string]int) []string {
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
