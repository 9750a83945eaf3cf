// Package sim is the turn scheduler: it advances the clock and invokes
// every subsystem in a fixed sequence over the shared World. The sequence
// is part of the observable contract (economy runs before trade so
// surpluses reflect the current turn's production) and each subsystem
// gets its own random fork in fixed order, consumed even on turns the
// subsystem is interval-gated off.
package sim

import (
	"log/slog"

	"github.com/talgya/wildermark/internal/agent"
	"github.com/talgya/wildermark/internal/economy"
	"github.com/talgya/wildermark/internal/event"
	"github.com/talgya/wildermark/internal/herd"
	"github.com/talgya/wildermark/internal/military"
	"github.com/talgya/wildermark/internal/pathfind"
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/trade"
	"github.com/talgya/wildermark/internal/weather"
	"github.com/talgya/wildermark/internal/world"
)

const (
	tradeExecuteInterval   = 3
	tradeEstablishInterval = 10
	tradeDangerInterval    = 5
	militarySpawnInterval  = 5

	visibilityRadius = 6

	partyAttack  = 14.0
	partyDefense = 6.0

	oldAge           = 65
	deathChancePerYr = 0.04
	comingOfAge      = 15

	rationTarget = 5 // Loaves the party keeps stocked while in town
)

// AdvanceTurn runs one full simulation step.
func AdvanceTurn(w *world.World) {
	w.Turn++
	stream := rng.NewTurn(w.Seed, w.Turn)

	weatherStream := stream.Fork()
	economyStream := stream.Fork()
	tradeExecStream := stream.Fork()
	tradeEstablishStream := stream.Fork()
	tradeDangerStream := stream.Fork()
	characterStream := stream.Fork()
	creatureStream := stream.Fork()
	eventStream := stream.Fork()
	herdStream := stream.Fork()
	militaryStream := stream.Fork()
	agingStream := stream.Fork()
	_ = tradeEstablishStream // Establishment and danger are deterministic;
	_ = tradeDangerStream    // the forks exist to keep stream order stable.

	w.Season = weather.SeasonForTurn(w.Turn)
	w.Weather = weather.Roll(weatherStream, w.Season)

	economy.Tick(w, economyStream)

	if w.Turn%tradeExecuteInterval == 0 {
		trade.ExecuteTrades(w, tradeExecStream)
	}
	if w.Turn%tradeEstablishInterval == 0 {
		trade.EstablishRoutes(w, TerrainPathfinder(w))
	}
	if w.Turn%tradeDangerInterval == 0 {
		trade.RecomputeDanger(w)
	}

	agent.TickCharacters(w, characterStream)

	agent.TickCreatures(w, creatureStream)
	for _, line := range military.PartyCombat(w, creatureStream, partyAttack, partyDefense) {
		w.AddNews(world.SeverityModerate, line)
	}
	w.RemoveDeadCreatures()

	event.Generate(w, eventStream)

	herd.Tick(w, herdStream)

	if w.Turn%militarySpawnInterval == 0 {
		military.SpawnUnits(w, militaryStream)
	}
	military.TickUnits(w, militaryStream)
	military.TickSettlements(w, militaryStream)
	military.ResolveCombat(w, militaryStream)
	military.CleanupArmies(w)
	w.RemoveDeadCreatures()

	recomputeVisibility(w)

	if w.Turn%weather.TurnsPerYear == 0 {
		ageCharacters(w, agingStream)
	}

	restockParty(w)
	w.Party.RestoreActionPoints()

	// Last, after every subsystem that can emit events: direct witnessing
	// checks the event's turn stamp, so a pass earlier in the body would
	// miss sieges and destructions from the military phase.
	event.Witness(w)
	event.Discover(w)
	event.Prune(w)
}

// restockParty tops up the party's rations from the local market while it
// sits in a living settlement, paying the going price per loaf.
func restockParty(w *world.World) {
	loc := w.LocationAt(w.Party.X, w.Party.Y)
	if loc == nil || loc.Destroyed {
		return
	}
	if w.Party.Inventory == nil {
		w.Party.Inventory = make(map[string]int)
	}
	for w.Party.Inventory["bread"] < rationTarget {
		price := economy.Price(loc, "bread")
		if w.Party.Gold < price || loc.RemoveResource("bread", 1) == 0 {
			return
		}
		w.Party.Gold -= price
		w.Party.Inventory["bread"]++
	}
}

// recomputeVisibility marks tiles around the party as explored.
func recomputeVisibility(w *world.World) {
	for dy := -visibilityRadius; dy <= visibilityRadius; dy++ {
		for dx := -visibilityRadius; dx <= visibilityRadius; dx++ {
			if t := w.TileAt(w.Party.X+dx, w.Party.Y+dy); t != nil {
				t.Explored = true
			}
		}
	}
}

// ageCharacters runs once per in-game year: everyone ages, children come of
// age, and death stalks the old.
func ageCharacters(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCharacterIDs() {
		c := w.Characters[id]
		if !c.Alive {
			continue
		}
		c.Age++
		if c.Age == comingOfAge && c.Job == "child" {
			c.Job = "unemployed"
		}
		if c.Age > oldAge && stream.Chance(float64(c.Age-oldAge)*deathChancePerYr) {
			c.Alive = false
			if loc, ok := w.Locations[c.HomeID]; ok {
				loc.RemoveResident(c.ID)
				loc.RemoveGarrison(c.ID)
			}
			c.HomeID = 0
			slog.Debug("character died of old age", "name", c.Name, "age", c.Age)
		}
	}
}

// TerrainPathfinder adapts the grid A* to the world's terrain costs: roads
// are cheap, water is impassable, everything else follows its biome.
func TerrainPathfinder(w *world.World) trade.Pathfinder {
	cost := func(x, y int) float64 {
		t := w.TileAt(x, y)
		if t == nil {
			return -1
		}
		if t.RoadLevel > 0 {
			return 0.5
		}
		if b, ok := rules.BiomeByID(t.Biome); ok {
			return b.MoveCost
		}
		return 1
	}
	return func(from, to world.Point) []world.Point {
		raw := pathfind.Find(w.Width, w.Height,
			pathfind.Point{X: from.X, Y: from.Y},
			pathfind.Point{X: to.X, Y: to.Y}, cost)
		if raw == nil {
			return nil
		}
		path := make([]world.Point, len(raw))
		for i, p := range raw {
			path[i] = world.Point{X: p.X, Y: p.Y}
		}
		return path
	}
}
