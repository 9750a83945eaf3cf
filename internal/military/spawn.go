// Package military spawns and drives units (guards, hunters, builders,
// armies), resolves combat, tracks settlement durability and destruction,
// and transfers conquered settlements between countries.
package military

import (
	"fmt"
	"log/slog"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// Per-settlement unit caps and spawn gates.
const (
	guardSpawnChance  = 0.3
	hunterSpawnChance = 0.2
	armySpawnChance   = 0.25
	maxGuardsPerLoc   = 4
	maxArmiesPerSide  = 3
)

// SpawnUnits runs one spawning pass: guards and hunters at settlements,
// builders toward ruins, armies at wartime capitals. The scheduler invokes
// it on a coarse interval.
func SpawnUnits(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed {
			continue
		}
		spawnGuards(w, loc, stream)
		spawnHunters(w, loc, stream)
		spawnBuilders(w, loc)
	}
	for _, id := range w.SortedCountryIDs() {
		spawnArmies(w, w.Countries[id], stream)
	}
}

func unitCount(w *world.World, locID int, unitType string) int {
	count := 0
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == unitType && c.HomeLocID == locID {
			count++
		}
	}
	return count
}

func spawnGuards(w *world.World, loc *world.Location, stream *rng.Stream) {
	want := 1 + len(loc.ResidentIDs)/5
	if want > maxGuardsPerLoc {
		want = maxGuardsPerLoc
	}
	if unitCount(w, loc.ID, "guard") >= want || !stream.Chance(guardSpawnChance) {
		return
	}
	ch := recruitResident(w, loc, "guard", stream)
	ch.OnDuty = true
	ch.DutyRadius = 5
	loc.GarrisonIDs = append(loc.GarrisonIDs, ch.ID)
	spawnUnitCreature(w, loc, "guard", ch.ID)
}

func spawnHunters(w *world.World, loc *world.Location, stream *rng.Stream) {
	if loc.Type != world.LocVillage && loc.Type != world.LocFarm && loc.Type != world.LocTown {
		return
	}
	if unitCount(w, loc.ID, "hunter") >= 2 || !stream.Chance(hunterSpawnChance) {
		return
	}
	ch := recruitResident(w, loc, "hunter", stream)
	ch.OnDuty = true
	ch.DutyRadius = 12
	spawnUnitCreature(w, loc, "hunter", ch.ID)
}

// recruitResident reuses an unemployed or matching-job resident when one
// exists, otherwise adds a fresh adult to the population.
func recruitResident(w *world.World, loc *world.Location, job string, stream *rng.Stream) *world.Character {
	for _, id := range loc.ResidentIDs {
		c, ok := w.Characters[id]
		if !ok || !c.Alive || c.OnDuty || c.Age < 16 {
			continue
		}
		if c.Job == job || c.Job == "unemployed" || c.Job == "" {
			c.Job = job
			return c
		}
	}
	c := w.AddCharacter(&world.Character{
		Name: fmt.Sprintf("%s of %s", job, loc.Name),
		Age:  stream.NextInt(18, 40),
		X:    loc.X, Y: loc.Y,
		HomeID: loc.ID, Job: job,
		Health: 100, MaxHealth: 100, Alive: true,
		Skills: map[string]float64{"combat": float64(stream.NextInt(10, 40))},
	})
	loc.ResidentIDs = append(loc.ResidentIDs, c.ID)
	return c
}

func spawnUnitCreature(w *world.World, loc *world.Location, unitType string, charID int) *world.Creature {
	def, _ := rules.CreatureByID(unitType)
	return w.AddCreature(&world.Creature{
		Type: unitType,
		X:    loc.X, Y: loc.Y,
		Health: def.Health, MaxHealth: def.Health,
		Attack: def.Attack, Defense: def.Defense, Speed: def.Speed,
		HomeX: loc.X, HomeY: loc.Y, WanderRadius: def.WanderRadius,
		CountryID: loc.CountryID, HomeLocID: loc.ID, CharID: charID,
	})
}

// spawnBuilders dispatches a builder from a large settlement toward the
// nearest un-rebuilt ruin.
func spawnBuilders(w *world.World, loc *world.Location) {
	if loc.Type != world.LocCity && loc.Type != world.LocTown {
		return
	}
	if len(loc.ResidentIDs) < 8 || unitCount(w, loc.ID, "builder") > 0 {
		return
	}
	ruin := nearestRuin(w, loc.X, loc.Y)
	if ruin == nil {
		return
	}
	def, _ := rules.CreatureByID("builder")
	b := w.AddCreature(&world.Creature{
		Type: "builder",
		X:    loc.X, Y: loc.Y,
		Health: def.Health, MaxHealth: def.Health,
		Attack: def.Attack, Defense: def.Defense, Speed: def.Speed,
		HomeX: loc.X, HomeY: loc.Y, WanderRadius: def.WanderRadius,
		CountryID: loc.CountryID, HomeLocID: loc.ID, TargetLocID: ruin.ID,
	})
	slog.Debug("builder dispatched", "from", loc.Name, "ruin", ruin.Name, "builder", b.ID)
}

func nearestRuin(w *world.World, x, y int) *world.Location {
	var best *world.Location
	bestDist := 1 << 30
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if !loc.Destroyed {
			continue
		}
		// Skip ruins already claimed by a builder.
		claimed := false
		for _, cid := range w.SortedCreatureIDs() {
			c := w.Creatures[cid]
			if c.Type == "builder" && c.TargetLocID == loc.ID {
				claimed = true
				break
			}
		}
		if claimed {
			continue
		}
		d := world.Distance(x, y, loc.X, loc.Y)
		if d < bestDist {
			best, bestDist = loc, d
		}
	}
	return best
}

// spawnArmies musters an army at the capital of a country at war, aimed at
// the nearest non-destroyed enemy settlement. Pack size scales its stats.
func spawnArmies(w *world.World, country *world.Country, stream *rng.Stream) {
	if country == nil || !w.AtWarWithAnyone(country.ID) {
		return
	}
	if armyCount(w, country.ID) >= maxArmiesPerSide || !stream.Chance(armySpawnChance) {
		return
	}
	capital, ok := w.Locations[country.CapitalID]
	if !ok || capital.Destroyed {
		return
	}
	target := nearestEnemySettlement(w, country.ID, capital.X, capital.Y)
	if target == nil {
		return
	}

	def, _ := rules.CreatureByID("army")
	pack := stream.NextInt(def.PackMin, def.PackMax)
	scale := float64(pack)
	a := w.AddCreature(&world.Creature{
		Type: "army",
		X:    capital.X, Y: capital.Y,
		Health: def.Health * scale, MaxHealth: def.Health * scale,
		Attack: def.Attack * scale, Defense: def.Defense + 2*scale, Speed: def.Speed,
		HomeX: capital.X, HomeY: capital.Y, WanderRadius: def.WanderRadius,
		CountryID: country.ID, HomeLocID: capital.ID, TargetLocID: target.ID,
	})
	slog.Info("army mustered",
		"country", country.Name,
		"capital", capital.Name,
		"target", target.Name,
		"strength", int(a.Attack),
	)
}

func armyCount(w *world.World, countryID int) int {
	count := 0
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == "army" && c.CountryID == countryID {
			count++
		}
	}
	return count
}

func nearestEnemySettlement(w *world.World, countryID, x, y int) *world.Location {
	var best *world.Location
	bestDist := 1 << 30
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed || loc.CountryID == countryID || !w.AtWar(countryID, loc.CountryID) {
			continue
		}
		d := world.Distance(x, y, loc.X, loc.Y)
		if d < bestDist {
			best, bestDist = loc, d
		}
	}
	return best
}
