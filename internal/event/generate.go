// Package event turns world state into stochastic occurrences (dragon
// attacks, raids, wars, plagues, births) and gates what the player has
// legitimately heard of. Generation probabilities are deliberately small;
// most turns pass quietly.
package event

import (
	"fmt"
	"log/slog"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/weather"
	"github.com/talgya/wildermark/internal/world"
)

const (
	dragonAttackChance = 0.04
	dragonAttackRange  = 2
	dragonCooldown     = 20

	banditRaidChance = 0.02
	banditRaidRange  = 5

	warDeclarationChance = 0.02
	warRivalryThreshold  = -50.0

	peaceTreatyChance = 0.05
	minWarDuration    = 50

	harvestChance = 0.1

	plagueChance  = 0.002
	plagueMinPop  = 8
	birthChance   = 0.02
	migrateChance = 0.1
)

// Generate runs every event check for the turn in fixed order. Each check
// draws from the stream whether or not it fires, so generation stays
// deterministic across worlds with different states.
func Generate(w *world.World, stream *rng.Stream) {
	dragonAttacks(w, stream)
	banditRaids(w, stream)
	warDeclarations(w, stream)
	peaceTreaties(w, stream)
	seasonalHarvest(w, stream)
	plagues(w, stream)
	births(w, stream)
	monsterMigration(w, stream)
}

// dragonAttacks lets a dragon off cooldown torch a settlement it has
// closed in on.
func dragonAttacks(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCreatureIDs() {
		dragon := w.Creatures[id]
		if dragon.Type != "dragon" || dragon.Health <= 0 {
			continue
		}
		if dragon.IdleTurns > 0 {
			dragon.IdleTurns-- // Attack cooldown for dragons.
			continue
		}
		if !stream.Chance(dragonAttackChance) {
			continue
		}
		loc := nearestSettlement(w, dragon.X, dragon.Y, dragonAttackRange)
		if loc == nil {
			continue
		}

		loc.BurningTurns += 3
		loc.Durability = world.Clamp(loc.Durability-15, 0, 100)
		loc.Happiness = world.Clamp(loc.Happiness-15, 0, 100)
		loc.Prosperity = world.Clamp(loc.Prosperity-10, 0, 100)
		if loc.DefenseLevel > 0 && stream.Chance(0.5) {
			loc.DefenseLevel--
		}
		for _, b := range loc.Buildings {
			if stream.Chance(0.3) {
				b.Condition = world.Clamp(b.Condition-20, 0, 100)
			}
		}
		dragon.IdleTurns = dragonCooldown

		w.AddEvent(&world.GameEvent{
			Type: "dragon_attack", Turn: w.Turn,
			Title:       "Dragon attack",
			Description: "A dragon has set " + loc.Name + " ablaze",
			LocationID:  loc.ID,
			Severity:    world.SeverityCatastrophic,
		})
		slog.Info("dragon attack", "location", loc.Name)
	}
}

// banditRaids hit settlements with no garrison when bandits lurk nearby.
func banditRaids(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed || len(loc.GarrisonIDs) > 0 {
			continue
		}
		if !stream.Chance(banditRaidChance) {
			continue
		}
		if !banditNear(w, loc, banditRaidRange) {
			continue
		}

		stolen := 0
		for _, res := range rules.ResourceIDs() {
			have := loc.CountResource(res)
			if have < 2 {
				continue
			}
			stolen += loc.RemoveResource(res, have/5+1)
		}
		loc.Durability = world.Clamp(loc.Durability-5, 0, 100)
		loc.Safety = world.Clamp(loc.Safety-10, 0, 100)

		w.AddEvent(&world.GameEvent{
			Type: "bandit_raid", Turn: w.Turn,
			Title:       "Bandit raid",
			Description: fmt.Sprintf("Bandits plundered %s, carrying off %d goods", loc.Name, stolen),
			LocationID:  loc.ID,
			Severity:    world.SeverityModerate,
		})
	}
}

// warDeclarations escalate deep rivalries into war.
func warDeclarations(w *world.World, stream *rng.Stream) {
	for _, rel := range w.Relations {
		if rel.Kind != world.DipRivalry || rel.Strength > warRivalryThreshold {
			continue
		}
		if !stream.Chance(warDeclarationChance) {
			continue
		}
		rel.Kind = world.DipWar
		rel.Since = w.Turn

		a, b := countryName(w, rel.A), countryName(w, rel.B)
		w.AddEvent(&world.GameEvent{
			Type: "war_declaration", Turn: w.Turn,
			Title:       "War declared",
			Description: a + " has declared war on " + b,
			Severity:    world.SeverityMajor,
		})
		slog.Info("war declared", "attacker", a, "defender", b)
	}
}

// peaceTreaties let long wars wind down into truce.
func peaceTreaties(w *world.World, stream *rng.Stream) {
	for _, rel := range w.Relations {
		if rel.Kind != world.DipWar || w.Turn-rel.Since < minWarDuration {
			continue
		}
		if !stream.Chance(peaceTreatyChance) {
			continue
		}
		rel.Kind = world.DipTruce
		rel.Since = w.Turn
		rel.Strength = world.Clamp(rel.Strength+20, -100, 100)

		w.AddEvent(&world.GameEvent{
			Type: "peace_treaty", Turn: w.Turn,
			Title:       "Peace treaty",
			Description: countryName(w, rel.A) + " and " + countryName(w, rel.B) + " have signed a truce",
			Severity:    world.SeverityMajor,
		})
	}
}

// seasonalHarvest fires on the first turn of a season: bounty in autumn,
// famine risk in winter.
func seasonalHarvest(w *world.World, stream *rng.Stream) {
	if w.Turn%weather.TurnsPerSeason != 0 {
		return
	}
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed || !stream.Chance(harvestChance) {
			continue
		}
		switch w.Season {
		case rules.SeasonAutumn:
			loc.AddResource("wheat", 15, 0.6)
			loc.AddResource("berries", 8, 0.6)
			w.AddEvent(&world.GameEvent{
				Type: "harvest", Turn: w.Turn,
				Title:       "Bountiful harvest",
				Description: "The fields around " + loc.Name + " yielded richly",
				LocationID:  loc.ID,
				Severity:    world.SeverityMinor,
			})
		case rules.SeasonWinter:
			for _, res := range rules.FoodIDs() {
				have := loc.CountResource(res)
				loc.RemoveResource(res, have/4)
			}
			loc.Happiness = world.Clamp(loc.Happiness-10, 0, 100)
			w.AddEvent(&world.GameEvent{
				Type: "famine", Turn: w.Turn,
				Title:       "Winter famine",
				Description: "Stores run thin in " + loc.Name,
				LocationID:  loc.ID,
				Severity:    world.SeverityModerate,
			})
		}
	}
}

// plagues rarely strike dense settlements, killing a fraction of residents.
func plagues(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed || len(loc.ResidentIDs) < plagueMinPop {
			continue
		}
		if !stream.Chance(plagueChance) {
			continue
		}

		frac := stream.NextFloat(0.1, 0.3)
		deaths := int(float64(len(loc.ResidentIDs)) * frac)
		var victims []int
		for i := 0; i < deaths && len(loc.ResidentIDs) > 0; i++ {
			vid := loc.ResidentIDs[0]
			if c, ok := w.Characters[vid]; ok {
				c.Alive = false
				c.HomeID = 0
			}
			loc.RemoveResident(vid)
			victims = append(victims, vid)
		}
		loc.Happiness = world.Clamp(loc.Happiness-25, 0, 100)

		w.AddEvent(&world.GameEvent{
			Type: "plague", Turn: w.Turn,
			Title:        "Plague outbreak",
			Description:  fmt.Sprintf("Plague sweeps %s; %d dead", loc.Name, len(victims)),
			LocationID:   loc.ID,
			CharacterIDs: victims,
			Severity:     world.SeverityCatastrophic,
		})
		slog.Info("plague outbreak", "location", loc.Name, "deaths", len(victims))
	}
}

// births add children to married couples with housing capacity.
func births(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCharacterIDs() {
		mother := w.Characters[id]
		if !mother.Alive || !mother.HasRelation(world.RelSpouse) {
			continue
		}
		loc, ok := w.Locations[mother.HomeID]
		if !ok || loc.Destroyed || len(loc.ResidentIDs) >= loc.Capacity {
			continue
		}
		if !stream.Chance(birthChance) {
			continue
		}

		child := w.AddCharacter(&world.Character{
			Name: "Child of " + mother.Name,
			Age:  0,
			X:    loc.X, Y: loc.Y,
			HomeID: loc.ID, Job: "child",
			Health: 50, MaxHealth: 50, Alive: true,
			Skills: map[string]float64{},
		})
		child.Relationships = append(child.Relationships, world.Relationship{
			TargetID: mother.ID, Kind: world.RelFamily, Strength: 80,
		})
		mother.Relationships = append(mother.Relationships, world.Relationship{
			TargetID: child.ID, Kind: world.RelFamily, Strength: 80,
		})
		loc.ResidentIDs = append(loc.ResidentIDs, child.ID)

		w.AddEvent(&world.GameEvent{
			Type: "birth", Turn: w.Turn,
			Title:        "A child is born",
			Description:  "A child has been born in " + loc.Name,
			LocationID:   loc.ID,
			CharacterIDs: []int{child.ID, mother.ID},
			Severity:     world.SeverityMinor,
		})
	}
}

// monsterMigration announces a seasonal influx and seeds a small pack at
// the map's edge.
func monsterMigration(w *world.World, stream *rng.Stream) {
	if w.Turn%weather.TurnsPerSeason != 0 || !stream.Chance(migrateChance) {
		return
	}
	def, ok := rules.CreatureByID("wolf")
	if !ok {
		return
	}
	pack := stream.NextInt(def.PackMin, def.PackMax)
	x := stream.NextInt(0, w.Width-1)
	for i := 0; i < pack; i++ {
		w.AddCreature(&world.Creature{
			Type: "wolf", X: x, Y: 0,
			Health: def.Health, MaxHealth: def.Health,
			Attack: def.Attack, Defense: def.Defense, Speed: def.Speed,
			HomeX: x, HomeY: 0, WanderRadius: def.WanderRadius,
			Hostile: def.Hostile,
		})
	}
	w.AddEvent(&world.GameEvent{
		Type: "migration", Turn: w.Turn,
		Title:       "Monster migration",
		Description: "Packs of wolves have been sighted crossing the northern marches",
		Severity:    world.SeverityModerate,
	})
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

func banditNear(w *world.World, loc *world.Location, radius int) bool {
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == "bandit" && c.Health > 0 && world.Distance(c.X, c.Y, loc.X, loc.Y) <= radius {
			return true
		}
	}
	return false
}

func countryName(w *world.World, id int) string {
	if c, ok := w.Countries[id]; ok {
		return c.Name
	}
	return "an unknown realm"
}
