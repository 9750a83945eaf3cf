package military

import (
	"log/slog"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/world"
)

const (
	burnDurabilityLoss = 5.0
	burnHappinessLoss  = 5.0
	burnBuildingChance = 0.15
)

// TickSettlements applies fire damage to burning settlements, regenerates
// structure elsewhere, and destroys any settlement whose durability hits
// zero.
func TickSettlements(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.Destroyed {
			continue
		}
		if loc.BurningTurns > 0 {
			burnSettlement(loc, stream)
		} else {
			regenerate(loc)
		}
		if loc.Durability <= 0 {
			destroySettlement(w, loc)
		}
	}
}

func burnSettlement(loc *world.Location, stream *rng.Stream) {
	loc.Durability = world.Clamp(loc.Durability-burnDurabilityLoss, 0, 100)
	loc.Happiness = world.Clamp(loc.Happiness-burnHappinessLoss, 0, 100)
	for _, b := range loc.Buildings {
		if !stream.Chance(burnBuildingChance) {
			continue
		}
		b.Condition = world.Clamp(b.Condition-float64(stream.NextInt(5, 15)), 0, 100)
		if b.Condition <= 0 {
			b.Operational = false
		}
	}
	loc.BurningTurns--
}

// regenerate slowly restores durability when the settlement has hands and
// materials to work with.
func regenerate(loc *world.Location) {
	if loc.Durability >= 100 {
		return
	}
	regen := 0.0
	if len(loc.ResidentIDs) >= 2 {
		regen += 0.3
	}
	if loc.CountResource("wood") > 0 {
		regen += 0.2
	}
	if loc.CountResource("stone") > 0 {
		regen += 0.2
	}
	regen += 0.1 * float64(loc.DefenseLevel)
	loc.Durability = world.Clamp(loc.Durability+regen, 0, 100)
}

// destroySettlement turns the settlement into ruins. Residents scatter,
// the garrison dissolves, and the location itself stays on the map so a
// builder can later restore it.
func destroySettlement(w *world.World, loc *world.Location) {
	loc.OriginalType = loc.Type
	loc.Type = world.LocRuins
	loc.Destroyed = true
	loc.Durability = 0
	loc.BurningTurns = 0

	for _, rid := range loc.ResidentIDs {
		if ch, ok := w.Characters[rid]; ok {
			ch.HomeID = 0
			ch.Job = "unemployed"
			ch.OnDuty = false
		}
	}
	loc.ResidentIDs = nil
	for _, gid := range loc.GarrisonIDs {
		if ch, ok := w.Characters[gid]; ok {
			ch.OnDuty = false
			ch.Job = "unemployed"
		}
	}
	loc.GarrisonIDs = nil

	w.AddEvent(&world.GameEvent{
		Type: "destruction", Turn: w.Turn,
		Title:       "Settlement destroyed",
		Description: loc.Name + " has been reduced to ruins",
		LocationID:  loc.ID,
		Severity:    world.SeverityMajor,
	})
	slog.Warn("settlement destroyed", "location", loc.Name)
}
