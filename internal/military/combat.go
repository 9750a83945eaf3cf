package military

import (
	"log/slog"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/world"
)

// Combat round counts: short skirmishes between creatures, longer bouts
// against the party.
const (
	skirmishRounds = 5
	partyRounds    = 20
)

// conquestThreshold is the siege durability at or below which a settlement
// changes hands instead of being razed.
const conquestThreshold = 20.0

// ResolveCombat fights every pair of opposing creatures sharing a tile, then
// applies army sieges. Dead creatures are removed afterward in a cleanup
// pass by the scheduler.
func ResolveCombat(w *world.World, stream *rng.Stream) {
	ids := w.SortedCreatureIDs()
	for i := 0; i < len(ids); i++ {
		a, ok := w.Creatures[ids[i]]
		if !ok || a.Health <= 0 {
			continue
		}
		for j := i + 1; j < len(ids); j++ {
			b, ok := w.Creatures[ids[j]]
			if !ok || b.Health <= 0 {
				continue
			}
			if a.X != b.X || a.Y != b.Y {
				continue
			}
			if !opposed(w, a, b) {
				continue
			}
			resolveSkirmish(a, b, stream)
			if a.Health <= 0 {
				break
			}
		}
	}

	applySieges(w, stream)
}

// opposed reports whether two co-located creatures fight: guards against
// bandits, dragons, and enemy armies; dragons against rival dragons;
// opposing-country armies against each other; hunters against unowned prey.
func opposed(w *world.World, a, b *world.Creature) bool {
	if pairMatch(a, b, func(x, y *world.Creature) bool {
		return (x.Type == "guard" || x.Type == "army") &&
			(y.Type == "bandit" || y.Type == "dragon" ||
				(y.Type == "army" && y.CountryID != x.CountryID && w.AtWar(x.CountryID, y.CountryID)))
	}) {
		return true
	}
	if a.Type == "dragon" && b.Type == "dragon" && a.ID != b.ID {
		return true
	}
	if pairMatch(a, b, func(x, y *world.Creature) bool {
		return x.Type == "hunter" && y.OwnerID == 0 && isPrey(y.Type)
	}) {
		return true
	}
	return false
}

func pairMatch(a, b *world.Creature, f func(x, y *world.Creature) bool) bool {
	return f(a, b) || f(b, a)
}

func isPrey(typ string) bool {
	switch typ {
	case "deer", "sheep", "boar":
		return true
	}
	return false
}

// resolveSkirmish runs a fixed number of alternating rounds; each hit deals
// max(1, attack − defense + jitter). The loser's health is driven to zero
// or below within the round budget.
func resolveSkirmish(a, b *world.Creature, stream *rng.Stream) {
	for round := 0; round < skirmishRounds; round++ {
		b.Health -= hitDamage(a.Attack, b.Defense, stream, 2)
		if b.Health <= 0 {
			return
		}
		a.Health -= hitDamage(b.Attack, a.Defense, stream, 2)
		if a.Health <= 0 {
			return
		}
	}
	// Budget exhausted: the weaker side falls.
	if a.Health < b.Health {
		a.Health = 0
	} else {
		b.Health = 0
	}
}

func hitDamage(attack, defense float64, stream *rng.Stream, jitter int) float64 {
	dmg := attack - defense + float64(stream.NextInt(-2, jitter))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// PartyCombat fights every creature that ended the turn on the party's tile.
// The party fights as a single unit with fixed stats plus gear.
func PartyCombat(w *world.World, stream *rng.Stream, partyAttack, partyDefense float64) []string {
	var log []string
	for _, id := range w.SortedCreatureIDs() {
		c, ok := w.Creatures[id]
		if !ok || c.Health <= 0 || !c.Hostile {
			continue
		}
		if c.X != w.Party.X || c.Y != w.Party.Y {
			continue
		}
		for round := 0; round < partyRounds && c.Health > 0; round++ {
			c.Health -= hitDamage(partyAttack, c.Defense, stream, 3)
		}
		if c.Health <= 0 {
			log = append(log, "The party defeats a "+c.Type)
		}
	}
	return log
}

// applySieges damages settlements occupied by enemy armies and hands them
// over once durability falls to the conquest threshold.
func applySieges(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCreatureIDs() {
		army, ok := w.Creatures[id]
		if !ok || army.Type != "army" || army.Health <= 0 {
			continue
		}
		loc := w.LocationAt(army.X, army.Y)
		if loc == nil || loc.Destroyed || loc.CountryID == army.CountryID || !w.AtWar(army.CountryID, loc.CountryID) {
			continue
		}

		before := loc.Durability
		loc.Durability = world.Clamp(loc.Durability-army.Attack/10, 0, 100)
		army.Health -= float64(loc.DefenseLevel*2 + len(loc.GarrisonIDs))

		if before > conquestThreshold && loc.Durability <= conquestThreshold {
			conquer(w, loc, army)
		}
	}
}

// conquer transfers the settlement to the attacker's country. A fallen
// capital is reassigned to the defender's largest remaining settlement.
func conquer(w *world.World, loc *world.Location, army *world.Creature) {
	defender := loc.CountryID
	loc.CountryID = army.CountryID
	loc.Happiness = world.Clamp(loc.Happiness-20, 0, 100)
	loc.Safety = world.Clamp(loc.Safety-20, 0, 100)
	for _, gid := range loc.GarrisonIDs {
		if ch, ok := w.Characters[gid]; ok {
			ch.OnDuty = false
			ch.Job = "unemployed"
		}
	}
	loc.GarrisonIDs = nil
	army.TargetLocID = 0

	if country, ok := w.Countries[defender]; ok && country.CapitalID == loc.ID {
		if next := w.LargestSettlement(defender); next != nil {
			country.CapitalID = next.ID
		}
	}

	attacker := ""
	if c, ok := w.Countries[army.CountryID]; ok {
		attacker = c.Name
	}
	w.AddEvent(&world.GameEvent{
		Type: "conquest", Turn: w.Turn,
		Title:       "Settlement conquered",
		Description: loc.Name + " has fallen to " + attacker,
		LocationID:  loc.ID,
		Severity:    world.SeverityMajor,
	})
	slog.Info("settlement conquered", "location", loc.Name, "attacker", attacker)
}
