package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/wildermark/internal/economy"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// DescribeTile returns a one-line description of a tile for the caller's
// presentation layer.
func DescribeTile(w *world.World, x, y int) string {
	t := w.TileAt(x, y)
	if t == nil {
		return "Uncharted wilds"
	}
	var parts []string
	if b, ok := rules.BiomeByID(t.Biome); ok {
		parts = append(parts, b.Name)
	} else {
		parts = append(parts, "Unknown terrain")
	}
	if loc := w.LocationAt(x, y); loc != nil {
		if loc.Destroyed {
			parts = append(parts, "the ruins of "+loc.Name)
		} else {
			parts = append(parts, loc.Name+" ("+string(loc.Type)+")")
		}
	}
	if t.RoadLevel > 0 {
		parts = append(parts, "a road runs through")
	}
	if t.Deposit != nil && t.Deposit.Amount >= 1 {
		if def, ok := rules.ResourceByID(t.Deposit.Resource); ok {
			parts = append(parts, strings.ToLower(def.Name)+" can be gathered here")
		}
	}
	return strings.Join(parts, ", ")
}

// StockLine is one resource row of an economic snapshot.
type StockLine struct {
	Resource string
	Quantity int
	Price    int
}

// Snapshot is a settlement's visible economic state.
type Snapshot struct {
	Name       string
	Type       world.LocationType
	Population int
	Happiness  float64
	Prosperity float64
	Safety     float64
	Stocks     []StockLine
}

// EconomicSnapshot summarizes a settlement's stocks and prices, sorted by
// resource id. Returns false for unknown or destroyed settlements.
func EconomicSnapshot(w *world.World, locID int) (Snapshot, bool) {
	loc, ok := w.Locations[locID]
	if !ok || loc.Destroyed {
		return Snapshot{}, false
	}
	totals := make(map[string]int)
	for _, s := range loc.Storage {
		totals[s.Resource] += s.Quantity
	}
	resources := make([]string, 0, len(totals))
	for res := range totals {
		resources = append(resources, res)
	}
	sort.Strings(resources)

	snap := Snapshot{
		Name:       loc.Name,
		Type:       loc.Type,
		Population: len(loc.ResidentIDs),
		Happiness:  loc.Happiness,
		Prosperity: loc.Prosperity,
		Safety:     loc.Safety,
	}
	for _, res := range resources {
		snap.Stocks = append(snap.Stocks, StockLine{
			Resource: res,
			Quantity: totals[res],
			Price:    economy.Price(loc, res),
		})
	}
	return snap, true
}

// CanTrade reports whether the party stands at a living settlement.
func CanTrade(w *world.World) bool {
	loc := w.LocationAt(w.Party.X, w.Party.Y)
	return loc != nil && !loc.Destroyed
}

// CanRest reports whether the party can rest here: any living settlement
// offers a roof.
func CanRest(w *world.World) bool {
	return CanTrade(w)
}

// CanHunt reports whether huntable prey roams within a short ride.
func CanHunt(w *world.World) bool {
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Health <= 0 || c.OwnerID != 0 {
			continue
		}
		def, ok := rules.CreatureByID(c.Type)
		if !ok || !def.Prey {
			continue
		}
		if world.Distance(w.Party.X, w.Party.Y, c.X, c.Y) <= 3 {
			return true
		}
	}
	return false
}

// CanEmbark reports whether the party stands at a port.
func CanEmbark(w *world.World) bool {
	loc := w.LocationAt(w.Party.X, w.Party.Y)
	return loc != nil && !loc.Destroyed && loc.Type == world.LocPort
}

// TurnStamp renders the current date for log lines.
func TurnStamp(w *world.World) string {
	return fmt.Sprintf("turn %d, %s", w.Turn, rules.SeasonName(w.Season))
}
