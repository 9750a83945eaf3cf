package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/wildermark/internal/weather"
	"github.com/talgya/wildermark/internal/world"
	"github.com/talgya/wildermark/internal/worldgen"
)

func TestAdvanceTurnDeterministic(t *testing.T) {
	a := worldgen.Generate(worldgen.SmallConfig(42))
	b := worldgen.Generate(worldgen.SmallConfig(42))

	const turns = 15
	for i := 0; i < turns; i++ {
		AdvanceTurn(a)
		AdvanceTurn(b)
	}

	assert.Equal(t, a.Turn, b.Turn)
	assert.Equal(t, a.Weather, b.Weather)

	require.Equal(t, a.SortedCreatureIDs(), b.SortedCreatureIDs())
	for _, id := range a.SortedCreatureIDs() {
		ca, cb := a.Creatures[id], b.Creatures[id]
		assert.Equal(t, ca.X, cb.X, "creature %d x", id)
		assert.Equal(t, ca.Y, cb.Y, "creature %d y", id)
		assert.Equal(t, ca.Health, cb.Health, "creature %d health", id)
	}

	require.Equal(t, a.SortedLocationIDs(), b.SortedLocationIDs())
	for _, id := range a.SortedLocationIDs() {
		la, lb := a.Locations[id], b.Locations[id]
		assert.Equal(t, stockTotals(la), stockTotals(lb), "location %d stocks", id)
		assert.Equal(t, la.Prices, lb.Prices, "location %d prices", id)
		assert.Equal(t, la.Happiness, lb.Happiness, "location %d happiness", id)
	}

	require.Equal(t, len(a.Events), len(b.Events))
	for i := range a.Events {
		assert.Equal(t, a.Events[i].Type, b.Events[i].Type)
	}
	assert.Equal(t, len(a.News), len(b.News))
}

func stockTotals(loc *world.Location) map[string]int {
	totals := make(map[string]int)
	for _, s := range loc.Storage {
		totals[s.Resource] += s.Quantity
	}
	return totals
}

func TestAdvanceTurnOnEmptyWorld(t *testing.T) {
	w := world.New(10, 10, 1)
	for i := 0; i < 5; i++ {
		AdvanceTurn(w)
	}
	assert.Equal(t, 5, w.Turn)
}

func TestSeasonAdvancesWithTurns(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	w.Turn = weather.TurnsPerSeason - 1
	AdvanceTurn(w)
	assert.Equal(t, 1, w.Season)
	assert.NotEmpty(t, w.Weather.Kind)
}

func TestAgingRunsOncePerYear(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(5))
	var ages []int
	ids := w.SortedCharacterIDs()
	for _, id := range ids {
		ages = append(ages, w.Characters[id].Age)
	}

	w.Turn = weather.TurnsPerYear - 2
	AdvanceTurn(w) // Turn 359: not a year boundary.
	for i, id := range ids {
		if c, ok := w.Characters[id]; ok && c.Alive {
			assert.Equal(t, ages[i], c.Age)
		}
	}

	AdvanceTurn(w) // Turn 360: everyone ages.
	aged := 0
	for i, id := range ids {
		if c, ok := w.Characters[id]; ok && c.Alive && c.Age == ages[i]+1 {
			aged++
		}
	}
	assert.Greater(t, aged, 0)
}

func TestPartyActionPointsRestored(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	w.Party.ActionPoints = 0
	AdvanceTurn(w)
	assert.Equal(t, w.Party.MaxActionPoints, w.Party.ActionPoints)
}

func TestPartyWitnessesNearbyDestruction(t *testing.T) {
	w := world.New(20, 20, 1)
	w.Countries[1] = &world.Country{ID: 1, Name: "Aldmark", CapitalID: 1}
	w.Locations[1] = &world.Location{
		ID: 1, Name: "Emberford", Type: world.LocVillage,
		X: 5, Y: 5, CountryID: 1,
		Durability: 3, BurningTurns: 2,
		Happiness: 50, Safety: 50,
		Prices: make(map[string]int),
	}
	w.Party.X, w.Party.Y = 7, 5

	AdvanceTurn(w)

	require.True(t, w.Locations[1].Destroyed)
	var destruction *world.GameEvent
	for _, e := range w.Events {
		if e.Type == "destruction" {
			destruction = e
		}
	}
	require.NotNil(t, destruction)
	assert.True(t, w.KnownEvents[destruction.ID],
		"party two tiles away should see the settlement fall")
	assert.NotEmpty(t, w.News)
}

func TestPartyRestocksBreadInTown(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	loc := w.LocationAt(w.Party.X, w.Party.Y)
	require.NotNil(t, loc)
	loc.AddResource("bread", 20, 0.7)
	w.Party.Inventory["bread"] = 0
	w.Party.Gold = 100

	AdvanceTurn(w)

	assert.Positive(t, w.Party.Inventory["bread"])
	assert.Less(t, w.Party.Gold, 100)
}

func TestPartyCannotRestockWhenBroke(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	loc := w.LocationAt(w.Party.X, w.Party.Y)
	require.NotNil(t, loc)
	loc.AddResource("bread", 20, 0.7)
	w.Party.Inventory["bread"] = 0
	w.Party.Gold = 0

	AdvanceTurn(w)

	assert.Zero(t, w.Party.Inventory["bread"])
}

func TestVisibilityAroundParty(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	AdvanceTurn(w)
	tile := w.TileAt(w.Party.X, w.Party.Y)
	require.NotNil(t, tile)
	assert.True(t, tile.Explored)
}

func TestDescribeTile(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	desc := DescribeTile(w, w.Party.X, w.Party.Y)
	assert.NotEmpty(t, desc)
	assert.Equal(t, "Uncharted wilds", DescribeTile(w, -1, -1))
}

func TestEconomicSnapshot(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))
	id := w.SortedLocationIDs()[0]

	snap, ok := EconomicSnapshot(w, id)
	require.True(t, ok)
	assert.Equal(t, w.Locations[id].Name, snap.Name)
	assert.NotEmpty(t, snap.Stocks)
	for _, line := range snap.Stocks {
		assert.GreaterOrEqual(t, line.Price, 1)
	}

	_, ok = EconomicSnapshot(w, 9999)
	assert.False(t, ok)
}

func TestPartyCapabilities(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(3))

	// The party starts on a settlement tile.
	assert.True(t, CanTrade(w))
	assert.True(t, CanRest(w))

	w.Party.X, w.Party.Y = 0, 0
	assert.False(t, CanTrade(w))
	assert.False(t, CanEmbark(w))
}
