package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/wildermark/internal/sim"
	"github.com/talgya/wildermark/internal/world"
	"github.com/talgya/wildermark/internal/worldgen"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "world.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRoundTripPreservesWorld(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(7))
	for i := 0; i < 5; i++ {
		sim.AdvanceTurn(w)
	}

	db := openTemp(t)
	require.NoError(t, db.SaveWorld(w))

	loaded, err := db.LoadWorld()
	require.NoError(t, err)

	assert.Equal(t, w.Width, loaded.Width)
	assert.Equal(t, w.Height, loaded.Height)
	assert.Equal(t, w.Seed, loaded.Seed)
	assert.Equal(t, w.Turn, loaded.Turn)
	assert.Equal(t, w.Season, loaded.Season)

	require.Len(t, loaded.Locations, len(w.Locations))
	for _, id := range w.SortedLocationIDs() {
		want, got := w.Locations[id], loaded.Locations[id]
		require.NotNil(t, got, "location %d missing after load", id)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.ResidentIDs, got.ResidentIDs)
		assert.Equal(t, want.Durability, got.Durability)
		assert.Equal(t, len(want.Storage), len(got.Storage))
		assert.Equal(t, len(want.Buildings), len(got.Buildings))
	}

	require.Len(t, loaded.Characters, len(w.Characters))
	for _, id := range w.SortedCharacterIDs() {
		want, got := w.Characters[id], loaded.Characters[id]
		require.NotNil(t, got, "character %d missing after load", id)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Job, got.Job)
		assert.Equal(t, want.Needs, got.Needs)
		assert.Equal(t, want.Skills, got.Skills)
		assert.Equal(t, want.Action.Kind, got.Action.Kind)
	}

	require.Len(t, loaded.Creatures, len(w.Creatures))
	assert.Equal(t, len(w.Routes), len(loaded.Routes))
	assert.Equal(t, len(w.Events), len(loaded.Events))
	assert.Equal(t, len(w.News), len(loaded.News))
	assert.Equal(t, w.KnownEvents, loaded.KnownEvents)
	assert.Equal(t, w.Party.X, loaded.Party.X)
	assert.Equal(t, w.Party.Gold, loaded.Party.Gold)
	assert.Equal(t, w.Party.Inventory, loaded.Party.Inventory)
}

func TestLoadedWorldSimulatesIdentically(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(99))
	for i := 0; i < 3; i++ {
		sim.AdvanceTurn(w)
	}

	db := openTemp(t)
	require.NoError(t, db.SaveWorld(w))
	loaded, err := db.LoadWorld()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		sim.AdvanceTurn(w)
		sim.AdvanceTurn(loaded)
	}

	assert.Equal(t, w.Turn, loaded.Turn)
	for _, id := range w.SortedCreatureIDs() {
		got, ok := loaded.Creatures[id]
		require.True(t, ok, "creature %d diverged", id)
		assert.Equal(t, w.Creatures[id].X, got.X)
		assert.Equal(t, w.Creatures[id].Y, got.Y)
		assert.Equal(t, w.Creatures[id].Health, got.Health)
	}
	for _, id := range w.SortedLocationIDs() {
		assert.Equal(t, w.Locations[id].Happiness, loaded.Locations[id].Happiness)
		assert.Equal(t, w.Locations[id].Prices, loaded.Locations[id].Prices)
	}
	assert.Equal(t, len(w.News), len(loaded.News))
}

func TestSaveReplacesPriorSnapshot(t *testing.T) {
	db := openTemp(t)

	first := worldgen.Generate(worldgen.SmallConfig(1))
	require.NoError(t, db.SaveWorld(first))

	second := worldgen.Generate(worldgen.SmallConfig(2))
	second.Turn = 42
	require.NoError(t, db.SaveWorld(second))

	loaded, err := db.LoadWorld()
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Seed)
	assert.Equal(t, 42, loaded.Turn)
}

func TestNextIDsRestoredAfterLoad(t *testing.T) {
	w := worldgen.Generate(worldgen.SmallConfig(5))

	db := openTemp(t)
	require.NoError(t, db.SaveWorld(w))
	loaded, err := db.LoadWorld()
	require.NoError(t, err)

	before := loaded.SortedCreatureIDs()
	c := loaded.AddCreature(&world.Creature{Type: "wolf", Health: 30, MaxHealth: 30})
	for _, id := range before {
		assert.NotEqual(t, id, c.ID, "new creature reused id %d", id)
	}
}

func TestLoadFromEmptyDatabaseFails(t *testing.T) {
	db := openTemp(t)
	_, err := db.LoadWorld()
	assert.Error(t, err)
}
