package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

func newEventWorld() *world.World {
	w := world.New(100, 100, 21)
	return w
}

func addTown(w *world.World, id, x, y int) *world.Location {
	loc := &world.Location{
		ID: id, Name: "Town", Type: world.LocTown, X: x, Y: y,
		Durability: 100, Happiness: 50, Safety: 50, Capacity: 20,
		StorageCap: map[rules.StorageCategory]int{
			rules.CategoryFood:     100,
			rules.CategoryMaterial: 100,
			rules.CategoryGoods:    100,
		},
		Prices: make(map[string]int),
	}
	w.Locations[id] = loc
	return loc
}

func TestMinorEventNeverLearnedRemotely(t *testing.T) {
	w := newEventWorld()
	a := addTown(w, 1, 10, 10)
	b := addTown(w, 2, 12, 10)

	w.AddEvent(&world.GameEvent{
		Type: "harvest", Turn: w.Turn, Title: "Harvest",
		Description: "A fine harvest", LocationID: a.ID,
		Severity: world.SeverityMinor,
	})

	// Visiting the neighboring settlement teaches nothing.
	w.Party.X, w.Party.Y = b.X, b.Y
	Discover(w)
	assert.Empty(t, w.KnownEvents)

	// Visiting the origin does.
	w.Party.X, w.Party.Y = a.X, a.Y
	Discover(w)
	assert.Len(t, w.KnownEvents, 1)
	assert.Len(t, w.News, 1)
}

func TestModerateEventSpreadsWithinRadius(t *testing.T) {
	w := newEventWorld()
	a := addTown(w, 1, 10, 10)
	near := addTown(w, 2, 20, 10)  // 10 tiles, inside the 15-tile radius
	far := addTown(w, 3, 40, 10)   // 30 tiles, outside

	w.AddEvent(&world.GameEvent{
		Type: "bandit_raid", Turn: w.Turn, Description: "Raid on Town",
		LocationID: a.ID, Severity: world.SeverityModerate,
	})

	w.Party.X, w.Party.Y = far.X, far.Y
	Discover(w)
	assert.Empty(t, w.KnownEvents)

	w.Party.X, w.Party.Y = near.X, near.Y
	Discover(w)
	assert.Len(t, w.KnownEvents, 1)
}

func TestCatastrophicWithoutLocationAlwaysWitnessed(t *testing.T) {
	w := newEventWorld()
	w.Party.X, w.Party.Y = 90, 90

	w.AddEvent(&world.GameEvent{
		Type: "omen", Turn: w.Turn, Description: "The sky darkens",
		Severity: world.SeverityCatastrophic,
	})
	Witness(w)
	assert.Len(t, w.KnownEvents, 1)
}

func TestDirectWitnessWithinEightTiles(t *testing.T) {
	w := newEventWorld()
	a := addTown(w, 1, 10, 10)

	e := w.AddEvent(&world.GameEvent{
		Type: "dragon_attack", Turn: w.Turn, Description: "Dragon!",
		LocationID: a.ID, Severity: world.SeverityCatastrophic,
	})

	w.Party.X, w.Party.Y = 30, 30
	Witness(w)
	assert.False(t, w.KnownEvents[e.ID])

	w.Party.X, w.Party.Y = 15, 12
	Witness(w)
	assert.True(t, w.KnownEvents[e.ID])
}

func TestWitnessIgnoresOldEvents(t *testing.T) {
	w := newEventWorld()
	a := addTown(w, 1, 10, 10)
	w.Party.X, w.Party.Y = a.X, a.Y

	e := w.AddEvent(&world.GameEvent{
		Type: "bandit_raid", Turn: 0, Description: "Old raid",
		LocationID: a.ID, Severity: world.SeverityModerate,
	})
	w.Turn = 5
	Witness(w)
	assert.False(t, w.KnownEvents[e.ID])
}

func TestPruneDropsStaleEvents(t *testing.T) {
	w := newEventWorld()
	w.AddEvent(&world.GameEvent{Type: "a", Turn: 0})
	w.AddEvent(&world.GameEvent{Type: "b", Turn: 0, Resolved: true})
	w.AddEvent(&world.GameEvent{Type: "c", Turn: 0})

	w.Turn = maxEventAge // Exactly at the age limit: kept.
	Prune(w)
	require.Len(t, w.Events, 2)

	w.Turn = maxEventAge + 1
	Prune(w)
	require.Len(t, w.Events, 0)
}

func TestWarDeclarationFromDeepRivalry(t *testing.T) {
	w := newEventWorld()
	w.Countries[1] = &world.Country{ID: 1, Name: "Aldmark"}
	w.Countries[2] = &world.Country{ID: 2, Name: "Vessar"}
	rel := &world.Relation{A: 1, B: 2, Kind: world.DipRivalry, Strength: -80}
	w.Relations = append(w.Relations, rel)

	stream := rng.New(9)
	for i := 0; i < 500 && rel.Kind != world.DipWar; i++ {
		warDeclarations(w, stream)
	}
	require.Equal(t, world.DipWar, rel.Kind)

	// And a major event announces it.
	found := false
	for _, e := range w.Events {
		if e.Type == "war_declaration" {
			found = true
			assert.Equal(t, world.SeverityMajor, e.Severity)
		}
	}
	assert.True(t, found)
}

func TestNoWarFromMildRivalry(t *testing.T) {
	w := newEventWorld()
	rel := &world.Relation{A: 1, B: 2, Kind: world.DipRivalry, Strength: -10}
	w.Relations = append(w.Relations, rel)

	stream := rng.New(9)
	for i := 0; i < 500; i++ {
		warDeclarations(w, stream)
	}
	assert.Equal(t, world.DipRivalry, rel.Kind)
}

func TestPeaceTreatyNeedsLongWar(t *testing.T) {
	w := newEventWorld()
	rel := &world.Relation{A: 1, B: 2, Kind: world.DipWar, Since: 0}
	w.Relations = append(w.Relations, rel)

	w.Turn = 10 // Too recent.
	stream := rng.New(3)
	for i := 0; i < 200; i++ {
		peaceTreaties(w, stream)
	}
	assert.Equal(t, world.DipWar, rel.Kind)

	w.Turn = minWarDuration + 1
	for i := 0; i < 500 && rel.Kind == world.DipWar; i++ {
		peaceTreaties(w, stream)
	}
	assert.Equal(t, world.DipTruce, rel.Kind)
}

func TestDragonAttackSetsFireAndCooldown(t *testing.T) {
	w := newEventWorld()
	loc := addTown(w, 1, 10, 10)
	dragon := w.AddCreature(&world.Creature{
		Type: "dragon", X: 10, Y: 11, Health: 300, Hostile: true,
	})

	stream := rng.New(2)
	for i := 0; i < 500 && loc.BurningTurns == 0; i++ {
		dragon.IdleTurns = 0
		dragonAttacks(w, stream)
	}
	require.Greater(t, loc.BurningTurns, 0)
	assert.Less(t, loc.Durability, 100.0)
	assert.Equal(t, dragonCooldown, dragon.IdleTurns)
}

func TestBirthAddsResidentChild(t *testing.T) {
	w := newEventWorld()
	loc := addTown(w, 1, 10, 10)
	mother := w.AddCharacter(&world.Character{
		Name: "Mara", Age: 28, Alive: true, HomeID: loc.ID,
		Relationships: []world.Relationship{{TargetID: 99, Kind: world.RelSpouse, Strength: 60}},
	})
	loc.ResidentIDs = append(loc.ResidentIDs, mother.ID)

	stream := rng.New(8)
	before := len(w.Characters)
	for i := 0; i < 500 && len(w.Characters) == before; i++ {
		births(w, stream)
	}
	require.Greater(t, len(w.Characters), before)
	assert.Len(t, loc.ResidentIDs, 2)
}

func TestNoBirthAtCapacity(t *testing.T) {
	w := newEventWorld()
	loc := addTown(w, 1, 10, 10)
	loc.Capacity = 1
	mother := w.AddCharacter(&world.Character{
		Name: "Mara", Age: 28, Alive: true, HomeID: loc.ID,
		Relationships: []world.Relationship{{TargetID: 99, Kind: world.RelSpouse, Strength: 60}},
	})
	loc.ResidentIDs = append(loc.ResidentIDs, mother.ID)

	stream := rng.New(8)
	for i := 0; i < 200; i++ {
		births(w, stream)
	}
	assert.Len(t, loc.ResidentIDs, 1)
}
