package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// linePath is a stub pathfinder stepping one axis at a time.
func linePath(from, to world.Point) []world.Point {
	path := []world.Point{from}
	cur := from
	for cur != to {
		if cur.X < to.X {
			cur.X++
		} else if cur.X > to.X {
			cur.X--
		}
		if cur.Y < to.Y {
			cur.Y++
		} else if cur.Y > to.Y {
			cur.Y--
		}
		path = append(path, cur)
	}
	return path
}

func noPath(from, to world.Point) []world.Point { return nil }

func newTradeWorld() *world.World {
	return world.New(50, 50, 11)
}

func addLoc(w *world.World, id int, typ world.LocationType, x, y, countryID int) *world.Location {
	loc := &world.Location{
		ID: id, Name: "Loc", Type: typ, X: x, Y: y, CountryID: countryID,
		Durability: 100,
		StorageCap: map[rules.StorageCategory]int{
			rules.CategoryFood:     100,
			rules.CategoryMaterial: 200,
			rules.CategoryGoods:    100,
		},
		Prices: make(map[string]int),
	}
	w.Locations[id] = loc
	return loc
}

func TestSurplusNeedsOverfullStack(t *testing.T) {
	w := newTradeWorld()
	loc := addLoc(w, 1, world.LocTown, 5, 5, 1)

	// Wheat stack size is 50; 20 units is under half.
	loc.AddResource("wheat", 20, 0.5)
	assert.Empty(t, surplusByResource(loc))

	loc.AddResource("wheat", 20, 0.5)
	surplus := surplusByResource(loc)
	assert.Equal(t, 15, surplus["wheat"])
}

func TestEstablishRouteToShortage(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	dest := addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, linePath)

	require.Len(t, w.Routes, 1)
	r := w.Routes[w.SortedRouteIDs()[0]]
	assert.Equal(t, origin.ID, r.FromID)
	assert.Equal(t, dest.ID, r.ToID)
	assert.True(t, r.Active)
	assert.NotEmpty(t, r.Path)
	assert.Contains(t, origin.RouteIDs, r.ID)
	assert.Contains(t, dest.RouteIDs, r.ID)
}

func TestNoRouteWithoutPath(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, noPath)
	assert.Empty(t, w.Routes)
}

func TestNoRouteBeyondMaxDistance(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	addLoc(w, 2, world.LocVillage, 45, 45, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, linePath)
	assert.Empty(t, w.Routes)
}

func TestNoRouteToSaturatedDestination(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	dest := addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)
	// Destination already holds well over 30% of its food capacity.
	dest.AddResource("wheat", 50, 0.5)

	EstablishRoutes(w, linePath)
	assert.Empty(t, w.Routes)
}

func TestTransportSelection(t *testing.T) {
	w := newTradeWorld()
	a := addLoc(w, 1, world.LocPort, 0, 0, 1)
	b := addLoc(w, 2, world.LocPort, 20, 0, 1)
	c := addLoc(w, 3, world.LocTown, 0, 20, 1)
	d := addLoc(w, 4, world.LocTown, 0, 10, 1)

	assert.Equal(t, world.TransportShip, pickTransport(a, b, 20))
	assert.Equal(t, world.TransportHorseCart, pickTransport(c, b, 20))
	assert.Equal(t, world.TransportCart, pickTransport(c, d, 10))
	assert.Equal(t, world.TransportHauling, pickTransport(c, d, 5))
}

func TestExecuteMovesGoodsOverTwoPasses(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	dest := addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)
	merchant := w.AddCharacter(&world.Character{Name: "Merchant", Job: "merchant", Alive: true, HomeID: 1})
	origin.ResidentIDs = append(origin.ResidentIDs, merchant.ID)

	EstablishRoutes(w, linePath)
	require.Len(t, w.Routes, 1)
	r := w.Routes[w.SortedRouteIDs()[0]]

	// First pass loads the caravan; nothing has arrived yet.
	ExecuteTrades(w, rng.New(1))
	assert.NotEmpty(t, r.InFlight)
	assert.Equal(t, 0, dest.CountResource("wheat"))
	loaded := 45 - origin.CountResource("wheat")
	assert.Greater(t, loaded, 0)

	// Second pass delivers and pays the merchant.
	ExecuteTrades(w, rng.New(2))
	assert.Equal(t, loaded, dest.CountResource("wheat"))
	assert.Greater(t, merchant.Gold, 0)
}

func TestExecuteSpawnsCaravanOnRoad(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, linePath)
	require.Len(t, w.Routes, 1)
	r := w.Routes[w.SortedRouteIDs()[0]]

	ExecuteTrades(w, rng.New(1))
	require.Len(t, w.Creatures, 1)
	caravan := w.Creatures[w.SortedCreatureIDs()[0]]
	assert.Equal(t, "trader", caravan.Type)
	assert.Equal(t, r.FromID, caravan.HomeLocID)
	assert.Equal(t, r.ToID, caravan.TargetLocID)
	assert.NotEmpty(t, caravan.Path)

	// One caravan per route at a time.
	origin.AddResource("wheat", 45, 0.5)
	ExecuteTrades(w, rng.New(2))
	assert.Len(t, w.Creatures, 1)
}

func TestRaidKillsCaravan(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, linePath)
	r := w.Routes[w.SortedRouteIDs()[0]]

	ExecuteTrades(w, rng.New(1))
	require.Len(t, w.Creatures, 1)
	caravan := w.Creatures[w.SortedCreatureIDs()[0]]

	r.Danger = 1.0
	stream := rng.New(5)
	for i := 0; i < 50 && r.Active; i++ {
		ExecuteTrades(w, stream)
	}
	require.False(t, r.Active)
	assert.LessOrEqual(t, caravan.Health, 0.0)
}

func TestExecuteDeactivatesOnDestroyedEndpoint(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	dest := addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, linePath)
	require.Len(t, w.Routes, 1)
	r := w.Routes[w.SortedRouteIDs()[0]]

	dest.Destroyed = true
	ExecuteTrades(w, rng.New(1))
	assert.False(t, r.Active)
}

func TestMaxDangerRouteEventuallyRaided(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)

	EstablishRoutes(w, linePath)
	r := w.Routes[w.SortedRouteIDs()[0]]
	r.Danger = 1.0

	stream := rng.New(5)
	for i := 0; i < 50 && r.Active; i++ {
		origin.AddResource("wheat", 45, 0.5)
		ExecuteTrades(w, stream)
	}
	assert.False(t, r.Active)
	assert.Empty(t, r.InFlight)
}

func TestRecomputeDanger(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocTown, 5, 5, 1)
	addLoc(w, 2, world.LocVillage, 15, 5, 1)
	origin.AddResource("wheat", 45, 0.5)
	EstablishRoutes(w, linePath)
	r := w.Routes[w.SortedRouteIDs()[0]]

	RecomputeDanger(w)
	assert.Equal(t, 0.0, r.Danger)

	w.AddCreature(&world.Creature{Type: "bandit", X: 10, Y: 7, Health: 30, Hostile: true})
	RecomputeDanger(w)
	assert.InDelta(t, dangerPerHostile, r.Danger, 1e-9)

	// Danger caps at 1 no matter how many hostiles gather.
	for i := 0; i < 30; i++ {
		w.AddCreature(&world.Creature{Type: "bandit", X: 10, Y: 7, Health: 30, Hostile: true})
	}
	RecomputeDanger(w)
	assert.Equal(t, 1.0, r.Danger)
}

func TestPerLocationRouteCap(t *testing.T) {
	w := newTradeWorld()
	origin := addLoc(w, 1, world.LocCity, 25, 25, 1)
	origin.AddResource("wheat", 45, 0.5)
	origin.AddResource("wood", 70, 0.5)
	origin.AddResource("iron", 40, 0.5)
	addLoc(w, 2, world.LocVillage, 30, 25, 1)
	addLoc(w, 3, world.LocVillage, 25, 30, 1)
	addLoc(w, 4, world.LocVillage, 20, 25, 1)
	addLoc(w, 5, world.LocVillage, 25, 20, 1)

	for i := 0; i < 6; i++ {
		EstablishRoutes(w, linePath)
	}
	assert.LessOrEqual(t, locationRouteCount(w, origin), maxRoutesPerLocation)
}
