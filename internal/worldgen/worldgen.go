// Package worldgen builds a complete starting world: layered simplex noise
// for terrain, resource deposits, countries and their settlements, an
// initial population, and wild creatures. Generation is fully determined
// by the seed.
package worldgen

import (
	"log/slog"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/wildermark/internal/pathfind"
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// Config holds world generation parameters.
type Config struct {
	Width, Height int
	Seed          int64

	SeaLevel      float64 // Elevation threshold for water
	MountainLevel float64 // Elevation threshold for mountains

	Countries   int
	Settlements int
}

// DefaultConfig returns a mid-sized world.
func DefaultConfig(seed int64) Config {
	return Config{
		Width: 80, Height: 80,
		Seed:          seed,
		SeaLevel:      0.28,
		MountainLevel: 0.70,
		Countries:     3,
		Settlements:   12,
	}
}

// SmallConfig returns a tiny world for tests.
func SmallConfig(seed int64) Config {
	return Config{
		Width: 40, Height: 40,
		Seed:          seed,
		SeaLevel:      0.25,
		MountainLevel: 0.75,
		Countries:     2,
		Settlements:   5,
	}
}

// Generate creates a complete world from the configuration.
func Generate(cfg Config) *world.World {
	w := world.New(cfg.Width, cfg.Height, cfg.Seed)
	stream := rng.New(cfg.Seed)

	genTerrain(w, cfg)
	genDeposits(w, stream)
	genCountries(w, cfg, stream)
	genSettlements(w, cfg, stream)
	genRoads(w)
	genCreatures(w, stream)
	placeParty(w)

	slog.Info("world generated",
		"seed", cfg.Seed,
		"size", cfg.Width*cfg.Height,
		"settlements", len(w.Locations),
		"characters", len(w.Characters),
		"creatures", len(w.Creatures),
	)
	return w
}

// genTerrain derives a biome per tile from three independent noise layers.
func genTerrain(w *world.World, cfg Config) {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	moistNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	tempNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	cx, cy := float64(cfg.Width)/2, float64(cfg.Height)/2
	maxDist := math.Sqrt(cx*cx + cy*cy)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			fx, fy := float64(x), float64(y)
			elev := octaveNoise(elevNoise, fx, fy, 4, 0.08, 0.5)
			moist := octaveNoise(moistNoise, fx, fy, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, fx, fy, 3, 0.05, 0.5)

			// Continental shaping: sink the map edges into ocean.
			dist := math.Sqrt((fx-cx)*(fx-cx)+(fy-cy)*(fy-cy)) / maxDist
			falloff := 1.0 - math.Pow(dist, 3.5)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			// Colder toward the top of the map and at altitude.
			temp = temp*0.6 + (fy/float64(cfg.Height))*0.3 + (1.0-elev)*0.1

			t := w.TileAt(x, y)
			t.Elevation = elev
			t.Biome = deriveBiome(elev, moist, temp, cfg)
		}
	}
	markBeaches(w)
}

func deriveBiome(elev, moist, temp float64, cfg Config) string {
	switch {
	case elev < cfg.SeaLevel:
		return "water"
	case elev > cfg.MountainLevel:
		return "mountains"
	case temp < 0.25:
		return "tundra"
	case moist < 0.25 && temp > 0.55:
		return "desert"
	case moist > 0.7 && elev < 0.4:
		return "swamp"
	case elev > 0.55:
		return "hills"
	case moist > 0.45:
		return "forest"
	default:
		return "grassland"
	}
}

// markBeaches converts low land tiles bordering water.
func markBeaches(w *world.World) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			t := w.TileAt(x, y)
			if t.Biome != "grassland" && t.Biome != "forest" {
				continue
			}
			if t.Elevation >= 0.35 {
				continue
			}
			if hasWaterNeighbor(w, x, y) {
				t.Biome = "beach"
			}
		}
	}
}

func hasWaterNeighbor(w *world.World, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if n := w.TileAt(x+dx, y+dy); n != nil && n.Biome == "water" {
				return true
			}
		}
	}
	return false
}

// depositTable maps biomes to (resource, chance, cap) rolls.
var depositTable = map[string][]struct {
	Resource string
	Chance   float64
	Cap      float64
}{
	"forest":    {{"wood", 0.15, 25}, {"herbs", 0.04, 8}},
	"mountains": {{"stone", 0.20, 30}, {"iron_ore", 0.10, 20}, {"gems", 0.02, 5}},
	"hills":     {{"stone", 0.10, 20}, {"iron_ore", 0.06, 12}},
	"grassland": {{"berries", 0.05, 10}, {"herbs", 0.03, 6}},
	"swamp":     {{"herbs", 0.10, 12}},
	"water":     {{"fish", 0.08, 15}},
	"beach":     {{"fish", 0.10, 12}},
	"tundra":    {{"wood", 0.04, 10}},
}

func genDeposits(w *world.World, stream *rng.Stream) {
	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			t := w.TileAt(x, y)
			for _, roll := range depositTable[t.Biome] {
				if !stream.Chance(roll.Chance) {
					continue
				}
				t.Deposit = &world.Deposit{
					Resource:  roll.Resource,
					Amount:    roll.Cap * stream.NextFloat(0.5, 1.0),
					Cap:       roll.Cap,
					Replenish: roll.Cap / 100,
				}
				break
			}
		}
	}
}

// genRoads lays a road from each settlement to its nearest neighbor so
// early trade has cheap paths to use.
func genRoads(w *world.World) {
	cost := func(x, y int) float64 {
		t := w.TileAt(x, y)
		if t == nil {
			return -1
		}
		if b, ok := rules.BiomeByID(t.Biome); ok {
			return b.MoveCost
		}
		return 1
	}
	ids := w.SortedLocationIDs()
	for _, id := range ids {
		loc := w.Locations[id]
		var nearest *world.Location
		bestDist := 1 << 30
		for _, oid := range ids {
			other := w.Locations[oid]
			if other.ID == loc.ID {
				continue
			}
			d := world.Distance(loc.X, loc.Y, other.X, other.Y)
			if d < bestDist {
				nearest, bestDist = other, d
			}
		}
		if nearest == nil || bestDist > 25 {
			continue
		}
		path := pathfind.Find(w.Width, w.Height,
			pathfind.Point{X: loc.X, Y: loc.Y},
			pathfind.Point{X: nearest.X, Y: nearest.Y}, cost)
		for _, p := range path {
			if t := w.TileAt(p.X, p.Y); t != nil && t.RoadLevel == 0 {
				t.RoadLevel = 1
			}
		}
	}
}

func placeParty(w *world.World) {
	w.Party.MaxActionPoints = 10
	w.Party.ActionPoints = 10
	w.Party.Gold = 50
	w.Party.Inventory = map[string]int{"bread": 6, "ale": 2}
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if !loc.Destroyed {
			w.Party.X, w.Party.Y = loc.X, loc.Y
			return
		}
	}
}

// octaveNoise layers multiple noise frequencies for natural-looking terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
