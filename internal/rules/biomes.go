package rules

// Season indices. A year is four seasons of SeasonTurns turns each.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// SeasonName returns a human-readable season name.
func SeasonName(season int) string {
	switch season {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// Biome defines terrain behavior: per-season production multipliers and the
// base movement cost consumed by the pathfinder cost function.
type Biome struct {
	ID         string
	Name       string
	Production [4]float64 // Indexed by season; summer is the 1.0 baseline
	MoveCost   float64    // 1.0 = open ground; <0 means impassable
	Water      bool
}

var biomes = map[string]Biome{
	"grassland": {ID: "grassland", Name: "Grassland", Production: [4]float64{0.9, 1.0, 1.1, 0.5}, MoveCost: 1.0},
	"forest":    {ID: "forest", Name: "Forest", Production: [4]float64{0.9, 1.0, 1.0, 0.6}, MoveCost: 1.5},
	"hills":     {ID: "hills", Name: "Hills", Production: [4]float64{0.8, 1.0, 0.9, 0.5}, MoveCost: 1.8},
	"mountains": {ID: "mountains", Name: "Mountains", Production: [4]float64{0.7, 1.0, 0.8, 0.4}, MoveCost: 3.0},
	"desert":    {ID: "desert", Name: "Desert", Production: [4]float64{0.6, 0.4, 0.6, 0.7}, MoveCost: 1.4},
	"swamp":     {ID: "swamp", Name: "Swamp", Production: [4]float64{0.8, 1.0, 0.9, 0.4}, MoveCost: 2.5},
	"tundra":    {ID: "tundra", Name: "Tundra", Production: [4]float64{0.5, 0.8, 0.5, 0.2}, MoveCost: 1.6},
	"beach":     {ID: "beach", Name: "Beach", Production: [4]float64{0.8, 1.0, 0.9, 0.6}, MoveCost: 1.2},
	"water":     {ID: "water", Name: "Water", Production: [4]float64{0, 0, 0, 0}, MoveCost: -1, Water: true},
}

// BiomeByID returns the biome definition, or false if unknown.
func BiomeByID(id string) (Biome, bool) {
	b, ok := biomes[id]
	return b, ok
}

// SeasonalProduction returns the production multiplier for a biome and
// season. Unknown biomes produce at the summer baseline.
func SeasonalProduction(biomeID string, season int) float64 {
	b, ok := biomes[biomeID]
	if !ok || season < 0 || season > 3 {
		return 1.0
	}
	return b.Production[season]
}
