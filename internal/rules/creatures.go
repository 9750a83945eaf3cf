package rules

// CreatureDef defines base stats for one creature type. Military units
// (guards, armies, hunters, builders) share the creature table; their stats
// scale further at spawn time.
type CreatureDef struct {
	ID           string
	Name         string
	Health       float64
	Attack       float64
	Defense      float64
	Speed        int // Tiles per turn
	PackMin      int
	PackMax      int
	WanderRadius int
	Hostile      bool
	Prey         bool // Huntable by on-duty hunters
	Loot         map[string]int
}

var creatures = map[string]CreatureDef{
	"wolf":    {ID: "wolf", Name: "Wolf", Health: 25, Attack: 8, Defense: 3, Speed: 2, PackMin: 2, PackMax: 5, WanderRadius: 8, Hostile: true, Loot: map[string]int{"meat": 1, "leather": 1}},
	"bear":    {ID: "bear", Name: "Bear", Health: 60, Attack: 14, Defense: 6, Speed: 1, PackMin: 1, PackMax: 2, WanderRadius: 6, Hostile: true, Loot: map[string]int{"meat": 3, "leather": 2}},
	"deer":    {ID: "deer", Name: "Deer", Health: 15, Attack: 1, Defense: 1, Speed: 3, PackMin: 2, PackMax: 6, WanderRadius: 10, Prey: true, Loot: map[string]int{"meat": 2, "leather": 1}},
	"sheep":   {ID: "sheep", Name: "Sheep", Health: 12, Attack: 1, Defense: 1, Speed: 1, PackMin: 3, PackMax: 8, WanderRadius: 4, Prey: true, Loot: map[string]int{"meat": 1, "wool": 2}},
	"boar":    {ID: "boar", Name: "Boar", Health: 30, Attack: 9, Defense: 4, Speed: 2, PackMin: 1, PackMax: 3, WanderRadius: 7, Prey: true, Loot: map[string]int{"meat": 3, "leather": 1}},
	"dragon":  {ID: "dragon", Name: "Dragon", Health: 300, Attack: 45, Defense: 20, Speed: 4, PackMin: 1, PackMax: 1, WanderRadius: 20, Hostile: true, Loot: map[string]int{"gems": 5}},
	"bandit":  {ID: "bandit", Name: "Bandit", Health: 35, Attack: 10, Defense: 5, Speed: 2, PackMin: 2, PackMax: 5, WanderRadius: 12, Hostile: true, Loot: map[string]int{"weapons": 1}},
	"guard":   {ID: "guard", Name: "Guard", Health: 50, Attack: 12, Defense: 8, Speed: 2, PackMin: 1, PackMax: 1, WanderRadius: 5},
	"hunter":  {ID: "hunter", Name: "Hunter", Health: 35, Attack: 10, Defense: 4, Speed: 2, PackMin: 1, PackMax: 1, WanderRadius: 12},
	"army":    {ID: "army", Name: "Army", Health: 200, Attack: 30, Defense: 15, Speed: 2, PackMin: 1, PackMax: 3, WanderRadius: 50},
	"builder": {ID: "builder", Name: "Builder", Health: 30, Attack: 3, Defense: 3, Speed: 2, PackMin: 1, PackMax: 1, WanderRadius: 50},
	"trader":  {ID: "trader", Name: "Trader", Health: 30, Attack: 4, Defense: 3, Speed: 2, PackMin: 1, PackMax: 1, WanderRadius: 50},
}

// CreatureByID returns a creature definition, or false if unknown.
func CreatureByID(id string) (CreatureDef, bool) {
	c, ok := creatures[id]
	return c, ok
}

// CreatureIDs returns all creature type ids in sorted order.
func CreatureIDs() []string {
	return sortedKeys(creatures)
}
