package world

import "github.com/talgya/wildermark/internal/rules"

// LocationType classifies a settlement.
type LocationType string

const (
	LocVillage LocationType = "village"
	LocTown    LocationType = "town"
	LocCity    LocationType = "city"
	LocCastle  LocationType = "castle"
	LocPort    LocationType = "port"
	LocFarm    LocationType = "farm"
	LocRuins   LocationType = "ruins"
)

// Location is a settlement: buildings, storage, residents, and political
// affiliation. Locations are never deleted, only marked destroyed; a builder
// unit may later rebuild a ruin.
type Location struct {
	ID           int
	Name         string
	Type         LocationType
	OriginalType LocationType // Preserved when the settlement becomes ruins
	X, Y         int

	Capacity    int
	ResidentIDs []int
	GarrisonIDs []int

	Buildings []*Building
	Sites     []*ProductionSite
	Storage   []*Stack
	// Per-category storage capacity in units.
	StorageCap map[rules.StorageCategory]int

	Prices   map[string]int
	RouteIDs []int

	DefenseLevel int // Wall level
	CountryID    int

	Prosperity float64 // 0–100
	Safety     float64 // 0–100
	Happiness  float64 // 0–100

	Durability   float64 // 0–100; reaching 0 destroys the settlement
	BurningTurns int
	GrowthPoints float64

	Destroyed bool
}

// Building is one structure inside a location.
type Building struct {
	Type        string
	Condition   float64 // 0–100
	WorkerID    int     // 0 = unassigned
	Operational bool
}

// ProductionSite tracks one in-progress recipe for a (building type, recipe)
// pair. Progress crossing 100 completes the recipe.
type ProductionSite struct {
	BuildingType string
	RecipeID     string
	Progress     float64
	Efficiency   float64
}

// Stack is one pile of a resource in storage.
type Stack struct {
	Resource string
	Quantity int
	Quality  float64 // 0–1
	Age      int     // Turns since produced
}

// CountResource sums stored units of a resource across stacks.
func (l *Location) CountResource(resource string) int {
	total := 0
	for _, s := range l.Storage {
		if s.Resource == resource {
			total += s.Quantity
		}
	}
	return total
}

// CategoryStock sums stored units in one storage category.
func (l *Location) CategoryStock(cat rules.StorageCategory) int {
	total := 0
	for _, s := range l.Storage {
		if def, ok := rules.ResourceByID(s.Resource); ok && def.Category == cat {
			total += s.Quantity
		}
	}
	return total
}

// AddResource stores up to qty units, truncating silently at the category
// capacity, and returns the amount actually stored. Units merge into an
// existing stack of the same resource below its stack-size cap before a new
// stack is opened.
func (l *Location) AddResource(resource string, qty int, quality float64) int {
	if qty <= 0 {
		return 0
	}
	def, ok := rules.ResourceByID(resource)
	if !ok {
		return 0
	}

	room := qty
	if cap, capped := l.StorageCap[def.Category]; capped {
		free := cap - l.CategoryStock(def.Category)
		if free < room {
			room = free
		}
	}
	if room <= 0 {
		return 0
	}

	remaining := room
	for _, s := range l.Storage {
		if remaining == 0 {
			break
		}
		if s.Resource != resource || s.Quantity >= def.StackSize {
			continue
		}
		fit := def.StackSize - s.Quantity
		if fit > remaining {
			fit = remaining
		}
		// Merge quality by unit-weighted average.
		s.Quality = Clamp01((s.Quality*float64(s.Quantity) + quality*float64(fit)) / float64(s.Quantity+fit))
		s.Quantity += fit
		remaining -= fit
	}
	for remaining > 0 {
		take := remaining
		if take > def.StackSize {
			take = def.StackSize
		}
		l.Storage = append(l.Storage, &Stack{Resource: resource, Quantity: take, Quality: Clamp01(quality)})
		remaining -= take
	}
	return room
}

// RemoveResource removes up to qty units, oldest stacks first, and returns
// the amount removed. Emptied stacks are dropped.
func (l *Location) RemoveResource(resource string, qty int) int {
	if qty <= 0 {
		return 0
	}
	removed := 0
	for _, s := range l.Storage {
		if removed == qty {
			break
		}
		if s.Resource != resource {
			continue
		}
		take := qty - removed
		if take > s.Quantity {
			take = s.Quantity
		}
		s.Quantity -= take
		removed += take
	}
	l.compactStorage()
	return removed
}

// HasResources reports whether storage covers every input quantity.
func (l *Location) HasResources(inputs map[string]int) bool {
	for res, qty := range inputs {
		if l.CountResource(res) < qty {
			return false
		}
	}
	return true
}

func (l *Location) compactStorage() {
	kept := l.Storage[:0]
	for _, s := range l.Storage {
		if s.Quantity > 0 {
			kept = append(kept, s)
		}
	}
	l.Storage = kept
}

// RemoveResident drops a character id from the resident list.
func (l *Location) RemoveResident(id int) {
	l.ResidentIDs = removeID(l.ResidentIDs, id)
}

// RemoveGarrison drops a character id from the garrison list.
func (l *Location) RemoveGarrison(id int) {
	l.GarrisonIDs = removeID(l.GarrisonIDs, id)
}

func removeID(ids []int, id int) []int {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}

// SiteFor returns the production site for a (building type, recipe) pair,
// creating it on first use.
func (l *Location) SiteFor(buildingType, recipeID string) *ProductionSite {
	for _, site := range l.Sites {
		if site.BuildingType == buildingType && site.RecipeID == recipeID {
			return site
		}
	}
	site := &ProductionSite{BuildingType: buildingType, RecipeID: recipeID}
	l.Sites = append(l.Sites, site)
	return site
}

// FoodConsumptionRate returns per-resident food units needed per turn.
// Denser settlement types consume more per capita.
func (l *Location) FoodConsumptionRate() float64 {
	switch l.Type {
	case LocCity, LocCastle, LocPort:
		return 0.7
	case LocTown:
		return 0.6
	default:
		return 0.5
	}
}

// Wealthy reports whether the settlement draws from the luxury-first food
// priority list during consumption.
func (l *Location) Wealthy() bool {
	switch l.Type {
	case LocCity, LocTown, LocCastle, LocPort:
		return true
	default:
		return false
	}
}
