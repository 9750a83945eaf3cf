// Package rules holds the static rule tables: resource definitions,
// production recipes, biome definitions, and creature definitions. Tables are
// plain Go literals looked up by id, loaded once and never mutated.
package rules

// StorageCategory groups resources for per-category storage capacity.
type StorageCategory string

const (
	CategoryFood     StorageCategory = "food"
	CategoryMaterial StorageCategory = "material"
	CategoryGoods    StorageCategory = "goods"
	CategoryLuxury   StorageCategory = "luxury"
)

// Resource defines one tradeable resource.
type Resource struct {
	ID        string
	Name      string
	BaseValue int     // Crowns per unit at neutral stock
	Weight    float64 // Per unit, for transport capacity
	SpoilRate float64 // Fraction lost per turn
	StackSize int     // Max units per storage stack
	Category  StorageCategory
	IsFood    bool
}

var resources = map[string]Resource{
	"wheat":        {ID: "wheat", Name: "Wheat", BaseValue: 2, Weight: 1.0, SpoilRate: 0.01, StackSize: 50, Category: CategoryFood, IsFood: true},
	"bread":        {ID: "bread", Name: "Bread", BaseValue: 4, Weight: 0.5, SpoilRate: 0.05, StackSize: 30, Category: CategoryFood, IsFood: true},
	"berries":      {ID: "berries", Name: "Berries", BaseValue: 2, Weight: 0.3, SpoilRate: 0.10, StackSize: 20, Category: CategoryFood, IsFood: true},
	"meat":         {ID: "meat", Name: "Meat", BaseValue: 6, Weight: 1.5, SpoilRate: 0.08, StackSize: 25, Category: CategoryFood, IsFood: true},
	"fish":         {ID: "fish", Name: "Fish", BaseValue: 5, Weight: 1.0, SpoilRate: 0.09, StackSize: 25, Category: CategoryFood, IsFood: true},
	"cheese":       {ID: "cheese", Name: "Cheese", BaseValue: 7, Weight: 0.8, SpoilRate: 0.02, StackSize: 20, Category: CategoryFood, IsFood: true},
	"exotic_fruit": {ID: "exotic_fruit", Name: "Exotic fruit", BaseValue: 12, Weight: 0.5, SpoilRate: 0.12, StackSize: 15, Category: CategoryFood, IsFood: true},
	"wood":         {ID: "wood", Name: "Wood", BaseValue: 3, Weight: 2.0, SpoilRate: 0, StackSize: 60, Category: CategoryMaterial},
	"stone":        {ID: "stone", Name: "Stone", BaseValue: 3, Weight: 4.0, SpoilRate: 0, StackSize: 60, Category: CategoryMaterial},
	"iron_ore":     {ID: "iron_ore", Name: "Iron ore", BaseValue: 5, Weight: 3.0, SpoilRate: 0, StackSize: 40, Category: CategoryMaterial},
	"iron":         {ID: "iron", Name: "Iron", BaseValue: 9, Weight: 2.5, SpoilRate: 0, StackSize: 40, Category: CategoryMaterial},
	"wool":         {ID: "wool", Name: "Wool", BaseValue: 4, Weight: 0.5, SpoilRate: 0, StackSize: 40, Category: CategoryMaterial},
	"leather":      {ID: "leather", Name: "Leather", BaseValue: 6, Weight: 0.8, SpoilRate: 0, StackSize: 40, Category: CategoryMaterial},
	"herbs":        {ID: "herbs", Name: "Herbs", BaseValue: 6, Weight: 0.2, SpoilRate: 0.04, StackSize: 20, Category: CategoryMaterial},
	"cloth":        {ID: "cloth", Name: "Cloth", BaseValue: 8, Weight: 0.4, SpoilRate: 0, StackSize: 30, Category: CategoryGoods},
	"tools":        {ID: "tools", Name: "Tools", BaseValue: 14, Weight: 1.5, SpoilRate: 0, StackSize: 20, Category: CategoryGoods},
	"weapons":      {ID: "weapons", Name: "Weapons", BaseValue: 20, Weight: 2.0, SpoilRate: 0, StackSize: 15, Category: CategoryGoods},
	"armor":        {ID: "armor", Name: "Armor", BaseValue: 26, Weight: 4.0, SpoilRate: 0, StackSize: 10, Category: CategoryGoods},
	"ale":          {ID: "ale", Name: "Ale", BaseValue: 5, Weight: 1.2, SpoilRate: 0.02, StackSize: 30, Category: CategoryGoods},
	"gems":         {ID: "gems", Name: "Gems", BaseValue: 40, Weight: 0.1, SpoilRate: 0, StackSize: 10, Category: CategoryLuxury},
}

// ResourceByID returns the resource definition, or false if unknown.
func ResourceByID(id string) (Resource, bool) {
	r, ok := resources[id]
	return r, ok
}

// ResourceIDs returns all resource ids in sorted order.
func ResourceIDs() []string {
	return sortedKeys(resources)
}

// FoodIDs returns all food resource ids in sorted order.
func FoodIDs() []string {
	var out []string
	for _, id := range ResourceIDs() {
		if resources[id].IsFood {
			out = append(out, id)
		}
	}
	return out
}
