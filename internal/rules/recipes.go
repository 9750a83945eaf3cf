package rules

import "sort"

// Recipe defines one production chain executed by a building.
type Recipe struct {
	ID          string
	Building    string         // Building type that can run this recipe
	Inputs      map[string]int // Resource id → quantity consumed
	Outputs     map[string]int // Resource id → quantity produced
	Duration    int            // Turns at efficiency 1.0
	Skill       string         // Skill the worker applies
	MinSkill    float64        // Minimum skill level 0–100
	BaseQuality float64        // Output quality before skill bonus
}

// Recipe list order matters: production picks the first recipe registered to
// a building type whose worker and inputs qualify.
var recipes = []Recipe{
	{ID: "grow_wheat", Building: "farm", Inputs: map[string]int{}, Outputs: map[string]int{"wheat": 6}, Duration: 4, Skill: "farming", MinSkill: 0, BaseQuality: 0.5},
	{ID: "gather_berries", Building: "farm", Inputs: map[string]int{}, Outputs: map[string]int{"berries": 4}, Duration: 2, Skill: "farming", MinSkill: 0, BaseQuality: 0.5},
	{ID: "bake_bread", Building: "bakery", Inputs: map[string]int{"wheat": 3}, Outputs: map[string]int{"bread": 4}, Duration: 2, Skill: "cooking", MinSkill: 0, BaseQuality: 0.5},
	{ID: "catch_fish", Building: "fishery", Inputs: map[string]int{}, Outputs: map[string]int{"fish": 4}, Duration: 3, Skill: "fishing", MinSkill: 0, BaseQuality: 0.5},
	{ID: "cut_wood", Building: "sawmill", Inputs: map[string]int{}, Outputs: map[string]int{"wood": 5}, Duration: 3, Skill: "woodcutting", MinSkill: 0, BaseQuality: 0.5},
	{ID: "mine_ore", Building: "mine", Inputs: map[string]int{}, Outputs: map[string]int{"iron_ore": 3, "stone": 2}, Duration: 4, Skill: "mining", MinSkill: 0, BaseQuality: 0.5},
	{ID: "smelt_iron", Building: "smelter", Inputs: map[string]int{"iron_ore": 2, "wood": 1}, Outputs: map[string]int{"iron": 2}, Duration: 3, Skill: "smithing", MinSkill: 10, BaseQuality: 0.5},
	{ID: "forge_tools", Building: "smithy", Inputs: map[string]int{"iron": 2, "wood": 1}, Outputs: map[string]int{"tools": 2}, Duration: 4, Skill: "smithing", MinSkill: 20, BaseQuality: 0.55},
	{ID: "forge_weapons", Building: "smithy", Inputs: map[string]int{"iron": 3, "wood": 1}, Outputs: map[string]int{"weapons": 2}, Duration: 5, Skill: "smithing", MinSkill: 35, BaseQuality: 0.55},
	{ID: "forge_armor", Building: "smithy", Inputs: map[string]int{"iron": 3, "leather": 2}, Outputs: map[string]int{"armor": 1}, Duration: 6, Skill: "smithing", MinSkill: 45, BaseQuality: 0.6},
	{ID: "brew_ale", Building: "brewery", Inputs: map[string]int{"wheat": 2}, Outputs: map[string]int{"ale": 3}, Duration: 3, Skill: "cooking", MinSkill: 10, BaseQuality: 0.5},
	{ID: "weave_cloth", Building: "weaver", Inputs: map[string]int{"wool": 3}, Outputs: map[string]int{"cloth": 2}, Duration: 3, Skill: "crafting", MinSkill: 10, BaseQuality: 0.5},
	{ID: "tan_leather", Building: "tannery", Inputs: map[string]int{"meat": 2}, Outputs: map[string]int{"leather": 2}, Duration: 3, Skill: "crafting", MinSkill: 5, BaseQuality: 0.5},
	{ID: "make_cheese", Building: "dairy", Inputs: map[string]int{"wheat": 1}, Outputs: map[string]int{"cheese": 2}, Duration: 3, Skill: "cooking", MinSkill: 15, BaseQuality: 0.55},
}

// RecipesForBuilding returns the recipes registered to a building type, in
// registration order.
func RecipesForBuilding(building string) []Recipe {
	var out []Recipe
	for _, r := range recipes {
		if r.Building == building {
			out = append(out, r)
		}
	}
	return out
}

// RecipeByID returns a recipe definition, or false if unknown.
func RecipeByID(id string) (Recipe, bool) {
	for _, r := range recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
