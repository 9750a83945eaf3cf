package economy

import (
	"math"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// runProduction advances every operational, staffed building by one turn.
// A building runs at most one recipe per turn: the first registered recipe
// whose worker meets the skill floor and whose inputs are in storage. The
// first-match order is part of the observable behavior.
func runProduction(w *world.World, loc *world.Location, stream *rng.Stream) {
	seasonal := rules.SeasonalProduction(biomeOf(w, loc), w.Season)

	for _, b := range loc.Buildings {
		if !b.Operational || b.WorkerID == 0 {
			continue
		}
		worker, ok := w.Characters[b.WorkerID]
		if !ok || !worker.Alive {
			continue
		}

		var chosen *rules.Recipe
		for _, r := range rules.RecipesForBuilding(b.Type) {
			if worker.Skills[r.Skill] < r.MinSkill {
				continue
			}
			if !loc.HasResources(r.Inputs) {
				continue
			}
			chosen = &r
			break
		}
		if chosen == nil {
			continue
		}

		skill := worker.Skills[chosen.Skill]
		site := loc.SiteFor(b.Type, chosen.ID)
		site.Efficiency = (0.5 + math.Min(skill/100, 0.5)) * seasonal * w.Weather.Production
		site.Progress += site.Efficiency * (100 / float64(chosen.Duration))

		if site.Progress < 100 {
			continue
		}
		completeRecipe(loc, worker, *chosen, skill, stream)
		site.Progress = 0
	}
}

// completeRecipe atomically removes inputs and deposits outputs. Availability
// was checked at selection time this turn, so removal cannot come up short.
func completeRecipe(loc *world.Location, worker *world.Character, r rules.Recipe, skill float64, stream *rng.Stream) {
	for res, qty := range r.Inputs {
		loc.RemoveResource(res, qty)
	}

	quality := math.Min(1, r.BaseQuality+skill/200+stream.NextFloat(-0.1, 0.1))
	for _, res := range sortedResourceKeys(r.Outputs) {
		loc.AddResource(res, r.Outputs[res], quality)
	}

	if worker.Skills == nil {
		worker.Skills = make(map[string]float64)
	}
	worker.Skills[r.Skill] = world.Clamp(worker.Skills[r.Skill]+stream.NextFloat(0.2, 1.0), 0, 100)
	worker.Needs.Purpose = world.Clamp(worker.Needs.Purpose+2, 0, 100)
}

func biomeOf(w *world.World, loc *world.Location) string {
	if tile := w.TileAt(loc.X, loc.Y); tile != nil {
		return tile.Biome
	}
	return "grassland"
}

func sortedResourceKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion sort keeps output order stable without importing sort for two
	// or three keys.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
