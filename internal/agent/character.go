// Package agent decides one action per character and per creature each turn.
// Characters pick from a weighted option list built from needs, traits, and
// circumstance; creatures run type-specific state machines. The option list
// order and the single ordered weighted draw are part of the observable
// behavior.
package agent

import (
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/world"
)

type option struct {
	kind   world.ActionKind
	weight float64
	// Optional payload for the chosen action.
	targetX, targetY int
	targetID         int
	note             string
}

// TickCharacters decays needs, decides, and executes an action for every
// living adult character. Characters mid-travel continue until arrival.
func TickCharacters(w *world.World, stream *rng.Stream) {
	for _, id := range w.SortedCharacterIDs() {
		c := w.Characters[id]
		if !c.Alive {
			continue
		}
		c.Needs.Decay()
		if c.Age < 10 {
			continue
		}

		if c.Action.Kind == world.ActTraveling && c.Action.TurnsLeft > 0 {
			continueTravel(w, c)
			continue
		}

		opts := buildOptions(w, c, stream)
		chosen := chooseOption(stream, opts)
		execute(w, c, chosen, stream)
	}
}

func continueTravel(w *world.World, c *world.Character) {
	if c.X < c.Action.TargetX {
		c.X++
	} else if c.X > c.Action.TargetX {
		c.X--
	}
	if c.Y < c.Action.TargetY {
		c.Y++
	} else if c.Y > c.Action.TargetY {
		c.Y--
	}
	c.Action.TurnsLeft--
	if (c.X == c.Action.TargetX && c.Y == c.Action.TargetY) || c.Action.TurnsLeft <= 0 {
		c.Action = world.Action{Kind: world.ActIdle}
	}
}

// buildOptions assembles the weighted option list in fixed order.
func buildOptions(w *world.World, c *world.Character, stream *rng.Stream) []option {
	var opts []option

	if employed(c) {
		purposeDeficit := (100 - c.Needs.Purpose) / 50
		opts = append(opts, option{
			kind:   world.ActWorking,
			weight: (0.5 + purposeDeficit) * (1.5 - c.Traits.Curiosity),
		})
	}

	if c.Needs.Food < 50 && c.HomeID != 0 {
		opts = append(opts, option{
			kind:   world.ActTrading,
			weight: 2 * (100 - c.Needs.Food) / 25,
			note:   "seek food",
		})
	}

	if c.Needs.Social < 60 && (c.HasRelation(world.RelFriend) || c.HasRelation(world.RelSpouse)) {
		opts = append(opts, option{
			kind:   world.ActSocializing,
			weight: 1.5 * (0.5 + c.Traits.Kindness),
		})
	}

	if c.Health < 0.7*c.MaxHealth {
		opts = append(opts, option{kind: world.ActResting, weight: 2})
	}

	opts = append(opts, option{kind: world.ActIdle, weight: 0.5})

	if c.Traits.Curiosity > 0.7 && stream.Chance(0.02*c.Traits.Wanderlust) {
		if tx, ty, ok := nearestUnexplored(w, c.X, c.Y, 5); ok {
			opts = append(opts, option{kind: world.ActExploring, weight: 1, targetX: tx, targetY: ty})
		}
	}

	if c.Traits.Ambition > 0.8 && c.Age >= 16 && stream.Chance(0.005) {
		opts = append(opts, option{kind: world.ActWorking, weight: 0.3, note: "career change"})
	}
	if c.Traits.Courage > 0.8 && c.Traits.Curiosity > 0.6 && c.Age >= 18 && c.Age <= 40 && stream.Chance(0.002) {
		opts = append(opts, option{kind: world.ActExploring, weight: 0.2, note: "become adventurer"})
	}

	if c.Age >= 16 && c.Age <= 50 && !c.HasRelation(world.RelSpouse) {
		opts = append(opts, option{kind: world.ActSocializing, weight: 0.4, note: "seek marriage"})
	}

	return opts
}

// chooseOption draws once against the summed non-negative weights, walking
// the list in order. Float edge cases fall through to the last option.
func chooseOption(stream *rng.Stream, opts []option) option {
	if len(opts) == 0 {
		return option{kind: world.ActIdle}
	}
	weights := make([]float64, len(opts))
	for i, o := range opts {
		weights[i] = o.weight
	}
	return rng.WeightedPick(stream, opts, weights)
}

func execute(w *world.World, c *world.Character, o option, stream *rng.Stream) {
	switch o.note {
	case "career change":
		changeCareer(c, stream)
		return
	case "become adventurer":
		c.Job = "adventurer"
		c.HomeID = 0
		c.Action = world.Action{Kind: world.ActExploring}
		return
	case "seek marriage":
		seekMarriage(w, c)
		return
	case "seek food":
		seekFood(w, c)
		return
	}

	switch o.kind {
	case world.ActWorking:
		c.Action = world.Action{Kind: world.ActWorking}
		c.Needs.Purpose = world.Clamp(c.Needs.Purpose+3, 0, 100)
	case world.ActSocializing:
		socialize(w, c)
	case world.ActResting:
		c.Action = world.Action{Kind: world.ActResting}
		c.Health = world.Clamp(c.Health+0.1*c.MaxHealth, 0, c.MaxHealth)
	case world.ActExploring:
		dist := world.Distance(c.X, c.Y, o.targetX, o.targetY)
		c.Action = world.Action{Kind: world.ActTraveling, TargetX: o.targetX, TargetY: o.targetY, TurnsLeft: dist}
	default:
		c.Action = world.Action{Kind: world.ActIdle}
	}
}

func employed(c *world.Character) bool {
	return c.Job != "" && c.Job != "unemployed"
}

// seekFood eats from home storage (respecting nothing beyond plain removal;
// the settlement reserve applies to communal consumption, not a resident
// fetching a meal) or from the character's own bag.
func seekFood(w *world.World, c *world.Character) {
	c.Action = world.Action{Kind: world.ActTrading}
	if home, ok := w.Locations[c.HomeID]; ok && !home.Destroyed {
		for _, res := range []string{"bread", "berries", "fish", "meat", "wheat"} {
			if home.RemoveResource(res, 1) == 1 {
				c.Needs.Food = world.Clamp(c.Needs.Food+30, 0, 100)
				return
			}
		}
	}
	for res, qty := range c.Inventory {
		if qty > 0 && isFood(res) {
			c.Inventory[res]--
			c.Needs.Food = world.Clamp(c.Needs.Food+30, 0, 100)
			return
		}
	}
}

func isFood(res string) bool {
	switch res {
	case "bread", "berries", "wheat", "fish", "meat", "cheese", "exotic_fruit":
		return true
	}
	return false
}

func socialize(w *world.World, c *world.Character) {
	c.Action = world.Action{Kind: world.ActSocializing}
	c.Needs.Social = world.Clamp(c.Needs.Social+20, 0, 100)
	// Strengthen the first friendly edge.
	for i := range c.Relationships {
		r := &c.Relationships[i]
		if r.Kind == world.RelFriend || r.Kind == world.RelSpouse {
			r.Strength = world.Clamp(r.Strength+2, -100, 100)
			return
		}
	}
}

func changeCareer(c *world.Character, stream *rng.Stream) {
	careers := []string{"farmer", "baker", "smith", "fisher", "brewer", "weaver", "merchant"}
	c.Job = rng.Pick(stream, careers)
	c.Action = world.Action{Kind: world.ActWorking}
}

// seekMarriage pairs the character with another unmarried adult resident of
// the same settlement, creating spouse edges both ways.
func seekMarriage(w *world.World, c *world.Character) {
	c.Action = world.Action{Kind: world.ActSocializing}
	home, ok := w.Locations[c.HomeID]
	if !ok {
		return
	}
	for _, id := range home.ResidentIDs {
		if id == c.ID {
			continue
		}
		other, ok := w.Characters[id]
		if !ok || !other.Alive || other.Age < 16 || other.Age > 50 || other.HasRelation(world.RelSpouse) {
			continue
		}
		c.Relationships = append(c.Relationships, world.Relationship{TargetID: other.ID, Kind: world.RelSpouse, Strength: 50})
		other.Relationships = append(other.Relationships, world.Relationship{TargetID: c.ID, Kind: world.RelSpouse, Strength: 50})
		return
	}
	// No match this turn; the outing still helps.
	c.Needs.Social = world.Clamp(c.Needs.Social+5, 0, 100)
}

func nearestUnexplored(w *world.World, x, y, radius int) (int, int, bool) {
	for r := 1; r <= radius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				tile := w.TileAt(x+dx, y+dy)
				if tile != nil && !tile.Explored {
					return x + dx, y + dy, true
				}
			}
		}
	}
	return 0, 0, false
}
