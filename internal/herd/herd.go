// Package herd runs shepherding: owned sheep stay near their shepherd,
// grow wool for the home settlement, and breed under a per-owner cap.
package herd

import (
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/world"
)

const (
	claimRadius   = 6
	gatherRadius  = 2
	maxHerdSize   = 6
	woolInterval  = 10
	breedChance   = 0.1
	breedCooldown = 30
)

// Tick runs one herding pass: orphan cleanup, claiming strays, gathering,
// wool production, and breeding, in that order.
func Tick(w *world.World, stream *rng.Stream) {
	cleanupOrphans(w)
	for _, id := range w.SortedCharacterIDs() {
		shepherd := w.Characters[id]
		if !shepherd.Alive || shepherd.Job != "shepherd" {
			continue
		}
		flock := flockOf(w, shepherd.ID)
		flock = claimStrays(w, shepherd, flock)
		for _, sheep := range flock {
			gather(w, shepherd, sheep)
			produceWool(w, shepherd, sheep, stream)
		}
		breed(w, shepherd, flock, stream)
	}
	tickCooldowns(w)
}

// cleanupOrphans releases sheep whose owner died or left shepherding.
func cleanupOrphans(w *world.World) {
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type != "sheep" || c.OwnerID == 0 {
			continue
		}
		owner, ok := w.Characters[c.OwnerID]
		if !ok || !owner.Alive || owner.Job != "shepherd" {
			c.OwnerID = 0
		}
	}
}

func flockOf(w *world.World, ownerID int) []*world.Creature {
	var flock []*world.Creature
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == "sheep" && c.OwnerID == ownerID && c.Health > 0 {
			flock = append(flock, c)
		}
	}
	return flock
}

// claimStrays adopts unowned sheep near the shepherd up to the herd cap.
func claimStrays(w *world.World, shepherd *world.Character, flock []*world.Creature) []*world.Creature {
	for _, id := range w.SortedCreatureIDs() {
		if len(flock) >= maxHerdSize {
			break
		}
		c := w.Creatures[id]
		if c.Type != "sheep" || c.OwnerID != 0 || c.Health <= 0 {
			continue
		}
		if world.Distance(shepherd.X, shepherd.Y, c.X, c.Y) > claimRadius {
			continue
		}
		c.OwnerID = shepherd.ID
		flock = append(flock, c)
	}
	return flock
}

// gather walks a strayed sheep back toward its shepherd.
func gather(w *world.World, shepherd *world.Character, sheep *world.Creature) {
	if world.Distance(shepherd.X, shepherd.Y, sheep.X, sheep.Y) <= gatherRadius {
		return
	}
	sheep.StepToward(w, shepherd.X, shepherd.Y)
}

// produceWool shears a sheep on its interval and deposits the wool at the
// shepherd's home settlement.
func produceWool(w *world.World, shepherd *world.Character, sheep *world.Creature, stream *rng.Stream) {
	if w.Turn-sheep.LastWool < woolInterval {
		return
	}
	home, ok := w.Locations[shepherd.HomeID]
	if !ok || home.Destroyed {
		return
	}
	home.AddResource("wool", stream.NextInt(1, 2), 0.6)
	sheep.LastWool = w.Turn
}

// breed spawns a lamb when two sheep in the flock are off cooldown and the
// herd is under its cap.
func breed(w *world.World, shepherd *world.Character, flock []*world.Creature, stream *rng.Stream) {
	if len(flock) < 2 || len(flock) >= maxHerdSize {
		return
	}
	var ready []*world.Creature
	for _, sheep := range flock {
		if sheep.BreedCooldown == 0 {
			ready = append(ready, sheep)
		}
	}
	if len(ready) < 2 || !stream.Chance(breedChance) {
		return
	}
	ram, ewe := ready[0], ready[1]
	ram.BreedCooldown = breedCooldown
	ewe.BreedCooldown = breedCooldown
	w.AddCreature(&world.Creature{
		Type: "sheep",
		X:    ewe.X, Y: ewe.Y,
		Health: ewe.MaxHealth, MaxHealth: ewe.MaxHealth,
		Attack: ewe.Attack, Defense: ewe.Defense, Speed: ewe.Speed,
		HomeX: ewe.HomeX, HomeY: ewe.HomeY, WanderRadius: ewe.WanderRadius,
		OwnerID:       shepherd.ID,
		LastWool:      w.Turn,
		BreedCooldown: breedCooldown,
	})
}

func tickCooldowns(w *world.World) {
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type == "sheep" && c.BreedCooldown > 0 {
			c.BreedCooldown--
		}
	}
}
