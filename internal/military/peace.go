package military

import "github.com/talgya/wildermark/internal/world"

// CleanupArmies removes every army whose country is no longer at war with
// anyone. Linked soldier characters are released back to civilian life.
func CleanupArmies(w *world.World) {
	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if c.Type != "army" {
			continue
		}
		if w.AtWarWithAnyone(c.CountryID) {
			continue
		}
		if ch, ok := w.Characters[c.CharID]; ok {
			ch.OnDuty = false
			ch.Job = "unemployed"
		}
		delete(w.Creatures, id)
	}
}
