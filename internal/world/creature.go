package world

// Creature is any non-character mobile entity, military units included.
// Creatures are removed from the arena once health reaches zero.
type Creature struct {
	ID   int
	Type string
	X, Y int

	Health    float64
	MaxHealth float64
	Attack    float64
	Defense   float64
	Speed     int

	HomeX, HomeY int
	WanderRadius int
	Hostile      bool
	Loot         map[string]int

	// Military unit fields.
	CountryID   int // Owning country for guards/armies
	TargetLocID int // Destination settlement for armies/builders
	HomeLocID   int // Settlement a unit reports to
	CharID      int // Resident character serving as this unit, 0 = none
	IdleTurns   int

	// Herd fields for shepherded sheep.
	OwnerID       int // Shepherd character id, 0 = wild
	LastWool      int // Turn of last wool production
	BreedCooldown int

	// Trader path, consumed one step per turn.
	Path []Point
}

// Point is a tile coordinate.
type Point struct {
	X int
	Y int
}

// StepToward moves the creature up to its speed in tiles toward (tx, ty),
// one axis-step at a time, clamped to the grid.
func (c *Creature) StepToward(w *World, tx, ty int) {
	steps := c.Speed
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		if c.X == tx && c.Y == ty {
			return
		}
		nx, ny := c.X, c.Y
		if tx > c.X {
			nx++
		} else if tx < c.X {
			nx--
		}
		if ty > c.Y {
			ny++
		} else if ty < c.Y {
			ny--
		}
		if w.InBounds(nx, ny) {
			c.X, c.Y = nx, ny
		}
	}
}

// RemoveDeadCreatures drops creatures with health at or below zero. Callers
// run it as a second pass, never during iteration.
func (w *World) RemoveDeadCreatures() []int {
	var removed []int
	for _, id := range w.SortedCreatureIDs() {
		if w.Creatures[id].Health <= 0 {
			removed = append(removed, id)
			delete(w.Creatures, id)
		}
	}
	return removed
}
