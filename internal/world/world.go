// Package world holds the complete mutable simulation state: the tile grid
// and flat entity maps keyed by stable ids. Cross-entity relationships are id
// lookups, never direct references; a missing id means the entity is gone and
// the caller skips the operation. Every subsystem reads and writes through
// the World in the fixed turn sequence, so no locking exists.
package world

import "sort"

// World owns all mutable simulation state.
type World struct {
	Width  int
	Height int
	Seed   int64
	Turn   int

	Season  int
	Weather Weather

	Tiles []Tile // Row-major, index y*Width+x

	Locations  map[int]*Location
	Characters map[int]*Character
	Creatures  map[int]*Creature
	Countries  map[int]*Country
	Relations  []*Relation
	Routes     map[int]*TradeRoute

	Party *Party

	// Event history and the player's legitimate knowledge of it.
	Events      []*GameEvent
	KnownEvents map[int]bool
	News        []NewsEntry

	nextCharacterID int
	nextCreatureID  int
	nextRouteID     int
	nextEventID     int
}

// Weather is the current turn's weather and its simulation modifiers.
type Weather struct {
	Kind       string
	Production float64 // Multiplier on production efficiency
	Movement   float64 // Multiplier on travel cost
}

// Tile is one cell of the grid.
type Tile struct {
	Biome     string
	Elevation float64
	Deposit   *Deposit
	RoadLevel int
	Explored  bool
}

// Deposit is a natural resource source on a tile, regenerating toward Cap.
type Deposit struct {
	Resource  string
	Amount    float64
	Cap       float64
	Replenish float64 // Units regained per turn
}

// New creates an empty world of the given dimensions.
func New(width, height int, seed int64) *World {
	return &World{
		Width:           width,
		Height:          height,
		Seed:            seed,
		Weather:         Weather{Kind: "clear", Production: 1, Movement: 1},
		Tiles:           make([]Tile, width*height),
		Locations:       make(map[int]*Location),
		Characters:      make(map[int]*Character),
		Creatures:       make(map[int]*Creature),
		Countries:       make(map[int]*Country),
		Routes:          make(map[int]*TradeRoute),
		KnownEvents:     make(map[int]bool),
		Party:           &Party{MaxActionPoints: 10, ActionPoints: 10},
		nextCharacterID: 1,
		nextCreatureID:  1,
		nextRouteID:     1,
		nextEventID:     1,
	}
}

// InBounds reports whether (x, y) lies on the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.Width && y < w.Height
}

// TileAt returns the tile at (x, y), or nil when out of bounds.
func (w *World) TileAt(x, y int) *Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.Tiles[y*w.Width+x]
}

// LocationAt returns the location occupying (x, y), or nil. Ruins are
// returned too; callers that need a living settlement check Destroyed.
func (w *World) LocationAt(x, y int) *Location {
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.X == x && loc.Y == y {
			return loc
		}
	}
	return nil
}

// AddCharacter assigns the next character id and registers the character.
func (w *World) AddCharacter(c *Character) *Character {
	c.ID = w.nextCharacterID
	w.nextCharacterID++
	w.Characters[c.ID] = c
	return c
}

// AddCreature assigns the next creature id and registers the creature.
func (w *World) AddCreature(c *Creature) *Creature {
	c.ID = w.nextCreatureID
	w.nextCreatureID++
	w.Creatures[c.ID] = c
	return c
}

// AddRoute assigns the next route id and registers the route at both ends.
func (w *World) AddRoute(r *TradeRoute) *TradeRoute {
	r.ID = w.nextRouteID
	w.nextRouteID++
	w.Routes[r.ID] = r
	if from, ok := w.Locations[r.FromID]; ok {
		from.RouteIDs = append(from.RouteIDs, r.ID)
	}
	if to, ok := w.Locations[r.ToID]; ok {
		to.RouteIDs = append(to.RouteIDs, r.ID)
	}
	return r
}

// AddEvent assigns the next event id and appends to the history.
func (w *World) AddEvent(e *GameEvent) *GameEvent {
	e.ID = w.nextEventID
	w.nextEventID++
	w.Events = append(w.Events, e)
	return e
}

// SetNextIDs restores the id allocators after a load. Values at or below an
// existing id are raised past it.
func (w *World) SetNextIDs(character, creature, route, event int) {
	w.nextCharacterID = max(character, maxKey(w.Characters)+1)
	w.nextCreatureID = max(creature, maxKey(w.Creatures)+1)
	w.nextRouteID = max(route, maxKey(w.Routes)+1)
	for _, e := range w.Events {
		if e.ID >= event {
			event = e.ID + 1
		}
	}
	w.nextEventID = event
}

func maxKey[V any](m map[int]V) int {
	highest := 0
	for k := range m {
		if k > highest {
			highest = k
		}
	}
	return highest
}

// Sorted id accessors. Subsystems iterate entities through these so that map
// ordering never leaks into random draws or mutation order.

func (w *World) SortedLocationIDs() []int  { return sortedIDs(w.Locations) }
func (w *World) SortedCharacterIDs() []int { return sortedIDs(w.Characters) }
func (w *World) SortedCreatureIDs() []int  { return sortedIDs(w.Creatures) }
func (w *World) SortedCountryIDs() []int   { return sortedIDs(w.Countries) }
func (w *World) SortedRouteIDs() []int     { return sortedIDs(w.Routes) }

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Distance returns the Chebyshev distance between two points, matching
// 8-directional movement on the grid.
func Distance(x1, y1, x2, y2 int) int {
	dx := abs(x1 - x2)
	dy := abs(y1 - y2)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }
