// Package weather derives the turn's season and weather. Weather is drawn
// from season-specific weighted probabilities against the turn's random
// stream, then mapped to production and movement modifiers.
package weather

import (
	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

// TurnsPerSeason is the season length in turns; a year is four seasons.
const TurnsPerSeason = 90

// TurnsPerYear is the year length in turns.
const TurnsPerYear = TurnsPerSeason * 4

// SeasonForTurn returns the season index for a turn number.
func SeasonForTurn(turn int) int {
	return (turn / TurnsPerSeason) % 4
}

type entry struct {
	kind       string
	weight     float64
	production float64
	movement   float64
}

// Per-season weather tables. Order matters for the weighted draw.
var tables = map[int][]entry{
	rules.SeasonSpring: {
		{kind: "clear", weight: 4, production: 1.0, movement: 1.0},
		{kind: "rain", weight: 4, production: 0.9, movement: 1.3},
		{kind: "fog", weight: 1.5, production: 0.95, movement: 1.2},
		{kind: "storm", weight: 0.5, production: 0.7, movement: 1.8},
	},
	rules.SeasonSummer: {
		{kind: "clear", weight: 6, production: 1.0, movement: 1.0},
		{kind: "heat", weight: 2, production: 0.85, movement: 1.1},
		{kind: "rain", weight: 1.5, production: 0.95, movement: 1.2},
		{kind: "storm", weight: 0.5, production: 0.7, movement: 1.8},
	},
	rules.SeasonAutumn: {
		{kind: "clear", weight: 4, production: 1.0, movement: 1.0},
		{kind: "rain", weight: 3, production: 0.9, movement: 1.3},
		{kind: "fog", weight: 2, production: 0.9, movement: 1.3},
		{kind: "storm", weight: 1, production: 0.7, movement: 1.8},
	},
	rules.SeasonWinter: {
		{kind: "clear", weight: 3, production: 1.0, movement: 1.0},
		{kind: "snow", weight: 4, production: 0.75, movement: 1.6},
		{kind: "fog", weight: 1.5, production: 0.9, movement: 1.3},
		{kind: "blizzard", weight: 1, production: 0.5, movement: 2.5},
	},
}

// Roll draws this turn's weather for a season.
func Roll(stream *rng.Stream, season int) world.Weather {
	table, ok := tables[season]
	if !ok {
		return world.Weather{Kind: "clear", Production: 1, Movement: 1}
	}
	weights := make([]float64, len(table))
	for i, e := range table {
		weights[i] = e.weight
	}
	picked := rng.WeightedPick(stream, table, weights)
	return world.Weather{Kind: picked.kind, Production: picked.production, Movement: picked.movement}
}
