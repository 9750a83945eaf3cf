package event

import "github.com/talgya/wildermark/internal/world"

const (
	witnessRadius = 8
	maxEventAge   = 120
)

// Witness marks events the party saw happen: anything with a location
// within witness radius of the party, and any major or catastrophic event
// with no location at all. Run at the end of the turn so it covers events
// from every phase; only the current turn's events qualify.
func Witness(w *world.World) {
	for _, e := range w.Events {
		if w.KnownEvents[e.ID] || e.Turn != w.Turn {
			continue
		}
		if e.LocationID != 0 {
			loc, ok := w.Locations[e.LocationID]
			if !ok {
				continue
			}
			if world.Distance(w.Party.X, w.Party.Y, loc.X, loc.Y) <= witnessRadius {
				learn(w, e)
			}
			continue
		}
		if e.Severity == world.SeverityMajor || e.Severity == world.SeverityCatastrophic {
			learn(w, e)
		}
	}
}

// Discover runs when the party stands on a settlement tile: travellers'
// gossip covers events from that settlement, events whose origin lies
// within their spread radius of it, and world-wide news.
func Discover(w *world.World) {
	here := w.LocationAt(w.Party.X, w.Party.Y)
	if here == nil {
		return
	}
	for _, e := range w.Events {
		if w.KnownEvents[e.ID] {
			continue
		}
		if e.LocationID == 0 {
			if e.Severity.SpreadRadius() >= 1<<20 {
				learn(w, e)
			}
			continue
		}
		if e.LocationID == here.ID {
			learn(w, e)
			continue
		}
		origin, ok := w.Locations[e.LocationID]
		if !ok {
			continue
		}
		if world.Distance(here.X, here.Y, origin.X, origin.Y) <= e.Severity.SpreadRadius() {
			learn(w, e)
		}
	}
}

func learn(w *world.World, e *world.GameEvent) {
	w.KnownEvents[e.ID] = true
	w.AddNews(e.Severity, e.Description)
}

// Prune drops resolved and stale events from history. Known-event marks for
// pruned ids stay; the news log is already append-only.
func Prune(w *world.World) {
	kept := w.Events[:0]
	for _, e := range w.Events {
		if e.Resolved || w.Turn-e.Turn > maxEventAge {
			continue
		}
		kept = append(kept, e)
	}
	w.Events = kept
}
