package world

// Country is a political entity owning settlements.
type Country struct {
	ID        int
	Name      string
	CapitalID int // Location id
}

// DiplomacyKind types a relation between two countries.
type DiplomacyKind string

const (
	DipNeutral  DiplomacyKind = "neutral"
	DipRivalry  DiplomacyKind = "rivalry"
	DipWar      DiplomacyKind = "war"
	DipTruce    DiplomacyKind = "truce"
	DipAlliance DiplomacyKind = "alliance"
)

// Relation is a symmetric diplomatic edge between two countries.
type Relation struct {
	A, B     int
	Kind     DiplomacyKind
	Strength float64 // -100..100
	Since    int     // Turn the current kind was set
}

// RelationBetween returns the relation edge between two countries, or nil.
func (w *World) RelationBetween(a, b int) *Relation {
	for _, r := range w.Relations {
		if (r.A == a && r.B == b) || (r.A == b && r.B == a) {
			return r
		}
	}
	return nil
}

// AtWar reports whether two countries are at war.
func (w *World) AtWar(a, b int) bool {
	r := w.RelationBetween(a, b)
	return r != nil && r.Kind == DipWar
}

// AtWarWithAnyone reports whether a country has any active war.
func (w *World) AtWarWithAnyone(country int) bool {
	for _, r := range w.Relations {
		if r.Kind == DipWar && (r.A == country || r.B == country) {
			return true
		}
	}
	return false
}

// CountrySettlements returns the non-destroyed settlements of a country in
// id order.
func (w *World) CountrySettlements(country int) []*Location {
	var out []*Location
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if loc.CountryID == country && !loc.Destroyed {
			out = append(out, loc)
		}
	}
	return out
}

// LargestSettlement returns the country's most populous non-destroyed
// settlement, or nil. Ties break toward the lower id.
func (w *World) LargestSettlement(country int) *Location {
	var best *Location
	for _, loc := range w.CountrySettlements(country) {
		if best == nil || len(loc.ResidentIDs) > len(best.ResidentIDs) {
			best = loc
		}
	}
	return best
}
