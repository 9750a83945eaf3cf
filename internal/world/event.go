package world

// Severity grades an event and determines how far news of it spreads.
type Severity string

const (
	SeverityMinor        Severity = "minor"
	SeverityModerate     Severity = "moderate"
	SeverityMajor        Severity = "major"
	SeverityCatastrophic Severity = "catastrophic"
)

// SpreadRadius returns the maximum distance from the event's origin at which
// a settlement's visitors can learn of it second-hand. Minor events never
// leave their settlement; catastrophic news is effectively world-wide.
func (s Severity) SpreadRadius() int {
	switch s {
	case SeverityModerate:
		return 15
	case SeverityMajor:
		return 50
	case SeverityCatastrophic:
		return 1 << 20
	default:
		return 0
	}
}

// GameEvent is one world occurrence. LocationID 0 means the event has no
// origin settlement (global events).
type GameEvent struct {
	ID           int
	Type         string
	Turn         int
	Title        string
	Description  string
	LocationID   int
	CharacterIDs []int
	Resolved     bool
	Severity     Severity
	Effects      []string
}

// NewsEntry is one line of the player-visible narrative log, rendered
// verbatim by the presentation layer.
type NewsEntry struct {
	Turn     int
	Severity Severity
	Text     string
}

// AddNews appends a log line.
func (w *World) AddNews(severity Severity, text string) {
	w.News = append(w.News, NewsEntry{Turn: w.Turn, Severity: severity, Text: text})
}
