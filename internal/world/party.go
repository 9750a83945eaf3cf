package world

// Party is the player's group: a minor participant whose elapsed game time
// drives the turn clock. The kernel only tracks position, action points, and
// carried goods; input handling lives outside the core.
type Party struct {
	X, Y int

	ActionPoints    int
	MaxActionPoints int

	Gold      int
	Inventory map[string]int
}

// RestoreActionPoints refills the party to its maximum at turn end.
func (p *Party) RestoreActionPoints() {
	p.ActionPoints = p.MaxActionPoints
}
