package world

// Transport is how goods move along a trade route.
type Transport string

const (
	TransportHauling   Transport = "hauling"
	TransportCart      Transport = "cart"
	TransportHorseCart Transport = "horse_cart"
	TransportShip      Transport = "ship"
)

// TransportCapacity returns the weight a transport moves per execution.
func TransportCapacity(t Transport) float64 {
	switch t {
	case TransportShip:
		return 120
	case TransportHorseCart:
		return 60
	case TransportCart:
		return 30
	default:
		return 10
	}
}

// TradeRoute links two settlements. Routes are deactivated when an endpoint
// is destroyed or the route is raided, never deleted.
type TradeRoute struct {
	ID        int
	FromID    int
	ToID      int
	Path      []Point
	Distance  float64
	Transport Transport
	// Goods currently on the road, deposited at the destination on the next
	// execution pass.
	InFlight []*Stack
	Active   bool
	Danger   float64 // 0–1
	LastUsed int     // Turn of last execution
}
