package world

// Character is an autonomous person. Dead characters stay in the arena with
// Alive=false so relationship edges and event references remain resolvable.
type Character struct {
	ID   int
	Name string
	Age  int
	X, Y int

	HomeID int // Location id, 0 = homeless
	Job    string

	Health    float64
	MaxHealth float64

	Needs         Needs
	Traits        Traits
	Relationships []Relationship
	Skills        map[string]float64 // Skill name → level 0–100

	Inventory map[string]int
	Gold      int

	Alive  bool
	Action Action

	OnDuty     bool
	DutyRadius int
}

// Needs decay each turn and are restored by actions. All 0–100.
type Needs struct {
	Food    float64
	Shelter float64
	Safety  float64
	Social  float64
	Purpose float64
}

// Decay applies per-turn need decay.
func (n *Needs) Decay() {
	n.Food = Clamp(n.Food-2, 0, 100)
	n.Shelter = Clamp(n.Shelter-0.5, 0, 100)
	n.Safety = Clamp(n.Safety-0.3, 0, 100)
	n.Social = Clamp(n.Social-1, 0, 100)
	n.Purpose = Clamp(n.Purpose-0.8, 0, 100)
}

// Traits are fixed at creation, each 0–1.
type Traits struct {
	Courage    float64
	Curiosity  float64
	Kindness   float64
	Ambition   float64
	Wanderlust float64
}

// RelationKind types a social edge.
type RelationKind string

const (
	RelFriend RelationKind = "friend"
	RelSpouse RelationKind = "spouse"
	RelFamily RelationKind = "family"
	RelRival  RelationKind = "rival"
)

// Relationship is a typed edge to another character.
type Relationship struct {
	TargetID int
	Kind     RelationKind
	Strength float64 // -100..100
}

// HasRelation reports whether an edge of the given kind exists.
func (c *Character) HasRelation(kind RelationKind) bool {
	for _, r := range c.Relationships {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// ActionKind is the closed set of character actions.
type ActionKind uint8

const (
	ActIdle ActionKind = iota
	ActWorking
	ActTraveling
	ActTrading
	ActFighting
	ActResting
	ActSocializing
	ActExploring
)

// String returns the action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActWorking:
		return "working"
	case ActTraveling:
		return "traveling"
	case ActTrading:
		return "trading"
	case ActFighting:
		return "fighting"
	case ActResting:
		return "resting"
	case ActSocializing:
		return "socializing"
	case ActExploring:
		return "exploring"
	default:
		return "idle"
	}
}

// Action is the character's current tagged action. Target fields are only
// meaningful for the kinds that set them (traveling, fighting, socializing).
type Action struct {
	Kind             ActionKind
	TargetX, TargetY int
	TargetID         int
	TurnsLeft        int
}
