package worldgen

import (
	"fmt"

	"github.com/talgya/wildermark/internal/rng"
	"github.com/talgya/wildermark/internal/rules"
	"github.com/talgya/wildermark/internal/world"
)

var countryNames = []string{
	"Aldmark", "Vessar", "Thornreach", "Calindor", "Ostvale", "Myrr",
}

var settlementNames = []string{
	"Thornwick", "Eastholm", "Greydon", "Millbrook", "Ravenmoor", "Saltmere",
	"Oakstead", "Hollowdale", "Fernley", "Stonebridge", "Wycombe", "Ashford",
	"Netherby", "Coldwell", "Briarton", "Larkhill", "Dunmore", "Kestrel Bay",
	"Harrowgate", "Elmsworth", "Foxglove", "Tarnwood", "Withern", "Gullhaven",
}

var characterNames = []string{
	"Aldric", "Betha", "Corin", "Dagna", "Edric", "Fenna", "Garet", "Hilde",
	"Ivo", "Jossa", "Kell", "Lirra", "Maron", "Nessa", "Osric", "Petra",
	"Quill", "Rowena", "Stig", "Tamsin", "Ulf", "Verna", "Wystan", "Yedda",
}

func genCountries(w *world.World, cfg Config, stream *rng.Stream) {
	n := cfg.Countries
	if n > len(countryNames) {
		n = len(countryNames)
	}
	for i := 0; i < n; i++ {
		w.Countries[i+1] = &world.Country{ID: i + 1, Name: countryNames[i]}
	}

	// Diplomacy at genesis: mostly neutral, some rivalries, the odd
	// alliance. Wars emerge later from deep rivalries.
	ids := w.SortedCountryIDs()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			rel := &world.Relation{A: ids[i], B: ids[j], Kind: world.DipNeutral}
			roll := stream.Next()
			switch {
			case roll < 0.35:
				rel.Kind = world.DipRivalry
				rel.Strength = stream.NextFloat(-70, -10)
			case roll < 0.50:
				rel.Kind = world.DipAlliance
				rel.Strength = stream.NextFloat(20, 60)
			default:
				rel.Strength = stream.NextFloat(-10, 20)
			}
			w.Relations = append(w.Relations, rel)
		}
	}
}

func genSettlements(w *world.World, cfg Config, stream *rng.Stream) {
	countryIDs := w.SortedCountryIDs()
	nextID := 1
	attempts := cfg.Settlements * 40
	for len(w.Locations) < cfg.Settlements && attempts > 0 {
		attempts--
		x := stream.NextInt(2, cfg.Width-3)
		y := stream.NextInt(2, cfg.Height-3)
		if !settleable(w, x, y) {
			continue
		}

		countryID := countryIDs[(nextID-1)%len(countryIDs)]
		country := w.Countries[countryID]
		locType := rollSettlementType(w, x, y, country, stream)

		loc := buildSettlement(nextID, locType, x, y, countryID, stream)
		w.Locations[nextID] = loc
		if country.CapitalID == 0 {
			country.CapitalID = loc.ID
		}
		populate(w, loc, stream)
		nextID++
	}
}

// settleable wants habitable ground with breathing room from neighbors.
func settleable(w *world.World, x, y int) bool {
	t := w.TileAt(x, y)
	if t == nil {
		return false
	}
	switch t.Biome {
	case "grassland", "forest", "beach", "hills":
	default:
		return false
	}
	for _, id := range w.SortedLocationIDs() {
		loc := w.Locations[id]
		if world.Distance(x, y, loc.X, loc.Y) < 6 {
			return false
		}
	}
	return true
}

// rollSettlementType: a country's first settlement is its capital city;
// coastal sites become ports; the rest roll town/village/farm.
func rollSettlementType(w *world.World, x, y int, country *world.Country, stream *rng.Stream) world.LocationType {
	if country.CapitalID == 0 {
		return world.LocCity
	}
	if w.TileAt(x, y).Biome == "beach" || hasWaterNeighbor(w, x, y) {
		return world.LocPort
	}
	roll := stream.Next()
	switch {
	case roll < 0.10:
		return world.LocCastle
	case roll < 0.40:
		return world.LocTown
	case roll < 0.80:
		return world.LocVillage
	default:
		return world.LocFarm
	}
}

func buildSettlement(id int, locType world.LocationType, x, y, countryID int, stream *rng.Stream) *world.Location {
	loc := &world.Location{
		ID:         id,
		Name:       settlementNames[(id-1)%len(settlementNames)],
		Type:       locType,
		X:          x,
		Y:          y,
		CountryID:  countryID,
		Durability: 100,
		Happiness:  stream.NextFloat(45, 65),
		Safety:     stream.NextFloat(40, 60),
		Prosperity: stream.NextFloat(20, 40),
		Prices:     make(map[string]int),
	}

	switch locType {
	case world.LocCity:
		loc.Capacity, loc.DefenseLevel = 30, 2
		loc.StorageCap = storageCaps(200, 300, 150)
		addBuildings(loc, "farm", "bakery", "smelter", "smithy", "brewery", "dairy")
	case world.LocCastle:
		loc.Capacity, loc.DefenseLevel = 15, 3
		loc.StorageCap = storageCaps(120, 200, 120)
		addBuildings(loc, "smithy", "brewery")
	case world.LocPort:
		loc.Capacity, loc.DefenseLevel = 18, 1
		loc.StorageCap = storageCaps(150, 250, 120)
		addBuildings(loc, "fishery", "fishery", "bakery", "tannery")
	case world.LocTown:
		loc.Capacity, loc.DefenseLevel = 20, 1
		loc.StorageCap = storageCaps(150, 200, 100)
		addBuildings(loc, "farm", "bakery", "brewery", "weaver")
	case world.LocVillage:
		loc.Capacity = 12
		loc.StorageCap = storageCaps(80, 120, 60)
		addBuildings(loc, "farm", "sawmill", "bakery")
	default: // farm
		loc.Capacity = 8
		loc.StorageCap = storageCaps(60, 80, 40)
		addBuildings(loc, "farm", "farm")
	}

	// Starting stores so the first winter is survivable.
	loc.AddResource("wheat", stream.NextInt(10, 25), 0.5)
	loc.AddResource("bread", stream.NextInt(5, 15), 0.5)
	loc.AddResource("wood", stream.NextInt(5, 15), 0.5)
	return loc
}

func storageCaps(food, material, goods int) map[rules.StorageCategory]int {
	return map[rules.StorageCategory]int{
		rules.CategoryFood:     food,
		rules.CategoryMaterial: material,
		rules.CategoryGoods:    goods,
	}
}

func addBuildings(loc *world.Location, types ...string) {
	for _, t := range types {
		loc.Buildings = append(loc.Buildings, &world.Building{
			Type: t, Condition: 100, Operational: true,
		})
	}
}

// populate fills a settlement: one worker per building, a merchant or
// shepherd where the type warrants, and a few unemployed hands. Some
// residents arrive married.
func populate(w *world.World, loc *world.Location, stream *rng.Stream) {
	for _, b := range loc.Buildings {
		worker := spawnResident(w, loc, b.Type, stream)
		b.WorkerID = worker.ID
		if recipes := rules.RecipesForBuilding(b.Type); len(recipes) > 0 {
			worker.Skills[recipes[0].Skill] = float64(stream.NextInt(5, 40))
		}
	}

	switch loc.Type {
	case world.LocCity, world.LocTown, world.LocPort:
		spawnResident(w, loc, "merchant", stream)
	case world.LocVillage, world.LocFarm:
		spawnResident(w, loc, "shepherd", stream)
	}

	extra := stream.NextInt(1, loc.Capacity/4+1)
	for i := 0; i < extra; i++ {
		spawnResident(w, loc, "unemployed", stream)
	}

	marryOff(w, loc, stream)
}

func spawnResident(w *world.World, loc *world.Location, job string, stream *rng.Stream) *world.Character {
	name := characterNames[stream.NextInt(0, len(characterNames)-1)]
	c := w.AddCharacter(&world.Character{
		Name: fmt.Sprintf("%s of %s", name, loc.Name),
		Age:  stream.NextInt(16, 60),
		X:    loc.X, Y: loc.Y,
		HomeID: loc.ID, Job: job,
		Health: 100, MaxHealth: 100, Alive: true,
		Gold:   stream.NextInt(0, 20),
		Skills: map[string]float64{},
		Needs: world.Needs{
			Food: stream.NextFloat(60, 90), Shelter: 80, Safety: 70,
			Social: stream.NextFloat(40, 80), Purpose: stream.NextFloat(40, 80),
		},
		Traits: world.Traits{
			Courage:    stream.NextFloat(0, 1),
			Curiosity:  stream.NextFloat(0, 1),
			Kindness:   stream.NextFloat(0, 1),
			Ambition:   stream.NextFloat(0, 1),
			Wanderlust: stream.NextFloat(0, 1),
		},
	})
	loc.ResidentIDs = append(loc.ResidentIDs, c.ID)
	return c
}

// marryOff pairs adjacent residents in the roster with a modest chance.
func marryOff(w *world.World, loc *world.Location, stream *rng.Stream) {
	for i := 0; i+1 < len(loc.ResidentIDs); i += 2 {
		if !stream.Chance(0.3) {
			continue
		}
		a, okA := w.Characters[loc.ResidentIDs[i]]
		b, okB := w.Characters[loc.ResidentIDs[i+1]]
		if !okA || !okB {
			continue
		}
		a.Relationships = append(a.Relationships, world.Relationship{
			TargetID: b.ID, Kind: world.RelSpouse, Strength: stream.NextFloat(40, 80),
		})
		b.Relationships = append(b.Relationships, world.Relationship{
			TargetID: a.ID, Kind: world.RelSpouse, Strength: stream.NextFloat(40, 80),
		})
	}
}

// genCreatures seeds the wilds: prey and predator packs scaled to map
// area, a dragon in the mountains, and bandit camps in the hinterland.
func genCreatures(w *world.World, stream *rng.Stream) {
	area := w.Width * w.Height
	for _, typ := range []string{"deer", "sheep", "boar", "wolf", "bear"} {
		packs := area / 900
		if packs < 1 {
			packs = 1
		}
		for i := 0; i < packs; i++ {
			spawnPack(w, typ, stream)
		}
	}
	for i := 0; i < area/1600+1; i++ {
		spawnPack(w, "bandit", stream)
	}
	spawnDragon(w, stream)
}

func spawnPack(w *world.World, typ string, stream *rng.Stream) {
	def, ok := rules.CreatureByID(typ)
	if !ok {
		return
	}
	x, y, found := randomLandTile(w, stream)
	if !found {
		return
	}
	count := stream.NextInt(def.PackMin, def.PackMax)
	for i := 0; i < count; i++ {
		w.AddCreature(&world.Creature{
			Type: typ,
			X:    x, Y: y,
			Health: def.Health, MaxHealth: def.Health,
			Attack: def.Attack, Defense: def.Defense, Speed: def.Speed,
			HomeX: x, HomeY: y, WanderRadius: def.WanderRadius,
			Hostile: def.Hostile,
			Loot:    def.Loot,
		})
	}
}

func spawnDragon(w *world.World, stream *rng.Stream) {
	def, _ := rules.CreatureByID("dragon")
	// Roost in the mountains if any exist; anywhere remote otherwise.
	for tries := 0; tries < 200; tries++ {
		x := stream.NextInt(0, w.Width-1)
		y := stream.NextInt(0, w.Height-1)
		t := w.TileAt(x, y)
		if t == nil || (tries < 150 && t.Biome != "mountains") || t.Biome == "water" {
			continue
		}
		w.AddCreature(&world.Creature{
			Type: "dragon", X: x, Y: y,
			Health: def.Health, MaxHealth: def.Health,
			Attack: def.Attack, Defense: def.Defense, Speed: def.Speed,
			HomeX: x, HomeY: y, WanderRadius: def.WanderRadius,
			Hostile: true, Loot: def.Loot,
		})
		return
	}
}

func randomLandTile(w *world.World, stream *rng.Stream) (int, int, bool) {
	for tries := 0; tries < 100; tries++ {
		x := stream.NextInt(0, w.Width-1)
		y := stream.NextInt(0, w.Height-1)
		t := w.TileAt(x, y)
		if t == nil || t.Biome == "water" {
			continue
		}
		return x, y, true
	}
	return 0, 0, false
}
