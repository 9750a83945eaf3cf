// Package persistence saves and restores complete world snapshots in
// SQLite. Saves are full-replace inside one transaction; a snapshot loaded
// from disk continues the simulation bit-identically to one that never
// stopped.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/wildermark/internal/world"
)

// DB wraps a SQLite connection for world snapshots.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a snapshot database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		idx INTEGER PRIMARY KEY,
		biome TEXT NOT NULL,
		elevation REAL NOT NULL,
		road_level INTEGER NOT NULL,
		explored INTEGER NOT NULL,
		deposit_json TEXT
	);

	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		original_type TEXT,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		capacity INTEGER NOT NULL,
		country_id INTEGER NOT NULL,
		defense_level INTEGER NOT NULL,
		prosperity REAL NOT NULL,
		safety REAL NOT NULL,
		happiness REAL NOT NULL,
		durability REAL NOT NULL,
		burning_turns INTEGER NOT NULL,
		growth_points REAL NOT NULL,
		destroyed INTEGER NOT NULL,
		residents_json TEXT NOT NULL,
		garrison_json TEXT NOT NULL,
		buildings_json TEXT NOT NULL,
		sites_json TEXT NOT NULL,
		storage_json TEXT NOT NULL,
		storage_cap_json TEXT NOT NULL,
		prices_json TEXT NOT NULL,
		routes_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS characters (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		home_id INTEGER NOT NULL,
		job TEXT NOT NULL,
		health REAL NOT NULL,
		max_health REAL NOT NULL,
		gold INTEGER NOT NULL,
		alive INTEGER NOT NULL,
		on_duty INTEGER NOT NULL,
		duty_radius INTEGER NOT NULL,
		needs_json TEXT NOT NULL,
		traits_json TEXT NOT NULL,
		relationships_json TEXT NOT NULL,
		skills_json TEXT NOT NULL,
		inventory_json TEXT NOT NULL,
		action_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS creatures (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		health REAL NOT NULL,
		max_health REAL NOT NULL,
		attack REAL NOT NULL,
		defense REAL NOT NULL,
		speed INTEGER NOT NULL,
		home_x INTEGER NOT NULL,
		home_y INTEGER NOT NULL,
		wander_radius INTEGER NOT NULL,
		hostile INTEGER NOT NULL,
		country_id INTEGER NOT NULL,
		target_loc_id INTEGER NOT NULL,
		home_loc_id INTEGER NOT NULL,
		char_id INTEGER NOT NULL,
		idle_turns INTEGER NOT NULL,
		owner_id INTEGER NOT NULL,
		last_wool INTEGER NOT NULL,
		breed_cooldown INTEGER NOT NULL,
		loot_json TEXT NOT NULL,
		path_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS countries (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		capital_id INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS relations (
		a INTEGER NOT NULL,
		b INTEGER NOT NULL,
		kind TEXT NOT NULL,
		strength REAL NOT NULL,
		since INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routes (
		id INTEGER PRIMARY KEY,
		from_id INTEGER NOT NULL,
		to_id INTEGER NOT NULL,
		distance REAL NOT NULL,
		transport TEXT NOT NULL,
		active INTEGER NOT NULL,
		danger REAL NOT NULL,
		last_used INTEGER NOT NULL,
		path_json TEXT NOT NULL,
		in_flight_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		turn INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location_id INTEGER NOT NULL,
		resolved INTEGER NOT NULL,
		severity TEXT NOT NULL,
		character_ids_json TEXT NOT NULL,
		effects_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS known_events (
		event_id INTEGER PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS news (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		turn INTEGER NOT NULL,
		severity TEXT NOT NULL,
		text TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS party (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		action_points INTEGER NOT NULL,
		max_action_points INTEGER NOT NULL,
		gold INTEGER NOT NULL,
		inventory_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_characters_home ON characters(home_id);
	CREATE INDEX IF NOT EXISTS idx_events_turn ON events(turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasWorld reports whether a snapshot exists.
func (db *DB) HasWorld() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM world_meta"); err != nil {
		return false
	}
	return n > 0
}

// SaveWorld writes the complete world state, replacing any prior snapshot.
func (db *DB) SaveWorld(w *world.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{
		"world_meta", "tiles", "locations", "characters", "creatures",
		"countries", "relations", "routes", "events", "known_events",
		"news", "party",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := saveMeta(tx, w); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := saveTiles(tx, w); err != nil {
		return fmt.Errorf("save tiles: %w", err)
	}
	if err := saveLocations(tx, w); err != nil {
		return fmt.Errorf("save locations: %w", err)
	}
	if err := saveCharacters(tx, w); err != nil {
		return fmt.Errorf("save characters: %w", err)
	}
	if err := saveCreatures(tx, w); err != nil {
		return fmt.Errorf("save creatures: %w", err)
	}
	if err := savePolitics(tx, w); err != nil {
		return fmt.Errorf("save politics: %w", err)
	}
	if err := saveRoutes(tx, w); err != nil {
		return fmt.Errorf("save routes: %w", err)
	}
	if err := saveEvents(tx, w); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := saveParty(tx, w); err != nil {
		return fmt.Errorf("save party: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("world saved",
		"turn", w.Turn,
		"locations", len(w.Locations),
		"characters", len(w.Characters),
		"creatures", len(w.Creatures),
	)
	return nil
}

func saveMeta(tx *sqlx.Tx, w *world.World) error {
	meta := map[string]string{
		"width":  strconv.Itoa(w.Width),
		"height": strconv.Itoa(w.Height),
		"seed":   strconv.FormatInt(w.Seed, 10),
		"turn":   strconv.Itoa(w.Turn),
		"season": strconv.Itoa(w.Season),
	}
	for key, value := range meta {
		if _, err := tx.Exec(
			"INSERT INTO world_meta (key, value) VALUES (?, ?)", key, value,
		); err != nil {
			return err
		}
	}
	return nil
}

func saveTiles(tx *sqlx.Tx, w *world.World) error {
	stmt, err := tx.Preparex(`INSERT INTO tiles
		(idx, biome, elevation, road_level, explored, deposit_json)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range w.Tiles {
		t := &w.Tiles[i]
		var depositJSON []byte
		if t.Deposit != nil {
			depositJSON, _ = json.Marshal(t.Deposit)
		}
		if _, err := stmt.Exec(
			i, t.Biome, t.Elevation, t.RoadLevel, boolInt(t.Explored), nullable(depositJSON),
		); err != nil {
			return fmt.Errorf("insert tile %d: %w", i, err)
		}
	}
	return nil
}

func saveLocations(tx *sqlx.Tx, w *world.World) error {
	stmt, err := tx.Preparex(`INSERT INTO locations
		(id, name, type, original_type, x, y, capacity, country_id,
		 defense_level, prosperity, safety, happiness, durability,
		 burning_turns, growth_points, destroyed,
		 residents_json, garrison_json, buildings_json, sites_json,
		 storage_json, storage_cap_json, prices_json, routes_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range w.SortedLocationIDs() {
		l := w.Locations[id]
		if _, err := stmt.Exec(
			l.ID, l.Name, string(l.Type), string(l.OriginalType), l.X, l.Y,
			l.Capacity, l.CountryID, l.DefenseLevel,
			l.Prosperity, l.Safety, l.Happiness, l.Durability,
			l.BurningTurns, l.GrowthPoints, boolInt(l.Destroyed),
			mustJSON(l.ResidentIDs), mustJSON(l.GarrisonIDs),
			mustJSON(l.Buildings), mustJSON(l.Sites),
			mustJSON(l.Storage), mustJSON(l.StorageCap),
			mustJSON(l.Prices), mustJSON(l.RouteIDs),
		); err != nil {
			return fmt.Errorf("insert location %d: %w", l.ID, err)
		}
	}
	return nil
}

func saveCharacters(tx *sqlx.Tx, w *world.World) error {
	stmt, err := tx.Preparex(`INSERT INTO characters
		(id, name, age, x, y, home_id, job, health, max_health, gold,
		 alive, on_duty, duty_radius,
		 needs_json, traits_json, relationships_json, skills_json,
		 inventory_json, action_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range w.SortedCharacterIDs() {
		c := w.Characters[id]
		if _, err := stmt.Exec(
			c.ID, c.Name, c.Age, c.X, c.Y, c.HomeID, c.Job,
			c.Health, c.MaxHealth, c.Gold,
			boolInt(c.Alive), boolInt(c.OnDuty), c.DutyRadius,
			mustJSON(c.Needs), mustJSON(c.Traits), mustJSON(c.Relationships),
			mustJSON(c.Skills), mustJSON(c.Inventory), mustJSON(c.Action),
		); err != nil {
			return fmt.Errorf("insert character %d: %w", c.ID, err)
		}
	}
	return nil
}

func saveCreatures(tx *sqlx.Tx, w *world.World) error {
	stmt, err := tx.Preparex(`INSERT INTO creatures
		(id, type, x, y, health, max_health, attack, defense, speed,
		 home_x, home_y, wander_radius, hostile, country_id, target_loc_id,
		 home_loc_id, char_id, idle_turns, owner_id, last_wool,
		 breed_cooldown, loot_json, path_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range w.SortedCreatureIDs() {
		c := w.Creatures[id]
		if _, err := stmt.Exec(
			c.ID, c.Type, c.X, c.Y, c.Health, c.MaxHealth,
			c.Attack, c.Defense, c.Speed,
			c.HomeX, c.HomeY, c.WanderRadius, boolInt(c.Hostile),
			c.CountryID, c.TargetLocID, c.HomeLocID, c.CharID, c.IdleTurns,
			c.OwnerID, c.LastWool, c.BreedCooldown,
			mustJSON(c.Loot), mustJSON(c.Path),
		); err != nil {
			return fmt.Errorf("insert creature %d: %w", c.ID, err)
		}
	}
	return nil
}

func savePolitics(tx *sqlx.Tx, w *world.World) error {
	for _, id := range w.SortedCountryIDs() {
		c := w.Countries[id]
		if _, err := tx.Exec(
			"INSERT INTO countries (id, name, capital_id) VALUES (?, ?, ?)",
			c.ID, c.Name, c.CapitalID,
		); err != nil {
			return fmt.Errorf("insert country %d: %w", c.ID, err)
		}
	}
	for _, r := range w.Relations {
		if _, err := tx.Exec(
			"INSERT INTO relations (a, b, kind, strength, since) VALUES (?, ?, ?, ?, ?)",
			r.A, r.B, string(r.Kind), r.Strength, r.Since,
		); err != nil {
			return fmt.Errorf("insert relation %d-%d: %w", r.A, r.B, err)
		}
	}
	return nil
}

func saveRoutes(tx *sqlx.Tx, w *world.World) error {
	for _, id := range w.SortedRouteIDs() {
		r := w.Routes[id]
		if _, err := tx.Exec(`INSERT INTO routes
			(id, from_id, to_id, distance, transport, active, danger,
			 last_used, path_json, in_flight_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.FromID, r.ToID, r.Distance, string(r.Transport),
			boolInt(r.Active), r.Danger, r.LastUsed,
			mustJSON(r.Path), mustJSON(r.InFlight),
		); err != nil {
			return fmt.Errorf("insert route %d: %w", r.ID, err)
		}
	}
	return nil
}

func saveEvents(tx *sqlx.Tx, w *world.World) error {
	for _, e := range w.Events {
		if _, err := tx.Exec(`INSERT INTO events
			(id, type, turn, title, description, location_id, resolved,
			 severity, character_ids_json, effects_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Type, e.Turn, e.Title, e.Description, e.LocationID,
			boolInt(e.Resolved), string(e.Severity),
			mustJSON(e.CharacterIDs), mustJSON(e.Effects),
		); err != nil {
			return fmt.Errorf("insert event %d: %w", e.ID, err)
		}
	}
	for id, known := range w.KnownEvents {
		if !known {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO known_events (event_id) VALUES (?)", id,
		); err != nil {
			return err
		}
	}
	for _, n := range w.News {
		if _, err := tx.Exec(
			"INSERT INTO news (turn, severity, text) VALUES (?, ?, ?)",
			n.Turn, string(n.Severity), n.Text,
		); err != nil {
			return err
		}
	}
	return nil
}

func saveParty(tx *sqlx.Tx, w *world.World) error {
	_, err := tx.Exec(`INSERT INTO party
		(id, x, y, action_points, max_action_points, gold, inventory_json)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		w.Party.X, w.Party.Y, w.Party.ActionPoints, w.Party.MaxActionPoints,
		w.Party.Gold, mustJSON(w.Party.Inventory),
	)
	return err
}

// LoadWorld reconstructs the world from the last snapshot.
func (db *DB) LoadWorld() (*world.World, error) {
	width, err := db.metaInt("width")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	height, err := db.metaInt("height")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	seedStr, err := db.meta("seed")
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	seed, err := strconv.ParseInt(seedStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	w := world.New(width, height, seed)
	if w.Turn, err = db.metaInt("turn"); err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	if w.Season, err = db.metaInt("season"); err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}

	if err := db.loadTiles(w); err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}
	if err := db.loadLocations(w); err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	if err := db.loadCharacters(w); err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}
	if err := db.loadCreatures(w); err != nil {
		return nil, fmt.Errorf("load creatures: %w", err)
	}
	if err := db.loadPolitics(w); err != nil {
		return nil, fmt.Errorf("load politics: %w", err)
	}
	if err := db.loadRoutes(w); err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	if err := db.loadEvents(w); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if err := db.loadParty(w); err != nil {
		return nil, fmt.Errorf("load party: %w", err)
	}

	w.SetNextIDs(
		maxID(w.SortedCharacterIDs())+1,
		maxID(w.SortedCreatureIDs())+1,
		maxID(w.SortedRouteIDs())+1,
		maxEventID(w.Events)+1,
	)
	slog.Info("world loaded", "turn", w.Turn, "seed", w.Seed)
	return w, nil
}

func (db *DB) meta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

func (db *DB) metaInt(key string) (int, error) {
	s, err := db.meta(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(s)
}

func (db *DB) loadTiles(w *world.World) error {
	rows, err := db.conn.Queryx(
		"SELECT idx, biome, elevation, road_level, explored, deposit_json FROM tiles")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			idx, roadLevel, explored int
			biome                    string
			elevation                float64
			depositJSON              *string
		)
		if err := rows.Scan(&idx, &biome, &elevation, &roadLevel, &explored, &depositJSON); err != nil {
			return err
		}
		if idx < 0 || idx >= len(w.Tiles) {
			continue
		}
		t := &w.Tiles[idx]
		t.Biome = biome
		t.Elevation = elevation
		t.RoadLevel = roadLevel
		t.Explored = explored != 0
		if depositJSON != nil && *depositJSON != "" {
			var d world.Deposit
			if err := json.Unmarshal([]byte(*depositJSON), &d); err == nil {
				t.Deposit = &d
			}
		}
	}
	return rows.Err()
}

func (db *DB) loadLocations(w *world.World) error {
	rows, err := db.conn.Queryx(`SELECT
		id, name, type, original_type, x, y, capacity, country_id,
		defense_level, prosperity, safety, happiness, durability,
		burning_turns, growth_points, destroyed,
		residents_json, garrison_json, buildings_json, sites_json,
		storage_json, storage_cap_json, prices_json, routes_json
		FROM locations`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		l := &world.Location{}
		var locType, origType string
		var destroyed int
		var residents, garrison, buildings, sites, storage, storageCap, prices, routes string
		if err := rows.Scan(
			&l.ID, &l.Name, &locType, &origType, &l.X, &l.Y, &l.Capacity,
			&l.CountryID, &l.DefenseLevel, &l.Prosperity, &l.Safety,
			&l.Happiness, &l.Durability, &l.BurningTurns, &l.GrowthPoints,
			&destroyed, &residents, &garrison, &buildings, &sites,
			&storage, &storageCap, &prices, &routes,
		); err != nil {
			return err
		}
		l.Type = world.LocationType(locType)
		l.OriginalType = world.LocationType(origType)
		l.Destroyed = destroyed != 0
		fromJSON(residents, &l.ResidentIDs)
		fromJSON(garrison, &l.GarrisonIDs)
		fromJSON(buildings, &l.Buildings)
		fromJSON(sites, &l.Sites)
		fromJSON(storage, &l.Storage)
		fromJSON(storageCap, &l.StorageCap)
		fromJSON(prices, &l.Prices)
		fromJSON(routes, &l.RouteIDs)
		if l.Prices == nil {
			l.Prices = make(map[string]int)
		}
		w.Locations[l.ID] = l
	}
	return rows.Err()
}

func (db *DB) loadCharacters(w *world.World) error {
	rows, err := db.conn.Queryx(`SELECT
		id, name, age, x, y, home_id, job, health, max_health, gold,
		alive, on_duty, duty_radius,
		needs_json, traits_json, relationships_json, skills_json,
		inventory_json, action_json
		FROM characters`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c := &world.Character{}
		var alive, onDuty int
		var needs, traits, relationships, skills, inventory, action string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Age, &c.X, &c.Y, &c.HomeID, &c.Job,
			&c.Health, &c.MaxHealth, &c.Gold, &alive, &onDuty, &c.DutyRadius,
			&needs, &traits, &relationships, &skills, &inventory, &action,
		); err != nil {
			return err
		}
		c.Alive = alive != 0
		c.OnDuty = onDuty != 0
		fromJSON(needs, &c.Needs)
		fromJSON(traits, &c.Traits)
		fromJSON(relationships, &c.Relationships)
		fromJSON(skills, &c.Skills)
		fromJSON(inventory, &c.Inventory)
		fromJSON(action, &c.Action)
		if c.Skills == nil {
			c.Skills = make(map[string]float64)
		}
		w.Characters[c.ID] = c
	}
	return rows.Err()
}

func (db *DB) loadCreatures(w *world.World) error {
	rows, err := db.conn.Queryx(`SELECT
		id, type, x, y, health, max_health, attack, defense, speed,
		home_x, home_y, wander_radius, hostile, country_id, target_loc_id,
		home_loc_id, char_id, idle_turns, owner_id, last_wool,
		breed_cooldown, loot_json, path_json
		FROM creatures`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c := &world.Creature{}
		var hostile int
		var loot, path string
		if err := rows.Scan(
			&c.ID, &c.Type, &c.X, &c.Y, &c.Health, &c.MaxHealth,
			&c.Attack, &c.Defense, &c.Speed, &c.HomeX, &c.HomeY,
			&c.WanderRadius, &hostile, &c.CountryID, &c.TargetLocID,
			&c.HomeLocID, &c.CharID, &c.IdleTurns, &c.OwnerID,
			&c.LastWool, &c.BreedCooldown, &loot, &path,
		); err != nil {
			return err
		}
		c.Hostile = hostile != 0
		fromJSON(loot, &c.Loot)
		fromJSON(path, &c.Path)
		w.Creatures[c.ID] = c
	}
	return rows.Err()
}

func (db *DB) loadPolitics(w *world.World) error {
	rows, err := db.conn.Queryx("SELECT id, name, capital_id FROM countries")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		c := &world.Country{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CapitalID); err != nil {
			return err
		}
		w.Countries[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return err
	}

	relRows, err := db.conn.Queryx("SELECT a, b, kind, strength, since FROM relations")
	if err != nil {
		return err
	}
	defer relRows.Close()
	for relRows.Next() {
		r := &world.Relation{}
		var kind string
		if err := relRows.Scan(&r.A, &r.B, &kind, &r.Strength, &r.Since); err != nil {
			return err
		}
		r.Kind = world.DiplomacyKind(kind)
		w.Relations = append(w.Relations, r)
	}
	return relRows.Err()
}

func (db *DB) loadRoutes(w *world.World) error {
	rows, err := db.conn.Queryx(`SELECT
		id, from_id, to_id, distance, transport, active, danger, last_used,
		path_json, in_flight_json FROM routes`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		r := &world.TradeRoute{}
		var transport string
		var active int
		var path, inFlight string
		if err := rows.Scan(
			&r.ID, &r.FromID, &r.ToID, &r.Distance, &transport,
			&active, &r.Danger, &r.LastUsed, &path, &inFlight,
		); err != nil {
			return err
		}
		r.Transport = world.Transport(transport)
		r.Active = active != 0
		fromJSON(path, &r.Path)
		fromJSON(inFlight, &r.InFlight)
		w.Routes[r.ID] = r
	}
	return rows.Err()
}

func (db *DB) loadEvents(w *world.World) error {
	rows, err := db.conn.Queryx(`SELECT
		id, type, turn, title, description, location_id, resolved,
		severity, character_ids_json, effects_json FROM events ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		e := &world.GameEvent{}
		var resolved int
		var severity, charIDs, effects string
		if err := rows.Scan(
			&e.ID, &e.Type, &e.Turn, &e.Title, &e.Description,
			&e.LocationID, &resolved, &severity, &charIDs, &effects,
		); err != nil {
			return err
		}
		e.Resolved = resolved != 0
		e.Severity = world.Severity(severity)
		fromJSON(charIDs, &e.CharacterIDs)
		fromJSON(effects, &e.Effects)
		w.Events = append(w.Events, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	knownRows, err := db.conn.Queryx("SELECT event_id FROM known_events")
	if err != nil {
		return err
	}
	defer knownRows.Close()
	for knownRows.Next() {
		var id int
		if err := knownRows.Scan(&id); err != nil {
			return err
		}
		w.KnownEvents[id] = true
	}
	if err := knownRows.Err(); err != nil {
		return err
	}

	newsRows, err := db.conn.Queryx("SELECT turn, severity, text FROM news ORDER BY seq")
	if err != nil {
		return err
	}
	defer newsRows.Close()
	for newsRows.Next() {
		var n world.NewsEntry
		var severity string
		if err := newsRows.Scan(&n.Turn, &severity, &n.Text); err != nil {
			return err
		}
		n.Severity = world.Severity(severity)
		w.News = append(w.News, n)
	}
	return newsRows.Err()
}

func (db *DB) loadParty(w *world.World) error {
	var inventory string
	err := db.conn.QueryRowx(`SELECT
		x, y, action_points, max_action_points, gold, inventory_json
		FROM party WHERE id = 1`).Scan(
		&w.Party.X, &w.Party.Y, &w.Party.ActionPoints,
		&w.Party.MaxActionPoints, &w.Party.Gold, &inventory,
	)
	if err != nil {
		return err
	}
	fromJSON(inventory, &w.Party.Inventory)
	return nil
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func fromJSON[T any](s string, out *T) {
	if s == "" || s == "null" {
		return
	}
	_ = json.Unmarshal([]byte(s), out)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func maxID(ids []int) int {
	max := 0
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max
}

func maxEventID(events []*world.GameEvent) int {
	max := 0
	for _, e := range events {
		if e.ID > max {
			max = e.ID
		}
	}
	return max
}
