package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chrozal/mudcore/internal/model"
)

type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

func statsToJSON(s model.BaseStats) []byte {
	m := map[string]int{
		"might": s.Might, "vitality": s.Vitality, "agility": s.Agility,
		"intellect": s.Intellect, "aura": s.Aura, "persona": s.Persona,
	}
	data, _ := json.Marshal(m)
	return data
}

func statsFromJSON(raw []byte) model.BaseStats {
	var m map[string]int
	_ = json.Unmarshal(raw, &m)
	return model.BaseStats{
		Might: m["might"], Vitality: m["vitality"], Agility: m["agility"],
		Intellect: m["intellect"], Aura: m["aura"], Persona: m["persona"],
	}
}

func setToJSON(set map[string]struct{}) []byte {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	data, _ := json.Marshal(out)
	return data
}

func setFromJSON(raw []byte) map[string]struct{} {
	var list []string
	_ = json.Unmarshal(raw, &list)
	out := make(map[string]struct{}, len(list))
	for _, k := range list {
		out[k] = struct{}{}
	}
	return out
}

func mustMarshalSkills(skills map[string]int) []byte {
	if skills == nil {
		skills = map[string]int{}
	}
	data, _ := json.Marshal(skills)
	return data
}

// Create inserts a brand new character row at the end of the creation flow
// and assigns its id back onto c.
func (r *CharacterRepo) Create(ctx context.Context, c *model.Character) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (
			account_id, first_name, last_name, sex, race_id, class_id,
			level, xp_pool, xp_total, unspent_skill_points, unspent_attr_points, tether,
			hp, max_hp, essence, max_essence, status, stance,
			stats, skills, known_spells, known_abilities,
			room_id, coinage, description
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,
			$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25
		) RETURNING id`,
		c.AccountID, c.FirstName, c.LastName, int16(c.Sex), c.RaceID, c.ClassID,
		c.Level, c.XPPool, c.XPTotal, c.UnspentSkillPoints, c.UnspentAttrPoints, c.Tether,
		c.HP, c.MaxHP, c.Essence, c.MaxEssence, int16(c.Status), int16(c.Stance),
		statsToJSON(c.Stats), mustMarshalSkills(c.Skills), setToJSON(c.KnownSpells), setToJSON(c.KnownAbilities),
		c.RoomID, c.Coinage, c.Description,
	).Scan(&c.ID)
}

// Save persists every mutable field of a character. Called by the tick
// scheduler's persist phase for each Dirty character, by the shutdown flush,
// and when a session leaves the world; handlers never call it directly.
func (r *CharacterRepo) Save(ctx context.Context, c *model.Character) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters SET
			level = $1, xp_pool = $2, xp_total = $3,
			unspent_skill_points = $4, unspent_attr_points = $5, tether = $6,
			hp = $7, max_hp = $8, essence = $9, max_essence = $10,
			status = $11, stance = $12,
			stats = $13, skills = $14, known_spells = $15, known_abilities = $16,
			room_id = $17, coinage = $18, description = $19, playtime_seconds = $20
		 WHERE id = $21`,
		c.Level, c.XPPool, c.XPTotal,
		c.UnspentSkillPoints, c.UnspentAttrPoints, c.Tether,
		c.HP, c.MaxHP, c.Essence, c.MaxEssence,
		int16(c.Status), int16(c.Stance),
		statsToJSON(c.Stats), mustMarshalSkills(c.Skills), setToJSON(c.KnownSpells), setToJSON(c.KnownAbilities),
		c.RoomID, c.Coinage, c.Description, c.PlaytimeSeconds,
		c.ID,
	)
	return err
}

func (r *CharacterRepo) scanRow(row pgx.Row) (*model.Character, error) {
	c := &model.Character{}
	var sex, status, stance int16
	var stats, skills, spells, abilities []byte
	err := row.Scan(
		&c.ID, &c.AccountID, &c.FirstName, &c.LastName, &sex, &c.RaceID, &c.ClassID,
		&c.Level, &c.XPPool, &c.XPTotal, &c.UnspentSkillPoints, &c.UnspentAttrPoints, &c.Tether,
		&c.HP, &c.MaxHP, &c.Essence, &c.MaxEssence, &status, &stance,
		&stats, &skills, &spells, &abilities,
		&c.RoomID, &c.Coinage, &c.Description, &c.PlaytimeSeconds,
	)
	if err != nil {
		return nil, err
	}
	c.Sex = model.Sex(sex)
	c.Status = model.Status(status)
	c.Stance = model.Stance(stance)
	c.Stats = statsFromJSON(stats)
	_ = json.Unmarshal(skills, &c.Skills)
	if c.Skills == nil {
		c.Skills = map[string]int{}
	}
	c.KnownSpells = setFromJSON(spells)
	c.KnownAbilities = setFromJSON(abilities)
	c.PersistedRoomID = c.RoomID
	c.Effects = map[string]*model.Effect{}
	c.DetectedTraps = map[model.RoomID]struct{}{}
	return c, nil
}

const characterColumns = `id, account_id, first_name, last_name, sex, race_id, class_id,
	level, xp_pool, xp_total, unspent_skill_points, unspent_attr_points, tether,
	hp, max_hp, essence, max_essence, status, stance,
	stats, skills, known_spells, known_abilities,
	room_id, coinage, description, playtime_seconds`

func (r *CharacterRepo) LoadByID(ctx context.Context, id model.CharacterID) (*model.Character, error) {
	row := r.db.Pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM characters WHERE id = $1 AND deleted_at IS NULL`, characterColumns), id)
	c, err := r.scanRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *CharacterRepo) LoadByAccount(ctx context.Context, accountID model.AccountID) ([]*model.Character, error) {
	rows, err := r.db.Pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM characters WHERE account_id = $1 AND deleted_at IS NULL ORDER BY id`, characterColumns),
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*model.Character
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *CharacterRepo) NameExists(ctx context.Context, first, last string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM characters WHERE LOWER(first_name) = LOWER($1) AND LOWER(last_name) = LOWER($2) AND deleted_at IS NULL)`,
		first, last,
	).Scan(&exists)
	return exists, err
}
