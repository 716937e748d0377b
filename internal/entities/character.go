package entities

// CharacterItem is one inventory slot
type CharacterItem struct {
	ID                  string  `json:"id"`
	DataID              int     `json:"data_id"` // item type id, 0 for an empty slot
	Level               int     `json:"level"`
	Amount              int     `json:"amount"`
	Durability          float32 `json:"durability"`
	Exp                 int     `json:"exp"`
	LockRemainsDuration float32 `json:"lock_remains_duration"`
	Sockets             []int   `json:"sockets,omitempty"`
}

// IsEmptySlot reports whether the slot holds nothing
func (i CharacterItem) IsEmptySlot() bool {
	return i.DataID == 0 || i.Amount <= 0
}

// Vector3 is a world position
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// PlayerCharacter is the full character aggregate, cached once per character id
type PlayerCharacter struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Name            string          `json:"name"`
	DataID          int             `json:"data_id"` // class
	EntityID        int             `json:"entity_id"`
	FactionID       int             `json:"faction_id"`
	Level           int             `json:"level"`
	Exp             int             `json:"exp"`
	CurrentHP       int             `json:"current_hp"`
	CurrentMP       int             `json:"current_mp"`
	StatPoint       float32         `json:"stat_point"`
	SkillPoint      float32         `json:"skill_point"`
	Gold            int             `json:"gold"`
	PartyID         int             `json:"party_id"` // 0 when not in a party
	GuildID         int             `json:"guild_id"` // 0 when not in a guild
	GuildRole       int             `json:"guild_role"`
	CurrentChannel  string          `json:"current_channel"`
	CurrentMapName  string          `json:"current_map_name"`
	CurrentPosition Vector3         `json:"current_position"`
	EquipItems      []CharacterItem `json:"equip_items,omitempty"`
	NonEquipItems   []CharacterItem `json:"non_equip_items,omitempty"`
	UnmuteTime      int64           `json:"unmute_time"`
	LastUpdate      int64           `json:"last_update"` // unix seconds
}

// SocialCharacter is the reduced projection used wherever another aggregate
// references a character. Party and guild member lists hold copies by value.
type SocialCharacter struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	DataID    int    `json:"data_id"`
	Level     int    `json:"level"`
	FactionID int    `json:"faction_id"`
	PartyID   int    `json:"party_id"`
	GuildID   int    `json:"guild_id"`
	GuildRole int    `json:"guild_role"`
}

// NewSocialCharacter projects a full character into its social form
func NewSocialCharacter(c *PlayerCharacter) SocialCharacter {
	return SocialCharacter{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		DataID:    c.DataID,
		Level:     c.Level,
		FactionID: c.FactionID,
		PartyID:   c.PartyID,
		GuildID:   c.GuildID,
		GuildRole: c.GuildRole,
	}
}

// Clone returns a deep copy
func (c *PlayerCharacter) Clone() *PlayerCharacter {
	if c == nil {
		return nil
	}
	clone := *c
	clone.EquipItems = cloneItems(c.EquipItems)
	clone.NonEquipItems = cloneItems(c.NonEquipItems)
	return &clone
}

func cloneItems(items []CharacterItem) []CharacterItem {
	if items == nil {
		return nil
	}
	out := make([]CharacterItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Sockets != nil {
			out[i].Sockets = append([]int(nil), item.Sockets...)
		}
	}
	return out
}

// CloneItems returns a deep copy of an item list
func CloneItems(items []CharacterItem) []CharacterItem {
	return cloneItems(items)
}
