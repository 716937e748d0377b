package entities

// Building is a placed structure on a map instance
type Building struct {
	ID              string  `json:"id"`
	ParentID        string  `json:"parent_id"`
	EntityID        int     `json:"entity_id"`
	CurrentHP       int     `json:"current_hp"`
	RemainsLifeTime float32 `json:"remains_life_time"`
	IsLocked        bool    `json:"is_locked"`
	LockPassword    string  `json:"lock_password"`
	Position        Vector3 `json:"position"`
	Rotation        Vector3 `json:"rotation"`
	CreatorID       string  `json:"creator_id"`
	CreatorName     string  `json:"creator_name"`
	ExtraData       string  `json:"extra_data"`
}

// BuildingLocation identifies one map instance holding buildings
type BuildingLocation struct {
	Channel string `json:"channel"`
	MapName string `json:"map_name"`
}
