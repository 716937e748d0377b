package testutils

import (
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// CreateTestItem creates a filled inventory slot
func CreateTestItem(id string, dataID, amount int) entities.CharacterItem {
	return entities.CharacterItem{
		ID:         id,
		DataID:     dataID,
		Level:      1,
		Amount:     amount,
		Durability: 100,
	}
}

// CreateTestCharacter creates a level 1 character with a small inventory
func CreateTestCharacter(id, userID, name string) *entities.PlayerCharacter {
	return &entities.PlayerCharacter{
		ID:             id,
		UserID:         userID,
		Name:           name,
		DataID:         1,
		EntityID:       1,
		Level:          1,
		CurrentHP:      100,
		CurrentMP:      50,
		CurrentChannel: "default",
		CurrentMapName: "town",
		EquipItems: []entities.CharacterItem{
			CreateTestItem(id+"-sword", 1001, 1),
		},
		NonEquipItems: []entities.CharacterItem{
			CreateTestItem(id+"-potion", 2001, 5),
		},
	}
}

// CreateTestStorageItems creates a storage content list of n stacks
func CreateTestStorageItems(prefix string, n int) []entities.CharacterItem {
	items := make([]entities.CharacterItem, n)
	for i := range items {
		items[i] = CreateTestItem(prefix+"-"+string(rune('a'+i)), 3000+i, i+1)
	}
	return items
}

// CreateTestBuilding creates a building placed by a character
func CreateTestBuilding(id, creatorID string) *entities.Building {
	return &entities.Building{
		ID:          id,
		EntityID:    10,
		CurrentHP:   500,
		Position:    entities.Vector3{X: 1, Y: 0, Z: 2},
		CreatorID:   creatorID,
		CreatorName: "builder",
	}
}

// CreateTestLocation creates a map instance location
func CreateTestLocation(mapName string) entities.BuildingLocation {
	return entities.BuildingLocation{Channel: "default", MapName: mapName}
}

// CreateTestMail creates an unread mail carrying gold
func CreateTestMail(receiverID string, gold int) *entities.Mail {
	return &entities.Mail{
		SenderID:   "system",
		SenderName: "System",
		ReceiverID: receiverID,
		Title:      "Reward",
		Content:    "Thanks for playing",
		Gold:       gold,
	}
}
