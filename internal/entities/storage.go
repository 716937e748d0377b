package entities

import "fmt"

// StorageType identifies which kind of owner a storage container belongs to
type StorageType int

const (
	StorageTypeNone StorageType = iota
	StorageTypePlayer
	StorageTypeGuild
	StorageTypeBuilding
)

func (t StorageType) String() string {
	switch t {
	case StorageTypePlayer:
		return "player"
	case StorageTypeGuild:
		return "guild"
	case StorageTypeBuilding:
		return "building"
	}
	return "none"
}

// StorageID identifies one inventory container
type StorageID struct {
	Type    StorageType `json:"type"`
	OwnerID string      `json:"owner_id"`
}

// NewStorageID builds a storage id
func NewStorageID(storageType StorageType, ownerID string) StorageID {
	return StorageID{Type: storageType, OwnerID: ownerID}
}

func (id StorageID) String() string {
	return fmt.Sprintf("%s:%s", id.Type, id.OwnerID)
}
