package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Album groups tracks under a title that is unique per owner. Deleting an
// album detaches its tracks instead of removing them.
type Album struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null;size:100;uniqueIndex:idx_albums_owner_title" json:"title"`
	ReleaseDate datatypes.Date `json:"release_date"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_albums_owner_title" json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// OwnerKey returns uuid.Nil for a nil album, which never matches a user.
func (a *Album) OwnerKey() uuid.UUID {
	if a == nil {
		return uuid.Nil
	}
	return a.OwnerID
}
