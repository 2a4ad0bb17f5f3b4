package models

import (
	"time"

	"github.com/google/uuid"
)

// Track is uploaded metadata. OwnerID is the uploader and never changes;
// AlbumID is optional and cleared when the album goes away.
type Track struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"not null;size:100" json:"title"`
	Duration  *int       `json:"duration"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	AlbumID   *uuid.UUID `gorm:"type:uuid;index" json:"album_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Owner User   `gorm:"foreignKey:OwnerID" json:"-"`
	Album *Album `gorm:"foreignKey:AlbumID;constraint:OnDelete:SET NULL" json:"-"`
}

// OwnerKey returns uuid.Nil for a nil track, which never matches a user.
func (t *Track) OwnerKey() uuid.UUID {
	if t == nil {
		return uuid.Nil
	}
	return t.OwnerID
}
