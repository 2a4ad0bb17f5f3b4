package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is a private, owner-scoped set of tracks.
type Playlist struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:100;uniqueIndex:idx_playlists_owner_name" json:"name"`
	Description *string   `gorm:"size:500" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_playlists_owner_name" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// OwnerKey returns uuid.Nil for a nil playlist, which never matches a user.
func (p *Playlist) OwnerKey() uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return p.OwnerID
}

// PlaylistTrack is a membership link. The composite primary key makes a
// (playlist, track) pair unique.
type PlaylistTrack struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey" json:"playlist_id"`
	TrackID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"track_id"`
	CreatedAt  time.Time `json:"created_at"`

	Playlist Playlist `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"-"`
	Track    Track    `gorm:"foreignKey:TrackID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PlaylistTrack) TableName() string {
	return "playlist_tracks"
}
