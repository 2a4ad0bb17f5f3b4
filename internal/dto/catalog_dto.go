package dto

import (
	"github.com/google/uuid"
)

type CreateAlbumRequest struct {
	Title string `json:"title"`
}

type AlbumResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	ReleaseDate string      `json:"release_date"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	OwnerName   string      `json:"owner_name"`
	TrackIDs    []uuid.UUID `json:"track_ids"`
}

type CreateTrackRequest struct {
	Title    string     `json:"title"`
	Duration *int       `json:"duration"`
	AlbumID  *uuid.UUID `json:"album_id"`
}

type TrackResponse struct {
	ID       uuid.UUID  `json:"id"`
	Title    string     `json:"title"`
	Duration *int       `json:"duration"`
	OwnerID  uuid.UUID  `json:"owner_id"`
	AlbumID  *uuid.UUID `json:"album_id"`
}
