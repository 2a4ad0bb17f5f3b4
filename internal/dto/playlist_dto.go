package dto

import (
	"github.com/google/uuid"
)

type CreatePlaylistRequest struct {
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	TrackIDs    []uuid.UUID `json:"track_ids"`
}

// UpdatePlaylistRequest distinguishes a field left out of the body from one
// sent as null.
type UpdatePlaylistRequest struct {
	Name        Optional[string]      `json:"name"`
	Description Optional[string]      `json:"description"`
	TrackIDs    Optional[[]uuid.UUID] `json:"track_ids"`
}

type PlaylistResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	OwnerID     uuid.UUID   `json:"owner_id"`
	TrackIDs    []uuid.UUID `json:"track_ids"`
}
