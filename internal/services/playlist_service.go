package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaylistService manages playlists and their track membership. Every
// mutation runs in a single transaction and validates referenced tracks
// before writing any link, so a failure never leaves partial state.
type PlaylistService struct {
	db *gorm.DB
}

func NewPlaylistService(db *gorm.DB) *PlaylistService {
	return &PlaylistService{db: db}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreatePlaylistRequest) (*dto.PlaylistResponse, error) {
	name, err := cleanName("name", req.Name)
	if err != nil {
		return nil, err
	}
	description, err := cleanDescription(req.Description)
	if err != nil {
		return nil, err
	}

	var resp *dto.PlaylistResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, ownerID, name, uuid.Nil); err != nil {
			return err
		}

		trackIDs := uniqueIDs(req.TrackIDs)
		if err := validateTracks(tx, trackIDs); err != nil {
			return err
		}

		playlist := models.Playlist{
			ID:          uuid.New(),
			Name:        name,
			Description: description,
			OwnerID:     ownerID,
		}
		if err := tx.Create(&playlist).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateName
			}
			return err
		}
		if err := insertLinks(tx, playlist.ID, trackIDs); err != nil {
			return err
		}

		resp, err = playlistResponse(tx, &playlist)
		return err
	})
	if err != nil {
		return nil, storageError("create playlist", err)
	}
	return resp, nil
}

// List returns only the requester's playlists.
func (s *PlaylistService) List(ctx context.Context, ownerID uuid.UUID) ([]dto.PlaylistResponse, error) {
	db := s.db.WithContext(ctx)

	var playlists []models.Playlist
	if err := db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&playlists).Error; err != nil {
		return nil, storageError("list playlists", err)
	}

	ids := make([]uuid.UUID, len(playlists))
	for i := range playlists {
		ids[i] = playlists[i].ID
	}

	var links []models.PlaylistTrack
	if len(ids) > 0 {
		if err := db.Where("playlist_id IN ?", ids).Order("created_at ASC, track_id ASC").Find(&links).Error; err != nil {
			return nil, storageError("list playlist tracks", err)
		}
	}
	byPlaylist := make(map[uuid.UUID][]uuid.UUID, len(playlists))
	for _, link := range links {
		byPlaylist[link.PlaylistID] = append(byPlaylist[link.PlaylistID], link.TrackID)
	}

	result := make([]dto.PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		result = append(result, toPlaylistResponse(&playlists[i], byPlaylist[playlists[i].ID]))
	}
	return result, nil
}

// Get applies the ownership check to reads too; playlists are private.
func (s *PlaylistService) Get(ctx context.Context, playlistID, requesterID uuid.UUID) (*dto.PlaylistResponse, error) {
	db := s.db.WithContext(ctx)

	playlist, err := loadOwnedPlaylist(db, playlistID, requesterID)
	if err != nil {
		return nil, storageError("get playlist", err)
	}
	resp, err := playlistResponse(db, playlist)
	if err != nil {
		return nil, storageError("get playlist tracks", err)
	}
	return resp, nil
}

// Update applies only the fields present in req. A supplied track list
// replaces the current membership as a whole, or not at all.
func (s *PlaylistService) Update(ctx context.Context, playlistID, requesterID uuid.UUID, req dto.UpdatePlaylistRequest) (*dto.PlaylistResponse, error) {
	var resp *dto.PlaylistResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := loadOwnedPlaylist(tx, playlistID, requesterID)
		if err != nil {
			return err
		}

		changes := map[string]interface{}{}

		if req.Name.Set {
			if !req.Name.Valid {
				return validationError("name cannot be null")
			}
			name, err := cleanName("name", req.Name.Value)
			if err != nil {
				return err
			}
			if name != playlist.Name {
				if err := ensureNameFree(tx, playlist.OwnerID, name, playlist.ID); err != nil {
					return err
				}
				changes["name"] = name
				playlist.Name = name
			}
		}

		if req.Description.Set {
			var description *string
			if req.Description.Valid {
				description, err = cleanDescription(&req.Description.Value)
				if err != nil {
					return err
				}
			}
			changes["description"] = description
			playlist.Description = description
		}

		if req.TrackIDs.Set {
			trackIDs := uniqueIDs(req.TrackIDs.Value)
			if err := validateTracks(tx, trackIDs); err != nil {
				return err
			}
			if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistTrack{}).Error; err != nil {
				return err
			}
			if err := insertLinks(tx, playlist.ID, trackIDs); err != nil {
				return err
			}
		}

		if len(changes) > 0 {
			if err := tx.Model(&models.Playlist{}).Where("id = ?", playlist.ID).Updates(changes).Error; err != nil {
				if isDuplicateKey(err) {
					return ErrDuplicateName
				}
				return err
			}
		}

		resp, err = playlistResponse(tx, playlist)
		return err
	})
	if err != nil {
		return nil, storageError("update playlist", err)
	}
	return resp, nil
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, requesterID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := loadOwnedPlaylist(tx, playlistID, requesterID)
		if err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(playlist).Error; err != nil {
			return err
		}
		slog.Info("playlist deleted", "playlist_id", playlistID.String(), "user_id", requesterID.String())
		return nil
	})
	return storageError("delete playlist", err)
}

func (s *PlaylistService) AddTrack(ctx context.Context, playlistID, trackID, requesterID uuid.UUID) (*dto.PlaylistResponse, error) {
	var resp *dto.PlaylistResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := loadOwnedPlaylist(tx, playlistID, requesterID)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Track{}).Where("id = ?", trackID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTrackNotFound
		}

		linked, err := isLinked(tx, playlist.ID, trackID)
		if err != nil {
			return err
		}
		if linked {
			return ErrAlreadyLinked
		}

		// A concurrent writer can still win between the check and the
		// insert; the primary key turns that into a duplicate-key error.
		link := models.PlaylistTrack{PlaylistID: playlist.ID, TrackID: trackID, CreatedAt: time.Now().UTC()}
		if err := tx.Create(&link).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyLinked
			}
			return err
		}

		resp, err = playlistResponse(tx, playlist)
		return err
	})
	if err != nil {
		return nil, storageError("add track to playlist", err)
	}
	return resp, nil
}

func (s *PlaylistService) RemoveTrack(ctx context.Context, playlistID, trackID, requesterID uuid.UUID) (*dto.PlaylistResponse, error) {
	var resp *dto.PlaylistResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := loadOwnedPlaylist(tx, playlistID, requesterID)
		if err != nil {
			return err
		}

		result := tx.Where("playlist_id = ? AND track_id = ?", playlist.ID, trackID).Delete(&models.PlaylistTrack{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotInPlaylist
		}

		resp, err = playlistResponse(tx, playlist)
		return err
	})
	if err != nil {
		return nil, storageError("remove track from playlist", err)
	}
	return resp, nil
}

func loadOwnedPlaylist(db *gorm.DB, playlistID, requesterID uuid.UUID) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := db.First(&playlist, "id = ?", playlistID).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if err := Authorize(&playlist, requesterID); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ensureNameFree rejects name if the owner already has another playlist
// with exactly that name. except is the playlist being renamed, if any.
func ensureNameFree(db *gorm.DB, ownerID uuid.UUID, name string, except uuid.UUID) error {
	query := db.Model(&models.Playlist{}).Where("owner_id = ? AND name = ?", ownerID, name)
	if except != uuid.Nil {
		query = query.Where("id <> ?", except)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	return nil
}

// validateTracks fails on the first id, in request order, that has no track.
func validateTracks(db *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	var found []uuid.UUID
	if err := db.Model(&models.Track{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	exists := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		exists[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := exists[id]; !ok {
			return missingTrack(id)
		}
	}
	return nil
}

func insertLinks(db *gorm.DB, playlistID uuid.UUID, trackIDs []uuid.UUID) error {
	if len(trackIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	links := make([]models.PlaylistTrack, len(trackIDs))
	for i, id := range trackIDs {
		links[i] = models.PlaylistTrack{
			PlaylistID: playlistID,
			TrackID:    id,
			CreatedAt:  now.Add(time.Duration(i) * time.Microsecond),
		}
	}
	if err := db.Create(&links).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrAlreadyLinked
		}
		return err
	}
	return nil
}

func isLinked(db *gorm.DB, playlistID, trackID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.PlaylistTrack{}).
		Where("playlist_id = ? AND track_id = ?", playlistID, trackID).
		Count(&count).Error
	return count > 0, err
}

func playlistTrackIDs(db *gorm.DB, playlistID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := db.Model(&models.PlaylistTrack{}).
		Where("playlist_id = ?", playlistID).
		Order("created_at ASC, track_id ASC").
		Pluck("track_id", &ids).Error
	return ids, err
}

func playlistResponse(db *gorm.DB, playlist *models.Playlist) (*dto.PlaylistResponse, error) {
	trackIDs, err := playlistTrackIDs(db, playlist.ID)
	if err != nil {
		return nil, err
	}
	resp := toPlaylistResponse(playlist, trackIDs)
	return &resp, nil
}

func toPlaylistResponse(playlist *models.Playlist, trackIDs []uuid.UUID) dto.PlaylistResponse {
	if trackIDs == nil {
		trackIDs = []uuid.UUID{}
	}
	return dto.PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		OwnerID:     playlist.OwnerID,
		TrackIDs:    trackIDs,
	}
}
