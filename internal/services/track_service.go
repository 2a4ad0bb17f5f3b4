package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrackService struct {
	db *gorm.DB
}

func NewTrackService(db *gorm.DB) *TrackService {
	return &TrackService{db: db}
}

func (s *TrackService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateTrackRequest) (*dto.TrackResponse, error) {
	title, err := cleanName("title", req.Title)
	if err != nil {
		return nil, err
	}
	if req.Duration != nil && *req.Duration < 0 {
		return nil, validationError("duration must not be negative")
	}

	var track models.Track
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.AlbumID != nil {
			// NOTE: only existence is checked. A track may be attached to an
			// album owned by someone else; product has not decided whether
			// that should require album ownership.
			var count int64
			if err := tx.Model(&models.Album{}).Where("id = ?", *req.AlbumID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return missingAlbum(*req.AlbumID)
			}
		}

		track = models.Track{
			ID:       uuid.New(),
			Title:    title,
			Duration: req.Duration,
			OwnerID:  ownerID,
			AlbumID:  req.AlbumID,
		}
		return tx.Create(&track).Error
	})
	if err != nil {
		return nil, storageError("create track", err)
	}

	resp := toTrackResponse(&track)
	return &resp, nil
}

func (s *TrackService) Get(ctx context.Context, trackID uuid.UUID) (*dto.TrackResponse, error) {
	var track models.Track
	if err := s.db.WithContext(ctx).First(&track, "id = ?", trackID).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrTrackNotFound
		}
		return nil, storageError("get track", err)
	}
	resp := toTrackResponse(&track)
	return &resp, nil
}

func (s *TrackService) List(ctx context.Context) ([]dto.TrackResponse, error) {
	var tracks []models.Track
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&tracks).Error; err != nil {
		return nil, storageError("list tracks", err)
	}
	return toTrackResponses(tracks), nil
}

func (s *TrackService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dto.TrackResponse, error) {
	var tracks []models.Track
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&tracks).Error; err != nil {
		return nil, storageError("list user tracks", err)
	}
	return toTrackResponses(tracks), nil
}

// Delete removes a track uploaded by the requester together with every
// playlist link that points at it, whoever owns those playlists.
func (s *TrackService) Delete(ctx context.Context, trackID, requesterID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var track models.Track
		if err := tx.First(&track, "id = ?", trackID).Error; err != nil {
			if isNotFound(err) {
				return ErrTrackNotFound
			}
			return err
		}
		if err := Authorize(&track, requesterID); err != nil {
			return err
		}

		unlinked := tx.Where("track_id = ?", trackID).Delete(&models.PlaylistTrack{})
		if unlinked.Error != nil {
			return unlinked.Error
		}
		if err := tx.Delete(&track).Error; err != nil {
			return err
		}

		slog.Info("track deleted", "track_id", trackID.String(), "user_id", requesterID.String(), "links_removed", unlinked.RowsAffected)
		return nil
	})
	return storageError("delete track", err)
}

func toTrackResponse(track *models.Track) dto.TrackResponse {
	return dto.TrackResponse{
		ID:       track.ID,
		Title:    track.Title,
		Duration: track.Duration,
		OwnerID:  track.OwnerID,
		AlbumID:  track.AlbumID,
	}
}

func toTrackResponses(tracks []models.Track) []dto.TrackResponse {
	result := make([]dto.TrackResponse, 0, len(tracks))
	for i := range tracks {
		result = append(result, toTrackResponse(&tracks[i]))
	}
	return result
}
