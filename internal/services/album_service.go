package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AlbumService struct {
	db *gorm.DB
}

func NewAlbumService(db *gorm.DB) *AlbumService {
	return &AlbumService{db: db}
}

func (s *AlbumService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateAlbumRequest) (*dto.AlbumResponse, error) {
	title, err := cleanName("title", req.Title)
	if err != nil {
		return nil, err
	}

	var album models.Album
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Album{}).
			Where("owner_id = ? AND title = ?", ownerID, title).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTitle
		}

		album = models.Album{
			ID:          uuid.New(),
			Title:       title,
			ReleaseDate: datatypes.Date(time.Now().UTC()),
			OwnerID:     ownerID,
		}
		if err := tx.Create(&album).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateTitle
			}
			return err
		}
		return tx.First(&album.Owner, "id = ?", ownerID).Error
	})
	if err != nil {
		return nil, storageError("create album", err)
	}

	resp := toAlbumResponse(&album, nil)
	return &resp, nil
}

// Get is a public read; albums are visible to everyone.
func (s *AlbumService) Get(ctx context.Context, albumID uuid.UUID) (*dto.AlbumResponse, error) {
	db := s.db.WithContext(ctx)

	var album models.Album
	if err := db.Preload("Owner").First(&album, "id = ?", albumID).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAlbumNotFound
		}
		return nil, storageError("get album", err)
	}

	tracks, err := albumTrackIDs(db, []uuid.UUID{album.ID})
	if err != nil {
		return nil, storageError("get album tracks", err)
	}

	resp := toAlbumResponse(&album, tracks[album.ID])
	return &resp, nil
}

func (s *AlbumService) List(ctx context.Context) ([]dto.AlbumResponse, error) {
	return s.list(ctx, nil)
}

func (s *AlbumService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]dto.AlbumResponse, error) {
	return s.list(ctx, &ownerID)
}

func (s *AlbumService) list(ctx context.Context, ownerID *uuid.UUID) ([]dto.AlbumResponse, error) {
	db := s.db.WithContext(ctx)
	query := db.Model(&models.Album{})
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var albums []models.Album
	if err := query.Preload("Owner").Order("created_at ASC").Find(&albums).Error; err != nil {
		return nil, storageError("list albums", err)
	}

	ids := make([]uuid.UUID, len(albums))
	for i := range albums {
		ids[i] = albums[i].ID
	}
	tracks, err := albumTrackIDs(db, ids)
	if err != nil {
		return nil, storageError("list album tracks", err)
	}

	result := make([]dto.AlbumResponse, 0, len(albums))
	for i := range albums {
		result = append(result, toAlbumResponse(&albums[i], tracks[albums[i].ID]))
	}
	return result, nil
}

// Delete removes an album owned by the requester. Its tracks survive with
// their album reference cleared.
func (s *AlbumService) Delete(ctx context.Context, albumID, requesterID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.First(&album, "id = ?", albumID).Error; err != nil {
			if isNotFound(err) {
				return ErrAlbumNotFound
			}
			return err
		}
		if err := Authorize(&album, requesterID); err != nil {
			return err
		}

		cleared := tx.Model(&models.Track{}).Where("album_id = ?", albumID).Update("album_id", nil)
		if cleared.Error != nil {
			return cleared.Error
		}
		if err := tx.Delete(&album).Error; err != nil {
			return err
		}

		slog.Info("album deleted", "album_id", albumID.String(), "user_id", requesterID.String(), "tracks_detached", cleared.RowsAffected)
		return nil
	})
	return storageError("delete album", err)
}

func albumTrackIDs(db *gorm.DB, albumIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	result := make(map[uuid.UUID][]uuid.UUID, len(albumIDs))
	if len(albumIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ID      uuid.UUID
		AlbumID uuid.UUID
	}
	if err := db.Model(&models.Track{}).
		Select("id, album_id").
		Where("album_id IN ?", albumIDs).
		Order("created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.AlbumID] = append(result[row.AlbumID], row.ID)
	}
	return result, nil
}

func toAlbumResponse(album *models.Album, trackIDs []uuid.UUID) dto.AlbumResponse {
	if trackIDs == nil {
		trackIDs = []uuid.UUID{}
	}
	return dto.AlbumResponse{
		ID:          album.ID,
		Title:       album.Title,
		ReleaseDate: time.Time(album.ReleaseDate).Format(time.DateOnly),
		OwnerID:     album.OwnerID,
		OwnerName:   album.Owner.Username,
		TrackIDs:    trackIDs,
	}
}
