package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAlbumService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAlbumService(db)
	ctx := context.Background()

	owner := testutil.NewUser(t, db)

	album, err := svc.Create(ctx, owner.ID, dto.CreateAlbumRequest{Title: "Demos"})
	require.NoError(t, err)
	assert.Equal(t, "Demos", album.Title)
	assert.Equal(t, owner.ID, album.OwnerID)
	assert.Equal(t, owner.Username, album.OwnerName)
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), album.ReleaseDate)
	assert.Empty(t, album.TrackIDs)

	_, err = svc.Create(ctx, owner.ID, dto.CreateAlbumRequest{Title: "Demos"})
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	other := testutil.NewUser(t, db)
	_, err = svc.Create(ctx, other.ID, dto.CreateAlbumRequest{Title: "Demos"})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, owner.ID, dto.CreateAlbumRequest{Title: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAlbumService_CreateLosesTitleRace(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAlbumService(db)
	ctx := context.Background()
	owner := testutil.NewUser(t, db)

	competingInsert(t, db, false, func(stmt *gorm.Statement) (string, []interface{}, bool) {
		album, ok := stmt.Dest.(*models.Album)
		if !ok {
			return "", nil, false
		}
		now := time.Now().UTC()
		return "INSERT INTO albums (id, title, release_date, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			[]interface{}{uuid.New(), album.Title, now, album.OwnerID, now, now}, true
	})

	_, err := svc.Create(ctx, owner.ID, dto.CreateAlbumRequest{Title: "Demos"})
	assert.ErrorIs(t, err, ErrDuplicateTitle)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestAlbumService_GetAndList(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAlbumService(db)
	ctx := context.Background()

	alice := testutil.NewUser(t, db)
	bob := testutil.NewUser(t, db)
	a1 := testutil.NewAlbum(t, db, alice)
	testutil.NewAlbum(t, db, bob)
	track := testutil.NewTrack(t, db, alice, a1)

	got, err := svc.Get(ctx, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{track.ID}, got.TrackIDs)
	assert.Equal(t, alice.Username, got.OwnerName)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrAlbumNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a1.ID, mine[0].ID)
}

func TestAlbumService_DeleteDetachesTracks(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAlbumService(db)
	ctx := context.Background()

	owner := testutil.NewUser(t, db)
	stranger := testutil.NewUser(t, db)
	album := testutil.NewAlbum(t, db, owner)
	track := testutil.NewTrack(t, db, owner, album)

	assert.ErrorIs(t, svc.Delete(ctx, album.ID, stranger.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, album.ID, owner.ID))
	assert.ErrorIs(t, svc.Delete(ctx, album.ID, owner.ID), ErrAlbumNotFound)

	var stored models.Track
	require.NoError(t, db.First(&stored, "id = ?", track.ID).Error)
	assert.Nil(t, stored.AlbumID)
}

func TestTrackService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTrackService(db)
	ctx := context.Background()

	owner := testutil.NewUser(t, db)
	album := testutil.NewAlbum(t, db, owner)
	duration := 215

	track, err := svc.Create(ctx, owner.ID, dto.CreateTrackRequest{Title: "Song A", Duration: &duration, AlbumID: &album.ID})
	require.NoError(t, err)
	assert.Equal(t, "Song A", track.Title)
	assert.Equal(t, owner.ID, track.OwnerID)
	require.NotNil(t, track.AlbumID)
	assert.Equal(t, album.ID, *track.AlbumID)
	require.NotNil(t, track.Duration)
	assert.Equal(t, 215, *track.Duration)

	loose, err := svc.Create(ctx, owner.ID, dto.CreateTrackRequest{Title: "Loose"})
	require.NoError(t, err)
	assert.Nil(t, loose.AlbumID)
	assert.Nil(t, loose.Duration)

	missing := uuid.New()
	_, err = svc.Create(ctx, owner.ID, dto.CreateTrackRequest{Title: "Orphan", AlbumID: &missing})
	assert.ErrorIs(t, err, ErrReferencedAlbumNotFound)

	negative := -1
	_, err = svc.Create(ctx, owner.ID, dto.CreateTrackRequest{Title: "Backwards", Duration: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, owner.ID, dto.CreateTrackRequest{Title: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

// Attaching a track to somebody else's album is currently allowed.
func TestTrackService_CreateOnForeignAlbum(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTrackService(db)
	ctx := context.Background()

	albumOwner := testutil.NewUser(t, db)
	uploader := testutil.NewUser(t, db)
	album := testutil.NewAlbum(t, db, albumOwner)

	track, err := svc.Create(ctx, uploader.ID, dto.CreateTrackRequest{Title: "Guest", AlbumID: &album.ID})
	require.NoError(t, err)
	assert.Equal(t, uploader.ID, track.OwnerID)
	assert.Equal(t, album.ID, *track.AlbumID)
}

func TestTrackService_GetAndList(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTrackService(db)
	ctx := context.Background()

	alice := testutil.NewUser(t, db)
	bob := testutil.NewUser(t, db)
	mine := testutil.NewTrack(t, db, alice, nil)
	testutil.NewTrack(t, db, bob, nil)

	got, err := svc.Get(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.Title, got.Title)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrTrackNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owned, err := svc.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, mine.ID, owned[0].ID)
}

func TestTrackService_DeleteRemovesPlaylistLinks(t *testing.T) {
	db := testutil.NewDB(t)
	tracks := NewTrackService(db)
	playlists := NewPlaylistService(db)
	ctx := context.Background()

	uploader := testutil.NewUser(t, db)
	listener := testutil.NewUser(t, db)
	doomed := testutil.NewTrack(t, db, uploader, nil)
	kept := testutil.NewTrack(t, db, uploader, nil)

	p1, err := playlists.Create(ctx, uploader.ID, dto.CreatePlaylistRequest{Name: "P1", TrackIDs: []uuid.UUID{doomed.ID, kept.ID}})
	require.NoError(t, err)
	p2, err := playlists.Create(ctx, listener.ID, dto.CreatePlaylistRequest{Name: "P2", TrackIDs: []uuid.UUID{doomed.ID}})
	require.NoError(t, err)

	assert.ErrorIs(t, tracks.Delete(ctx, doomed.ID, listener.ID), ErrForbidden)
	require.NoError(t, tracks.Delete(ctx, doomed.ID, uploader.ID))
	assert.ErrorIs(t, tracks.Delete(ctx, doomed.ID, uploader.ID), ErrTrackNotFound)

	got1, err := playlists.Get(ctx, p1.ID, uploader.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{kept.ID}, got1.TrackIDs)

	got2, err := playlists.Get(ctx, p2.ID, listener.ID)
	require.NoError(t, err)
	assert.Empty(t, got2.TrackIDs)
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	track := &models.Track{OwnerID: owner}

	assert.NoError(t, Authorize(track, owner))
	assert.ErrorIs(t, Authorize(track, uuid.New()), ErrForbidden)
	assert.ErrorIs(t, Authorize(track, uuid.Nil), ErrForbidden)
	assert.ErrorIs(t, Authorize(nil, owner), ErrForbidden)

	var missing *models.Playlist
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, Authorize(missing, owner), ErrForbidden)
	})
}
