// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Password is the plain-text password of every user made by NewUser.
const Password = "secret-pass"

// NewDB opens a migrated in-memory SQLite database. The pool is pinned to a
// single connection because every new connection to :memory: starts empty.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:?_foreign_keys=on"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewUser stores a user with a random username and email.
func NewUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     gofakeit.Username(),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:12]),
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// NewAlbum stores an album owned by owner.
func NewAlbum(t *testing.T, db *gorm.DB, owner *models.User) *models.Album {
	t.Helper()

	album := &models.Album{
		Title:       gofakeit.Sentence(3),
		ReleaseDate: datatypes.Date(time.Now().UTC()),
		OwnerID:     owner.ID,
	}
	require.NoError(t, db.Create(album).Error)
	return album
}

// NewTrack stores a track uploaded by owner, optionally on album.
func NewTrack(t *testing.T, db *gorm.DB, owner *models.User, album *models.Album) *models.Track {
	t.Helper()

	duration := gofakeit.Number(60, 600)
	track := &models.Track{
		Title:    gofakeit.Sentence(2),
		Duration: &duration,
		OwnerID:  owner.ID,
	}
	if album != nil {
		track.AlbumID = &album.ID
	}
	require.NoError(t, db.Create(track).Error)
	return track
}
