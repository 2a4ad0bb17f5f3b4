package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")

	ErrForbidden  = errors.New("access denied")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage error")

	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrAlbumNotFound    = errors.New("album not found")
	ErrTrackNotFound    = errors.New("track not found")

	ErrDuplicateName  = errors.New("you already have a playlist with this name")
	ErrDuplicateTitle = errors.New("you already have an album with this title")

	// Raised when a request body references an entity that does not exist,
	// as opposed to the addressed entity itself being absent.
	ErrReferencedTrackNotFound = errors.New("referenced track does not exist")
	ErrReferencedAlbumNotFound = errors.New("referenced album does not exist")

	ErrAlreadyLinked = errors.New("track is already in this playlist")
	ErrNotInPlaylist = errors.New("track is not in this playlist")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func missingTrack(id uuid.UUID) error {
	return fmt.Errorf("%w: track with id %s does not exist", ErrReferencedTrackNotFound, id)
}

func missingAlbum(id uuid.UUID) error {
	return fmt.Errorf("%w: album with id %s does not exist", ErrReferencedAlbumNotFound, id)
}

// storageError wraps an unexpected database failure. Domain errors pass
// through untouched so callers can still match them.
func storageError(op string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

var domainErrors = []error{
	ErrEmailTaken, ErrInvalidCredentials, ErrInvalidToken, ErrUserNotFound,
	ErrForbidden, ErrValidation, ErrStorage,
	ErrPlaylistNotFound, ErrAlbumNotFound, ErrTrackNotFound,
	ErrDuplicateName, ErrDuplicateTitle,
	ErrReferencedTrackNotFound, ErrReferencedAlbumNotFound,
	ErrAlreadyLinked, ErrNotInPlaylist,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
