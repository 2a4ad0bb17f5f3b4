package services

import (
	"log/slog"

	"github.com/google/uuid"
)

// Owned is implemented by every entity that has exactly one owning user.
type Owned interface {
	OwnerKey() uuid.UUID
}

// Authorize is the single ownership rule: a mutation or private read on an
// owned entity is allowed only for its owner. OwnerKey implementations are
// nil-receiver safe, so a typed nil pointer is refused like a missing entity.
func Authorize(entity Owned, requester uuid.UUID) error {
	if entity == nil || requester == uuid.Nil || entity.OwnerKey() != requester {
		slog.Warn("ownership check failed", "user_id", requester.String())
		return ErrForbidden
	}
	return nil
}
