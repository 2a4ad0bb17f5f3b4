package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenKey is where the JWT middleware stores the verified token.
	TokenKey = "user"
	// UserKey holds the *models.User resolved from the token subject.
	UserKey = "current_user"
)

var ErrNoUser = errors.New("no authenticated user in context")

// GetSubject extracts the sub claim from the verified JWT in context.
func GetSubject(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return "", errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}

// SetUser records the resolved user for downstream handlers.
func SetUser(c *fiber.Ctx, user *models.User) {
	c.Locals(UserKey, user)
}

// GetUser returns the user resolved by the authentication middleware.
func GetUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(UserKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoUser
	}
	return user, nil
}

// GetUserID is a shortcut for GetUser(c).ID.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	user, err := GetUser(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}
