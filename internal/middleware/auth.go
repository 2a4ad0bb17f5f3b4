package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// UserResolver looks up the account behind a token subject.
type UserResolver interface {
	ResolveUser(ctx context.Context, subject string) (*models.User, error)
}

// JWTProtected verifies the bearer token signature and expiry.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey: session.TokenKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthenticated(c)
		},
	})
}

// CurrentUser must run after JWTProtected. It resolves the token subject to
// a stored user; a subject without a user is treated like a bad token.
func CurrentUser(users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub, err := session.GetSubject(c)
		if err != nil {
			return unauthenticated(c)
		}

		user, err := users.ResolveUser(c.UserContext(), sub)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return unauthenticated(c)
			}
			slog.Error("failed to resolve token subject", "error", err, "path", c.Path())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Code: "STORAGE_ERROR", Message: "Internal server error",
			})
		}

		session.SetUser(c, user)
		return c.Next()
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    "UNAUTHENTICATED",
		Message: "Unauthorized: invalid or expired token",
	})
}
