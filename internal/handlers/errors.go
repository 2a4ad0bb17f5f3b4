package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type errorKind struct {
	target error
	status int
	code   string
}

// errorKinds maps each domain failure to a stable status and code. Order
// matters only where sentinels could overlap; they currently do not.
var errorKinds = []errorKind{
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{services.ErrInvalidToken, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{services.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{services.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{services.ErrPlaylistNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{services.ErrAlbumNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{services.ErrTrackNotFound, fiber.StatusNotFound, "TRACK_NOT_FOUND"},
	{services.ErrEmailTaken, fiber.StatusBadRequest, "EMAIL_TAKEN"},
	{services.ErrDuplicateName, fiber.StatusConflict, "DUPLICATE_NAME"},
	{services.ErrDuplicateTitle, fiber.StatusConflict, "DUPLICATE_TITLE"},
	{services.ErrReferencedTrackNotFound, fiber.StatusBadRequest, "TRACK_NOT_FOUND"},
	{services.ErrReferencedAlbumNotFound, fiber.StatusNotFound, "ALBUM_NOT_FOUND"},
	{services.ErrAlreadyLinked, fiber.StatusConflict, "ALREADY_LINKED"},
	{services.ErrNotInPlaylist, fiber.StatusNotFound, "NOT_IN_PLAYLIST"},
	{services.ErrValidation, fiber.StatusBadRequest, "VALIDATION_ERROR"},
}

// respondError is the single translation point from service errors to HTTP
// responses. Anything unrecognised is a storage failure: it is logged,
// reported to Sentry and hidden from the client.
func respondError(c *fiber.Ctx, err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			return c.Status(kind.status).JSON(dto.ErrorResponse{
				Error: true, Code: kind.code, Message: err.Error(),
			})
		}
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	captureException(c, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Code: "STORAGE_ERROR", Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Code: "BAD_REQUEST", Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Code: "UNAUTHENTICATED", Message: "Unauthorized",
	})
}

func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ErrorHandler is the Fiber-level fallback for errors returned from
// middleware or routing, e.g. 404 for unknown paths.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		captureException(c, err)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

// captureException reports err on the request's Sentry hub, falling back to
// the global hub when the sentry middleware is not installed.
func captureException(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
