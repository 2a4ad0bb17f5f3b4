package handlers

import (
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type TrackHandler struct {
	service *services.TrackService
}

func NewTrackHandler(service *services.TrackService) *TrackHandler {
	return &TrackHandler{service: service}
}

func (h *TrackHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTrackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	track, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(track)
}

func (h *TrackHandler) List(c *fiber.Ctx) error {
	tracks, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

func (h *TrackHandler) ListMine(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	tracks, err := h.service.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tracks)
}

func (h *TrackHandler) Get(c *fiber.Ctx) error {
	trackID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid track ID")
	}

	track, err := h.service.Get(c.UserContext(), trackID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(track)
}

func (h *TrackHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	trackID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid track ID")
	}

	if err := h.service.Delete(c.UserContext(), trackID, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Track deleted"})
}
