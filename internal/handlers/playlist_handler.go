package handlers

import (
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type PlaylistHandler struct {
	service *services.PlaylistService
}

func NewPlaylistHandler(service *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	playlist, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(playlist)
}

func (h *PlaylistHandler) List(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlists, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(playlists)
}

func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid playlist ID")
	}

	playlist, err := h.service.Get(c.UserContext(), playlistID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(playlist)
}

func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid playlist ID")
	}

	var req dto.UpdatePlaylistRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	playlist, err := h.service.Update(c.UserContext(), playlistID, userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(playlist)
}

func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid playlist ID")
	}

	if err := h.service.Delete(c.UserContext(), playlistID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PlaylistHandler) AddTrack(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid playlist ID")
	}
	trackID, ok := parseIDParam(c, "track_id")
	if !ok {
		return badRequest(c, "Invalid track ID")
	}

	playlist, err := h.service.AddTrack(c.UserContext(), playlistID, trackID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(playlist)
}

func (h *PlaylistHandler) RemoveTrack(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid playlist ID")
	}
	trackID, ok := parseIDParam(c, "track_id")
	if !ok {
		return badRequest(c, "Invalid track ID")
	}

	playlist, err := h.service.RemoveTrack(c.UserContext(), playlistID, trackID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(playlist)
}
