package handlers

import (
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type AlbumHandler struct {
	service *services.AlbumService
}

func NewAlbumHandler(service *services.AlbumService) *AlbumHandler {
	return &AlbumHandler{service: service}
}

func (h *AlbumHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateAlbumRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	album, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(album)
}

func (h *AlbumHandler) List(c *fiber.Ctx) error {
	albums, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

func (h *AlbumHandler) ListMine(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	albums, err := h.service.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(albums)
}

func (h *AlbumHandler) Get(c *fiber.Ctx) error {
	albumID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid album ID")
	}

	album, err := h.service.Get(c.UserContext(), albumID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(album)
}

func (h *AlbumHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	albumID, ok := parseIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid album ID")
	}

	if err := h.service.Delete(c.UserContext(), albumID, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Album deleted"})
}
