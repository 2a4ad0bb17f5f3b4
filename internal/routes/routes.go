package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/music-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Albums    *handlers.AlbumHandler
	Tracks    *handlers.TrackHandler
	Playlists *handlers.PlaylistHandler
}

func Setup(app *fiber.App, cfg *config.Config, users middleware.UserResolver, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	if cfg.RateLimit > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimit,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	jwt := middleware.JWTProtected(cfg)
	user := middleware.CurrentUser(users)

	api.Get("/health", h.Health.Check)

	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", jwt, user, h.Auth.Logout)
	auth.Get("/me", jwt, user, h.Auth.Me)

	// Catalog listings are public; mutations need an owner.
	albums := api.Group("/albums")
	albums.Get("/", h.Albums.List)
	albums.Get("/my", jwt, user, h.Albums.ListMine)
	albums.Get("/:id", h.Albums.Get)
	albums.Post("/", jwt, user, h.Albums.Create)
	albums.Delete("/:id", jwt, user, h.Albums.Delete)

	tracks := api.Group("/tracks")
	tracks.Get("/", h.Tracks.List)
	tracks.Get("/all", h.Tracks.List)
	tracks.Get("/my", jwt, user, h.Tracks.ListMine)
	tracks.Get("/:id", h.Tracks.Get)
	tracks.Post("/", jwt, user, h.Tracks.Create)
	tracks.Delete("/:id", jwt, user, h.Tracks.Delete)

	// Playlists are private: every route is authenticated.
	playlists := api.Group("/playlists", jwt, user)
	playlists.Post("/", h.Playlists.Create)
	playlists.Get("/", h.Playlists.List)
	playlists.Get("/:id", h.Playlists.Get)
	playlists.Patch("/:id", h.Playlists.Update)
	playlists.Put("/:id", h.Playlists.Update)
	playlists.Delete("/:id", h.Playlists.Delete)
	playlists.Post("/:id/add-track/:track_id", h.Playlists.AddTrack)
	playlists.Delete("/:id/remove-track/:track_id", h.Playlists.RemoveTrack)
}
