package middleware

import (
	"github.com/ahmetcoskunkizilkaya/music-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS lets browser clients call the API and read the request id header
// that the requestid middleware sets on every response.
func CORS(cfg *config.Config) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Authorization, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		ExposeHeaders: "X-Request-ID",
		MaxAge:        600,
	})
}
