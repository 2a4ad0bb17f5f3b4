package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

// Metrics registers request metrics for the app and exposes them at path.
func Metrics(app *fiber.App, serviceName, path string) {
	prom := fiberprometheus.New(serviceName)
	prom.RegisterAt(app, path)
	app.Use(prom.Middleware)
}
