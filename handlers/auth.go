package handlers

import (
	"medal-tally-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	api := app.Group("/api")

	api.Post("/register", authService.Register)
	api.Post("/login", authService.Login)
	api.Post("/logout", authService.Logout)
	api.Get("/user", authService.CurrentUser)
}
