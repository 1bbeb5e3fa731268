package handlers

import (
	"medal-tally-system/middleware"
	"medal-tally-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func SetupScoreboardRoutes(app *fiber.App, scoreService *services.ScoreService, teamService *services.TeamService, eventService *services.EventService, sessions *session.Store) {
	api := app.Group("/api")

	// 🔓 Public reads — the publication gate is applied inside the handlers,
	// not here, because admins bypass it.
	api.Get("/teams", teamService.GetTeams)
	api.Get("/categories", eventService.GetCategories)
	api.Get("/events", eventService.GetEvents)
	api.Get("/standings", scoreService.GetStandings)
	api.Get("/events/:eventId/results", scoreService.GetEventResults)
	api.Get("/results/published", scoreService.GetPublished)

	// 🔐 Admin writes
	secured := api.Group("/", middleware.RequireAuth(sessions))
	secured.Post("/results/update", scoreService.CreateResult)
	secured.Delete("/results/:resultId", scoreService.DeleteResult)
	secured.Post("/results/publish", scoreService.SetPublished)
	secured.Post("/results/publish/schedule", scoreService.SchedulePublish)
	secured.Post("/results/publish/cancel", scoreService.CancelScheduledPublish)
	secured.Post("/events", eventService.CreateEvent)
	secured.Post("/teams/:teamId/icon", teamService.UpdateTeamIcon)
}
