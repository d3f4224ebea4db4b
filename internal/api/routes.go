package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes wires the public auth surface and the owner-only API onto
// the fiber app.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	apiGroup := app.Group("/api")

	auth := apiGroup.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/recover", handler.Recover)

	profile := apiGroup.Group("/profile", handler.AuthRequired)
	profile.Post("/due-date", handler.SetDueDate)
	profile.Post("/lmp", handler.SetLastMenstrualPeriod)

	apiGroup.Get("/timeline", handler.AuthRequired, handler.GetTimeline)

	milestones := apiGroup.Group("/milestones", handler.AuthRequired)
	milestones.Get("", handler.ListMilestones)
	milestones.Get("/upcoming", handler.UpcomingMilestones)
	milestones.Get("/achieved", handler.AchievedMilestones)
	milestones.Post("", handler.CreateCustomMilestone)
	milestones.Post("/:id/achieve", handler.AchieveMilestone)
	milestones.Delete("/:id/achievement", handler.UndoAchievement)

	entries := apiGroup.Group("/entries", handler.AuthRequired)
	entries.Get("/:log", handler.ListEntries)
	entries.Post("/:log/:date", handler.UpsertEntry)

	apiGroup.Get("/stats", handler.AuthRequired, handler.GetStats)

	settings := apiGroup.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Post("/clear-data", handler.ClearAllData)
}
