package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.LanguageMiddleware)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("", handler.ListUsers)
	users.Post("", handler.ManagerOnly, handler.CreateUser)

	checklists := api.Group("/checklists", handler.AuthRequired)
	checklists.Get("", handler.ListChecklists)
	checklists.Get("/:id", handler.GetChecklist)
	checklists.Post("", handler.ManagerOnly, handler.CreateChecklist)
	checklists.Put("/:id", handler.ManagerOnly, handler.UpdateChecklist)
	checklists.Delete("/:id", handler.ManagerOnly, handler.DeleteChecklist)
	checklists.Post("/:id/tasks", handler.ManagerOnly, handler.CreateTask)
	checklists.Post("/:id/finalize", handler.FinalizeChecklist)

	tasks := api.Group("/tasks", handler.AuthRequired)
	tasks.Put("/:id", handler.ManagerOnly, handler.UpdateTask)
	tasks.Delete("/:id", handler.ManagerOnly, handler.DeleteTask)
	tasks.Post("/:id/toggle", handler.ToggleTask)

	alerts := api.Group("/alerts", handler.AuthRequired, handler.ManagerOnly)
	alerts.Get("", handler.ListAlerts)
	alerts.Post("/:id/resolve", handler.ResolveAlert)

	reports := api.Group("/reports", handler.AuthRequired, handler.ManagerOnly)
	reports.Get("/summary", handler.Summary)
}
