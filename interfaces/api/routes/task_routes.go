package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	tasks := api.Group("/tasks")
	tasks.Use(auth)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Get("/export", h.TaskHandler.ExportTasks)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Post("/:id/complete", h.TaskHandler.CompleteTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
