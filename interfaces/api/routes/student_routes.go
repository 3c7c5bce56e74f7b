package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskchat/interfaces/api/handlers"
)

func SetupStudentRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	students := api.Group("/students")
	students.Use(auth)
	students.Post("/", h.StudentHandler.CreateStudent)
	students.Get("/", h.StudentHandler.ListStudents)
	students.Get("/:id", h.StudentHandler.GetStudent)
	students.Put("/:id", h.StudentHandler.UpdateStudent)
	students.Delete("/:id", h.StudentHandler.DeleteStudent)
}
