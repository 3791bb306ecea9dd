package routes

import (
	"github.com/amwangi254/certihub/handlers"
	"github.com/amwangi254/certihub/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	students := api.Group("/students")
	students.Get("", handlers.ListStudents)
	students.Get("/:studentId", handlers.GetStudent)

	admin := students.Group("", middleware.AdminRequired())
	admin.Post("", handlers.CreateStudent)
	admin.Post("/import", handlers.ImportStudentsCSV)
	admin.Put("/:studentId", handlers.UpdateStudent)
	admin.Delete("/:studentId", handlers.DeleteStudent)
}
