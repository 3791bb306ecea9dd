package routes

import (
	"github.com/amwangi254/certihub/handlers"
	"github.com/amwangi254/certihub/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)
	courses.Get("/:courseId", handlers.GetCourse)

	admin := courses.Group("", middleware.AdminRequired())
	admin.Post("", handlers.CreateCourse)
	admin.Put("/:courseId", handlers.UpdateCourse)
	admin.Delete("/:courseId", handlers.DeleteCourse)
}
