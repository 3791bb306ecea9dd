package routes

import (
	"github.com/amwangi254/certihub/handlers"
	"github.com/amwangi254/certihub/middleware"
	"github.com/gofiber/fiber/v2"
)

func TemplateRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	templates := api.Group("/templates")
	templates.Get("", handlers.ListTemplates)
	templates.Get("/:templateId", handlers.GetTemplate)

	admin := templates.Group("", middleware.AdminRequired())
	admin.Post("/upload", handlers.UploadTemplateAsset)
	admin.Post("", handlers.CreateTemplate)
	admin.Put("/:templateId", handlers.UpdateTemplate)
	admin.Delete("/:templateId", handlers.DeleteTemplate)
}
