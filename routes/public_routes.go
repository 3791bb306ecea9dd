package routes

import (
	"github.com/amwangi254/certihub/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/verify/:number", handlers.VerifyCertificate)
}
