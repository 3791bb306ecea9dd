package routes

import (
	"github.com/amwangi254/certihub/handlers"
	"github.com/amwangi254/certihub/middleware"
	"github.com/gofiber/fiber/v2"
)

func CertificateRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	certificates := api.Group("/certificates")
	certificates.Get("", handlers.ListCertificates)
	certificates.Get("/:certificateId", handlers.GetCertificate)
	certificates.Get("/:certificateId/download", handlers.DownloadCertificate)

	admin := certificates.Group("", middleware.AdminRequired())
	admin.Post("", handlers.GenerateCertificate)
	admin.Post("/bulk", handlers.BulkGenerateCertificates)
	admin.Delete("/:certificateId", handlers.DeleteCertificate)
}
