package routes

import (
	"time"

	"fileshare-api/internal/handlers"
	"fileshare-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
)

func SetupRoutes(app *fiber.App) {
	// Monitor route
	app.Get("/metrics", monitor.New())

	api := app.Group("/api")

	// Health check route
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"service":   "fileshare-api",
			"timestamp": time.Now().UTC(),
		})
	})

	// Auth routes
	authHandler := handlers.NewAuthHandler()

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.Protected(), authHandler.Me)

	// File routes
	fileHandler := handlers.NewFileHandler()

	files := api.Group("/files")
	files.Post("/upload", middleware.Protected(), fileHandler.UploadFile)
	files.Get("/my-files", middleware.Protected(), fileHandler.MyFiles)
	files.Get("/recent", middleware.Protected(), fileHandler.RecentFiles)
	files.Get("/stats", middleware.Protected(), fileHandler.Stats)
	files.Post("/share-email", middleware.Protected(), fileHandler.ShareByEmail)
	files.Get("/share/:shareId", fileHandler.SharedFile)
	files.Get("/download/:shareId", fileHandler.DownloadFile)
	files.Delete("/:fileId", middleware.Protected(), fileHandler.DeleteFile)
}
