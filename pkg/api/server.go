package api

import (
	"github.com/gofetch/gofetch/pkg/api/routes"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("stats", routes.APIStats)

	routes.StationsRouter(group.Group("/stations"))
	routes.TrainsRouter(group.Group("/trains"))

	routes.PickupsRouter(group.Group("/pickups", EnsureValidToken()))
	routes.SettingsRouter(group.Group("/settings", EnsureValidToken()))
	routes.TravelRouter(group.Group("/travel", EnsureValidToken()))
	routes.AccountRouter(group.Group("/account", EnsureValidToken()))

	return webApp.Listen(listen)
}
