package routes

import (
	"github.com/gofetch/gofetch/pkg/api/stats"
	"github.com/gofiber/fiber/v2"
)

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": "v0.1",
	})
}

func APIStats(c *fiber.Ctx) error {
	return c.JSON(stats.CurrentRecordsStats)
}
