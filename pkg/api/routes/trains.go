package routes

import (
	"context"
	"strings"

	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

func TrainsRouter(router fiber.Router) {
	router.Get("/:station/arrivals", getTrainArrivals)
	router.Get("/:station/services/:serviceID", getTrainService)
}

func getTrainArrivals(c *fiber.Ctx) error {
	stationCode := strings.ToUpper(c.Params("station"))

	services, err := RailClient.Arrivals(c.Context(), stationCode)

	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not retrieve live arrivals board",
		})
	}

	return c.JSON(services)
}

func getTrainService(c *fiber.Ctx) error {
	stationCode := strings.ToUpper(c.Params("station"))
	serviceID := c.Params("serviceID")

	// The live provider keys calling points by station display name, so
	// resolve the CRS code through the stations dataset first
	stationName := c.Query("name")

	stationsCollection := database.GetCollection("stations")
	var station *gfdf.Station
	stationsCollection.FindOne(context.Background(), bson.M{"crs": stationCode}).Decode(&station)

	if station != nil {
		stationName = station.Name
	}

	if stationName == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Unknown station, provide a name parameter",
		})
	}

	arrival, err := RailClient.ServiceDetails(c.Context(), stationCode, stationName, serviceID)

	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not retrieve service details",
		})
	}

	return c.JSON(arrival)
}
