package routes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofiber/fiber/v2"
)

func TravelRouter(router fiber.Router) {
	router.Get("/estimate", getTravelEstimate)
	router.Get("/geocode", getGeocode)
}

func getTravelEstimate(c *fiber.Ctx) error {
	if RoutingClient == nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Travel time estimates are not available",
		})
	}

	origin, err := parseCoordinates(c.Query("from"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter from must be a lat,lon pair",
		})
	}

	destination, err := parseCoordinates(c.Query("to"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter to must be a lat,lon pair",
		})
	}

	minutes, err := RoutingClient.TravelMinutes(c.Context(), origin, destination)

	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": "Could not retrieve travel estimate",
		})
	}

	return c.JSON(gfdf.TravelEstimate{
		Origin:      &origin,
		Destination: &destination,
		Minutes:     minutes,
		Computed:    true,
	})
}

func getGeocode(c *fiber.Ctx) error {
	if RoutingClient == nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Geocoding is not available",
		})
	}

	address := c.Query("address")
	if address == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter address is required",
		})
	}

	coordinates, err := RoutingClient.Geocode(c.Context(), address)

	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not geocode address",
		})
	}

	return c.JSON(coordinates)
}

func parseCoordinates(pair string) (gfdf.Coordinates, error) {
	parts := strings.Split(pair, ",")
	if len(parts) != 2 {
		return gfdf.Coordinates{}, fmt.Errorf("coordinates must contain 2 values")
	}

	latitude, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return gfdf.Coordinates{}, err
	}

	longitude, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return gfdf.Coordinates{}, err
	}

	return gfdf.Coordinates{
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}
