package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/elastic_client"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The indexer builds timestamped generations, so search across the wildcard
const stationsIndexPattern = "gofetch-stations-*"

func StationsRouter(router fiber.Router) {
	router.Get("/search", searchStations)
	router.Get("/:crs", getStation)
}

func getStation(c *fiber.Ctx) error {
	crs := strings.ToUpper(c.Params("crs"))

	stationsCollection := database.GetCollection("stations")
	var station *gfdf.Station
	stationsCollection.FindOne(context.Background(), bson.M{"crs": crs}).Decode(&station)

	if station == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching CRS code",
		})
	}

	return c.JSON(station)
}

func searchStations(c *fiber.Ctx) error {
	name := c.Query("name")

	if name == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter name is required",
		})
	}

	if elastic_client.Client != nil {
		return searchStationsElasticsearch(c, name)
	}

	// Prefix match against Mongo keeps search usable when no search cluster
	// is configured
	stationsCollection := database.GetCollection("stations")

	opts := options.Find().SetLimit(10)
	cursor, err := stationsCollection.Find(context.Background(), stationNameFilter(name), opts)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Station search failed",
		})
	}

	stations := []gfdf.Station{}
	for cursor.Next(context.TODO()) {
		var station *gfdf.Station
		if err := cursor.Decode(&station); err != nil {
			continue
		}

		stations = append(stations, *station)
	}

	return c.JSON(stations)
}

// The name is user input, so quote it before it reaches the regex engine
func stationNameFilter(name string) bson.M {
	return bson.M{
		"name": bson.M{"$regex": fmt.Sprintf("^%s", regexp.QuoteMeta(name)), "$options": "i"},
	}
}

func searchStationsElasticsearch(c *fiber.Ctx, name string) error {
	var queryBuilder strings.Builder
	json.NewEncoder(&queryBuilder).Encode(map[string]interface{}{
		"size": 10,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     name,
				"fields":    []string{"Name", "CRS"},
				"fuzziness": "AUTO",
			},
		},
	})

	res, err := elastic_client.Client.Search(
		elastic_client.Client.Search.WithContext(c.Context()),
		elastic_client.Client.Search.WithIndex(stationsIndexPattern),
		elastic_client.Client.Search.WithBody(strings.NewReader(queryBuilder.String())),
	)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Station search failed",
		})
	}
	defer res.Body.Close()

	if res.IsError() {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Station search failed",
		})
	}

	var searchResponse struct {
		Hits struct {
			Hits []struct {
				Source gfdf.Station `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResponse); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Station search failed",
		})
	}

	stations := []gfdf.Station{}
	for _, hit := range searchResponse.Hits.Hits {
		stations = append(stations, hit.Source)
	}

	return c.JSON(stations)
}
