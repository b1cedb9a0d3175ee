package routes

import (
	"context"
	"time"

	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SettingsRouter(router fiber.Router) {
	router.Get("/", getSettings)
	router.Put("/", updateSettings)
}

func getSettings(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)

	settingsCollection := database.GetCollection("user_settings")

	var settings *gfdf.UserSettings
	settingsCollection.FindOne(context.Background(), bson.M{"userid": userID}).Decode(&settings)

	if settings == nil {
		defaults := gfdf.DefaultUserSettings(userID)
		settings = &defaults
	}

	settingsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, settings)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce UserSettings",
		})
	}

	return c.JSON(settingsReduced)
}

func updateSettings(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)

	var requestBody struct {
		NotificationsEnabled   *bool
		UpdateFrequencyMinutes *int
	}
	if err := c.BodyParser(&requestBody); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Could not parse request body",
		})
	}

	updateSet := bson.M{
		"userid":               userID,
		"modificationdatetime": time.Now(),
	}

	if requestBody.NotificationsEnabled != nil {
		updateSet["notificationsenabled"] = *requestBody.NotificationsEnabled
	}

	if requestBody.UpdateFrequencyMinutes != nil {
		frequency := *requestBody.UpdateFrequencyMinutes
		if frequency < gfdf.MinimumUpdateFrequencyMinutes {
			frequency = gfdf.MinimumUpdateFrequencyMinutes
		}
		updateSet["updatefrequencyminutes"] = frequency
	}

	settingsCollection := database.GetCollection("user_settings")

	filter := bson.M{"userid": userID}
	update := bson.M{"$set": updateSet}
	opts := options.Update().SetUpsert(true)
	_, err := settingsCollection.UpdateOne(context.Background(), filter, update, opts)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
