package routes

import (
	"context"
	"time"

	"github.com/gofetch/gofetch/pkg/countdown"
	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/departure"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// A user can only realistically manage a handful of simultaneous pickups, and
// every active one costs live provider requests.
const maxActivePickups = 3

func PickupsRouter(router fiber.Router) {
	router.Get("/", listPickups)
	router.Post("/", createPickup)

	router.Patch("/:identifier", updatePickup)
	router.Delete("/:identifier", deletePickup)

	router.Get("/:identifier/countdown", getPickupCountdown)

	router.Get("/:identifier/preferences", getPickupPreferences)
	router.Put("/:identifier/preferences", updatePickupPreferences)
}

func listPickups(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)

	pickupsCollection := database.GetCollection("pickups")

	opts := options.Find().SetSort(bson.D{{Key: "creationdatetime", Value: 1}})
	cursor, _ := pickupsCollection.Find(context.Background(), bson.M{"userid": userID}, opts)

	pickups := []interface{}{}

	for cursor.Next(context.TODO()) {
		var pickup *gfdf.Pickup
		err := cursor.Decode(&pickup)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Pickup")
			continue
		}

		pickupReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, pickup)

		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce Pickup",
			})
		}

		pickupRecord := pickupReduced.(map[string]interface{})

		if runtime, found := RuntimeStore.Get(c.Context(), pickup.PrimaryIdentifier); found {
			pickupRecord["runtime"] = runtime
		}

		pickups = append(pickups, pickupRecord)
	}

	return c.JSON(pickups)
}

func createPickup(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)

	var requestBody struct {
		PrimaryIdentifier string
		Type              gfdf.PickupType

		Location     string
		LocationCode string

		Origin   string
		Platform string
		Operator string

		BufferMinutes       int
		UserCoordinates     *gfdf.Coordinates
		LocationCoordinates *gfdf.Coordinates
	}
	if err := c.BodyParser(&requestBody); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Could not parse request body",
		})
	}

	if requestBody.PrimaryIdentifier == "" || requestBody.LocationCode == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "An identifier and a location code are required",
		})
	}

	pickupsCollection := database.GetCollection("pickups")

	numberActivePickups, _ := pickupsCollection.CountDocuments(context.Background(), bson.M{
		"userid":    userID,
		"completed": false,
	})
	if numberActivePickups >= maxActivePickups {
		c.SendStatus(fiber.StatusForbidden)
		return c.JSON(fiber.Map{
			"error": "Maximum number of active pickups reached",
		})
	}

	var existingPickup *gfdf.Pickup
	pickupsCollection.FindOne(context.Background(), bson.M{
		"userid":            userID,
		"primaryidentifier": requestBody.PrimaryIdentifier,
	}).Decode(&existingPickup)

	if existingPickup != nil {
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": "Service is already tracked",
		})
	}

	pickup := gfdf.Pickup{
		UserID:           userID,
		Type:             gfdf.PickupTypeTrain,
		Completed:        false,
		CreationDateTime: time.Now(),
	}
	if err := copier.CopyWithOption(&pickup, requestBody, copier.Option{IgnoreEmpty: true}); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not assemble Pickup",
		})
	}

	if _, err := pickupsCollection.InsertOne(context.Background(), pickup); err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err,
		})
	}

	bufferMinutes := gfdf.DefaultBufferMinutes
	if requestBody.BufferMinutes > 0 {
		bufferMinutes = requestBody.BufferMinutes
	}

	preferences := gfdf.PickupPreferences{
		PickupID: pickup.PrimaryIdentifier,
		UserID:   userID,

		BufferMinutes: bufferMinutes,

		UserCoordinates:     requestBody.UserCoordinates,
		LocationCoordinates: requestBody.LocationCoordinates,

		ModificationDateTime: time.Now(),
	}

	preferencesCollection := database.GetCollection("pickup_preferences")
	filter := bson.M{"pickupid": pickup.PrimaryIdentifier, "userid": userID}
	update := bson.M{"$set": preferences}
	opts := options.Update().SetUpsert(true)
	preferencesCollection.UpdateOne(context.Background(), filter, update, opts)

	return c.JSON(pickup)
}

func updatePickup(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)
	identifier := c.Params("identifier")

	var requestBody struct {
		Completed *bool
	}
	if err := c.BodyParser(&requestBody); err != nil || requestBody.Completed == nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Only the completed field can be updated",
		})
	}

	pickupsCollection := database.GetCollection("pickups")

	result, err := pickupsCollection.UpdateOne(context.Background(),
		bson.M{"userid": userID, "primaryidentifier": identifier},
		bson.M{"$set": bson.M{"completed": *requestBody.Completed}},
	)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err,
		})
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Pickup matching Pickup Identifier",
		})
	}

	if *requestBody.Completed {
		RuntimeStore.Delete(c.Context(), identifier)
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func deletePickup(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)
	identifier := c.Params("identifier")

	pickupsCollection := database.GetCollection("pickups")

	result, err := pickupsCollection.DeleteOne(context.Background(),
		bson.M{"userid": userID, "primaryidentifier": identifier})

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err,
		})
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Pickup matching Pickup Identifier",
		})
	}

	preferencesCollection := database.GetCollection("pickup_preferences")
	preferencesCollection.DeleteOne(context.Background(),
		bson.M{"userid": userID, "pickupid": identifier})

	RuntimeStore.Delete(c.Context(), identifier)

	return c.JSON(fiber.Map{
		"success": true,
	})
}

// getPickupCountdown derives a countdown snapshot from the latest tracker
// output. The web API holds no ticking state of its own, so the snapshot is
// recomputed from the runtime record on every request.
func getPickupCountdown(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)
	identifier := c.Params("identifier")

	pickupsCollection := database.GetCollection("pickups")
	var pickup *gfdf.Pickup
	pickupsCollection.FindOne(context.Background(), bson.M{
		"userid":            userID,
		"primaryidentifier": identifier,
	}).Decode(&pickup)

	if pickup == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Pickup matching Pickup Identifier",
		})
	}

	snapshot := countdown.Snapshot{
		PickupID: pickup.PrimaryIdentifier,
		State:    countdown.StateAwaitingData,
	}

	runtime, found := RuntimeStore.Get(c.Context(), pickup.PrimaryIdentifier)
	if !found || !runtime.Arrival.Known() || !runtime.Travel.Computed {
		return c.JSON(snapshot)
	}

	leaveBy := departure.ComputeLeaveBy(
		runtime.Arrival.ScheduledArrival,
		runtime.Arrival.DelayMinutes,
		runtime.Travel.Minutes,
		runtime.BufferMinutes,
	)
	remaining := time.Until(leaveBy)
	remainingMs := remaining.Milliseconds()

	snapshot.LeaveBy = &leaveBy
	snapshot.TimeRemainingMs = &remainingMs

	if remaining > 0 {
		snapshot.State = countdown.StateCounting
	} else {
		snapshot.State = countdown.StateOverdue
	}

	return c.JSON(snapshot)
}

func getPickupPreferences(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)
	identifier := c.Params("identifier")

	preferencesCollection := database.GetCollection("pickup_preferences")

	var preferences *gfdf.PickupPreferences
	preferencesCollection.FindOne(context.Background(), bson.M{
		"userid":   userID,
		"pickupid": identifier,
	}).Decode(&preferences)

	if preferences == nil {
		preferences = &gfdf.PickupPreferences{
			PickupID:      identifier,
			BufferMinutes: gfdf.DefaultBufferMinutes,
		}
	}

	preferencesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, preferences)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce PickupPreferences",
		})
	}

	return c.JSON(preferencesReduced)
}

func updatePickupPreferences(c *fiber.Ctx) error {
	userID := c.Locals("account_userid").(string)
	identifier := c.Params("identifier")

	var requestBody struct {
		BufferMinutes       *int
		UserCoordinates     *gfdf.Coordinates
		LocationCoordinates *gfdf.Coordinates
	}
	if err := c.BodyParser(&requestBody); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Could not parse request body",
		})
	}

	updateSet := bson.M{
		"userid":               userID,
		"pickupid":             identifier,
		"modificationdatetime": time.Now(),
	}

	// A negative buffer would move the leave-by after the arrival itself, so
	// the field is ignored rather than saved
	if requestBody.BufferMinutes != nil && *requestBody.BufferMinutes >= 0 {
		updateSet["bufferminutes"] = *requestBody.BufferMinutes
	}

	if requestBody.UserCoordinates != nil {
		updateSet["usercoordinates"] = requestBody.UserCoordinates
	}
	if requestBody.LocationCoordinates != nil {
		updateSet["locationcoordinates"] = requestBody.LocationCoordinates
	}

	preferencesCollection := database.GetCollection("pickup_preferences")

	filter := bson.M{"userid": userID, "pickupid": identifier}
	update := bson.M{"$set": updateSet}
	opts := options.Update().SetUpsert(true)
	_, err := preferencesCollection.UpdateOne(context.Background(), filter, update, opts)

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
