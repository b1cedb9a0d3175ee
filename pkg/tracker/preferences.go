package tracker

import (
	"context"

	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"go.mongodb.org/mongo-driver/bson"
)

// DatabasePreferences reads per-pickup preferences from the preferences side
// table, falling back to defaults when the user has never adjusted them.
type DatabasePreferences struct{}

func (DatabasePreferences) Preferences(ctx context.Context, userID string, pickupID string) gfdf.PickupPreferences {
	preferencesCollection := database.GetCollection("pickup_preferences")

	var preferences *gfdf.PickupPreferences
	preferencesCollection.FindOne(ctx, bson.M{
		"userid":   userID,
		"pickupid": pickupID,
	}).Decode(&preferences)

	if preferences == nil {
		return gfdf.PickupPreferences{
			PickupID:      pickupID,
			UserID:        userID,
			BufferMinutes: gfdf.DefaultBufferMinutes,
		}
	}

	return *preferences
}
