package stats

import (
	"context"
	"time"

	"github.com/gofetch/gofetch/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

type RecordsStats struct {
	Pickups         int64
	ActivePickups   int64
	Stations        int64
	RegisteredUsers int64
}

var CurrentRecordsStats *RecordsStats

func UpdateRecordsStats() {
	CurrentRecordsStats = &RecordsStats{
		Pickups:         0,
		ActivePickups:   0,
		Stations:        0,
		RegisteredUsers: 0,
	}

	for {
		pickupsCollection := database.GetCollection("pickups")
		numberPickups, _ := pickupsCollection.CountDocuments(context.Background(), bson.D{})
		CurrentRecordsStats.Pickups = numberPickups

		numberActivePickups, _ := pickupsCollection.CountDocuments(context.Background(), bson.M{"completed": false})
		CurrentRecordsStats.ActivePickups = numberActivePickups

		stationsCollection := database.GetCollection("stations")
		numberStations, _ := stationsCollection.CountDocuments(context.Background(), bson.D{})
		CurrentRecordsStats.Stations = numberStations

		userSettingsCollection := database.GetCollection("user_settings")
		numberUsers, _ := userSettingsCollection.CountDocuments(context.Background(), bson.D{})
		CurrentRecordsStats.RegisteredUsers = numberUsers

		time.Sleep(1 * time.Minute)
	}
}
