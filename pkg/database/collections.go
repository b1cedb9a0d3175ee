package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createPickupsIndexes()
	createPreferencesIndexes()
	createUserIndexes()
	createStationsIndexes()
}

func createPickupsIndexes() {
	pickupsCollection := GetCollection("pickups")
	pickupsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userid", Value: 1}, {Key: "completed", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := pickupsCollection.Indexes().CreateMany(context.Background(), pickupsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createPreferencesIndexes() {
	preferencesCollection := GetCollection("pickup_preferences")
	preferencesIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "pickupid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := preferencesCollection.Indexes().CreateMany(context.Background(), preferencesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createUserIndexes() {
	settingsCollection := GetCollection("user_settings")
	settingsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	opts := options.CreateIndexes()
	_, err := settingsCollection.Indexes().CreateMany(context.Background(), settingsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	pushTargetCollection := GetCollection("user_push_notification_target")
	pushTargetIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userid", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = pushTargetCollection.Indexes().CreateMany(context.Background(), pushTargetIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createStationsIndexes() {
	stationsCollection := GetCollection("stations")
	stationsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "crs", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stationsCollection.Indexes().CreateMany(context.Background(), stationsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
