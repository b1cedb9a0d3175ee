package stations

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/exp/maps"
)

// ImportDataset downloads a registered dataset and upserts its stations into
// MongoDB, keyed by CRS code.
func ImportDataset(dataset DataSet) error {
	if dataset.Format != DataSetFormatRailReferences {
		return fmt.Errorf("unsupported dataset format %s", dataset.Format)
	}

	log.Info().Str("dataset", dataset.Identifier).Str("source", dataset.Source).Msg("Importing stations dataset")

	req, err := http.NewRequest("GET", dataset.Source, nil)
	if err != nil {
		return err
	}
	req.Header.Set("user-agent", "curl/7.54.1") // The download endpoint gets a bit whiney about browser useragents

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dataset download failed with status %d", resp.StatusCode)
	}

	references, err := parseRailReferences(resp.Body)
	if err != nil {
		return err
	}

	return upsertStations(references)
}

func parseRailReferences(reader io.Reader) ([]*RailReference, error) {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		return r
	})

	var references []*RailReference
	if err := gocsv.Unmarshal(reader, &references); err != nil {
		return nil, err
	}

	return references, nil
}

func upsertStations(references []*RailReference) error {
	stationsCollection := database.GetCollection("stations")

	// The dataset occasionally repeats a CRS code, last record wins
	stationsByCRS := map[string]gfdf.Station{}
	for _, reference := range references {
		if reference.CrsCode == "" {
			continue
		}

		station := reference.ToStation()
		stationsByCRS[station.CRS] = station
	}

	var operations []mongo.WriteModel

	for _, station := range maps.Values(stationsByCRS) {
		bsonRep, err := bson.Marshal(bson.M{"$set": station})
		if err != nil {
			return err
		}

		operation := mongo.NewUpdateOneModel()
		operation.SetFilter(bson.M{"crs": station.CRS})
		operation.SetUpdate(bsonRep)
		operation.SetUpsert(true)

		operations = append(operations, operation)
	}

	if len(operations) > 0 {
		startTime := time.Now()

		_, err := stationsCollection.BulkWrite(context.Background(), operations, &options.BulkWriteOptions{})
		if err != nil {
			return err
		}

		log.Info().Int("stations", len(operations)).Str("length", time.Since(startTime).String()).Msg("Stations import complete")
	}

	return nil
}
