package stations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/elastic_client"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
)

// IndexStations builds a fresh search index from the stations collection and
// removes any previous generations once the new one exists.
func IndexStations() {
	indexName := fmt.Sprintf("gofetch-stations-%d", time.Now().Unix())

	createStationIndex(indexName)
	indexStationsFromMongo(indexName)

	deleteOldIndexes("gofetch-stations-*", indexName)
}

func createStationIndex(indexName string) {
	mapping := `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 1
		},
		"mappings": {
			"properties": {
				"Location": {
					"properties": {
						"latitude": {
							"type": "float"
						},
						"longitude": {
							"type": "float"
						}
					}
				},
				"CRS": {
					"type": "text",
					"fields": {
						"keyword": {
							"type": "keyword",
							"ignore_above": 256
						}
					}
				},
				"Name": {
					"type": "text",
					"fields": {
						"keyword": {
							"type": "keyword",
							"ignore_above": 256
						},
						"search_as_you_type": {
							"type": "search_as_you_type"
						}
					}
				}
			}
		}
	}`

	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(string(mapping)),
	}

	resp, err := indexReq.Do(context.Background(), elastic_client.Client)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create index")
	}

	responseBytes, _ := io.ReadAll(resp.Body)
	pretty.Println(string(responseBytes))
}

func indexStationsFromMongo(indexName string) {
	stationsCollection := database.GetCollection("stations")

	cursor, _ := stationsCollection.Find(context.Background(), bson.M{})

	for cursor.Next(context.Background()) {
		var station *gfdf.Station
		cursor.Decode(&station)

		jsonStation, _ := json.Marshal(map[string]interface{}{
			"CRS":      station.CRS,
			"Name":     station.Name,
			"Location": station.Location,
		})

		elastic_client.IndexRequest(indexName, bytes.NewReader(jsonStation))
	}

	log.Info().Msg("Sent all index requests to queue")
}

func deleteOldIndexes(indexWildcard string, indexName string) {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(context.Background(), elastic_client.Client)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list index")
	}

	var indexes []struct {
		Index string `json:"index"`
	}

	responseBytes, _ := io.ReadAll(resp.Body)
	json.Unmarshal(responseBytes, &indexes)

	for _, index := range indexes {
		if index.Index != indexName {
			deleteReq := esapi.IndicesDeleteRequest{
				Index: []string{index.Index},
			}

			deleteReq.Do(context.Background(), elastic_client.Client)

			log.Info().Str("index", index.Index).Msg("Delete old index")
		}
	}
}
