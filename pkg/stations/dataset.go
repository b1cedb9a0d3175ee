// Package stations maintains the reference list of rail stations - imported
// from published CSV datasets into MongoDB and indexed into Elasticsearch for
// name search.
package stations

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type DataSet struct {
	Identifier string
	Format     DataSetFormat

	Provider Provider

	Source string
}

type Provider struct {
	Name    string
	Website string
}

type DataSetFormat string

const (
	DataSetFormatRailReferences DataSetFormat = "gb-railreferences"
)

// Just a static list for now
func GetRegisteredDataSets() []DataSet {
	var registeredDatasets []DataSet

	err := filepath.Walk("data/datasources/",
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !fileInfo.IsDir() {
				log.Debug().Str("path", path).Msg("Loading datasources file")

				extension := filepath.Ext(path)

				if extension != ".yaml" {
					return nil
				}

				datasourceYaml, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				decoder := yaml.NewDecoder(bytes.NewReader(datasourceYaml))

				for {
					var dataset DataSet
					if decoder.Decode(&dataset) != nil {
						break
					}

					registeredDatasets = append(registeredDatasets, dataset)
				}
			}

			return nil
		})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load datasources directory")
	}

	return registeredDatasets
}
