package stations

import (
	"fmt"

	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/elastic_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Manages the rail stations reference data",
		Subcommands: []*cli.Command{
			{
				Name:  "import",
				Usage: "import registered station datasets into the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "only import the dataset with this identifier",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					datasetID := c.String("id")
					imported := 0

					for _, dataset := range GetRegisteredDataSets() {
						if datasetID != "" && dataset.Identifier != datasetID {
							continue
						}

						if err := ImportDataset(dataset); err != nil {
							log.Error().Err(err).Str("dataset", dataset.Identifier).Msg("Failed to import dataset")
							continue
						}

						imported += 1
					}

					if datasetID != "" && imported == 0 {
						return fmt.Errorf("no dataset registered with identifier %s", datasetID)
					}

					return nil
				},
			},
			{
				Name:  "index",
				Usage: "do an index of the Stations",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(true); err != nil {
						return err
					}

					IndexStations()

					elastic_client.WaitUntilQueueEmpty()

					log.Info().Msg("Index queue emptied")

					return nil
				},
			},
		},
	}
}
