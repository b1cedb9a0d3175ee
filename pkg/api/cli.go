package api

import (
	"github.com/gofetch/gofetch/pkg/api/routes"
	"github.com/gofetch/gofetch/pkg/api/stats"
	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/elastic_client"
	"github.com/gofetch/gofetch/pkg/railclient"
	"github.com/gofetch/gofetch/pkg/redis_client"
	"github.com/gofetch/gofetch/pkg/routing"
	"github.com/gofetch/gofetch/pkg/runtimestate"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					routingClient, err := routing.NewClient()
					if err != nil {
						log.Error().Err(err).Msg("Travel time estimates unavailable")
					}

					routes.RailClient = railclient.NewClient()
					routes.RoutingClient = routingClient
					routes.RuntimeStore = runtimestate.NewRedisStore()

					go stats.UpdateRecordsStats()

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
