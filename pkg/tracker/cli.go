package tracker

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofetch/gofetch/pkg/countdown"
	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/notify"
	"github.com/gofetch/gofetch/pkg/railclient"
	"github.com/gofetch/gofetch/pkg/redis_client"
	"github.com/gofetch/gofetch/pkg/routing"
	"github.com/gofetch/gofetch/pkg/runtimestate"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "tracker",
		Usage: "Tracks live arrivals and drives the departure countdown",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the pickup tracker for a user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Usage:    "user id to track pickups for",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					routingClient, err := routing.NewClient()
					if err != nil {
						return err
					}

					publisher, err := notify.NewQueuePublisher()
					if err != nil {
						return err
					}

					userID := c.String("user")

					settingsCache := NewSettingsCache(userID)
					store := runtimestate.NewCachedStore(runtimestate.NewRedisStore())

					engine := countdown.NewEngine(countdown.SystemClock{}, publisher, store, settingsCache)

					manager := &Manager{
						Rail:        railclient.NewClient(),
						Travel:      routingClient,
						Preferences: DatabasePreferences{},
						Store:       store,
						Cadence:     settingsCache,
						Engine:      engine,
					}

					ctx, cancel := context.WithCancel(context.Background())
					defer cancel()

					go settingsCache.RunReloader(ctx, 30*time.Second)
					go engine.Run(ctx)
					go runSelectionLoop(ctx, manager, userID)

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals

					return nil
				},
			},
		},
	}
}

// runSelectionLoop keeps the manager pointed at the user's oldest active
// pickup, mirroring the default selection in the dashboard.
func runSelectionLoop(ctx context.Context, manager *Manager, userID string) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		selectActivePickup(ctx, manager, userID)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func selectActivePickup(ctx context.Context, manager *Manager, userID string) {
	pickupsCollection := database.GetCollection("pickups")

	opts := options.FindOne().SetSort(bson.D{{Key: "creationdatetime", Value: 1}})

	var pickup *gfdf.Pickup
	err := pickupsCollection.FindOne(ctx, bson.M{
		"userid":    userID,
		"completed": false,
	}, opts).Decode(&pickup)

	if err != nil || pickup == nil {
		if manager.Active() != nil {
			log.Info().Str("user", userID).Msg("No active pickups remaining")
			manager.Deactivate()
		}
		return
	}

	manager.Activate(ctx, *pickup)
}
