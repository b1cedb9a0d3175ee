package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/gofetch/gofetch/pkg/database"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"go.mongodb.org/mongo-driver/bson"
)

// SettingsCache holds the user's settings in memory so the countdown
// engine's one second tick can read them without touching the database.
// Reload is called from the tracker's own cycle.
type SettingsCache struct {
	UserID string

	mutex    sync.RWMutex
	settings gfdf.UserSettings
	loaded   bool
}

func NewSettingsCache(userID string) *SettingsCache {
	return &SettingsCache{
		UserID:   userID,
		settings: gfdf.DefaultUserSettings(userID),
	}
}

// Settings implements countdown.SettingsReader.
func (c *SettingsCache) Settings() gfdf.UserSettings {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.settings
}

// UpdateFrequency implements CadenceReader.
func (c *SettingsCache) UpdateFrequency() time.Duration {
	return c.Settings().UpdateFrequency()
}

// Reload fetches the latest saved settings. A missing record or a failed
// read keeps the current values.
func (c *SettingsCache) Reload(ctx context.Context) {
	settingsCollection := database.GetCollection("user_settings")

	var settings *gfdf.UserSettings
	settingsCollection.FindOne(ctx, bson.M{"userid": c.UserID}).Decode(&settings)

	if settings == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.settings = *settings
	c.loaded = true
}

// RunReloader keeps the cache fresh on a fixed interval until the context is
// cancelled.
func (c *SettingsCache) RunReloader(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Reload(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Reload(ctx)
		}
	}
}
