package gfdf

import "time"

// MinimumUpdateFrequencyMinutes is the floor for the live data refresh
// cadence. Values below it are clamped, not rejected.
const MinimumUpdateFrequencyMinutes = 1

type UserSettings struct {
	UserID string `groups:"internal" bson:"userid"`

	NotificationsEnabled   bool `groups:"basic" bson:"notificationsenabled"`
	UpdateFrequencyMinutes int  `groups:"basic" bson:"updatefrequencyminutes"`

	ModificationDateTime time.Time `groups:"internal" bson:"modificationdatetime"`
}

// DefaultUserSettings applies when a user has never saved settings.
func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:                 userID,
		NotificationsEnabled:   true,
		UpdateFrequencyMinutes: MinimumUpdateFrequencyMinutes,
	}
}

func (s UserSettings) UpdateFrequency() time.Duration {
	minutes := s.UpdateFrequencyMinutes
	if minutes < MinimumUpdateFrequencyMinutes {
		minutes = MinimumUpdateFrequencyMinutes
	}

	return time.Duration(minutes) * time.Minute
}
