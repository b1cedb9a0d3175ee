package gfdf

import "time"

// DefaultBufferMinutes is applied when a pickup has no preference record yet.
const DefaultBufferMinutes = 10

// PickupPreferences holds the user-adjustable inputs for one pickup - the
// safety buffer and the coordinate pairs used for travel time estimates.
type PickupPreferences struct {
	PickupID string `groups:"basic" bson:"pickupid"`
	UserID   string `groups:"internal" bson:"userid"`

	BufferMinutes int `groups:"basic" bson:"bufferminutes"`

	UserCoordinates     *Coordinates `groups:"basic" bson:"usercoordinates,omitempty"`
	LocationCoordinates *Coordinates `groups:"basic" bson:"locationcoordinates,omitempty"`

	ModificationDateTime time.Time `groups:"internal" bson:"modificationdatetime"`
}
