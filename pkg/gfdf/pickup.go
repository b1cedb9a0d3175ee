// Package gfdf contains the GoFetch Data Format - the shared record types
// passed between the trackers, the countdown engine and the API.
package gfdf

import "time"

type Pickup struct {
	// Matches the upstream rail service identifier
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	UserID string `groups:"internal" bson:"userid"`

	Type PickupType `groups:"basic" bson:"type"`

	// Station the passenger is collected from
	Location     string `groups:"basic" bson:"location"`
	LocationCode string `groups:"basic" bson:"locationcode"`

	Origin   string `groups:"basic" bson:"origin,omitempty"`
	Platform string `groups:"basic" bson:"platform,omitempty"`
	Operator string `groups:"basic" bson:"operator,omitempty"`

	Completed bool `groups:"basic" bson:"completed"`

	CreationDateTime time.Time `groups:"basic" bson:"creationdatetime"`
}

type PickupType string

const (
	PickupTypeTrain  PickupType = "Train"
	PickupTypeFlight PickupType = "Flight"
)
