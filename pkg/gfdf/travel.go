package gfdf

// TravelEstimate is the live driving duration between the user and the
// pickup station. Computed distinguishes "no estimate yet" from a genuine
// zero-minute journey, so zero never doubles as a sentinel.
type TravelEstimate struct {
	Origin      *Coordinates `bson:"origin,omitempty" json:"origin,omitempty"`
	Destination *Coordinates `bson:"destination,omitempty" json:"destination,omitempty"`

	Minutes  int  `bson:"minutes" json:"minutes"`
	Computed bool `bson:"computed" json:"computed"`
}

func (t TravelEstimate) CoordinatesKnown() bool {
	return t.Origin != nil && t.Destination != nil
}
