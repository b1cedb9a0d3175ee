package gfdf

type Coordinates struct {
	Latitude  float64 `groups:"basic" bson:"latitude" json:"latitude"`
	Longitude float64 `groups:"basic" bson:"longitude" json:"longitude"`
}
