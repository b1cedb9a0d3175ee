package gfdf

type Station struct {
	// Three letter CRS code, eg "KGX"
	CRS string `groups:"basic" bson:"crs"`

	Name string `groups:"basic" bson:"name"`

	Location *Coordinates `groups:"basic" bson:"location,omitempty"`
}
