package stations

import (
	"fmt"
	"strings"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/paulcager/osgridref"
)

// RailReference is one row of the NaPTAN rail references CSV. Positions come
// as Ordnance Survey easting/northing pairs rather than latitude/longitude.
type RailReference struct {
	AtcoCode    string `csv:"AtcoCode"`
	TiplocCode  string `csv:"TiplocCode"`
	CrsCode     string `csv:"CrsCode"`
	StationName string `csv:"StationName"`
	Easting     string `csv:"Easting"`
	Northing    string `csv:"Northing"`
}

func (r *RailReference) ToStation() gfdf.Station {
	station := gfdf.Station{
		CRS:  strings.ToUpper(r.CrsCode),
		Name: cleanStationName(r.StationName),
	}

	if r.Easting != "" && r.Northing != "" {
		gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", r.Easting, r.Northing))
		if err == nil {
			lat, lon := gridRef.ToLatLon()

			station.Location = &gfdf.Coordinates{
				Latitude:  lat,
				Longitude: lon,
			}
		}
	}

	return station
}

// NaPTAN suffixes every record with "Rail Station", which just adds noise to
// search results
func cleanStationName(name string) string {
	name = strings.TrimSuffix(name, " Rail Station")
	name = strings.TrimSuffix(name, " Railway Station")

	return strings.TrimSpace(name)
}
