package point

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// AsJSON returns the GeoJSON geometry of the point,
// {"type":"Point","coordinates":[x,y]}. Z and M are not included.
func (p *Point) AsJSON(precision int) string {
	data, err := geojson.NewGeometry(p.roundedOrb(precision)).MarshalJSON()
	if err != nil {
		// NaN ordinates are not representable in JSON
		return ""
	}
	return string(data)
}

// CoordinatesJSON returns the 2D coordinate array [x,y].
func (p *Point) CoordinatesJSON(precision int) string {
	data, err := json.Marshal(p.roundedOrb(precision))
	if err != nil {
		return ""
	}
	return string(data)
}

// MarshalJSON implements json.Marshaler using the GeoJSON geometry.
func (p *Point) MarshalJSON() ([]byte, error) {
	return geojson.NewGeometry(p.roundedOrb(DefaultPrecision)).MarshalJSON()
}

func (p *Point) roundedOrb(precision int) orb.Point {
	return orb.Point{roundOrdinate(p.x, precision), roundOrdinate(p.y, precision)}
}
