package point

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-geom"
)

// FromOrb returns a 2D point from an orb point.
func FromOrb(p orb.Point) *Point {
	return NewXY(p.X(), p.Y())
}

// ToOrb returns the 2D projection of the point, the form used for display
// and bounding boxes.
func (p *Point) ToOrb() orb.Point {
	return orb.Point{p.x, p.y}
}

// FromGeom converts a go-geom point, keeping its layout. Empty go-geom
// points become the empty point.
func FromGeom(g *geom.Point) (*Point, error) {
	var t Type
	switch g.Layout() {
	case geom.XY:
		t = TypePoint
	case geom.XYZ:
		t = TypePointZ
	case geom.XYM:
		t = TypePointM
	case geom.XYZM:
		t = TypePointZM
	default:
		return nil, fmt.Errorf("%w: layout %s", ErrUnsupportedType, g.Layout())
	}
	if g.Empty() {
		return NewEmpty(t), nil
	}
	return fromFlatCoords(t, g.FlatCoords()), nil
}

// ToGeom converts the point to a go-geom point with the matching layout.
func (p *Point) ToGeom() *geom.Point {
	layout := geom.XY
	switch p.typ {
	case TypePointZ:
		layout = geom.XYZ
	case TypePointM:
		layout = geom.XYM
	case TypePointZM:
		layout = geom.XYZM
	}
	if p.IsEmpty() {
		return geom.NewPointEmpty(layout)
	}
	return geom.NewPointFlat(layout, p.flatCoords())
}
