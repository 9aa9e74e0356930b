package flatgeobuf

import (
	"fmt"
	"math"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"

	point "github.com/tingold/orb-point"
)

// pointToFGB converts a point to a FlatGeobuf geometry. The z and m arrays
// are only set for dimensions the point has.
func pointToFGB(p *point.Point, builder *flatbuffers.Builder) *writer.Geometry {
	g := writer.NewGeometry(builder)
	g.SetType(flattypes.GeometryTypePoint)
	g.SetXY([]float64{p.X(), p.Y()})
	if p.Is3D() {
		g.SetZ([]float64{p.Z()})
	}
	if p.IsMeasure() {
		g.SetM([]float64{p.M()})
	}
	return g
}

// pointFromFGB converts a FlatGeobuf point geometry. Files with an unknown
// header geometry type store the type on each geometry.
func pointFromFGB(g *flattypes.Geometry, headerType flattypes.GeometryType) (*point.Point, error) {
	t := g.Type()
	if t == flattypes.GeometryTypeUnknown {
		t = headerType
	}
	if t != flattypes.GeometryTypePoint {
		return nil, fmt.Errorf("%w: %s geometry", point.ErrUnsupportedType, flattypes.EnumNamesGeometryType[t])
	}
	if g.XyLength() < 2 {
		return nil, fmt.Errorf("%w: point without coordinates", ErrInvalidData)
	}

	z, m := math.NaN(), math.NaN()
	typ := point.TypePoint
	if g.ZLength() > 0 {
		typ = typ.AddZ()
		z = g.Z(0)
	}
	if g.MLength() > 0 {
		typ = typ.AddM()
		m = g.M(0)
	}
	return point.NewTyped(typ, g.Xy(0), g.Xy(1), z, m)
}
