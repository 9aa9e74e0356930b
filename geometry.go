package point

import (
	"encoding/binary"
	"io"
	"iter"
	"math"

	"github.com/paulmach/orb"
)

// Geometry is the capability set shared by every geometry variant, so
// callers can edit, query and serialize shapes without knowing which
// variant they hold. Point is the zero dimensional variant.
type Geometry interface {
	WKBType() Type
	GeometryType() string
	Dimension() int
	IsEmpty() bool
	Is3D() bool
	IsMeasure() bool
	BoundingBox() orb.Bound
	NumCoordinates() int
	CoordinateSequence() [][][]*Point
	Boundary() Geometry

	AsWKB() []byte
	WriteWKB(w io.Writer, byteOrder binary.ByteOrder) error
	AsWKT(precision int) string
	AsGML2(precision int, ns string) string
	AsGML3(precision int, ns string) string
	AsJSON(precision int) string

	Transform(ct CoordinateTransform, dir TransformDirection, transformZ bool) error
	TransformAffine(t AffineTransform)
	Draw(p Painter)

	VertexCount(part, ring int) int
	RingCount(part int) int
	PartCount() int
	VertexAt(id VertexID) *Point
	VertexAngle(id VertexID) float64
	NextVertex(id *VertexID) (*Point, bool)
	Vertices() iter.Seq2[VertexID, *Point]
	InsertVertex(id VertexID, v *Point) bool
	MoveVertex(id VertexID, v *Point) bool
	DeleteVertex(id VertexID) bool
	ClosestSegment(pt *Point, epsilon float64) (sqrDist float64, segmentPt *Point, vertexAfter VertexID, leftOf bool)

	AddZValue(z float64) bool
	AddMValue(m float64) bool
	DropZValue() bool
	DropMValue() bool
	ConvertTo(t Type) bool
	Clear()
}

var _ Geometry = (*Point)(nil)

// VertexID addresses a vertex inside a geometry. Negative fields mean
// "before the first".
type VertexID struct {
	Part, Ring, Vertex int
}

// StartVertex is the id to pass to the first NextVertex call.
var StartVertex = VertexID{Part: -1, Ring: -1, Vertex: -1}

// TransformDirection selects forward or inverse coordinate transformation.
type TransformDirection int

const (
	Forward TransformDirection = iota
	Reverse
)

// CoordinateTransform converts coordinates between reference systems.
// Implementations live outside this package.
type CoordinateTransform interface {
	Transform(x, y, z float64, dir TransformDirection) (float64, float64, float64, error)
}

// AffineTransform maps 2D coordinates, e.g. a world-to-device matrix.
type AffineTransform interface {
	Map(x, y float64) (float64, float64)
}

// Painter draws in device coordinates.
type Painter interface {
	DrawRect(x, y, w, h float64)
}

// size of the marker drawn by Draw
const markerSize = 4.0

// GeometryType returns "Point".
func (p *Point) GeometryType() string { return "Point" }

// Dimension returns the topological dimension of a point, 0.
func (p *Point) Dimension() int { return 0 }

// IsEmpty reports whether the point is the empty point: x and y both NaN.
func (p *Point) IsEmpty() bool {
	return math.IsNaN(p.x) && math.IsNaN(p.y)
}

// BoundingBox returns a zero-area bound at the point.
func (p *Point) BoundingBox() orb.Bound {
	return p.ToOrb().Bound()
}

// NumCoordinates returns 1.
func (p *Point) NumCoordinates() int { return 1 }

// CoordinateSequence returns the point as one part with one ring holding
// one vertex.
func (p *Point) CoordinateSequence() [][][]*Point {
	return [][][]*Point{{{p.Clone()}}}
}

// Boundary returns nil: a point has no boundary.
func (p *Point) Boundary() Geometry { return nil }

// Transform runs the point through ct. The z value is only transformed when
// transformZ is set and the point is 3D; otherwise 0 is passed and the
// point's z is kept. On error the point is left unchanged.
func (p *Point) Transform(ct CoordinateTransform, dir TransformDirection, transformZ bool) error {
	z := 0.0
	if transformZ && p.Is3D() {
		z = p.z
	}
	x, y, z, err := ct.Transform(p.x, p.y, z, dir)
	if err != nil {
		return err
	}
	p.clearCache()
	p.x, p.y = x, y
	if transformZ && p.Is3D() {
		p.z = z
	}
	return nil
}

// TransformAffine maps x and y through t.
func (p *Point) TransformAffine(t AffineTransform) {
	p.clearCache()
	p.x, p.y = t.Map(p.x, p.y)
}

// Draw paints a small square marker centered on the point.
func (p *Point) Draw(painter Painter) {
	half := markerSize / 2
	painter.DrawRect(p.x-half, p.y-half, markerSize, markerSize)
}

// VertexCount returns 1.
func (p *Point) VertexCount(part, ring int) int { return 1 }

// RingCount returns 1.
func (p *Point) RingCount(part int) int { return 1 }

// PartCount returns 1.
func (p *Point) PartCount() int { return 1 }

// VertexAt returns a copy of the point whatever the id.
func (p *Point) VertexAt(VertexID) *Point { return p.Clone() }

// VertexAngle returns 0.
func (p *Point) VertexAngle(VertexID) float64 { return 0 }

// NextVertex sets id to the point's single vertex (0, 0, 0). It returns
// the vertex and true on the first call (id.Vertex < 0) and false
// afterwards.
func (p *Point) NextVertex(id *VertexID) (*Point, bool) {
	if id.Vertex >= 0 {
		return nil, false
	}
	*id = VertexID{}
	return p.Clone(), true
}

// Vertices yields the point's single vertex.
func (p *Point) Vertices() iter.Seq2[VertexID, *Point] {
	return func(yield func(VertexID, *Point) bool) {
		id := StartVertex
		for {
			v, ok := p.NextVertex(&id)
			if !ok || !yield(id, v) {
				return
			}
		}
	}
}

// InsertVertex always returns false: a point cannot gain vertices.
func (p *Point) InsertVertex(VertexID, *Point) bool { return false }

// DeleteVertex always returns false: a point cannot lose its vertex.
func (p *Point) DeleteVertex(VertexID) bool { return false }

// MoveVertex moves the point to v. Z and M are copied when both points
// carry them.
func (p *Point) MoveVertex(_ VertexID, v *Point) bool {
	p.clearCache()
	p.x, p.y = v.x, v.y
	if p.Is3D() && v.Is3D() {
		p.z = v.z
	}
	if p.IsMeasure() && v.IsMeasure() {
		p.m = v.m
	}
	return true
}

// ClosestSegment treats the point as a segment of length zero and returns
// the squared 2D distance from pt.
func (p *Point) ClosestSegment(pt *Point, epsilon float64) (float64, *Point, VertexID, bool) {
	return p.DistanceSquaredTo(pt), p.Clone(), VertexID{}, false
}
