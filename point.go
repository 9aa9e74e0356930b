// Package point provides a point geometry carrying optional Z (elevation)
// and M (measure) values. It implements the shared Geometry capability set
// (bounding box, vertex access and editing, dimension add/drop) and encodes
// to and from WKB, WKT, GML and GeoJSON.
package point

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// Common errors returned by this package.
var (
	ErrInvalidWKB      = errors.New("point: invalid wkb")
	ErrInvalidWKT      = errors.New("point: invalid wkt")
	ErrUnsupportedType = errors.New("point: unsupported geometry type")
)

// Point is a two dimensional point with optional Z and M values.
// Values of absent dimensions are NaN.
//
// A Point must not be copied by value once used; use Clone instead.
type Point struct {
	x, y, z, m float64
	typ        Type

	// little endian WKB, nil when stale
	wkb atomic.Pointer[[]byte]
}

// Coords is a mutable view of a point's ordinates, see Point.Update.
type Coords struct {
	X, Y, Z, M float64
}

// Vector is a 2D displacement between two points.
type Vector struct {
	X, Y float64
}

// New returns a point whose type is inferred from z and m: finite values
// add the corresponding dimension. Pass math.NaN() for an absent value.
func New(x, y, z, m float64) *Point {
	return newPoint(inferType(z, m), x, y, z, m)
}

// NewTyped returns a point of the given type. TypeUnknown infers the type
// like New does. A point-family type is honored even when the matching
// value is NaN; values for dimensions the type lacks are discarded.
func NewTyped(t Type, x, y, z, m float64) (*Point, error) {
	if t == TypeUnknown {
		return New(x, y, z, m), nil
	}
	if !t.IsPoint() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}
	return newPoint(t, x, y, z, m), nil
}

// NewXY returns a 2D point.
func NewXY(x, y float64) *Point {
	return newPoint(TypePoint, x, y, math.NaN(), math.NaN())
}

// NewXYZ returns a point with a Z value.
func NewXYZ(x, y, z float64) *Point {
	return newPoint(TypePointZ, x, y, z, math.NaN())
}

// NewXYM returns a point with an M value.
func NewXYM(x, y, m float64) *Point {
	return newPoint(TypePointM, x, y, math.NaN(), m)
}

// NewXYZM returns a point with Z and M values.
func NewXYZM(x, y, z, m float64) *Point {
	return newPoint(TypePointZM, x, y, z, m)
}

// NewEmpty returns an empty point of type t: every ordinate is NaN.
// Non-point types fall back to TypePoint.
func NewEmpty(t Type) *Point {
	if !t.IsPoint() {
		t = TypePoint
	}
	nan := math.NaN()
	return newPoint(t, nan, nan, nan, nan)
}

func newPoint(t Type, x, y, z, m float64) *Point {
	p := &Point{x: x, y: y, z: math.NaN(), m: math.NaN(), typ: t}
	if t.HasZ() {
		p.z = z
	}
	if t.HasM() {
		p.m = m
	}
	return p
}

func inferType(z, m float64) Type {
	t := TypePoint
	if isFinite(z) {
		t = t.AddZ()
	}
	if isFinite(m) {
		t = t.AddM()
	}
	return t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// X returns the x ordinate.
func (p *Point) X() float64 { return p.x }

// Y returns the y ordinate.
func (p *Point) Y() float64 { return p.y }

// Z returns the z value, NaN when the point has no Z dimension.
func (p *Point) Z() float64 { return p.z }

// M returns the m value, NaN when the point has no M dimension.
func (p *Point) M() float64 { return p.m }

// WKBType returns the point's dimensionality tag.
func (p *Point) WKBType() Type { return p.typ }

// Is3D reports whether the point has a Z dimension.
func (p *Point) Is3D() bool { return p.typ.HasZ() }

// IsMeasure reports whether the point has an M dimension.
func (p *Point) IsMeasure() bool { return p.typ.HasM() }

// SetX sets the x ordinate.
func (p *Point) SetX(x float64) {
	p.clearCache()
	p.x = x
}

// SetY sets the y ordinate.
func (p *Point) SetY(y float64) {
	p.clearCache()
	p.y = y
}

// SetZ sets the z value. It is silently ignored when the point has no Z
// dimension; call AddZValue first.
func (p *Point) SetZ(z float64) {
	if !p.Is3D() {
		return
	}
	p.clearCache()
	p.z = z
}

// SetM sets the m value. It is silently ignored when the point has no M
// dimension; call AddMValue first.
func (p *Point) SetM(m float64) {
	if !p.IsMeasure() {
		return
	}
	p.clearCache()
	p.m = m
}

// Update mutates the point in place through fn. The cache is invalidated
// before fn runs. Writes to Z or M are dropped when the dimension is absent.
func (p *Point) Update(fn func(c *Coords)) {
	p.clearCache()
	c := Coords{X: p.x, Y: p.y, Z: p.z, M: p.m}
	fn(&c)
	p.x, p.y = c.X, c.Y
	if p.Is3D() {
		p.z = c.Z
	}
	if p.IsMeasure() {
		p.m = c.M
	}
}

// Translate moves the point by dx, dy.
func (p *Point) Translate(dx, dy float64) {
	p.clearCache()
	p.x += dx
	p.y += dy
}

// Add returns a copy of p displaced by v.
func (p *Point) Add(v Vector) *Point {
	r := p.Clone()
	r.Translate(v.X, v.Y)
	return r
}

// Sub returns the vector from o to p.
func (p *Point) Sub(o *Point) Vector {
	return Vector{X: p.x - o.x, Y: p.y - o.y}
}

// AddZValue adds a Z dimension initialized to z. It returns false, leaving
// the point untouched, when the point already has Z.
func (p *Point) AddZValue(z float64) bool {
	if p.Is3D() {
		return false
	}
	p.clearCache()
	p.typ = p.typ.AddZ()
	p.z = z
	return true
}

// AddMValue adds an M dimension initialized to m. It returns false, leaving
// the point untouched, when the point already has M.
func (p *Point) AddMValue(m float64) bool {
	if p.IsMeasure() {
		return false
	}
	p.clearCache()
	p.typ = p.typ.AddM()
	p.m = m
	return true
}

// DropZValue removes the Z dimension and discards its value.
func (p *Point) DropZValue() bool {
	if !p.Is3D() {
		return false
	}
	p.clearCache()
	p.typ = p.typ.DropZ()
	p.z = math.NaN()
	return true
}

// DropMValue removes the M dimension and discards its value.
func (p *Point) DropMValue() bool {
	if !p.IsMeasure() {
		return false
	}
	p.clearCache()
	p.typ = p.typ.DropM()
	p.m = math.NaN()
	return true
}

// ConvertTo reshapes the point to t, adding dimensions with a zero value or
// dropping them. It fails for types outside the point family.
func (p *Point) ConvertTo(t Type) bool {
	if !t.IsPoint() {
		return false
	}
	if t == p.typ {
		return true
	}
	switch {
	case t.HasZ() && !p.Is3D():
		p.AddZValue(0)
	case !t.HasZ() && p.Is3D():
		p.DropZValue()
	}
	switch {
	case t.HasM() && !p.IsMeasure():
		p.AddMValue(0)
	case !t.HasM() && p.IsMeasure():
		p.DropMValue()
	}
	if p.Is3D() && math.IsNaN(p.z) {
		p.SetZ(0)
	}
	if p.IsMeasure() && math.IsNaN(p.m) {
		p.SetM(0)
	}
	return true
}

// Clear resets the point to the origin. Present Z and M become 0.
func (p *Point) Clear() {
	p.clearCache()
	p.x, p.y = 0, 0
	p.z, p.m = math.NaN(), math.NaN()
	if p.Is3D() {
		p.z = 0
	}
	if p.IsMeasure() {
		p.m = 0
	}
}

// Clone returns an independent copy of p.
func (p *Point) Clone() *Point {
	return &Point{x: p.x, y: p.y, z: p.z, m: p.m, typ: p.typ}
}

// Equal reports whether p and o have the same type and ordinates. NaN
// compares equal to NaN.
func (p *Point) Equal(o *Point) bool {
	if o == nil {
		return false
	}
	return p.typ == o.typ &&
		sameFloat(p.x, o.x, 0) && sameFloat(p.y, o.y, 0) &&
		sameFloat(p.z, o.z, 0) && sameFloat(p.m, o.m, 0)
}

// EqualWithin is like Equal but tolerates differences up to tol.
func (p *Point) EqualWithin(o *Point, tol float64) bool {
	if o == nil {
		return false
	}
	return p.typ == o.typ &&
		sameFloat(p.x, o.x, tol) && sameFloat(p.y, o.y, tol) &&
		sameFloat(p.z, o.z, tol) && sameFloat(p.m, o.m, tol)
}

func sameFloat(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	return math.Abs(a-b) <= tol
}

func (p *Point) clearCache() {
	p.wkb.Store(nil)
}
