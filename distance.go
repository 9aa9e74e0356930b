package point

import (
	"math"
)

// DefaultInclination is the horizontal inclination used by Project when
// no vertical angle is wanted.
const DefaultInclination = 90.0

// epsilon used when deciding whether two values coincide
const nearEpsilon = 4 * 2.220446049250313e-16

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= nearEpsilon
}

// Distance returns the planar distance from p to (x, y).
func (p *Point) Distance(x, y float64) float64 {
	return math.Sqrt(p.DistanceSquared(x, y))
}

// DistanceTo returns the planar distance from p to o.
func (p *Point) DistanceTo(o *Point) float64 {
	return p.Distance(o.x, o.y)
}

// DistanceSquared returns the squared planar distance from p to (x, y).
// It is cheaper than Distance and suits comparisons.
func (p *Point) DistanceSquared(x, y float64) float64 {
	dx, dy := p.x-x, p.y-y
	return dx*dx + dy*dy
}

// DistanceSquaredTo returns the squared planar distance from p to o.
func (p *Point) DistanceSquaredTo(o *Point) float64 {
	return p.DistanceSquared(o.x, o.y)
}

// Distance3D returns the 3D distance from p to (x, y, z). A missing Z on p
// counts as 0.
func (p *Point) Distance3D(x, y, z float64) float64 {
	return math.Sqrt(p.DistanceSquared3D(x, y, z))
}

// Distance3DTo returns the 3D distance from p to o. Missing Z values count
// as 0.
func (p *Point) Distance3DTo(o *Point) float64 {
	return p.Distance3D(o.x, o.y, o.zOrZero())
}

// DistanceSquared3D returns the squared 3D distance from p to (x, y, z).
func (p *Point) DistanceSquared3D(x, y, z float64) float64 {
	dx, dy, dz := p.x-x, p.y-y, p.zOrZero()-z
	return dx*dx + dy*dy + dz*dz
}

// DistanceSquared3DTo returns the squared 3D distance from p to o.
func (p *Point) DistanceSquared3DTo(o *Point) float64 {
	return p.DistanceSquared3D(o.x, o.y, o.zOrZero())
}

// Azimuth returns the bearing from p to o in degrees clockwise from north,
// in [0, 360). Coincident points give 0.
func (p *Point) Azimuth(o *Point) float64 {
	dx, dy := o.x-p.x, o.y-p.y
	az := math.Atan2(dx, dy) * 180 / math.Pi
	if az < 0 {
		az += 360
	}
	if az >= 360 {
		// a tiny negative angle rounds up to 360
		az -= 360
	}
	return az
}

// Inclination returns the vertical angle from p to o in degrees: 0 points
// straight up, 90 is horizontal and 180 straight down. Coincident points
// give exactly 90.
func (p *Point) Inclination(o *Point) float64 {
	d := p.Distance3DTo(o)
	if nearlyEqual(d, 0) {
		return 90
	}
	dz := o.zOrZero() - p.zOrZero()
	return math.Acos(dz/d) * 180 / math.Pi
}

// Project returns a new point at distance along azimuth (degrees from
// north) and inclination (degrees from zenith). A 2D point projected
// horizontally stays 2D; any other projection yields a point with Z, with
// a missing source Z taken as 0. M is carried over unchanged.
func (p *Point) Project(distance, azimuth, inclination float64) *Point {
	t := p.typ
	inclination = math.Mod(inclination, 360)
	horizontal := nearlyEqual(inclination, 90)
	if !horizontal {
		t = t.AddZ()
	}

	radsXY := azimuth * math.Pi / 180
	var dx, dy, dz float64
	if !p.Is3D() && horizontal {
		dx = distance * math.Sin(radsXY)
		dy = distance * math.Cos(radsXY)
	} else {
		radsZ := inclination * math.Pi / 180
		dx = distance * math.Sin(radsZ) * math.Sin(radsXY)
		dy = distance * math.Sin(radsZ) * math.Cos(radsXY)
		dz = distance * math.Cos(radsZ)
	}
	return newPoint(t, p.x+dx, p.y+dy, p.zOrZero()+dz, p.m)
}

func (p *Point) zOrZero() float64 {
	if !p.Is3D() || math.IsNaN(p.z) {
		return 0
	}
	return p.z
}
