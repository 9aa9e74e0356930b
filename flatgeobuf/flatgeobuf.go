// Package flatgeobuf stores point layers in the FlatGeobuf format.
// Points keep their Z and M values, and features may carry attributes.
package flatgeobuf

import (
	"errors"
	"math"

	"github.com/paulmach/orb"

	point "github.com/tingold/orb-point"
)

// Common errors returned by this package.
var (
	ErrNoPoints         = errors.New("flatgeobuf: no points to write")
	ErrInvalidData      = errors.New("flatgeobuf: invalid data")
	ErrNoIndex          = errors.New("flatgeobuf: file has no spatial index")
	ErrInvalidAttribute = errors.New("flatgeobuf: invalid attribute value")
)

// CRS represents a coordinate reference system.
type CRS struct {
	Code        int    // EPSG code (e.g., 4326 for WGS84)
	Name        string // CRS name
	Description string // CRS description
	WKT         string // Well-Known Text representation
}

// WGS84 returns the standard WGS84 CRS (EPSG:4326).
func WGS84() *CRS {
	return &CRS{
		Code: 4326,
		Name: "WGS 84",
	}
}

// Options configures FlatGeobuf writing.
type Options struct {
	Name         string // Layer name
	Description  string // Layer description
	IncludeIndex bool   // Include spatial index (default: true)
	CRS          *CRS   // Coordinate reference system (optional)
}

// DefaultOptions returns default options for writing FlatGeobuf files.
func DefaultOptions() *Options {
	return &Options{
		IncludeIndex: true,
	}
}

// Column describes an attribute column of a layer.
type Column struct {
	Name     string // Column name
	Type     string // Column type ("Bool", "Long", "Double", "String", "Json", etc.)
	Nullable bool
}

// Header contains metadata about a FlatGeobuf file.
type Header struct {
	Name          string
	Description   string
	GeometryType  string    // "Point" for files written by this package
	FeaturesCount uint64
	Bounds        orb.Bound // zero when the file has no envelope
	CRS           *CRS
	HasIndex      bool
	Columns       []Column
}

// Feature is a point with its attributes.
type Feature struct {
	Point      *point.Point
	Attributes map[string]any
}

// Bounds returns the 2D bound of the points, ignoring nil and empty ones.
// The zero bound is returned when no point qualifies.
func Bounds(points []*point.Point) orb.Bound {
	var (
		b     orb.Bound
		found bool
	)
	for _, p := range points {
		if !indexable(p) {
			continue
		}
		if !found {
			b, found = p.BoundingBox(), true
			continue
		}
		b = b.Extend(p.ToOrb())
	}
	return b
}

// indexable reports whether p can be written: the spatial index cannot hold
// NaN coordinates.
func indexable(p *point.Point) bool {
	return p != nil && !math.IsNaN(p.X()) && !math.IsNaN(p.Y())
}
