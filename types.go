package point

import (
	"strings"
)

// Type is a WKB geometry type code. Dimensions use the ISO convention of
// adding 1000 (Z), 2000 (M) or 3000 (ZM) to the flat code.
type Type uint32

// Flat geometry types.
const (
	TypeUnknown            Type = 0
	TypePoint              Type = 1
	TypeLineString         Type = 2
	TypePolygon            Type = 3
	TypeMultiPoint         Type = 4
	TypeMultiLineString    Type = 5
	TypeMultiPolygon       Type = 6
	TypeGeometryCollection Type = 7
)

// Point family.
const (
	TypePointZ  Type = TypePoint + zOffset
	TypePointM  Type = TypePoint + mOffset
	TypePointZM Type = TypePoint + zOffset + mOffset
)

const (
	zOffset = 1000
	mOffset = 2000

	// EWKB style dimension flags, accepted when decoding.
	ewkbZFlag    = 0x80000000
	ewkbMFlag    = 0x40000000
	ewkbSRIDFlag = 0x20000000
)

var flatNames = map[Type]string{
	TypeUnknown:            "Unknown",
	TypePoint:              "Point",
	TypeLineString:         "LineString",
	TypePolygon:            "Polygon",
	TypeMultiPoint:         "MultiPoint",
	TypeMultiLineString:    "MultiLineString",
	TypeMultiPolygon:       "MultiPolygon",
	TypeGeometryCollection: "GeometryCollection",
}

// Flat returns t without its Z and M dimensions.
func (t Type) Flat() Type {
	return t % zOffset
}

// HasZ reports whether t carries a Z dimension.
func (t Type) HasZ() bool {
	d := t / zOffset
	return d == 1 || d == 3
}

// HasM reports whether t carries an M dimension.
func (t Type) HasM() bool {
	d := t / zOffset
	return d == 2 || d == 3
}

// AddZ returns t with a Z dimension. Unknown stays unknown.
func (t Type) AddZ() Type {
	if t == TypeUnknown || t.HasZ() {
		return t
	}
	return t + zOffset
}

// AddM returns t with an M dimension. Unknown stays unknown.
func (t Type) AddM() Type {
	if t == TypeUnknown || t.HasM() {
		return t
	}
	return t + mOffset
}

// DropZ returns t without its Z dimension.
func (t Type) DropZ() Type {
	if !t.HasZ() {
		return t
	}
	return t - zOffset
}

// DropM returns t without its M dimension.
func (t Type) DropM() Type {
	if !t.HasM() {
		return t
	}
	return t - mOffset
}

// IsPoint reports whether t belongs to the point family.
func (t Type) IsPoint() bool {
	return t.Flat() == TypePoint && t/zOffset <= 3
}

// String returns the WKT style name, e.g. "PointZM".
func (t Type) String() string {
	name, ok := flatNames[t.Flat()]
	if !ok || t/zOffset > 3 {
		return "Unknown"
	}
	if t == TypeUnknown {
		return name
	}
	if t.HasZ() {
		name += "Z"
	}
	if t.HasM() {
		name += "M"
	}
	return name
}

// ParseType parses a type name such as "POINT Z" or "pointzm".
// It returns TypeUnknown when the name is not recognized.
func ParseType(s string) Type {
	s = strings.ToUpper(strings.Join(strings.Fields(s), ""))
	for flat, name := range flatNames {
		if flat == TypeUnknown {
			continue
		}
		upper := strings.ToUpper(name)
		if !strings.HasPrefix(s, upper) {
			continue
		}
		// only a dimension tag may follow the name
		switch s[len(upper):] {
		case "":
			return flat
		case "Z":
			return flat.AddZ()
		case "M":
			return flat.AddM()
		case "ZM":
			return flat.AddZ().AddM()
		}
	}
	return TypeUnknown
}

// fromCode normalizes a decoded WKB type code, folding EWKB flags into the
// ISO offsets. hasSRID reports whether an EWKB SRID follows the code.
func fromCode(code uint32) (t Type, hasSRID bool) {
	hasZ := code&ewkbZFlag != 0
	hasM := code&ewkbMFlag != 0
	hasSRID = code&ewkbSRIDFlag != 0
	t = Type(code &^ (ewkbZFlag | ewkbMFlag | ewkbSRIDFlag))
	if hasZ {
		t = t.AddZ()
	}
	if hasM {
		t = t.AddM()
	}
	return t, hasSRID
}
