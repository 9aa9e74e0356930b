package point

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeDimensions(t *testing.T) {
	tests := []struct {
		typ  Type
		name string
		hasZ bool
		hasM bool
	}{
		{TypePoint, "Point", false, false},
		{TypePointZ, "PointZ", true, false},
		{TypePointM, "PointM", false, true},
		{TypePointZM, "PointZM", true, true},
		{TypeLineString.AddZ(), "LineStringZ", true, false},
		{TypeUnknown, "Unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.hasZ, tt.typ.HasZ())
			assert.Equal(t, tt.hasM, tt.typ.HasM())
		})
	}
}

func TestTypeAddDrop(t *testing.T) {
	assert.Equal(t, TypePointZ, TypePoint.AddZ())
	assert.Equal(t, TypePointZ, TypePointZ.AddZ())
	assert.Equal(t, TypePointZM, TypePointZ.AddM())
	assert.Equal(t, TypePointM, TypePointZM.DropZ())
	assert.Equal(t, TypePoint, TypePointM.DropM())
	assert.Equal(t, TypePoint, TypePoint.DropZ())
	assert.Equal(t, TypeUnknown, TypeUnknown.AddZ())
	assert.Equal(t, TypePoint, TypePointZM.Flat())
}

func TestTypeIsPoint(t *testing.T) {
	assert.True(t, TypePoint.IsPoint())
	assert.True(t, TypePointZM.IsPoint())
	assert.False(t, TypeUnknown.IsPoint())
	assert.False(t, TypeMultiPoint.IsPoint())
	assert.False(t, TypeLineString.AddM().IsPoint())
	assert.False(t, Type(5001).IsPoint())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"Point", TypePoint},
		{"POINT", TypePoint},
		{"point z", TypePointZ},
		{"PointM", TypePointM},
		{"POINT ZM", TypePointZM},
		{"MultiPoint", TypeMultiPoint},
		{"LINESTRING Z", TypeLineString.AddZ()},
		{"PointX", TypeUnknown},
		{"", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseType(tt.in))
		})
	}
}

func TestFromCode(t *testing.T) {
	typ, srid := fromCode(0x80000001)
	assert.Equal(t, TypePointZ, typ)
	assert.False(t, srid)

	typ, srid = fromCode(0xC0000001)
	assert.Equal(t, TypePointZM, typ)
	assert.False(t, srid)

	typ, srid = fromCode(0x20000001)
	assert.Equal(t, TypePoint, typ)
	assert.True(t, srid)

	typ, _ = fromCode(2001)
	assert.Equal(t, TypePointM, typ)
}
