package point

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func TestNewInfersType(t *testing.T) {
	tests := []struct {
		name string
		z, m float64
		want Type
	}{
		{"2D", nan, nan, TypePoint},
		{"Z", 3, nan, TypePointZ},
		{"M", nan, 4, TypePointM},
		{"ZM", 3, 4, TypePointZM},
		{"infinite Z", math.Inf(1), nan, TypePoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(1, 2, tt.z, tt.m)
			assert.Equal(t, tt.want, p.WKBType())
			assert.Equal(t, 1.0, p.X())
			assert.Equal(t, 2.0, p.Y())
		})
	}
}

func TestNewTypedHonorsTag(t *testing.T) {
	p, err := NewTyped(TypePointZ, 1, 2, nan, nan)
	require.NoError(t, err)
	assert.Equal(t, TypePointZ, p.WKBType())
	assert.True(t, p.Is3D())
	assert.True(t, math.IsNaN(p.Z()))

	p.SetZ(7)
	assert.Equal(t, 7.0, p.Z())

	p, err = NewTyped(TypePoint, 1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, TypePoint, p.WKBType())
	assert.True(t, math.IsNaN(p.Z()))
	assert.True(t, math.IsNaN(p.M()))

	p, err = NewTyped(TypeUnknown, 1, 2, 3, nan)
	require.NoError(t, err)
	assert.Equal(t, TypePointZ, p.WKBType())

	_, err = NewTyped(TypeLineString, 1, 2, nan, nan)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestSettersRespectDimensions(t *testing.T) {
	p := NewXY(1, 2)
	p.SetX(10)
	p.SetY(20)
	p.SetZ(30)
	p.SetM(40)

	assert.Equal(t, 10.0, p.X())
	assert.Equal(t, 20.0, p.Y())
	assert.True(t, math.IsNaN(p.Z()))
	assert.True(t, math.IsNaN(p.M()))
	assert.Equal(t, TypePoint, p.WKBType())

	zm := NewXYZM(1, 2, 3, 4)
	zm.SetZ(30)
	zm.SetM(40)
	assert.Equal(t, 30.0, zm.Z())
	assert.Equal(t, 40.0, zm.M())
}

func TestAddZValue(t *testing.T) {
	p := NewXYZ(1, 2, 3)
	assert.False(t, p.AddZValue(9))
	assert.Equal(t, 3.0, p.Z())
	assert.Equal(t, TypePointZ, p.WKBType())

	require.True(t, p.DropZValue())
	assert.Equal(t, TypePoint, p.WKBType())
	assert.True(t, math.IsNaN(p.Z()))
	assert.False(t, p.DropZValue())

	require.True(t, p.AddZValue(5))
	assert.Equal(t, TypePointZ, p.WKBType())
	assert.Equal(t, 5.0, p.Z())
}

func TestAddMValue(t *testing.T) {
	p := NewXYZ(1, 2, 3)
	require.True(t, p.AddMValue(4))
	assert.Equal(t, TypePointZM, p.WKBType())
	assert.Equal(t, 4.0, p.M())
	assert.False(t, p.AddMValue(8))
	assert.Equal(t, 4.0, p.M())

	require.True(t, p.DropMValue())
	assert.Equal(t, TypePointZ, p.WKBType())
	assert.True(t, math.IsNaN(p.M()))
	assert.False(t, p.DropMValue())
}

func TestConvertTo(t *testing.T) {
	tests := []struct {
		name   string
		from   *Point
		to     Type
		ok     bool
		expect *Point
	}{
		{"2D to ZM", NewXY(1, 2), TypePointZM, true, NewXYZM(1, 2, 0, 0)},
		{"ZM to 2D", NewXYZM(1, 2, 3, 4), TypePoint, true, NewXY(1, 2)},
		{"Z to M", NewXYZ(1, 2, 3), TypePointM, true, NewXYM(1, 2, 0)},
		{"same type", NewXYM(1, 2, 3), TypePointM, true, NewXYM(1, 2, 3)},
		{"NaN z kept", NewXYZ(1, 2, math.NaN()), TypePointZM, true, NewXYZM(1, 2, 0, 0)},
		{"NaN m kept", NewXYM(1, 2, math.NaN()), TypePointZM, true, NewXYZM(1, 2, 0, 0)},
		{"line string", NewXYZ(1, 2, 3), TypeLineString, false, NewXYZ(1, 2, 3)},
		{"unknown", NewXY(1, 2), TypeUnknown, false, NewXY(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.ConvertTo(tt.to))
			assert.True(t, tt.expect.Equal(tt.from), "got %s", tt.from)
		})
	}
}

func TestUpdateInvalidatesCache(t *testing.T) {
	p := NewXYZ(1, 2, 3)
	before := p.AsWKB()

	p.Update(func(c *Coords) {
		c.X = 5
		c.Z = 6
		c.M = 7
	})

	assert.Equal(t, 5.0, p.X())
	assert.Equal(t, 6.0, p.Z())
	assert.True(t, math.IsNaN(p.M()), "M is absent and must stay NaN")

	after := p.AsWKB()
	assert.NotEqual(t, before, after)

	decoded, err := ParseWKB(after)
	require.NoError(t, err)
	assert.True(t, p.Equal(decoded))
}

func TestMutationsInvalidateCache(t *testing.T) {
	mutations := map[string]func(p *Point){
		"SetX":         func(p *Point) { p.SetX(9) },
		"SetY":         func(p *Point) { p.SetY(9) },
		"SetZ":         func(p *Point) { p.SetZ(9) },
		"SetM":         func(p *Point) { p.SetM(9) },
		"Translate":    func(p *Point) { p.Translate(1, 1) },
		"DropZValue":   func(p *Point) { p.DropZValue() },
		"DropMValue":   func(p *Point) { p.DropMValue() },
		"ConvertTo":    func(p *Point) { p.ConvertTo(TypePoint) },
		"Clear":        func(p *Point) { p.Clear() },
		"MoveVertex":   func(p *Point) { p.MoveVertex(VertexID{}, NewXYZM(8, 8, 8, 8)) },
		"Affine":       func(p *Point) { p.TransformAffine(scale(2)) },
		"UnmarshalWKT": func(p *Point) { _ = p.UnmarshalText([]byte("POINT (5 5)")) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			p := NewXYZM(1, 2, 3, 4)
			_ = p.AsWKB()
			mutate(p)

			decoded, err := ParseWKB(p.AsWKB())
			require.NoError(t, err)
			assert.True(t, p.Equal(decoded), "stale encoding for %s", p)
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, NewXY(1, 2).Equal(NewXY(1, 2)))
	assert.True(t, NewXYZ(1, 2, nan).Equal(NewXYZ(1, 2, nan)))
	assert.False(t, NewXYZ(1, 2, nan).Equal(NewXYZ(1, 2, 0)))
	assert.False(t, NewXY(1, 2).Equal(NewXYZ(1, 2, nan)), "types differ")
	assert.False(t, NewXY(1, 2).Equal(NewXY(1, 2.5)))
	assert.False(t, NewXY(1, 2).Equal(nil))

	assert.True(t, NewXY(1, 2).EqualWithin(NewXY(1.0001, 2), 0.001))
	assert.False(t, NewXY(1, 2).EqualWithin(NewXY(1.01, 2), 0.001))
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewXYZM(1, 2, 3, 4)
	c := p.Clone()
	c.SetX(10)
	c.DropMValue()

	assert.Equal(t, 1.0, p.X())
	assert.Equal(t, TypePointZM, p.WKBType())
	assert.Equal(t, TypePointZ, c.WKBType())
}

func TestClear(t *testing.T) {
	p := NewXYZ(1, 2, 3)
	p.Clear()
	assert.True(t, NewXYZ(0, 0, 0).Equal(p))

	q := NewXY(1, 2)
	q.Clear()
	assert.True(t, NewXY(0, 0).Equal(q))
}

func TestVectorArithmetic(t *testing.T) {
	a := NewXYZ(1, 2, 3)
	b := NewXY(4, 6)

	v := b.Sub(a)
	assert.Equal(t, Vector{X: 3, Y: 4}, v)

	moved := a.Add(v)
	assert.True(t, NewXYZ(4, 6, 3).Equal(moved))
	assert.Equal(t, 1.0, a.X(), "Add must not modify the receiver")
}
