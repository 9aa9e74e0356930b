package point

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func TestDistance(t *testing.T) {
	p := NewXY(1, 1)
	assert.Equal(t, 5.0, p.Distance(4, 5))
	assert.Equal(t, 25.0, p.DistanceSquared(4, 5))
	assert.Equal(t, 5.0, p.DistanceTo(NewXYZ(4, 5, 100)), "z is ignored in 2D")
	assert.Equal(t, 25.0, p.DistanceSquaredTo(NewXY(-2, -3)))
}

func TestDistance3D(t *testing.T) {
	a := NewXYZ(0, 0, 0)
	b := NewXYZ(2, 3, 6)
	assert.Equal(t, 7.0, a.Distance3DTo(b))
	assert.Equal(t, 49.0, a.DistanceSquared3DTo(b))
	assert.Equal(t, 7.0, a.Distance3D(2, 3, 6))

	// missing z counts as 0
	assert.Equal(t, 7.0, NewXY(0, 0).Distance3DTo(b))
	assert.Equal(t, 49.0, b.DistanceSquared3DTo(NewXYM(0, 0, 5)))
}

func TestDistanceSquaredMatchesDistance(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		a := NewXYZ(r.Float64()*200-100, r.Float64()*200-100, r.Float64()*50)
		b := NewXYZ(r.Float64()*200-100, r.Float64()*200-100, r.Float64()*50)

		d := a.DistanceTo(b)
		assert.InEpsilon(t, d*d, a.DistanceSquaredTo(b), 1e-12)
		assert.InDelta(t, a.DistanceTo(b), b.DistanceTo(a), delta)

		d3 := a.Distance3DTo(b)
		assert.InEpsilon(t, d3*d3, a.DistanceSquared3DTo(b), 1e-12)
		assert.GreaterOrEqual(t, d3, d-delta)
	}
}

func TestAzimuth(t *testing.T) {
	origin := NewXY(0, 0)
	tests := []struct {
		name string
		to   *Point
		want float64
	}{
		{"north", NewXY(0, 1), 0},
		{"east", NewXY(1, 0), 90},
		{"south", NewXY(0, -1), 180},
		{"west", NewXY(-1, 0), 270},
		{"north east", NewXY(1, 1), 45},
		{"coincident", NewXY(0, 0), 0},
		{"tiny negative", NewXY(-1e-300, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			az := origin.Azimuth(tt.to)
			assert.InDelta(t, tt.want, az, delta)
			assert.GreaterOrEqual(t, az, 0.0)
			assert.Less(t, az, 360.0)
		})
	}
}

func TestInclination(t *testing.T) {
	origin := NewXYZ(0, 0, 0)
	tests := []struct {
		name string
		to   *Point
		want float64
	}{
		{"up", NewXYZ(0, 0, 5), 0},
		{"down", NewXYZ(0, 0, -5), 180},
		{"horizontal", NewXYZ(3, 0, 0), 90},
		{"2D target", NewXY(3, 4), 90},
		{"45 degrees", NewXYZ(1, 0, 1), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, origin.Inclination(tt.to), delta)
		})
	}

	assert.Equal(t, 90.0, origin.Inclination(NewXYZ(0, 0, 0)), "coincident points are horizontal")
	assert.Equal(t, 90.0, NewXY(1, 1).Inclination(NewXY(1, 1)))
}

func TestProject(t *testing.T) {
	t.Run("2D horizontal stays 2D", func(t *testing.T) {
		p := NewXY(1, 2).Project(1, 0, DefaultInclination)
		assert.Equal(t, TypePoint, p.WKBType())
		assert.InDelta(t, 1, p.X(), delta)
		assert.InDelta(t, 3, p.Y(), delta)
	})

	t.Run("2D straight up gains Z", func(t *testing.T) {
		p := NewXY(1, 2).Project(1, 0, 0)
		assert.Equal(t, TypePointZ, p.WKBType())
		assert.InDelta(t, 1, p.X(), delta)
		assert.InDelta(t, 2, p.Y(), delta)
		assert.InDelta(t, 1, p.Z(), delta)
	})

	t.Run("3D horizontal keeps Z", func(t *testing.T) {
		p := NewXYZ(1, 2, 2).Project(1, 0, 90)
		assert.Equal(t, TypePointZ, p.WKBType())
		assert.InDelta(t, 1, p.X(), delta)
		assert.InDelta(t, 3, p.Y(), delta)
		assert.InDelta(t, 2, p.Z(), delta)
	})

	t.Run("M is carried", func(t *testing.T) {
		p := NewXYM(0, 0, 7).Project(2, 90, 90)
		assert.Equal(t, TypePointM, p.WKBType())
		assert.InDelta(t, 2, p.X(), delta)
		assert.InDelta(t, 0, p.Y(), delta)
		assert.Equal(t, 7.0, p.M())
	})

	t.Run("inclination wraps", func(t *testing.T) {
		p := NewXY(0, 0).Project(1, 0, 450)
		assert.Equal(t, TypePoint, p.WKBType())
		assert.InDelta(t, 1, p.Y(), delta)
	})

	t.Run("source untouched", func(t *testing.T) {
		src := NewXY(1, 2)
		_ = src.Project(10, 45, 0)
		assert.True(t, NewXY(1, 2).Equal(src))
	})
}

func TestProjectRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		src := NewXYZ(r.Float64()*100, r.Float64()*100, r.Float64()*100)
		dist := 1 + r.Float64()*50
		az := r.Float64() * 359
		inc := 1 + r.Float64()*178

		dst := src.Project(dist, az, inc)
		require.True(t, dst.Is3D())
		assert.InDelta(t, dist, src.Distance3DTo(dst), 1e-6)
		assert.InDelta(t, inc, src.Inclination(dst), 1e-6)
		if math.Abs(math.Sin(inc*math.Pi/180)) > 1e-3 {
			diff := math.Mod(src.Azimuth(dst)-az+540, 360) - 180
			assert.InDelta(t, 0, diff, 1e-6)
		}
	}
}
