package point

import (
	"bytes"
	"math/rand"
	"testing"
)

// =============================================================================
// Test Data Generators
// =============================================================================

// generatePoints creates n random ZM points within the given bounds.
func generatePoints(r *rand.Rand, n int, minX, maxX, minY, maxY float64) []*Point {
	points := make([]*Point, n)
	for i := 0; i < n; i++ {
		x := minX + r.Float64()*(maxX-minX)
		y := minY + r.Float64()*(maxY-minY)
		points[i] = NewXYZM(x, y, r.Float64()*1000, float64(i))
	}
	return points
}

// =============================================================================
// Encoding Benchmarks
// =============================================================================

func BenchmarkAsWKB_Cached(b *testing.B) {
	p := NewXYZM(1, 2, 3, 4)
	_ = p.AsWKB()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.AsWKB()
	}
}

func BenchmarkAsWKB_Uncached(b *testing.B) {
	p := NewXYZM(1, 2, 3, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.SetX(float64(i))
		_ = p.AsWKB()
	}
}

func BenchmarkWriteWKB_1000(b *testing.B) {
	points := generatePoints(rand.New(rand.NewSource(42)), 1000, -180, 180, -90, 90)
	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		for _, p := range points {
			if err := p.WriteWKB(&buf, XDR); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkAsWKT(b *testing.B) {
	points := generatePoints(rand.New(rand.NewSource(42)), 1000, -180, 180, -90, 90)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = points[i%len(points)].AsWKT(DefaultPrecision)
	}
}

func BenchmarkAsGML3(b *testing.B) {
	points := generatePoints(rand.New(rand.NewSource(42)), 1000, -180, 180, -90, 90)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = points[i%len(points)].AsGML3(8, DefaultNamespace)
	}
}

// =============================================================================
// Decoding Benchmarks
// =============================================================================

func BenchmarkParseWKB(b *testing.B) {
	data := NewXYZM(1, 2, 3, 4).AsWKB()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseWKB(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseWKT(b *testing.B) {
	points := generatePoints(rand.New(rand.NewSource(42)), 1000, -180, 180, -90, 90)
	texts := make([]string, len(points))
	for i, p := range points {
		texts[i] = p.String()
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseWKT(texts[i%len(texts)]); err != nil {
			b.Fatal(err)
		}
	}
}

// =============================================================================
// Geometry Benchmarks
// =============================================================================

func BenchmarkProject(b *testing.B) {
	p := NewXYZ(1, 2, 3)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = p.Project(10, float64(i%360), 45)
	}
}
