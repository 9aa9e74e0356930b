package flatgeobuf

import (
	"fmt"

	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"

	point "github.com/tingold/orb-point"
)

// Reader provides read access to a FlatGeobuf point layer.
type Reader struct {
	fgb *flatgeobuf.FlatGeoBuf
}

// NewReader creates a reader from a file path.
// The file is memory-mapped for efficient access.
func NewReader(path string) (*Reader, error) {
	fgb, err := flatgeobuf.New(path)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// NewReaderFromData creates a reader from byte data.
func NewReaderFromData(data []byte) (*Reader, error) {
	fgb, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// Header returns metadata about the FlatGeobuf file.
func (r *Reader) Header() *Header {
	h := r.fgb.Header()
	if h == nil {
		return nil
	}

	header := &Header{
		Name:          string(h.Name()),
		Description:   string(h.Description()),
		GeometryType:  flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount: h.FeaturesCount(),
		HasIndex:      h.IndexNodeSize() > 0,
	}
	if minX, minY, maxX, maxY, ok := envelope(h); ok {
		header.Bounds = orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
	}

	var crs flattypes.Crs
	if h.Crs(&crs) != nil {
		header.CRS = &CRS{
			Code:        int(crs.Code()),
			Name:        string(crs.Name()),
			Description: string(crs.Description()),
		}
	}

	for i := 0; i < h.ColumnsLength(); i++ {
		var col flattypes.Column
		if h.Columns(&col, i) {
			header.Columns = append(header.Columns, Column{
				Name:     string(col.Name()),
				Type:     flattypes.EnumNamesColumnType[col.Type()],
				Nullable: col.Nullable(),
			})
		}
	}
	return header
}

// ReadAll reads every point of the layer. Features are visited through the
// spatial index, so files without one return ErrNoIndex.
func (r *Reader) ReadAll() ([]*point.Point, error) {
	features, err := r.ReadFeatures()
	if err != nil {
		return nil, err
	}
	return pointsOf(features), nil
}

// ReadFeatures is like ReadAll but keeps the attributes.
func (r *Reader) ReadFeatures() ([]Feature, error) {
	h := r.fgb.Header()
	if h.FeaturesCount() == 0 {
		return nil, nil
	}
	minX, minY, maxX, maxY, ok := envelope(h)
	if !ok {
		return nil, fmt.Errorf("%w: missing envelope", ErrNoIndex)
	}
	return r.search(h, minX, minY, maxX, maxY)
}

// Search returns the points whose position intersects bounds, using the
// built-in index.
func (r *Reader) Search(bounds orb.Bound) ([]*point.Point, error) {
	features, err := r.SearchFeatures(bounds)
	if err != nil {
		return nil, err
	}
	return pointsOf(features), nil
}

// SearchFeatures is like Search but keeps the attributes.
func (r *Reader) SearchFeatures(bounds orb.Bound) ([]Feature, error) {
	return r.search(r.fgb.Header(), bounds.Min.X(), bounds.Min.Y(), bounds.Max.X(), bounds.Max.Y())
}

func (r *Reader) search(h *flattypes.Header, minX, minY, maxX, maxY float64) ([]Feature, error) {
	if h.IndexNodeSize() == 0 {
		return nil, ErrNoIndex
	}
	found, err := r.fgb.Search(minX, minY, maxX, maxY)
	if err != nil {
		return nil, err
	}

	bounds := orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
	features := make([]Feature, 0, len(found))
	for _, f := range found {
		feature, err := convertFeature(f, h)
		if err != nil {
			return nil, err
		}
		// the index matches on node boxes; keep exact hits only
		if bounds.Contains(feature.Point.ToOrb()) {
			features = append(features, feature)
		}
	}
	return features, nil
}

// Close releases resources associated with the reader.
func (r *Reader) Close() error {
	// FlatGeoBuf has no Close; dropping the reference lets the mapping be
	// collected.
	r.fgb = nil
	return nil
}

func envelope(h *flattypes.Header) (minX, minY, maxX, maxY float64, ok bool) {
	if h.EnvelopeLength() < 4 {
		return 0, 0, 0, 0, false
	}
	return h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3), true
}

// convertFeature converts a FlatGeobuf feature to a Feature.
func convertFeature(f *flattypes.Feature, h *flattypes.Header) (Feature, error) {
	var geomObj flattypes.Geometry
	g := f.Geometry(&geomObj)
	if g == nil {
		return Feature{}, fmt.Errorf("%w: feature without geometry", ErrInvalidData)
	}
	p, err := pointFromFGB(g, h.GeometryType())
	if err != nil {
		return Feature{}, err
	}

	feature := Feature{Point: p}
	if n := f.PropertiesLength(); n > 0 {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(f.Properties(i))
		}
		if feature.Attributes, err = decodeAttributes(data, h); err != nil {
			return Feature{}, err
		}
	}
	return feature, nil
}

func pointsOf(features []Feature) []*point.Point {
	points := make([]*point.Point, len(features))
	for i, f := range features {
		points[i] = f.Point
	}
	return points
}
