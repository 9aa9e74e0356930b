package flatgeobuf

import (
	"io"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"

	point "github.com/tingold/orb-point"
)

// Write writes points to FlatGeobuf format, one feature per point.
// Nil and empty points are skipped.
func Write(w io.Writer, points []*point.Point, opts *Options) error {
	features := make([]Feature, 0, len(points))
	for _, p := range points {
		features = append(features, Feature{Point: p})
	}
	return WriteFeatures(w, features, opts)
}

// WriteFeatures writes points with attributes to FlatGeobuf format. The
// attribute columns are the union of all attribute names, in sorted order.
func WriteFeatures(w io.Writer, features []Feature, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	kept := make([]Feature, 0, len(features))
	for _, f := range features {
		if indexable(f.Point) {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return ErrNoPoints
	}

	s := inferSchema(kept)
	// encode up front so attribute errors surface before anything is written
	props := make([][]byte, len(kept))
	for i, f := range kept {
		data, err := s.encodeAttributes(f.Attributes)
		if err != nil {
			return err
		}
		props[i] = data
	}

	builder := flatbuffers.NewBuilder(4096)
	header := writer.NewHeader(builder)
	header.SetGeometryType(flattypes.GeometryTypePoint)

	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}
	if s != nil {
		header.SetColumns(s.columns(builder))
	}
	if opts.CRS != nil {
		header.SetCrs(crsToFGB(opts.CRS, builder))
	}

	gen := &featureGenerator{features: kept, properties: props}
	_, err := writer.NewWriter(header, opts.IncludeIndex, gen, nil).Write(w)
	return err
}

func crsToFGB(c *CRS, builder *flatbuffers.Builder) *writer.Crs {
	crs := writer.NewCrs(builder)
	crs.SetOrg("EPSG")
	if c.Code > 0 {
		crs.SetCode(int32(c.Code))
	}
	if c.Name != "" {
		crs.SetName(c.Name)
	}
	switch {
	case c.Description != "":
		crs.SetDescription(c.Description)
	case c.WKT != "":
		crs.SetDescription(c.WKT)
	}
	return crs
}

// featureGenerator feeds features to the FlatGeobuf writer.
type featureGenerator struct {
	features   []Feature
	properties [][]byte
	index      int
}

func (g *featureGenerator) Generate() *writer.Feature {
	if g.index >= len(g.features) {
		return nil
	}
	f := g.features[g.index]
	props := g.properties[g.index]
	g.index++

	builder := flatbuffers.NewBuilder(1024)
	feature := writer.NewFeature(builder)
	feature.SetGeometry(pointToFGB(f.Point, builder))
	if len(props) > 0 {
		feature.SetProperties(props)
	}
	return feature
}
