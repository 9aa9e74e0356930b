package server

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	point "github.com/tingold/orb-point"
	"github.com/tingold/orb-point/flatgeobuf"
	"github.com/tingold/orb-point/internal/config"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config *config.Config
	layers map[string]*layer
	order  []string
}

// LayerInfo describes a served layer.
type LayerInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Count       int          `json:"count"`
	EPSG        int          `json:"epsg,omitempty"`
	Indexed     bool         `json:"indexed"`
	BBox        []float64    `json:"bbox,omitempty"`
	Columns     []ColumnInfo `json:"columns,omitempty"`
}

// ColumnInfo describes an attribute column of a layer.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type layer struct {
	info     LayerInfo
	features []flatgeobuf.Feature
	fgb      []byte // nil when the layer has no writable point
	etag     string
	reader   *flatgeobuf.Reader
}

// NewServerContext parses every configured layer and encodes it to
// FlatGeobuf once, so requests only serve bytes or filter features.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	log.Info().Int("config_layers_count", len(cfg.Layers)).Msg("Initializing server context")

	s := &ServerContext{
		Config: cfg,
		layers: make(map[string]*layer, len(cfg.Layers)),
	}

	for i := range cfg.Layers {
		l, err := newLayer(&cfg.Layers[i])
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", cfg.Layers[i].Name, err)
		}
		s.layers[l.info.Name] = l
		s.order = append(s.order, l.info.Name)

		log.Debug().
			Str("layer", l.info.Name).
			Int("points", l.info.Count).
			Int("fgb_bytes", len(l.fgb)).
			Bool("indexed", l.info.Indexed).
			Msg("Layer encoded and added to context")
	}

	log.Info().
		Int("layers_count", len(s.order)).
		Msg("Server context initialized successfully")

	return s, nil
}

func newLayer(cl *config.Layer) (*layer, error) {
	features, err := cl.Features()
	if err != nil {
		return nil, err
	}

	l := &layer{
		features: features,
		info: LayerInfo{
			Name:        cl.Name,
			Description: cl.Description,
			Count:       len(features),
			EPSG:        cl.EPSG,
		},
	}

	var buf bytes.Buffer
	err = flatgeobuf.WriteFeatures(&buf, features, cl.Options())
	switch {
	case errors.Is(err, flatgeobuf.ErrNoPoints):
		log.Warn().
			Str("layer", cl.Name).
			Msg("Layer has no writable points, FlatGeobuf output disabled")
		return l, nil
	case err != nil:
		return nil, err
	}

	l.fgb = buf.Bytes()
	h := fnv.New64a()
	_, _ = h.Write(l.fgb)
	l.etag = fmt.Sprintf(`"%x"`, h.Sum64())

	if l.reader, err = flatgeobuf.NewReaderFromData(l.fgb); err != nil {
		return nil, err
	}
	header := l.reader.Header()
	l.info.Indexed = header.HasIndex
	b := flatgeobuf.Bounds(pointsOf(features))
	l.info.BBox = []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
	for _, c := range header.Columns {
		l.info.Columns = append(l.info.Columns, ColumnInfo{Name: c.Name, Type: c.Type})
	}
	return l, nil
}

// search returns the features of the layer inside bounds, through the
// spatial index when the layer has one.
func (l *layer) search(bounds orb.Bound) ([]flatgeobuf.Feature, error) {
	if l.info.Indexed {
		return l.reader.SearchFeatures(bounds)
	}
	var found []flatgeobuf.Feature
	for _, f := range l.features {
		if f.Point != nil && !f.Point.IsEmpty() && bounds.Contains(f.Point.ToOrb()) {
			found = append(found, f)
		}
	}
	return found, nil
}

func pointsOf(features []flatgeobuf.Feature) []*point.Point {
	points := make([]*point.Point, len(features))
	for i, f := range features {
		points[i] = f.Point
	}
	return points
}
