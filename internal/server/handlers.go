// Package server exposes configured point layers over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/tingold/orb-point/flatgeobuf"
)

const gmlNamespaceURI = "http://www.opengis.net/gml"

// Routes registers the handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/layers", s.HandleLayersList)
	mux.HandleFunc("GET /layers/{name}/data.fgb", s.HandleFlatGeobuf)
	mux.HandleFunc("GET /layers/{name}/points.wkt", s.HandleWKT)
	mux.HandleFunc("GET /layers/{name}/points.geojson", s.HandleGeoJSON)
	mux.HandleFunc("GET /layers/{name}/points.gml", s.HandleGML)
	return mux
}

// HandleLayersList serves the description of every layer.
func (s *ServerContext) HandleLayersList(w http.ResponseWriter, r *http.Request) {
	infos := make([]LayerInfo, 0, len(s.order))
	for _, name := range s.order {
		infos = append(infos, s.layers[name].info)
	}

	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(infos)
}

// HandleFlatGeobuf serves the encoded layer.
func (s *ServerContext) HandleFlatGeobuf(w http.ResponseWriter, r *http.Request) {
	l, ok := s.layers[r.PathValue("name")]
	if !ok || l.fgb == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("ETag", l.etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if match := r.Header.Get("If-None-Match"); match == l.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(l.fgb)
}

// HandleWKT serves one WKT point per line.
func (s *ServerContext) HandleWKT(w http.ResponseWriter, r *http.Request) {
	features, q, ok := s.resolve(w, r)
	if !ok {
		return
	}

	var sb strings.Builder
	for _, f := range features {
		if f.Point == nil {
			continue
		}
		sb.WriteString(f.Point.AsWKT(q.precision))
		sb.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(sb.String()))
}

// HandleGeoJSON serves the layer as a GeoJSON FeatureCollection. Z and M
// values go to the "z" and "m" properties; empty points are left out.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	features, q, ok := s.resolve(w, r)
	if !ok {
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		if f.Point == nil || f.Point.IsEmpty() {
			continue
		}
		g, err := geojson.UnmarshalGeometry([]byte(f.Point.AsJSON(q.precision)))
		if err != nil {
			// a NaN ordinate has no GeoJSON form
			log.Debug().Err(err).Str("point", f.Point.String()).Msg("Point skipped")
			continue
		}

		gf := geojson.NewFeature(g.Geometry())
		for k, v := range f.Attributes {
			gf.Properties[k] = v
		}
		if f.Point.Is3D() && !math.IsNaN(f.Point.Z()) {
			gf.Properties["z"] = f.Point.Z()
		}
		if f.Point.IsMeasure() && !math.IsNaN(f.Point.M()) {
			gf.Properties["m"] = f.Point.M()
		}
		fc.Append(gf)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		log.Error().Err(err).Str("layer", q.layer).Msg("GeoJSON encoding failed")
		http.Error(w, "cannot encode layer as GeoJSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

// HandleGML serves the layer as a GML feature collection. The "version"
// parameter selects GML 2 or 3 (default) and "ns" the namespace prefix.
func (s *ServerContext) HandleGML(w http.ResponseWriter, r *http.Request) {
	features, q, ok := s.resolve(w, r)
	if !ok {
		return
	}

	ns := s.Config.GMLNamespace
	if r.URL.Query().Has("ns") {
		ns = r.URL.Query().Get("ns")
	}
	version := r.URL.Query().Get("version")
	if version == "" {
		version = "3"
	}
	if version != "2" && version != "3" {
		http.Error(w, fmt.Sprintf("unsupported GML version %q", version), http.StatusBadRequest)
		return
	}

	prefix, xmlns := "", "xmlns"
	if ns != "" {
		prefix, xmlns = ns+":", "xmlns:"+ns
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&sb, "<%sFeatureCollection %s=%q>\n", prefix, xmlns, gmlNamespaceURI)
	for _, f := range features {
		if f.Point == nil || f.Point.IsEmpty() {
			continue
		}
		sb.WriteString("<" + prefix + "featureMember>")
		if version == "2" {
			sb.WriteString(f.Point.AsGML2(q.precision, ns))
		} else {
			sb.WriteString(f.Point.AsGML3(q.precision, ns))
		}
		sb.WriteString("</" + prefix + "featureMember>\n")
	}
	sb.WriteString("</" + prefix + "FeatureCollection>\n")

	w.Header().Set("Content-Type", "application/gml+xml")
	_, _ = w.Write([]byte(sb.String()))
}

type query struct {
	layer     string
	precision int
}

// resolve finds the layer and the common "precision" and "bbox"
// parameters. It writes the error response itself and reports false when
// the request cannot be served.
func (s *ServerContext) resolve(w http.ResponseWriter, r *http.Request) ([]flatgeobuf.Feature, query, bool) {
	q := query{layer: r.PathValue("name"), precision: s.Config.Precision}

	l, ok := s.layers[q.layer]
	if !ok {
		http.NotFound(w, r)
		return nil, q, false
	}

	values := r.URL.Query()
	if v := values.Get("precision"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 {
			http.Error(w, fmt.Sprintf("invalid precision %q", v), http.StatusBadRequest)
			return nil, q, false
		}
		q.precision = p
	}

	v := values.Get("bbox")
	if v == "" {
		return l.features, q, true
	}
	bounds, err := parseBBox(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, q, false
	}
	features, err := l.search(bounds)
	if err != nil {
		log.Error().Err(err).Str("layer", q.layer).Msg("Layer search failed")
		http.Error(w, "search failed", http.StatusInternalServerError)
		return nil, q, false
	}
	return features, q, true
}

var errBBox = errors.New("bbox must be minx,miny,maxx,maxy")

func parseBBox(v string) (orb.Bound, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return orb.Bound{}, errBBox
	}
	var c [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, errBBox
		}
		c[i] = f
	}
	if c[0] > c[2] || c[1] > c[3] {
		return orb.Bound{}, errBBox
	}
	return orb.Bound{Min: orb.Point{c[0], c[1]}, Max: orb.Point{c[2], c[3]}}, nil
}
