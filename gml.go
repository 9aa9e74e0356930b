package point

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
)

// DefaultNamespace is the GML namespace prefix used when none is given.
const DefaultNamespace = "gml"

// AsGML2 returns a GML 2 point element:
//
//	<gml:Point><gml:coordinates cs="," ts=" ">x,y</gml:coordinates></gml:Point>
//
// GML 2 coordinates are 2D. An empty ns omits the prefix.
func (p *Point) AsGML2(precision int, ns string) string {
	coords := formatOrdinate(p.x, precision) + "," + formatOrdinate(p.y, precision)
	return encodeGML(ns, "coordinates", []xml.Attr{
		{Name: xml.Name{Local: "cs"}, Value: ","},
		{Name: xml.Name{Local: "ts"}, Value: " "},
	}, coords)
}

// AsGML3 returns a GML 3 point element:
//
//	<gml:Point><gml:pos srsDimension="2">x y</gml:pos></gml:Point>
//
// The z value is included, with srsDimension 3, when the point is 3D.
func (p *Point) AsGML3(precision int, ns string) string {
	ordinates := []string{formatOrdinate(p.x, precision), formatOrdinate(p.y, precision)}
	if p.Is3D() {
		ordinates = append(ordinates, formatOrdinate(p.z, precision))
	}
	return encodeGML(ns, "pos", []xml.Attr{
		{Name: xml.Name{Local: "srsDimension"}, Value: strconv.Itoa(len(ordinates))},
	}, strings.Join(ordinates, " "))
}

func encodeGML(ns, child string, attrs []xml.Attr, text string) string {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	point := xml.StartElement{Name: gmlName(ns, "Point")}
	inner := xml.StartElement{Name: gmlName(ns, child), Attr: attrs}
	tokens := []xml.Token{
		point,
		inner,
		xml.CharData(text),
		inner.End(),
		point.End(),
	}
	for _, tok := range tokens {
		// writes to a bytes.Buffer cannot fail and the tokens are balanced
		_ = enc.EncodeToken(tok)
	}
	_ = enc.Flush()
	return buf.String()
}

func gmlName(ns, local string) xml.Name {
	if ns == "" {
		return xml.Name{Local: local}
	}
	return xml.Name{Local: ns + ":" + local}
}
