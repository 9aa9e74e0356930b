package point

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/twpayne/go-geom/encoding/wkbcommon"
)

// Byte orders.
var (
	// NDR is little endian.
	NDR = wkbcommon.NDR
	// XDR is big endian.
	XDR = wkbcommon.XDR
)

// AsWKB returns the little endian WKB encoding of the point. The encoding
// is cached until the next mutation; the returned slice is a copy.
func (p *Point) AsWKB() []byte {
	if cached := p.wkb.Load(); cached != nil {
		return bytes.Clone(*cached)
	}
	var buf bytes.Buffer
	buf.Grow(p.wkbSize())
	// writes to a bytes.Buffer cannot fail
	_ = p.WriteWKB(&buf, NDR)
	b := buf.Bytes()
	p.wkb.Store(&b)
	return bytes.Clone(b)
}

// WriteWKB writes the WKB encoding of the point to w in byteOrder.
func (p *Point) WriteWKB(w io.Writer, byteOrder binary.ByteOrder) error {
	var orderID byte
	switch byteOrder {
	case XDR:
		orderID = wkbcommon.XDRID
	case NDR:
		orderID = wkbcommon.NDRID
	default:
		return wkbcommon.ErrUnsupportedByteOrder{}
	}
	if err := wkbcommon.WriteByte(w, orderID); err != nil {
		return err
	}
	if err := wkbcommon.WriteUInt32(w, byteOrder, uint32(p.typ)); err != nil {
		return err
	}
	return wkbcommon.WriteFloatArray(w, byteOrder, p.flatCoords())
}

// MarshalBinary implements encoding.BinaryMarshaler using WKB.
func (p *Point) MarshalBinary() ([]byte, error) {
	return p.AsWKB(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On failure p is
// left unchanged.
func (p *Point) UnmarshalBinary(data []byte) error {
	q, err := ParseWKB(data)
	if err != nil {
		return err
	}
	p.set(q)
	return nil
}

// ParseWKB decodes a WKB point. Bytes left over after the point are an
// error; use ReadWKB to decode from a longer stream.
func ParseWKB(data []byte) (*Point, error) {
	r := bytes.NewReader(data)
	p, err := ReadWKB(r)
	if err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidWKB, r.Len())
	}
	return p, nil
}

// ReadWKB decodes one WKB point from r. Both ISO and EWKB dimension
// encodings are accepted; an EWKB SRID is skipped.
func ReadWKB(r io.Reader) (*Point, error) {
	orderID, err := wkbcommon.ReadByte(r)
	if err != nil {
		return nil, fmt.Errorf("%w: byte order: %v", ErrInvalidWKB, err)
	}
	var byteOrder binary.ByteOrder
	switch orderID {
	case wkbcommon.XDRID:
		byteOrder = XDR
	case wkbcommon.NDRID:
		byteOrder = NDR
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidWKB, wkbcommon.ErrUnknownByteOrder(orderID))
	}

	code, err := wkbcommon.ReadUInt32(r, byteOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: type code: %v", ErrInvalidWKB, err)
	}
	t, hasSRID := fromCode(code)
	if !t.IsPoint() {
		return nil, fmt.Errorf("%w: %w: code %d", ErrInvalidWKB, ErrUnsupportedType, code)
	}
	if hasSRID {
		if _, err := wkbcommon.ReadUInt32(r, byteOrder); err != nil {
			return nil, fmt.Errorf("%w: srid: %v", ErrInvalidWKB, err)
		}
	}

	coords := make([]float64, stride(t))
	if err := wkbcommon.ReadFloatArray(r, byteOrder, coords); err != nil {
		return nil, fmt.Errorf("%w: coordinates: %v", ErrInvalidWKB, err)
	}
	return fromFlatCoords(t, coords), nil
}

func (p *Point) wkbSize() int {
	return 1 + 4 + 8*stride(p.typ)
}

func stride(t Type) int {
	n := 2
	if t.HasZ() {
		n++
	}
	if t.HasM() {
		n++
	}
	return n
}

// flatCoords returns x, y, then z and m for present dimensions.
func (p *Point) flatCoords() []float64 {
	c := make([]float64, 2, 4)
	c[0], c[1] = p.x, p.y
	if p.Is3D() {
		c = append(c, p.z)
	}
	if p.IsMeasure() {
		c = append(c, p.m)
	}
	return c
}

func fromFlatCoords(t Type, c []float64) *Point {
	p := newPoint(t, c[0], c[1], 0, 0)
	i := 2
	if t.HasZ() {
		p.z = c[i]
		i++
	}
	if t.HasM() {
		p.m = c[i]
	}
	return p
}

// set copies q's state into p.
func (p *Point) set(q *Point) {
	p.clearCache()
	p.x, p.y, p.z, p.m, p.typ = q.x, q.y, q.z, q.m, q.typ
}
