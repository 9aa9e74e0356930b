package point

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the precision used by the text encoders when callers
// have no preference. At this precision or above, ordinates are written in
// their shortest exact form, so every value parses back unchanged.
const DefaultPrecision = 17

const tEmpty = "EMPTY"

// AsWKT returns the WKT form of the point, e.g. "PointZ (1 2 3)". Ordinates
// are written with at most precision decimals, or exactly from
// DefaultPrecision up; a negative precision means DefaultPrecision. The
// empty point is written as "Point EMPTY".
func (p *Point) AsWKT(precision int) string {
	var sb strings.Builder
	sb.WriteString(p.typ.String())
	if p.IsEmpty() {
		sb.WriteString(" " + tEmpty)
		return sb.String()
	}
	sb.WriteString(" (")
	for i, v := range p.flatCoords() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatOrdinate(v, precision))
	}
	sb.WriteByte(')')
	return sb.String()
}

// String returns the WKT form at DefaultPrecision.
func (p *Point) String() string {
	return p.AsWKT(DefaultPrecision)
}

// MarshalText implements encoding.TextMarshaler using WKT.
func (p *Point) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure p is left
// unchanged.
func (p *Point) UnmarshalText(text []byte) error {
	q, err := ParseWKT(string(text))
	if err != nil {
		return err
	}
	p.set(q)
	return nil
}

// ParseWKT decodes a WKT point. Keywords are case insensitive and may be
// separated from their dimension tag ("POINT Z (1 2 3)", "pointz(1 2 3)").
// An untagged point with three or four ordinates is read as PointZ or
// PointZM. "EMPTY" yields the empty point.
func ParseWKT(s string) (*Point, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	head := s
	if open >= 0 {
		head = s[:open]
	}

	fields := strings.Fields(strings.ToUpper(head))
	empty := len(fields) > 0 && fields[len(fields)-1] == tEmpty
	if empty {
		fields = fields[:len(fields)-1]
	}
	t := ParseType(strings.Join(fields, ""))
	if !t.IsPoint() {
		return nil, fmt.Errorf("%w: unknown point keyword %q", ErrInvalidWKT, strings.TrimSpace(head))
	}

	if empty {
		if open >= 0 {
			return nil, fmt.Errorf("%w: coordinates after EMPTY", ErrInvalidWKT)
		}
		return NewEmpty(t), nil
	}
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("%w: missing parentheses in %q", ErrInvalidWKT, s)
	}

	body := s[open+1 : len(s)-1]
	if strings.ContainsAny(body, "(),") {
		return nil, fmt.Errorf("%w: expected a single coordinate in %q", ErrInvalidWKT, s)
	}
	parts := strings.Fields(body)

	if t == TypePoint {
		switch len(parts) {
		case 3:
			t = TypePointZ
		case 4:
			t = TypePointZM
		}
	}
	if len(parts) != stride(t) {
		return nil, fmt.Errorf("%w: %s needs %d ordinates, got %d", ErrInvalidWKT, t, stride(t), len(parts))
	}

	coords := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: ordinate %q: %v", ErrInvalidWKT, part, err)
		}
		coords[i] = v
	}
	return fromFlatCoords(t, coords), nil
}

// formatOrdinate writes v with at most precision decimals and no trailing
// zeros. The shortest exact form is used when it fits, and always from
// DefaultPrecision up.
func formatOrdinate(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if precision >= DefaultPrecision || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	if dot := strings.IndexByte(s, '.'); dot < 0 || len(s)-dot-1 <= precision {
		return s
	}
	s = strconv.FormatFloat(v, 'f', precision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// roundOrdinate rounds v to precision decimals the way formatOrdinate
// prints it.
func roundOrdinate(v float64, precision int) float64 {
	r, err := strconv.ParseFloat(formatOrdinate(v, precision), 64)
	if err != nil {
		return v
	}
	return r
}
