package flatgeobuf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
)

// schema is the attribute column layout shared by every feature of a layer.
type schema struct {
	names []string
	types []flattypes.ColumnType
	index map[string]int
}

// inferSchema collects the attribute names of all features, sorted, and
// picks for each the narrowest column type holding every value. A column
// mixing signed and unsigned integers stays Long when every unsigned value
// fits, and becomes Double otherwise.
func inferSchema(features []Feature) *schema {
	types := make(map[string]flattypes.ColumnType)
	nullOnly := make(map[string]bool)
	notLong := make(map[string]bool)
	for _, f := range features {
		for name, value := range f.Attributes {
			if value == nil {
				nullOnly[name] = true
				continue
			}
			t := columnType(value)
			if _, ok := toInt64(value); !ok {
				notLong[name] = true
			}
			if prev, ok := types[name]; ok {
				t = widen(prev, t)
			}
			types[name] = t
		}
	}
	for name, t := range types {
		if t == flattypes.ColumnTypeDouble && !notLong[name] {
			types[name] = flattypes.ColumnTypeLong
		}
	}
	for name := range nullOnly {
		if _, ok := types[name]; !ok {
			types[name] = flattypes.ColumnTypeString
		}
	}
	if len(types) == 0 {
		return nil
	}

	s := &schema{index: make(map[string]int, len(types))}
	for name := range types {
		s.names = append(s.names, name)
	}
	slices.Sort(s.names)
	for i, name := range s.names {
		s.types = append(s.types, types[name])
		s.index[name] = i
	}
	return s
}

// columns builds the header column tables.
func (s *schema) columns(builder *flatbuffers.Builder) []*writer.Column {
	cols := make([]*writer.Column, len(s.names))
	for i, name := range s.names {
		col := writer.NewColumn(builder)
		col.SetName(name)
		col.SetTitle(name)
		col.SetType(s.types[i])
		col.SetNullable(true)
		cols[i] = col
	}
	return cols
}

// columnType maps a Go value to the column type used to store it.
func columnType(value any) flattypes.ColumnType {
	switch v := value.(type) {
	case bool:
		return flattypes.ColumnTypeBool
	case int, int8, int16, int32, int64:
		return flattypes.ColumnTypeLong
	case uint, uint8, uint16, uint32, uint64:
		return flattypes.ColumnTypeULong
	case float32, float64:
		return flattypes.ColumnTypeDouble
	case string:
		return flattypes.ColumnTypeString
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return flattypes.ColumnTypeLong
		}
		return flattypes.ColumnTypeDouble
	default:
		return flattypes.ColumnTypeJson
	}
}

var numericRank = map[flattypes.ColumnType]int{
	flattypes.ColumnTypeLong:   1,
	flattypes.ColumnTypeULong:  2,
	flattypes.ColumnTypeDouble: 3,
}

// widen returns a column type able to hold values of both a and b.
func widen(a, b flattypes.ColumnType) flattypes.ColumnType {
	if a == b {
		return a
	}
	ra, okA := numericRank[a]
	rb, okB := numericRank[b]
	switch {
	case okA && okB:
		if ra+rb == numericRank[flattypes.ColumnTypeLong]+numericRank[flattypes.ColumnTypeULong] {
			// neither integer type holds both ranges
			return flattypes.ColumnTypeDouble
		}
		if ra > rb {
			return a
		}
		return b
	case a == flattypes.ColumnTypeJson || b == flattypes.ColumnTypeJson:
		return flattypes.ColumnTypeJson
	default:
		return flattypes.ColumnTypeString
	}
}

// encodeAttributes writes the attributes as FlatGeobuf property bytes:
// a little endian uint16 column index followed by the value, per attribute,
// in column order. Nil values are omitted.
func (s *schema) encodeAttributes(attrs map[string]any) ([]byte, error) {
	if s == nil || len(attrs) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	for i, name := range s.names {
		value, ok := attrs[name]
		if !ok || value == nil {
			continue
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint16(i))
		if err := encodeValue(&buf, s.types[i], value); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, t flattypes.ColumnType, value any) error {
	le := binary.LittleEndian
	switch t {
	case flattypes.ColumnTypeBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %T in Bool column", ErrInvalidAttribute, value)
		}
		if b {
			return buf.WriteByte(1)
		}
		return buf.WriteByte(0)
	case flattypes.ColumnTypeLong:
		v, ok := toInt64(value)
		if !ok {
			return fmt.Errorf("%w: %T in Long column", ErrInvalidAttribute, value)
		}
		return binary.Write(buf, le, v)
	case flattypes.ColumnTypeULong:
		v, ok := toUint64(value)
		if !ok {
			return fmt.Errorf("%w: %T in ULong column", ErrInvalidAttribute, value)
		}
		return binary.Write(buf, le, v)
	case flattypes.ColumnTypeDouble:
		v, ok := toFloat64(value)
		if !ok {
			return fmt.Errorf("%w: %T in Double column", ErrInvalidAttribute, value)
		}
		return binary.Write(buf, le, v)
	case flattypes.ColumnTypeString:
		return writeString(buf, toString(value))
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
		}
		return writeString(buf, string(data))
	}
}

// strings are stored with a uint32 byte length prefix
func writeString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

// decodeAttributes reads property bytes against the header columns.
func decodeAttributes(data []byte, h *flattypes.Header) (map[string]any, error) {
	attrs := make(map[string]any)
	for len(data) > 0 {
		if len(data) < 2 {
			return nil, fmt.Errorf("%w: truncated column index", ErrInvalidData)
		}
		idx := int(binary.LittleEndian.Uint16(data))
		data = data[2:]

		var col flattypes.Column
		if idx >= h.ColumnsLength() || !h.Columns(&col, idx) {
			return nil, fmt.Errorf("%w: column %d out of range", ErrInvalidData, idx)
		}
		value, n, err := decodeValue(data, col.Type())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
		attrs[string(col.Name())] = value
		data = data[n:]
	}
	return attrs, nil
}

// fixed width column types and their size in bytes
var fixedWidth = map[flattypes.ColumnType]int{
	flattypes.ColumnTypeBool:   1,
	flattypes.ColumnTypeByte:   1,
	flattypes.ColumnTypeUByte:  1,
	flattypes.ColumnTypeShort:  2,
	flattypes.ColumnTypeUShort: 2,
	flattypes.ColumnTypeInt:    4,
	flattypes.ColumnTypeUInt:   4,
	flattypes.ColumnTypeFloat:  4,
	flattypes.ColumnTypeLong:   8,
	flattypes.ColumnTypeULong:  8,
	flattypes.ColumnTypeDouble: 8,
}

// decodeValue returns the value at the start of data and its encoded size.
func decodeValue(data []byte, t flattypes.ColumnType) (any, int, error) {
	le := binary.LittleEndian
	if w, ok := fixedWidth[t]; ok {
		if len(data) < w {
			return nil, 0, fmt.Errorf("%w: truncated %s value", ErrInvalidData, flattypes.EnumNamesColumnType[t])
		}
		switch t {
		case flattypes.ColumnTypeBool:
			return data[0] != 0, w, nil
		case flattypes.ColumnTypeByte:
			return int8(data[0]), w, nil
		case flattypes.ColumnTypeUByte:
			return data[0], w, nil
		case flattypes.ColumnTypeShort:
			return int16(le.Uint16(data)), w, nil
		case flattypes.ColumnTypeUShort:
			return le.Uint16(data), w, nil
		case flattypes.ColumnTypeInt:
			return int32(le.Uint32(data)), w, nil
		case flattypes.ColumnTypeUInt:
			return le.Uint32(data), w, nil
		case flattypes.ColumnTypeFloat:
			return math.Float32frombits(le.Uint32(data)), w, nil
		case flattypes.ColumnTypeLong:
			return int64(le.Uint64(data)), w, nil
		case flattypes.ColumnTypeULong:
			return le.Uint64(data), w, nil
		default:
			return math.Float64frombits(le.Uint64(data)), w, nil
		}
	}

	switch t {
	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime, flattypes.ColumnTypeJson, flattypes.ColumnTypeBinary:
	default:
		return nil, 0, fmt.Errorf("%w: column type %d", ErrInvalidData, t)
	}
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: truncated length", ErrInvalidData)
	}
	n := int(le.Uint32(data))
	if len(data)-4 < n {
		return nil, 0, fmt.Errorf("%w: value of %d bytes overruns feature", ErrInvalidData, n)
	}
	raw := data[4 : 4+n]
	switch t {
	case flattypes.ColumnTypeBinary:
		return bytes.Clone(raw), 4 + n, nil
	case flattypes.ColumnTypeJson:
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		return v, 4 + n, nil
	default:
		return string(raw), 4 + n, nil
	}
}

func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int8:
		return int64(val), true
	case int16:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case json.Number:
		i, err := val.Int64()
		return i, err == nil
	}
	if u, ok := unsignedValue(v); ok && u <= math.MaxInt64 {
		return int64(u), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	if u, ok := unsignedValue(v); ok {
		return u, true
	}
	if i, ok := toInt64(v); ok && i >= 0 {
		return uint64(i), true
	}
	return 0, false
}

func unsignedValue(v any) (uint64, bool) {
	switch val := v.(type) {
	case uint:
		return uint64(val), true
	case uint8:
		return uint64(val), true
	case uint16:
		return uint64(val), true
	case uint32:
		return uint64(val), true
	case uint64:
		return val, true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	if u, ok := toUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
