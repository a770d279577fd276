package strided

import (
	"encoding/binary"
	"math"
)

// Element is the set of Go types that map onto a supported Format.
type Element interface {
	float32 | float64 | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | int | uint | bool
}

// FormatOf returns the Format used to store values of type T.
func FormatOf[T Element]() Format {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case int:
		return Long
	case uint:
		return Ulong
	case bool:
		return Bool
	default:
		return FormatUnknown
	}
}

// FromSlice packs a row-major rows x cols slice into a C-contiguous view.
func FromSlice[T Element](data []T, rows, cols int) (*View, error) {
	if rows < 0 || cols < 0 {
		return nil, newShapeError("negative dimension %dx%d", rows, cols)
	}
	if rows*cols != len(data) {
		return nil, newShapeError("%d elements do not fill a %dx%d matrix", len(data), rows, cols)
	}
	f := FormatOf[T]()
	size := f.Size()
	buf := make([]byte, len(data)*size)
	for k, x := range data {
		put(buf[k*size:], x)
	}
	return &View{
		Format:  f,
		Shape:   []int{rows, cols},
		Strides: []int{cols * size, size},
		Data:    buf,
	}, nil
}

// FromRows packs nested rows into a C-contiguous view. Ragged input fails
// with ErrShape. A nil or empty outer slice yields a 0x0 view.
func FromRows[T Element](rows [][]T) (*View, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, newShapeError("row %d has %d elements, expected %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return FromSlice(flat, len(rows), cols)
}

func put[T Element](b []byte, x T) {
	order := binary.NativeEndian
	switch v := any(x).(type) {
	case float32:
		order.PutUint32(b, math.Float32bits(v))
	case float64:
		order.PutUint64(b, math.Float64bits(v))
	case int8:
		b[0] = byte(v)
	case uint8:
		b[0] = v
	case int16:
		order.PutUint16(b, uint16(v))
	case uint16:
		order.PutUint16(b, v)
	case int32:
		order.PutUint32(b, uint32(v))
	case uint32:
		order.PutUint32(b, v)
	case int64:
		order.PutUint64(b, uint64(v))
	case uint64:
		order.PutUint64(b, v)
	case int:
		if longSize == 4 {
			order.PutUint32(b, uint32(v))
		} else {
			order.PutUint64(b, uint64(v))
		}
	case uint:
		if longSize == 4 {
			order.PutUint32(b, uint32(v))
		} else {
			order.PutUint64(b, uint64(v))
		}
	case bool:
		if v {
			b[0] = 1
		}
	}
}
