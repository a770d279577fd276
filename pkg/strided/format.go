// Package strided describes dense 2-D matrices held in raw byte buffers.
//
// A View carries an element Format, a shape, per-axis byte strides and the
// backing bytes, so transposed, sliced or otherwise non-contiguous layouts can
// be read without copying.
package strided

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Format identifies the element encoding of a buffer.
// Keep these stable; add new values only.
type Format uint8

const (
	FormatUnknown Format = iota
	Float32
	Float64
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Long
	Ulong
	Int64
	Uint64
	Bool
	Float16
	BFloat16
)

// longSize is the width of a C long on this platform.
const longSize = strconv.IntSize / 8

// Size returns the element width in bytes, or 0 for an unknown format.
func (f Format) Size() int {
	switch f {
	case Int8, Uint8, Bool:
		return 1
	case Int16, Uint16, Float16, BFloat16:
		return 2
	case Float32, Int32, Uint32:
		return 4
	case Float64, Int64, Uint64:
		return 8
	case Long, Ulong:
		return longSize
	default:
		return 0
	}
}

// Valid reports whether f is a supported element encoding.
func (f Format) Valid() bool {
	return f.Size() != 0
}

// String returns the buffer-protocol code for f.
func (f Format) String() string {
	switch f {
	case Float32:
		return "f"
	case Float64:
		return "d"
	case Int8:
		return "b"
	case Uint8:
		return "B"
	case Int16:
		return "h"
	case Uint16:
		return "H"
	case Int32:
		return "i"
	case Uint32:
		return "I"
	case Long:
		return "l"
	case Ulong:
		return "L"
	case Int64:
		return "q"
	case Uint64:
		return "Q"
	case Bool:
		return "?"
	case Float16:
		return "e"
	case BFloat16:
		return "BF16"
	default:
		return "unknown"
	}
}

var codes = map[string]Format{
	"f": Float32,
	"d": Float64,
	"b": Int8,
	"B": Uint8,
	"h": Int16,
	"H": Uint16,
	"i": Int32,
	"I": Uint32,
	"l": Long,
	"L": Ulong,
	"q": Int64,
	"Q": Uint64,
	"?": Bool,
	"e": Float16,

	// safetensors dtype names
	"F64":  Float64,
	"F32":  Float32,
	"F16":  Float16,
	"BF16": BFloat16,
	"I8":   Int8,
	"U8":   Uint8,
	"I16":  Int16,
	"U16":  Uint16,
	"I32":  Int32,
	"U32":  Uint32,
	"I64":  Int64,
	"U64":  Uint64,
	"BOOL": Bool,
}

// ParseFormat resolves a buffer-protocol format string (optionally prefixed
// with one of "@=<>!") or a safetensors dtype name. The returned byte order
// is nil for native order. Unsupported encodings such as complex numbers
// fail with ErrFormat.
func ParseFormat(s string) (Format, binary.ByteOrder, error) {
	var (
		order    binary.ByteOrder
		standard bool
	)
	code := s
	if len(code) > 1 {
		switch code[0] {
		case '@':
			code = code[1:]
		case '=':
			standard, code = true, code[1:]
		case '<':
			standard, order, code = true, binary.LittleEndian, code[1:]
		case '>', '!':
			standard, order, code = true, binary.BigEndian, code[1:]
		}
	}
	f, ok := codes[code]
	if !ok {
		if f, ok = codes[strings.ToUpper(code)]; !ok {
			return FormatUnknown, nil, newFormatError(s)
		}
	}
	// Standard-size prefixes pin "l" and "L" to four bytes.
	if standard && (f == Long || f == Ulong) && longSize != 4 {
		if f == Long {
			f = Int32
		} else {
			f = Uint32
		}
	}
	return f, order, nil
}
