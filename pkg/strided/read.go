package strided

import (
	"encoding/binary"
	"math"
)

// Read decodes one element of format f from the start of b and widens it to
// float64. A nil order means native byte order. The result is not ok when the
// format is unknown, b is too short, or the value is NaN or infinite.
//
// b may start at any address; no alignment is assumed.
func Read(f Format, order binary.ByteOrder, b []byte) (float64, bool) {
	if order == nil {
		order = binary.NativeEndian
	}
	if len(b) < f.Size() {
		return 0, false
	}

	var v float64
	switch f {
	case Float32:
		v = float64(math.Float32frombits(order.Uint32(b)))
	case Float64:
		v = math.Float64frombits(order.Uint64(b))
	case Float16:
		v = float64(fp16ToFloat32(order.Uint16(b)))
	case BFloat16:
		v = float64(bf16ToFloat32(order.Uint16(b)))
	case Int8:
		v = float64(int8(b[0]))
	case Uint8:
		v = float64(b[0])
	case Int16:
		v = float64(int16(order.Uint16(b)))
	case Uint16:
		v = float64(order.Uint16(b))
	case Int32:
		v = float64(int32(order.Uint32(b)))
	case Uint32:
		v = float64(order.Uint32(b))
	case Int64:
		v = float64(int64(order.Uint64(b)))
	case Uint64:
		v = float64(order.Uint64(b))
	case Long:
		if longSize == 4 {
			v = float64(int32(order.Uint32(b)))
		} else {
			v = float64(int64(order.Uint64(b)))
		}
	case Ulong:
		if longSize == 4 {
			v = float64(order.Uint32(b))
		} else {
			v = float64(order.Uint64(b))
		}
	case Bool:
		if b[0] != 0 {
			v = 1
		}
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, false
	}
	return v, true
}

func bf16ToFloat32(u uint16) float32 {
	return math.Float32frombits(uint32(u) << 16)
}

func fp16ToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1F
	frac := uint32(h & 0x3FF)
	var f uint32
	switch exp {
	case 0:
		if frac == 0 {
			f = sign << 31
		} else {
			e := uint32(127 - 15 + 1)
			for (frac & 0x400) == 0 {
				frac <<= 1
				e--
			}
			frac &= 0x3FF
			f = (sign << 31) | (e << 23) | (frac << 13)
		}
	case 0x1F:
		f = (sign << 31) | 0x7F800000 | (frac << 13)
	default:
		e := exp + (127 - 15)
		f = (sign << 31) | (e << 23) | (frac << 13)
	}
	return math.Float32frombits(f)
}
