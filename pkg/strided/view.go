package strided

import (
	"encoding/binary"
	"math"
)

// View is a read-only description of a 2-D matrix stored in Data.
// Element (i, j) starts at byte Offset + i*Strides[0] + j*Strides[1].
type View struct {
	Format Format
	// Order is the element byte order; nil means native.
	Order   binary.ByteOrder
	Shape   []int
	Strides []int
	Data    []byte
	Offset  int

	release  func()
	released bool
}

// Rows returns the extent of the first axis, or 0 for views without one.
func (v *View) Rows() int {
	if len(v.Shape) < 1 {
		return 0
	}
	return v.Shape[0]
}

// Cols returns the extent of the second axis, or 0 for views without one.
func (v *View) Cols() int {
	if len(v.Shape) < 2 {
		return 0
	}
	return v.Shape[1]
}

// OnRelease registers fn to run when the view is released. It replaces any
// previously registered hook.
func (v *View) OnRelease(fn func()) *View {
	v.release = fn
	return v
}

// Release ends the lease on the underlying buffer. The hook runs at most
// once; later calls are no-ops.
func (v *View) Release() {
	if v == nil || v.released {
		return
	}
	v.released = true
	if v.release != nil {
		v.release()
	}
}

// Released reports whether Release has been called.
func (v *View) Released() bool {
	return v.released
}

// ValidateShape checks that v is a square 2-D matrix whose size fits a
// 32-bit signed count.
func (v *View) ValidateShape() error {
	if len(v.Shape) != 2 {
		return newShapeError("expected 2 dimensional array, got %d dimensions", len(v.Shape))
	}
	if len(v.Strides) != 2 {
		return newShapeError("expected 2 strides, got %d", len(v.Strides))
	}
	rows, cols := v.Shape[0], v.Shape[1]
	if rows < 0 || cols < 0 {
		return newShapeError("negative dimension in shape %v", v.Shape)
	}
	if rows != cols {
		return newShapeError("expected a square matrix with equal number of rows and columns, got %dx%d", rows, cols)
	}
	if rows > math.MaxInt32 {
		return newShapeError("dimension %d exceeds the 32-bit index range", rows)
	}
	return nil
}

// ValidateFormat checks that the element format is supported.
func (v *View) ValidateFormat() error {
	if !v.Format.Valid() {
		return newFormatError(v.Format.String())
	}
	return nil
}

// ValidateBounds checks that every element reachable through the shape and
// strides lies inside Data. It expects a valid shape and format.
func (v *View) ValidateBounds() error {
	lo, hi := v.Offset, v.Offset
	for axis, dim := range v.Shape {
		if dim == 0 {
			return nil
		}
		stride := v.Strides[axis]
		if stride != 0 && absInt(stride) > math.MaxInt/dim {
			return newShapeError("stride %d on axis %d overflows", stride, axis)
		}
		ext := (dim - 1) * stride
		if ext < 0 {
			if lo < math.MinInt-ext {
				return newShapeError("strided layout reaches below the smallest offset on axis %d", axis)
			}
			lo += ext
		} else {
			if hi > math.MaxInt-ext {
				return newShapeError("strided layout overflows the offset range on axis %d", axis)
			}
			hi += ext
		}
	}
	size := v.Format.Size()
	if hi > math.MaxInt-size {
		return newShapeError("strided layout overflows the offset range")
	}
	hi += size
	if lo < 0 || hi > len(v.Data) {
		return newShapeError("strided layout spans bytes [%d, %d) outside a %d byte buffer", lo, hi, len(v.Data))
	}
	return nil
}

// Validate runs the shape, format and bounds checks in that order.
func (v *View) Validate() error {
	if err := v.ValidateShape(); err != nil {
		return err
	}
	if err := v.ValidateFormat(); err != nil {
		return err
	}
	return v.ValidateBounds()
}

// At decodes element (i, j). It does not bounds-check i and j against the
// shape; call Validate first.
func (v *View) At(i, j int) (float64, bool) {
	off := v.Offset + i*v.Strides[0] + j*v.Strides[1]
	if off < 0 || off > len(v.Data) {
		return 0, false
	}
	return Read(v.Format, v.Order, v.Data[off:])
}

// Transpose returns a view of the same bytes with the axes swapped. The
// release hook stays with v.
func (v *View) Transpose() *View {
	t := &View{
		Format:  v.Format,
		Order:   v.Order,
		Shape:   make([]int, len(v.Shape)),
		Strides: make([]int, len(v.Strides)),
		Data:    v.Data,
		Offset:  v.Offset,
	}
	for i := range v.Shape {
		t.Shape[len(v.Shape)-1-i] = v.Shape[i]
	}
	for i := range v.Strides {
		t.Strides[len(v.Strides)-1-i] = v.Strides[i]
	}
	return t
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
