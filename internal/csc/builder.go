// Package csc builds compressed sparse column index arrays from a dense
// strided view.
//
// The builder walks the view twice: a count pass that fills the column
// pointers and a fill pass that writes row indices. Both passes visit
// elements in the same row-major order with the same nonzero predicate.
package csc

import (
	"errors"
	"fmt"
	"math"

	"github.com/samcharles93/amdorder/pkg/strided"
)

var (
	// ErrAllocation reports index arrays that cannot be sized or allocated.
	ErrAllocation = errors.New("allocation error")
	// ErrInconsistent reports a fill pass that disagrees with the count pass.
	ErrInconsistent = errors.New("inconsistent sparse structure")
)

// Pattern is the nonzero structure of an n x n matrix.
//
// Band i of the dense scan owns Ai[Ap[i]:Ap[i+1]]. Because the scan is
// row-major, band i lists the column indices of row i; for the symmetric
// orderings this feeds, that is the same as the CSC form of the transpose.
type Pattern struct {
	N  int32
	Ap []int32
	Ai []int32
}

// NNZ returns the number of stored entries.
func (p *Pattern) NNZ() int {
	if len(p.Ap) == 0 {
		return 0
	}
	return int(p.Ap[len(p.Ap)-1])
}

// Builder owns the index arrays for one conversion.
type Builder struct {
	view    *strided.View
	n       int
	ap      []int32
	ai      []int32
	counted bool
	filled  bool
}

// NewBuilder prepares a builder for v. v must already have passed
// Validate.
func NewBuilder(v *strided.View) *Builder {
	return &Builder{view: v, n: v.Rows()}
}

// CountPass decodes every element, counts nonzeros and fills Ap.
func (b *Builder) CountPass() error {
	if b.counted {
		return nil
	}
	ap, err := allocInt32(b.n + 1)
	if err != nil {
		return err
	}

	var count int64
	for i := 0; i < b.n; i++ {
		for j := 0; j < b.n; j++ {
			value, ok := b.view.At(i, j)
			if !ok {
				return strided.NewValueError(i, j)
			}
			if value != 0 {
				count++
			}
		}
		if count > math.MaxInt32 {
			return fmt.Errorf("%w: %d nonzeros after row %d exceed the 32-bit index range", ErrAllocation, count, i)
		}
		ap[i+1] = int32(count)
	}

	b.ap = ap
	b.counted = true
	return nil
}

// FillPass writes the column index of every nonzero into Ai. The scan
// stops as soon as all counted entries are written; rows past that point
// hold only zeros, which the count pass already established.
func (b *Builder) FillPass() error {
	if !b.counted {
		return fmt.Errorf("%w: fill pass before count pass", ErrInconsistent)
	}
	if b.filled {
		return nil
	}
	nnz := int(b.ap[b.n])
	ai, err := allocInt32(nnz)
	if err != nil {
		return err
	}

	index := 0
scan:
	for i := 0; i < b.n; i++ {
		if index >= nnz {
			break
		}
		for j := 0; j < b.n; j++ {
			value, ok := b.view.At(i, j)
			if !ok {
				return strided.NewValueError(i, j)
			}
			if value != 0 {
				if index >= nnz {
					return fmt.Errorf("%w: row %d holds more nonzeros than counted", ErrInconsistent, i)
				}
				ai[index] = int32(j)
				index++
				if index == nnz && index == int(b.ap[i+1]) {
					break scan
				}
			}
		}
		if index != int(b.ap[i+1]) {
			return fmt.Errorf("%w: row %d wrote %d entries, counted %d", ErrInconsistent, i, index-int(b.ap[i]), b.ap[i+1]-b.ap[i])
		}
	}
	if index != nnz {
		return fmt.Errorf("%w: wrote %d of %d entries", ErrInconsistent, index, nnz)
	}

	b.ai = ai
	b.filled = true
	return nil
}

// Build runs both passes and returns the pattern.
func (b *Builder) Build() (*Pattern, error) {
	if err := b.CountPass(); err != nil {
		return nil, err
	}
	if err := b.FillPass(); err != nil {
		return nil, err
	}
	return b.Pattern(), nil
}

// Pattern returns the finished structure, or nil before FillPass succeeds.
func (b *Builder) Pattern() *Pattern {
	if !b.filled {
		return nil
	}
	return &Pattern{N: int32(b.n), Ap: b.ap, Ai: b.ai}
}

// Reset drops the index arrays so the builder holds no memory.
func (b *Builder) Reset() {
	b.ap, b.ai = nil, nil
	b.counted, b.filled = false, false
}

func allocInt32(n int) (s []int32, err error) {
	if n < 0 || n > math.MaxInt32+1 {
		return nil, fmt.Errorf("%w: cannot allocate %d indices", ErrAllocation, n)
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return make([]int32, n), nil
}
