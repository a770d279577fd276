// Package amd computes fill-reducing orderings of dense symmetric matrices.
//
// Order reads a square matrix of any supported element encoding through a
// strided.View, builds the compressed column pattern of its nonzeros, hands
// it to an ordering.Orderer and returns the permutation. Every failure is
// classified (see ErrShape and friends) and no partial result is returned.
// The view is released exactly once on every path.
package amd

import (
	"github.com/samcharles93/amdorder/internal/csc"
	"github.com/samcharles93/amdorder/pkg/ordering"
	"github.com/samcharles93/amdorder/pkg/strided"
)

// Result is the outcome of a successful ordering.
type Result struct {
	// Permutation lists the original row indices in elimination order.
	Permutation []int
	Info        ordering.Info
	Status      ordering.Status
	Version     ordering.Version
	Control     ordering.Control
	NNZ         int
}

// Order computes a fill-reducing permutation of the square matrix behind v.
func Order(v *strided.View, opts ...Option) (*Result, error) {
	if v == nil {
		return nil, newError(ErrShape, "nil view")
	}
	defer v.Release()

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.orderer == nil {
		o.orderer = &ordering.MinimumDegree{Log: o.log}
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	b := csc.NewBuilder(v)
	defer b.Reset()
	pat, err := b.Build()
	if err != nil {
		return nil, err
	}
	if o.log != nil {
		o.log.Debug("built sparse pattern", "n", pat.N, "nnz", pat.NNZ(), "format", v.Format.String())
	}

	version := o.orderer.Version()
	ctrl := o.resolveControl()
	o.orderer.Control(ctrl)

	p, info, status := o.orderer.Order(pat.N, pat.Ap, pat.Ai, ctrl)
	o.orderer.Info(info)

	switch {
	case status == ordering.StatusOutOfMemory:
		return nil, newError(ErrAllocation, "ordering backend %s ran out of memory", version)
	case !status.Succeeded():
		return nil, newError(ErrOrdering, "ordering backend %s returned status %q", version, status)
	}

	perm, err := convert(p, int(pat.N))
	if err != nil {
		return nil, err
	}
	return &Result{
		Permutation: perm,
		Info:        info,
		Status:      status,
		Version:     version,
		Control:     ctrl,
		NNZ:         pat.NNZ(),
	}, nil
}

// Permute is Order without the statistics.
func Permute(v *strided.View, opts ...Option) ([]int, error) {
	res, err := Order(v, opts...)
	if err != nil {
		return nil, err
	}
	return res.Permutation, nil
}

// convert copies the backend permutation into host indices, rejecting
// anything that is not a bijection on [0, n).
func convert(p []int32, n int) ([]int, error) {
	if len(p) != n {
		return nil, newError(ErrConversion, "permutation has %d entries, expected %d", len(p), n)
	}
	out := make([]int, n)
	seen := make([]bool, n)
	for k, v := range p {
		if v < 0 || int(v) >= n {
			return nil, newError(ErrConversion, "permutation entry %d is %d, outside [0, %d)", k, v, n)
		}
		if seen[v] {
			return nil, newError(ErrConversion, "permutation entry %d repeats index %d", k, v)
		}
		seen[v] = true
		out[k] = int(v)
	}
	return out, nil
}
