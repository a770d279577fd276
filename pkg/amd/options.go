package amd

import (
	"github.com/samcharles93/amdorder/pkg/ordering"
)

type options struct {
	orderer    ordering.Orderer
	log        ordering.Logger
	control    *ordering.Control
	dense      *float64
	aggressive *bool
}

// Option configures a call to Order.
type Option func(*options)

// WithOrderer selects the ordering backend. The default is
// ordering.MinimumDegree.
func WithOrderer(o ordering.Orderer) Option {
	return func(opts *options) {
		opts.orderer = o
	}
}

// WithLogger sets the logger for debug output of the conversion and of the
// default backend.
func WithLogger(log ordering.Logger) Option {
	return func(opts *options) {
		opts.log = log
	}
}

// WithControl replaces the backend defaults with ctrl. WithDense and
// WithAggressive still apply on top.
func WithControl(ctrl ordering.Control) Option {
	return func(opts *options) {
		opts.control = &ctrl
	}
}

// WithDense sets the dense-row parameter. Negative values keep only
// completely dense rows out of the elimination.
func WithDense(alpha float64) Option {
	return func(opts *options) {
		opts.dense = &alpha
	}
}

// WithAggressive toggles aggressive absorption.
func WithAggressive(on bool) Option {
	return func(opts *options) {
		opts.aggressive = &on
	}
}

func (o *options) resolveControl() ordering.Control {
	ctrl := o.orderer.Defaults()
	if o.control != nil {
		ctrl = *o.control
	}
	if o.dense != nil {
		ctrl[ordering.Dense] = *o.dense
	}
	if o.aggressive != nil {
		ctrl[ordering.Aggressive] = 0
		if *o.aggressive {
			ctrl[ordering.Aggressive] = 1
		}
	}
	return ctrl
}
