// Package ordering defines the fill-reducing ordering collaborator used by
// the amd bridge, together with a reference minimum-degree backend.
//
// The Control and Info vectors follow the AMD library layout so a cgo
// binding to SuiteSparse can satisfy Orderer without translation.
package ordering

import "fmt"

// Control vector layout.
const (
	ControlLen = 5

	// Dense rows have more than max(16, Control[Dense]*sqrt(n)) entries.
	// A negative value disables dense-row detection.
	Dense = 0
	// Aggressive enables aggressive absorption when nonzero.
	Aggressive = 1
)

// Default control values.
const (
	DefaultDense      = 10.0
	DefaultAggressive = 1.0
)

// Info vector layout.
const (
	InfoLen = 20

	InfoStatus       = 0
	InfoN            = 1
	InfoNZ           = 2
	InfoSymmetry     = 3
	InfoNZDiag       = 4
	InfoNZAPlusAT    = 5
	InfoNDense       = 6
	InfoMemory       = 7
	InfoNCmpa        = 8
	InfoLNZ          = 9
	InfoNDiv         = 10
	InfoNMultSubsLDL = 11
	InfoNMultSubsLU  = 12
	InfoDMax         = 13
)

// Control holds tuning parameters for an ordering run.
type Control [ControlLen]float64

// DefaultControl returns the library default parameters.
func DefaultControl() Control {
	var c Control
	c[Dense] = DefaultDense
	c[Aggressive] = DefaultAggressive
	return c
}

// Info holds post-run statistics.
type Info [InfoLen]float64

// Status is the result code of an ordering run.
type Status int

const (
	StatusOK           Status = 0
	StatusOutOfMemory  Status = -1
	StatusInvalid      Status = -2
	StatusOKButJumbled Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOutOfMemory:
		return "out of memory"
	case StatusInvalid:
		return "invalid"
	case StatusOKButJumbled:
		return "ok, but jumbled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Succeeded reports whether the run produced a permutation.
func (s Status) Succeeded() bool {
	return s == StatusOK || s == StatusOKButJumbled
}

// Version identifies an ordering backend release.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Orderer computes a fill-reducing permutation of a symmetric pattern.
//
// Order receives the pattern as column pointers ap (length n+1) and row
// indices ai (length ap[n]) and must not modify either. It returns the
// permutation, the run statistics and a status code.
type Orderer interface {
	Version() Version
	Defaults() Control
	// Control reports or validates the parameters before a run.
	Control(ctrl Control)
	// Info processes the statistics of a finished run.
	Info(info Info)
	Order(n int32, ap, ai []int32, ctrl Control) ([]int32, Info, Status)
}
