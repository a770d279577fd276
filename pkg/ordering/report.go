package ordering

// Logger receives diagnostic output. internal/logger.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// ReportControl logs the parameters an ordering run will use.
func ReportControl(log Logger, v Version, ctrl Control) {
	if log == nil {
		return
	}
	alpha := ctrl[Dense]
	dense := "disabled"
	if alpha >= 0 {
		dense = "max(16, alpha*sqrt(n))"
	}
	log.Debug("ordering control",
		"version", v.String(),
		"dense_alpha", alpha,
		"dense_threshold", dense,
		"aggressive", ctrl[Aggressive] != 0,
	)
}

// ReportInfo logs the statistics of a finished run. Failed runs are logged
// at warn level.
func ReportInfo(log Logger, info Info) {
	if log == nil {
		return
	}
	status := Status(info[InfoStatus])
	if !status.Succeeded() {
		log.Warn("ordering failed", "status", status.String(), "n", int64(info[InfoN]), "nz", int64(info[InfoNZ]))
		return
	}
	n := info[InfoN]
	lnz := info[InfoLNZ]
	log.Debug("ordering statistics",
		"status", status.String(),
		"n", int64(n),
		"nz", int64(info[InfoNZ]),
		"symmetry", info[InfoSymmetry],
		"nz_diag", int64(info[InfoNZDiag]),
		"nz_a_plus_at", int64(info[InfoNZAPlusAT]),
		"dense_rows", int64(info[InfoNDense]),
		"memory_bytes", int64(info[InfoMemory]),
		"compressions", int64(info[InfoNCmpa]),
		"lnz", int64(lnz),
		"lnz_with_diag", int64(lnz+n),
		"divisions", int64(info[InfoNDiv]),
		"ldl_mult_subs", int64(info[InfoNMultSubsLDL]),
		"lu_mult_subs", int64(info[InfoNMultSubsLU]),
		"max_column_count", int64(info[InfoDMax]),
		"ldl_flops", info[InfoNDiv]+2*info[InfoNMultSubsLDL],
	)
}

// Stats is the Info vector with named fields, for serialization.
type Stats struct {
	Status       string  `json:"status"`
	N            int64   `json:"n"`
	NZ           int64   `json:"nz"`
	Symmetry     float64 `json:"symmetry"`
	NZDiag       int64   `json:"nz_diag"`
	NZAPlusAT    int64   `json:"nz_a_plus_at"`
	NDense       int64   `json:"dense_rows"`
	Memory       int64   `json:"memory_bytes"`
	NCmpa        int64   `json:"compressions"`
	LNZ          int64   `json:"lnz"`
	NDiv         int64   `json:"divisions"`
	NMultSubsLDL int64   `json:"ldl_mult_subs"`
	NMultSubsLU  int64   `json:"lu_mult_subs"`
	DMax         int64   `json:"max_column_count"`
}

// Stats converts info to its named form.
func (info Info) Stats() Stats {
	return Stats{
		Status:       Status(info[InfoStatus]).String(),
		N:            int64(info[InfoN]),
		NZ:           int64(info[InfoNZ]),
		Symmetry:     info[InfoSymmetry],
		NZDiag:       int64(info[InfoNZDiag]),
		NZAPlusAT:    int64(info[InfoNZAPlusAT]),
		NDense:       int64(info[InfoNDense]),
		Memory:       int64(info[InfoMemory]),
		NCmpa:        int64(info[InfoNCmpa]),
		LNZ:          int64(info[InfoLNZ]),
		NDiv:         int64(info[InfoNDiv]),
		NMultSubsLDL: int64(info[InfoNMultSubsLDL]),
		NMultSubsLU:  int64(info[InfoNMultSubsLU]),
		DMax:         int64(info[InfoDMax]),
	}
}
