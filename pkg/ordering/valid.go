package ordering

// Valid checks a column pattern the way AMD does before ordering it.
// Unsorted or duplicate row indices within a column are tolerated and
// reported as StatusOKButJumbled.
func Valid(n int32, ap, ai []int32) Status {
	if n < 0 || len(ap) != int(n)+1 || ap[0] != 0 || ap[n] < 0 {
		return StatusInvalid
	}
	nz := int(ap[n])
	if len(ai) < nz {
		return StatusInvalid
	}
	status := StatusOK
	for j := int32(0); j < n; j++ {
		p1, p2 := ap[j], ap[j+1]
		if p1 > p2 {
			return StatusInvalid
		}
		last := int32(-1)
		for p := p1; p < p2; p++ {
			i := ai[p]
			if i < 0 || i >= n {
				return StatusInvalid
			}
			if i <= last {
				status = StatusOKButJumbled
			}
			last = i
		}
	}
	return status
}
