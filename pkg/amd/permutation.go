package amd

// IsPermutation reports whether p is a bijection on [0, len(p)).
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns q with q[p[k]] = k. p must be a permutation.
func Inverse(p []int) []int {
	q := make([]int, len(p))
	for k, v := range p {
		q[v] = k
	}
	return q
}

// Matrix expands p into the dense permutation matrix M with M[k][p[k]] = 1,
// so that M*A*M' is A in elimination order.
func Matrix(p []int) [][]int {
	m := make([][]int, len(p))
	for k, v := range p {
		m[k] = make([]int, len(p))
		m[k][v] = 1
	}
	return m
}
