package ordering

import (
	"math"
	"slices"
)

// MinimumDegree is a reference Orderer that runs exact minimum-degree
// elimination on the pattern of A+A'. Ties go to the lowest index and dense
// rows are ordered last. It is meant for tests and small problems; it keeps
// the explicit elimination graph, so memory grows with fill-in.
type MinimumDegree struct {
	// Log receives Control and Info reports. Nil disables them.
	Log Logger
}

var _ Orderer = (*MinimumDegree)(nil)

// Version reports the AMD release whose Control/Info layout this backend
// mirrors.
func (m *MinimumDegree) Version() Version {
	return Version{Major: 3, Minor: 3, Patch: 3}
}

func (m *MinimumDegree) Defaults() Control {
	return DefaultControl()
}

func (m *MinimumDegree) Control(ctrl Control) {
	ReportControl(m.Log, m.Version(), ctrl)
}

func (m *MinimumDegree) Info(info Info) {
	ReportInfo(m.Log, info)
}

// Order computes the permutation. ap and ai are read only.
func (m *MinimumDegree) Order(n int32, ap, ai []int32, ctrl Control) ([]int32, Info, Status) {
	var info Info
	for k := range info {
		info[k] = -1
	}
	info[InfoN] = float64(n)
	info[InfoStatus] = float64(StatusOK)

	status := Valid(n, ap, ai)
	if !status.Succeeded() {
		info[InfoStatus] = float64(status)
		return nil, info, status
	}
	info[InfoStatus] = float64(status)
	info[InfoNZ] = float64(ap[n])

	g := newGraph(n, ap, ai)
	info[InfoSymmetry] = g.symmetry
	info[InfoNZDiag] = float64(g.nzdiag)
	info[InfoNZAPlusAT] = float64(g.nzaat)
	info[InfoMemory] = float64((g.nzaat + 8*int(n)) * 4)
	info[InfoNCmpa] = 0

	dense := denseThreshold(int(n), ctrl[Dense])
	var denseNodes []int32
	for v := range g.adj {
		if len(g.adj[v]) > dense {
			denseNodes = append(denseNodes, int32(v))
		}
	}
	for _, d := range denseNodes {
		g.remove(d)
	}
	info[InfoNDense] = float64(len(denseNodes))

	perm := make([]int32, 0, n)
	var lnz, ndiv, nmsLDL, nmsLU, dmax float64
	ndense := float64(len(denseNodes))
	for len(perm) < int(n)-len(denseNodes) {
		v := g.pick()
		r := float64(len(g.adj[v])) + ndense
		dmax = math.Max(dmax, 1+r)
		lnz += r
		ndiv += r
		nmsLU += r * r
		nmsLDL += (r*r + r) / 2
		g.eliminate(v)
		perm = append(perm, v)
	}
	// Dense rows form a trailing clique among themselves.
	for k, d := range denseNodes {
		r := float64(len(denseNodes) - k - 1)
		dmax = math.Max(dmax, 1+r)
		lnz += r
		ndiv += r
		nmsLU += r * r
		nmsLDL += (r*r + r) / 2
		perm = append(perm, d)
	}

	info[InfoLNZ] = lnz
	info[InfoNDiv] = ndiv
	info[InfoNMultSubsLDL] = nmsLDL
	info[InfoNMultSubsLU] = nmsLU
	info[InfoDMax] = dmax
	return perm, info, status
}

// denseThreshold returns the degree above which a row counts as dense.
func denseThreshold(n int, alpha float64) int {
	if alpha < 0 {
		return n - 2
	}
	dense := alpha * math.Sqrt(float64(n))
	dense = math.Max(16, dense)
	dense = math.Min(float64(n), dense)
	return int(dense)
}

// graph is the elimination graph of A+A' without the diagonal.
type graph struct {
	adj      []map[int32]struct{}
	alive    []bool
	nzdiag   int
	nzaat    int
	symmetry float64
}

func newGraph(n int32, ap, ai []int32) *graph {
	g := &graph{
		adj:   make([]map[int32]struct{}, n),
		alive: make([]bool, n),
	}
	cols := make([]map[int32]struct{}, n)
	for j := range cols {
		cols[j] = make(map[int32]struct{}, ap[j+1]-ap[j])
		g.adj[j] = make(map[int32]struct{})
		g.alive[j] = true
	}
	for j := int32(0); j < n; j++ {
		for p := ap[j]; p < ap[j+1]; p++ {
			cols[j][ai[p]] = struct{}{}
		}
	}

	offdiag, matched := 0, 0
	for j := int32(0); j < n; j++ {
		for i := range cols[j] {
			if i == j {
				g.nzdiag++
				continue
			}
			offdiag++
			if _, ok := cols[i][j]; ok {
				matched++
			}
			g.adj[i][j] = struct{}{}
			g.adj[j][i] = struct{}{}
		}
	}
	for _, a := range g.adj {
		g.nzaat += len(a)
	}
	if offdiag == 0 {
		g.symmetry = 1
	} else {
		g.symmetry = float64(matched) / float64(offdiag)
	}
	return g
}

// pick returns the live vertex of least degree, lowest index first.
func (g *graph) pick() int32 {
	best, bestDeg := int32(-1), math.MaxInt
	for v, ok := range g.alive {
		if ok && len(g.adj[v]) < bestDeg {
			best, bestDeg = int32(v), len(g.adj[v])
		}
	}
	return best
}

// remove drops v and its edges from the graph.
func (g *graph) remove(v int32) {
	for u := range g.adj[v] {
		delete(g.adj[u], v)
	}
	g.adj[v] = nil
	g.alive[v] = false
}

// eliminate removes v and turns its neighbourhood into a clique.
func (g *graph) eliminate(v int32) {
	nbrs := make([]int32, 0, len(g.adj[v]))
	for u := range g.adj[v] {
		nbrs = append(nbrs, u)
	}
	slices.Sort(nbrs)
	g.remove(v)
	for _, u := range nbrs {
		for _, w := range nbrs {
			if u != w {
				g.adj[u][w] = struct{}{}
			}
		}
	}
}
