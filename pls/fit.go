package pls

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/plsda/plserr"
)

const (
	// rankEps is the fraction of the initial sum of squares below which a deflated
	// matrix is treated as exhausted.
	rankEps = 1e-12

	// invariantSlack is the floating tolerance on Σ explained ≤ 1.
	invariantSlack = 1e-9
)

// MaxComponents returns min(samples-1, features, classes), the largest component
// count Fit accepts for an n×p X and K classes.
func MaxComponents(samples, features, classes int) int {
	return min(samples-1, features, classes)
}

// Fit runs NIPALS on x (samples × features) and y (samples × classes indicator) and
// returns a model with the requested number of components.
//
// Errors:
//   - ErrInvalidInput for mismatched row counts, non-finite cells, or a response with
//     no variance.
//   - ErrInvalidConfiguration when components is outside [1, MaxComponents].
//   - ErrNonConvergence when a component hits the iteration cap or the deflated
//     matrices have no direction left.
//   - ErrInternalInvariant when the explained-variance accounting breaks.
//
// Complexity:
//   - Time O(H·iter·(n·p + n·K)) where iter ≤ maxIter per component; two-class
//     responses converge in two iterations.
//   - Space O(n·p + n·K) for the deflated working copies.
func Fit(x, y mat.Matrix, components int, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)

	n, p := x.Dims()
	ny, k := y.Dims()
	if ny != n {
		return nil, fmt.Errorf("pls: X has %d rows, Y has %d: %w", n, ny, plserr.ErrInvalidInput)
	}
	if err := checkFinite("X", x); err != nil {
		return nil, err
	}
	if err := checkFinite("Y", y); err != nil {
		return nil, err
	}
	if limit := MaxComponents(n, p, k); components < 1 || components > limit {
		return nil, fmt.Errorf("pls: %d components requested, allowed 1..%d (samples=%d features=%d classes=%d): %w",
			components, limit, n, p, k, plserr.ErrInvalidConfiguration)
	}

	xh, xMeans, xScales := center(x, o.scale)
	yh, yMeans, _ := center(y, false)
	ssX := mat.Norm(xh, 2)
	ssX *= ssX
	ssY := mat.Norm(yh, 2)
	ssY *= ssY
	if ssY == 0 {
		return nil, fmt.Errorf("pls: centered response has zero sum of squares: %w", plserr.ErrInvalidInput)
	}

	m := &Model{
		n: n, p: p, k: k, h: components,
		w:          make([][]float64, components),
		pl:         make([][]float64, components),
		q:          make([][]float64, components),
		t:          mat.NewDense(n, components, nil),
		explained:  make([]float64, components),
		residualSS: make([]float64, components),
		iterations: make([]int, components),
		totalSSX:   ssX,
		xMeans:     xMeans,
		xScales:    xScales,
		yMeans:     yMeans,
		scaled:     o.scale,
	}

	var cumulative float64
	pv := mat.NewVecDense(p, nil)
	for h := 0; h < components; h++ {
		w, t, q, iters, err := nipals(xh, yh, ssX, ssY, o, h)
		if err != nil {
			return nil, err
		}

		// Feature loading p = Xhᵀt / (tᵀt).
		tt := mat.Dot(t, t)
		pv.MulVec(xh.T(), t)
		pv.ScaleVec(1/tt, pv)

		// Deflate.
		xh.RankOne(xh, -1, t, pv)
		yh.RankOne(yh, -1, t, q)

		frac := tt * mat.Dot(q, q) / ssY
		cumulative += frac
		if frac < 0 || math.IsNaN(frac) || cumulative > 1+invariantSlack {
			return nil, fmt.Errorf("pls: component %d explained %g (cumulative %g) of the response: %w",
				h+1, frac, cumulative, plserr.ErrInternalInvariant)
		}

		m.w[h] = append([]float64(nil), w.RawVector().Data...)
		m.pl[h] = append([]float64(nil), pv.RawVector().Data...)
		m.q[h] = append([]float64(nil), q.RawVector().Data...)
		m.t.SetCol(h, t.RawVector().Data)
		m.explained[h] = frac
		res := mat.Norm(xh, 2)
		m.residualSS[h] = res * res
		m.iterations[h] = iters

		o.logger.Debug().
			Int("component", h+1).
			Int("iterations", iters).
			Float64("explained", frac).
			Float64("residual_ss", m.residualSS[h]).
			Msg("pls component extracted")
	}

	return m, nil
}

// nipals extracts one component from the working copies without deflating them.
func nipals(xh, yh *mat.Dense, ssX, ssY float64, o Options, comp int) (w, t, q *mat.VecDense, iters int, err error) {
	n, p := xh.Dims()
	_, k := yh.Dims()

	// u starts at the first column of Yh that still carries variance.
	u := mat.NewVecDense(n, nil)
	start := -1
	for j := 0; j < k; j++ {
		col := mat.Col(nil, j, yh)
		if floats.Dot(col, col) > rankEps*ssY {
			copy(u.RawVector().Data, col)
			start = j
			break
		}
	}
	if start < 0 {
		return nil, nil, nil, 0, fmt.Errorf("pls: component %d: response exhausted by previous components: %w",
			comp+1, plserr.ErrNonConvergence)
	}

	w = mat.NewVecDense(p, nil)
	t = mat.NewVecDense(n, nil)
	q = mat.NewVecDense(k, nil)
	tOld := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)

	for iters = 1; iters <= o.maxIter; iters++ {
		w.MulVec(xh.T(), u)
		nw := mat.Norm(w, 2)
		if nw == 0 {
			return nil, nil, nil, iters, fmt.Errorf("pls: component %d iteration %d: Xᵀu vanished (rank exhausted): %w",
				comp+1, iters, plserr.ErrNonConvergence)
		}
		w.ScaleVec(1/nw, w)

		t.MulVec(xh, w)
		tt := mat.Dot(t, t)
		if tt <= rankEps*ssX {
			return nil, nil, nil, iters, fmt.Errorf("pls: component %d iteration %d: score norm² %g below rank tolerance (rank exhausted): %w",
				comp+1, iters, tt, plserr.ErrNonConvergence)
		}

		q.MulVec(yh.T(), t)
		q.ScaleVec(1/tt, q)
		qq := mat.Dot(q, q)
		if tt*qq <= rankEps*ssY {
			return nil, nil, nil, iters, fmt.Errorf("pls: component %d iteration %d: no response covariance left (rank exhausted): %w",
				comp+1, iters, plserr.ErrNonConvergence)
		}

		u.MulVec(yh, q)
		u.ScaleVec(1/qq, u)

		if iters > 1 {
			diff.SubVec(t, tOld)
			if mat.Norm(diff, 2) <= o.tol*math.Sqrt(tt) {
				return w, t, q, iters, nil
			}
		}
		tOld.CopyVec(t)
	}

	return nil, nil, nil, o.maxIter, fmt.Errorf("pls: component %d did not converge in %d iterations (tol %g): %w",
		comp+1, o.maxIter, o.tol, plserr.ErrNonConvergence)
}

// center returns a column-centered (optionally unit-variance) copy of a with the
// column means and scales. Zero-variance columns keep scale 1.
func center(a mat.Matrix, scale bool) (*mat.Dense, []float64, []float64) {
	r, c := a.Dims()
	out := mat.DenseCopyOf(a)
	means := make([]float64, c)
	scales := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, out)
		means[j] = stat.Mean(col, nil)
		scales[j] = 1
		if scale && r > 1 {
			if sd := stat.StdDev(col, nil); sd > 0 {
				scales[j] = sd
			}
		}
	}
	out.Apply(func(_, j int, v float64) float64 {
		return (v - means[j]) / scales[j]
	}, out)

	return out, means, scales
}

func checkFinite(name string, a mat.Matrix) error {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("pls: %s[%d,%d] = %g: %w", name, i, j, v, plserr.ErrInvalidInput)
			}
		}
	}

	return nil
}
