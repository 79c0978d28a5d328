package pls

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/plserr"
)

// Model is a fitted PLS-DA model. It is created by Fit and immutable afterwards;
// every accessor returns a copy.
type Model struct {
	n, p, k, h int

	w  [][]float64 // per component, len p (unit norm)
	pl [][]float64 // per component, len p
	q  [][]float64 // per component, len K
	t  *mat.Dense  // n × H training scores

	explained  []float64 // response variance fraction per component
	residualSS []float64 // ‖Xh‖²_F after each deflation
	iterations []int
	totalSSX   float64

	xMeans, xScales, yMeans []float64
	scaled                  bool
}

// Components returns H.
func (m *Model) Components() int { return m.h }

// NumFeatures returns p.
func (m *Model) NumFeatures() int { return m.p }

// NumSamples returns the number of training samples.
func (m *Model) NumSamples() int { return m.n }

// NumClasses returns K, the number of response columns.
func (m *Model) NumClasses() int { return m.k }

// Scaled reports whether X columns were scaled to unit variance.
func (m *Model) Scaled() bool { return m.scaled }

// W returns the p × H weight matrix.
func (m *Model) W() *mat.Dense { return colsToDense(m.w, m.p) }

// P returns the p × H X-loading matrix.
func (m *Model) P() *mat.Dense { return colsToDense(m.pl, m.p) }

// Q returns the K × H response-loading matrix.
func (m *Model) Q() *mat.Dense { return colsToDense(m.q, m.k) }

// T returns the n × H training score matrix.
func (m *Model) T() *mat.Dense { return mat.DenseCopyOf(m.t) }

// Weight returns w_{h,j}, the weight of feature j on component h (0-based).
func (m *Model) Weight(h, j int) float64 { return m.w[h][j] }

// Explained returns the response variance fraction of every component.
func (m *Model) Explained() []float64 { return append([]float64(nil), m.explained...) }

// CumulativeExplained returns the running sum of Explained.
func (m *Model) CumulativeExplained() []float64 {
	out := m.Explained()
	floats.CumSum(out, out)
	return out
}

// ResidualSS returns ‖X_c − T_h P_hᵀ‖²_F for h = 1..H.
func (m *Model) ResidualSS() []float64 { return append([]float64(nil), m.residualSS...) }

// TotalSS returns ‖X_c‖²_F, the sum of squares before any deflation.
func (m *Model) TotalSS() float64 { return m.totalSSX }

// Iterations returns the NIPALS iteration count of every component.
func (m *Model) Iterations() []int { return append([]int(nil), m.iterations...) }

// XMeans returns the training column means of X.
func (m *Model) XMeans() []float64 { return append([]float64(nil), m.xMeans...) }

// XScales returns the training column scales of X (all 1 when unscaled).
func (m *Model) XScales() []float64 { return append([]float64(nil), m.xScales...) }

// YMeans returns the training column means of the response (class proportions).
func (m *Model) YMeans() []float64 { return append([]float64(nil), m.yMeans...) }

// Transform returns the H component scores of a new sample x (len p). The sample is
// centered and scaled with the training statistics and deflated by P after each
// component, which is the same as projecting through W(PᵀW)⁻¹.
func (m *Model) Transform(x []float64) ([]float64, error) {
	if len(x) != m.p {
		return nil, fmt.Errorf("pls: sample has %d features, model has %d: %w", len(x), m.p, plserr.ErrInvalidInput)
	}
	xc := make([]float64, m.p)
	for j, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("pls: sample feature %d = %g: %w", j, v, plserr.ErrInvalidInput)
		}
		xc[j] = (v - m.xMeans[j]) / m.xScales[j]
	}
	scores := make([]float64, m.h)
	for h := 0; h < m.h; h++ {
		scores[h] = floats.Dot(xc, m.w[h])
		floats.AddScaled(xc, -scores[h], m.pl[h])
	}

	return scores, nil
}

// Decode rebuilds Ŷ = Σ_{c<h} t_c q_cᵀ + ȳ from the first h scores and returns the
// class index with the largest predicted response (lowest index on ties) and Ŷ.
func (m *Model) Decode(scores []float64, h int) (int, []float64, error) {
	if err := m.checkComponents(h); err != nil {
		return 0, nil, err
	}
	if len(scores) < h {
		return 0, nil, fmt.Errorf("pls: %d scores for %d components: %w", len(scores), h, plserr.ErrInvalidInput)
	}
	yhat := append([]float64(nil), m.yMeans...)
	for c := 0; c < h; c++ {
		floats.AddScaled(yhat, scores[c], m.q[c])
	}

	return floats.MaxIdx(yhat), yhat, nil
}

// PredictResponse returns Ŷ for x using the first h components.
func (m *Model) PredictResponse(x []float64, h int) ([]float64, error) {
	scores, err := m.Transform(x)
	if err != nil {
		return nil, err
	}
	_, yhat, err := m.Decode(scores, h)

	return yhat, err
}

// PredictAt returns the predicted class index for x using the first h components.
func (m *Model) PredictAt(x []float64, h int) (int, error) {
	if err := m.checkComponents(h); err != nil {
		return 0, err
	}
	scores, err := m.Transform(x)
	if err != nil {
		return 0, err
	}
	k, _, err := m.Decode(scores, h)

	return k, err
}

// Predict returns the predicted class index for x using all H components.
func (m *Model) Predict(x []float64) (int, error) { return m.PredictAt(x, m.h) }

// PredictMatrix predicts every row of x (samples × features) with h components.
func (m *Model) PredictMatrix(x mat.Matrix, h int) ([]int, error) {
	r, c := x.Dims()
	if c != m.p {
		return nil, fmt.Errorf("pls: matrix has %d features, model has %d: %w", c, m.p, plserr.ErrInvalidInput)
	}
	out := make([]int, r)
	row := make([]float64, m.p)
	for i := 0; i < r; i++ {
		mat.Row(row, i, x)
		k, err := m.PredictAt(row, h)
		if err != nil {
			return nil, fmt.Errorf("pls: row %d: %w", i, err)
		}
		out[i] = k
	}

	return out, nil
}

func (m *Model) checkComponents(h int) error {
	if h < 1 || h > m.h {
		return fmt.Errorf("pls: %d components requested, model has %d: %w", h, m.h, plserr.ErrInvalidConfiguration)
	}

	return nil
}

func colsToDense(cols [][]float64, rows int) *mat.Dense {
	out := mat.NewDense(rows, len(cols), nil)
	for j, c := range cols {
		out.SetCol(j, c)
	}

	return out
}
