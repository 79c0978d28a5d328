// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Per-row and per-column summaries over a FeatureMatrix that skip Missing cells.
//   - Deterministic i→j traversal; no map iteration.
//
// Exposed API:
//   - ObservedRow(i)        -> non-missing values of row i, in column order
//   - MissingFraction(i)    -> fraction of Missing cells in row i
//   - RowVariances()        -> unbiased variance per row (gonum stat.Variance)
//   - ColumnMedians()       -> median per column, Missing skipped
//   - Median(xs)            -> median of a slice (mean of the two middles for even n)

package matrix

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ObservedRow returns the non-missing values of row i in column order.
func (m *FeatureMatrix) ObservedRow(i int) []float64 {
	c := m.data.c
	out := make([]float64, 0, c)
	for _, v := range m.data.data[i*c : (i+1)*c] {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}

	return out
}

// MissingFraction returns the fraction of Missing cells in row i.
func (m *FeatureMatrix) MissingFraction(i int) float64 {
	c := m.data.c
	return float64(c-len(m.ObservedRow(i))) / float64(c)
}

// RowVariances returns the unbiased (n-1) variance of every row over its observed
// cells. Rows with fewer than two observed cells get variance 0.
func (m *FeatureMatrix) RowVariances() []float64 {
	out := make([]float64, m.data.r)
	for i := range out {
		obs := m.ObservedRow(i)
		if len(obs) < 2 {
			continue
		}
		out[i] = stat.Variance(obs, nil)
	}

	return out
}

// ColumnMedians returns the median of every sample column over its observed cells.
// A column with no observed cell yields NaN.
func (m *FeatureMatrix) ColumnMedians() []float64 {
	r, c := m.data.r, m.data.c
	out := make([]float64, c)
	col := make([]float64, 0, r)
	for j := 0; j < c; j++ {
		col = col[:0]
		for i := 0; i < r; i++ {
			if v := m.data.data[i*c+j]; !IsMissing(v) {
				col = append(col, v)
			}
		}
		out[j] = Median(col)
	}

	return out
}

// Median returns the median of xs: the middle value for odd n, the mean of the two
// middle values for even n, NaN for an empty slice. xs is not modified.
//
// gonum's stat.Quantile(0.5, ...) picks one order statistic for even n instead of
// averaging the middle pair, hence the explicit helper.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}
