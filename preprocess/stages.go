package preprocess

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/plsda/matrix"
	"github.com/katalvlaran/plsda/plserr"
)

// FilterMissing drops every feature whose missing fraction is ≥ threshold.
//
// Errors:
//   - ErrInvalidConfiguration when threshold is outside (0, 1].
//   - ErrInvalidInput when no feature survives.
func FilterMissing(m *matrix.FeatureMatrix, threshold float64) (*matrix.FeatureMatrix, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	keep := make([]int, 0, m.NumFeatures())
	for i := 0; i < m.NumFeatures(); i++ {
		if m.MissingFraction(i) < threshold {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("preprocess: FilterMissing(%g) removed all %d features: %w",
			threshold, m.NumFeatures(), plserr.ErrInvalidInput)
	}

	return m.SelectFeatures(keep)
}

// ImputeHalfMinimum replaces each missing cell with half of its feature's minimum
// observed value. Complete features are copied unchanged.
//
// Errors:
//   - ErrInvalidInput naming the feature when a row is entirely missing.
func ImputeHalfMinimum(m *matrix.FeatureMatrix) (*matrix.FeatureMatrix, error) {
	fill := make([]float64, m.NumFeatures())
	for i := range fill {
		obs := m.ObservedRow(i)
		if len(obs) == 0 {
			return nil, fmt.Errorf("preprocess: ImputeHalfMinimum: feature %q has no observed value: %w",
				m.FeatureID(i), plserr.ErrInvalidInput)
		}
		lo := obs[0]
		for _, v := range obs[1:] {
			lo = math.Min(lo, v)
		}
		fill[i] = lo / 2
	}

	return m.Transform(func(i, _ int, v float64) (float64, error) {
		if matrix.IsMissing(v) {
			return fill[i], nil
		}
		return v, nil
	})
}

// LogTransform maps every observed cell to log_base(v + offset). Missing cells stay
// missing.
//
// Errors:
//   - ErrInvalidConfiguration for a non-finite offset or a base that is ≤ 0 or 1.
//   - ErrNumeric naming feature and sample when v + offset ≤ 0.
func LogTransform(m *matrix.FeatureMatrix, offset, base float64) (*matrix.FeatureMatrix, error) {
	if err := validateLog(offset, base); err != nil {
		return nil, err
	}
	lnBase := math.Log(base)

	return m.Transform(func(i, j int, v float64) (float64, error) {
		if matrix.IsMissing(v) {
			return v, nil
		}
		arg := v + offset
		if arg <= 0 {
			return 0, fmt.Errorf("preprocess: LogTransform: feature %q sample %q: %g + %g ≤ 0: %w",
				m.FeatureID(i), m.SampleID(j), v, offset, plserr.ErrNumeric)
		}
		return math.Log(arg) / lnBase, nil
	})
}

// NormalizeMedian subtracts (sampleMedian − medianOfSampleMedians) from every value in
// each sample column. Medians skip missing cells.
//
// Errors:
//   - ErrInvalidInput naming the sample when a column has no observed value.
func NormalizeMedian(m *matrix.FeatureMatrix) (*matrix.FeatureMatrix, error) {
	medians := m.ColumnMedians()
	for j, md := range medians {
		if math.IsNaN(md) {
			return nil, fmt.Errorf("preprocess: NormalizeMedian: sample %q has no observed value: %w",
				m.SampleID(j), plserr.ErrInvalidInput)
		}
	}
	center := matrix.Median(medians)
	shift := make([]float64, len(medians))
	for j, md := range medians {
		shift[j] = md - center
	}

	return m.Transform(func(_, j int, v float64) (float64, error) {
		return v - shift[j], nil
	})
}

// SelectTopVariance keeps the n features with the highest unbiased variance. Ties
// are broken by original feature order, and the survivors keep their original
// relative order. n == 0 or n ≥ feature count keeps everything.
//
// Errors:
//   - ErrInvalidConfiguration when n < 0.
//   - ErrInvalidInput when a missing cell remains (imputation has not run).
func SelectTopVariance(m *matrix.FeatureMatrix, n int) (*matrix.FeatureMatrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("preprocess: SelectTopVariance(%d): %w", n, plserr.ErrInvalidConfiguration)
	}
	if m.HasMissing() {
		return nil, fmt.Errorf("preprocess: SelectTopVariance: matrix still has missing cells: %w", plserr.ErrInvalidInput)
	}
	p := m.NumFeatures()
	if n == 0 || n >= p {
		return m.SelectFeatures(seq(p))
	}

	vars := m.RowVariances()
	order := seq(p)
	sort.SliceStable(order, func(a, b int) bool { return vars[order[a]] > vars[order[b]] })
	keep := order[:n]
	sort.Ints(keep)

	return m.SelectFeatures(keep)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
