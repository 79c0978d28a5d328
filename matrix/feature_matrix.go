// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Missing is the explicit missing-value marker stored in FeatureMatrix cells.
var Missing = math.NaN()

// IsMissing reports whether v is the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// FeatureMatrix is a features × samples table with unique identifiers on both axes.
// Rows are features, columns are samples. Values are finite numbers or Missing.
type FeatureMatrix struct {
	features []string
	samples  []string
	data     *Dense // features × samples, NaN allowed
}

// NewFeatureMatrix copies rows into a new FeatureMatrix.
//
// Errors:
//   - ErrBadShape when there are no features/samples, len(rows) differs from
//     len(featureIDs), or any row differs in length from len(sampleIDs).
//   - ErrDuplicateID for a repeated feature or sample identifier.
//   - ErrNaNInf for ±Inf cells (NaN is accepted as Missing).
func NewFeatureMatrix(featureIDs, sampleIDs []string, rows [][]float64) (*FeatureMatrix, error) {
	if len(rows) != len(featureIDs) {
		return nil, fmt.Errorf("NewFeatureMatrix: %d rows for %d feature ids: %w", len(rows), len(featureIDs), ErrBadShape)
	}
	data, err := NewDenseMissingOK(len(featureIDs), len(sampleIDs))
	if err != nil {
		return nil, fmt.Errorf("NewFeatureMatrix: %w", err)
	}
	if err = checkUnique("feature", featureIDs); err != nil {
		return nil, err
	}
	if err = checkUnique("sample", sampleIDs); err != nil {
		return nil, err
	}

	c := len(sampleIDs)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewFeatureMatrix: feature %q has %d values, want %d: %w", featureIDs[i], len(row), c, ErrBadShape)
		}
		for j, v := range row {
			if err = data.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("NewFeatureMatrix: feature %q sample %q: %w", featureIDs[i], sampleIDs[j], err)
			}
		}
	}

	return &FeatureMatrix{
		features: append([]string(nil), featureIDs...),
		samples:  append([]string(nil), sampleIDs...),
		data:     data,
	}, nil
}

func checkUnique(kind string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s id %q: %w", kind, id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// NumFeatures returns the number of feature rows.
func (m *FeatureMatrix) NumFeatures() int { return m.data.Rows() }

// NumSamples returns the number of sample columns.
func (m *FeatureMatrix) NumSamples() int { return m.data.Cols() }

// FeatureIDs returns a copy of the feature identifiers in row order.
func (m *FeatureMatrix) FeatureIDs() []string { return append([]string(nil), m.features...) }

// SampleIDs returns a copy of the sample identifiers in column order.
func (m *FeatureMatrix) SampleIDs() []string { return append([]string(nil), m.samples...) }

// FeatureID returns the identifier of row i.
func (m *FeatureMatrix) FeatureID(i int) string { return m.features[i] }

// SampleID returns the identifier of column j.
func (m *FeatureMatrix) SampleID(j int) string { return m.samples[j] }

// At returns the value at (feature i, sample j), possibly Missing.
func (m *FeatureMatrix) At(i, j int) (float64, error) { return m.data.At(i, j) }

// Row returns a copy of feature row i.
func (m *FeatureMatrix) Row(i int) ([]float64, error) { return m.data.Row(i) }

// Column returns a copy of sample column j.
func (m *FeatureMatrix) Column(j int) ([]float64, error) {
	if j < 0 || j >= m.data.c {
		return nil, denseErrorf(ctxAt, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.data.r)
	for i := range out {
		out[i] = m.data.data[i*m.data.c+j]
	}

	return out, nil
}

// HasMissing reports whether any cell is Missing.
func (m *FeatureMatrix) HasMissing() bool {
	found := false
	m.data.Do(func(_, _ int, v float64) bool {
		found = IsMissing(v)
		return !found
	})

	return found
}

// SelectFeatures returns a new matrix holding the given rows, in the given order.
func (m *FeatureMatrix) SelectFeatures(rows []int) (*FeatureMatrix, error) {
	all := seq(m.data.c)
	data, err := m.data.Induced(rows, all)
	if err != nil {
		return nil, fmt.Errorf("SelectFeatures: %w", err)
	}
	ids := make([]string, len(rows))
	for k, i := range rows {
		ids[k] = m.features[i]
	}
	if err = checkUnique("feature", ids); err != nil {
		return nil, fmt.Errorf("SelectFeatures: %w", err)
	}

	return &FeatureMatrix{features: ids, samples: m.SampleIDs(), data: data}, nil
}

// SelectSamples returns a new matrix holding the given columns, in the given order.
func (m *FeatureMatrix) SelectSamples(cols []int) (*FeatureMatrix, error) {
	all := seq(m.data.r)
	data, err := m.data.Induced(all, cols)
	if err != nil {
		return nil, fmt.Errorf("SelectSamples: %w", err)
	}
	ids := make([]string, len(cols))
	for k, j := range cols {
		ids[k] = m.samples[j]
	}
	if err = checkUnique("sample", ids); err != nil {
		return nil, fmt.Errorf("SelectSamples: %w", err)
	}

	return &FeatureMatrix{features: m.FeatureIDs(), samples: ids, data: data}, nil
}

// ReorderSamples returns a new matrix whose columns follow sampleIDs. Samples are
// reconciled by identifier, never by position.
//
// Errors:
//   - ErrUnknownID for an identifier not present in m.
//   - ErrBadShape when sampleIDs does not cover every column exactly once.
func (m *FeatureMatrix) ReorderSamples(sampleIDs []string) (*FeatureMatrix, error) {
	if len(sampleIDs) != len(m.samples) {
		return nil, fmt.Errorf("ReorderSamples: %d ids for %d samples: %w", len(sampleIDs), len(m.samples), ErrBadShape)
	}
	pos := make(map[string]int, len(m.samples))
	for j, id := range m.samples {
		pos[id] = j
	}
	cols := make([]int, len(sampleIDs))
	for k, id := range sampleIDs {
		j, ok := pos[id]
		if !ok {
			return nil, fmt.Errorf("ReorderSamples: sample %q: %w", id, ErrUnknownID)
		}
		cols[k] = j
	}

	return m.SelectSamples(cols)
}

// Transform returns a new matrix whose cells are f(i, j, v). The receiver is left
// untouched; the first error from f aborts and is returned as is. Results may be
// Missing but never ±Inf.
func (m *FeatureMatrix) Transform(f func(i, j int, v float64) (float64, error)) (*FeatureMatrix, error) {
	out := m.data.Clone()
	if err := out.Apply(f); err != nil {
		if errors.Is(err, ErrNaNInf) {
			return nil, fmt.Errorf("Transform: %w", err)
		}
		return nil, err
	}

	return &FeatureMatrix{features: m.FeatureIDs(), samples: m.SampleIDs(), data: out}, nil
}

// SampleMajor returns the samples × features gonum matrix used by the engine. The
// cells pass through a strict Dense, so nothing non-finite reaches the engine.
//
// Errors:
//   - ErrNaNInf naming feature and sample when any cell is Missing.
func (m *FeatureMatrix) SampleMajor() (*mat.Dense, error) {
	features, samples := m.data.Shape()
	x, err := NewDense(samples, features)
	if err != nil {
		return nil, fmt.Errorf("SampleMajor: %w", err)
	}
	m.data.Do(func(i, j int, v float64) bool {
		if serr := x.Set(j, i, v); serr != nil {
			err = fmt.Errorf("SampleMajor: feature %q sample %q is missing: %w", m.features[i], m.samples[j], serr)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return x.Gonum(), nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
