// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plsda/matrix"
)

var nan = math.NaN()

func sampleMatrix(t *testing.T) *matrix.FeatureMatrix {
	t.Helper()

	m, err := matrix.NewFeatureMatrix(
		[]string{"f1", "f2", "f3"},
		[]string{"s1", "s2", "s3", "s4"},
		[][]float64{
			{1, 2, 3, 4},
			{nan, 5, nan, 7},
			{10, 10, 10, 10},
		},
	)
	require.NoError(t, err)

	return m
}

func TestNewFeatureMatrix_Validation(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewFeatureMatrix([]string{"a", "a"}, []string{"s"}, [][]float64{{1}, {2}})
	require.ErrorIs(t, err, matrix.ErrDuplicateID)

	_, err = matrix.NewFeatureMatrix([]string{"a"}, []string{"s", "s"}, [][]float64{{1, 2}})
	require.ErrorIs(t, err, matrix.ErrDuplicateID)

	_, err = matrix.NewFeatureMatrix([]string{"a", "b"}, []string{"s", "t"}, [][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewFeatureMatrix(nil, nil, nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewFeatureMatrix([]string{"a"}, []string{"s"}, [][]float64{{math.Inf(-1)}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestFeatureMatrix_Accessors(t *testing.T) {
	t.Parallel()

	m := sampleMatrix(t)
	require.Equal(t, 3, m.NumFeatures())
	require.Equal(t, 4, m.NumSamples())
	require.Equal(t, "f2", m.FeatureID(1))
	require.Equal(t, "s4", m.SampleID(3))
	require.True(t, m.HasMissing())

	col, err := m.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 5, 10}, col)

	assert.Equal(t, []float64{5, 7}, m.ObservedRow(1))
	assert.InDelta(t, 0.5, m.MissingFraction(1), 1e-12)
	assert.InDelta(t, 0.0, m.MissingFraction(0), 1e-12)
}

func TestFeatureMatrix_SelectAndReorder(t *testing.T) {
	t.Parallel()

	m := sampleMatrix(t)

	sub, err := m.SelectFeatures([]int{2, 0})
	require.NoError(t, err)
	require.Equal(t, []string{"f3", "f1"}, sub.FeatureIDs())
	row, _ := sub.Row(1)
	require.Equal(t, []float64{1, 2, 3, 4}, row)

	re, err := m.ReorderSamples([]string{"s4", "s3", "s2", "s1"})
	require.NoError(t, err)
	row, _ = re.Row(0)
	require.Equal(t, []float64{4, 3, 2, 1}, row)
	require.Equal(t, []string{"s1", "s2", "s3", "s4"}, m.SampleIDs(), "receiver untouched")

	_, err = m.ReorderSamples([]string{"s4", "s3", "s2", "zz"})
	require.ErrorIs(t, err, matrix.ErrUnknownID)
	_, err = m.ReorderSamples([]string{"s1"})
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestFeatureMatrix_TransformIsPure(t *testing.T) {
	t.Parallel()

	m := sampleMatrix(t)
	out, err := m.Transform(func(_, _ int, v float64) (float64, error) { return v + 1, nil })
	require.NoError(t, err)

	v, _ := out.At(0, 0)
	require.Equal(t, 2.0, v)
	v, _ = m.At(0, 0)
	require.Equal(t, 1.0, v)

	v, _ = out.At(1, 0)
	require.True(t, matrix.IsMissing(v), "missing propagates")

	_, err = m.Transform(func(_, _ int, _ float64) (float64, error) { return math.Inf(1), nil })
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	boom := errors.New("boom")
	_, err = m.Transform(func(_, _ int, _ float64) (float64, error) { return 0, boom })
	require.Same(t, boom, err)
}

func TestFeatureMatrix_SampleMajor(t *testing.T) {
	t.Parallel()

	m := sampleMatrix(t)
	_, err := m.SampleMajor()
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.Contains(t, err.Error(), `feature "f2" sample "s1"`)

	full, err := m.SelectFeatures([]int{0, 2})
	require.NoError(t, err)
	x, err := full.SampleMajor()
	require.NoError(t, err)
	r, c := x.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)
	require.Equal(t, 3.0, x.At(2, 0))
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	m := sampleMatrix(t)
	vars := m.RowVariances()
	assert.InDelta(t, 5.0/3.0, vars[0], 1e-12)
	assert.InDelta(t, 2.0, vars[1], 1e-12)
	assert.InDelta(t, 0.0, vars[2], 1e-12)

	med := m.ColumnMedians()
	assert.Equal(t, []float64{5.5, 5, 6.5, 7}, med)

	assert.Equal(t, 2.5, matrix.Median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, matrix.Median([]float64{5, 1, 3}))
	assert.True(t, math.IsNaN(matrix.Median(nil)))
}
