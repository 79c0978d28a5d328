package preprocess_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/plsda/matrix"
	"github.com/katalvlaran/plsda/plserr"
	"github.com/katalvlaran/plsda/preprocess"
)

var nan = math.NaN()

// PreprocessSuite exercises every stage and the full chain.
type PreprocessSuite struct {
	suite.Suite
}

func (s *PreprocessSuite) build(features []string, rows [][]float64) *matrix.FeatureMatrix {
	samples := make([]string, len(rows[0]))
	for j := range samples {
		samples[j] = string(rune('A' + j))
	}
	m, err := matrix.NewFeatureMatrix(features, samples, rows)
	s.Require().NoError(err)

	return m
}

// TestFilterMissing drops rows at or above the threshold.
func (s *PreprocessSuite) TestFilterMissing() {
	m := s.build([]string{"keep", "half", "most"}, [][]float64{
		{1, 2, 3, 4},
		{nan, nan, 3, 4},
		{nan, nan, nan, 4},
	})

	out, err := preprocess.FilterMissing(m, 0.5)
	s.Require().NoError(err)
	s.Equal([]string{"keep"}, out.FeatureIDs())

	out, err = preprocess.FilterMissing(m, 0.75)
	s.Require().NoError(err)
	s.Equal([]string{"keep", "half"}, out.FeatureIDs())
	s.Equal(3, m.NumFeatures(), "input untouched")
}

// TestFilterMissingRemovesAll reports InvalidInput when nothing survives.
func (s *PreprocessSuite) TestFilterMissingRemovesAll() {
	m := s.build([]string{"a"}, [][]float64{{nan, nan, 1}})
	_, err := preprocess.FilterMissing(m, 0.5)
	s.ErrorIs(err, plserr.ErrInvalidInput)

	_, err = preprocess.FilterMissing(m, 0)
	s.ErrorIs(err, plserr.ErrInvalidConfiguration)
	_, err = preprocess.FilterMissing(m, 1.5)
	s.ErrorIs(err, plserr.ErrInvalidConfiguration)
}

// TestImputeHalfMinimum fills with half the observed row minimum.
func (s *PreprocessSuite) TestImputeHalfMinimum() {
	m := s.build([]string{"a", "b"}, [][]float64{
		{nan, 8, 4, nan},
		{1, 2, 3, 4},
	})
	out, err := preprocess.ImputeHalfMinimum(m)
	s.Require().NoError(err)

	row, _ := out.Row(0)
	s.Equal([]float64{2, 8, 4, 2}, row)
	row, _ = out.Row(1)
	s.Equal([]float64{1, 2, 3, 4}, row)
	s.False(out.HasMissing())
}

// TestImputeEntirelyMissing covers the all-missing feature row.
func (s *PreprocessSuite) TestImputeEntirelyMissing() {
	m := s.build([]string{"ok", "void"}, [][]float64{
		{1, 2, 3},
		{nan, nan, nan},
	})
	_, err := preprocess.ImputeHalfMinimum(m)
	s.Require().ErrorIs(err, plserr.ErrInvalidInput)
	s.Contains(err.Error(), `"void"`)
}

// TestLogTransform checks values and the non-positive argument failure.
func (s *PreprocessSuite) TestLogTransform() {
	m := s.build([]string{"a"}, [][]float64{{0, 1, 3, 7}})
	out, err := preprocess.LogTransform(m, 1, 2)
	s.Require().NoError(err)
	row, _ := out.Row(0)
	s.InDeltaSlice([]float64{0, 1, 2, 3}, row, 1e-12)

	neg := s.build([]string{"a"}, [][]float64{{0, -1, 3}})
	_, err = preprocess.LogTransform(neg, 1, 2)
	s.Require().ErrorIs(err, plserr.ErrNumeric)
	s.Contains(err.Error(), `"B"`)

	_, err = preprocess.LogTransform(m, 1, 1)
	s.ErrorIs(err, plserr.ErrInvalidConfiguration)
	_, err = preprocess.LogTransform(m, 1, -2)
	s.ErrorIs(err, plserr.ErrInvalidConfiguration)
}

// TestNormalizeMedian aligns every sample median to the median of medians.
func (s *PreprocessSuite) TestNormalizeMedian() {
	m := s.build([]string{"a", "b", "c"}, [][]float64{
		{1, 11, 2},
		{2, 12, 4},
		{3, 13, 6},
	})
	out, err := preprocess.NormalizeMedian(m)
	s.Require().NoError(err)

	// Sample medians 2, 12, 4 → median of medians 4; shifts -2, 8, 0.
	s.Equal([]float64{4, 4, 4}, out.ColumnMedians())
	row, _ := out.Row(0)
	s.Equal([]float64{3, 3, 2}, row)
}

// TestSelectTopVariance keeps the n most variable rows with stable ties.
func (s *PreprocessSuite) TestSelectTopVariance() {
	m := s.build([]string{"flat", "tieA", "big", "tieB"}, [][]float64{
		{1, 1, 1},
		{0, 1, 2},
		{0, 10, 20},
		{5, 6, 7},
	})

	out, err := preprocess.SelectTopVariance(m, 2)
	s.Require().NoError(err)
	s.Equal([]string{"tieA", "big"}, out.FeatureIDs(), "tieA wins the tie by original order")

	out, err = preprocess.SelectTopVariance(m, 10)
	s.Require().NoError(err)
	s.Equal(4, out.NumFeatures())

	_, err = preprocess.SelectTopVariance(m, -1)
	s.ErrorIs(err, plserr.ErrInvalidConfiguration)

	withGap := s.build([]string{"a"}, [][]float64{{1, nan, 2}})
	_, err = preprocess.SelectTopVariance(withGap, 1)
	s.ErrorIs(err, plserr.ErrInvalidInput)
}

// TestRunChain runs all stages and logs each of them.
func (s *PreprocessSuite) TestRunChain() {
	m := s.build([]string{"f1", "f2", "f3", "gone"}, [][]float64{
		{1, 3, 7, 15},
		{nan, 1, 1, 3},
		{2, 2, 2, 2},
		{nan, nan, nan, 1},
	})
	cfg := preprocess.DefaultConfig()
	cfg.TopVarianceCount = 2

	var buf bytes.Buffer
	out, err := preprocess.Run(m, cfg, preprocess.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	s.Require().NoError(err)
	s.Equal([]string{"f1", "f3"}, out.FeatureIDs(), "median shift makes f3 vary more than f2")
	s.False(out.HasMissing())
	s.Contains(buf.String(), "selected top variance")

	bad := cfg
	bad.LogBase = 0
	_, err = preprocess.Run(m, bad)
	s.ErrorIs(err, plserr.ErrInvalidConfiguration)
}

func TestPreprocessSuite(t *testing.T) {
	suite.Run(t, new(PreprocessSuite))
}

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, preprocess.DefaultConfig().Validate())
}
