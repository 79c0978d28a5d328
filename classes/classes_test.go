package classes_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/classes"
	"github.com/katalvlaran/plsda/plserr"
)

func TestEncode_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	enc, err := classes.Encode([]string{"tumor", "normal", "tumor", "benign", "normal"})
	require.NoError(t, err)
	require.Equal(t, []string{"tumor", "normal", "benign"}, enc.Classes())
	require.Equal(t, []int{0, 1, 0, 2, 1}, enc.Codes())
	require.Equal(t, []int{2, 2, 1}, enc.Counts())

	k, ok := enc.Index("benign")
	require.True(t, ok)
	require.Equal(t, 2, k)
	_, ok = enc.Index("unknown")
	require.False(t, ok)
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()

	labels := []string{"b", "a", "c", "a", "b"}
	first, err := classes.Encode(labels)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := classes.Encode(labels)
		require.NoError(t, err)
		require.Equal(t, first.Classes(), again.Classes())
	}
}

func TestEncode_Failures(t *testing.T) {
	t.Parallel()

	_, err := classes.Encode([]string{"a", "a", "a"})
	require.ErrorIs(t, err, plserr.ErrInvalidInput)
	_, err = classes.Encode(nil)
	require.ErrorIs(t, err, plserr.ErrInvalidInput)
	_, err = classes.Encode([]string{"a", "", "b"})
	require.ErrorIs(t, err, plserr.ErrInvalidInput)
}

func TestIndicator_OneHotPerRow(t *testing.T) {
	t.Parallel()

	enc, err := classes.Encode([]string{"x", "y", "x", "z"})
	require.NoError(t, err)
	y := enc.Indicator()

	r, c := y.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 3, c)
	for i := 0; i < r; i++ {
		require.Equal(t, 1.0, mat.Sum(y.RowView(i)))
		require.Equal(t, 1.0, y.At(i, enc.Code(i)))
	}

	sub := enc.Subset([]int{3, 0})
	require.Equal(t, []float64{0, 0, 1, 1, 0, 0}, sub.RawMatrix().Data)
}

func TestPermute_KeepsClassOrder(t *testing.T) {
	t.Parallel()

	enc, err := classes.Encode([]string{"a", "b", "b"})
	require.NoError(t, err)
	p, err := enc.Permute([]int{2, 0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{1, 0, 1}, p.Codes())
	require.Equal(t, enc.Classes(), p.Classes())

	_, err = enc.Permute([]int{0})
	require.ErrorIs(t, err, plserr.ErrInvalidInput)
}

func TestAnnotation_LabelsFor(t *testing.T) {
	t.Parallel()

	ann := classes.Annotation{"s1": "A", "s2": "B", "s3": "A"}
	labels, err := ann.LabelsFor([]string{"s3", "s1", "s2"})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "A", "B"}, labels)

	_, err = ann.LabelsFor([]string{"s1", "s9"})
	require.ErrorIs(t, err, plserr.ErrInvalidInput)
	require.Contains(t, err.Error(), `"s9"`)
}
