package plsda

import (
	"fmt"

	"github.com/katalvlaran/plsda/classes"
	"github.com/katalvlaran/plsda/matrix"
	"github.com/katalvlaran/plsda/pls"
	"github.com/katalvlaran/plsda/plserr"
)

// Model is a fitted engine bound to the identifiers it was trained on: class names,
// feature IDs and sample IDs. All pls.Model accessors are available directly.
type Model struct {
	*pls.Model

	enc      *classes.Encoding
	features []string
	samples  []string
}

// Classes returns the class labels in encoding order (first seen in training).
func (m *Model) Classes() []string { return m.enc.Classes() }

// FeatureIDs returns the training feature identifiers, in model column order.
func (m *Model) FeatureIDs() []string { return append([]string(nil), m.features...) }

// SampleIDs returns the training sample identifiers, in score row order.
func (m *Model) SampleIDs() []string { return append([]string(nil), m.samples...) }

// PredictLabel classifies one sample given in training feature order.
func (m *Model) PredictLabel(x []float64) (string, error) {
	k, err := m.Predict(x)
	if err != nil {
		return "", err
	}

	return m.enc.Label(k), nil
}

// Classify predicts every sample of fm with all components. Features are matched by
// identifier, so fm may order them differently or carry extra ones.
//
// Errors:
//   - ErrInvalidInput when a model feature is absent from fm or a needed cell is
//     Missing.
func (m *Model) Classify(fm *matrix.FeatureMatrix) ([]string, error) {
	pos := make(map[string]int, fm.NumFeatures())
	for i, id := range fm.FeatureIDs() {
		pos[id] = i
	}
	rows := make([]int, len(m.features))
	for k, id := range m.features {
		i, ok := pos[id]
		if !ok {
			return nil, fmt.Errorf("plsda: feature %q missing from input: %w", id, plserr.ErrInvalidInput)
		}
		rows[k] = i
	}
	aligned, err := fm.SelectFeatures(rows)
	if err != nil {
		return nil, err
	}
	x, err := aligned.SampleMajor()
	if err != nil {
		return nil, err
	}
	idx, err := m.PredictMatrix(x, m.Components())
	if err != nil {
		return nil, err
	}
	out := make([]string, len(idx))
	for i, k := range idx {
		out[i] = m.enc.Label(k)
	}

	return out, nil
}
