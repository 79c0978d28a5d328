package plsda

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/classes"
	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/matrix"
	"github.com/katalvlaran/plsda/pls"
	"github.com/katalvlaran/plsda/plserr"
	"github.com/katalvlaran/plsda/preprocess"
	"github.com/katalvlaran/plsda/vip"
)

// Preprocess runs the preprocessing chain on raw. See package preprocess for the
// stages and their order.
func Preprocess(raw *matrix.FeatureMatrix, cfg preprocess.Config, opts ...Option) (*matrix.FeatureMatrix, error) {
	o := gatherOptions(opts...)
	return preprocess.Run(raw, cfg, o.preprocessOptions()...)
}

// FitPLSDA fits an H-component model to m with one label per sample (in m's sample
// order) and ranks the features by VIP.
//
// Errors: ErrInvalidInput for a label count mismatch, Missing cells or a bad label
// set, plus everything pls.Fit returns.
func FitPLSDA(m *matrix.FeatureMatrix, labels []string, components int, opts ...Option) (*Model, *vip.Table, error) {
	o := gatherOptions(opts...)
	x, enc, err := design(m, labels)
	if err != nil {
		return nil, nil, err
	}

	engine, err := pls.Fit(x, enc.Indicator(), components, o.fitOptions()...)
	if err != nil {
		return nil, nil, err
	}
	model := &Model{
		Model:    engine,
		enc:      enc,
		features: m.FeatureIDs(),
		samples:  m.SampleIDs(),
	}
	table, err := vip.Compute(engine, model.features)
	if err != nil {
		return nil, nil, err
	}

	cum := engine.CumulativeExplained()
	o.logger.Info().
		Int("components", components).
		Int("features", m.NumFeatures()).
		Int("samples", m.NumSamples()).
		Strs("classes", enc.Classes()).
		Float64("explained", cum[len(cum)-1]).
		Msg("plsda model fitted")

	return model, table, nil
}

// CrossValidate estimates the accuracy of an H-component model on m and labels with
// the given fold scheme.
func CrossValidate(ctx context.Context, m *matrix.FeatureMatrix, labels []string, components int, scheme cv.Scheme, opts ...Option) (*cv.Result, error) {
	o := gatherOptions(opts...)
	x, enc, err := design(m, labels)
	if err != nil {
		return nil, err
	}
	res, err := cv.CrossValidate(ctx, x, enc, components, scheme, o.cvOptions()...)
	if err != nil {
		return nil, err
	}
	o.logger.Info().
		Str("scheme", scheme.String()).
		Floats64("accuracy", res.Accuracy).
		Msg("cross-validation finished")

	return res, nil
}

// Permute runs a label-permutation test of the cross-validated accuracy.
func Permute(ctx context.Context, m *matrix.FeatureMatrix, labels []string, components int, scheme cv.Scheme, rounds int, seed int64, opts ...Option) (*cv.Permutation, error) {
	o := gatherOptions(opts...)
	x, enc, err := design(m, labels)
	if err != nil {
		return nil, err
	}

	return cv.PermutationTest(ctx, x, enc, components, scheme, rounds, seed, o.cvOptions()...)
}

// design turns a feature matrix and its labels into the engine's samples × features
// matrix and class encoding.
func design(m *matrix.FeatureMatrix, labels []string) (*mat.Dense, *classes.Encoding, error) {
	if m == nil {
		return nil, nil, fmt.Errorf("plsda: %w", matrix.ErrNilMatrix)
	}
	if len(labels) != m.NumSamples() {
		return nil, nil, fmt.Errorf("plsda: %d labels for %d samples: %w", len(labels), m.NumSamples(), plserr.ErrInvalidInput)
	}
	enc, err := classes.Encode(labels)
	if err != nil {
		return nil, nil, err
	}
	x, err := m.SampleMajor()
	if err != nil {
		return nil, nil, err
	}

	return x, enc, nil
}
