package cv

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/classes"
	"github.com/katalvlaran/plsda/pls"
	"github.com/katalvlaran/plsda/plserr"
)

// minSamples is the smallest data set cross-validation accepts.
const minSamples = 3

// ConfusionMatrix counts predictions: rows are true classes, columns predicted ones.
type ConfusionMatrix [][]int

// Result aggregates the held-out predictions of every fold. Slices indexed by
// component hold the model with h+1 components at position h.
type Result struct {
	Components int
	Samples    int
	Folds      int
	Classes    []string

	Misclassified []int
	Correct       []int
	ErrorRate     []float64
	Accuracy      []float64
	Confusion     []ConfusionMatrix

	// Predictions[h][i] is the class index predicted for sample i with h+1 components.
	Predictions [][]int
	// Fold[i] is the fold that held out sample i.
	Fold []int

	// Overall is the accuracy with all components.
	Overall float64
}

// At returns the accuracy with h components, h in 1..len(Accuracy).
//
// Errors:
//   - ErrInvalidConfiguration when h is outside that range.
func (r *Result) At(h int) (float64, error) {
	if h < 1 || h > len(r.Accuracy) {
		return 0, fmt.Errorf("cv: accuracy for %d components requested, result has %d: %w",
			h, len(r.Accuracy), plserr.ErrInvalidConfiguration)
	}

	return r.Accuracy[h-1], nil
}

// BestComponents returns the smallest h with the highest accuracy.
func (r *Result) BestComponents() int {
	best := 0
	for h, a := range r.Accuracy {
		if a > r.Accuracy[best] {
			best = h
		}
	}

	return best + 1
}

// foldResult is the private slot a fold goroutine fills.
type foldResult struct {
	held []int
	pred [][]int // [h][k] for held[k]
}

// CrossValidate estimates the accuracy of an H-component PLS-DA model on x (samples ×
// features) and the class encoding enc.
//
// Errors:
//   - ErrInvalidInput when enc does not describe the rows of x.
//   - ErrInsufficientData for fewer than three samples, a class with fewer than two
//     samples, or a training fold that lacks a class.
//   - ErrInvalidConfiguration for a bad scheme or an H the training folds cannot
//     support.
//   - Any error of pls.Fit for a fold, wrapped with the fold index, or ctx.Err().
//
// Complexity:
//   - Time O(folds·Fit) spread over the worker pool; prediction adds O(n·H·(p+K)).
//   - Space O(workers·n·p) for the training copies, plus O(H·n) predictions.
func CrossValidate(ctx context.Context, x *mat.Dense, enc *classes.Encoding, components int, scheme Scheme, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	folds, err := prepare(x, enc, components, scheme)
	if err != nil {
		return nil, err
	}

	return run(ctx, x, enc, components, folds, o)
}

// prepare validates the inputs and returns the fold partition.
func prepare(x *mat.Dense, enc *classes.Encoding, components int, scheme Scheme) ([][]int, error) {
	n, p := x.Dims()
	if enc.NumSamples() != n {
		return nil, fmt.Errorf("cv: %d labels for %d samples: %w", enc.NumSamples(), n, plserr.ErrInvalidInput)
	}
	if n < minSamples {
		return nil, fmt.Errorf("cv: %d samples, need at least %d: %w", n, minSamples, plserr.ErrInsufficientData)
	}
	for k, c := range enc.Counts() {
		if c < 2 {
			return nil, fmt.Errorf("cv: class %q has %d sample(s), need at least 2: %w", enc.Label(k), c, plserr.ErrInsufficientData)
		}
	}

	folds, err := scheme.Partition(n)
	if err != nil {
		return nil, err
	}
	if err = checkFolds(enc, folds); err != nil {
		return nil, err
	}

	largest := 0
	for _, f := range folds {
		largest = max(largest, len(f))
	}
	if limit := pls.MaxComponents(n-largest, p, enc.NumClasses()); components < 1 || components > limit {
		return nil, fmt.Errorf("cv: %d components requested, training folds of %d samples allow 1..%d: %w",
			components, n-largest, limit, plserr.ErrInvalidConfiguration)
	}

	return folds, nil
}

// checkFolds makes sure every training fold still contains every class.
func checkFolds(enc *classes.Encoding, folds [][]int) error {
	counts := enc.Counts()
	held := make([]int, len(counts))
	for f, fold := range folds {
		clear(held)
		for _, i := range fold {
			held[enc.Code(i)]++
		}
		for k := range counts {
			if counts[k] == held[k] {
				return fmt.Errorf("cv: fold %d holds out every sample of class %q: %w", f, enc.Label(k), plserr.ErrInsufficientData)
			}
		}
	}

	return nil
}

func run(ctx context.Context, x *mat.Dense, enc *classes.Encoding, components int, folds [][]int, o Options) (*Result, error) {
	n, _ := x.Dims()
	slots := make([]foldResult, len(folds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for f, held := range folds {
		f, held := f, held
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pred, err := runFold(x, enc, components, held, o)
			if err != nil {
				return fmt.Errorf("cv: fold %d: %w", f, err)
			}
			slots[f] = foldResult{held: held, pred: pred}
			o.logger.Debug().Int("fold", f).Int("held_out", len(held)).Msg("cv fold done")

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reduce(enc, components, n, slots), nil
}

// runFold fits on everything outside held and predicts held at every h.
func runFold(x *mat.Dense, enc *classes.Encoding, components int, held []int, o Options) ([][]int, error) {
	n, p := x.Dims()
	train := complement(n, held)
	model, err := pls.Fit(rows(x, train), enc.Subset(train), components, o.fit...)
	if err != nil {
		return nil, err
	}

	pred := make([][]int, components)
	for h := range pred {
		pred[h] = make([]int, len(held))
	}
	sample := make([]float64, p)
	for k, i := range held {
		mat.Row(sample, i, x)
		scores, err := model.Transform(sample)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		for h := 1; h <= components; h++ {
			cls, _, err := model.Decode(scores, h)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			pred[h-1][k] = cls
		}
	}

	return pred, nil
}

// reduce merges fold slots in ascending fold order.
func reduce(enc *classes.Encoding, components, n int, slots []foldResult) *Result {
	kc := enc.NumClasses()
	r := &Result{
		Components:    components,
		Samples:       n,
		Folds:         len(slots),
		Classes:       enc.Classes(),
		Misclassified: make([]int, components),
		Correct:       make([]int, components),
		ErrorRate:     make([]float64, components),
		Accuracy:      make([]float64, components),
		Confusion:     make([]ConfusionMatrix, components),
		Predictions:   make([][]int, components),
		Fold:          make([]int, n),
	}
	for h := 0; h < components; h++ {
		r.Predictions[h] = make([]int, n)
		r.Confusion[h] = make(ConfusionMatrix, kc)
		for k := range r.Confusion[h] {
			r.Confusion[h][k] = make([]int, kc)
		}
	}

	for f, s := range slots {
		for k, i := range s.held {
			r.Fold[i] = f
			truth := enc.Code(i)
			for h := 0; h < components; h++ {
				got := s.pred[h][k]
				r.Predictions[h][i] = got
				r.Confusion[h][truth][got]++
				if got == truth {
					r.Correct[h]++
				} else {
					r.Misclassified[h]++
				}
			}
		}
	}
	for h := 0; h < components; h++ {
		r.ErrorRate[h] = float64(r.Misclassified[h]) / float64(n)
		r.Accuracy[h] = 1 - r.ErrorRate[h]
	}
	r.Overall = r.Accuracy[components-1]

	return r
}

// rows copies the given rows of x into a new matrix.
func rows(x *mat.Dense, idx []int) *mat.Dense {
	_, c := x.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for r, i := range idx {
		out.SetRow(r, x.RawRowView(i))
	}

	return out
}
