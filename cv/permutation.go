package cv

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/plsda/classes"
	"github.com/katalvlaran/plsda/plserr"
)

// maxRedraws bounds how often a permutation is redrawn when it would leave a
// training fold without some class.
const maxRedraws = 100

// Permutation is the outcome of a label-permutation test.
type Permutation struct {
	Seed     int64
	Rounds   int
	Observed float64   // accuracy with the real labels
	Null     []float64 // accuracy per permuted round, in round order
	PValue   float64   // (1 + #{null ≥ observed}) / (1 + rounds)
}

// NullMean returns the mean accuracy under permuted labels.
func (p *Permutation) NullMean() float64 { return stat.Mean(p.Null, nil) }

// PermutationTest cross-validates the real labels, then rounds random relabelings
// of them, all with the same scheme and H. Permutations are drawn in round order
// from a generator seeded with seed (0 means 1), so equal inputs give equal results.
//
// Errors:
//   - ErrInvalidConfiguration when rounds < 1.
//   - Anything CrossValidate returns, or ctx.Err() between rounds.
//   - ErrInsufficientData when no feasible permutation turns up within a bounded
//     number of redraws.
//
// Complexity:
//   - Time O((rounds+1)·CrossValidate); rounds run one after another.
func PermutationTest(ctx context.Context, x *mat.Dense, enc *classes.Encoding, components int, scheme Scheme, rounds int, seed int64, opts ...Option) (*Permutation, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("cv: %d permutation rounds: %w", rounds, plserr.ErrInvalidConfiguration)
	}
	o := gatherOptions(opts...)

	folds, err := prepare(x, enc, components, scheme)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	observed, err := run(ctx, x, enc, components, folds, o)
	if err != nil {
		return nil, err
	}

	out := &Permutation{Seed: seed, Rounds: rounds, Observed: observed.Overall, Null: make([]float64, rounds)}
	rng := rngFromSeed(seed)
	perm := make([]int, n)
	exceed := 0
	for r := 0; r < rounds; r++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		shuffled, err := drawFeasible(enc, folds, perm, rng)
		if err != nil {
			return nil, fmt.Errorf("cv: permutation round %d: %w", r, err)
		}
		res, err := run(ctx, x, shuffled, components, folds, o)
		if err != nil {
			return nil, fmt.Errorf("cv: permutation round %d: %w", r, err)
		}
		out.Null[r] = res.Overall
		if res.Overall >= out.Observed {
			exceed++
		}
		o.logger.Debug().Int("round", r).Float64("accuracy", res.Overall).Msg("permutation round done")
	}
	out.PValue = float64(1+exceed) / float64(1+rounds)

	o.logger.Info().
		Int("rounds", rounds).
		Float64("observed", out.Observed).
		Float64("null_mean", out.NullMean()).
		Float64("p_value", out.PValue).
		Msg("permutation test finished")

	return out, nil
}

func drawFeasible(enc *classes.Encoding, folds [][]int, perm []int, rng *rand.Rand) (*classes.Encoding, error) {
	for attempt := 0; attempt < maxRedraws; attempt++ {
		for i := range perm {
			perm[i] = i
		}
		shuffle(perm, rng)
		shuffled, err := enc.Permute(perm)
		if err != nil {
			return nil, err
		}
		if checkFolds(shuffled, folds) == nil {
			return shuffled, nil
		}
	}

	return nil, fmt.Errorf("no permutation in %d draws keeps every class in every training fold: %w", maxRedraws, plserr.ErrInsufficientData)
}
