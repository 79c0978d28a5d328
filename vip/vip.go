// Package vip ranks features by Variable Importance in Projection.
//
// For a model with p features and H components,
//
//	VIP_j = sqrt( p · Σ_h w_hj² · SSY_h / Σ_h SSY_h )
//
// where SSY_h is the response sum of squares explained by component h. Weight vectors
// have unit norm, so Σ_j VIP_j² = p and the mean squared VIP is 1; features above 1
// are the conventional "important" set.
package vip

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/plsda/pls"
	"github.com/katalvlaran/plsda/plserr"
)

// Entry is one feature's score.
type Entry struct {
	Feature string
	Index   int // position in the model's feature order
	Score   float64
}

// Table holds VIP entries sorted by descending score; equal scores keep the
// original feature order.
type Table struct {
	entries []Entry
	scores  []float64 // by feature index
}

// Compute scores every feature of model. featureIDs names the model's features in
// column order.
//
// Errors:
//   - ErrInvalidInput when len(featureIDs) differs from the model's feature count.
//   - ErrNumeric when the components explain no response variance at all.
//
// Complexity:
//   - Time O(H·p + p·log p) for the scores and the ranking, Space O(p).
func Compute(model *pls.Model, featureIDs []string) (*Table, error) {
	p := model.NumFeatures()
	if len(featureIDs) != p {
		return nil, fmt.Errorf("vip: %d feature ids for %d model features: %w", len(featureIDs), p, plserr.ErrInvalidInput)
	}

	// Explained fractions are SSY_h / SSY_total; the total cancels in the ratio.
	ssy := model.Explained()
	total := floats.Sum(ssy)
	if total <= 0 || math.IsNaN(total) {
		return nil, fmt.Errorf("vip: components explain %g of the response: %w", total, plserr.ErrNumeric)
	}

	scores := make([]float64, p)
	for h, s := range ssy {
		for j := 0; j < p; j++ {
			w := model.Weight(h, j)
			scores[j] += w * w * s
		}
	}
	entries := make([]Entry, p)
	for j := range scores {
		scores[j] = math.Sqrt(float64(p) * scores[j] / total)
		entries[j] = Entry{Feature: featureIDs[j], Index: j, Score: scores[j]}
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].Score > entries[b].Score })

	return &Table{entries: entries, scores: scores}, nil
}

// Len returns the number of features.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns all entries, highest score first.
func (t *Table) Entries() []Entry { return append([]Entry(nil), t.entries...) }

// Top returns the k highest-scoring entries (all of them when k exceeds Len; none
// when k <= 0).
func (t *Table) Top(k int) []Entry {
	k = max(0, min(k, len(t.entries)))
	return append([]Entry(nil), t.entries[:k]...)
}

// Scores returns the scores in the model's feature order.
func (t *Table) Scores() []float64 { return append([]float64(nil), t.scores...) }

// Above returns the entries whose score exceeds threshold, highest first.
func (t *Table) Above(threshold float64) []Entry {
	n := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Score <= threshold })
	return append([]Entry(nil), t.entries[:n]...)
}
