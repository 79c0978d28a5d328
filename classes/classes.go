// Package classes turns categorical labels into the indicator response used by PLS-DA.
//
// Class order is first-seen order in the label sequence, never lexicographic. That order
// is fixed once by Encode and reused everywhere a class index appears: indicator
// columns, predicted-index decoding and confusion matrices.
package classes

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/plserr"
)

// Encoding is the fixed class order and per-sample class indices of a label sequence.
type Encoding struct {
	classes []string
	index   map[string]int
	codes   []int // per sample, into classes
}

// Encode assigns class indices in first-seen order.
//
// Errors:
//   - ErrInvalidInput for an empty label or fewer than two distinct classes.
func Encode(labels []string) (*Encoding, error) {
	e := &Encoding{index: make(map[string]int), codes: make([]int, len(labels))}
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("classes: sample %d has an empty label: %w", i, plserr.ErrInvalidInput)
		}
		k, ok := e.index[l]
		if !ok {
			k = len(e.classes)
			e.index[l] = k
			e.classes = append(e.classes, l)
		}
		e.codes[i] = k
	}
	if len(e.classes) < 2 {
		return nil, fmt.Errorf("classes: %d distinct class(es) in %d labels, need 2: %w",
			len(e.classes), len(labels), plserr.ErrInvalidInput)
	}

	return e, nil
}

// Classes returns the class labels in encoding order.
func (e *Encoding) Classes() []string { return append([]string(nil), e.classes...) }

// NumClasses returns the number of distinct classes.
func (e *Encoding) NumClasses() int { return len(e.classes) }

// NumSamples returns the length of the encoded label sequence.
func (e *Encoding) NumSamples() int { return len(e.codes) }

// Codes returns the class index of every sample.
func (e *Encoding) Codes() []int { return append([]int(nil), e.codes...) }

// Code returns the class index of sample i.
func (e *Encoding) Code(i int) int { return e.codes[i] }

// Label returns the class label for index k.
func (e *Encoding) Label(k int) string { return e.classes[k] }

// Index returns the class index of label and whether it is known.
func (e *Encoding) Index(label string) (int, bool) {
	k, ok := e.index[label]
	return k, ok
}

// Counts returns the number of samples per class, in class order.
func (e *Encoding) Counts() []int {
	out := make([]int, len(e.classes))
	for _, k := range e.codes {
		out[k]++
	}

	return out
}

// Indicator returns the samples × classes dummy matrix: exactly one 1 per row.
func (e *Encoding) Indicator() *mat.Dense {
	return e.Subset(nil)
}

// Subset returns the indicator rows for the given samples (all samples when rows is
// nil), keeping the full class order so a training fold that misses a class still
// has a column for it.
func (e *Encoding) Subset(rows []int) *mat.Dense {
	if rows == nil {
		rows = make([]int, len(e.codes))
		for i := range rows {
			rows[i] = i
		}
	}
	y := mat.NewDense(len(rows), len(e.classes), nil)
	for r, i := range rows {
		y.Set(r, e.codes[i], 1)
	}

	return y
}

// Permute returns an Encoding whose sample i carries the label of sample perm[i].
// Class order is unchanged, so indices stay comparable with the receiver.
func (e *Encoding) Permute(perm []int) (*Encoding, error) {
	if len(perm) != len(e.codes) {
		return nil, fmt.Errorf("classes: permutation of length %d for %d samples: %w",
			len(perm), len(e.codes), plserr.ErrInvalidInput)
	}
	out := &Encoding{classes: e.classes, index: e.index, codes: make([]int, len(perm))}
	for i, src := range perm {
		if src < 0 || src >= len(e.codes) {
			return nil, fmt.Errorf("classes: permutation index %d: %w", src, plserr.ErrInvalidInput)
		}
		out.codes[i] = e.codes[src]
	}

	return out, nil
}
