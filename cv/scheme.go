package cv

import (
	"fmt"

	"github.com/katalvlaran/plsda/plserr"
)

// Assignment decides which fold a sample lands in.
type Assignment int

const (
	// Contiguous puts consecutive samples in the same fold.
	Contiguous Assignment = iota
	// Interleaved sends sample i to fold i mod k.
	Interleaved
)

// String implements fmt.Stringer.
func (a Assignment) String() string {
	switch a {
	case Contiguous:
		return "contiguous"
	case Interleaved:
		return "interleaved"
	default:
		return fmt.Sprintf("Assignment(%d)", int(a))
	}
}

// ParseAssignment maps "contiguous" or "interleaved" to an Assignment.
func ParseAssignment(s string) (Assignment, error) {
	switch s {
	case "contiguous", "":
		return Contiguous, nil
	case "interleaved":
		return Interleaved, nil
	}

	return 0, fmt.Errorf("cv: unknown fold assignment %q: %w", s, plserr.ErrInvalidConfiguration)
}

// Scheme describes a fold partition. Folds == 0 means one fold per sample.
type Scheme struct {
	Folds      int
	Assignment Assignment
}

// LeaveOneOut holds out one sample per fold.
func LeaveOneOut() Scheme { return Scheme{} }

// KFold splits the samples into k folds.
func KFold(k int, a Assignment) Scheme { return Scheme{Folds: k, Assignment: a} }

// IsLeaveOneOut reports whether s resolves to n folds of one sample.
func (s Scheme) IsLeaveOneOut() bool { return s.Folds == 0 }

// String implements fmt.Stringer.
func (s Scheme) String() string {
	if s.IsLeaveOneOut() {
		return "leave-one-out"
	}

	return fmt.Sprintf("%d-fold %s", s.Folds, s.Assignment)
}

// Partition returns the held-out sample indices of every fold for n samples, each
// fold in ascending order. Fold sizes differ by at most one.
//
// Errors:
//   - ErrInvalidConfiguration when the fold count is outside [2, n] or the
//     assignment is unknown.
func (s Scheme) Partition(n int) ([][]int, error) {
	k := s.Folds
	if s.IsLeaveOneOut() {
		k = n
	}
	if k < 2 || k > n {
		return nil, fmt.Errorf("cv: %d folds for %d samples, allowed 2..%d: %w", k, n, n, plserr.ErrInvalidConfiguration)
	}

	folds := make([][]int, k)
	switch s.Assignment {
	case Contiguous:
		for f := 0; f < k; f++ {
			lo, hi := f*n/k, (f+1)*n/k
			folds[f] = make([]int, 0, hi-lo)
			for i := lo; i < hi; i++ {
				folds[f] = append(folds[f], i)
			}
		}
	case Interleaved:
		for i := 0; i < n; i++ {
			folds[i%k] = append(folds[i%k], i)
		}
	default:
		return nil, fmt.Errorf("cv: %v: %w", s.Assignment, plserr.ErrInvalidConfiguration)
	}

	return folds, nil
}

// complement returns 0..n-1 without the (ascending) held-out indices.
func complement(n int, held []int) []int {
	out := make([]int, 0, n-len(held))
	k := 0
	for i := 0; i < n; i++ {
		if k < len(held) && held[k] == i {
			k++
			continue
		}
		out = append(out, i)
	}

	return out
}
