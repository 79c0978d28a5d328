package classes

import (
	"fmt"

	"github.com/katalvlaran/plsda/plserr"
)

// Annotation maps sample identifiers to class labels. Extra metadata belongs to the
// I/O layer and never reaches the core.
type Annotation map[string]string

// LabelsFor returns the labels of sampleIDs in that order, reconciling by identifier.
//
// Errors:
//   - ErrInvalidInput naming the first sample without an annotation entry.
func (a Annotation) LabelsFor(sampleIDs []string) ([]string, error) {
	out := make([]string, len(sampleIDs))
	for i, id := range sampleIDs {
		l, ok := a[id]
		if !ok {
			return nil, fmt.Errorf("classes: sample %q has no annotation: %w", id, plserr.ErrInvalidInput)
		}
		out[i] = l
	}

	return out, nil
}
