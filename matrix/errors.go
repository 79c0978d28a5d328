// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"github.com/katalvlaran/plsda/plserr"
)

// Every sentinel below wraps plserr.ErrInvalidInput, so callers may match either the
// precise storage condition or the shared kind with errors.Is.
var (
	// ErrBadShape is returned when a requested shape is invalid (rows<=0 or cols<=0)
	// or rows of a literal have unequal length.
	ErrBadShape = fmt.Errorf("matrix: invalid shape: %w", plserr.ErrInvalidInput)

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = fmt.Errorf("matrix: index out of range: %w", plserr.ErrInvalidInput)

	// ErrNaNInf signals a NaN or ±Inf value written into a Dense that enforces
	// finite values.
	ErrNaNInf = fmt.Errorf("matrix: NaN or Inf encountered: %w", plserr.ErrInvalidInput)

	// ErrDuplicateID signals a repeated feature or sample identifier.
	ErrDuplicateID = fmt.Errorf("matrix: duplicate identifier: %w", plserr.ErrInvalidInput)

	// ErrUnknownID signals a sample identifier that is not present in the matrix.
	ErrUnknownID = fmt.Errorf("matrix: unknown identifier: %w", plserr.ErrInvalidInput)

	// ErrNilMatrix indicates that a nil receiver or argument was used.
	ErrNilMatrix = fmt.Errorf("matrix: nil matrix: %w", plserr.ErrInvalidInput)
)
