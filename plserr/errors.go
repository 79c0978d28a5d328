// SPDX-License-Identifier: MIT

// Package plserr holds the sentinel error kinds shared by every plsda package.
//
// Every detection site wraps one of these sentinels with fmt.Errorf("ctx: %w", ErrX),
// attaching the offending dimension, identifier or iteration count. Callers match the
// kind with errors.Is; the message carries the diagnostics.
//
// Nothing in plsda recovers from these internally. The only absorbed condition is
// NIPALS sub-tolerance jitter, which is not an error.
package plserr

import "errors"

var (
	// ErrInvalidInput marks malformed or empty matrices, duplicate or unmatched
	// identifiers, ragged rows, NaN/Inf where finite data is required, and label
	// sequences with fewer than two classes.
	ErrInvalidInput = errors.New("plsda: invalid input")

	// ErrInvalidConfiguration marks parameters outside their documented domain,
	// e.g. a component count above min(samples-1, features, classes).
	ErrInvalidConfiguration = errors.New("plsda: invalid configuration")

	// ErrNumeric marks arithmetic domain violations such as a non-positive
	// argument to the log transform.
	ErrNumeric = errors.New("plsda: numeric error")

	// ErrNonConvergence marks a NIPALS component that did not converge within the
	// iteration cap, or a deflated matrix with no remaining direction to extract.
	ErrNonConvergence = errors.New("plsda: NIPALS did not converge")

	// ErrInsufficientData marks too few samples (overall or per class) for the
	// requested resampling scheme.
	ErrInsufficientData = errors.New("plsda: insufficient data")

	// ErrInternalInvariant marks a broken explained-variance accounting. It signals
	// a fitting bug, never bad input.
	ErrInternalInvariant = errors.New("plsda: internal invariant violated")
)
