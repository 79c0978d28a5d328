// SPDX-License-Identifier: MIT

// Package matrix provides the storage layer for plsda: a row-major Dense buffer and
// the labelled FeatureMatrix (features × samples) that the preprocessing chain
// consumes and produces.
//
// What & Why:
//
//	Dense keeps the flat row-major layout (offset = i*cols + j) with safe accessors
//	that return errors instead of panicking. FeatureMatrix adds unique feature and
//	sample identifiers on top of a Dense and an explicit missing marker (Missing,
//	a NaN), so every transform can stay traceable from raw to processed features.
//
// Immutability:
//
//	FeatureMatrix operations never mutate the receiver. SelectFeatures,
//	SelectSamples, ReorderSamples and Transform all return new matrices.
//
// Interop:
//
//	SampleMajor copies a FeatureMatrix into a strict samples × features Dense,
//	which refuses Missing and ±Inf, and hands it to the numeric engine as a gonum
//	*mat.Dense.
//
// Complexity:
//
//	At/Set O(1); Clone and Transform O(r*c); Induced O(r'*c').
package matrix
