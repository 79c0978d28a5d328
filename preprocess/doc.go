// Package preprocess cleans and reduces a raw feature × sample matrix before fitting.
//
// Stages, always applied in this order by Run:
//
//  1. FilterMissing      — drop features whose missing fraction is ≥ threshold.
//  2. ImputeHalfMinimum  — fill missing cells with half the feature's observed minimum.
//  3. LogTransform       — log_base(v + offset), elementwise.
//  4. NormalizeMedian    — shift each sample by (sample median − median of medians).
//  5. SelectTopVariance  — keep the n highest-variance features (stable ties).
//
// Every stage is a pure function: the input FeatureMatrix is never mutated and a new
// matrix is returned, keeping processed features traceable to raw ones by identifier.
// The package holds no state.
//
// Errors are plserr kinds wrapped with the offending feature/sample identifier.
package preprocess
