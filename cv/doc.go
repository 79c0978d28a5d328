// Package cv estimates PLS-DA classification accuracy by cross-validation.
//
// A Scheme partitions the samples into folds: leave-one-out by default, or k folds
// assigned contiguously or interleaved. Every fold is fitted once with H components
// and its held-out samples are predicted at each h = 1..H; components are nested, so
// the single fit serves every smaller model.
//
// Concurrency: folds run on an errgroup bounded by WithWorkers. Each fold writes only
// its own slot and the reduction walks folds in ascending order, so a Result is
// identical for any worker count.
//
// PermutationTest re-runs the validation on label permutations drawn from a seeded
// RNG and reports an empirical p-value for the observed accuracy.
package cv
