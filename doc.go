// Package plsda classifies samples from high-dimensional feature tables with
// Partial Least Squares Discriminant Analysis.
//
// A typical run takes a features × samples table (metabolite intensities, gene
// counts, any wide numeric table with far more features than samples) and a class
// label per sample, and produces a fitted model, an honest cross-validated accuracy
// and a per-feature importance ranking:
//
//	raw table ──► Preprocess ──► FitPLSDA ──► Model + VIP ranking
//	                   │
//	                   └──────► CrossValidate / Permute ──► accuracy, p-value
//
// The work is split over subpackages that can also be used on their own:
//
//	matrix/     — FeatureMatrix: identified features × samples table with Missing cells
//	preprocess/ — missing-value filter, half-minimum imputation, log, median
//	              normalization, top-variance selection
//	classes/    — first-seen class encoding and the indicator response
//	pls/        — NIPALS engine, prediction, explained variance
//	cv/         — leave-one-out and k-fold validation, permutation test
//	vip/        — Variable Importance in Projection
//	tableio/    — delimited readers and CSV writers
//	config/     — YAML or TOML run configuration
//
// Errors from every layer wrap the sentinels of package plserr, so callers can
// branch with errors.Is regardless of which stage failed.
//
// Quick example:
//
//	model, ranking, err := plsda.FitPLSDA(processed, labels, 2)
//	if err != nil { … }
//	res, err := plsda.CrossValidate(ctx, processed, labels, 2, cv.LeaveOneOut())
//	fmt.Println(res.Overall, ranking.Top(10))
package plsda
