// Package pls fits PLS-DA models with the NIPALS algorithm and predicts class indices
// for new samples.
//
// Algorithm (per component h = 1..H, on the centered working copy (Xh, Yh)):
//
//	u ← first column of Yh
//	repeat until ‖t − t_old‖ ≤ tol·‖t‖ (at most MaxIter times):
//	    w ← Xhᵀu / ‖Xhᵀu‖
//	    t ← Xh w
//	    q ← Yhᵀt / (tᵀt)
//	    u ← Yh q / (qᵀq)
//	p ← Xhᵀt / (tᵀt)
//	Xh ← Xh − t pᵀ ;  Yh ← Yh − t qᵀ
//	explained[h] = ‖t qᵀ‖²_F / ‖Y_c‖²_F
//
// Guarantees:
//   - Scores are pairwise orthogonal and the X residual is non-increasing in h.
//   - Components are nested: the first h components of an H-component fit are the
//     h-component fit, so one fit serves every component count up to H.
//   - Explained fractions are non-negative and sum to at most 1; a violation is
//     reported as plserr.ErrInternalInvariant.
//
// Prediction centers (and optionally scales) a sample with the training statistics,
// projects it through W with the same deflation by P, rebuilds Ŷ = t Qᵀ + ȳ, and picks
// the largest response, lowest index on ties.
//
// Complexity:
//   - Fit: O(H·I·n·(p+K)) for I NIPALS iterations per component.
//   - Predict: O(H·p) per sample.
package pls
