package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/plserr"
	"github.com/katalvlaran/plsda/vip"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// writeAll writes a header and the rows produced by next, then flushes.
func writeAll(w io.Writer, header []string, n int, next func(i int) []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("tableio: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(next(i)); err != nil {
			return fmt.Errorf("tableio: row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tableio: %w", err)
	}

	return nil
}

// WriteVIP writes rank, feature and score, highest score first.
func WriteVIP(w io.Writer, t *vip.Table) error {
	entries := t.Entries()
	return writeAll(w, []string{"rank", "feature", "vip"}, len(entries), func(i int) []string {
		e := entries[i]
		return []string{strconv.Itoa(i + 1), e.Feature, formatFloat(e.Score)}
	})
}

// WriteScores writes one row per sample with its component scores t1..tH.
func WriteScores(w io.Writer, sampleIDs []string, scores mat.Matrix) error {
	r, c := scores.Dims()
	if r != len(sampleIDs) {
		return fmt.Errorf("tableio: %d sample ids for %d score rows: %w", len(sampleIDs), r, plserr.ErrInvalidInput)
	}
	header := make([]string, c+1)
	header[0] = "sample"
	for h := 1; h <= c; h++ {
		header[h] = "t" + strconv.Itoa(h)
	}

	return writeAll(w, header, r, func(i int) []string {
		row := make([]string, c+1)
		row[0] = sampleIDs[i]
		for h := 0; h < c; h++ {
			row[h+1] = formatFloat(scores.At(i, h))
		}
		return row
	})
}

// WriteCV writes the per-component cross-validation summary.
func WriteCV(w io.Writer, res *cv.Result) error {
	header := []string{"components", "correct", "misclassified", "error_rate", "accuracy"}
	return writeAll(w, header, res.Components, func(h int) []string {
		return []string{
			strconv.Itoa(h + 1),
			strconv.Itoa(res.Correct[h]),
			strconv.Itoa(res.Misclassified[h]),
			formatFloat(res.ErrorRate[h]),
			formatFloat(res.Accuracy[h]),
		}
	})
}

// WritePredictions writes the held-out prediction of every sample with h
// components next to its true label and fold.
func WritePredictions(w io.Writer, sampleIDs, labels []string, res *cv.Result, h int) error {
	if h < 1 || h > res.Components {
		return fmt.Errorf("tableio: %d components, result has %d: %w", h, res.Components, plserr.ErrInvalidConfiguration)
	}
	if len(sampleIDs) != res.Samples || len(labels) != res.Samples {
		return fmt.Errorf("tableio: %d ids and %d labels for %d samples: %w",
			len(sampleIDs), len(labels), res.Samples, plserr.ErrInvalidInput)
	}
	pred := res.Predictions[h-1]

	return writeAll(w, []string{"sample", "class", "predicted", "fold"}, res.Samples, func(i int) []string {
		return []string{sampleIDs[i], labels[i], res.Classes[pred[i]], strconv.Itoa(res.Fold[i])}
	})
}
