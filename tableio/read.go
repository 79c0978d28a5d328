// Package tableio reads feature tables and sample annotations from delimited text
// and writes results as CSV.
//
// A feature table has one header row (a corner cell followed by sample
// identifiers) and one row per feature (the feature identifier followed by one value
// per sample). An annotation table has a header naming its columns; the sample and
// class columns are picked by name and any other column is ignored.
package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/katalvlaran/plsda/classes"
	"github.com/katalvlaran/plsda/matrix"
	"github.com/katalvlaran/plsda/plserr"
)

func newReader(r io.Reader, o Options) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = o.Delimiter
	cr.FieldsPerRecord = -1

	return cr
}

// ReadFeatureTable parses a features × samples table.
//
// Errors:
//   - ErrInvalidInput for an empty input, a row of the wrong width, or an
//     unparsable or infinite value, naming the line and column.
//   - Whatever matrix.NewFeatureMatrix reports (duplicate identifiers).
func ReadFeatureTable(r io.Reader, opt Options) (*matrix.FeatureMatrix, error) {
	o := opt.withDefaults()
	cr := newReader(r, o)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tableio: feature table is empty: %w", plserr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("tableio: header: %w: %w", err, plserr.ErrInvalidInput)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("tableio: header has %d field(s), need a corner cell and samples: %w", len(header), plserr.ErrInvalidInput)
	}
	samples := trimAll(header[1:])

	var features []string
	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tableio: %w: %w", err, plserr.ErrInvalidInput)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(header) {
			return nil, fmt.Errorf("tableio: line %d has %d fields, header has %d: %w", line, len(rec), len(header), plserr.ErrInvalidInput)
		}
		id := strings.TrimSpace(rec[0])
		row := make([]float64, len(samples))
		for j, cell := range rec[1:] {
			v, err := o.parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("tableio: line %d feature %q sample %q: %w", line, id, samples[j], err)
			}
			row[j] = v
		}
		features = append(features, id)
		rows = append(rows, row)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("tableio: feature table has no feature rows: %w", plserr.ErrInvalidInput)
	}

	return matrix.NewFeatureMatrix(features, samples, rows)
}

func (o Options) parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if o.isMissing(cell) {
		return matrix.Missing, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q: %w", cell, plserr.ErrInvalidInput)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("value %q is not finite: %w", cell, plserr.ErrInvalidInput)
	}

	return v, nil
}

// ReadAnnotation parses a sample annotation table into sample → class.
//
// Errors:
//   - ErrInvalidInput when the sample or class column is absent, a sample is listed
//     twice, or a class cell is empty.
func ReadAnnotation(r io.Reader, opt Options) (classes.Annotation, error) {
	o := opt.withDefaults()
	cr := newReader(r, o)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tableio: annotation is empty: %w", plserr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("tableio: annotation header: %w: %w", err, plserr.ErrInvalidInput)
	}
	header = trimAll(header)
	si, ci := indexOf(header, o.SampleColumn), indexOf(header, o.ClassColumn)
	for _, col := range []struct {
		name string
		at   int
	}{{o.SampleColumn, si}, {o.ClassColumn, ci}} {
		if col.at >= 0 {
			continue
		}
		if guess := closest(header, col.name); guess != "" {
			return nil, fmt.Errorf("tableio: annotation has no column %q (did you mean %q?): %w", col.name, guess, plserr.ErrInvalidInput)
		}
		return nil, fmt.Errorf("tableio: annotation has no column %q among %v: %w", col.name, header, plserr.ErrInvalidInput)
	}

	ann := make(classes.Annotation)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tableio: annotation: %w: %w", err, plserr.ErrInvalidInput)
		}
		line, _ := cr.FieldPos(0)
		if si >= len(rec) || ci >= len(rec) {
			return nil, fmt.Errorf("tableio: annotation line %d has %d fields: %w", line, len(rec), plserr.ErrInvalidInput)
		}
		sample, class := strings.TrimSpace(rec[si]), strings.TrimSpace(rec[ci])
		if class == "" {
			return nil, fmt.Errorf("tableio: annotation line %d: sample %q has no class: %w", line, sample, plserr.ErrInvalidInput)
		}
		if _, dup := ann[sample]; dup {
			return nil, fmt.Errorf("tableio: annotation line %d: sample %q listed twice: %w", line, sample, plserr.ErrInvalidInput)
		}
		ann[sample] = class
	}

	return ann, nil
}

// ReadFeatureFile opens path and reads it with ForPath options.
func ReadFeatureFile(path string) (*matrix.FeatureMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	defer f.Close()

	return ReadFeatureTable(f, ForPath(path))
}

// ReadAnnotationFile opens path and reads it with ForPath options, selecting the
// given sample and class columns (empty keeps the defaults).
func ReadAnnotationFile(path, sampleColumn, classColumn string) (classes.Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	defer f.Close()

	o := ForPath(path)
	if sampleColumn != "" {
		o.SampleColumn = sampleColumn
	}
	if classColumn != "" {
		o.ClassColumn = classColumn
	}

	return ReadAnnotation(f, o)
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}

	return out
}

// minSimilarity is the Levenshtein similarity above which a header is offered as a
// spelling suggestion.
const minSimilarity = 0.6

// closest returns the header most similar to name, or "" when none is close.
func closest(header []string, name string) string {
	lev := metrics.NewLevenshtein()
	best, score := "", minSimilarity
	for _, h := range header {
		if s := strutil.Similarity(strings.ToLower(h), strings.ToLower(name), lev); s > score {
			best, score = h, s
		}
	}

	return best
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}

	return -1
}
