package tableio

import (
	"path/filepath"
	"strings"
)

// Options controls how delimited tables are read.
type Options struct {
	// Delimiter separates fields. Default '\t'.
	Delimiter rune
	// MissingTokens are cell values read as matrix.Missing, compared after trimming
	// and case-insensitively. Default "", "NA", "NaN", "null".
	MissingTokens []string
	// SampleColumn and ClassColumn name the annotation columns holding the sample
	// identifier and the class label. Defaults "sample" and "class".
	SampleColumn string
	ClassColumn  string
}

// DefaultOptions returns tab-delimited defaults.
func DefaultOptions() Options {
	return Options{
		Delimiter:     '\t',
		MissingTokens: []string{"", "NA", "NaN", "null"},
		SampleColumn:  "sample",
		ClassColumn:   "class",
	}
}

// ForPath returns DefaultOptions with the delimiter guessed from the file
// extension: ".csv" is comma separated, anything else tab separated.
func ForPath(path string) Options {
	o := DefaultOptions()
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		o.Delimiter = ','
	}

	return o
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Delimiter == 0 {
		o.Delimiter = d.Delimiter
	}
	if o.MissingTokens == nil {
		o.MissingTokens = d.MissingTokens
	}
	if o.SampleColumn == "" {
		o.SampleColumn = d.SampleColumn
	}
	if o.ClassColumn == "" {
		o.ClassColumn = d.ClassColumn
	}

	return o
}

func (o Options) isMissing(cell string) bool {
	for _, tok := range o.MissingTokens {
		if strings.EqualFold(cell, tok) {
			return true
		}
	}

	return false
}
