package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/katalvlaran/plsda"
	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/tableio"
	"github.com/katalvlaran/plsda/vip"
)

type summary struct {
	features int
	model    *plsda.Model
	ranking  *vip.Table
	cv       *cv.Result
	perm     *cv.Permutation
	scheme   string
	top      int
}

func (s summary) print(w io.Writer) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(w, bold("PLS-DA"))
	fmt.Fprintf(w, "  samples %d  features %d  components %d\n", s.model.NumSamples(), s.features, s.model.Components())
	fmt.Fprintf(w, "  classes %s\n", cyan(strings.Join(s.model.Classes(), ", ")))

	cum := s.model.CumulativeExplained()
	fmt.Fprintf(w, "\n%s\n", bold("Explained response variance"))
	for h, e := range s.model.Explained() {
		fmt.Fprintf(w, "  comp %d  %6.2f%%  (cumulative %6.2f%%)\n", h+1, 100*e, 100*cum[h])
	}

	fmt.Fprintf(w, "\n%s (%s)\n", bold("Cross-validation"), s.scheme)
	best := s.cv.BestComponents()
	for h, a := range s.cv.Accuracy {
		mark := ""
		if h+1 == best {
			mark = green(" ◀ best")
		}
		fmt.Fprintf(w, "  comp %d  accuracy %s  misclassified %d/%d%s\n",
			h+1, rate(a, green, yellow, red), s.cv.Misclassified[h], s.cv.Samples, mark)
	}

	if s.perm != nil {
		verdict := red("not significant")
		if s.perm.PValue <= 0.05 {
			verdict = green("significant")
		}
		fmt.Fprintf(w, "\n%s (%d rounds, seed %d)\n", bold("Permutation test"), s.perm.Rounds, s.perm.Seed)
		fmt.Fprintf(w, "  observed %.3f  null mean %.3f  p = %.4f  %s\n",
			s.perm.Observed, s.perm.NullMean(), s.perm.PValue, verdict)
	}

	fmt.Fprintf(w, "\n%s\n", bold("Top features by VIP"))
	for i, e := range s.ranking.Top(s.top) {
		score := fmt.Sprintf("%.3f", e.Score)
		if e.Score > 1 {
			score = green(score)
		}
		fmt.Fprintf(w, "  %3d  %-30s %s\n", i+1, e.Feature, score)
	}
}

func rate(a float64, good, fair, poor func(...any) string) string {
	s := fmt.Sprintf("%.3f", a)
	switch {
	case a >= 0.9:
		return good(s)
	case a >= 0.7:
		return fair(s)
	default:
		return poor(s)
	}
}

// export writes the result tables into dir, creating it if needed.
func export(dir string, model *plsda.Model, ranking *vip.Table, res *cv.Result, labels []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"vip.csv", func(w io.Writer) error { return tableio.WriteVIP(w, ranking) }},
		{"scores.csv", func(w io.Writer) error { return tableio.WriteScores(w, model.SampleIDs(), model.T()) }},
		{"cv.csv", func(w io.Writer) error { return tableio.WriteCV(w, res) }},
		{"predictions.csv", func(w io.Writer) error {
			return tableio.WritePredictions(w, model.SampleIDs(), labels, res, res.Components)
		}},
	}
	for _, f := range files {
		if err := create(dir, f.name, f.write); err != nil {
			return fmt.Errorf("export %s: %w", f.name, err)
		}
	}

	return nil
}

func create(dir, name string, write func(io.Writer) error) (err error) {
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return write(file)
}
