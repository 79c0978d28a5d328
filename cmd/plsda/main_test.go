package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plsda/plserr"
)

// writeInputs creates a 6 × 10 intensity table where m0 separates the classes, and
// an annotation listing the samples in a different order with an extra column.
func writeInputs(t *testing.T) (data, annotation string) {
	t.Helper()

	dir := t.TempDir()
	rng := rand.New(rand.NewSource(5))
	var b strings.Builder
	b.WriteString("metabolite")
	for j := 0; j < 10; j++ {
		fmt.Fprintf(&b, "\ts%d", j)
	}
	b.WriteString("\n")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "m%d", i)
		for j := 0; j < 10; j++ {
			v := 100 + 20*rng.Float64()
			if i == 0 && j%2 == 0 {
				v *= 8
			}
			if i == 3 && j == 4 {
				b.WriteString("\tNA")
				continue
			}
			fmt.Fprintf(&b, "\t%.3f", v)
		}
		b.WriteString("\n")
	}
	data = filepath.Join(dir, "data.tsv")
	require.NoError(t, os.WriteFile(data, []byte(b.String()), 0o600))

	var a strings.Builder
	a.WriteString("batch\tsample\tclass\n")
	for j := 9; j >= 0; j-- {
		class := "control"
		if j%2 == 0 {
			class = "case"
		}
		fmt.Fprintf(&a, "b1\ts%d\t%s\n", j, class)
	}
	annotation = filepath.Join(dir, "annotation.tsv")
	require.NoError(t, os.WriteFile(annotation, []byte(a.String()), 0o600))

	return data, annotation
}

func TestRun_EndToEnd(t *testing.T) {
	data, annotation := writeInputs(t)
	out := filepath.Join(t.TempDir(), "results")
	cfg := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("model:\n  components: 1\nvalidation:\n  workers: 2\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-data", data, "-annotation", annotation, "-config", cfg,
		"-out", out, "-permutations", "5", "-no-color", "-top", "3",
	}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	text := stdout.String()
	assert.Contains(t, text, "Cross-validation (leave-one-out)")
	assert.Contains(t, text, "Permutation test (5 rounds, seed 0)")
	assert.Contains(t, text, "m0")
	assert.Contains(t, text, "accuracy 1.000")

	for _, name := range []string{"vip.csv", "scores.csv", "cv.csv", "predictions.csv"} {
		raw, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, raw, name)
	}
	vipCSV, err := os.ReadFile(filepath.Join(out, "vip.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(vipCSV), "rank,feature,vip\n1,m0,"))
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-data", "x.tsv"}, &stdout, &stderr)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "-annotation")
}

func TestRun_BadInput(t *testing.T) {
	_, annotation := writeInputs(t)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-data", filepath.Join(t.TempDir(), "missing.tsv"), "-annotation", annotation, "-no-color",
	}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "plsda failed")
}

// Both classes hold the same five samples, so the fit cannot extract a component.
func TestRun_NonConvergenceHint(t *testing.T) {
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(9))
	var b, a strings.Builder
	b.WriteString("metabolite")
	a.WriteString("sample\tclass\n")
	for j := 0; j < 10; j++ {
		fmt.Fprintf(&b, "\ts%d", j)
		class := "case"
		if j >= 5 {
			class = "control"
		}
		fmt.Fprintf(&a, "s%d\t%s\n", j, class)
	}
	b.WriteString("\n")
	for i := 0; i < 4; i++ {
		row := make([]float64, 5)
		for j := range row {
			row[j] = 100 + 20*rng.Float64()
		}
		fmt.Fprintf(&b, "m%d", i)
		for j := 0; j < 10; j++ {
			fmt.Fprintf(&b, "\t%.3f", row[j%5])
		}
		b.WriteString("\n")
	}
	data := filepath.Join(dir, "data.tsv")
	annotation := filepath.Join(dir, "annotation.tsv")
	require.NoError(t, os.WriteFile(data, []byte(b.String()), 0o600))
	require.NoError(t, os.WriteFile(annotation, []byte(a.String()), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-data", data, "-annotation", annotation, "-components", "1", "-no-color",
	}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "plsda failed")
	assert.Contains(t, stderr.String(), "model.max_iter")
}

func TestFailureHint(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fold 2: %w", plserr.ErrNonConvergence)
	assert.Contains(t, failureHint(err), "model.max_iter")
	assert.Contains(t, failureHint(plserr.ErrInvalidConfiguration), "model.components")
	assert.Empty(t, failureHint(os.ErrNotExist))
}

func TestParseFlags_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	var stderr bytes.Buffer
	f, err := parseFlags([]string{"-data", "~/x.tsv", "-annotation", "a.tsv"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.tsv"), f.data)
	assert.Equal(t, "a.tsv", f.annotation)
	assert.Empty(t, f.config)
}
