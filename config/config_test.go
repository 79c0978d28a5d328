package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/plsda/config"
	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/plserr"
)

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	assert.True(t, scheme.IsLeaveOneOut())
}

func TestParse_Overrides(t *testing.T) {
	t.Parallel()

	in := `
preprocess:
  missing_threshold: 0.3
  top_variance_count: 100
  skip_log: true
model:
  components: 3
  scale: true
validation:
  folds: 5
  assignment: interleaved
  workers: 2
permutation:
  rounds: 50
  seed: 7
`
	cfg, err := config.Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Preprocess.MissingThreshold)
	assert.Equal(t, 100, cfg.Preprocess.TopVarianceCount)
	assert.True(t, cfg.Preprocess.SkipLog)
	assert.Equal(t, 2.0, cfg.Preprocess.LogBase, "untouched keys keep defaults")
	assert.Equal(t, 3, cfg.Model.Components)
	assert.True(t, cfg.Model.Scale)
	assert.Equal(t, 100, cfg.Model.MaxIter)
	assert.Equal(t, 50, cfg.Permutation.Rounds)
	assert.Equal(t, int64(7), cfg.Permutation.Seed)
	assert.Equal(t, "class", cfg.Annotation.ClassColumn)

	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	assert.Equal(t, cv.KFold(5, cv.Interleaved), scheme)
	assert.Len(t, cfg.Options(zerolog.Nop()), 3)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for name, in := range map[string]string{
		"unknown key":    "model:\n  componnets: 2\n",
		"bad threshold":  "preprocess:\n  missing_threshold: 1.5\n",
		"zero comps":     "model:\n  components: 0\n",
		"one fold":       "validation:\n  folds: 1\n",
		"assignment":     "validation:\n  assignment: random\n",
		"max iter":       "model:\n  max_iter: 1\n",
		"tolerance":      "model:\n  tolerance: -1\n",
		"negative round": "permutation:\n  rounds: -2\n",
		"not yaml":       "model: [",
	} {
		_, err := config.Parse(strings.NewReader(in))
		assert.ErrorIs(t, err, plserr.ErrInvalidConfiguration, name)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model:\n  components: 1\n"), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Model.Components)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_TOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.toml")
	doc := `
[preprocess]
top_variance_count = 250
log_base = 10.0

[model]
components = 3

[validation]
folds = 4
assignment = "interleaved"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Preprocess.TopVarianceCount)
	assert.Equal(t, 10.0, cfg.Preprocess.LogBase)
	assert.Equal(t, 3, cfg.Model.Components)
	scheme, err := cfg.Scheme()
	require.NoError(t, err)
	assert.Equal(t, cv.KFold(4, cv.Interleaved), scheme)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[model]\ncomponets = 2\n"), 0o600))
	_, err = config.Load(bad)
	require.ErrorIs(t, err, plserr.ErrInvalidConfiguration)
}
