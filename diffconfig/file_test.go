package diffconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/outdiff/differrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
whitespace_mode: ignore_trailing
case_sensitive: false
array_diff_strategy: lcs
max_depth: 32
`)
	f, err := ParseYAML(data)
	require.NoError(t, err)

	cfg, err := New(f.Options()...)
	require.NoError(t, err)

	assert.Equal(t, WhitespaceIgnoreTrailing, cfg.WhitespaceMode())
	assert.False(t, cfg.CaseSensitive())
	assert.True(t, cfg.DetectModifications(), "unset keys keep their defaults")
	assert.Equal(t, ArrayLCS, cfg.ArrayStrategy())
	assert.Equal(t, 32, cfg.MaxDepth())
	assert.Equal(t, DefaultFallbackThreshold, cfg.FallbackThreshold())
}

func TestParseYAMLUnknownKey(t *testing.T) {
	_, err := ParseYAML([]byte("max_detph: 3\n"))
	require.Error(t, err)

	var cfgErr *differrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "max_detph", cfgErr.Option)
}

func TestParseYAMLBadValue(t *testing.T) {
	_, err := ParseYAML([]byte("max_depth: deep\n"))
	assert.ErrorIs(t, err, differrors.ErrConfig)
}

func TestParseYAMLOutOfRangeValue(t *testing.T) {
	f, err := ParseYAML([]byte("max_depth: -2\n"))
	require.NoError(t, err)

	_, err = New(f.Options()...)
	assert.ErrorIs(t, err, differrors.ErrConfig)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outdiff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detect_modifications: false\n"), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, f.DetectModifications)
	assert.False(t, *f.DetectModifications)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, differrors.ErrConfig)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"OUTDIFF_WHITESPACE_MODE":         "ignore_all",
		"OUTDIFF_CASE_SENSITIVE":          "false",
		"OUTDIFF_SIZE_FALLBACK_THRESHOLD": "200",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	f, err := FromEnv(lookup)
	require.NoError(t, err)

	cfg, err := New(f.Options()...)
	require.NoError(t, err)
	assert.Equal(t, WhitespaceIgnoreAll, cfg.WhitespaceMode())
	assert.False(t, cfg.CaseSensitive())
	assert.Equal(t, 200, cfg.FallbackThreshold())
}

func TestFromEnvInvalid(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "OUTDIFF_MAX_DEPTH" {
			return "lots", true
		}
		return "", false
	}

	_, err := FromEnv(lookup)
	var cfgErr *differrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "OUTDIFF_MAX_DEPTH", cfgErr.Option)
}

func TestFileMerge(t *testing.T) {
	depth := 10
	other := 20
	lcs := "lcs"

	base := File{MaxDepth: &depth}
	merged := base.Merge(File{MaxDepth: &other, ArrayDiffStrategy: &lcs})

	require.NotNil(t, merged.MaxDepth)
	assert.Equal(t, 20, *merged.MaxDepth)
	require.NotNil(t, merged.ArrayDiffStrategy)
	assert.Equal(t, "lcs", *merged.ArrayDiffStrategy)
	assert.Equal(t, 10, *base.MaxDepth)
}
