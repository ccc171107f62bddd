package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casoon/nosecrets-go/pkg/types"
)

func TestIgnorePathsMatchTrailingSlash(t *testing.T) {
	cfg := &types.Config{Ignore: types.IgnoreConfig{Paths: []string{"vendor/"}}}
	f, err := New(cfg, nil)
	require.NoError(t, err)

	assert.True(t, f.IsPathIgnored("vendor/lib.go"))
	assert.False(t, f.IsPathIgnored("src/lib.go"))
}

func TestAllowValuesAndPatterns(t *testing.T) {
	cfg := &types.Config{Allow: types.AllowConfig{
		Values:   []string{"ALLOW_ME"},
		Patterns: []string{"^test_.*$"},
	}}
	f, err := New(cfg, nil)
	require.NoError(t, err)

	assert.True(t, f.IsValueAllowed("ALLOW_ME"))
	assert.True(t, f.IsValueAllowed("test_value"))
	assert.False(t, f.IsValueAllowed("deny"))
}

func TestFingerprintIgnoredWithPathGlob(t *testing.T) {
	entries := []types.IgnoreEntry{{Fingerprint: "nsi_123", PathGlob: "src/**"}}
	f, err := New(nil, entries)
	require.NoError(t, err)

	assert.True(t, f.IsFingerprintIgnored("nsi_123", "src/main.go"))
	assert.False(t, f.IsFingerprintIgnored("nsi_123", "tests/main.go"))
	assert.False(t, f.IsFingerprintIgnored("nsi_999", "src/main.go"))
}

func TestFingerprintIgnoredWithoutGlobMatchesAnyPath(t *testing.T) {
	entries := []types.IgnoreEntry{{Fingerprint: "nsi_abc"}}
	f, err := New(nil, entries)
	require.NoError(t, err)

	assert.True(t, f.IsFingerprintIgnored("nsi_abc", "anywhere/at/all.go"))
}

func TestInlineIgnoreDetection(t *testing.T) {
	assert.True(t, IsInlineIgnored(`key = "secret" # @nosecrets-ignore`))
	assert.True(t, IsInlineIgnored("// @nsi test"))
	assert.False(t, IsInlineIgnored("no ignore here"))
}

func TestNilConfigIsAllZero(t *testing.T) {
	f, err := New(nil, nil)
	require.NoError(t, err)

	assert.False(t, f.IsPathIgnored("anything.go"))
	assert.False(t, f.IsValueAllowed("anything"))
	assert.False(t, f.IsFingerprintIgnored("nsi_000", "anything.go"))
}

func TestInvalidAllowPatternIsRejected(t *testing.T) {
	cfg := &types.Config{Allow: types.AllowConfig{Patterns: []string{"(unterminated"}}}
	_, err := New(cfg, nil)
	assert.Error(t, err)
}
