package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/casoon/nosecrets-go/pkg/filter"
	"github.com/casoon/nosecrets-go/pkg/prefilter"
	"github.com/casoon/nosecrets-go/pkg/rule"
	"github.com/casoon/nosecrets-go/pkg/types"
)

func baseRule(pattern string) *types.Rule {
	return &types.Rule{
		ID:       "test-rule",
		Name:     "Test Rule",
		Severity: types.SeverityHigh,
		Pattern:  pattern,
		Keywords: []string{"secret_"},
		Capture:  1,
	}
}

func buildDetector(t *testing.T, rules []*types.Rule, cfg *types.Config) *Detector {
	t.Helper()
	compiled, err := rule.Compile(rules)
	require.NoError(t, err)
	pf := prefilter.New(compiled)
	f, err := filter.New(cfg, nil)
	require.NoError(t, err)
	return New(compiled, pf, f)
}

func scanOne(t *testing.T, d *Detector, content string) []types.Finding {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "config.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	findings, err := d.ScanFiles(context.Background(), dir, []string{path}, nil)
	require.NoError(t, err)
	return findings
}

func TestDetectsSecretWithPosition(t *testing.T) {
	d := buildDetector(t, []*types.Rule{baseRule(`(secret_[A-Z0-9]{6})`)}, nil)
	secret := "secret_ABC123"
	content := "let key = \"" + secret + "\";\n"

	findings := scanOne(t, d, content)
	require.Len(t, findings, 1)
	f := findings[0]
	require.Equal(t, "src/config.txt", f.Path)
	require.Equal(t, 1, f.Line)
	require.Equal(t, len("let key = \"")+1, f.Column)
}

func TestInlineIgnoreSkipsFinding(t *testing.T) {
	d := buildDetector(t, []*types.Rule{baseRule(`(secret_[A-Z0-9]{6})`)}, nil)
	content := "key = \"secret_ABC123\" # @nosecrets-ignore\n"

	findings := scanOne(t, d, content)
	require.Empty(t, findings)
}

func TestAllowPatternsSkipMatchingSecret(t *testing.T) {
	r := baseRule(`(secret_[A-Z]+)`)
	r.Allow = &types.RuleAllow{Patterns: []string{"ALLOW$"}}
	d := buildDetector(t, []*types.Rule{r}, nil)

	findings := scanOne(t, d, "key = \"secret_ALLOW\"\n")
	require.Empty(t, findings)
}

func TestRulePathsExcludeSkipsFile(t *testing.T) {
	r := baseRule(`(secret_[A-Z0-9]{6})`)
	r.Paths = &types.RulePaths{Exclude: []string{"src/"}}
	d := buildDetector(t, []*types.Rule{r}, nil)

	findings := scanOne(t, d, "secret_ABC123")
	require.Empty(t, findings)
}

func TestConfigIgnorePathsSkipsFile(t *testing.T) {
	cfg := &types.Config{Ignore: types.IgnoreConfig{Paths: []string{"src/"}}}
	d := buildDetector(t, []*types.Rule{baseRule(`(secret_[A-Z0-9]{6})`)}, cfg)

	findings := scanOne(t, d, "secret_ABC123")
	require.Empty(t, findings)
}

func TestBinaryFileIsSkipped(t *testing.T) {
	d := buildDetector(t, []*types.Rule{baseRule(`(secret_[A-Z0-9]{6})`)}, nil)
	content := "secret_ABC123\x00binary"

	findings := scanOne(t, d, content)
	require.Empty(t, findings)
}

func TestDuplicateSecretOnSameLineYieldsOneFindingPerMatch(t *testing.T) {
	d := buildDetector(t, []*types.Rule{baseRule(`(secret_[A-Z0-9]{6})`)}, nil)
	content := "secret_AAAAAA and secret_BBBBBB\n"

	findings := scanOne(t, d, content)
	require.Len(t, findings, 2)
}
