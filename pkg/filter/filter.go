package filter

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/casoon/nosecrets-go/pkg/pathutil"
	"github.com/casoon/nosecrets-go/pkg/regexutil"
	"github.com/casoon/nosecrets-go/pkg/types"
)

// Filter is the repo-level policy a candidate finding has to survive
// after its owning rule has already accepted it: is the file under an
// ignored path, is the secret value on the allow-list, has this exact
// fingerprint been ignored before (optionally scoped to a path glob).
// It is immutable once built and safe to share across workers.
type Filter struct {
	ignorePaths   *gitignore.GitIgnore
	allowPatterns []*regexp2.Regexp
	allowValues   map[string]struct{}
	ignoreEntries []compiledIgnoreEntry
}

type compiledIgnoreEntry struct {
	fingerprint string
	matcher     *gitignore.GitIgnore // nil matches any path
}

// New builds a Filter from an optional repo config and the parsed
// ignore-file entries. A nil config is treated as all-zero: nothing
// ignored, nothing on the allow-list.
func New(config *types.Config, entries []types.IgnoreEntry) (*Filter, error) {
	f := &Filter{
		allowValues: make(map[string]struct{}),
	}

	if config != nil {
		if len(config.Ignore.Paths) > 0 {
			globset, err := buildGlobSet(config.Ignore.Paths)
			if err != nil {
				return nil, fmt.Errorf("invalid ignore.paths: %w", err)
			}
			f.ignorePaths = globset
		}

		for _, pattern := range config.Allow.Patterns {
			re, err := regexutil.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid allow.patterns entry %q: %w", pattern, err)
			}
			f.allowPatterns = append(f.allowPatterns, re)
		}

		for _, v := range config.Allow.Values {
			f.allowValues[v] = struct{}{}
		}
	}

	for _, entry := range entries {
		compiled := compiledIgnoreEntry{fingerprint: entry.Fingerprint}
		if entry.PathGlob != "" {
			globset, err := buildGlobSet([]string{entry.PathGlob})
			if err != nil {
				return nil, fmt.Errorf("invalid ignore entry glob %q: %w", entry.PathGlob, err)
			}
			compiled.matcher = globset
		}
		f.ignoreEntries = append(f.ignoreEntries, compiled)
	}

	return f, nil
}

func buildGlobSet(patterns []string) (*gitignore.GitIgnore, error) {
	normalized := make([]string, len(patterns))
	for i, p := range patterns {
		normalized[i] = pathutil.NormalizeGlob(p)
	}
	return gitignore.CompileIgnoreLines(normalized...)
}

// IsPathIgnored reports whether relPath falls under `ignore.paths`.
func (f *Filter) IsPathIgnored(relPath string) bool {
	if f.ignorePaths == nil {
		return false
	}
	return f.ignorePaths.MatchesPath(pathutil.Normalize(relPath))
}

// IsValueAllowed reports whether value is on the repo-wide allow-list,
// by exact match or by one of `allow.patterns`.
func (f *Filter) IsValueAllowed(value string) bool {
	if _, ok := f.allowValues[value]; ok {
		return true
	}
	for _, re := range f.allowPatterns {
		if ok, _ := re.MatchString(value); ok {
			return true
		}
	}
	return false
}

// IsFingerprintIgnored reports whether fingerprint has been recorded in
// the ignore file for relPath. An entry with no path glob matches any
// path.
func (f *Filter) IsFingerprintIgnored(fingerprint, relPath string) bool {
	normalized := pathutil.Normalize(relPath)
	for _, entry := range f.ignoreEntries {
		if entry.fingerprint != fingerprint {
			continue
		}
		if entry.matcher == nil {
			return true
		}
		if entry.matcher.MatchesPath(normalized) {
			return true
		}
	}
	return false
}

// IsInlineIgnored reports whether a source line carries an inline
// ignore marker. It's a plain substring check, not a regex: the
// markers never need context-sensitive matching and a substring check
// can't itself hang on pathological input.
func IsInlineIgnored(line string) bool {
	return strings.Contains(line, "@nosecrets-ignore") || strings.Contains(line, "@nsi")
}
