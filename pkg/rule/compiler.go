package rule

import (
	"fmt"

	"github.com/dlclark/regexp2"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/casoon/nosecrets-go/pkg/pathutil"
	"github.com/casoon/nosecrets-go/pkg/regexutil"
	"github.com/casoon/nosecrets-go/pkg/types"
)

// CompiledRule is a Rule plus everything derived from it at startup:
// the compiled regex, allow-list regexes/values, include/exclude path
// matchers, and an optional charset validator. It is immutable after
// Compile returns and safe to share across concurrently scanning
// workers.
type CompiledRule struct {
	Rule *types.Rule

	regex        *regexp2.Regexp
	allowRegexes []*regexp2.Regexp
	allowValues  map[string]struct{}
	includePaths *gitignore.GitIgnore
	excludePaths *gitignore.GitIgnore
	charsetRegex *regexp2.Regexp
	capture      int
}

// Compile turns a catalog of Rules into CompiledRules. A compile
// failure (bad regex, bad glob) is fatal at startup and is returned
// with the offending rule's ID in the error text.
func Compile(rules []*types.Rule) ([]*CompiledRule, error) {
	compiled := make([]*CompiledRule, 0, len(rules))
	for _, r := range rules {
		cr, err := compileOne(r)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

func compileOne(r *types.Rule) (*CompiledRule, error) {
	re, err := compileRegex(r.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	allowRegexes, allowValues, err := compileAllow(r.Allow)
	if err != nil {
		return nil, err
	}

	includePaths, excludePaths, err := compilePaths(r.Paths)
	if err != nil {
		return nil, err
	}

	charsetRegex, err := compileCharset(r.Validate)
	if err != nil {
		return nil, err
	}

	capture := r.Capture
	if capture == 0 {
		capture = types.DefaultCapture
	}

	return &CompiledRule{
		Rule:         r,
		regex:        re,
		allowRegexes: allowRegexes,
		allowValues:  allowValues,
		includePaths: includePaths,
		excludePaths: excludePaths,
		charsetRegex: charsetRegex,
		capture:      capture,
	}, nil
}

func compileRegex(pattern string) (*regexp2.Regexp, error) {
	return regexutil.Compile(pattern)
}

func compileAllow(allow *types.RuleAllow) ([]*regexp2.Regexp, map[string]struct{}, error) {
	if allow == nil {
		return nil, nil, nil
	}
	regexes := make([]*regexp2.Regexp, 0, len(allow.Patterns))
	for _, pattern := range allow.Patterns {
		re, err := compileRegex(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid allow pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}
	values := make(map[string]struct{}, len(allow.Values))
	for _, v := range allow.Values {
		values[v] = struct{}{}
	}
	return regexes, values, nil
}

func compilePaths(paths *types.RulePaths) (include, exclude *gitignore.GitIgnore, err error) {
	if paths == nil {
		return nil, nil, nil
	}
	include, err = buildGlobSet(paths.Include)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid include path: %w", err)
	}
	exclude, err = buildGlobSet(paths.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid exclude path: %w", err)
	}
	return include, exclude, nil
}

func buildGlobSet(patterns []string) (*gitignore.GitIgnore, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	normalized := make([]string, len(patterns))
	for i, p := range patterns {
		normalized[i] = pathutil.NormalizeGlob(p)
	}
	return gitignore.CompileIgnoreLines(normalized...)
}

func compileCharset(validate *types.RuleValidate) (*regexp2.Regexp, error) {
	if validate == nil || validate.Charset == "" {
		return nil, nil
	}
	pattern := "^[" + validate.Charset + "]+$"
	re, err := compileRegex(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid charset %q: %w", validate.Charset, err)
	}
	return re, nil
}

// AppliesToPath reports whether this rule should even be tried against
// a repo-relative path, per its optional include/exclude globs.
func (cr *CompiledRule) AppliesToPath(relPath string) bool {
	normalized := pathutil.Normalize(relPath)
	if cr.includePaths != nil && !cr.includePaths.MatchesPath(normalized) {
		return false
	}
	if cr.excludePaths != nil && cr.excludePaths.MatchesPath(normalized) {
		return false
	}
	return true
}

// IsAllowed reports whether secret is permitted by this rule's own
// allow-list (separate from the repo-wide allow-list in pkg/filter).
func (cr *CompiledRule) IsAllowed(secret string) bool {
	if _, ok := cr.allowValues[secret]; ok {
		return true
	}
	for _, re := range cr.allowRegexes {
		if ok, _ := re.MatchString(secret); ok {
			return true
		}
	}
	return false
}

// Capture returns the 1-based capturing group index whose span is the
// secret text.
func (cr *CompiledRule) Capture() int {
	return cr.capture
}

// FindAll returns every match of the rule's pattern in text, in order.
func (cr *CompiledRule) FindAll(text string) ([]RegexMatch, error) {
	var matches []RegexMatch
	m, err := cr.regex.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("matching rule %s: %w", cr.Rule.ID, err)
	}
	for m != nil {
		matches = append(matches, newRegexMatch(m, cr.capture))
		m, err = cr.regex.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("matching rule %s: %w", cr.Rule.ID, err)
		}
	}
	return matches, nil
}

// RegexMatch is the piece of a CompiledRule.FindAll result the scanner
// cares about: whether the configured capture group participated, and
// if so its text and byte offset.
type RegexMatch struct {
	Ok    bool
	Text  string
	Start int
}

func newRegexMatch(m *regexp2.Match, capture int) RegexMatch {
	groups := m.Groups()
	if capture < 0 || capture >= len(groups) {
		return RegexMatch{}
	}
	group := groups[capture]
	if len(group.Captures) == 0 {
		return RegexMatch{}
	}
	cap := group.Captures[0]
	return RegexMatch{Ok: true, Text: cap.String(), Start: cap.Index}
}
