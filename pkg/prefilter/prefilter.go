// Package prefilter narrows, per file, the set of rules actually worth
// running a regex over. It must be sound: every rule whose pattern
// could match the text has to come out as a candidate, even though the
// automaton only ever looks at literal keywords, never the pattern
// itself.
package prefilter

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/casoon/nosecrets-go/pkg/rule"
)

// Prefilter is an Aho-Corasick automaton over the union of every
// rule's keywords, plus the set of rules that have no keywords at all
// (and so are always candidates).
type Prefilter struct {
	matcher      *ahocorasick.Matcher
	keywords     []string // lowercased; index aligned with matcher pattern indices
	keywordRules [][]int  // keywordRules[i] = indices into the rule slice for keywords[i]
	alwaysOn     []int
}

// New builds a Prefilter over compiled rules. Index i of the returned
// candidate sets refers to rules[i].
func New(rules []*rule.CompiledRule) *Prefilter {
	pf := &Prefilter{}
	keywordIndex := make(map[string]int)

	for ruleIdx, cr := range rules {
		keywords := cr.Rule.Keywords
		if len(keywords) == 0 {
			pf.alwaysOn = append(pf.alwaysOn, ruleIdx)
			continue
		}
		for _, kw := range keywords {
			lower := asciiLower(kw)
			idx, ok := keywordIndex[lower]
			if !ok {
				idx = len(pf.keywords)
				keywordIndex[lower] = idx
				pf.keywords = append(pf.keywords, lower)
				pf.keywordRules = append(pf.keywordRules, nil)
			}
			pf.keywordRules[idx] = append(pf.keywordRules[idx], ruleIdx)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}
	return pf
}

// Candidates returns the indices of rules worth trying against text.
// Matching is ASCII case-insensitive: both the keywords and the text
// are folded to lowercase before the automaton runs, since catalogs
// mix conventions ("AWS_", "GitHub", "secret_").
func (pf *Prefilter) Candidates(text []byte) []int {
	seen := make(map[int]struct{}, len(pf.alwaysOn))
	candidates := make([]int, 0, len(pf.alwaysOn))
	for _, idx := range pf.alwaysOn {
		seen[idx] = struct{}{}
		candidates = append(candidates, idx)
	}

	if pf.matcher == nil {
		return candidates
	}

	lower := asciiLowerBytes(text)
	for _, hit := range pf.matcher.Match(lower) {
		for _, ruleIdx := range pf.keywordRules[hit] {
			if _, ok := seen[ruleIdx]; ok {
				continue
			}
			seen[ruleIdx] = struct{}{}
			candidates = append(candidates, ruleIdx)
		}
	}
	return candidates
}

func asciiLower(s string) string {
	return string(asciiLowerBytes([]byte(s)))
}

func asciiLowerBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}
