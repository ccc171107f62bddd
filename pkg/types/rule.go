package types

// Rule is a single detection rule loaded from the catalog. It is plain
// data: compilation into something that can actually scan a file lives
// in pkg/rule.
type Rule struct {
	ID       string   // stable short identifier, unique per catalog
	Name     string   // human label
	Severity Severity // drives Report.ExitCode via Severity.Blocks
	Pattern  string   // regex source; must have at least one capturing group
	Keywords []string // ASCII substrings for prefiltering; empty = always a candidate
	Capture  int      // 1-based capturing group index whose span is the secret

	Validate *RuleValidate // structural constraints on the secret text
	Paths    *RulePaths    // include/exclude globs on the repo-relative path
	Allow    *RuleAllow    // rule-scoped allow-list
}

// RuleValidate constrains the raw secret text before it is reported.
// All fields are optional; an absent RuleValidate always validates.
type RuleValidate struct {
	Prefix    []string // at least one must be a prefix of the secret, if non-empty
	Charset   string   // character-class body embedded into ^[...]+$
	Length    *int     // exact byte length
	MinLength *int     // minimum byte length
	MaxLength *int     // maximum byte length
}

// RulePaths restricts which repo-relative paths a rule applies to.
type RulePaths struct {
	Include []string // glob patterns; if non-empty, path must match one
	Exclude []string // glob patterns; if path matches one, rule is skipped
}

// RuleAllow is a rule-scoped allow-list, checked against the matched
// secret text (not the surrounding context).
type RuleAllow struct {
	Patterns []string // regexes over the secret text
	Values   []string // exact-match strings
}

// DefaultCapture is the capturing group index used when a rule omits
// the capture field.
const DefaultCapture = 1
