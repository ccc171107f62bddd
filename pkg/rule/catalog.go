package rule

import "github.com/casoon/nosecrets-go/pkg/types"

// catalogRule is the TOML-shape of a rule, as found under the `[[rule]]`
// key in an embedded catalog document or a user-supplied rules file.
type catalogRule struct {
	ID       string   `toml:"id"`
	Name     string   `toml:"name"`
	Severity string   `toml:"severity"`
	Pattern  string   `toml:"pattern"`
	Keywords []string `toml:"keywords"`
	Capture  int      `toml:"capture"`

	Validate *catalogValidate `toml:"validate"`
	Paths    *catalogPaths    `toml:"paths"`
	Allow    *catalogAllow    `toml:"allow"`
}

type catalogValidate struct {
	Prefix    []string `toml:"prefix"`
	Charset   string   `toml:"charset"`
	Length    *int     `toml:"length"`
	MinLength *int     `toml:"min_length"`
	MaxLength *int     `toml:"max_length"`
}

type catalogPaths struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type catalogAllow struct {
	Patterns []string `toml:"patterns"`
	Values   []string `toml:"values"`
}

// rulesDocument is the top-level shape of a `rules/*.toml` catalog
// file: an array of rule tables under the key "rule".
type rulesDocument struct {
	Rule []catalogRule `toml:"rule"`
}

func (r *catalogRule) toType() *types.Rule {
	capture := r.Capture
	if capture == 0 {
		capture = types.DefaultCapture
	}
	out := &types.Rule{
		ID:       r.ID,
		Name:     r.Name,
		Severity: types.Severity(r.Severity),
		Pattern:  r.Pattern,
		Keywords: r.Keywords,
		Capture:  capture,
	}
	if r.Validate != nil {
		out.Validate = &types.RuleValidate{
			Prefix:    r.Validate.Prefix,
			Charset:   r.Validate.Charset,
			Length:    r.Validate.Length,
			MinLength: r.Validate.MinLength,
			MaxLength: r.Validate.MaxLength,
		}
	}
	if r.Paths != nil {
		out.Paths = &types.RulePaths{
			Include: r.Paths.Include,
			Exclude: r.Paths.Exclude,
		}
	}
	if r.Allow != nil {
		out.Allow = &types.RuleAllow{
			Patterns: r.Allow.Patterns,
			Values:   r.Allow.Values,
		}
	}
	return out
}
