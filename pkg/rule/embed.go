package rule

import "embed"

// builtinRulesFS embeds the built-in rule catalog. Categories are
// loaded in the fixed order given by builtinCategories, not
// filesystem iteration order.
//
//go:embed rules/*.toml
var builtinRulesFS embed.FS

// builtinCategories fixes the load order of the embedded catalog. The
// rule schema permits duplicate IDs across files (discouraged, not
// forbidden), so this order only matters for reproducible diagnostics.
var builtinCategories = []string{
	"cloud",
	"deploy",
	"code",
	"database",
	"generic",
	"payment",
}
