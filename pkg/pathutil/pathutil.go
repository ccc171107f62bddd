// Package pathutil normalizes repo-relative paths and glob patterns to a
// single canonical form so every layer of the filter chain compares like
// with like.
package pathutil

import "strings"

// Normalize converts path separators to forward slashes and strips a
// leading "./", matching the form Finding.Path is reported in.
func Normalize(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	return strings.TrimPrefix(normalized, "./")
}

// NormalizeGlob rewrites backslashes to forward slashes and expands a
// trailing "/" into "/**" so that a directory glob like "vendor/" also
// matches everything underneath it.
func NormalizeGlob(pattern string) string {
	normalized := strings.ReplaceAll(pattern, "\\", "/")
	if strings.HasSuffix(normalized, "/") {
		normalized += "**"
	}
	return normalized
}
