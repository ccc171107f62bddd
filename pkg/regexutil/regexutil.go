// Package regexutil centralizes the one regex-compilation policy used
// throughout the scanner: try RE2 mode first (linear time, safe
// against catastrophic backtracking), fall back to regexp2's Perl-
// compatible mode for patterns RE2 can't express, and bound the
// fallback with a MatchTimeout so a pathological pattern can't hang a
// scan.
package regexutil

import (
	"time"

	"github.com/dlclark/regexp2"
)

// FallbackTimeout bounds how long the Perl-mode fallback may spend on
// a single match attempt.
const FallbackTimeout = 5 * time.Second

// Compile compiles pattern, preferring RE2 semantics.
func Compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2|regexp2.Multiline)
	if err == nil {
		return re, nil
	}
	re, err = regexp2.Compile(pattern, regexp2.None|regexp2.Multiline)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = FallbackTimeout
	return re, nil
}
