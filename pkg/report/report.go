// Package report collects findings into a deduplicated Report,
// computes exit status, and renders it as text, JSON, or SARIF.
package report

import (
	"github.com/casoon/nosecrets-go/pkg/types"
)

// Report is a deduplicated, order-preserving collection of findings.
type Report struct {
	findings []types.Finding
}

// New builds a Report from raw findings, collapsing duplicates that
// share a dedup key and keeping the first occurrence of each.
func New(findings []types.Finding) *Report {
	seen := make(map[types.DedupKey]struct{}, len(findings))
	deduped := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		key := f.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, f)
	}
	return &Report{findings: deduped}
}

// Findings returns the deduplicated findings, in first-occurrence order.
func (r *Report) Findings() []types.Finding {
	return r.findings
}

// IsEmpty reports whether the report has no findings.
func (r *Report) IsEmpty() bool {
	return len(r.findings) == 0
}

// ExitCode returns 1 if any retained finding's severity blocks, 0
// otherwise.
func (r *Report) ExitCode() int {
	for _, f := range r.findings {
		if f.Severity.Blocks() {
			return 1
		}
	}
	return 0
}
