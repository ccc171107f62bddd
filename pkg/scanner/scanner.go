// Package scanner ties rule compilation, prefiltering, and repo-level
// filtering together into the operation that actually walks a
// directory tree and reports findings.
package scanner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/casoon/nosecrets-go/pkg/filter"
	"github.com/casoon/nosecrets-go/pkg/pathutil"
	"github.com/casoon/nosecrets-go/pkg/prefilter"
	"github.com/casoon/nosecrets-go/pkg/report"
	"github.com/casoon/nosecrets-go/pkg/rule"
	"github.com/casoon/nosecrets-go/pkg/types"
)

// Detector holds the immutable state a scan needs: compiled rules, the
// prefilter built over them, and the repo-level filter. A single
// Detector is shared read-only across every worker goroutine.
type Detector struct {
	rules     []*rule.CompiledRule
	prefilter *prefilter.Prefilter
	filter    *filter.Filter
}

// New builds a Detector. rules must already be compiled; pf must be
// built over the same slice (pf.Candidates indices refer into rules).
func New(rules []*rule.CompiledRule, pf *prefilter.Prefilter, f *filter.Filter) *Detector {
	return &Detector{rules: rules, prefilter: pf, filter: f}
}

// DiagnosticFunc receives a path and the error that stopped it being
// scanned. Called from worker goroutines; implementations must be
// concurrency-safe.
type DiagnosticFunc func(path string, err error)

// ScanFiles scans every path in files (absolute or root-relative) and
// returns every finding across all of them, in no particular order. A
// per-file error is reported to diag (if non-nil) and does not abort
// the scan. Work is distributed across runtime.NumCPU() goroutines.
func (d *Detector) ScanFiles(ctx context.Context, root string, files []string, diag DiagnosticFunc) ([]types.Finding, error) {
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}

	type result struct {
		findings []types.Finding
	}
	results := make([]result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	paths := make(chan int, workers*2)

	g.Go(func() error {
		defer close(paths)
		for i := range files {
			select {
			case paths <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range paths {
				findings, err := d.scanFile(root, files[i])
				if err != nil {
					if diag != nil {
						diag(files[i], err)
					}
					continue
				}
				results[i].findings = findings
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.Finding
	for _, r := range results {
		all = append(all, r.findings...)
	}
	return all, nil
}

// scanFile scans a single file and returns every finding it produced.
// A file outside root, a path-ignored file, or a binary file (one
// containing a NUL byte) yields no findings and no error.
func (d *Detector) scanFile(root, path string) ([]types.Finding, error) {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = path
	}
	if d.filter.IsPathIgnored(relPath) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return nil, nil
	}

	text := toValidUTF8(content)
	lineIndex := types.NewLineIndex([]byte(text))

	var findings []types.Finding
	for _, idx := range d.prefilter.Candidates([]byte(text)) {
		cr := d.rules[idx]
		if !cr.AppliesToPath(relPath) {
			continue
		}
		matches, err := cr.FindAll(text)
		if err != nil {
			return nil, fmt.Errorf("scanning %s with rule %s: %w", path, cr.Rule.ID, err)
		}
		for _, m := range matches {
			if !m.Ok {
				continue
			}
			secret := m.Text
			if !cr.ValidateSecret(secret) {
				continue
			}
			if cr.IsAllowed(secret) || d.filter.IsValueAllowed(secret) {
				continue
			}

			line, column := lineIndex.Resolve(m.Start)
			if filter.IsInlineIgnored(lineIndex.Line([]byte(text), line)) {
				continue
			}

			fingerprint := report.Fingerprint(secret)
			if d.filter.IsFingerprintIgnored(fingerprint, relPath) {
				continue
			}

			findings = append(findings, types.Finding{
				Path:        pathutil.Normalize(relPath),
				Line:        line,
				Column:      column,
				RuleID:      cr.Rule.ID,
				RuleName:    cr.Rule.Name,
				Severity:    cr.Rule.Severity,
				Fingerprint: fingerprint,
				Preview:     report.Mask(secret),
			})
		}
	}
	return findings, nil
}

// toValidUTF8 decodes content as UTF-8, substituting the replacement
// character for any invalid byte sequence, mirroring a lossy decode
// rather than failing outright on binary-looking text that slipped
// past the NUL-byte check.
func toValidUTF8(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	var b []byte
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		if r == utf8.RuneError && size <= 1 {
			b = append(b, string(utf8.RuneError)...)
			content = content[1:]
			continue
		}
		b = append(b, content[:size]...)
		content = content[size:]
	}
	return string(b)
}
