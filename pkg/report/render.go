package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/casoon/nosecrets-go/pkg/types"
)

// styles holds the color formatters used by RenderText.
type styles struct {
	severity map[types.Severity]*color.Color
	rule     *color.Color
	dim      *color.Color
	ok       *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		severity: map[types.Severity]*color.Color{
			types.SeverityCritical: color.New(color.Bold, color.FgRed),
			types.SeverityHigh:     color.New(color.FgRed),
			types.SeverityMedium:   color.New(color.FgYellow),
			types.SeverityLow:      color.New(color.FgBlue),
		},
		rule: color.New(color.Bold, color.FgHiBlue),
		dim:  color.New(color.Faint),
		ok:   color.New(color.FgGreen),
	}
	if !enabled {
		for _, c := range s.severity {
			c.DisableColor()
		}
		s.rule.DisableColor()
		s.dim.DisableColor()
		s.ok.DisableColor()
	}
	return s
}

// RenderText writes a human-readable rendering of the report to w.
// colorEnabled should reflect a TTY/NO_COLOR check made by the caller;
// this function never probes the terminal itself.
func RenderText(w io.Writer, r *Report, colorEnabled bool) error {
	s := newStyles(colorEnabled)
	if r.IsEmpty() {
		_, err := fmt.Fprintln(w, s.ok.Sprint("no secrets found"))
		return err
	}
	for _, f := range r.Findings() {
		sevColor, ok := s.severity[f.Severity]
		if !ok {
			sevColor = s.dim
		}
		_, err := fmt.Fprintf(w, "%s:%d:%d [%s] %s (%s) %s\n",
			f.Path, f.Line, f.Column,
			sevColor.Sprint(string(f.Severity)),
			s.rule.Sprint(f.RuleName),
			f.RuleID,
			s.dim.Sprint(f.Fingerprint),
		)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  preview: %s\n", s.dim.Sprint(f.Preview)); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the report's findings to w as pretty-printed JSON.
func RenderJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Findings())
}
