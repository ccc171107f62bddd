package report

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/casoon/nosecrets-go/pkg/types"
)

// SARIF 2.1.0 constants.
const (
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	sarifVersion   = "2.1.0"
	sarifToolName  = "nosecrets"
)

type sarifReport struct {
	Schema  string    `json:"$schema"`
	Version string    `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifShortDescription `json:"shortDescription"`
}

type sarifShortDescription struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int         `json:"startLine"`
	StartColumn int         `json:"startColumn"`
	Snippet     sarifSnippet `json:"snippet,omitempty"`
}

type sarifSnippet struct {
	Text string `json:"text"`
}

// sarifLevel maps a finding severity onto a SARIF result level.
func sarifLevel(sev types.Severity) string {
	switch sev {
	case types.SeverityCritical, types.SeverityHigh:
		return "error"
	case types.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

// RenderSARIF writes r as a SARIF 2.1.0 log to w. The rule catalog is
// passed separately so each rule's display name and ID can populate
// the tool-rules section even for rules with zero findings.
func RenderSARIF(w io.Writer, r *Report, toolVersion string, rules []*types.Rule) error {
	doc := sarifReport{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    sarifToolName,
						Version: toolVersion,
						Rules:   make([]sarifRule, 0, len(rules)),
					},
				},
				Results: make([]sarifResult, 0, len(r.Findings())),
			},
		},
	}

	for _, rule := range rules {
		doc.Runs[0].Tool.Driver.Rules = append(doc.Runs[0].Tool.Driver.Rules, sarifRule{
			ID:   rule.ID,
			Name: rule.Name,
			ShortDescription: sarifShortDescription{
				Text: rule.Name,
			},
		})
	}

	for _, f := range r.Findings() {
		doc.Runs[0].Results = append(doc.Runs[0].Results, sarifResult{
			RuleID: f.RuleID,
			Level:  sarifLevel(f.Severity),
			Message: sarifMessage{
				Text: f.RuleName,
			},
			Locations: []sarifLocation{
				{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{
							URI: sarifURI(f.Path),
						},
						Region: sarifRegion{
							StartLine:   f.Line,
							StartColumn: f.Column,
							Snippet:     sarifSnippet{Text: f.Preview},
						},
					},
				},
			},
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func sarifURI(path string) string {
	if filepath.IsAbs(path) {
		slash := filepath.ToSlash(path)
		if !strings.HasPrefix(slash, "/") {
			slash = "/" + slash
		}
		return "file://" + slash
	}
	return filepath.ToSlash(path)
}
