package types

// Finding is a single reported occurrence of a potential secret.
type Finding struct {
	Path        string   `json:"path"` // repo-relative, forward-slash form
	Line        int      `json:"line"` // 1-based
	Column      int      `json:"column"` // 1-based, counts bytes from line start
	RuleID      string   `json:"rule_id"`
	RuleName    string   `json:"rule_name"`
	Severity    Severity `json:"severity"`
	Fingerprint string   `json:"fingerprint"`
	Preview     string   `json:"preview"` // masked secret
}

// DedupKey is the tuple two findings must share to collapse into one.
type DedupKey struct {
	Path        string
	Line        int
	Column      int
	Fingerprint string
	RuleID      string
}

// Key returns f's dedup key.
func (f Finding) Key() DedupKey {
	return DedupKey{
		Path:        f.Path,
		Line:        f.Line,
		Column:      f.Column,
		Fingerprint: f.Fingerprint,
		RuleID:      f.RuleID,
	}
}
