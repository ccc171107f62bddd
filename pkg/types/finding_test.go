package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindingKeyMatchesOnSharedFields(t *testing.T) {
	a := Finding{Path: "a.go", Line: 1, Column: 2, RuleID: "r1", Fingerprint: "nsi_x", Preview: "p1"}
	b := Finding{Path: "a.go", Line: 1, Column: 2, RuleID: "r1", Fingerprint: "nsi_x", Preview: "p2", RuleName: "different"}

	assert.Equal(t, a.Key(), b.Key())
}

func TestFindingKeyDiffersOnRuleID(t *testing.T) {
	a := Finding{Path: "a.go", Line: 1, Column: 2, RuleID: "r1", Fingerprint: "nsi_x"}
	b := Finding{Path: "a.go", Line: 1, Column: 2, RuleID: "r2", Fingerprint: "nsi_x"}

	assert.NotEqual(t, a.Key(), b.Key())
}
