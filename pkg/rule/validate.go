package rule

import "fmt"

// ValidateSecret checks secret against this rule's structural
// constraints (length, prefix, charset). A rule with no Validate
// block always validates. Length is measured in bytes, matching the
// regex engine's own byte semantics.
func (cr *CompiledRule) ValidateSecret(secret string) bool {
	v := cr.Rule.Validate
	if v == nil {
		return true
	}
	n := len(secret)
	if v.Length != nil && n != *v.Length {
		return false
	}
	if v.MinLength != nil && n < *v.MinLength {
		return false
	}
	if v.MaxLength != nil && n > *v.MaxLength {
		return false
	}
	if len(v.Prefix) > 0 {
		ok := false
		for _, prefix := range v.Prefix {
			if len(secret) >= len(prefix) && secret[:len(prefix)] == prefix {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if cr.charsetRegex != nil {
		ok, _ := cr.charsetRegex.MatchString(secret)
		if !ok {
			return false
		}
	}
	return true
}

// ValidateCatalogRule checks a raw catalog entry for required fields
// before it is compiled. Used by Loader to fail fast with a rule-
// identified error rather than a generic compile failure.
func ValidateCatalogRule(r *catalogRule) error {
	if r.ID == "" {
		return fmt.Errorf("rule is missing id")
	}
	if r.Name == "" {
		return fmt.Errorf("rule %s is missing name", r.ID)
	}
	if r.Pattern == "" {
		return fmt.Errorf("rule %s is missing pattern", r.ID)
	}
	if r.Severity == "" {
		return fmt.Errorf("rule %s is missing severity", r.ID)
	}
	return nil
}
