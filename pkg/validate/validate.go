package validate

import (
	"strings"
)

// Issue describes a single field rule violation.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Issues is an ordered collection of rule violations. Order follows the
// order in which rules were applied, so callers that declare rules in
// field order get field-ordered issues.
type Issues []Issue

func (is Issues) Error() string {
	if len(is) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(is))
	for _, issue := range is {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Rule represents a single validation rule bound to a field and value.
type Rule struct {
	Check func() bool
	Issue Issue
}

// Apply executes every rule and collects all violations, so a caller can
// report every problem with a submission at once rather than the first.
func Apply(rules ...Rule) Issues {
	var issues Issues
	for _, rule := range rules {
		if !rule.Check() {
			issues = append(issues, rule.Issue)
		}
	}
	return issues
}
