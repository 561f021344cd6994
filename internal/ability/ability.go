// Package ability resolves role capabilities for domain operations. Checks
// are pure lookups over a rule table built once at startup: no errors, no
// panics, and an unresolved caller always fails closed.
package ability

import (
	"slices"

	"github.com/lendcore/veriflow/internal/identity"
)

// Action is a capability verb. Manage implies every other action.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// Subject is the domain entity a rule applies to.
type Subject string

const (
	SubjectVerification    Subject = "verification"
	SubjectLoanApplication Subject = "loan_application"
	SubjectTimeline        Subject = "timeline"
	SubjectWizardSession   Subject = "wizard_session"
)

// Rule grants an action on a subject. A non-empty Fields list narrows the
// grant to those fields; an empty list covers the whole subject.
type Rule struct {
	Action  Action
	Subject Subject
	Fields  []string
}

// Resolver answers capability checks against a per-role rule table.
type Resolver struct {
	rules map[identity.Role][]Rule
}

// NewResolver creates a Resolver over the given rule table.
func NewResolver(rules map[identity.Role][]Rule) *Resolver {
	return &Resolver{rules: rules}
}

// Can reports whether the caller may perform action on subject. When fields
// are given, every field must be covered by a matching rule; a rule with no
// field list covers all fields.
func (r *Resolver) Can(caller *identity.Caller, action Action, subject Subject, fields ...string) bool {
	if caller == nil || caller.Role == "" {
		return false
	}

	rules, ok := r.rules[caller.Role]
	if !ok {
		return false
	}

	if len(fields) == 0 {
		for _, rule := range rules {
			if rule.matches(action, subject) {
				return true
			}
		}
		return false
	}

	for _, field := range fields {
		if !fieldAllowed(rules, action, subject, field) {
			return false
		}
	}
	return true
}

func fieldAllowed(rules []Rule, action Action, subject Subject, field string) bool {
	for _, rule := range rules {
		if !rule.matches(action, subject) {
			continue
		}
		if len(rule.Fields) == 0 || slices.Contains(rule.Fields, field) {
			return true
		}
	}
	return false
}

func (r Rule) matches(action Action, subject Subject) bool {
	if r.Subject != subject {
		return false
	}
	return r.Action == action || r.Action == ActionManage
}
