package scheduler

import (
	"fmt"

	"github.com/alexanderramin/fabline/internal/domain"
)

// RulePair identifies a directed from/to stage pair.
type RulePair struct {
	FromStageID int64
	ToStageID   int64
}

// Registry is an immutable snapshot of lead-time rules, kept in insertion
// order. Only active rules with Direction = before are visible to lookups;
// inactive and "after" rules are carried but never consulted.
type Registry struct {
	rules []domain.LeadTimeRule
}

// NewRegistry builds a Registry over the given rule snapshot. The slice
// order is the insertion order used for duplicate resolution.
func NewRegistry(rules []domain.LeadTimeRule) *Registry {
	kept := make([]domain.LeadTimeRule, len(rules))
	copy(kept, rules)
	return &Registry{rules: kept}
}

// Rule returns the first active "before" rule for the given pair in
// insertion order. When duplicates exist the first one wins; Ambiguities
// reports such pairs so the caller can warn.
func (r *Registry) Rule(fromStageID, toStageID int64) (domain.LeadTimeRule, bool) {
	for _, rule := range r.rules {
		if rule.FromStageID == fromStageID && rule.ToStageID == toStageID &&
			rule.IsActive && rule.Direction == domain.DirectionBefore {
			return rule, true
		}
	}
	return domain.LeadTimeRule{}, false
}

// Ambiguities returns every pair that carries more than one active "before"
// rule. Lookups resolve these first-by-insertion-order; the pairs are
// surfaced so the caller can log a configuration warning rather than let
// the ambiguity pass silently.
func (r *Registry) Ambiguities() []RulePair {
	counts := make(map[RulePair]int)
	var order []RulePair
	for _, rule := range r.rules {
		if !rule.IsActive || rule.Direction != domain.DirectionBefore {
			continue
		}
		pair := RulePair{FromStageID: rule.FromStageID, ToStageID: rule.ToStageID}
		if counts[pair] == 0 {
			order = append(order, pair)
		}
		counts[pair]++
	}

	var ambiguous []RulePair
	for _, pair := range order {
		if counts[pair] > 1 {
			ambiguous = append(ambiguous, pair)
		}
	}
	return ambiguous
}

// Validate checks every rule against the pipeline: both endpoints must be
// distinct existing stages and Days must be non-negative. Violations are
// configuration errors regardless of whether the rule is active.
func (r *Registry) Validate(p *Pipeline) error {
	for _, rule := range r.rules {
		if rule.FromStageID == rule.ToStageID {
			return &ConfigError{Reason: fmt.Sprintf("lead-time rule %d references stage %d on both sides", rule.ID, rule.FromStageID)}
		}
		if _, ok := p.ByID(rule.FromStageID); !ok {
			return &ConfigError{Reason: fmt.Sprintf("lead-time rule %d references unknown from-stage %d", rule.ID, rule.FromStageID)}
		}
		if _, ok := p.ByID(rule.ToStageID); !ok {
			return &ConfigError{Reason: fmt.Sprintf("lead-time rule %d references unknown to-stage %d", rule.ID, rule.ToStageID)}
		}
		if rule.Days < 0 {
			return &ConfigError{Reason: fmt.Sprintf("lead-time rule %d has negative days %d", rule.ID, rule.Days)}
		}
	}
	return nil
}
