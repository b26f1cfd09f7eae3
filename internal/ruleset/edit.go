package ruleset

import (
	"docmap/internal/domain"
)

// Point edits run through edit: copy the current value, apply one change,
// and hand the copy back to the store while holding the edit lock.

// UpsertHeaderRule edits the header rule with rule.ID, or appends it if absent.
func (s *Store) UpsertHeaderRule(ruleSetID string, rule domain.MappingRule) (*domain.MappingRuleSet, error) {
	return s.edit(ruleSetID, func(rs *domain.MappingRuleSet) error {
		rs.HeaderRules = upsert(rs.HeaderRules, rule)
		return nil
	})
}

// UpsertItemRule edits or appends a rule within the item group at groupIndex.
func (s *Store) UpsertItemRule(ruleSetID string, groupIndex int, rule domain.MappingRule) (*domain.MappingRuleSet, error) {
	return s.edit(ruleSetID, func(rs *domain.MappingRuleSet) error {
		if groupIndex < 0 || groupIndex >= len(rs.ItemRules) {
			return domain.ErrItemGroupNotFound
		}
		rs.ItemRules[groupIndex].Rules = upsert(rs.ItemRules[groupIndex].Rules, rule)
		return nil
	})
}

// DeleteHeaderRule removes the header rule with the given id.
func (s *Store) DeleteHeaderRule(ruleSetID, ruleID string) (*domain.MappingRuleSet, error) {
	return s.edit(ruleSetID, func(rs *domain.MappingRuleSet) error {
		rules, ok := remove(rs.HeaderRules, ruleID)
		if !ok {
			return domain.ErrRuleNotFound
		}
		rs.HeaderRules = rules
		return nil
	})
}

// DeleteItemRule removes a rule from the item group at groupIndex.
func (s *Store) DeleteItemRule(ruleSetID string, groupIndex int, ruleID string) (*domain.MappingRuleSet, error) {
	return s.edit(ruleSetID, func(rs *domain.MappingRuleSet) error {
		if groupIndex < 0 || groupIndex >= len(rs.ItemRules) {
			return domain.ErrItemGroupNotFound
		}
		rules, ok := remove(rs.ItemRules[groupIndex].Rules, ruleID)
		if !ok {
			return domain.ErrRuleNotFound
		}
		rs.ItemRules[groupIndex].Rules = rules
		return nil
	})
}

func upsert(rules []domain.MappingRule, rule domain.MappingRule) []domain.MappingRule {
	for i := range rules {
		if rules[i].ID == rule.ID {
			rules[i] = rule
			return rules
		}
	}
	return append(rules, rule)
}

func remove(rules []domain.MappingRule, id string) ([]domain.MappingRule, bool) {
	out := make([]domain.MappingRule, 0, len(rules))
	found := false
	for _, r := range rules {
		if r.ID == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	return out, found
}
