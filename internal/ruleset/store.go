// Package ruleset owns the mutable collection of mapping rule sets and the
// template compatibility index built on top of it.
package ruleset

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"docmap/internal/domain"
	"docmap/internal/schema"
)

// BizModelLookup resolves business models by id.
type BizModelLookup interface {
	BizModel(id string) (*domain.BizModel, bool)
}

// Store holds rule sets keyed by id. Every write is validated against the
// target paths of the rule set's business model and then swapped in whole,
// so readers only ever see a complete pre-edit or post-edit value.
type Store struct {
	// editMu serializes read-modify-write cycles; mu guards the map itself.
	editMu sync.Mutex
	mu     sync.RWMutex
	sets   map[string]*domain.MappingRuleSet
	order  []string
	models BizModelLookup
	logger *zap.Logger

	pathsMu sync.Mutex
	paths   map[string]*schema.TargetPaths
}

// NewStore creates an empty Store validating against the given business models.
func NewStore(models BizModelLookup, logger *zap.Logger) *Store {
	return &Store{
		sets:   make(map[string]*domain.MappingRuleSet),
		models: models,
		logger: logger.Named("ruleset"),
		paths:  make(map[string]*schema.TargetPaths),
	}
}

// Get returns a deep copy of the rule set with the given id.
func (s *Store) Get(id string) (*domain.MappingRuleSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs, ok := s.sets[id]
	if !ok {
		return nil, domain.ErrRuleSetNotFound
	}
	return rs.Clone(), nil
}

// Has reports whether a rule set with the given id exists.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[id]
	return ok
}

// List returns copies of all rule sets in insertion order.
func (s *Store) List() []domain.MappingRuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MappingRuleSet, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.sets[id].Clone())
	}
	return out
}

// Add registers a new rule set after validating it.
func (s *Store) Add(rs *domain.MappingRuleSet) error {
	if err := s.Validate(rs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sets[rs.ID]; exists {
		return fmt.Errorf("adding rule set %s: %w", rs.ID, domain.ErrDuplicateRuleSet)
	}
	s.sets[rs.ID] = rs.Clone()
	s.order = append(s.order, rs.ID)
	s.logger.Debug("rule set added", zap.String("rule_set_id", rs.ID))
	return nil
}

// Replace validates rs and swaps it in for the existing rule set with the same id.
// A rejected write leaves the stored value untouched.
func (s *Store) Replace(rs *domain.MappingRuleSet) error {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	return s.replaceLocked(rs)
}

// edit applies fn to a copy of the rule set and stores the result. The whole
// cycle holds editMu so concurrent edits cannot drop each other's changes.
func (s *Store) edit(id string, fn func(rs *domain.MappingRuleSet) error) (*domain.MappingRuleSet, error) {
	s.editMu.Lock()
	defer s.editMu.Unlock()
	rs, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := fn(rs); err != nil {
		return nil, err
	}
	if err := s.replaceLocked(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *Store) replaceLocked(rs *domain.MappingRuleSet) error {
	if err := s.Validate(rs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sets[rs.ID]; !exists {
		return domain.ErrRuleSetNotFound
	}
	s.sets[rs.ID] = rs.Clone()
	s.logger.Info("rule set replaced",
		zap.String("rule_set_id", rs.ID),
		zap.Int("header_rules", len(rs.HeaderRules)),
		zap.Int("item_groups", len(rs.ItemRules)))
	return nil
}

// TargetPaths returns the resolved target paths for a business model.
func (s *Store) TargetPaths(bizModelID string) (*schema.TargetPaths, error) {
	s.pathsMu.Lock()
	defer s.pathsMu.Unlock()
	if tp, ok := s.paths[bizModelID]; ok {
		return tp, nil
	}
	model, ok := s.models.BizModel(bizModelID)
	if !ok {
		return nil, fmt.Errorf("resolving %s: %w", bizModelID, domain.ErrUnknownBizModel)
	}
	tp := schema.Resolve(model.Schema)
	s.paths[bizModelID] = tp
	return tp, nil
}

// Validate checks rs against the schema-resolved paths of its business model.
func (s *Store) Validate(rs *domain.MappingRuleSet) error {
	tp, err := s.TargetPaths(rs.BizModelID)
	if err != nil {
		return err
	}
	if err := checkRules(rs.HeaderRules); err != nil {
		return err
	}
	for _, rule := range rs.HeaderRules {
		if !tp.HasHeader(rule.TargetField) {
			return &domain.InvalidTargetFieldError{Path: rule.TargetField, Scope: domain.ScopeHeader}
		}
	}
	for _, group := range rs.ItemRules {
		if !tp.HasArray(group.TargetArray) {
			return &domain.InvalidTargetFieldError{Path: group.TargetArray + schema.ItemMarker, Scope: group.TargetArray}
		}
		if err := checkRules(group.Rules); err != nil {
			return err
		}
		for _, rule := range group.Rules {
			if !tp.HasItem(group.TargetArray, rule.TargetField) {
				return &domain.InvalidTargetFieldError{Path: rule.TargetField, Scope: group.TargetArray}
			}
		}
	}
	return nil
}

func checkRules(rules []domain.MappingRule) error {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if strings.TrimSpace(r.SourceField) == "" {
			return fmt.Errorf("rule %q: %w", r.ID, domain.ErrMissingSourceField)
		}
		if seen[r.ID] {
			return fmt.Errorf("rule %q: %w", r.ID, domain.ErrDuplicateRuleID)
		}
		seen[r.ID] = true
	}
	return nil
}
