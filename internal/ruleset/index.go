package ruleset

import (
	"docmap/internal/domain"
)

// Index binds templates to the rule sets they support. Templates are
// read-only reference data; rule set existence is checked against the store
// on every lookup.
type Index struct {
	templates []domain.Template
	byID      map[string]int
	store     *Store
}

// NewIndex builds an Index over the given templates.
func NewIndex(templates []domain.Template, store *Store) *Index {
	idx := &Index{
		templates: append([]domain.Template{}, templates...),
		byID:      make(map[string]int, len(templates)),
		store:     store,
	}
	for i, t := range idx.templates {
		idx.byID[t.ID] = i
	}
	return idx
}

// Template returns the template with the given id.
func (x *Index) Template(id string) (*domain.Template, error) {
	i, ok := x.byID[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	t := x.templates[i]
	return &t, nil
}

// Templates returns every template in catalog order.
func (x *Index) Templates() []domain.Template {
	return append([]domain.Template{}, x.templates...)
}

// VisibleTemplates returns the templates offered for the partner: those without
// a partner restriction plus those restricted to this partner.
func (x *Index) VisibleTemplates(p domain.Partner) []domain.Template {
	out := []domain.Template{}
	for i := range x.templates {
		if x.templates[i].VisibleTo(p) {
			out = append(out, x.templates[i])
		}
	}
	return out
}

// CompatibleRuleSets returns the existing rule sets a template supports, in template order.
func (x *Index) CompatibleRuleSets(templateID string) ([]domain.MappingRuleSet, error) {
	t, err := x.Template(templateID)
	if err != nil {
		return nil, err
	}
	out := []domain.MappingRuleSet{}
	for _, id := range t.CompatibleRuleSetIDs {
		rs, err := x.store.Get(id)
		if err != nil {
			continue
		}
		out = append(out, *rs)
	}
	return out, nil
}

// DefaultRuleSet returns the first compatible rule set id of a template, or "".
func (x *Index) DefaultRuleSet(templateID string) (string, error) {
	t, err := x.Template(templateID)
	if err != nil {
		return "", err
	}
	for _, id := range t.CompatibleRuleSetIDs {
		if x.store.Has(id) {
			return id, nil
		}
	}
	return "", nil
}

// IsCompatible reports whether the template lists the rule set.
func (x *Index) IsCompatible(templateID, ruleSetID string) bool {
	t, err := x.Template(templateID)
	if err != nil {
		return false
	}
	for _, id := range t.CompatibleRuleSetIDs {
		if id == ruleSetID {
			return true
		}
	}
	return false
}
