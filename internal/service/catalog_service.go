package service

import (
	"context"

	"go.uber.org/zap"

	"docmap/internal/catalog"
	"docmap/internal/domain"
	"docmap/internal/ruleset"
	"docmap/internal/schema"
)

// CatalogService defines the contract for browsing reference data and
// configuring mapping rule sets.
type CatalogService interface {
	BizModels(ctx context.Context) []domain.BizModel
	BizModel(ctx context.Context, id string) (*domain.BizModel, error)
	TargetPaths(ctx context.Context, bizModelID string) (*schema.TargetPaths, error)
	Templates(ctx context.Context, partner *domain.Partner) []domain.Template

	ListRuleSets(ctx context.Context) []domain.MappingRuleSet
	GetRuleSet(ctx context.Context, id string) (*domain.MappingRuleSet, error)
	ReplaceRuleSet(ctx context.Context, rs *domain.MappingRuleSet) (*domain.MappingRuleSet, error)
	UpsertHeaderRule(ctx context.Context, ruleSetID string, rule domain.MappingRule) (*domain.MappingRuleSet, error)
	UpsertItemRule(ctx context.Context, ruleSetID string, group int, rule domain.MappingRule) (*domain.MappingRuleSet, error)
	DeleteHeaderRule(ctx context.Context, ruleSetID, ruleID string) (*domain.MappingRuleSet, error)
	DeleteItemRule(ctx context.Context, ruleSetID string, group int, ruleID string) (*domain.MappingRuleSet, error)
}

type catalogService struct {
	catalog *catalog.Catalog
	store   *ruleset.Store
	index   *ruleset.Index
	logger  *zap.Logger
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(cat *catalog.Catalog, store *ruleset.Store, index *ruleset.Index, logger *zap.Logger) CatalogService {
	return &catalogService{
		catalog: cat,
		store:   store,
		index:   index,
		logger:  logger.Named("catalog"),
	}
}

func (s *catalogService) BizModels(_ context.Context) []domain.BizModel {
	return append([]domain.BizModel{}, s.catalog.BizModels...)
}

func (s *catalogService) BizModel(_ context.Context, id string) (*domain.BizModel, error) {
	bm, ok := s.catalog.BizModel(id)
	if !ok {
		return nil, domain.ErrUnknownBizModel
	}
	return bm, nil
}

func (s *catalogService) TargetPaths(_ context.Context, bizModelID string) (*schema.TargetPaths, error) {
	return s.store.TargetPaths(bizModelID)
}

func (s *catalogService) Templates(_ context.Context, partner *domain.Partner) []domain.Template {
	if partner == nil {
		return s.index.Templates()
	}
	return s.index.VisibleTemplates(*partner)
}

func (s *catalogService) ListRuleSets(_ context.Context) []domain.MappingRuleSet {
	return s.store.List()
}

func (s *catalogService) GetRuleSet(_ context.Context, id string) (*domain.MappingRuleSet, error) {
	return s.store.Get(id)
}

func (s *catalogService) ReplaceRuleSet(_ context.Context, rs *domain.MappingRuleSet) (*domain.MappingRuleSet, error) {
	if err := s.store.Replace(rs); err != nil {
		s.logRejected(rs.ID, err)
		return nil, err
	}
	return s.store.Get(rs.ID)
}

func (s *catalogService) UpsertHeaderRule(_ context.Context, ruleSetID string, rule domain.MappingRule) (*domain.MappingRuleSet, error) {
	rs, err := s.store.UpsertHeaderRule(ruleSetID, rule)
	if err != nil {
		s.logRejected(ruleSetID, err)
	}
	return rs, err
}

func (s *catalogService) UpsertItemRule(_ context.Context, ruleSetID string, group int, rule domain.MappingRule) (*domain.MappingRuleSet, error) {
	rs, err := s.store.UpsertItemRule(ruleSetID, group, rule)
	if err != nil {
		s.logRejected(ruleSetID, err)
	}
	return rs, err
}

func (s *catalogService) DeleteHeaderRule(_ context.Context, ruleSetID, ruleID string) (*domain.MappingRuleSet, error) {
	return s.store.DeleteHeaderRule(ruleSetID, ruleID)
}

func (s *catalogService) DeleteItemRule(_ context.Context, ruleSetID string, group int, ruleID string) (*domain.MappingRuleSet, error) {
	return s.store.DeleteItemRule(ruleSetID, group, ruleID)
}

func (s *catalogService) logRejected(ruleSetID string, err error) {
	s.logger.Info("rule set write rejected", zap.String("rule_set_id", ruleSetID), zap.Error(err))
}
