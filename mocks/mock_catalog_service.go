package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docmap/internal/domain"
	"docmap/internal/schema"
)

// MockCatalogService is a mock implementation of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func ruleSetResult(args mock.Arguments) (*domain.MappingRuleSet, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappingRuleSet), args.Error(1)
}

func (m *MockCatalogService) BizModels(ctx context.Context) []domain.BizModel {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.BizModel)
}

func (m *MockCatalogService) BizModel(ctx context.Context, id string) (*domain.BizModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BizModel), args.Error(1)
}

func (m *MockCatalogService) TargetPaths(ctx context.Context, bizModelID string) (*schema.TargetPaths, error) {
	args := m.Called(ctx, bizModelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.TargetPaths), args.Error(1)
}

func (m *MockCatalogService) Templates(ctx context.Context, partner *domain.Partner) []domain.Template {
	args := m.Called(ctx, partner)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Template)
}

func (m *MockCatalogService) ListRuleSets(ctx context.Context) []domain.MappingRuleSet {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.MappingRuleSet)
}

func (m *MockCatalogService) GetRuleSet(ctx context.Context, id string) (*domain.MappingRuleSet, error) {
	return ruleSetResult(m.Called(ctx, id))
}

func (m *MockCatalogService) ReplaceRuleSet(ctx context.Context, rs *domain.MappingRuleSet) (*domain.MappingRuleSet, error) {
	return ruleSetResult(m.Called(ctx, rs))
}

func (m *MockCatalogService) UpsertHeaderRule(ctx context.Context, ruleSetID string, rule domain.MappingRule) (*domain.MappingRuleSet, error) {
	return ruleSetResult(m.Called(ctx, ruleSetID, rule))
}

func (m *MockCatalogService) UpsertItemRule(ctx context.Context, ruleSetID string, group int, rule domain.MappingRule) (*domain.MappingRuleSet, error) {
	return ruleSetResult(m.Called(ctx, ruleSetID, group, rule))
}

func (m *MockCatalogService) DeleteHeaderRule(ctx context.Context, ruleSetID, ruleID string) (*domain.MappingRuleSet, error) {
	return ruleSetResult(m.Called(ctx, ruleSetID, ruleID))
}

func (m *MockCatalogService) DeleteItemRule(ctx context.Context, ruleSetID string, group int, ruleID string) (*domain.MappingRuleSet, error) {
	return ruleSetResult(m.Called(ctx, ruleSetID, group, ruleID))
}
