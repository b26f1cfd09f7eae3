package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docmap/internal/domain"
)

// MockPartnerIdentifier is a mock implementation of port.PartnerIdentifier.
type MockPartnerIdentifier struct {
	mock.Mock
}

func (m *MockPartnerIdentifier) Identify(ctx context.Context, doc domain.SourceDocument) (*domain.Partner, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

// MockTemplateSuggester is a mock implementation of port.TemplateSuggester.
type MockTemplateSuggester struct {
	mock.Mock
}

func (m *MockTemplateSuggester) Suggest(ctx context.Context, partner domain.Partner, templates []domain.Template) (string, error) {
	args := m.Called(ctx, partner, templates)
	return args.String(0), args.Error(1)
}

// MockTemplateSearcher is a mock implementation of port.TemplateSearcher.
type MockTemplateSearcher struct {
	mock.Mock
}

func (m *MockTemplateSearcher) Search(ctx context.Context, description string, templates []domain.Template) ([]string, error) {
	args := m.Called(ctx, description, templates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
