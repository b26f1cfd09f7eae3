package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docmap/internal/domain"
	"docmap/internal/service"
)

// MockWorkflowService is a mock implementation of service.WorkflowService.
type MockWorkflowService struct {
	mock.Mock
}

func sessionResult(args mock.Arguments) (*service.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockWorkflowService) Start(ctx context.Context, input service.StartInput) (*service.Session, error) {
	return sessionResult(m.Called(ctx, input))
}

func (m *MockWorkflowService) Get(ctx context.Context, id uuid.UUID) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id))
}

func (m *MockWorkflowService) Reset(ctx context.Context, id uuid.UUID) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id))
}

func (m *MockWorkflowService) Discard(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkflowService) IdentifyPartner(ctx context.Context, id uuid.UUID) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id))
}

func (m *MockWorkflowService) SetPartner(ctx context.Context, id uuid.UUID, partner domain.Partner) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, partner))
}

func (m *MockWorkflowService) Templates(ctx context.Context, id uuid.UUID) ([]domain.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Template), args.Error(1)
}

func (m *MockWorkflowService) SuggestTemplate(ctx context.Context, id uuid.UUID) (*service.TemplateSuggestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TemplateSuggestion), args.Error(1)
}

func (m *MockWorkflowService) SearchTemplates(ctx context.Context, description string, partner *domain.Partner) ([]string, error) {
	args := m.Called(ctx, description, partner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockWorkflowService) SelectTemplate(ctx context.Context, id uuid.UUID, templateID string) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, templateID))
}

func (m *MockWorkflowService) SelectRuleSet(ctx context.Context, id uuid.UUID, ruleSetID string) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, ruleSetID))
}

func (m *MockWorkflowService) Parse(ctx context.Context, id uuid.UUID, input service.ParseInput) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, input))
}

func (m *MockWorkflowService) EditHeader(ctx context.Context, id uuid.UUID, fieldID, value string) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, fieldID, value))
}

func (m *MockWorkflowService) ConfirmHeader(ctx context.Context, id uuid.UUID, fieldID string) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, fieldID))
}

func (m *MockWorkflowService) EditItem(ctx context.Context, id uuid.UUID, row int, fieldID, value string) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, row, fieldID, value))
}

func (m *MockWorkflowService) ConfirmItem(ctx context.Context, id uuid.UUID, row int, fieldID string) (*service.Session, error) {
	return sessionResult(m.Called(ctx, id, row, fieldID))
}

func (m *MockWorkflowService) ExportCSV(ctx context.Context, id uuid.UUID) (*service.ExportFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockWorkflowService) ExportXLSX(ctx context.Context, id uuid.UUID) (*service.ExportFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockWorkflowService) EmailExport(ctx context.Context, id uuid.UUID, to string) error {
	args := m.Called(ctx, id, to)
	return args.Error(0)
}

func (m *MockWorkflowService) Trigger(ctx context.Context, id uuid.UUID, input service.TriggerInput) (*domain.TriggerRecord, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TriggerRecord), args.Error(1)
}

func (m *MockWorkflowService) ListTriggers(ctx context.Context, id uuid.UUID) ([]domain.TriggerRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TriggerRecord), args.Error(1)
}

func (m *MockWorkflowService) AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.ReviewAuditEntry, int, error) {
	args := m.Called(ctx, id, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewAuditEntry), args.Int(1), args.Error(2)
}
