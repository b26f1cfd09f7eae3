package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docmap/internal/domain"
	"docmap/internal/handler"
	"docmap/internal/service"
	"docmap/internal/trigger"
	"docmap/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, target string, body []byte, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if body != nil {
		c.Request, _ = http.NewRequest(method, target, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request, _ = http.NewRequest(method, target, http.NoBody)
	}
	c.Params = params
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func idParam(id uuid.UUID) gin.Param {
	return gin.Param{Key: "id", Value: id.String()}
}

func TestSessionHandler_Start_WithFile(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	sess := &service.Session{ID: uuid.New()}
	svc.On("Start", mock.Anything, mock.MatchedBy(func(in service.StartInput) bool {
		return in.File != nil && in.FileName == "invoice.pdf" && in.Hint == "acme" && in.Size > 0
	})).Return(sess, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "invoice.pdf")
	_, _ = part.Write([]byte("%PDF-1.4 test content"))
	_ = writer.WriteField("hint", "acme")
	_ = writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Start(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Start_HintOnly(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	svc.On("Start", mock.Anything, service.StartInput{Hint: "bill from globex"}).
		Return(&service.Session{ID: uuid.New()}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/sessions", []byte(`{"hint":"bill from globex"}`))
	h.Start(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Start_EmptyBody(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	svc.On("Start", mock.Anything, service.StartInput{}).Return(&service.Session{ID: uuid.New()}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/sessions", nil)
	h.Start(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Start_UnsupportedFile(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	svc.On("Start", mock.Anything, mock.Anything).Return(nil, domain.ErrUnsupportedFileType)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "notes.txt")
	_, _ = part.Write([]byte("plain text"))
	_ = writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sessions", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Start(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FILE_TYPE", decode(t, w).Error.Code)
}

func TestSessionHandler_Get_InvalidID(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	c, w := newContext(http.MethodGet, "/api/v1/sessions/nope", nil, gin.Param{Key: "id", Value: "nope"})
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, domain.ErrSessionNotFound)

	c, w := newContext(http.MethodGet, "/api/v1/sessions/"+id.String(), nil, idParam(id))
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SESSION_NOT_FOUND", decode(t, w).Error.Code)
}

func TestSessionHandler_SetPartner(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	partner := domain.Partner{Name: "ACME Corporation", Type: domain.PartnerTypeVendor}
	svc.On("SetPartner", mock.Anything, id, partner).
		Return(&service.Session{ID: id, Partner: &partner}, nil)

	c, w := newContext(http.MethodPut, "/", []byte(`{"name":"ACME Corporation","type":"Vendor"}`), idParam(id))
	h.SetPartner(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_SetPartner_MissingType(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	c, w := newContext(http.MethodPut, "/", []byte(`{"name":"ACME Corporation"}`), idParam(id))
	h.SetPartner(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
}

func TestSessionHandler_SelectRuleSet_Incompatible(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("SelectRuleSet", mock.Anything, id, "rs-9").Return(nil, domain.ErrIncompatibleRuleSet)

	c, w := newContext(http.MethodPut, "/", []byte(`{"rule_set_id":"rs-9"}`), idParam(id))
	h.SelectRuleSet(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INCOMPATIBLE_RULE_SET", decode(t, w).Error.Code)
}

func TestSessionHandler_Parse_NoBody(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Parse", mock.Anything, id, service.ParseInput{}).Return(&service.Session{ID: id}, nil)

	c, w := newContext(http.MethodPost, "/", nil, idParam(id))
	h.Parse(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Parse_WithExtraction(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Parse", mock.Anything, id, mock.MatchedBy(func(in service.ParseInput) bool {
		return in.Seed == "demo" && string(in.Extraction) == `{"header":{"Invoice No":"1"}}`
	})).Return(&service.Session{ID: id}, nil)

	c, w := newContext(http.MethodPost, "/", []byte(`{"seed":"demo","extraction":{"header":{"Invoice No":"1"}}}`), idParam(id))
	h.Parse(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Parse_RequiresRuleSet(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Parse", mock.Anything, id, service.ParseInput{}).Return(nil, domain.ErrRuleSetRequired)

	c, w := newContext(http.MethodPost, "/", nil, idParam(id))
	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "RULE_SET_REQUIRED", decode(t, w).Error.Code)
}

func TestSessionHandler_EditHeader_EmptyValueAllowed(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("EditHeader", mock.Anything, id, "pdh-1", "").Return(&service.Session{ID: id}, nil)

	c, w := newContext(http.MethodPatch, "/", []byte(`{"value":""}`), idParam(id), gin.Param{Key: "fieldId", Value: "pdh-1"})
	h.EditHeader(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_EditHeader_MissingValue(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	c, w := newContext(http.MethodPatch, "/", []byte(`{}`), idParam(id), gin.Param{Key: "fieldId", Value: "pdh-1"})
	h.EditHeader(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "EditHeader", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_EditItem(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("EditItem", mock.Anything, id, 1, "pdi-1-0", "7").Return(&service.Session{ID: id}, nil)

	c, w := newContext(http.MethodPatch, "/", []byte(`{"value":"7"}`),
		idParam(id), gin.Param{Key: "row", Value: "1"}, gin.Param{Key: "fieldId", Value: "pdi-1-0"})
	h.EditItem(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_ConfirmItem_BadRow(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	c, w := newContext(http.MethodPost, "/", nil,
		idParam(id), gin.Param{Key: "row", Value: "-1"}, gin.Param{Key: "fieldId", Value: "pdi-0-0"})
	h.ConfirmItem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionHandler_ConfirmHeader_FieldNotFound(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("ConfirmHeader", mock.Anything, id, "pdh-99").Return(nil, domain.ErrFieldNotFound)

	c, w := newContext(http.MethodPost, "/", nil, idParam(id), gin.Param{Key: "fieldId", Value: "pdh-99"})
	h.ConfirmHeader(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_ExportCSV(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("ExportCSV", mock.Anything, id).Return(&service.ExportFile{
		FileName:    "acme_20260101_120000.csv",
		ContentType: "text/csv",
		Data:        []byte("Field,Value\n"),
	}, nil)

	c, w := newContext(http.MethodGet, "/", nil, idParam(id))
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="acme_20260101_120000.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "Field,Value\n", w.Body.String())
}

func TestSessionHandler_ExportXLSX_NotParsed(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("ExportXLSX", mock.Anything, id).Return(nil, domain.ErrNotParsed)

	c, w := newContext(http.MethodGet, "/", nil, idParam(id))
	h.ExportXLSX(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DOCUMENT_NOT_PARSED", decode(t, w).Error.Code)
}

func TestSessionHandler_EmailExport(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("EmailExport", mock.Anything, id, "ap@example.com").Return(nil)

	c, w := newContext(http.MethodPost, "/", []byte(`{"to":"ap@example.com"}`), idParam(id))
	h.EmailExport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Trigger_Accepted(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	cfg := domain.TriggerConfig{Environment: domain.TriggerEnvDEV, ExchangeName: "docs", RoutingKey: "vouch"}
	record := &domain.TriggerRecord{ID: uuid.New(), ActionName: "AutoVouch", Config: cfg, Status: domain.TriggerStatusPending}
	svc.On("Trigger", mock.Anything, id, service.TriggerInput{Action: "AutoVouch", Config: cfg}).Return(record, nil)

	body := []byte(`{"action":"AutoVouch","config":{"environment":"DEV","exchange_name":"docs","routing_key":"vouch"}}`)
	c, w := newContext(http.MethodPost, "/", body, idParam(id))
	h.Trigger(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Trigger_QueueFull(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Trigger", mock.Anything, id, mock.Anything).
		Return(nil, fmt.Errorf("submit trigger: %w", trigger.ErrQueueFull))

	c, w := newContext(http.MethodPost, "/", []byte(`{"action":"AutoVouch"}`), idParam(id))
	h.Trigger(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "TRIGGER_UNAVAILABLE", decode(t, w).Error.Code)
}

func TestSessionHandler_AuditTrail_Paginated(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	entries := []domain.ReviewAuditEntry{{ID: uuid.New(), SessionID: id, Action: "header.edit"}}
	svc.On("AuditTrail", mock.Anything, id, 0, 5).Return(entries, 1, nil)

	c, w := newContext(http.MethodGet, "/?limit=5", nil, idParam(id))
	h.AuditTrail(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 5, resp.Meta.Limit)
}

func TestSessionHandler_Get_Timeout(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, context.DeadlineExceeded)

	c, w := newContext(http.MethodGet, "/", nil, idParam(id))
	h.Get(c)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestSessionHandler_Discard(t *testing.T) {
	svc := new(mocks.MockWorkflowService)
	h := handler.NewSessionHandler(svc)

	id := uuid.New()
	svc.On("Discard", mock.Anything, id).Return(nil)

	c, w := newContext(http.MethodDelete, "/", nil, idParam(id))
	h.Discard(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
