package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docmap/internal/domain"
	"docmap/internal/service"
)

// SessionHandler drives the review wizard: upload, partner, template, rule
// set, parse, review, export and trigger.
type SessionHandler struct {
	workflow service.WorkflowService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(workflow service.WorkflowService) *SessionHandler {
	return &SessionHandler{workflow: workflow}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// Start handles POST /api/v1/sessions
// @Summary Start a review session
// @Description Accepts an optional document (PDF, JPG, PNG) as multipart form data, or a JSON body with a text hint.
// @Tags sessions
// @Accept multipart/form-data,json
// @Produce json
// @Param file formData file false "Source document"
// @Param hint formData string false "Free-text hint used for partner identification"
// @Success 201 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody "Unsupported file type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	input := service.StartInput{}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		input.Hint = c.PostForm("hint")
		file, header, err := c.Request.FormFile("file")
		switch {
		case err == nil:
			defer func() { _ = file.Close() }()
			input.File = file
			input.FileName = header.Filename
			input.Size = header.Size
		case errors.Is(err, http.ErrMissingFile):
		default:
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed multipart body")
			return
		}
	} else if c.Request.ContentLength != 0 {
		var req StartSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
		input.Hint = req.Hint
	}

	sess, err := h.workflow.Start(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, sess)
}

// Get handles GET /api/v1/sessions/:id
// @Summary Get a review session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.Session}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.workflow.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Reset handles POST /api/v1/sessions/:id/reset
// @Summary Reset a session to its initial state
// @Description Keeps the uploaded document; clears partner, template, rule set, output and triggers.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.Session}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.workflow.Reset(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Discard handles DELETE /api/v1/sessions/:id
// @Summary Discard a review session
// @Description Removes the session and deletes its stored source document.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Discard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.workflow.Discard(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "session discarded"})
}

// IdentifyPartner handles POST /api/v1/sessions/:id/partner/identify
// @Summary Identify the trading partner from the document
// @Description When no partner is recognized the session is returned unchanged with partner_identified=false and the partner must be entered manually.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.Session}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/partner/identify [post]
func (h *SessionHandler) IdentifyPartner(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.workflow.IdentifyPartner(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// SetPartner handles PUT /api/v1/sessions/:id/partner
// @Summary Enter the trading partner manually
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body SetPartnerRequest true "Partner"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/partner [put]
func (h *SessionHandler) SetPartner(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SetPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and type are required")
		return
	}
	sess, err := h.workflow.SetPartner(c.Request.Context(), id, domain.Partner{Name: req.Name, Type: req.Type})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Templates handles GET /api/v1/sessions/:id/templates
// @Summary List the templates offered for the session's partner
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=[]domain.Template}
// @Failure 400 {object} ErrorResponseBody "Partner required"
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/templates [get]
func (h *SessionHandler) Templates(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	templates, err := h.workflow.Templates(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, templates)
}

// SuggestTemplate handles GET /api/v1/sessions/:id/templates/suggestion
// @Summary Suggest a template for the session's partner
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=service.TemplateSuggestion}
// @Failure 400 {object} ErrorResponseBody "Partner required"
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/templates/suggestion [get]
func (h *SessionHandler) SuggestTemplate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	suggestion, err := h.workflow.SuggestTemplate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, suggestion)
}

// SelectTemplate handles PUT /api/v1/sessions/:id/template
// @Summary Select the document template
// @Description The first compatible rule set is selected by default.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body SelectTemplateRequest true "Template"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/template [put]
func (h *SessionHandler) SelectTemplate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SelectTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "template_id is required")
		return
	}
	sess, err := h.workflow.SelectTemplate(c.Request.Context(), id, req.TemplateID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// SelectRuleSet handles PUT /api/v1/sessions/:id/rule-set
// @Summary Select the mapping rule set
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body SelectRuleSetRequest true "Rule set"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Failure 422 {object} ErrorResponseBody "Incompatible rule set"
// @Router /sessions/{id}/rule-set [put]
func (h *SessionHandler) SelectRuleSet(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req SelectRuleSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rule_set_id is required")
		return
	}
	sess, err := h.workflow.SelectRuleSet(c.Request.Context(), id, req.RuleSetID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Parse handles POST /api/v1/sessions/:id/parse
// @Summary Map the document with the selected rule set
// @Description Replaces the parsed output only when mapping succeeds.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body ParseRequest false "Extraction source"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/parse [post]
func (h *SessionHandler) Parse(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req ParseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid parse request body")
			return
		}
	}
	sess, err := h.workflow.Parse(c.Request.Context(), id, service.ParseInput{
		Seed:       req.Seed,
		Extraction: req.Extraction,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// EditHeader handles PATCH /api/v1/sessions/:id/header/:fieldId
// @Summary Correct a header field
// @Description A changed value confirms the field.
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param fieldId path string true "Header field ID (pdh-n)"
// @Param body body EditFieldRequest true "New value"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/header/{fieldId} [patch]
func (h *SessionHandler) EditHeader(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	value, ok := bindValue(c)
	if !ok {
		return
	}
	sess, err := h.workflow.EditHeader(c.Request.Context(), id, c.Param("fieldId"), value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// ConfirmHeader handles POST /api/v1/sessions/:id/header/:fieldId/confirm
// @Summary Confirm a header field
// @Tags review
// @Produce json
// @Param id path string true "Session ID"
// @Param fieldId path string true "Header field ID (pdh-n)"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/header/{fieldId}/confirm [post]
func (h *SessionHandler) ConfirmHeader(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.workflow.ConfirmHeader(c.Request.Context(), id, c.Param("fieldId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// EditItem handles PATCH /api/v1/sessions/:id/items/:row/:fieldId
// @Summary Correct an item field
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param row path int true "Zero-based item row"
// @Param fieldId path string true "Item field ID (pdi-row-j)"
// @Param body body EditFieldRequest true "New value"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/items/{row}/{fieldId} [patch]
func (h *SessionHandler) EditItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	row, ok := rowParam(c)
	if !ok {
		return
	}
	value, ok := bindValue(c)
	if !ok {
		return
	}
	sess, err := h.workflow.EditItem(c.Request.Context(), id, row, c.Param("fieldId"), value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// ConfirmItem handles POST /api/v1/sessions/:id/items/:row/:fieldId/confirm
// @Summary Confirm an item field
// @Tags review
// @Produce json
// @Param id path string true "Session ID"
// @Param row path int true "Zero-based item row"
// @Param fieldId path string true "Item field ID (pdi-row-j)"
// @Success 200 {object} Response{data=service.Session}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/items/{row}/{fieldId}/confirm [post]
func (h *SessionHandler) ConfirmItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	row, ok := rowParam(c)
	if !ok {
		return
	}
	sess, err := h.workflow.ConfirmItem(c.Request.Context(), id, row, c.Param("fieldId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// ExportCSV handles GET /api/v1/sessions/:id/export/csv
// @Summary Download the parsed output as CSV
// @Tags exports
// @Produce text/csv
// @Param id path string true "Session ID"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Not parsed"
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/export/csv [get]
func (h *SessionHandler) ExportCSV(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	file, err := h.workflow.ExportCSV(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	sendFile(c, file)
}

// ExportXLSX handles GET /api/v1/sessions/:id/export/xlsx
// @Summary Download the parsed output as an Excel workbook
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Not parsed"
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/export/xlsx [get]
func (h *SessionHandler) ExportXLSX(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	file, err := h.workflow.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	sendFile(c, file)
}

// EmailExport handles POST /api/v1/sessions/:id/export/email
// @Summary Email the CSV and Excel exports
// @Tags exports
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body EmailExportRequest true "Recipient"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/export/email [post]
func (h *SessionHandler) EmailExport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req EmailExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "to is required")
		return
	}
	if err := h.workflow.EmailExport(c.Request.Context(), id, req.To); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "export sent"})
}

// Trigger handles POST /api/v1/sessions/:id/triggers
// @Summary Request a downstream action with the reviewed output
// @Description The action is dispatched asynchronously; poll the trigger list for its outcome.
// @Tags triggers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body TriggerRequest true "Action and routing"
// @Success 202 {object} Response{data=domain.TriggerRecord}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Failure 503 {object} ErrorResponseBody "Dispatch queue full"
// @Router /sessions/{id}/triggers [post]
func (h *SessionHandler) Trigger(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "action is required")
		return
	}
	record, err := h.workflow.Trigger(c.Request.Context(), id, service.TriggerInput{
		Action: req.Action,
		Config: req.Config,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, record)
}

// ListTriggers handles GET /api/v1/sessions/:id/triggers
// @Summary List the session's downstream action requests
// @Tags triggers
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} Response{data=[]domain.TriggerRecord}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/triggers [get]
func (h *SessionHandler) ListTriggers(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	records, err := h.workflow.ListTriggers(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, records)
}

// AuditTrail handles GET /api/v1/sessions/:id/audit
// @Summary List the session's review audit trail
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.ReviewAuditEntry,meta=PagMeta}
// @Failure 404 {object} ErrorResponseBody
// @Router /sessions/{id}/audit [get]
func (h *SessionHandler) AuditTrail(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	entries, total, err := h.workflow.AuditTrail(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

func rowParam(c *gin.Context) (int, bool) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil || row < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "row must be a non-negative integer")
		return 0, false
	}
	return row, true
}

func bindValue(c *gin.Context) (string, bool) {
	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "value is required")
		return "", false
	}
	return *req.Value, true
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
