package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docmap/internal/domain"
	"docmap/internal/middleware"
	"docmap/internal/trigger"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var target *domain.InvalidTargetFieldError
	if errors.As(err, &target) {
		return http.StatusUnprocessableEntity, "INVALID_TARGET_FIELD", target.Error()
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "review session not found"
	case errors.Is(err, domain.ErrRuleSetNotFound):
		return http.StatusNotFound, "RULE_SET_NOT_FOUND", "rule set not found"
	case errors.Is(err, domain.ErrRuleNotFound):
		return http.StatusNotFound, "RULE_NOT_FOUND", "rule not found"
	case errors.Is(err, domain.ErrItemGroupNotFound):
		return http.StatusNotFound, "ITEM_GROUP_NOT_FOUND", "item rule group not found"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found"
	case errors.Is(err, domain.ErrUnknownBizModel):
		return http.StatusNotFound, "BIZ_MODEL_NOT_FOUND", "business model not found"
	case errors.Is(err, domain.ErrFieldNotFound):
		return http.StatusNotFound, "FIELD_NOT_FOUND", "parsed field not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrDuplicateRuleSet):
		return http.StatusConflict, "DUPLICATE_RULE_SET", "rule set id already exists"
	case errors.Is(err, domain.ErrDuplicateRuleID):
		return http.StatusConflict, "DUPLICATE_RULE_ID", err.Error()
	case errors.Is(err, domain.ErrMissingSourceField):
		return http.StatusBadRequest, "INVALID_RULE", err.Error()
	case errors.Is(err, domain.ErrIncompatibleRuleSet):
		return http.StatusUnprocessableEntity, "INCOMPATIBLE_RULE_SET", "rule set is not compatible with the selected template"
	case errors.Is(err, domain.ErrPartnerRequired):
		return http.StatusBadRequest, "PARTNER_REQUIRED", "partner must be identified or entered first"
	case errors.Is(err, domain.ErrTemplateRequired):
		return http.StatusBadRequest, "TEMPLATE_REQUIRED", "template must be selected first"
	case errors.Is(err, domain.ErrRuleSetRequired):
		return http.StatusBadRequest, "RULE_SET_REQUIRED", "rule set must be selected first"
	case errors.Is(err, domain.ErrNotParsed):
		return http.StatusBadRequest, "DOCUMENT_NOT_PARSED", "document has not been parsed yet"
	case errors.Is(err, domain.ErrInvalidPartner):
		return http.StatusBadRequest, "INVALID_PARTNER", "partner name and type (Vendor or Customer) are required"
	case errors.Is(err, domain.ErrInvalidTrigger):
		return http.StatusBadRequest, "INVALID_TRIGGER_CONFIG", err.Error()
	case errors.Is(err, domain.ErrUnknownAction):
		return http.StatusBadRequest, "UNKNOWN_ACTION", "unknown action; allowed: AutoQuote, AutoVouch, AutoBilling, AutoSPA"
	case errors.Is(err, domain.ErrInvalidRecipient):
		return http.StatusBadRequest, "INVALID_RECIPIENT", "recipient email address is invalid"
	case errors.Is(err, domain.ErrInvalidExtraction):
		return http.StatusBadRequest, "INVALID_EXTRACTION", "extraction document does not match expected format"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, trigger.ErrQueueFull), errors.Is(err, trigger.ErrWorkerStopped):
		return http.StatusServiceUnavailable, "TRIGGER_UNAVAILABLE", "trigger dispatch is temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "the operation timed out"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		middleware.LoggerFrom(c).Error("internal error", zap.String("code", code), zap.Error(err))
	}
	_ = c.Error(err)
	RespondError(c, status, code, msg)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
