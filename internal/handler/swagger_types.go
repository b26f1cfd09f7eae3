package handler

import (
	"encoding/json"

	"docmap/internal/domain"
)

// Swagger type definitions for API documentation.
// Request types double as binding targets for the handlers.

// --- Request Types ---

// StartSessionRequest represents the JSON body for starting a session without a file.
type StartSessionRequest struct {
	Hint string `json:"hint" example:"Invoice from ACME Corporation"`
}

// SetPartnerRequest represents the manual partner entry body.
type SetPartnerRequest struct {
	Name string             `json:"name" binding:"required" example:"ACME Corporation"`
	Type domain.PartnerType `json:"type" binding:"required" example:"Vendor"`
}

// SelectTemplateRequest represents the template selection body.
type SelectTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required" example:"t-1"`
}

// SelectRuleSetRequest represents the rule set selection body.
type SelectRuleSetRequest struct {
	RuleSetID string `json:"rule_set_id" binding:"required" example:"rs-1"`
}

// ParseRequest represents the optional parse body. Extraction holds
// extractor output keyed by source field name; when absent, values are
// generated from Seed.
type ParseRequest struct {
	Seed       string          `json:"seed" example:"demo"`
	Extraction json.RawMessage `json:"extraction" swaggertype:"object"`
}

// EditFieldRequest represents a field correction. An empty value is allowed.
type EditFieldRequest struct {
	Value *string `json:"value" binding:"required" example:"INV-2024-0042"`
}

// EmailExportRequest represents the email export body.
type EmailExportRequest struct {
	To string `json:"to" binding:"required" example:"ap@example.com"`
}

// TriggerRequest represents a downstream action request.
type TriggerRequest struct {
	Action string               `json:"action" binding:"required" example:"AutoVouch"`
	Config domain.TriggerConfig `json:"config"`
}

// SearchTemplatesRequest represents a free-text template search.
type SearchTemplatesRequest struct {
	Description string             `json:"description" binding:"required" example:"bill of lading for a freight shipment"`
	PartnerName string             `json:"partner_name" example:"ACME Corporation"`
	PartnerType domain.PartnerType `json:"partner_type" example:"Vendor"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// SearchTemplatesResponse lists the suggested template names.
type SearchTemplatesResponse struct {
	Suggestions []string `json:"suggestions" example:"Standard Invoice,Purchase Order"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
