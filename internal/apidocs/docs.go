// Package apidocs registers the OpenAPI document served under /swagger.
// Regenerate from the handler annotations with:
//
//	swag init -g cmd/server/main.go -o internal/apidocs --parseInternal
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/biz-models": {"get": {"tags": ["catalog"], "summary": "List business models", "responses": {"200": {"description": "OK"}}}},
        "/biz-models/{id}": {"get": {"tags": ["catalog"], "summary": "Get a business model", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/biz-models/{id}/target-paths": {"get": {"tags": ["catalog"], "summary": "List the target field paths of a business model", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/templates": {"get": {"tags": ["catalog"], "summary": "List document templates", "parameters": [{"type": "string", "name": "partner_name", "in": "query"}, {"type": "string", "name": "partner_type", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/templates/search": {"post": {"tags": ["catalog"], "summary": "Suggest templates from a free-text description", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/rule-sets": {"get": {"tags": ["rule-sets"], "summary": "List mapping rule sets", "responses": {"200": {"description": "OK"}}}},
        "/rule-sets/{id}": {
            "get": {"tags": ["rule-sets"], "summary": "Get a mapping rule set", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["rule-sets"], "summary": "Replace a mapping rule set", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/rule-sets/{id}/header-rules": {"post": {"tags": ["rule-sets"], "summary": "Add or update a header rule", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/rule-sets/{id}/header-rules/{ruleId}": {"delete": {"tags": ["rule-sets"], "summary": "Delete a header rule", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "ruleId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/rule-sets/{id}/item-rules/{group}": {"post": {"tags": ["rule-sets"], "summary": "Add or update an item rule", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "group", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/rule-sets/{id}/item-rules/{group}/{ruleId}": {"delete": {"tags": ["rule-sets"], "summary": "Delete an item rule", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "group", "in": "path", "required": true}, {"type": "string", "name": "ruleId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/sessions": {"post": {"tags": ["sessions"], "summary": "Start a review session", "consumes": ["multipart/form-data", "application/json"], "parameters": [{"type": "file", "name": "file", "in": "formData"}, {"type": "string", "name": "hint", "in": "formData"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "413": {"description": "Request Entity Too Large"}}}},
        "/sessions/{id}": {
            "get": {"tags": ["sessions"], "summary": "Get a review session", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["sessions"], "summary": "Discard a review session", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sessions/{id}/reset": {"post": {"tags": ["sessions"], "summary": "Reset a session to its initial state", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/partner/identify": {"post": {"tags": ["sessions"], "summary": "Identify the trading partner from the document", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/partner": {"put": {"tags": ["sessions"], "summary": "Enter the trading partner manually", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/sessions/{id}/templates": {"get": {"tags": ["sessions"], "summary": "List the templates offered for the session's partner", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/templates/suggestion": {"get": {"tags": ["sessions"], "summary": "Suggest a template for the session's partner", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/template": {"put": {"tags": ["sessions"], "summary": "Select the document template", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/rule-set": {"put": {"tags": ["sessions"], "summary": "Select the mapping rule set", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}},
        "/sessions/{id}/parse": {"post": {"tags": ["sessions"], "summary": "Map the document with the selected rule set", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/sessions/{id}/header/{fieldId}": {"patch": {"tags": ["review"], "summary": "Correct a header field", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "fieldId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/header/{fieldId}/confirm": {"post": {"tags": ["review"], "summary": "Confirm a header field", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "string", "name": "fieldId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/items/{row}/{fieldId}": {"patch": {"tags": ["review"], "summary": "Correct an item field", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "row", "in": "path", "required": true}, {"type": "string", "name": "fieldId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/items/{row}/{fieldId}/confirm": {"post": {"tags": ["review"], "summary": "Confirm an item field", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "row", "in": "path", "required": true}, {"type": "string", "name": "fieldId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/export/csv": {"get": {"tags": ["exports"], "summary": "Download the parsed output as CSV", "produces": ["text/csv"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/export/xlsx": {"get": {"tags": ["exports"], "summary": "Download the parsed output as an Excel workbook", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/export/email": {"post": {"tags": ["exports"], "summary": "Email the CSV and Excel exports", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/sessions/{id}/triggers": {
            "post": {"tags": ["triggers"], "summary": "Request a downstream action with the reviewed output", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"202": {"description": "Accepted"}, "503": {"description": "Service Unavailable"}}},
            "get": {"tags": ["triggers"], "summary": "List the session's downstream action requests", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/sessions/{id}/audit": {"get": {"tags": ["sessions"], "summary": "List the session's review audit trail", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "offset", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DocMap API",
	Description:      "Document-to-business-model mapping and review service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
