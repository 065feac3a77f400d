// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/ledger_backend/main.go -o cmd/docs
package docs

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
        "/accounts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Create a new account", "responses": {"201": {"description": "Created"}}}
        },
        "/accounts/lookup": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Find a default account", "responses": {"200": {"description": "OK"}}}
        },
        "/accounts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["accounts"], "summary": "Get an account by ID", "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "List journal entries", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Create a journal entry", "responses": {"201": {"description": "Created"}}}
        },
        "/journal-entries/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Get a journal entry", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Update a draft journal entry", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Delete a draft journal entry", "responses": {"204": {"description": "No Content"}}}
        },
        "/journal-entries/{id}/post": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Post a journal entry", "responses": {"200": {"description": "OK"}}}
        },
        "/journal-entries/{id}/void": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["journal-entries"], "summary": "Void a posted journal entry", "responses": {"200": {"description": "OK"}}}
        },
        "/ledger": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "General ledger", "responses": {"200": {"description": "OK"}}}
        },
        "/ledger/accounts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Account ledger", "responses": {"200": {"description": "OK"}}}
        },
        "/ledger/accounts/{id}/rebuild": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Rebuild an account's projection", "responses": {"200": {"description": "OK"}}}
        },
        "/ledger/sources": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Project a sub-ledger transaction", "responses": {"204": {"description": "No Content"}}}
        },
        "/ledger/sources/{type}/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["ledger"], "summary": "Remove a sub-ledger transaction", "responses": {"204": {"description": "No Content"}}}
        },
        "/reports/ledger": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Generate ledger report", "responses": {"200": {"description": "OK"}}}
        },
        "/reports/ledger/export": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Export ledger report", "responses": {"200": {"description": "OK"}}}
        },
        "/subledgers/expenses": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["subledgers"], "summary": "Record an expense", "responses": {"201": {"description": "Created"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ledger Backend API",
	Description:      "Double-entry ledger engine: journal entries, posting, general ledger projection and reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
