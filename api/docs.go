// Package api registers the OpenAPI document of the API with swag.
//
// The document is regenerated from the handler annotations with
// "swag init --parseDependency --output api".
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "tags": [
        {"name": "General"},
        {"name": "v1"},
        {"name": "Contracts"},
        {"name": "Sub-elements"},
        {"name": "Alerts"},
        {"name": "Configurations"},
        {"name": "Users"},
        {"name": "Dashboard"}
    ],
    "paths": {
        "/": {"get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK"}}}},
        "/healthz": {"get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "500": {"description": "Internal Server Error"}}}},
        "/version": {"get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}}},
        "/v1": {
            "get": {"tags": ["v1"], "summary": "v1 API", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["v1"], "summary": "Delete everything", "parameters": [{"type": "string", "name": "confirm", "in": "query"}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Bad Request"}}}
        },
        "/v1/contracts": {
            "get": {"tags": ["Contracts"], "summary": "List contracts", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Contracts"], "summary": "Create contracts", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/contracts/export": {"get": {"tags": ["Contracts"], "summary": "Export contracts", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "OK"}}}},
        "/v1/contracts/{id}": {
            "get": {"tags": ["Contracts"], "summary": "Get contract", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"tags": ["Contracts"], "summary": "Update contract", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "delete": {"tags": ["Contracts"], "summary": "Delete contract", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/contracts/{id}/statement": {"get": {"tags": ["Contracts"], "summary": "Get contract statement", "produces": ["application/pdf"], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/v1/sub-elements": {
            "get": {"tags": ["Sub-elements"], "summary": "List sub-elements", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Sub-elements"], "summary": "Post sub-elements", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/v1/sub-elements/{id}": {
            "get": {"tags": ["Sub-elements"], "summary": "Get sub-element", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Sub-elements"], "summary": "Update sub-element", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/alerts": {"get": {"tags": ["Alerts"], "summary": "List alerts", "responses": {"200": {"description": "OK"}}}},
        "/v1/alerts/scan": {"post": {"tags": ["Alerts"], "summary": "Scan contracts for alerts", "responses": {"200": {"description": "OK"}}}},
        "/v1/alerts/{id}": {
            "get": {"tags": ["Alerts"], "summary": "Get alert", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Alerts"], "summary": "Update alert", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Alerts"], "summary": "Delete alert", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/configurations": {"get": {"tags": ["Configurations"], "summary": "List configurations", "responses": {"200": {"description": "OK"}}}},
        "/v1/configurations/{key}": {
            "get": {"tags": ["Configurations"], "summary": "Get configuration", "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Configurations"], "summary": "Set configuration", "parameters": [{"type": "string", "name": "key", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "201": {"description": "Created"}}}
        },
        "/v1/users": {
            "get": {"tags": ["Users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Users"], "summary": "Create users", "responses": {"201": {"description": "Created"}}}
        },
        "/v1/users/{id}": {
            "get": {"tags": ["Users"], "summary": "Get user", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Users"], "summary": "Update user", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Users"], "summary": "Delete user", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/dashboard": {"get": {"tags": ["Dashboard"], "summary": "Get dashboard", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
