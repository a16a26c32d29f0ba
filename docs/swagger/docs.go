// Package swagger holds the OpenAPI document served at /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "VeriCura Maintainers",
            "url": "https://github.com/karandeol-26/VeriCura"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Liveness and configuration summary",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}}
            }
        },
        "/scan": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["scan"],
                "summary": "Scan several URLs without a session",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/server.BatchScanRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/app.BatchResult"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Open a session on a URL or a bridge agent",
                "parameters": [{"in": "body", "name": "request", "schema": {"$ref": "#/definitions/server.PageRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/server.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "delete": {
                "tags": ["sessions"],
                "summary": "Close a session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/scan": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Scan the session page, optionally switching to another page first",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/server.PageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/app.ScanOutcome"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/analyze": {
            "post": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Run deep analysis on the last scan",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/app.AnalysisOutcome"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/highlight": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Scroll to and pulse the element behind an issue or text",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/model.HighlightRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HighlightResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/report": {
            "get": {
                "produces": ["application/json", "text/markdown", "text/html"],
                "tags": ["sessions"],
                "summary": "Render the session report",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"enum": ["json", "md", "html"], "type": "string", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/server.ErrorResponse"}},
                    "409": {"description": "Not scanned yet", "schema": {"$ref": "#/definitions/server.ErrorResponse"}}
                }
            }
        },
        "/ws/sessions/{id}": {
            "get": {
                "tags": ["sessions"],
                "summary": "Stream session events over a websocket",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "server.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string", "example": "session not found"}}},
        "server.HealthResponse": {"type": "object", "properties": {"status": {"type": "string"}, "deep_analysis": {"type": "boolean"}, "client": {"type": "string"}}},
        "server.PageRequest": {"type": "object", "properties": {"url": {"type": "string", "example": "https://www.cdc.gov/flu/"}, "agent": {"type": "string", "example": "ws://localhost:9222/bridge"}}},
        "server.BatchScanRequest": {"type": "object", "properties": {"urls": {"type": "array", "items": {"type": "string"}}, "crawl": {"type": "boolean"}}},
        "server.SessionResponse": {"type": "object", "properties": {"id": {"type": "string"}}},
        "model.HighlightRequest": {"type": "object", "properties": {"issueId": {"type": "string"}, "textTitle": {"type": "string"}, "textFull": {"type": "string"}}},
        "model.HighlightResponse": {"type": "object", "properties": {"ok": {"type": "boolean"}, "via": {"type": "string", "enum": ["issueId", "title", "full", "fallback"]}}},
        "model.Factor": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "desc": {"type": "string"}, "positive": {"type": "boolean"}}},
        "model.Report": {"type": "object", "properties": {"id": {"type": "string"}, "score": {"type": "integer"}, "url": {"type": "string"}, "aiAdjusted": {"type": "boolean"}, "authorNames": {"type": "array", "items": {"type": "string"}}}},
        "app.ScanOutcome": {"type": "object", "properties": {"kind": {"type": "string"}, "url": {"type": "string"}, "report": {"$ref": "#/definitions/model.Report"}, "label": {"type": "string"}, "factors": {"type": "array", "items": {"$ref": "#/definitions/model.Factor"}}, "message": {"type": "string"}, "error": {"type": "string"}}},
        "app.AnalysisOutcome": {"type": "object", "properties": {"kind": {"type": "string"}, "report": {"$ref": "#/definitions/model.Report"}, "label": {"type": "string"}, "result": {"type": "object"}, "message": {"type": "string"}, "error": {"type": "string"}}},
        "app.BatchResult": {"type": "object", "properties": {"url": {"type": "string"}, "outcome": {"$ref": "#/definitions/app.ScanOutcome"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "VeriCura API",
	Description:      "Health page credibility checks: scan, deep analysis and in-page highlighting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
