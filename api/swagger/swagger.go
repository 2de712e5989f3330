package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Examination Calendar API",
        "description": "Exam calendar generation and review for faculty programs",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Calendar", "description": "Exam calendar generation, review and export"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/calendar/generate": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Generate the draft exam calendar for the caller's program",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateCalendarRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Period or evaluation not found"},
                    "409": {"description": "Scheduling conflict"}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Get the program's calendar expanded per (request, group)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "evaluationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/check": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Probe whether a calendar exists for the selection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "evaluationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/submit": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Submit the calendar for registrar review",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/approve": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Approve every request of the selection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/reject": {
            "post": {
                "tags": ["Calendar"],
                "summary": "Reject every request of the selection with a reason",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkRejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/calendar/requests/{id}": {
            "patch": {
                "tags": ["Calendar"],
                "summary": "Review a single exam request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Exam request not found"}
                }
            }
        },
        "/calendar/export/csv": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Download the calendar as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "evaluationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/calendar/export/pdf": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Download the calendar as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "evaluationId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        }
    },
    "definitions": {
        "GenerateCalendarRequest": {
            "type": "object",
            "required": ["startDate", "evaluationId"],
            "properties": {
                "startDate": {"type": "string", "format": "date"},
                "evaluationId": {"type": "string"},
                "holidays": {"type": "array", "items": {"type": "string", "format": "date"}}
            }
        },
        "BulkStatusRequest": {
            "type": "object",
            "required": ["evaluationId"],
            "properties": {
                "evaluationId": {"type": "string"}
            }
        },
        "BulkRejectRequest": {
            "type": "object",
            "required": ["evaluationId", "reason"],
            "properties": {
                "evaluationId": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "integer", "enum": [0, 1, 2]},
                "reason": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
