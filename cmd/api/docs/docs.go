// Package docs registers the OpenAPI document served at /swagger.
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
        "/health": {
            "get": {
                "description": "Reports the loaded bank size and session store reachability. Degraded when the bank is empty or the store is down.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/pronunciations/{word}": {
            "get": {
                "description": "Best effort. available is false when no recording was found or the dictionary could not be reached.",
                "produces": ["application/json"],
                "tags": ["pronunciation"],
                "summary": "Look up pronunciation audio",
                "parameters": [
                    {"type": "string", "description": "Word", "name": "word", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PronunciationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "description": "Samples a fresh set of questions. A session whose questions could not be loaded is returned with state load_failed.",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Start a quiz session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Get a quiz session",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ValidationErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/advance": {
            "post": {
                "description": "Moves to the next question, or submits and scores the quiz on the last one. Rejected with 409 while the current question is unanswered.",
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Go to the next question",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/answers": {
            "post": {
                "description": "Records the option for the current question, replacing any earlier choice.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Select an answer",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true},
                    {"description": "Selected option", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/sessions/{id}/restart": {
            "post": {
                "produces": ["application/json"],
                "tags": ["quiz"],
                "summary": "Restart a finished quiz",
                "parameters": [
                    {"type": "string", "description": "Session ID (ULID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ValidationError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.AnswerRequest": {
            "description": "Request body for selecting an answer",
            "type": "object",
            "properties": {
                "option_index": {"type": "integer"}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "cache": {"type": "string"},
                "questions": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "dto.ProgressView": {
            "type": "object",
            "properties": {
                "current": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "dto.PronunciationResponse": {
            "description": "Pronunciation audio lookup result",
            "type": "object",
            "properties": {
                "audio_url": {"type": "string"},
                "available": {"type": "boolean"},
                "word": {"type": "string"}
            }
        },
        "dto.QuestionView": {
            "description": "Current question",
            "type": "object",
            "properties": {
                "options": {"type": "array", "items": {"type": "string"}},
                "word": {"type": "string"}
            }
        },
        "dto.SessionResponse": {
            "description": "Quiz session state",
            "type": "object",
            "properties": {
                "can_advance": {"type": "boolean"},
                "id": {"type": "string"},
                "is_last": {"type": "boolean"},
                "message": {"type": "string"},
                "progress": {"$ref": "#/definitions/dto.ProgressView"},
                "question": {"$ref": "#/definitions/dto.QuestionView"},
                "score": {"type": "integer"},
                "selected": {"type": "integer"},
                "state": {"type": "string"},
                "total": {"type": "integer"}
            }
        },
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "middleware.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/domain.ValidationError"}},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Vocabulary Quiz API",
	Description:      "Daily English vocabulary quiz: sampled multiple-choice sessions and pronunciation lookup.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
