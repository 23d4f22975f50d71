// Package docs registers the OpenAPI description served at /api/docs.
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
        "/contact": {
            "post": {
                "description": "Validates the submission, emails the team and sends an acknowledgement to the visitor.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Submit Contact Form",
                "parameters": [
                    {
                        "description": "Contact Form Data",
                        "name": "contact",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.ContactSubmission"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.RateLimitResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Liveness probe. Does not touch the SMTP relay.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ContactSubmission": {
            "type": "object",
            "required": ["company", "email", "message", "name", "service"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "minLength": 2},
                "email": {"type": "string"},
                "company": {"type": "string", "maxLength": 200, "minLength": 2},
                "phone": {"type": "string"},
                "service": {
                    "type": "string",
                    "enum": ["red-team", "perimeter", "web-pentesting", "mobile-pentesting", "code-review", "consultation", "other"]
                },
                "message": {"type": "string", "maxLength": 5000, "minLength": 10}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "timestamp": {"type": "string"}
            }
        },
        "response.RateLimitResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "service": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Cyber Contact API",
	Description:      "Contact form relay: validates submissions and delivers them by email.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
