// Package swagger registers the OpenAPI document served at /swagger.
package swagger

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
        "/members/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Check Health",
                "responses": {
                    "200": {"description": "Healthy", "schema": {"type": "object"}},
                    "503": {"description": "Unhealthy", "schema": {"type": "object"}}
                }
            }
        },
        "/members/stats/distribution": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Get Member Distribution Statistics",
                "parameters": [
                    {"type": "string", "description": "Track", "name": "track", "in": "query"},
                    {"type": "string", "description": "Sub track", "name": "subTrack", "in": "query"},
                    {"type": "string", "description": "Comma separated fields", "name": "fields", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Distribution", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            }
        },
        "/members/{handle}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["member"],
                "summary": "Get Member",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"type": "string", "description": "Comma separated fields", "name": "fields", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Member", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            }
        },
        "/members/{handle}/photo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["member"],
                "summary": "Upload Member Photo",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"type": "file", "description": "Photo", "name": "photo", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Photo URL", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.Body"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            }
        },
        "/members/{handle}/skills": {
            "get": {
                "produces": ["application/json"],
                "tags": ["skills"],
                "summary": "Get Member Skills",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Skills", "schema": {"type": "array", "items": {"type": "object"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["skills"],
                "summary": "Create Member Skill",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"description": "Skill", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Skills", "schema": {"type": "array", "items": {"type": "object"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.Body"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["skills"],
                "summary": "Update Member Skill",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"description": "Skill", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Skills", "schema": {"type": "array", "items": {"type": "object"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            }
        },
        "/members/{handle}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Get Member Statistics",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"type": "string", "description": "Comma separated group ids", "name": "groupIds", "in": "query"},
                    {"type": "string", "description": "Comma separated fields", "name": "fields", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Statistics", "schema": {"type": "array", "items": {"type": "object"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Create Member Statistics",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"description": "Statistics", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Statistics", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Update Member Statistics",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"description": "Statistics", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Statistics", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.Body"}}
                }
            }
        },
        "/members/{handle}/stats/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Get Member History Statistics",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"type": "string", "description": "Comma separated group ids", "name": "groupIds", "in": "query"},
                    {"type": "string", "description": "Comma separated fields", "name": "fields", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "History", "schema": {"type": "array", "items": {"type": "object"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Create Member History Statistics",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"description": "History", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "History", "schema": {"type": "object"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["statistics"],
                "summary": "Update Member History Statistics",
                "parameters": [
                    {"type": "string", "description": "Member handle", "name": "handle", "in": "path", "required": true},
                    {"description": "History", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "History", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.Body": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Member API",
	Description:      "API for member profiles, skills and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
