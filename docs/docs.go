// Package docs registers the OpenAPI document served by the swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/top250": {
            "get": {
                "tags": ["movies"],
                "summary": "List Movies",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 0, "name": "start", "in": "query"},
                    {"type": "integer", "default": 15, "name": "limit", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PagedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/detail": {
            "get": {
                "tags": ["movies"],
                "summary": "Movie Detail",
                "parameters": [{"type": "string", "name": "id", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/doAdd": {
            "post": {
                "tags": ["movies"],
                "summary": "Create Movie",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "name": "slogo", "in": "formData"},
                    {"type": "number", "name": "evaluate", "in": "formData"},
                    {"type": "number", "name": "rating", "in": "formData", "required": true},
                    {"type": "boolean", "name": "collected", "in": "formData"},
                    {"type": "string", "name": "year", "in": "formData", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "label", "in": "formData"},
                    {"type": "file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/update": {
            "post": {
                "tags": ["movies"],
                "summary": "Update Movie",
                "parameters": [{"name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateMovieRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/collect": {
            "post": {
                "tags": ["movies"],
                "summary": "Collect Movie",
                "parameters": [{"name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MovieIDRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        },
        "/collect/cancel": {
            "post": {
                "tags": ["movies"],
                "summary": "Cancel Collect",
                "parameters": [{"name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MovieIDRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        },
        "/delete": {
            "post": {
                "tags": ["movies"],
                "summary": "Delete Movie",
                "parameters": [{"name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MovieIDRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["users"],
                "summary": "Register",
                "parameters": [{"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/password": {
            "post": {
                "tags": ["users"],
                "summary": "Change Password",
                "parameters": [{"name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/healthcheck": {
            "get": {
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        }
    },
    "definitions": {
        "APIResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "msg": {"type": "string"},
                "res": {},
                "data": {}
            }
        },
        "PagedResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "msg": {"type": "string"},
                "res": {"type": "array", "items": {"$ref": "#/definitions/Movie"}},
                "total": {"type": "integer"},
                "start": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "Movie": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "pic": {"type": "string"},
                "title": {"type": "string"},
                "slogo": {"type": "string"},
                "evaluate": {"type": "number"},
                "labels": {"type": "array", "items": {"type": "string"}},
                "rating": {"type": "number"},
                "collected": {"type": "boolean"}
            }
        },
        "MovieIDRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {"id": {"type": "string"}}
        },
        "UpdateMovieRequest": {
            "type": "object",
            "required": ["id", "title"],
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "slogo": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {
                "username": {"type": "string", "minLength": 2, "maxLength": 20},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ChangePasswordRequest": {
            "type": "object",
            "required": ["username", "password", "newPassword"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"},
                "newPassword": {"type": "string", "minLength": 6}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Top 250 Movies API",
	Description:      "Movie catalog with collection flags and user accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
