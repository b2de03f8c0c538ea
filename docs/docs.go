// Package docs is generated by swag from the handler annotations. Regenerate with:
//
//	swag init -g cmd/main.go -o docs
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
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Banner",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/health": {
            "get": {
                "description": "Reports 503 when the database cannot be reached.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Returns a fresh access/refresh pair. Any earlier refresh token stops working.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TokenPair"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "description": "Rotates the session. The submitted refresh token is invalidated.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [
                    {"description": "refresh token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.TokenPair"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Ends the session holding the refresh token. Unknown tokens also return 204.",
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out",
                "parameters": [
                    {"description": "refresh token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current identity",
                "responses": {
                    "200": {"description": "userId, username", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest first. 'from' and 'to' are inclusive dates.",
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "string", "example": "2024-06-01", "description": "Start date (YYYY-MM-DD or RFC3339)", "name": "from", "in": "query"},
                    {"type": "string", "example": "2024-06-30", "description": "End date (YYYY-MM-DD or RFC3339)", "name": "to", "in": "query"},
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Expense"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Create expense",
                "parameters": [
                    {"description": "expense", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateExpenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Expense"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/expenses/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Spending summary",
                "parameters": [
                    {"type": "string", "description": "Start date", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Summary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/expenses/stream": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Upgrades to a WebSocket and pushes {\"type\":\"summary\",\"data\":Summary} every interval.",
                "tags": ["expenses"],
                "summary": "Stream spending summary",
                "parameters": [
                    {"type": "string", "example": "2s", "description": "Go duration, max 10s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Milliseconds, max 10000", "name": "interval_ms", "in": "query"},
                    {"type": "string", "description": "Start date", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date", "name": "to", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        },
        "/expenses/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Get expense",
                "parameters": [{"type": "integer", "description": "Expense ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Expense"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Merges the supplied fields into the stored expense.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Update expense",
                "parameters": [
                    {"type": "integer", "description": "Expense ID", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateExpenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Expense"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Delete expense",
                "parameters": [{"type": "integer", "description": "Expense ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.stringMap"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.stringMap"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.stringMap": {"type": "object", "additionalProperties": {"type": "string"}},
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "testuser"},
                "email": {"type": "string", "example": "testuser@example.com"},
                "password": {"type": "string", "example": "TestPass123"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "testuser"},
                "password": {"type": "string", "example": "TestPass123"}
            }
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "properties": {"refreshToken": {"type": "string"}}
        },
        "handlers.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "handlers.CreateExpenseRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "example": "Sandwich"},
                "amount": {"type": "number", "example": 50.5},
                "category": {"type": "string", "example": "Food"},
                "date": {"type": "string", "example": "2024-06-01"},
                "description": {"type": "string", "example": "Lunch"}
            }
        },
        "handlers.UpdateExpenseRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "models.Expense": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.CategoryTotal": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "total": {"type": "number"},
                "count": {"type": "integer"}
            }
        },
        "models.Summary": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "string"},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/models.CategoryTotal"}},
                "total": {"type": "number"},
                "count": {"type": "integer"}
            }
        },
        "service.TokenPair": {
            "type": "object",
            "properties": {
                "accessToken": {"type": "string"},
                "refreshToken": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the access token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Expense Tracker API",
	Description:      "Personal expense tracking with JWT access/refresh sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
