// Package docs registers the OpenAPI description of the record services
// with swag so http-swagger can serve it.
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
        "/users": {
            "post": {
                "tags": ["users"],
                "summary": "Create a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/UserInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ValidationError"}},
                    "409": {"description": "Email already in use", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["users"],
                "summary": "Get user by ID",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/products": {
            "post": {
                "tags": ["products"],
                "summary": "Create a product",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "product", "required": true, "schema": {"$ref": "#/definitions/ProductInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Product"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["products"],
                "summary": "Get product by ID",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}},
                    "404": {"description": "Product not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/orders": {
            "post": {
                "tags": ["orders"],
                "summary": "Create an order",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "order", "required": true, "schema": {"$ref": "#/definitions/OrderInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Order"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "tags": ["orders"],
                "summary": "Get order by ID",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Order"}},
                    "404": {"description": "Order not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/invoices": {
            "post": {
                "tags": ["invoices"],
                "summary": "Create an invoice",
                "description": "date_issued is always the server date; any value in the body is ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "invoice", "required": true, "schema": {"$ref": "#/definitions/InvoiceInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Invoice"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ValidationError"}}
                }
            }
        },
        "/invoices/{id}": {
            "get": {
                "tags": ["invoices"],
                "summary": "Get invoice by ID",
                "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Invoice"}},
                    "404": {"description": "Invoice not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Database reachability",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Unavailable"}}
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "ValidationError": {
            "type": "object",
            "properties": {"error": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
        },
        "UserInput": {
            "type": "object",
            "required": ["username", "email"],
            "properties": {"username": {"type": "string", "minLength": 3}, "email": {"type": "string", "format": "email"}}
        },
        "User": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "email": {"type": "string"}}
        },
        "ProductInput": {
            "type": "object",
            "required": ["name", "price"],
            "properties": {"name": {"type": "string", "minLength": 3}, "description": {"type": "string"}, "price": {"type": "number", "minimum": 0}}
        },
        "Product": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "number"}}
        },
        "OrderInput": {
            "type": "object",
            "required": ["user_id", "product_id", "quantity", "total_price"],
            "properties": {
                "user_id": {"type": "integer", "minimum": 1},
                "product_id": {"type": "integer", "minimum": 1},
                "quantity": {"type": "integer", "minimum": 1},
                "total_price": {"type": "number", "minimum": 0}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer"},
                "total_price": {"type": "number"}
            }
        },
        "InvoiceInput": {
            "type": "object",
            "required": ["order_id", "amount"],
            "properties": {"order_id": {"type": "integer", "minimum": 1}, "amount": {"type": "number", "minimum": 0}}
        },
        "Invoice": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "order_id": {"type": "integer"},
                "amount": {"type": "number"},
                "date_issued": {"type": "string", "format": "date"}
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
	Title:            "Record Services API",
	Description:      "Create and fetch users, products, orders and invoices. Each service runs on its own port.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
