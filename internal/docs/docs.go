// Package docs holds the OpenAPI document served under /swagger by every service.
package docs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/users/register": {"post": {"tags": ["users"], "summary": "Register a customer account",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/User"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/users/login": {"post": {"tags": ["users"], "summary": "Exchange credentials for a token",
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/users/me": {
            "get": {"tags": ["users"], "summary": "Current user", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}}},
            "put": {"tags": ["users"], "summary": "Update own profile", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}}}},
        "/users/{id}": {"delete": {"tags": ["users"], "summary": "Delete a user (admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/users/{id}/roles": {"put": {"tags": ["users"], "summary": "Replace a user's roles (admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RolesRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}}}}},

        "/products": {
            "get": {"tags": ["products"], "summary": "List products",
                "parameters": [{"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "offset", "type": "integer"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductList"}}}},
            "post": {"tags": ["products"], "summary": "Create a product (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProductRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Product"}}}}},
        "/products/search": {"get": {"tags": ["products"], "summary": "Search products",
            "parameters": [{"in": "query", "name": "q", "type": "string", "required": true}, {"in": "query", "name": "limit", "type": "integer"}, {"in": "query", "name": "offset", "type": "integer"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductList"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}},
            "put": {"tags": ["products"], "summary": "Partially update a product (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProductRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Product"}}}},
            "delete": {"tags": ["products"], "summary": "Delete a product (admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}}},

        "/cart": {
            "get": {"tags": ["cart"], "summary": "Caller's cart, created on first use", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartDTO"}}}},
            "delete": {"tags": ["cart"], "summary": "Clear the caller's cart", "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}}},
        "/cart/count": {"get": {"tags": ["cart"], "summary": "Number of items in the caller's cart", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK"}}}},
        "/cart/{id}": {"get": {"tags": ["cart"], "summary": "Cart by id (owner or admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartDTO"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/cart/user/{user_id}": {"get": {"tags": ["cart"], "summary": "Any user's cart (admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "user_id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartDTO"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/cart/items": {"post": {"tags": ["cart"], "summary": "Add a product to the cart", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AddItemRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartDTO"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/cart/items/{product_id}": {"delete": {"tags": ["cart"], "summary": "Remove a quantity of a product; omit quantity to drop the line", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "product_id", "type": "string", "required": true}, {"in": "query", "name": "quantity", "type": "integer"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartDTO"}}}}},

        "/orders": {
            "get": {"tags": ["orders"], "summary": "All orders (admin)", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/OrderDTO"}}}}},
            "post": {"tags": ["orders"], "summary": "Check out the caller's cart", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CheckoutRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/OrderDTO"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/orders/mine": {"get": {"tags": ["orders"], "summary": "Caller's orders, newest first", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/OrderDTO"}}}}}},
        "/orders/user/{user_id}": {"get": {"tags": ["orders"], "summary": "A user's orders (admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "user_id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/OrderDTO"}}}}}},
        "/orders/{id}": {"get": {"tags": ["orders"], "summary": "Order by id (owner or admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderDTO"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/orders/{id}/total": {"get": {"tags": ["orders"], "summary": "Stored order total", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK"}}}},
        "/orders/{id}/status": {"put": {"tags": ["orders"], "summary": "Move an order along its lifecycle (admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/StatusUpdate"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderDTO"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/HTTPError"}}}}},
        "/orders/{id}/cancel": {"put": {"tags": ["orders"], "summary": "Cancel an order (owner or admin)", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderDTO"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/HTTPError"}}}}},

        "/reviews": {"post": {"tags": ["reviews"], "summary": "Review a product", "security": [{"BearerAuth": []}],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReviewRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ReviewDTO"}}}}},
        "/reviews/mine": {"get": {"tags": ["reviews"], "summary": "Caller's reviews", "security": [{"BearerAuth": []}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReviewDTO"}}}}}},
        "/reviews/product/{product_id}": {"get": {"tags": ["reviews"], "summary": "Reviews of a product",
            "parameters": [{"in": "path", "name": "product_id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReviewDTO"}}}}}},
        "/reviews/product/{product_id}/summary": {"get": {"tags": ["reviews"], "summary": "Average rating and count",
            "parameters": [{"in": "path", "name": "product_id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ReviewSummary"}}}}},
        "/reviews/user/{user_id}": {"get": {"tags": ["reviews"], "summary": "Reviews written by a user",
            "parameters": [{"in": "path", "name": "user_id", "type": "string", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ReviewDTO"}}}}}},
        "/reviews/{id}": {
            "get": {"tags": ["reviews"], "summary": "Review by id",
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ReviewDTO"}}}},
            "put": {"tags": ["reviews"], "summary": "Edit own review", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateReviewRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ReviewDTO"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/HTTPError"}}}},
            "delete": {"tags": ["reviews"], "summary": "Delete a review (author or admin)", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"204": {"description": "No Content"}}}}
    },
    "definitions": {
        "HTTPError": {"type": "object", "properties": {"error": {"type": "string", "example": "not found"}}},
        "User": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "roles": {"type": "array", "items": {"type": "string"}}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "RegisterRequest": {"type": "object", "required": ["username", "email", "password"], "properties": {"username": {"type": "string", "example": "ana"}, "email": {"type": "string", "example": "ana@example.com"}, "password": {"type": "string", "example": "s3cretpass"}}},
        "LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/User"}}},
        "UpdateUserRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "RolesRequest": {"type": "object", "required": ["roles"], "properties": {"roles": {"type": "array", "items": {"type": "string", "enum": ["customer", "admin"]}}}},
        "Product": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "string", "example": "199.90"}, "stock": {"type": "integer"}, "image_url": {"type": "string"}, "category_id": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "ProductList": {"type": "object", "properties": {"q": {"type": "string"}, "limit": {"type": "integer"}, "offset": {"type": "integer"}, "items": {"type": "array", "items": {"$ref": "#/definitions/Product"}}}},
        "CreateProductRequest": {"type": "object", "required": ["name", "price"], "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "string", "example": "199.90"}, "stock": {"type": "integer"}, "image_url": {"type": "string"}, "category_id": {"type": "string"}}},
        "UpdateProductRequest": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "price": {"type": "string"}, "stock": {"type": "integer"}, "image_url": {"type": "string"}}},
        "AddItemRequest": {"type": "object", "required": ["product_id", "quantity"], "properties": {"product_id": {"type": "string", "example": "7"}, "quantity": {"type": "integer", "minimum": 1, "maximum": 100, "example": 2}, "cart_id": {"type": "string"}}},
        "CartItem": {"type": "object", "properties": {"cart_id": {"type": "string"}, "product_id": {"type": "string"}, "product_name": {"type": "string"}, "product_price": {"type": "string"}, "product_image": {"type": "string"}, "quantity": {"type": "integer"}, "total_price": {"type": "string"}, "available": {"type": "boolean"}}},
        "CartDTO": {"type": "object", "properties": {"cart_id": {"type": "string"}, "user_id": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/CartItem"}}, "total_amount": {"type": "string"}, "item_count": {"type": "integer"}}},
        "CheckoutRequest": {"type": "object", "required": ["shipping_address", "city", "postal_code", "country", "phone_number"], "properties": {"cart_id": {"type": "string"}, "shipping_address": {"type": "string", "maxLength": 200}, "city": {"type": "string", "maxLength": 100}, "postal_code": {"type": "string", "maxLength": 20}, "country": {"type": "string", "maxLength": 100}, "phone_number": {"type": "string", "maxLength": 20}, "notes": {"type": "string", "maxLength": 500}}},
        "StatusUpdate": {"type": "object", "required": ["status"], "properties": {"status": {"type": "string", "enum": ["Pending", "Processing", "Shipped", "Delivered", "Cancelled"]}, "shipped_at": {"type": "string", "format": "date-time"}, "delivered_at": {"type": "string", "format": "date-time"}, "notes": {"type": "string"}}},
        "OrderItem": {"type": "object", "properties": {"product_id": {"type": "string"}, "product_name": {"type": "string"}, "quantity": {"type": "integer"}, "unit_price": {"type": "string"}, "line_total": {"type": "string"}}},
        "OrderDTO": {"type": "object", "properties": {"id": {"type": "string"}, "order_number": {"type": "string", "example": "ORD-20260314-1A2B3C4D"}, "user_id": {"type": "string"}, "user_name": {"type": "string"}, "order_date": {"type": "string"}, "status": {"type": "string"}, "total": {"type": "string"}, "shipping_address": {"type": "string"}, "city": {"type": "string"}, "postal_code": {"type": "string"}, "country": {"type": "string"}, "phone_number": {"type": "string"}, "shipped_at": {"type": "string"}, "delivered_at": {"type": "string"}, "notes": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/OrderItem"}}}},
        "CreateReviewRequest": {"type": "object", "required": ["product_id", "rating"], "properties": {"product_id": {"type": "string"}, "rating": {"type": "integer", "minimum": 1, "maximum": 5}, "title": {"type": "string", "maxLength": 100}, "comment": {"type": "string", "maxLength": 1000}}},
        "UpdateReviewRequest": {"type": "object", "required": ["rating"], "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 5}, "title": {"type": "string", "maxLength": 100}, "comment": {"type": "string", "maxLength": 1000}}},
        "ReviewDTO": {"type": "object", "properties": {"id": {"type": "string"}, "product_id": {"type": "string"}, "product_name": {"type": "string"}, "user_id": {"type": "string"}, "user_name": {"type": "string"}, "rating": {"type": "integer"}, "title": {"type": "string"}, "comment": {"type": "string"}, "review_date": {"type": "string"}, "verified_purchase": {"type": "boolean"}}},
        "ReviewSummary": {"type": "object", "properties": {"product_id": {"type": "string"}, "average": {"type": "number"}, "count": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Valora API",
	Description:      "Catalog, cart, checkout, orders and reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// Register publishes the document titled for service. Call it once from main
// before mounting gin-swagger.
func Register(service string) {
	SwaggerInfo.Title = "Valora " + service
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Undocumented lists the routes ("GET /cart/{id}") that have no operation in
// the document. /healthz and /swagger are not part of the API.
func Undocumented(routes gin.RoutesInfo) ([]string, error) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc); err != nil {
		return nil, fmt.Errorf("parse swagger doc: %w", err)
	}

	var missing []string
	for _, rt := range routes {
		if rt.Path == "/healthz" || strings.HasPrefix(rt.Path, "/swagger") {
			continue
		}
		path := openAPIPath(rt.Path)
		if _, ok := doc.Paths[path][strings.ToLower(rt.Method)]; !ok {
			missing = append(missing, rt.Method+" "+path)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

// openAPIPath rewrites gin's :param segments as {param}.
func openAPIPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*") {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}
