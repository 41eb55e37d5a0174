// Package docs registra la especificación OpenAPI servida en /swagger/*.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/users": {"post": {"tags": ["users"], "summary": "Register user", "responses": {"200": {"description": "token and user"}, "400": {"description": "validation error or user already exists"}}}},
        "/auth": {
            "post": {"tags": ["users"], "summary": "Login", "responses": {"200": {"description": "token and user"}, "400": {"description": "Invalid Credentials"}}},
            "get": {"tags": ["users"], "summary": "Current user", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "user"}, "401": {"description": "unauthorized"}}}
        },
        "/profile": {
            "get": {"tags": ["profile"], "summary": "List all profiles", "responses": {"200": {"description": "profiles"}}},
            "post": {"tags": ["profile"], "summary": "Create or update own profile location", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "profile"}, "400": {"description": "validation error"}}},
            "delete": {"tags": ["profile"], "summary": "Delete account, profile and posts", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "User deleted"}}}
        },
        "/profile/me": {"get": {"tags": ["profile"], "summary": "Own profile", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "profile"}, "404": {"description": "There is no profile for this user"}}}},
        "/profile/user/{userID}": {"get": {"tags": ["profile"], "summary": "Profile by user", "parameters": [{"name": "userID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "profile"}, "404": {"description": "There is no profile for this user"}}}},
        "/profile/pets": {"put": {"tags": ["profile"], "summary": "Add pet", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "profile"}, "400": {"description": "pet duplicate"}}}},
        "/profile/pets/{petID}": {
            "put": {"tags": ["profile"], "summary": "Update pet", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "petID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "profile"}, "404": {"description": "pet does not exist"}}},
            "delete": {"tags": ["profile"], "summary": "Remove pet", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "petID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "profile"}, "404": {"description": "pet does not exist"}}}
        },
        "/profile/history": {"put": {"tags": ["profile"], "summary": "Add visit history", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "profile"}}}},
        "/profile/history/{historyID}": {"delete": {"tags": ["profile"], "summary": "Remove visit history", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "historyID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "profile"}, "404": {"description": "history does not exist"}}}},
        "/posts": {
            "get": {"tags": ["posts"], "summary": "List posts, 5 per page", "parameters": [{"name": "page", "in": "query", "type": "integer"}], "responses": {"200": {"description": "posts and count"}}},
            "post": {"tags": ["posts"], "summary": "Create post", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "post"}}}
        },
        "/posts/user/{userID}": {"get": {"tags": ["posts"], "summary": "List posts by user, 10 per page", "parameters": [{"name": "userID", "in": "path", "required": true, "type": "string"}, {"name": "page", "in": "query", "type": "integer"}], "responses": {"200": {"description": "posts and count"}}}},
        "/posts/post/{postID}": {
            "get": {"tags": ["posts"], "summary": "Get post", "parameters": [{"name": "postID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "post"}, "404": {"description": "Post not found"}}},
            "delete": {"tags": ["posts"], "summary": "Delete own post", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "postID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Post removed"}, "403": {"description": "User not authorized"}}}
        },
        "/posts/{toggle}/{postID}": {"put": {"tags": ["posts"], "summary": "Set or clear (not prefix) a toggle: useful, nailTrim, fleaCheck, spay_neutere, laboratory, GI_stasis", "security": [{"ApiKeyAuth": []}], "parameters": [{"name": "toggle", "in": "path", "required": true, "type": "string"}, {"name": "postID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "post"}, "400": {"description": "already set or not set"}}}},
        "/yelp/search": {"post": {"tags": ["yelp"], "summary": "Search businesses", "responses": {"200": {"description": "yelps"}, "500": {"description": "server error"}}}},
        "/yelp/reviews/{id}": {"get": {"tags": ["yelp"], "summary": "Business reviews", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "reviews"}, "500": {"description": "server error"}}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Vet Reviews API",
	Description:      "Usuarios, perfiles con mascotas, reseñas de veterinarias y búsqueda en Yelp.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
