// Package docs registers the OpenAPI document served at /swagger/*any.
// Regenerate with: swag init -g cmd/open-music-api/main.go -o docs
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
        "/albums": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Albums"],
                "summary": "Create an album",
                "operationId": "postAlbum",
                "parameters": [
                    {"type": "string", "description": "Replay-safe create key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Album payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AlbumPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/outcome.ProtocolPayload"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/outcome.ProtocolPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            }
        },
        "/albums/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Albums"],
                "summary": "Get an album with its songs",
                "operationId": "getAlbum",
                "parameters": [{"type": "string", "description": "Album ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Albums"],
                "summary": "Replace an album",
                "operationId": "putAlbum",
                "parameters": [
                    {"type": "string", "description": "Album ID", "name": "id", "in": "path", "required": true},
                    {"description": "Album payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.AlbumPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Albums"],
                "summary": "Delete an album",
                "operationId": "deleteAlbum",
                "parameters": [{"type": "string", "description": "Album ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            }
        },
        "/songs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "List songs (paginated)",
                "operationId": "listSongs",
                "parameters": [
                    {"type": "string", "description": "Title contains", "name": "title", "in": "query"},
                    {"type": "string", "description": "Performer contains", "name": "performer", "in": "query"},
                    {"minimum": 1, "type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Items per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Create a song",
                "operationId": "postSong",
                "parameters": [
                    {"type": "string", "description": "Replay-safe create key", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Song payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SongPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            }
        },
        "/songs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Get a song",
                "operationId": "getSong",
                "parameters": [{"type": "string", "description": "Song ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Replace a song",
                "operationId": "putSong",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "id", "in": "path", "required": true},
                    {"description": "Song payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.SongPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Delete a song",
                "operationId": "deleteSong",
                "parameters": [{"type": "string", "description": "Song ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/outcome.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/outcome.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "domain.AlbumPayload": {
            "type": "object",
            "required": ["name", "year"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "year": {"type": "integer"}
            }
        },
        "domain.SongPayload": {
            "type": "object",
            "required": ["genre", "performer", "title", "year"],
            "properties": {
                "albumId": {"type": "string", "maxLength": 50},
                "duration": {"type": "integer", "minimum": 0},
                "genre": {"type": "string", "maxLength": 100},
                "performer": {"type": "string", "maxLength": 255},
                "title": {"type": "string", "maxLength": 255},
                "year": {"type": "integer"}
            }
        },
        "outcome.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "outcome.ProtocolPayload": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "statusCode": {"type": "integer"}
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
	Title:            "Open Music API",
	Description:      "Albums and songs with a uniform response envelope.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
