// Package testutil provides test utilities and fixtures for unit tests.
//
// Every fixture function returns a freshly built document tree in decoded
// JSON form, so tests may inspect or modify it freely.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"
)

type obj = map[string]any
type arr = []any

// NewAuthDocument returns an OAS 3.0 document whose /auth operation
// references Credentials, which references Token. Unused and Health are
// not reachable from /auth. Docs, examples and extensions are sprinkled
// throughout.
func NewAuthDocument() map[string]any {
	return obj{
		"openapi": "3.0.3",
		"info": obj{
			"title":       "Auth API",
			"version":     "1.2.0",
			"description": "Authentication service",
			"contact":     obj{"name": "API team"},
		},
		"servers": arr{obj{"url": "https://auth.example.com", "description": "production"}},
		"x-internal-id": "auth-svc",
		"paths": obj{
			"/auth": obj{
				"summary": "Authentication",
				"post": obj{
					"operationId": "login",
					"summary":     "Log in",
					"description": "Exchanges credentials for a token.",
					"x-rate-limit": 10,
					"requestBody": obj{
						"required":    true,
						"description": "The user's credentials",
						"content": obj{
							"application/json": obj{
								"schema":  obj{"$ref": "#/components/schemas/Credentials"},
								"example": obj{"username": "ada", "password": "secret"},
							},
						},
					},
					"responses": obj{
						"200": obj{
							"description": "Logged in",
							"content": obj{
								"application/json": obj{
									"schema": obj{"$ref": "#/components/schemas/Token"},
								},
							},
						},
						"x-internal-note": "ignored",
					},
				},
			},
			"/health": obj{
				"get": obj{
					"operationId": "health",
					"responses": obj{
						"200": obj{
							"description": "OK",
							"content": obj{
								"application/json": obj{"schema": obj{"$ref": "#/components/schemas/Health"}},
							},
						},
					},
				},
			},
		},
		"components": obj{
			"schemas": obj{
				"Credentials": obj{
					"type":        "object",
					"description": "Login credentials",
					"required":    arr{"username", "password"},
					"properties": obj{
						"username":    obj{"type": "string", "example": "ada"},
						"password":    obj{"type": "string", "format": "password", "x-sensitive": true},
						"description": obj{"type": "string", "description": "A property literally named description"},
						"token":       obj{"$ref": "#/components/schemas/Token"},
					},
				},
				"Token": obj{
					"type":    "object",
					"summary": "A bearer token",
					"properties": obj{
						"value":     obj{"type": "string"},
						"expiresIn": obj{"type": "integer", "format": "int32", "minimum": 0},
						"scope":     obj{"type": "string", "enum": arr{"read", "write"}},
					},
				},
				"Health": obj{
					"type":       "object",
					"properties": obj{"status": obj{"type": "string"}},
				},
				"Unused": obj{"type": "string"},
			},
			"securitySchemes": obj{
				"bearer": obj{"type": "http", "scheme": "bearer", "description": "JWT"},
			},
		},
		"security": arr{obj{"bearer": arr{}}},
	}
}

// NewCycleDocument returns an OAS 3.1 document where Node references
// itself directly and through Edge.
func NewCycleDocument() map[string]any {
	return obj{
		"openapi": "3.1.0",
		"info":    obj{"title": "Graph API", "version": "1.0.0"},
		"paths": obj{
			"/tree": obj{
				"get": obj{
					"operationId": "getTree",
					"responses": obj{
						"200": obj{
							"description": "The tree",
							"content": obj{
								"application/json": obj{"schema": obj{"$ref": "#/components/schemas/Node"}},
							},
						},
					},
				},
			},
		},
		"components": obj{
			"schemas": obj{
				"Node": obj{
					"type": "object",
					"properties": obj{
						"id":       obj{"type": "string"},
						"parent":   obj{"$ref": "#/components/schemas/Node"},
						"children": obj{"type": "array", "items": obj{"$ref": "#/components/schemas/Edge"}},
					},
				},
				"Edge": obj{
					"type": "object",
					"properties": obj{
						"weight": obj{"type": "number"},
						"target": obj{"$ref": "#/components/schemas/Node"},
					},
				},
			},
		},
	}
}

// NewCollisionDocument returns an OAS 3.0 document with two unrelated
// definitions named Error: one in components.schemas and one in a legacy
// top-level definitions section. /items reaches both.
func NewCollisionDocument() map[string]any {
	return obj{
		"openapi": "3.0.3",
		"info":    obj{"title": "Items API", "version": "2.0.0"},
		"paths": obj{
			"/items": obj{
				"get": obj{
					"operationId": "listItems",
					"responses": obj{
						"200": obj{
							"description": "Items",
							"content": obj{
								"application/json": obj{"schema": obj{
									"type":  "array",
									"items": obj{"$ref": "#/components/schemas/Item"},
								}},
							},
						},
						"400": obj{
							"description": "Bad request",
							"content": obj{
								"application/json": obj{"schema": obj{"$ref": "#/components/schemas/Error"}},
							},
						},
						"500": obj{
							"description": "Server error",
							"content": obj{
								"application/json": obj{"schema": obj{"$ref": "#/definitions/Error"}},
							},
						},
					},
				},
			},
		},
		"components": obj{
			"schemas": obj{
				"Item": obj{
					"type":       "object",
					"properties": obj{"id": obj{"type": "integer"}, "error": obj{"$ref": "#/components/schemas/Error"}},
				},
				"Error": obj{
					"type":       "object",
					"required":   arr{"code"},
					"properties": obj{"code": obj{"type": "integer"}},
				},
			},
		},
		"definitions": obj{
			"Error": obj{
				"type":       "object",
				"properties": obj{"message": obj{"type": "string"}, "trace": obj{"type": "string"}},
			},
		},
	}
}

// NewPetStoreOAS2Document returns a Swagger 2.0 pet store with shared
// parameters, a body parameter and a security definition.
func NewPetStoreOAS2Document() map[string]any {
	return obj{
		"swagger":  "2.0",
		"info":     obj{"title": "Pet Store", "version": "1.0.0", "description": "Pets"},
		"host":     "petstore.example.com",
		"basePath": "/v1",
		"schemes":  arr{"https"},
		"consumes": arr{"application/json"},
		"produces": arr{"application/json"},
		"paths": obj{
			"/pets": obj{
				"get": obj{
					"operationId": "listPets",
					"summary":     "List pets",
					"parameters": arr{
						obj{"name": "limit", "in": "query", "type": "integer", "format": "int32", "description": "Page size"},
					},
					"responses": obj{
						"200": obj{
							"description": "A list of pets",
							"schema":      obj{"type": "array", "items": obj{"$ref": "#/definitions/Pet"}},
						},
						"default": obj{"$ref": "#/responses/ErrorResponse"},
					},
				},
				"post": obj{
					"operationId": "createPet",
					"description": "Adds a pet to the store.",
					"security":    arr{obj{"api_key": arr{}}},
					"parameters": arr{
						obj{"name": "pet", "in": "body", "required": true, "schema": obj{"$ref": "#/definitions/NewPet"}},
					},
					"responses": obj{
						"201": obj{"description": "Created", "schema": obj{"$ref": "#/definitions/Pet"}},
					},
				},
			},
			"/pets/{petId}": obj{
				"parameters": arr{obj{"$ref": "#/parameters/PetID"}},
				"get": obj{
					"operationId": "showPetById",
					"responses": obj{
						"200": obj{"description": "A pet", "schema": obj{"$ref": "#/definitions/Pet"}},
					},
				},
			},
		},
		"parameters": obj{
			"PetID": obj{"name": "petId", "in": "path", "required": true, "type": "string"},
		},
		"responses": obj{
			"ErrorResponse": obj{"description": "Error", "schema": obj{"$ref": "#/definitions/Error"}},
		},
		"definitions": obj{
			"Pet": obj{
				"type":     "object",
				"required": arr{"id", "name"},
				"properties": obj{
					"id":       obj{"type": "integer", "format": "int64"},
					"name":     obj{"type": "string"},
					"category": obj{"$ref": "#/definitions/Category"},
				},
			},
			"NewPet": obj{
				"type":       "object",
				"required":   arr{"name"},
				"properties": obj{"name": obj{"type": "string"}, "tag": obj{"type": "string"}},
			},
			"Category": obj{
				"type":       "object",
				"properties": obj{"id": obj{"type": "integer"}, "name": obj{"type": "string"}},
			},
			"Error": obj{
				"type":       "object",
				"properties": obj{"code": obj{"type": "integer"}, "message": obj{"type": "string"}},
			},
		},
		"securityDefinitions": obj{
			"api_key": obj{"type": "apiKey", "name": "X-API-Key", "in": "header"},
		},
		"security": arr{obj{"api_key": arr{}}},
	}
}

// NewToolDocument returns an OAS 3.0 document exercising tool conversion:
// path, query and header parameters, object and scalar request bodies, and
// a binary upload with no schema.
func NewToolDocument() map[string]any {
	return obj{
		"openapi": "3.0.3",
		"info":    obj{"title": "Users API", "version": "1.0.0"},
		"paths": obj{
			"/users/{id}": obj{
				"parameters": arr{
					obj{"name": "id", "in": "path", "required": true, "schema": obj{"type": "string"}, "description": "User id"},
				},
				"get": obj{
					"summary": "Get a user",
					"parameters": arr{
						obj{"$ref": "#/components/parameters/Verbose"},
						obj{"name": "X-Trace", "in": "header", "schema": obj{"type": "string"}},
					},
					"responses": obj{
						"200": obj{"description": "OK", "content": obj{
							"application/json": obj{"schema": obj{"$ref": "#/components/schemas/User"}},
						}},
					},
				},
				"put": obj{
					"operationId": "update user!",
					"description": "Replaces a user.",
					"requestBody": obj{"$ref": "#/components/requestBodies/UserBody"},
					"responses":   obj{"204": obj{"description": "Updated"}},
				},
			},
			"/notes": obj{
				"post": obj{
					"operationId": "createNote",
					"requestBody": obj{
						"required": true,
						"content": obj{
							"text/plain":       obj{"schema": obj{"type": "string"}},
							"application/json": obj{"schema": obj{"type": "string", "maxLength": 140}},
						},
					},
					"responses": obj{"201": obj{"description": "Created"}},
				},
			},
			"/upload": obj{
				"post": obj{
					"operationId": "upload",
					"requestBody": obj{
						"content": obj{"application/octet-stream": obj{}},
					},
					"responses": obj{"200": obj{"description": "OK"}},
				},
			},
		},
		"components": obj{
			"parameters": obj{
				"Verbose": obj{"name": "verbose", "in": "query", "schema": obj{"type": "boolean"}},
			},
			"requestBodies": obj{
				"UserBody": obj{
					"required": true,
					"content": obj{
						"application/json": obj{"schema": obj{"$ref": "#/components/schemas/User"}},
					},
				},
			},
			"schemas": obj{
				"User": obj{
					"type":     "object",
					"required": arr{"name"},
					"properties": obj{
						"name":    obj{"type": "string"},
						"email":   obj{"type": "string", "format": "email", "nullable": true},
						"address": obj{"$ref": "#/components/schemas/Address"},
					},
				},
				"Address": obj{
					"type":       "object",
					"properties": obj{"city": obj{"type": "string"}},
				},
			},
		},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
