package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TV Instance Generator API",
        "description": "Synthesizes randomized TV-channel scheduling instances.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Instances", "description": "Generate, preview and download instances"},
        {"name": "Presets", "description": "Named generator configurations"},
        {"name": "Batches", "description": "Asynchronous multi-instance exports"}
    ],
    "paths": {
        "/instances/defaults": {
            "get": {
                "tags": ["Instances"],
                "summary": "Default generator configuration",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instances/genres": {
            "get": {
                "tags": ["Instances"],
                "summary": "Genre vocabulary used for synthesized programs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instances/generate": {
            "post": {
                "tags": ["Instances"],
                "summary": "Generate a scheduling instance preview",
                "description": "Omitted keys take the default configuration. The reported seed replays the run.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/GenerateInstanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Preview", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid configuration", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instances/{id}": {
            "get": {
                "tags": ["Instances"],
                "summary": "Fetch a stored preview",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Preview", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Instances"],
                "summary": "Discard a stored preview",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Cleared"}
                }
            }
        },
        "/instances/{id}/export": {
            "get": {
                "tags": ["Instances"],
                "summary": "Download a stored preview",
                "produces": ["application/json", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "404": {"description": "Not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/presets": {
            "get": {
                "tags": ["Presets"],
                "summary": "List presets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/presets/{name}": {
            "get": {
                "tags": ["Presets"],
                "summary": "Preset configuration",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown preset", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/presets/{name}/generate": {
            "post": {
                "tags": ["Presets"],
                "summary": "Generate a preview from a preset",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/PresetGenerateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Preview", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/batches": {
            "post": {
                "tags": ["Batches"],
                "summary": "Queue a batch of generated instances",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchRequest"}}
                ],
                "responses": {
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/batches/{id}": {
            "get": {
                "tags": ["Batches"],
                "summary": "Batch progress",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/downloads/{token}": {
            "get": {
                "tags": ["Batches"],
                "summary": "Download a finished batch through its signed token",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "403": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "summary": "JSON snapshot of service counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "PriorityBlock": {
            "type": "object",
            "properties": {
                "start": {"type": "integer"},
                "end": {"type": "integer"},
                "allowed_channels": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "TimePreference": {
            "type": "object",
            "properties": {
                "start": {"type": "integer"},
                "end": {"type": "integer"},
                "preferred_genre": {"type": "string"},
                "bonus": {"type": "integer"}
            }
        },
        "ProgramSpec": {
            "type": "object",
            "properties": {
                "program_id": {"type": "string"},
                "start": {"type": "integer"},
                "end": {"type": "integer"},
                "genre": {"type": "string"},
                "score": {"type": "integer"}
            }
        },
        "ChannelSpec": {
            "type": "object",
            "properties": {
                "channel_id": {"type": "integer"},
                "channel_name": {"type": "string"},
                "programs": {"type": "array", "items": {"$ref": "#/definitions/ProgramSpec"}}
            }
        },
        "GenerateInstanceRequest": {
            "type": "object",
            "properties": {
                "opening_time": {"type": "integer", "minimum": 0, "maximum": 1440},
                "closing_time": {"type": "integer", "minimum": 0, "maximum": 1440},
                "min_duration": {"type": "integer", "minimum": 1, "maximum": 120},
                "max_duration": {"type": "integer", "minimum": 1, "maximum": 300},
                "min_score": {"type": "integer", "minimum": 0, "maximum": 100},
                "max_score": {"type": "integer", "minimum": 0, "maximum": 200},
                "max_consecutive_genre": {"type": "integer", "minimum": 1, "maximum": 10},
                "channels_count": {"type": "integer", "minimum": 0},
                "switch_penalty": {"type": "integer", "minimum": 0, "maximum": 20},
                "termination_penalty": {"type": "integer", "minimum": 0, "maximum": 20},
                "priority_blocks": {"type": "array", "items": {"$ref": "#/definitions/PriorityBlock"}},
                "time_preferences": {"type": "array", "items": {"$ref": "#/definitions/TimePreference"}},
                "channels": {"type": "array", "items": {"$ref": "#/definitions/ChannelSpec"}},
                "seed": {"type": "integer", "format": "int64"}
            }
        },
        "PresetGenerateRequest": {
            "type": "object",
            "properties": {
                "seed": {"type": "integer", "format": "int64"}
            }
        },
        "BatchRequest": {
            "type": "object",
            "required": ["count"],
            "properties": {
                "config": {"$ref": "#/definitions/GenerateInstanceRequest"},
                "count": {"type": "integer", "minimum": 1},
                "format": {"type": "string", "enum": ["json", "csv", "pdf"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
