// Package docs holds the generated swagger specification.
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
        "/api/v1/campaigns": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List campaigns",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Create a campaign",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/v1/campaigns/{campaign_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Get a campaign with its current stage",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/campaigns/{campaign_id}/subjects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "List campaign subjects",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Propose a subject for a campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/subjects/{subject_id}/decision": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Confirm or decline a proposed subject",
                "parameters": [
                    {"type": "string", "name": "subject_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/campaigns/{campaign_id}/stage/recompute": {
            "post": {
                "produces": ["application/json"],
                "tags": ["campaigns"],
                "summary": "Recompute the campaign stage from current approvals",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/campaigns/{campaign_id}/settlement": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Get the settlement of a campaign",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/artifacts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "List artifacts",
                "parameters": [
                    {"type": "string", "name": "campaign_id", "in": "query"},
                    {"type": "string", "name": "subject_id", "in": "query"},
                    {"type": "string", "name": "kind", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "Create a draft plan or submission artifact",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/artifacts/{artifact_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "Get an artifact with its revision history",
                "parameters": [
                    {"type": "string", "name": "artifact_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/artifacts/{artifact_id}/revisions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "Request a revision of an artifact",
                "parameters": [
                    {"type": "string", "name": "artifact_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/artifacts/{artifact_id}/feedback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "Answer the pending revision request",
                "parameters": [
                    {"type": "string", "name": "artifact_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/artifacts/{artifact_id}/approve": {
            "post": {
                "produces": ["application/json"],
                "tags": ["artifacts"],
                "summary": "Approve an artifact",
                "parameters": [
                    {"type": "string", "name": "artifact_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/api/v1/settlements": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Open the settlement of a campaign",
                "parameters": [
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/settlements/{settlement_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Get a settlement",
                "parameters": [
                    {"type": "string", "name": "settlement_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/settlements/{settlement_id}/invoice": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Request a tax invoice",
                "parameters": [
                    {"type": "string", "name": "settlement_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/settlements/{settlement_id}/invoice/review": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Approve or reject a requested invoice",
                "parameters": [
                    {"type": "string", "name": "settlement_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/settlements/{settlement_id}/pay": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Start payment processing",
                "parameters": [
                    {"type": "string", "name": "settlement_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Collabo API",
	Description:      "Campaign pipeline, content revision workflow and settlement API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
