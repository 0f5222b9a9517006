// Package docs registers the OpenAPI document served at /docs.
// Code generated by swag init; edits survive regeneration via annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in (mock credential heuristic, demo accounts verified)",
                "responses": {
                    "200": {"description": "Session token"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/auth/guest": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Start an anonymous client session",
                "responses": {
                    "201": {"description": "Session token"}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out and drop the session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Signed out"}
                }
            }
        },
        "/api/v1/quotes": {
            "post": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Start a fresh quote draft",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Draft created"}
                }
            }
        },
        "/api/v1/quotes/addresses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Autocomplete address predictions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "input", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Predictions"},
                    "503": {"description": "Geocoding not configured"}
                }
            }
        },
        "/api/v1/quotes/locate": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Resolve coordinates to the nearest address",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "lat", "in": "query", "type": "number", "required": true},
                    {"name": "lng", "in": "query", "type": "number", "required": true}
                ],
                "responses": {
                    "200": {"description": "Resolved address"},
                    "503": {"description": "Geocoding not configured"}
                }
            }
        },
        "/api/v1/quotes/current": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Current draft snapshot with live price",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Draft"}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Update draft fields (addresses, schedule, items, services)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated draft"},
                    "409": {"description": "Draft already submitted"}
                }
            },
            "delete": {
                "tags": ["quotes"],
                "summary": "Abandon the current draft",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Discarded"}
                }
            }
        },
        "/api/v1/quotes/current/next": {
            "post": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Advance one wizard step (step 1 gated on a resolved route)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Draft"},
                    "422": {"description": "Step gate not satisfied"}
                }
            }
        },
        "/api/v1/quotes/current/back": {
            "post": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Go back one wizard step",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Draft"}
                }
            }
        },
        "/api/v1/quotes/current/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Submit the draft from the review step",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Submitted draft"},
                    "422": {"description": "Not at the review step"}
                }
            }
        },
        "/api/v1/quotes/current/edit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Reopen a submitted draft at the review step",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Draft"},
                    "422": {"description": "Draft not submitted"}
                }
            }
        },
        "/api/v1/quotes/current/finalize": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Book the submitted draft as a pending job",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Job created"},
                    "422": {"description": "Draft not submitted"}
                }
            }
        },
        "/api/v1/jobs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "List jobs in queue order",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Jobs"}
                }
            }
        },
        "/api/v1/jobs/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Derived aggregate statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Stats"}
                }
            }
        },
        "/api/v1/jobs/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Recently archived bookings",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Jobs"},
                    "503": {"description": "No database configured"}
                }
            }
        },
        "/api/v1/jobs/{id}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Advance a job through its lifecycle (driver only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated job"},
                    "404": {"description": "Unknown job"},
                    "409": {"description": "Job already terminal"},
                    "422": {"description": "Transition not allowed"}
                }
            }
        },
        "/api/v1/jobs/{id}/photo": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["jobs"],
                "summary": "Attach a cargo photo (driver only)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "photo", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated job"},
                    "503": {"description": "Object storage not configured"}
                }
            }
        },
        "/api/v1/route": {
            "get": {
                "produces": ["application/json"],
                "tags": ["route"],
                "summary": "Current route status and telemetry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Route status"}
                }
            }
        },
        "/api/v1/route/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["route"],
                "summary": "Start the delivery day (driver only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Route status"},
                    "422": {"description": "Empty job queue"}
                }
            }
        },
        "/api/v1/route/toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["route"],
                "summary": "Pause or resume the route (driver only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Route status"}
                }
            }
        },
        "/api/v1/assistant/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Ask the logistics assistant",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Assistant reply"},
                    "503": {"description": "Assistant not configured"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Carreto Freight API",
	Description:      "Freight and moving logistics API: quote wizard, dynamic pricing, driver route simulation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
