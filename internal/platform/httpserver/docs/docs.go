// Package docs ships the Swagger document served at /swagger/doc.json.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in and receive a session cookie",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/marketing/companies": {
            "post": {
                "tags": ["companies"],
                "summary": "Onboard a company with its first admin",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            },
            "get": {
                "tags": ["companies"],
                "summary": "List companies (staff only)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/plans": {
            "get": {
                "tags": ["billing"],
                "summary": "List active subscription plans",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/subscriptions/create-order": {
            "post": {
                "tags": ["billing"],
                "summary": "Open a payment order for a plan",
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/subscriptions/verify-payment": {
            "post": {
                "tags": ["billing"],
                "summary": "Verify a gateway payment signature",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Verification failed"}
                }
            }
        },
        "/transactions": {
            "get": {
                "tags": ["billing"],
                "summary": "Payment history for the caller's company",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/projects": {
            "post": {
                "tags": ["projects"],
                "summary": "Create a project with a PDF or DWG drawing",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Unsupported file type"}
                }
            },
            "get": {
                "tags": ["projects"],
                "summary": "List the caller's company projects",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["admin"],
                "summary": "Platform metrics (SuperAdmin only)",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "DraftHub API",
	Description:      "Multi-tenant construction drawing management backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
