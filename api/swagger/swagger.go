package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academics API",
        "description": "Academic records engine: entity graph, cascading deletions, attendance and grading",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication and password management"},
        {"name": "Batches", "description": "Student cohorts"},
        {"name": "Classes", "description": "Sections within a batch"},
        {"name": "Subjects", "description": "Courses and their deletion policy"},
        {"name": "Students", "description": "Student onboarding and records"},
        {"name": "Faculties", "description": "Faculty onboarding and records"},
        {"name": "Assignments", "description": "Class-teacher and faculty-subject posts"},
        {"name": "Attendance", "description": "Period attendance and percentage views"},
        {"name": "Marks", "description": "Component scores and computed results"},
        {"name": "Timetable", "description": "Weekly slot scheduling"},
        {"name": "Dashboard", "description": "Composite student views"},
        {"name": "Exports", "description": "Report cards and result sheets"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/password": {
            "put": {
                "tags": ["Auth"],
                "summary": "Change the caller's password",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Password changed"},
                    "401": {"description": "Current password incorrect"}
                }
            }
        },
        "/batches": {
            "post": {
                "tags": ["Batches"],
                "summary": "Create batch",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created"}}
            },
            "get": {
                "tags": ["Batches"],
                "summary": "List batches",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/batches/{id}": {
            "get": {
                "tags": ["Batches"],
                "summary": "Get batch",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["Batches"],
                "summary": "Delete batch and its full dependency closure",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "Outcome", "schema": {"$ref": "#/definitions/MutationOutcome"}}}
            }
        },
        "/classes/{id}": {
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class",
                "description": "Fails with 412 while students are still enrolled.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Outcome", "schema": {"$ref": "#/definitions/MutationOutcome"}},
                    "412": {"description": "Class has active students"}
                }
            }
        },
        "/subjects/{id}": {
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject",
                "description": "Without force, responds with confirmation_required when attendance or mark history exists.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "force", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "Outcome", "schema": {"$ref": "#/definitions/MutationOutcome"}}}
            }
        },
        "/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Record one period's attendance for a class",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Recorded"},
                    "403": {"description": "Caller does not teach this subject for this class"}
                }
            }
        },
        "/marks": {
            "post": {
                "tags": ["Marks"],
                "summary": "Enter component scores for a class",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Saved"},
                    "403": {"description": "Caller does not teach this subject for this class"}
                }
            }
        },
        "/students/{id}/results": {
            "get": {
                "tags": ["Marks"],
                "summary": "Computed results for a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "semester", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/timetable/slots": {
            "put": {
                "tags": ["Timetable"],
                "summary": "Place a subject into a weekly slot",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Slot written"}}
            },
            "delete": {
                "tags": ["Timetable"],
                "summary": "Vacate a weekly slot",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "Slot cleared"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "MutationOutcome": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["completed", "confirmation_required"]},
                "reason": {"type": "string"},
                "id": {"type": "string"}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
