package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Dentoplan API",
        "description": "Scheduling engine for a dental practice",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scheduling", "description": "Treatment sequences, free slots and bulk rescheduling"},
        {"name": "Appointments", "description": "Direct appointment booking and lookup"},
        {"name": "Patients", "description": "Patient registry"},
        {"name": "Auth", "description": "Practice administrator authentication"},
        {"name": "System", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["System"],
                "summary": "Aggregated scheduling metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate the practice administrator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/slots": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "List bookable start times for a date",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "duration", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/treatments/analysis": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Classify a treatment label",
                "parameters": [
                    {"name": "treatment", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/sequence": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Book a full treatment plan as an ordered appointment chain",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleSequenceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/analysis": {
            "get": {
                "tags": ["Scheduling"],
                "summary": "Summarise the load of one clinic day",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/bulk-reschedule": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Build an approval-pending relocation plan for blocked dates",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkRescheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/execute-plan": {
            "post": {
                "tags": ["Scheduling"],
                "summary": "Execute an approved reschedule plan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExecutePlanRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Plan not approved or not executable"}
                }
            }
        },
        "/appointments": {
            "get": {
                "tags": ["Appointments"],
                "summary": "List appointments",
                "parameters": [
                    {"name": "patientId", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Appointments"],
                "summary": "Book a single appointment directly",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAppointmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot is not available"}
                }
            }
        },
        "/appointments/{id}": {
            "get": {
                "tags": ["Appointments"],
                "summary": "Get an appointment by ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/patients": {
            "get": {
                "tags": ["Patients"],
                "summary": "List patients",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Patients"],
                "summary": "Register a new patient",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterPatientRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/patients/{id}": {
            "get": {
                "tags": ["Patients"],
                "summary": "Get a patient by ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "TreatmentStepRequest": {
            "type": "object",
            "required": ["treatment"],
            "properties": {
                "treatment": {"type": "string"},
                "duration": {"type": "string", "example": "45 min"},
                "delay": {"type": "string", "example": "2 semaines"},
                "doctor": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "ScheduleSequenceRequest": {
            "type": "object",
            "required": ["patientId", "steps"],
            "properties": {
                "patientId": {"type": "string"},
                "startDate": {"type": "string", "example": "2025-03-10"},
                "preferredTime": {"type": "string", "enum": ["morning", "afternoon", "any"]},
                "steps": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TreatmentStepRequest"}
                }
            }
        },
        "BulkRescheduleRequest": {
            "type": "object",
            "required": ["blockedDates"],
            "properties": {
                "blockedDates": {
                    "type": "array",
                    "items": {"type": "string", "example": "2025-03-10"}
                },
                "reason": {"type": "string"},
                "lookaheadDays": {"type": "integer"}
            }
        },
        "ExecutePlanRequest": {
            "type": "object",
            "required": ["planId"],
            "properties": {
                "planId": {"type": "string"},
                "approved": {"type": "boolean"}
            }
        },
        "CreateAppointmentRequest": {
            "type": "object",
            "required": ["patientId", "date", "time", "treatment"],
            "properties": {
                "patientId": {"type": "string"},
                "date": {"type": "string", "example": "2025-03-11"},
                "time": {"type": "string", "example": "10:30"},
                "durationMinutes": {"type": "integer"},
                "treatment": {"type": "string"},
                "doctor": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "RegisterPatientRequest": {
            "type": "object",
            "required": ["firstName", "lastName"],
            "properties": {
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "birthDate": {"type": "string", "example": "1988-06-02"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
