package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Class Enrollment API",
        "description": "Students, classes and the enrollments between them",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student registry"},
        {"name": "Classes", "description": "Course offerings"},
        {"name": "Enrollments", "description": "Student to class membership and rosters"}
    ],
    "paths": {
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentListEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/StudentEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Email already exists", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
            ],
            "get": {
                "tags": ["Students"],
                "summary": "Get student detail",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Email already exists", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student and its enrollments",
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/students/{id}/classes": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List classes of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassListEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/students/{id}/enroll/{classId}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"},
                {"name": "classId", "in": "path", "required": true, "type": "string", "format": "uuid"}
            ],
            "post": {
                "tags": ["Enrollments"],
                "summary": "Enroll student in a class",
                "responses": {
                    "201": {"description": "Enrolled"},
                    "404": {"description": "Student or class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Student is already enrolled", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Remove student from a class",
                "responses": {
                    "204": {"description": "Unenrolled"},
                    "404": {"description": "Student or class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Student is not enrolled", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassListEnvelope"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ClassEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/classes/{id}": {
            "parameters": [
                {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
            ],
            "get": {
                "tags": ["Classes"],
                "summary": "Get class detail",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "put": {
                "tags": ["Classes"],
                "summary": "Update class",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class and its enrollments",
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/classes/{id}/students": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List students enrolled in a class",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/StudentListEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/classes/{id}/roster": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Download class roster",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string", "format": "uuid"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Class not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "StudentInput": {
            "type": "object",
            "required": ["first_name", "last_name", "email", "date_of_birth"],
            "properties": {
                "first_name": {"type": "string", "maxLength": 20, "example": "Lucas"},
                "last_name": {"type": "string", "maxLength": 20, "example": "Gama"},
                "email": {"type": "string", "format": "email", "example": "lucas@gmail.com"},
                "date_of_birth": {"type": "string", "format": "date", "example": "1997-08-15"}
            }
        },
        "ClassInput": {
            "type": "object",
            "required": ["name", "start_date", "end_date"],
            "properties": {
                "name": {"type": "string", "maxLength": 20, "example": "Portuguese"},
                "description": {"type": "string", "maxLength": 30, "example": "Study of Portuguese language"},
                "start_date": {"type": "string", "format": "date", "example": "2024-09-11"},
                "end_date": {"type": "string", "format": "date", "example": "2024-10-11"}
            }
        },
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "date_of_birth": {"type": "string", "format": "date"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Class": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "date_of_birth"},
                "message": {"type": "string", "example": "date_of_birth should be in YYYY-MM-DD format"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "enum": ["VALIDATION_FAILED", "NOT_FOUND", "CONFLICT", "INTERNAL_ERROR"]},
                "message": {"type": "string"},
                "kind": {"type": "string", "enum": ["student", "class"]},
                "reason": {"type": "string", "enum": ["duplicate_email", "already_enrolled", "not_enrolled"]},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/FieldError"}}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
            }
        },
        "StudentEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Student"}
            }
        },
        "StudentListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Student"}}
            }
        },
        "ClassEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Class"}
            }
        },
        "ClassListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Class"}}
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
