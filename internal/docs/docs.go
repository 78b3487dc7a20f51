// Package docs registra la especificación OpenAPI que sirve /swagger.
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
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Lista mascotas, con filtro opcional",
                "parameters": [
                    {"type": "string", "description": "texto libre sobre nombre y raza", "name": "search", "in": "query"},
                    {"type": "string", "description": "dog, cat, other o all", "name": "species", "in": "query"},
                    {"type": "string", "description": "available, pending, adopted o all", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Agrega una mascota al catálogo",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Obtiene una mascota",
                "parameters": [{"type": "string", "description": "id de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Actualiza campos de una mascota",
                "parameters": [{"type": "string", "description": "id de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["pets"],
                "summary": "Elimina una mascota",
                "parameters": [{"type": "string", "description": "id de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/pets/{petID}/adoptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Lista las solicitudes de una mascota",
                "parameters": [{"type": "string", "description": "id de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Envía una solicitud de adopción para una mascota",
                "parameters": [{"type": "string", "description": "id de la mascota", "name": "petID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/adoptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Lista solicitudes de adopción",
                "parameters": [{"type": "string", "description": "CSV: pending,approved,rejected", "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/adoptions/{requestID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Obtiene una solicitud",
                "parameters": [{"type": "string", "description": "id de la solicitud", "name": "requestID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Resumen del catálogo y de las solicitudes",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        }
    }
}`

// SwaggerInfo contiene la metadata exportada; el router puede ajustar Host en runtime.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Adoption API",
	Description:      "Catálogo de mascotas, solicitudes de adopción y reportes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
