// Package docs registra el OpenAPI del BFF para /swagger.
// Se mantiene a mano junto a las anotaciones de los handlers;
// TestHTTP_SwaggerMatchesRoutes falla si se desincroniza de las rutas.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/session": {
            "get": {
                "tags": ["session"], "summary": "Estado de sesión", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/session.sessionResponse"}}}
            }
        },
        "/session/login": {
            "post": {
                "tags": ["session"], "summary": "Login contra el servicio remoto",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "description": "credenciales", "schema": {"$ref": "#/definitions/session.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/session.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/session.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/session.errorResponse"}}
                }
            }
        },
        "/session/logout": {
            "post": {
                "tags": ["session"], "summary": "Logout; limpia favoritos y filtros", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/session.sessionResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/session.errorResponse"}}
                }
            }
        },
        "/breeds": {
            "get": {
                "tags": ["browse"], "summary": "Razas disponibles, ordenadas", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            }
        },
        "/sorts": {
            "get": {
                "tags": ["browse"], "summary": "Opciones de orden", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.SortOption"}}}}
            }
        },
        "/browse": {
            "get": {
                "tags": ["browse"], "summary": "Estado de navegación", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/browse/search": {
            "post": {
                "tags": ["browse"], "summary": "Buscar perros",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "description": "filtros", "schema": {"$ref": "#/definitions/browse.searchRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/browse.failureResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            }
        },
        "/browse/breeds": {
            "post": {
                "tags": ["browse"], "summary": "Agregar filtro de raza",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "description": "raza", "schema": {"$ref": "#/definitions/browse.breedRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/browse.failureResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            }
        },
        "/browse/breeds/{breed}": {
            "delete": {
                "tags": ["browse"], "summary": "Quitar filtro de raza", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "breed", "required": true, "type": "string", "description": "raza"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            }
        },
        "/browse/sort": {
            "put": {
                "tags": ["browse"], "summary": "Cambiar orden",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "description": "campo:dirección", "schema": {"$ref": "#/definitions/browse.sortRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/browse.failureResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            }
        },
        "/browse/page": {
            "post": {
                "tags": ["browse"], "summary": "Ir a la página de un cursor",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "description": "cursor opaco", "schema": {"$ref": "#/definitions/browse.pageRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/browse.failureResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            }
        },
        "/browse/page/next": {
            "post": {
                "tags": ["browse"], "summary": "Página siguiente (no-op si no hay)", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}}
            }
        },
        "/browse/page/prev": {
            "post": {
                "tags": ["browse"], "summary": "Página anterior (no-op si no hay)", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.State"}}, "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}}
            }
        },
        "/browse/favorites/{dogID}": {
            "post": {
                "tags": ["browse"], "summary": "Marcar/desmarcar favorito", "produces": ["application/json"],
                "parameters": [{"in": "path", "name": "dogID", "required": true, "type": "string", "description": "id del perro"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.favoriteResponse"}}}
            }
        },
        "/browse/match": {
            "post": {
                "tags": ["browse"], "summary": "Pedir un match sobre los favoritos", "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/browse.matchResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/browse.failureResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/browse.failureResponse"}}
                }
            },
            "delete": {"tags": ["browse"], "summary": "Ocultar el match", "responses": {"204": {"description": "No Content"}}}
        },
        "/notices": {
            "get": {
                "tags": ["notices"], "summary": "Avisos pendientes", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/notice.Notice"}}}}
            }
        },
        "/notices/{noticeID}": {
            "delete": {
                "tags": ["notices"], "summary": "Descartar un aviso",
                "parameters": [{"in": "path", "name": "noticeID", "required": true, "type": "string", "description": "id del aviso"}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "catalog.Dog": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "img": {"type": "string"}, "name": {"type": "string"},
                "age": {"type": "integer"}, "zip_code": {"type": "string"}, "breed": {"type": "string"}
            }
        },
        "catalog.SortOption": {
            "type": "object",
            "properties": {"value": {"type": "string"}, "label": {"type": "string"}}
        },
        "browse.State": {
            "type": "object",
            "properties": {
                "breeds": {"type": "array", "items": {"type": "string"}},
                "selected_breeds": {"type": "array", "items": {"type": "string"}},
                "sort_order": {"type": "string"},
                "current_page": {"type": "string"},
                "next_page": {"type": "string"},
                "prev_page": {"type": "string"},
                "total": {"type": "integer"},
                "dogs": {"type": "array", "items": {"$ref": "#/definitions/catalog.Dog"}},
                "favorites": {"type": "array", "items": {"type": "string"}},
                "is_loading": {"type": "boolean"},
                "matched_dog": {"$ref": "#/definitions/catalog.Dog"},
                "show_match": {"type": "boolean"}
            }
        },
        "browse.searchRequest": {
            "type": "object",
            "properties": {
                "breeds": {"type": "array", "items": {"type": "string"}},
                "zipCodes": {"type": "array", "items": {"type": "string"}},
                "ageMin": {"type": "integer"},
                "ageMax": {"type": "integer"},
                "from": {"type": "string"},
                "sort": {"type": "string"}
            }
        },
        "browse.breedRequest": {"type": "object", "properties": {"breed": {"type": "string"}}},
        "browse.sortRequest": {"type": "object", "properties": {"sort": {"type": "string"}}},
        "browse.pageRequest": {"type": "object", "properties": {"cursor": {"type": "string"}}},
        "browse.favoriteResponse": {
            "type": "object",
            "properties": {"dog_id": {"type": "string"}, "favorite": {"type": "boolean"}, "favorites": {"type": "array", "items": {"type": "string"}}}
        },
        "browse.matchResponse": {"type": "object", "properties": {"dog": {"$ref": "#/definitions/catalog.Dog"}}},
        "browse.failureResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "state": {"$ref": "#/definitions/browse.State"}}
        },
        "notice.Notice": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "level": {"type": "string"}, "title": {"type": "string"},
                "message": {"type": "string"}, "created_at": {"type": "string"}
            }
        },
        "session.loginRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}}},
        "session.sessionResponse": {"type": "object", "properties": {"authenticated": {"type": "boolean"}, "state": {"type": "string"}}},
        "session.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "dog-match BFF",
	Description:      "Navegación de perros en adopción y match sobre favoritos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
