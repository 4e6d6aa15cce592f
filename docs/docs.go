// Package docs registers the OpenAPI documents of the services with swag.
// Each service is a separate instance named after it and is served under
// /swagger/ by the server package.
//
// Regenerate a document with
//
//	swag init -g cmd/<service>/main.go --instanceName <service> -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "fields": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "kind": {"type": "string"},
                            "field": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
            }
        }
    },
    "paths": `

func register(name, title, description, paths string) {
	swag.Register(name, &swag.Spec{
		Version:          "1.0.0",
		BasePath:         "/",
		Schemes:          []string{"http"},
		Title:            title,
		Description:      description,
		InfoInstanceName: name,
		SwaggerTemplate:  docTemplate + paths + "\n}",
	})
}
