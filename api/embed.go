// Package api holds the OpenAPI description of the HTTP surface.
package api

import _ "embed"

// UsersSwaggerJSON is the OpenAPI 2.0 document served next to the Swagger UI.
//
//go:embed swagger/users.swagger.json
var UsersSwaggerJSON []byte
