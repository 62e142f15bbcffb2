// Package api holds the OpenAPI description of the walkthrough HTTP API.
package api

import _ "embed"

// Spec is the OpenAPI 3 document served on /openapi.yaml and used for request validation.
//
//go:embed openapi.yaml
var Spec []byte
