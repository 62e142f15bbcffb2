package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/walkthrough/api"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	oapi "github.com/oapi-codegen/runtime"
)

// errInvalidRequest marks requests rejected before reaching the tour logic.
var errInvalidRequest = errors.New("invalid request")

// newValidator returns a middleware that checks requests against the OpenAPI document.
// Routes the document does not describe (metrics, docs) pass through untouched.
func newValidator(spec []byte) (func(http.Handler) http.Handler, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				// Not part of the document: chi answers (404, 405, metrics, docs).
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeJSON(w, nil, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("%v: %v", errInvalidRequest, err)})
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

// bindPath reads a required simple-style path parameter.
func bindPath(r *http.Request, name string) (string, error) {
	var v string
	err := oapi.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v, oapi.BindStyledParameterOptions{
		ParamLocation: oapi.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: parameter %s: %w", errInvalidRequest, name, err)
	}
	return v, nil
}

// bindMode reads the required "mode" query parameter.
func bindMode(r *http.Request) (domain.Mode, error) {
	var mode string
	if err := oapi.BindQueryParameter("form", true, true, "mode", r.URL.Query(), &mode); err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	if mode == "" {
		return "", fmt.Errorf("%w: mode is required", errInvalidRequest)
	}
	return domain.Mode(mode), nil
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Walkthrough API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

func serveSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/yaml")
	_, _ = w.Write(api.Spec)
}

func serveSwagger(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(swaggerHTML))
}
