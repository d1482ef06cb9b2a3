package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the scheme service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Education Scheme Manager - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "scheme-manager", "version": "v0.1.0" },
  "paths": {
    "/api/state": { "get": { "summary": "Current view, filtered schemes, loading flag, draft and pending deletion", "responses": { "200": { "description": "state" } } } },
    "/api/schemes": {
      "get": { "summary": "Immediate filtered listing", "parameters": [{"name":"q","in":"query","schema":{"type":"string"}}], "responses": { "200": { "description": "schemes" } } },
      "post": { "summary": "Open a blank create form", "responses": { "200": { "description": "state" } } }
    },
    "/api/schemes/{id}/edit": { "post": { "summary": "Open the form on an existing scheme", "responses": { "200": { "description": "state" }, "404": { "description": "not found" } } } },
    "/api/schemes/{id}/delete": { "post": { "summary": "Request deletion (needs confirmation)", "responses": { "200": { "description": "state" }, "404": { "description": "not found" } } } },
    "/api/search": {
      "put": { "summary": "Set the debounced search query", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"query":{"type":"string"}}}}}}, "responses": { "200": { "description": "state" } } },
      "delete": { "summary": "Clear the search query", "responses": { "200": { "description": "state" } } }
    },
    "/api/form": { "patch": { "summary": "Set a scalar draft field", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"field":{"type":"string"},"value":{"type":"string"}}}}}}, "responses": { "200": { "description": "state" }, "400": { "description": "unknown field or form closed" } } } },
    "/api/form/items/{field}": { "post": { "summary": "Append an empty objective/resource", "responses": { "200": { "description": "state" } } } },
    "/api/form/items/{field}/{index}": {
      "put": { "summary": "Replace an objective/resource", "responses": { "200": { "description": "state" }, "400": { "description": "index out of range" } } },
      "delete": { "summary": "Remove an objective/resource (the last one is kept)", "responses": { "200": { "description": "state" } } }
    },
    "/api/form/submit": { "post": { "summary": "Validate and save the draft", "responses": { "200": { "description": "saved" }, "422": { "description": "validation failed" } } } },
    "/api/form/cancel": { "post": { "summary": "Discard the draft", "responses": { "200": { "description": "state" } } } },
    "/api/deletion/confirm": { "post": { "summary": "Delete the pending scheme", "responses": { "200": { "description": "deleted" }, "404": { "description": "already gone" }, "409": { "description": "nothing pending" } } } },
    "/api/deletion/dismiss": { "post": { "summary": "Dismiss the pending deletion", "responses": { "200": { "description": "state" } } } },
    "/api/font": { "put": { "summary": "Select the display font", "responses": { "200": { "description": "state" }, "400": { "description": "unknown font" } } } },
    "/api/options": { "get": { "summary": "Subjects, grades and fonts offered by the UI", "responses": { "200": { "description": "options" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
