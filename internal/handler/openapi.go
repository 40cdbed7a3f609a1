package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/web420-api/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the Swagger UI page and the OpenAPI document.
type OpenAPIHandler struct {
	Handler
	files fs.FS
}

func NewOpenAPIHandler(s *server.Server, files fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		files:   files,
	}
}

// ServeOpenAPIUI serves openapi.html uncached so doc changes show up at once.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := fs.ReadFile(h.files, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}

// ServeOpenAPISpec serves the raw openapi.json.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	doc, err := fs.ReadFile(h.files, "openapi.json")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI document: %w", err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, doc)
}
