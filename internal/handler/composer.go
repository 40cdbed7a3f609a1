package handler

import (
	"net/http"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/model"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ComposerHandler struct {
	Handler
	composers *service.ComposerService
}

func NewComposerHandler(s *server.Server, composers *service.ComposerService) *ComposerHandler {
	return &ComposerHandler{
		Handler:   NewHandler(s),
		composers: composers,
	}
}

func (h *ComposerHandler) ListComposers(c echo.Context, _ *model.NoInput) ([]model.Composer, error) {
	return h.composers.List(c.Request().Context())
}

// GetComposer answers store failures with a 500, unlike every other
// route, which answers them with a 501. Clients depend on it.
func (h *ComposerHandler) GetComposer(c echo.Context, req *model.ComposerIDRequest) (*model.Composer, error) {
	composer, err := h.composers.Get(c.Request().Context(), req.ID)
	if err != nil && docstore.IsStoreError(err) {
		return nil, errs.NewStoreError(err).WithStatus(http.StatusInternalServerError)
	}
	return composer, err
}

func (h *ComposerHandler) CreateComposer(c echo.Context, req *model.CreateComposerRequest) (*model.Composer, error) {
	return h.composers.Create(c.Request().Context(), req.Composer())
}

func (h *ComposerHandler) UpdateComposer(c echo.Context, req *model.UpdateComposerRequest) (*model.Composer, error) {
	return h.composers.Update(c.Request().Context(), req)
}

func (h *ComposerHandler) DeleteComposer(c echo.Context, req *model.ComposerIDRequest) (*model.Composer, error) {
	return h.composers.Delete(c.Request().Context(), req.ID)
}
