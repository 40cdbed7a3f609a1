package handler

import (
	"time"

	"github.com/deppfellow/web420-api/internal/middleware"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/deppfellow/web420-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared dependencies of every concrete handler.
//
// Resource handlers (ComposerHandler, TeamHandler, ...) embed it so that
// Handle can read config and tracing state from the *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler returns the base Handler by value; it only carries a pointer,
// so copies share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint. It receives a request that has
// already been bound from path params and body and passed Validate, and
// returns the value to encode as JSON or an error for GlobalErrorHandler.
//
// P is a pointer type such as *model.CreateTeamRequest because echo's Bind
// needs a pointer to fill.
type HandlerFunc[P validation.Validatable, Res any] func(c echo.Context, req P) (Res, error)

// requestPtr ties a request struct Req to its pointer type. Handle takes
// Req as a plain struct type so it can allocate one with new(Req), and
// uses P to call Validate and pass the pointer to the endpoint.
type requestPtr[Req any] interface {
	*Req
	validation.Validatable
}

// Handle wraps fn with binding, validation, logging and tracing, and
// writes the result with status on success.
//
// A fresh Req is allocated on every call. Echo serves requests
// concurrently and Bind only overwrites fields present in the input, so
// a request value shared between calls would leak fields from one client
// into another.
//
// Type parameters are inferred from fn:
//
//	g.POST("/teams", handler.Handle(h.Handler, h.CreateTeam, http.StatusOK))
func Handle[Req any, Res any, P requestPtr[Req]](
	h Handler,
	fn HandlerFunc[P, Res],
	status int,
) echo.HandlerFunc {
	var slow time.Duration
	if h.server != nil && h.server.Config.Observability != nil {
		slow = h.server.Config.Observability.Logging.SlowQueryThreshold
	}

	return func(c echo.Context) error {
		req := P(new(Req))
		return handleRequest(c, req, fn, status, slow)
	}
}

// handleRequest runs one request through its phases:
//
//  1. bind and validate; failures return a 400 HTTPError
//  2. call fn; its error goes to GlobalErrorHandler unchanged
//  3. warn when fn ran longer than the slow threshold (0 disables)
//  4. encode the result as JSON
//
// Each phase is timed and reported to the New Relic transaction when
// one is present.
func handleRequest[P validation.Validatable, Res any](
	c echo.Context,
	req P,
	fn HandlerFunc[P, Res],
	status int,
	slow time.Duration,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", "handler").
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// Phase 1: bind + validate.
	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// Phase 2: business logic.
	handlerStart := time.Now()
	result, err := fn(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if slow > 0 && handlerDuration > slow {
		logger.Warn().
			Dur("handler_duration", handlerDuration).
			Dur("threshold", slow).
			Msg("slow request")
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return c.JSON(status, result)
}
