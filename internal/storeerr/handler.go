package storeerr

import (
	"context"
	"errors"
	"net/http"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
)

// Codes attached to store errors. They only appear in logs.
const (
	CodeInvalidID   = "STORE_INVALID_ID"
	CodeDuplicate   = "STORE_DUPLICATE_KEY"
	CodeTimeout     = "STORE_TIMEOUT"
	CodeUnavailable = "STORE_UNAVAILABLE"
	CodeConstraint  = "STORE_CONSTRAINT_VIOLATION"
	CodeOther       = "STORE_ERROR"
)

// Postgres SQLSTATE classes and codes we distinguish.
const (
	pgUniqueViolation   = "23505"
	pgIntegrityClass    = "23"
	pgConnectionClass   = "08"
	pgInsufficientClass = "53"
)

// HandleError converts err into an *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged
//   - echo errors keep their status, a missing route becomes "Route not found"
//   - failed store calls become a 501
//   - everything else becomes a 500
func HandleError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found")
		}
		msg, ok := echoErr.Message.(string)
		if !ok || msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return errs.New(echoErr.Code, msg)
	}

	if docstore.IsStoreError(err) {
		storeErr := errs.NewStoreError(err)
		storeErr.Code = ErrCode(err)
		return storeErr
	}

	return errs.NewServerError(err)
}

// ErrCode classifies a store error by its underlying driver failure.
func ErrCode(err error) string {
	switch {
	case errors.Is(err, docstore.ErrInvalidID):
		return CodeInvalidID
	case errors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err):
		return CodeTimeout
	case mongo.IsDuplicateKeyError(err):
		return CodeDuplicate
	case mongo.IsNetworkError(err), errors.Is(err, mongo.ErrClientDisconnected):
		return CodeUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return CodeDuplicate
		case hasClass(pgErr.Code, pgIntegrityClass):
			return CodeConstraint
		case hasClass(pgErr.Code, pgConnectionClass), hasClass(pgErr.Code, pgInsufficientClass):
			return CodeUnavailable
		}
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || errors.Is(err, docstore.ErrClosed) {
		return CodeUnavailable
	}

	return CodeOther
}

func hasClass(sqlState, class string) bool {
	return len(sqlState) == 5 && sqlState[:2] == class
}
