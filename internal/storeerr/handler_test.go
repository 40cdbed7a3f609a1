package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

func storeErr(err error) error {
	return fmt.Errorf("list composers: %w", &docstore.Error{Op: "find", Collection: "composers", Err: err})
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantPrefix string
		wantCode   string
	}{
		{
			name:       "http error passes through",
			err:        errs.NewUnauthorizedError("Invalid teamId: x"),
			wantStatus: http.StatusUnauthorized,
			wantPrefix: "Invalid teamId",
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "unknown route",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantPrefix: "Route not found",
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "method not allowed",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantPrefix: "Method Not Allowed",
			wantCode:   "METHOD_NOT_ALLOWED",
		},
		{
			name:       "malformed id",
			err:        storeErr(docstore.ValidateID("nope")),
			wantStatus: http.StatusNotImplemented,
			wantPrefix: errs.StoreExceptionPrefix,
			wantCode:   CodeInvalidID,
		},
		{
			name:       "unique violation",
			err:        storeErr(&pgconn.PgError{Code: "23505", ConstraintName: "documents_collection_id_key"}),
			wantStatus: http.StatusNotImplemented,
			wantPrefix: errs.StoreExceptionPrefix,
			wantCode:   CodeDuplicate,
		},
		{
			name:       "check violation",
			err:        storeErr(&pgconn.PgError{Code: "23514"}),
			wantStatus: http.StatusNotImplemented,
			wantPrefix: errs.StoreExceptionPrefix,
			wantCode:   CodeConstraint,
		},
		{
			name:       "timeout",
			err:        storeErr(context.DeadlineExceeded),
			wantStatus: http.StatusNotImplemented,
			wantPrefix: errs.StoreExceptionPrefix,
			wantCode:   CodeTimeout,
		},
		{
			name:       "closed store",
			err:        storeErr(docstore.ErrClosed),
			wantStatus: http.StatusNotImplemented,
			wantPrefix: errs.StoreExceptionPrefix,
			wantCode:   CodeUnavailable,
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantPrefix: errs.ServerExceptionPrefix + "boom",
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleError(tt.err)
			if got.Status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", got.Status, tt.wantStatus)
			}
			if !strings.HasPrefix(got.Message, tt.wantPrefix) {
				t.Fatalf("message = %q, want prefix %q", got.Message, tt.wantPrefix)
			}
			if got.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestHandleErrorKeepsCause(t *testing.T) {
	cause := storeErr(docstore.ErrClosed)

	got := HandleError(cause)
	if !errors.Is(got, docstore.ErrClosed) {
		t.Fatal("store error lost its cause")
	}
}
