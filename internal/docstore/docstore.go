// Package docstore is the document store client used by every resource.
//
// Documents travel through the Backend interface as raw JSON so that the
// MongoDB, PostgreSQL (jsonb) and in-memory backends share one contract.
// Collection wraps a Backend with typed encoding for a single collection.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDField is the key every document carries its identifier under.
const IDField = "_id"

var (
	// ErrNotFound means the filter matched no document. It is not a
	// store failure.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID means an id is not a 24 character hex object id.
	ErrInvalidID = errors.New("cast to ObjectId failed")

	// ErrClosed is returned by the in-memory backend after Close.
	ErrClosed = errors.New("store is closed")
)

// Error is returned for every failed store call: connectivity problems,
// malformed ids, driver or constraint errors.
type Error struct {
	Op         string
	Collection string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err came from a failed store call.
func IsStoreError(err error) bool {
	var storeErr *Error
	return errors.As(err, &storeErr)
}

// Filter selects documents whose top-level Field equals Value.
type Filter struct {
	Field string
	Value string
}

// ByID filters on the document identifier.
func ByID(id string) Filter {
	return Filter{Field: IDField, Value: id}
}

// Eq filters on an arbitrary top-level string field.
func Eq(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Backend is implemented by each storage engine.
//
// Documents are JSON objects. Insert assigns the identifier; Find returns
// documents in insertion order; Push appends item to the array under field
// of the first matching document atomically and returns the updated
// document. Missing documents are reported with ErrNotFound.
type Backend interface {
	Insert(ctx context.Context, collection string, doc []byte) ([]byte, error)
	Find(ctx context.Context, collection string) ([][]byte, error)
	FindOne(ctx context.Context, collection string, filter Filter) ([]byte, error)
	Replace(ctx context.Context, collection, id string, doc []byte) ([]byte, error)
	Delete(ctx context.Context, collection, id string) ([]byte, error)
	Push(ctx context.Context, collection string, filter Filter, field string, item []byte) ([]byte, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// NewID returns a fresh object id in its hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidateID checks that id is a well-formed object id.
func ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w for value %q at path %q", ErrInvalidID, id, IDField)
	}
	return nil
}

// withID returns doc with its identifier set to id.
func withID(doc []byte, id string) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	rawID, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	fields[IDField] = rawID

	return json.Marshal(fields)
}
