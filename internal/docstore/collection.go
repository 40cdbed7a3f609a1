package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection is a typed view over one named collection of a Backend.
type Collection[T any] struct {
	backend Backend
	name    string
}

func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{backend: backend, name: name}
}

// Insert stores doc and returns it with its new identifier.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", c.name, err)
	}

	stored, err := c.backend.Insert(ctx, c.name, raw)
	if err != nil {
		return nil, c.fail("insert", err)
	}
	return c.decode(stored)
}

// Find returns every document in insertion order. The result is never nil.
func (c *Collection[T]) Find(ctx context.Context) ([]T, error) {
	raws, err := c.backend.Find(ctx, c.name)
	if err != nil {
		return nil, c.fail("find", err)
	}

	docs := make([]T, 0, len(raws))
	for _, raw := range raws {
		doc, err := c.decode(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// FindByID returns the document with the given identifier or ErrNotFound.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return c.FindOne(ctx, ByID(id))
}

// FindOne returns the first document matching filter or ErrNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	if err := checkFilter(filter); err != nil {
		return nil, c.fail("find", err)
	}

	raw, err := c.backend.FindOne(ctx, c.name, filter)
	if err != nil {
		return nil, c.fail("find", err)
	}
	return c.decode(raw)
}

// Replace overwrites the whole document stored under id.
func (c *Collection[T]) Replace(ctx context.Context, id string, doc T) (*T, error) {
	if err := ValidateID(id); err != nil {
		return nil, c.fail("replace", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", c.name, err)
	}

	stored, err := c.backend.Replace(ctx, c.name, id, raw)
	if err != nil {
		return nil, c.fail("replace", err)
	}
	return c.decode(stored)
}

// Delete removes the document stored under id and returns it.
func (c *Collection[T]) Delete(ctx context.Context, id string) (*T, error) {
	if err := ValidateID(id); err != nil {
		return nil, c.fail("delete", err)
	}

	removed, err := c.backend.Delete(ctx, c.name, id)
	if err != nil {
		return nil, c.fail("delete", err)
	}
	return c.decode(removed)
}

// Push appends item to the array under field of the first document
// matching filter and returns the updated document.
func (c *Collection[T]) Push(ctx context.Context, filter Filter, field string, item any) (*T, error) {
	if err := checkFilter(filter); err != nil {
		return nil, c.fail("push", err)
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode %s.%s item: %w", c.name, field, err)
	}

	updated, err := c.backend.Push(ctx, c.name, filter, field, raw)
	if err != nil {
		return nil, c.fail("push", err)
	}
	return c.decode(updated)
}

func (c *Collection[T]) decode(raw []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c.name, err)
	}
	return &doc, nil
}

// fail passes ErrNotFound through untouched and marks everything else
// as a store failure.
func (c *Collection[T]) fail(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}
	return &Error{Op: op, Collection: c.name, Err: err}
}

func checkFilter(filter Filter) error {
	if filter.Field == IDField {
		return ValidateID(filter.Value)
	}
	return nil
}
