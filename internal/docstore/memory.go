package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory keeps documents in process. It backs local runs and tests.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
	closed      bool
}

type memoryCollection struct {
	order []string
	docs  map[string][]byte
}

var _ Backend = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memoryCollection)}
}

func (m *Memory) Insert(_ context.Context, collection string, doc []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	id := NewID()
	stored, err := withID(doc, id)
	if err != nil {
		return nil, err
	}

	coll := m.collection(collection)
	coll.order = append(coll.order, id)
	coll.docs[id] = stored

	return clone(stored), nil
}

func (m *Memory) Find(_ context.Context, collection string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	coll, ok := m.collections[collection]
	if !ok {
		return [][]byte{}, nil
	}

	docs := make([][]byte, 0, len(coll.order))
	for _, id := range coll.order {
		docs = append(docs, clone(coll.docs[id]))
	}
	return docs, nil
}

func (m *Memory) FindOne(_ context.Context, collection string, filter Filter) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	id, err := m.match(collection, filter)
	if err != nil {
		return nil, err
	}
	return clone(m.collections[collection].docs[id]), nil
}

func (m *Memory) Replace(_ context.Context, collection, id string, doc []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	coll, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := coll.docs[id]; !ok {
		return nil, ErrNotFound
	}

	stored, err := withID(doc, id)
	if err != nil {
		return nil, err
	}
	coll.docs[id] = stored

	return clone(stored), nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	coll, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := coll.docs[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(coll.docs, id)
	for i, candidate := range coll.order {
		if candidate == id {
			coll.order = append(coll.order[:i], coll.order[i+1:]...)
			break
		}
	}

	return doc, nil
}

func (m *Memory) Push(_ context.Context, collection string, filter Filter, field string, item []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	id, err := m.match(collection, filter)
	if err != nil {
		return nil, err
	}
	coll := m.collections[collection]

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(coll.docs[id], &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	var items []json.RawMessage
	if raw, ok := fields[field]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("field %q is not an array: %w", field, err)
		}
	}
	items = append(items, json.RawMessage(clone(item)))

	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	fields[field] = encoded

	updated, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	coll.docs[id] = updated

	return clone(updated), nil
}

func (m *Memory) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) Close(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// collection returns the named collection, creating it. Callers hold the write lock.
func (m *Memory) collection(name string) *memoryCollection {
	coll, ok := m.collections[name]
	if !ok {
		coll = &memoryCollection{docs: make(map[string][]byte)}
		m.collections[name] = coll
	}
	return coll
}

// match returns the id of the first document, in insertion order, whose
// field equals the filter value. Callers hold a lock.
func (m *Memory) match(collection string, filter Filter) (string, error) {
	coll, ok := m.collections[collection]
	if !ok {
		return "", ErrNotFound
	}

	if filter.Field == IDField {
		if _, ok := coll.docs[filter.Value]; ok {
			return filter.Value, nil
		}
		return "", ErrNotFound
	}

	for _, id := range coll.order {
		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(coll.docs[id], &fields); err != nil {
			return "", fmt.Errorf("decode document: %w", err)
		}

		var value string
		if raw, ok := fields[filter.Field]; ok && json.Unmarshal(raw, &value) == nil && value == filter.Value {
			return id, nil
		}
	}

	return "", ErrNotFound
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
