package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryGateway is a map-backed Gateway for tests and local development. It
// mirrors the hosted store's semantics: per-document read-your-writes, no
// cross-operation isolation.
type MemoryGateway struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]interface{} // bucket -> id -> fields
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		data: make(map[string]map[string]map[string]interface{}),
	}
}

func bucketKey(path Path) string {
	if path.Owner == "" {
		return path.Kind
	}
	return path.Kind + "/" + path.Owner
}

func (g *MemoryGateway) bucket(path Path) map[string]map[string]interface{} {
	key := bucketKey(path)
	if g.data[key] == nil {
		g.data[key] = make(map[string]map[string]interface{})
	}
	return g.data[key]
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (g *MemoryGateway) Get(ctx context.Context, path Path, id string) (Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	fields, ok := g.data[bucketKey(path)][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Fields: copyFields(fields)}, nil
}

func (g *MemoryGateway) Query(ctx context.Context, path Path) ([]Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var docs []Document
	for id, fields := range g.data[bucketKey(path)] {
		docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
	}
	return docs, nil
}

func (g *MemoryGateway) QueryField(ctx context.Context, path Path, field string, value interface{}) ([]Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var docs []Document
	for id, fields := range g.data[bucketKey(path)] {
		if fields[field] == value {
			docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
		}
	}
	return docs, nil
}

func (g *MemoryGateway) QueryTimeRange(ctx context.Context, path Path, field string, start, end time.Time) ([]Document, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var docs []Document
	for id, fields := range g.data[bucketKey(path)] {
		ts, ok := fields[field].(time.Time)
		if !ok {
			continue
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		docs = append(docs, Document{ID: id, Fields: copyFields(fields)})
	}
	return docs, nil
}

func (g *MemoryGateway) Add(ctx context.Context, path Path, fields map[string]interface{}) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := uuid.NewString()
	g.bucket(path)[id] = copyFields(fields)
	return id, nil
}

func (g *MemoryGateway) SetMerge(ctx context.Context, path Path, id string, fields map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	bucket := g.bucket(path)
	existing, ok := bucket[id]
	if !ok {
		existing = make(map[string]interface{})
		bucket[id] = existing
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (g *MemoryGateway) SetOverwrite(ctx context.Context, path Path, id string, fields map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bucket(path)[id] = copyFields(fields)
	return nil
}

func (g *MemoryGateway) Update(ctx context.Context, path Path, id string, fields map[string]interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	existing, ok := g.data[bucketKey(path)][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range fields {
		if v == nil {
			delete(existing, k)
		} else {
			existing[k] = v
		}
	}
	return nil
}

func (g *MemoryGateway) Delete(ctx context.Context, path Path, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.data[bucketKey(path)], id)
	return nil
}
