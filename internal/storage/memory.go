package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"
)

var _ ObjectStore = (*MemoryStore)(nil)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore keeps blobs in process memory. Presigned links point at a
// fake host and are only useful for local development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]memoryObject
}

func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{bucket: bucket, objects: make(map[string]memoryObject)}
}

func (m *MemoryStore) PresignPut(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return m.link("PUT", key, contentType, ttl), nil
}

func (m *MemoryStore) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	return m.link("GET", key, "", ttl), nil
}

func (m *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("failed to read body for %s: %w", key, err)
	}
	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

// Has reports whether an object exists under key.
func (m *MemoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

func (m *MemoryStore) link(method, key, contentType string, ttl time.Duration) string {
	q := url.Values{}
	q.Set("method", method)
	q.Set("expires", fmt.Sprintf("%d", int(ttl.Seconds())))
	if contentType != "" {
		q.Set("contentType", contentType)
	}
	u := url.URL{Scheme: "http", Host: m.bucket + ".storage.local", Path: "/" + key, RawQuery: q.Encode()}
	return u.String()
}
