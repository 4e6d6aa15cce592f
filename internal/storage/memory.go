package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"
)

// Object is a stored blob
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps objects in process. It backs local runs and tests.
type MemoryStore struct {
	bucket string

	mu      sync.RWMutex
	objects map[string]Object
}

// NewMemory creates an empty in-memory store
func NewMemory(bucket string) *MemoryStore {
	if bucket == "" {
		bucket = "local"
	}
	return &MemoryStore{bucket: bucket, objects: make(map[string]Object)}
}

func (m *MemoryStore) Upload(ctx context.Context, key string, body io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Data: buf.Bytes(), ContentType: contentType}
	return nil
}

func (m *MemoryStore) PresignGet(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.objects[key]; !ok {
		return "", fmt.Errorf("object %s not found", key)
	}
	u := url.URL{Scheme: "memory", Host: m.bucket, Path: "/" + key}
	return u.String(), nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) Check(context.Context) error { return nil }

// Get returns the stored object
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
