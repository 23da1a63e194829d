// Package blob stores product images behind the /api/storage proxy.
package blob

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
)

var ErrNotFound = errors.New("object not found")

// Object is a stored blob. When Redirect is set the object has no body and
// the caller should send the client to that URL instead.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	ETag        string
	Size        int64
	Redirect    string
}

type Store interface {
	Get(ctx context.Context, path string) (*Object, error)
	// Put stores body at path and returns the URL clients should use to
	// fetch it.
	Put(ctx context.Context, path string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// ProxyURL is the storefront URL that serves path through the blob proxy.
func ProxyURL(path string) string {
	return "/api/storage?path=" + url.QueryEscape(path)
}

const (
	DefaultPlaceholderURL = "https://placehold.co/600x400/png?text=Image+Pending"
	MockUploadURL         = "https://placehold.co/600x400/png?text=Mock+Upload"
)

// Placeholder stands in for a bucket that is not configured. Reads redirect
// to a placeholder image and writes are accepted and dropped.
type Placeholder struct {
	URL string
}

func (p Placeholder) Get(context.Context, string) (*Object, error) {
	target := p.URL
	if target == "" {
		target = DefaultPlaceholderURL
	}
	return &Object{Redirect: target}, nil
}

func (p Placeholder) Put(_ context.Context, _ string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return MockUploadURL, nil
}

func (Placeholder) Delete(context.Context, string) error {
	return nil
}

type memoryObject struct {
	data        []byte
	contentType string
	etag        string
}

// Memory keeps blobs in process memory.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryObject)}
}

func (m *Memory) Get(_ context.Context, path string) (*Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[path]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		ETag:        obj.etag,
		Size:        int64(len(obj.data)),
	}, nil
}

func (m *Memory) Put(_ context.Context, path string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	sum := md5.Sum(data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = memoryObject{
		data:        data,
		contentType: contentType,
		etag:        `"` + hex.EncodeToString(sum[:]) + `"`,
	}
	return ProxyURL(path), nil
}

func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, path)
	return nil
}
