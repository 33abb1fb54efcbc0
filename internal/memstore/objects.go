package memstore

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Object is a stored file.
type Object struct {
	ContentType string
	Data        []byte
}

// Objects is an in-memory object store.
type Objects struct {
	// BaseURL prefixes keys in FileURL.
	BaseURL string
	// FailUpload, when set, is consulted before each upload. A non-nil
	// result fails that upload.
	FailUpload func(key string) error

	mu      sync.Mutex
	objects map[string]Object
	deleted []string
}

// NewObjects creates an empty object store serving URLs under baseURL.
func NewObjects(baseURL string) *Objects {
	return &Objects{BaseURL: baseURL, objects: make(map[string]Object)}
}

// Upload stores body under key.
func (o *Objects) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.FailUpload != nil {
		if err := o.FailUpload(key); err != nil {
			return err
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("upload %s: size %d does not match body length %d", key, size, len(data))
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects[key] = Object{ContentType: contentType, Data: data}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (o *Objects) Delete(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.objects, key)
	o.deleted = append(o.deleted, key)
	return nil
}

// FileURL returns BaseURL/key.
func (o *Objects) FileURL(key string) string {
	return o.BaseURL + "/" + key
}

// ExtractKey strips the BaseURL prefix from rawURL.
func (o *Objects) ExtractKey(rawURL string) (string, bool) {
	prefix := o.BaseURL + "/"
	if strings.HasPrefix(rawURL, prefix) && len(rawURL) > len(prefix) {
		return rawURL[len(prefix):], true
	}
	return "", false
}

// Get returns the object stored under key.
func (o *Objects) Get(key string) (Object, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	obj, ok := o.objects[key]
	return obj, ok
}

// Keys returns the stored keys in sorted order.
func (o *Objects) Keys() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	keys := make([]string, 0, len(o.objects))
	for k := range o.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Deleted returns every key passed to Delete, in call order.
func (o *Objects) Deleted() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.deleted...)
}
