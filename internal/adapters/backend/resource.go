package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/target/storefront-admin/internal/ports"
)

// Resource is a REST collection at Path with the usual list/get/create/update/delete routes.
type Resource[T any] struct {
	pipe *Pipeline
	path string
}

var _ ports.Collection[struct{}] = Resource[struct{}]{}

// NewResource binds a collection path to a pipeline.
func NewResource[T any](p *Pipeline, path string) Resource[T] {
	return Resource[T]{pipe: p, path: path}
}

// Path returns the collection path.
func (r Resource[T]) Path() string { return r.path }

func (r Resource[T]) item(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// List fetches the collection. The backend may answer with a bare array or a
// paginated object; both are accepted.
func (r Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if _, err := r.pipe.Do(ctx, Request{Method: http.MethodGet, Path: r.path, Query: query}, &raw); err != nil {
		return nil, err
	}
	var out []T
	if err := ExtractList(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one item.
func (r Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	_, err := r.pipe.Do(ctx, Request{Method: http.MethodGet, Path: r.item(id)}, &out)
	return out, err
}

// Create posts req and returns the created item with the backend message.
func (r Resource[T]) Create(ctx context.Context, req any) (T, string, error) {
	var out T
	env, err := r.pipe.Do(ctx, Request{Method: http.MethodPost, Path: r.path, Body: BodyFor(req)}, &out)
	return out, message(env), err
}

// Update patches one item and returns it with the backend message.
func (r Resource[T]) Update(ctx context.Context, id int64, req any) (T, string, error) {
	var out T
	env, err := r.pipe.Do(ctx, Request{Method: http.MethodPatch, Path: r.item(id), Body: BodyFor(req)}, &out)
	return out, message(env), err
}

// Delete removes one item and returns the backend message.
func (r Resource[T]) Delete(ctx context.Context, id int64) (string, error) {
	env, err := r.pipe.Do(ctx, Request{Method: http.MethodDelete, Path: r.item(id)}, nil)
	return message(env), err
}

func message(env *Envelope) string {
	if env == nil {
		return ""
	}
	return env.Message
}
