package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/ports"
	"github.com/finhr/backoffice/internal/dto"
)

// Resource implements ports.ResourceCollaborator for one record type mounted
// at a path like "/banks".
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource binds a record type to its collection path.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// List fetches one page: GET {path}?page=&per_page=&search=&<filter>=.
func (r *Resource[T]) List(ctx context.Context, q ports.ListQuery) (ports.Page[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("per_page", strconv.Itoa(q.PerPage))
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	for name, value := range q.Filters {
		if value != "" {
			query.Set(name, value)
		}
	}

	var envelope dto.PageEnvelope[T]
	if err := r.c.do(ctx, http.MethodGet, r.path, query, nil, "", &envelope); err != nil {
		return ports.Page[T]{}, fmt.Errorf("%w: %s", apperrors.ErrFetchFailed, err.Error())
	}
	return dto.ToPage(envelope), nil
}

// Get fetches one record: GET {path}/{id}.
func (r *Resource[T]) Get(ctx context.Context, recordID string) (*T, error) {
	var record T
	if err := r.c.do(ctx, http.MethodGet, r.path+"/"+url.PathEscape(recordID), nil, nil, "", &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create submits a new record: POST {path}.
func (r *Resource[T]) Create(ctx context.Context, p ports.Payload) (string, error) {
	return r.submit(ctx, http.MethodPost, r.path, p)
}

// Update submits an edit: PUT {path}/{id}.
func (r *Resource[T]) Update(ctx context.Context, recordID string, p ports.Payload) (string, error) {
	return r.submit(ctx, http.MethodPut, r.path+"/"+url.PathEscape(recordID), p)
}

func (r *Resource[T]) submit(ctx context.Context, method, path string, p ports.Payload) (string, error) {
	body, contentType, err := encodePayload(p)
	if err != nil {
		return "", err
	}
	var msg dto.MessageResponse
	if err := r.c.do(ctx, method, path, nil, bytes.NewReader(body), contentType, &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}

// InvokeAction executes a single-identifier action. Delete maps to
// DELETE {path}/{id}; everything else posts to {path}/{id}/{action}.
func (r *Resource[T]) InvokeAction(ctx context.Context, action ports.Action, recordID string) (string, error) {
	var (
		method = http.MethodPost
		path   = r.path + "/" + url.PathEscape(recordID) + "/" + string(action)
	)
	if action == ports.ActionDelete {
		method = http.MethodDelete
		path = r.path + "/" + url.PathEscape(recordID)
	}

	var msg dto.MessageResponse
	if err := r.c.do(ctx, method, path, nil, nil, "", &msg); err != nil {
		return "", err
	}
	return msg.Message, nil
}
