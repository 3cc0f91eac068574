package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/domain"
)

// BaseAdapter carries what every upstream adapter needs: the client and the
// service name used in domain errors.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter binds client to serviceName.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// ServiceName returns the upstream's name.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// CircuitState returns the state of the upstream's circuit breaker.
func (a *BaseAdapter) CircuitState() clients.State {
	return a.client.CircuitState()
}

// Get fetches path and returns the body of a 2xx response; the caller
// closes it. Every other outcome is returned as a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path, operation string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation)
	}

	return resp.Body, nil
}

// Fetch is Get followed by DecodeResponse. A body that does not decode as
// T is reported as the upstream being unavailable.
func Fetch[T any](ctx context.Context, a *BaseAdapter, path, operation string) (*T, error) {
	body, err := a.Get(ctx, path, operation)
	if err != nil {
		return nil, err
	}

	out, err := DecodeResponse[T](body)
	if err != nil {
		return nil, domain.NewUnavailableErrorWithCause(a.serviceName, "undecodable "+operation+" response", err)
	}

	return out, nil
}

// DecodeResponse decodes a JSON body into a new T and closes the body.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var out T
	if err := json.NewDecoder(body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &out, nil
}

// Translator converts one external record into a domain value.
type Translator[E, D any] func(ext *E) (D, error)

// TranslateSlice translates items in order and stops at the first error.
func TranslateSlice[E, D any](items []E, translate Translator[E, D]) ([]D, error) {
	out := make([]D, 0, len(items))

	for i := range items {
		d, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		out = append(out, d)
	}

	return out, nil
}

// checkStatus performs a GET on path and reports any non-2xx outcome.
func (a *BaseAdapter) checkStatus(ctx context.Context, path string) error {
	body, err := a.Get(ctx, path, "health check")
	if err != nil {
		return err
	}

	return body.Close()
}
