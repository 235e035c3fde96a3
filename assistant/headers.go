// ABOUTME: Header sources for assistant requests: static maps and sync/async providers
// ABOUTME: Resolves headers per call and guarantees a JSON Content-Type unless overridden

package assistant

import (
	"context"
	"net/http"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// HeaderSource produces the headers for one request. Implementations report
// whether they can be resolved in the given mode.
type HeaderSource interface {
	ResolveHeaders(ctx context.Context, mode Mode) (map[string]string, error)
}

// StaticHeaders is a fixed header map. It is copied for every request.
type StaticHeaders map[string]string

// ResolveHeaders returns the map itself; callers copy it before mutation.
func (h StaticHeaders) ResolveHeaders(context.Context, Mode) (map[string]string, error) {
	return h, nil
}

// HeaderFunc computes headers synchronously. It can be used from both modes.
type HeaderFunc func() map[string]string

// ResolveHeaders invokes the function.
func (f HeaderFunc) ResolveHeaders(context.Context, Mode) (map[string]string, error) {
	if f == nil {
		return nil, nil
	}
	return f(), nil
}

// AsyncHeaderFunc computes headers with a context, for example by fetching a
// token over the network. It is only resolvable from asynchronous calls.
type AsyncHeaderFunc func(ctx context.Context) (map[string]string, error)

// ResolveHeaders invokes the function, or fails with ErrAsyncHeaderProvider in ModeSync.
func (f AsyncHeaderFunc) ResolveHeaders(ctx context.Context, mode Mode) (map[string]string, error) {
	if mode == ModeSync {
		return nil, ErrAsyncHeaderProvider
	}
	if f == nil {
		return nil, nil
	}
	return f(ctx)
}

func defaultHeaders() map[string]string {
	return map[string]string{headerContentType: contentTypeJSON}
}

// resolveHeaders returns a fresh header map for one request. A source that
// yields a nil map degrades to the default headers without error.
func resolveHeaders(ctx context.Context, src HeaderSource, mode Mode) (map[string]string, error) {
	if src == nil {
		return defaultHeaders(), nil
	}

	raw, err := src.ResolveHeaders(ctx, mode)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return defaultHeaders(), nil
	}

	headers := make(map[string]string, len(raw)+1)
	hasContentType := false
	for k, v := range raw {
		headers[k] = v
		if http.CanonicalHeaderKey(k) == headerContentType {
			hasContentType = true
		}
	}
	if !hasContentType {
		headers[headerContentType] = contentTypeJSON
	}

	return headers, nil
}
