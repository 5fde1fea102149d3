// Package observability provides hooks for instrumenting outbound HTTP
// requests made by the data.gov.uk client.
//
// The library itself depends on no metrics or tracing framework. Embedders
// that want visibility into provider traffic register a hook implementation
// at startup; the client then emits an event for every request, response,
// and transport failure. The default implementation is a no-op, so the
// hooks cost nothing when unused.
//
// # Usage
//
// Register hooks once, before any client operations:
//
//	func main() {
//	    observability.SetHTTPHooks(&promHooks{})
//	    // ... run application
//	}
//
// The client calls:
//
//	observability.HTTP().OnRequest(ctx, method, host, path)
//	observability.HTTP().OnResponse(ctx, method, host, path, status, elapsed)
//	observability.HTTP().OnError(ctx, method, host, path, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// HTTPHooks receives events from outbound HTTP operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any client operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op default hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
}
