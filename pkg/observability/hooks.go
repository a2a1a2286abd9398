// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about document rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Render().OnDocumentStart(ctx, title, formats)
//	// ... render ...
//	observability.Render().OnDocumentComplete(ctx, title, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the rendering pipeline.
type RenderHooks interface {
	// Document events
	OnDocumentStart(ctx context.Context, title string, formats []string)
	OnDocumentComplete(ctx context.Context, title string, duration time.Duration, err error)

	// Per-format events
	OnFormatStart(ctx context.Context, title, format string)
	OnFormatComplete(ctx context.Context, title, format string, size int, duration time.Duration, err error)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnDocumentStart(context.Context, string, []string)                {}
func (NoopRenderHooks) OnDocumentComplete(context.Context, string, time.Duration, error) {}
func (NoopRenderHooks) OnFormatStart(context.Context, string, string)                    {}
func (NoopRenderHooks) OnFormatComplete(context.Context, string, string, int, time.Duration, error) {
}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores the no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
}
