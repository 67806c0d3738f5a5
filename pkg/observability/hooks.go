// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about scene construction, animation ticks, and cache
// operations.
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
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSceneHooks(&mySceneHooks{})
//	    observability.SetTickHooks(&myTickHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Tick().OnTickStart(tick, delay)
//	// ... run state transition and sync ...
//	observability.Tick().OnTickComplete(tick, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Scene Hooks
// =============================================================================

// SceneHooks receives events from scene construction and layout.
type SceneHooks interface {
	// Layout events
	OnLayoutStart(provider string, nodeCount int)
	OnLayoutComplete(provider string, duration time.Duration, err error)

	// Build events
	OnBuildStart(nodeCount, edgeCount int)
	OnBuildComplete(nodeCount, edgeCount int)
}

// =============================================================================
// Tick Hooks
// =============================================================================

// TickHooks receives events from the animation scheduler.
type TickHooks interface {
	// OnTickStart records the start of a scheduled tick. Delay is the time
	// since the tick's nominal deadline.
	OnTickStart(tick int, delay time.Duration)

	// OnTickComplete records a finished tick, including its error if any.
	OnTickComplete(tick int, duration time.Duration, err error)

	// OnTickSkipped records a deadline that passed while the previous tick
	// of the same task was still running.
	OnTickSkipped(tick int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from layout cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSceneHooks is a no-op implementation of SceneHooks.
type NoopSceneHooks struct{}

func (NoopSceneHooks) OnLayoutStart(string, int)                     {}
func (NoopSceneHooks) OnLayoutComplete(string, time.Duration, error) {}
func (NoopSceneHooks) OnBuildStart(int, int)                         {}
func (NoopSceneHooks) OnBuildComplete(int, int)                      {}

// NoopTickHooks is a no-op implementation of TickHooks.
type NoopTickHooks struct{}

func (NoopTickHooks) OnTickStart(int, time.Duration)           {}
func (NoopTickHooks) OnTickComplete(int, time.Duration, error) {}
func (NoopTickHooks) OnTickSkipped(int)                        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sceneHooks SceneHooks = NoopSceneHooks{}
	tickHooks  TickHooks  = NoopTickHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetSceneHooks registers custom scene hooks.
// This should be called once at application startup before any scene is built.
func SetSceneHooks(h SceneHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sceneHooks = h
	}
}

// SetTickHooks registers custom tick hooks.
// This should be called once at application startup before the frame loop runs.
func SetTickHooks(h TickHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tickHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Scene returns the registered scene hooks.
func Scene() SceneHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sceneHooks
}

// Tick returns the registered tick hooks.
func Tick() TickHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tickHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sceneHooks = NoopSceneHooks{}
	tickHooks = NoopTickHooks{}
	cacheHooks = NoopCacheHooks{}
}
